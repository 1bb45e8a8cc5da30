package main

import (
	"context"
	"fmt"
	"storefront/internal/config"
	"storefront/pkg/logger"
	"storefront/pkg/storeapi/restclient"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// checkDomainCommand constructs the 'check-domain' subcommand that asks the
// store service whether a subdomain can be used for a new store.
func checkDomainCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-domain",
		Short: "Checks whether a subdomain can be used for a new store",
		Run: func(cmd *cobra.Command, args []string) {
			subdomain, _ := cmd.Flags().GetString("subdomain")
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			client := restclient.New(newHTTPClient(cfg, otel.GetMeterProvider()), restclient.Endpoints{
				DomainCheckURL: cfg.Remote.DomainCheckURL,
				StoreCreateURL: cfg.Remote.StoreCreateURL,
			})

			fqdn := subdomain + cfg.StoreForm.DomainSuffix
			verdict, err := client.CheckDomain(ctx, fqdn)
			if err != nil {
				logger.Fatal(ctx, "could not check domain", zap.String("fqdn", fqdn), zap.Error(err))
			}

			fmt.Printf("%s\tclaimable=%t\tresponse=%s\n", verdict.FQDN, verdict.Claimable, verdict.Raw) //nolint: forbidigo
		},
	}

	cmd.Flags().String("subdomain", "", "Subdomain to check, without the platform suffix")
	_ = cmd.MarkFlagRequired("subdomain")

	return cmd
}
