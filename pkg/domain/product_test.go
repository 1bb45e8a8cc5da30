package domain_test

import (
	"encoding/json"
	"storefront/pkg/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProduct_PriceText(t *testing.T) {
	tests := []struct {
		name  string
		price string
		want  string
	}{
		{name: "integer", price: `1200`, want: "1200"},
		{name: "decimal", price: `49.99`, want: "49.99"},
		{name: "numeric string", price: `"7.5"`, want: "7.5"},
		{name: "text", price: `"N/A"`, want: "N/A"},
		{name: "empty string", price: `""`, want: ""},
		{name: "escaped string", price: `"\u00a31"`, want: "£1"},
		{name: "null", price: `null`, want: ""},
		{name: "missing", price: ``, want: ""},
		{name: "object", price: `{"amount":3}`, want: `{"amount":3}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.Product{Price: json.RawMessage(tt.price)}
			require.Equal(t, tt.want, p.PriceText())
		})
	}
}
