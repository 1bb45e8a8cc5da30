package diag

import (
	"context"
	"storefront/pkg/logger"
	"storefront/pkg/serrors"

	"go.uber.org/zap"
)

// LogSubscriber writes events to the context logger at error level. Errors
// carrying an serrors kind are tagged with it.
func LogSubscriber(ctx context.Context, e Event) {
	fields := make([]zap.Field, 0, len(e.Attrs)+5)
	fields = append(fields,
		zap.String("component", e.Component),
		zap.String("operation", e.Operation),
		zap.Time("at", e.At),
		zap.Error(e.Err),
	)
	if kind := serrors.KindOf(e.Err); kind != nil {
		fields = append(fields, zap.String("kind", kind.Error()))
	}
	for k, v := range e.Attrs {
		fields = append(fields, zap.String(k, v))
	}

	logger.Error(ctx, "diagnostic event", fields...)
}
