package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Veikkosuhonen/cloudcafe/internal/domain"
	"github.com/Veikkosuhonen/cloudcafe/internal/storage"
	"github.com/Veikkosuhonen/cloudcafe/internal/telemetry"
	"github.com/Veikkosuhonen/cloudcafe/internal/types"
)

// insertSubscriber stamps a fresh id and the current UTC time onto s and
// stores it with exactly one call to the store.
func insertSubscriber(ctx context.Context, tracer trace.Tracer, store storage.Storage, s domain.NewSubscriber) error {
	ctx, span := tracer.Start(ctx, "Saving new subscriber to the database")
	defer span.End()

	if err := s.Validate(); err != nil {
		return fmt.Errorf("insertSubscriber: %w", err)
	}

	sub := types.Subscription{
		ID:           uuid.New(),
		Email:        s.Email.String(),
		Name:         s.Name.String(),
		SubscribedAt: time.Now().UTC(),
	}

	if err := store.InsertSubscription(ctx, sub); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		slog.ErrorContext(ctx, "failed to execute query",
			append([]any{slog.String("error", err.Error())}, telemetry.TraceAttrs(ctx)...)...)
		return fmt.Errorf("insertSubscriber: %w", err)
	}

	return nil
}
