// Package subscription contains the HTTP handler for POST /subscribe.
//
// The handler follows the factory pattern used across this service:
// Subscribe(deps...) runs once when the route is registered and returns the
// http.HandlerFunc that runs on every request.
//
// Status codes:
//
//	400 Bad Request: body is not a UTF-8 form with both name and email
//	                 (empty body), or a field fails validation (message in body)
//	500 Internal:    the store rejected the insert (empty body)
//	200 OK:          subscription persisted (empty body)
package subscription

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Veikkosuhonen/cloudcafe/internal/metrics"
	"github.com/Veikkosuhonen/cloudcafe/internal/storage"
	"github.com/Veikkosuhonen/cloudcafe/internal/utils/response"
)

// TracerName identifies the spans emitted by this package.
const TracerName = "github.com/Veikkosuhonen/cloudcafe/internal/http/handlers/subscription"

// Subscribe handles POST /subscribe.
func Subscribe(store storage.Storage, tracer trace.Tracer, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := decodeForm(w, r)
		if err != nil {
			slog.DebugContext(r.Context(), "cannot decode subscription form",
				slog.String("error", err.Error()))
			m.IncrementRejected(metrics.ReasonDecode)
			response.WriteEmpty(w, http.StatusBadRequest)
			return
		}

		// The recorded values are untrusted client input.
		ctx, span := tracer.Start(r.Context(), "Adding a new subscriber",
			trace.WithAttributes(
				attribute.String("subscriber.email", form.Email),
				attribute.String("subscriber.name", form.Name),
			))
		defer span.End()

		newSubscriber, err := form.NewSubscriber()
		if err != nil {
			// Client mistake: never logged above DEBUG.
			slog.DebugContext(ctx, "rejected subscription", slog.String("error", err.Error()))
			m.IncrementRejected(metrics.ReasonValidation)
			_ = response.WriteText(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := insertSubscriber(ctx, tracer, store, newSubscriber); err != nil {
			m.IncrementStoreErrors()
			response.WriteEmpty(w, http.StatusInternalServerError)
			return
		}

		m.IncrementSubscriptionsCreated()
		slog.InfoContext(ctx, "new subscriber has been saved")
		response.WriteEmpty(w, http.StatusOK)
	}
}
