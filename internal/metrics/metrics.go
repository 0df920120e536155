package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rejection reasons used as the "reason" label.
const (
	ReasonDecode     = "decode"
	ReasonValidation = "validation"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	SubscriptionsCreated  prometheus.Counter
	SubscriptionsRejected *prometheus.CounterVec
	StoreErrors           prometheus.Counter
}

// New creates the metrics and registers them with reg. Each test passes its
// own registry so repeated construction never collides.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SubscriptionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "cloudcafe_subscriptions_created_total",
			Help: "Total number of subscriptions persisted",
		}),
		SubscriptionsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cloudcafe_subscriptions_rejected_total",
			Help: "Total number of subscription requests rejected with 400, by reason",
		}, []string{"reason"}),
		StoreErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "cloudcafe_subscription_store_errors_total",
			Help: "Total number of subscriptions that failed to persist",
		}),
	}
}

// IncrementSubscriptionsCreated increments the created counter by 1
func (m *Metrics) IncrementSubscriptionsCreated() {
	m.SubscriptionsCreated.Inc()
}

func (m *Metrics) IncrementRejected(reason string) {
	m.SubscriptionsRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncrementStoreErrors() {
	m.StoreErrors.Inc()
}
