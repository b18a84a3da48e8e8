package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for credential issuance and validation.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Issued           *prometheus.CounterVec
	Validations      *prometheus.CounterVec
	PublishFailures  *prometheus.CounterVec
	StoreWriteErrors *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Issued: f.NewCounterVec(prometheus.CounterOpts{
			Name: "verification_credentials_issued_total",
			Help: "Credentials issued, by channel and delivery outcome",
		}, []string{"channel", "delivered"}),
		Validations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "verification_validations_total",
			Help: "Validation attempts, by channel and result",
		}, []string{"channel", "result"}),
		PublishFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "verification_publish_failures_total",
			Help: "Delivery requests the notification bus did not accept",
		}, []string{"topic"}),
		StoreWriteErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "verification_store_write_errors_total",
			Help: "Credential store writes that failed",
		}, []string{"channel"}),
	}
}

func (m *Metrics) ObserveIssued(channel string, delivered bool) {
	if m == nil {
		return
	}
	m.Issued.WithLabelValues(channel, boolLabel(delivered)).Inc()
}

func (m *Metrics) ObserveValidation(channel string, ok bool) {
	if m == nil {
		return
	}
	result := "mismatch"
	if ok {
		result = "match"
	}
	m.Validations.WithLabelValues(channel, result).Inc()
}

func (m *Metrics) ObservePublishFailure(topic string) {
	if m == nil {
		return
	}
	m.PublishFailures.WithLabelValues(topic).Inc()
}

func (m *Metrics) ObserveStoreWriteError(channel string) {
	if m == nil {
		return
	}
	m.StoreWriteErrors.WithLabelValues(channel).Inc()
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
