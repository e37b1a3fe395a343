package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "staffline",
		Name:      "requests_total",
		Help:      "Handled mediator requests by request name and outcome.",
	}, []string{"request", "outcome"})

	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "staffline",
		Name:      "request_duration_seconds",
		Help:      "Duration of mediator requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"request"})

	MailsSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "staffline",
		Name:      "mails_sent_total",
		Help:      "Outgoing mails by result.",
	}, []string{"result"})
)

// Init registers the collectors on the default registry.
func Init() {
	err := Register(prometheus.DefaultRegisterer)
	if err != nil {
		panic(err)
	}
}

// Register registers the collectors on reg. Collectors that are already
// registered are skipped.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{RequestsTotal, RequestDuration, MailsSent} {
		err := reg.Register(c)
		var alreadyRegistered prometheus.AlreadyRegisteredError
		if err != nil && !errors.As(err, &alreadyRegistered) {
			return err
		}
	}
	return nil
}
