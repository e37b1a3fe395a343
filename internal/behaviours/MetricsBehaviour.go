package behaviours

import (
	"Staffline/internal/mediator"
	"Staffline/internal/metrics"
	"context"
	"time"
)

func MetricsBehaviour(_ context.Context, request any, next mediator.Next) error {
	name := mediator.RequestName(request)
	start := time.Now()

	err := next()

	metrics.RequestDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	metrics.RequestsTotal.WithLabelValues(name, Outcome(err)).Inc()
	return err
}
