package behaviours

import (
	"Staffline/internal/logging"
	"Staffline/internal/mediator"
	"context"
	"time"
)

func LoggingBehaviour(_ context.Context, request any, next mediator.Next) error {
	name := mediator.RequestName(request)
	start := time.Now()

	err := next()

	outcome := Outcome(err)
	switch outcome {
	case OutcomeOk:
		logging.Logger.Debugw("handled request", "request", name, "duration", time.Since(start))

	case OutcomeRejected:
		logging.Logger.Infow("rejected request", "request", name, "duration", time.Since(start), "reason", err.Error())

	default:
		logging.Logger.Errorw("request failed", "request", name, "duration", time.Since(start), "kind", outcome, "error", err)
	}

	return err
}
