package retry

import (
	"Staffline/internal/logging"
	"context"
	"time"
)

// Times calls f until it succeeds or it has been called attempts times,
// sleeping interval between calls. It returns the last error.
func Times(ctx context.Context, attempts int, interval time.Duration, f func() error, msg string) error {
	var err error
	for i := 0; i < attempts; i++ {
		err = f()
		if err == nil {
			return nil
		}

		logging.Logger.Infof(msg+": %v", err)
		if i == attempts-1 {
			break
		}

		logging.Logger.Infof("Retrying in %s (attempt %d/%d)", interval, i+1, attempts)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}

	return err
}

func FiveTimes(ctx context.Context, f func() error, msg string) error {
	return Times(ctx, 5, 5*time.Second, f, msg)
}
