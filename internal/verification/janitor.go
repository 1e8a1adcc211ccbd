package verification

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Purger is anything that can drop its expired codes.
type Purger interface {
	Sweep(ctx context.Context) (int64, error)
}

// RunJanitor calls Sweep on every purger each interval until ctx is done.
func RunJanitor(ctx context.Context, interval time.Duration, purgers ...Purger) {
	if interval <= 0 || len(purgers) == 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	zap.L().Info("verification code janitor started", zap.Duration("interval", interval))
	for {
		select {
		case <-ticker.C:
			for _, p := range purgers {
				n, err := p.Sweep(ctx)
				if err != nil {
					zap.L().Error("failed to sweep expired codes", zap.Error(err))
					continue
				}
				if n > 0 {
					zap.L().Debug("expired codes swept", zap.Int64("count", n))
				}
			}
		case <-ctx.Done():
			zap.L().Info("verification code janitor stopped")
			return
		}
	}
}
