package cron

import (
	"time"

	"soupbarber/services/booking"

	robfigcron "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartSessionSweeper evicts widget sessions idle for longer than maxIdle on
// the given cron schedule (e.g. "@every 5m"). Stop the returned cron on exit.
func StartSessionSweeper(registry *booking.SessionRegistry, schedule string, maxIdle time.Duration, logger *zap.Logger) (*robfigcron.Cron, error) {
	c := robfigcron.New()
	_, err := c.AddFunc(schedule, func() {
		if removed := registry.SweepIdle(maxIdle); removed > 0 {
			logger.Info("[SessionSweeper] evicted idle booking sessions",
				zap.Int("removed", removed), zap.Int("remaining", registry.Len()))
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
