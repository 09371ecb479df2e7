// services/scheduler.go
package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// StartScheduler wires the orchestrator to a daily cron trigger in the
// business timezone and returns the running cron so the caller can stop it.
func StartScheduler(orch *Orchestrator, spec string, loc *time.Location, logger zerolog.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(loc))

	_, err := c.AddFunc(spec, func() {
		summary := orch.Run(context.Background())
		logger.Info().
			Str("date", summary.Date).
			Int("sent", summary.TotalMessagesSent).
			Int("errors", summary.TotalErrors).
			Msg("scheduled messaging run finished")
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	logger.Info().Str("spec", spec).Msg("messaging scheduler started")
	return c, nil
}
