package crontab

import (
	"context"
	"fmt"

	"github.com/mileusna/crontab"

	"movision-server/internal/config"
	"movision-server/internal/domain/ratelimit"
	"movision-server/internal/domain/session"
	"movision-server/internal/infrastructure/logger"
	"movision-server/internal/infrastructure/metrics"
	"movision-server/internal/utils/apperrors"
)

// Crontab schedules the background sweeps that bound memory held by the
// session store and the rate limiters.
type Crontab struct {
	ctab           *crontab.Crontab
	sessions       *session.Store
	generalLimiter *ratelimit.Limiter
	aiLimiter      *ratelimit.Limiter
}

func NewCrontab(
	sessions *session.Store,
	generalLimiter *ratelimit.Limiter,
	aiLimiter *ratelimit.Limiter,
) *Crontab {
	return &Crontab{
		ctab:           crontab.New(),
		sessions:       sessions,
		generalLimiter: generalLimiter,
		aiLimiter:      aiLimiter,
	}
}

// Run registers the sweep jobs and blocks until ctx is cancelled.
func (c *Crontab) Run(ctx context.Context) error {
	log := logger.GetLogger()

	sweepInterval := config.DefaultSessionSweepMinutes
	if cfg := config.GetGlobal(); cfg != nil && cfg.SessionSweepInterval > 0 {
		sweepInterval = cfg.SessionSweepInterval
	}

	sessionExpr := fmt.Sprintf("*/%d * * * *", sweepInterval)
	if err := c.ctab.AddJob(sessionExpr, c.sweepSessions); err != nil {
		return apperrors.AsError(ctx, apperrors.LayerInfrastructure, err, "failed to add session sweep job")
	}

	if err := c.ctab.AddJob(sessionExpr, c.sweepGeneralLimiter); err != nil {
		return apperrors.AsError(ctx, apperrors.LayerInfrastructure, err, "failed to add rate limiter sweep job")
	}

	// The AI window is a day long; hourly sweeps are plenty.
	if err := c.ctab.AddJob("0 * * * *", c.sweepAILimiter); err != nil {
		return apperrors.AsError(ctx, apperrors.LayerInfrastructure, err, "failed to add AI rate limiter sweep job")
	}

	log.Info().Int("sweep_interval_minutes", sweepInterval).Msg("background sweeps scheduled")

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

func (c *Crontab) sweepSessions() {
	removed := c.sessions.Sweep()
	metrics.ActiveSessions.Set(float64(c.sessions.Count()))
	if removed > 0 {
		log := logger.GetLogger()
		log.Info().Int("removed", removed).Msg("expired sessions swept")
	}
}

func (c *Crontab) sweepGeneralLimiter() {
	if removed := c.generalLimiter.Sweep(); removed > 0 {
		log := logger.GetLogger()
		log.Info().Int("removed", removed).Msg("expired rate limit records swept")
	}
}

func (c *Crontab) sweepAILimiter() {
	if removed := c.aiLimiter.Sweep(); removed > 0 {
		log := logger.GetLogger()
		log.Info().Int("removed", removed).Msg("expired AI rate limit records swept")
	}
}
