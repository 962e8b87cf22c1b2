package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"backoffice/api/internal/repository"
)

// Scheduler runs the background maintenance the identity subsystem needs:
// sweeping expired and consumed recovery tokens out of the store.
type Scheduler struct {
	cron   *cron.Cron
	tokens repository.RecoveryTokenStore
	log    zerolog.Logger
}

func NewScheduler(tokens repository.RecoveryTokenStore, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		tokens: tokens,
		log:    log,
	}
}

func (s *Scheduler) Start() error {
	if s.tokens == nil {
		return nil
	}

	if _, err := s.cron.AddFunc("@hourly", s.purgeRecoveryTokens); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits for a running purge to finish, up to a short grace period.
func (s *Scheduler) Stop() {
	select {
	case <-s.cron.Stop().Done():
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) purgeRecoveryTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	purged, err := s.tokens.PurgeExpired(ctx, time.Now())
	if err != nil {
		s.log.Error().Err(err).Msg("recovery token purge failed")
		return
	}
	if purged > 0 {
		s.log.Info().Int64("purged", purged).Msg("recovery tokens purged")
	}
}
