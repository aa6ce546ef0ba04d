package scheduler

import (
	"context"
	"time"

	"github.com/lotodata/megasena-backend/internal/repositories"
	"github.com/lotodata/megasena-backend/internal/services"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler periodically refreshes the latest draw in the background.
type Scheduler struct {
	draws  services.DrawService
	status repositories.StatusRepository
	logger *zap.Logger
	cron   *cron.Cron
}

// New creates a Scheduler. The status repository may be nil when no store
// is configured.
func New(draws services.DrawService, status repositories.StatusRepository, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		draws:  draws,
		status: status,
		logger: logger,
		cron:   cron.New(),
	}
}

// Start registers the refresh job with the given cron spec and starts the
// scheduler.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.refreshLatest); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("scheduler started", zap.String("spec", spec))
	return nil
}

// Stop stops the scheduler and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) refreshLatest() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	rec, err := s.draws.GetDraw(ctx, nil)
	if err != nil {
		s.logger.Warn("scheduled refresh failed", zap.Error(err))
		s.appendStatus(ctx, "refresh_failed", map[string]interface{}{
			"tipo": "megasena",
			"erro": err.Error(),
		})
		return
	}

	s.logger.Info("scheduled refresh complete", zap.Int("concurso", rec.Concurso))
	s.appendStatus(ctx, "refresh_complete", map[string]interface{}{
		"tipo":     "megasena",
		"concurso": rec.Concurso,
	})
}

func (s *Scheduler) appendStatus(ctx context.Context, status string, metadata map[string]interface{}) {
	if s.status == nil {
		return
	}
	if _, err := s.status.Append(ctx, status, metadata); err != nil {
		s.logger.Warn("status append failed", zap.Error(err))
	}
}
