package usecase

import (
	"context"
	"time"

	"movie-reservation/internal/data/repository"
	"movie-reservation/pkg/utils"

	"go.uber.org/zap"
)

// LockSweeper periodically deletes expired seat locks. Expired locks are
// already invisible to availability and unusable for commit, so the sweeper
// only reclaims storage; correctness never depends on it having run.
type LockSweeper struct {
	repo      *repository.Repository
	interval  time.Duration
	batchSize int
	log       *zap.Logger
}

func NewLockSweeper(repo *repository.Repository, cfg utils.ReservationConfig, log *zap.Logger) *LockSweeper {
	return &LockSweeper{
		repo:      repo,
		interval:  cfg.SweepInterval(),
		batchSize: cfg.SweepBatchSize,
		log:       log.With(zap.String("service", "lock_sweeper")),
	}
}

// Run sweeps on every tick until ctx is cancelled. Intended to be launched
// as a goroutine next to the HTTP server.
func (s *LockSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("Lock sweeper started",
		zap.Duration("interval", s.interval),
		zap.Int("batch_size", s.batchSize),
	)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Lock sweeper stopped")
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil {
				// Keep ticking; expired rows stay harmless until the next pass.
				s.log.Error("Sweep failed", zap.Error(err))
			}
		}
	}
}

// SweepOnce deletes expired locks in batches until none remain and returns
// the total removed.
func (s *LockSweeper) SweepOnce(ctx context.Context) (int64, error) {
	var total int64
	for {
		deleted, err := s.repo.SeatLock.DeleteExpired(ctx, s.batchSize)
		if err != nil {
			return total, err
		}
		total += deleted
		if deleted < int64(s.batchSize) {
			break
		}
	}

	if total > 0 {
		s.log.Info("Swept expired seat locks", zap.Int64("deleted", total))
	}
	return total, nil
}
