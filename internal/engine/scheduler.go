package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// syncTimeout bounds one scheduled quota sync.
const syncTimeout = 30 * time.Second

// Scheduler runs engine jobs on a fixed interval.
type Scheduler struct {
	cron   *cron.Cron
	engine *Engine
	log    *slog.Logger

	quotaEntryID cron.EntryID
	initial      sync.WaitGroup
}

// NewScheduler creates a Scheduler that runs the quota sync every
// quotaInterval. Overlapping runs are skipped.
func NewScheduler(
	eng *Engine,
	quotaInterval time.Duration,
	log *slog.Logger,
) (*Scheduler, error) {
	if quotaInterval <= 0 {
		return nil, fmt.Errorf("quota sync interval must be positive (got %s)", quotaInterval)
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	s := &Scheduler{
		cron:   c,
		engine: eng,
		log:    log,
	}

	id, err := c.AddFunc("@every "+quotaInterval.String(), s.runQuotaSync)
	if err != nil {
		return nil, err
	}
	s.quotaEntryID = id

	return s, nil
}

// Start runs one sync immediately in the background and then begins the
// schedule.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.initial.Add(1)
	go func() {
		defer s.initial.Done()
		s.runQuotaSync()
	}()
	s.cron.Start()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	ctx := s.cron.Stop()
	s.initial.Wait()
	return ctx
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// NextQuotaSync returns when the quota sync next runs. It is zero until the
// scheduler has started.
func (s *Scheduler) NextQuotaSync() time.Time {
	return s.cron.Entry(s.quotaEntryID).Next
}

func (s *Scheduler) runQuotaSync() {
	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	s.engine.SyncQuota(ctx)
}
