package cleanup

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Purger removes stored files older than a given age
type Purger interface {
	PurgeOlderThan(age time.Duration) (int, error)
}

// Scheduler runs retention purges on a cron schedule
type Scheduler struct {
	cron      *cron.Cron
	purger    Purger
	retention time.Duration

	mu      sync.Mutex
	running bool
}

// NewScheduler registers a purge job; schedule accepts standard cron specs and descriptors like "@hourly"
func NewScheduler(purger Purger, schedule string, retention time.Duration) (*Scheduler, error) {
	if retention <= 0 {
		return nil, fmt.Errorf("retention must be positive, got %s", retention)
	}

	s := &Scheduler{
		cron:      cron.New(),
		purger:    purger,
		retention: retention,
	}

	if _, err := s.cron.AddFunc(schedule, func() { s.RunOnce() }); err != nil {
		return nil, fmt.Errorf("failed to add cron job: %w", err)
	}

	return s, nil
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Dur("retention", s.retention).Msg("✅ Upload cleanup scheduler started")
}

// Stop stops the scheduler and waits for a running purge to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("✅ Upload cleanup scheduler stopped")
}

// RunOnce purges expired files immediately; overlapping runs are skipped
func (s *Scheduler) RunOnce() int {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return 0
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	removed, err := s.purger.PurgeOlderThan(s.retention)
	if err != nil {
		log.Error().Err(err).Int("removed", removed).Msg("❌ Upload cleanup failed")
		return removed
	}
	if removed > 0 {
		log.Info().Int("removed", removed).Msg("🧹 Expired uploads removed")
	}
	return removed
}
