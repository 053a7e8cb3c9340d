package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Purger drops expired cache entries and reports how many were removed.
type Purger interface {
	PurgeExpired() int
}

// Janitor periodically purges expired entries from the service caches so the
// process-wide maps do not grow without bound across distinct lookups. It
// never issues network calls and never changes what a lookup returns.
type Janitor struct {
	scheduler *gocron.Scheduler
	purger    Purger
	interval  time.Duration
}

// New creates a Janitor sweeping at the given interval.
func New(purger Purger, interval time.Duration) *Janitor {
	return &Janitor{
		scheduler: gocron.NewScheduler(time.UTC),
		purger:    purger,
		interval:  interval,
	}
}

// Start schedules the sweep job and starts the underlying scheduler.
func (j *Janitor) Start() error {
	seconds := int(j.interval.Seconds())
	if seconds <= 0 {
		seconds = 300
	}

	_, err := j.scheduler.Every(seconds).Seconds().Do(func() {
		if dropped := j.purger.PurgeExpired(); dropped > 0 {
			log.Printf("janitor: dropped %d expired cache entries", dropped)
		}
	})
	if err != nil {
		return err
	}

	j.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future sweeps.
func (j *Janitor) Stop() {
	if j.scheduler != nil {
		j.scheduler.Stop()
	}
}
