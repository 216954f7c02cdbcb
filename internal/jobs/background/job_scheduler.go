package background

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"farmfresh/internal/caching"
)

// JobScheduler runs the storefront's periodic maintenance: purging cart
// snapshots idle past the configured window.
type JobScheduler struct {
	scheduler     gocron.Scheduler
	snapshots     caching.SnapshotStore
	purgeInterval time.Duration
	idleWindow    time.Duration
}

func NewJobScheduler(snapshots caching.SnapshotStore, purgeInterval, idleWindow time.Duration) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:     scheduler,
		snapshots:     snapshots,
		purgeInterval: purgeInterval,
		idleWindow:    idleWindow,
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(purgeInterval),
		gocron.NewTask(js.purgeIdleCarts),
		gocron.WithName("cart-snapshot-purge"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	return js, nil
}

// Start starts the job scheduler.
func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler (cart purge every %s, idle window %s)", js.purgeInterval, js.idleWindow)
	js.scheduler.Start()
}

// Stop stops the job scheduler.
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) purgeIdleCarts() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	purged, err := js.snapshots.PurgeIdle(ctx, js.idleWindow)
	if err != nil {
		log.Printf("WARN: cart snapshot purge failed after %d deletions: %v", purged, err)
		return
	}
	if purged > 0 {
		log.Printf("Purged %d idle cart snapshots", purged)
	}
}
