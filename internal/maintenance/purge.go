package maintenance

import (
	"context"
	"log"
	"time"
)

// RetentionWindow is how long a soft-deleted project survives before the
// purge job removes it and its answers for good.
const RetentionWindow = 30 * 24 * time.Hour

// PurgeStore removes soft-deleted projects past a cutoff.
type PurgeStore interface {
	PurgeDeleted(ctx context.Context, olderThan time.Duration) (int64, error)
}

// Purger runs the retention sweep over soft-deleted projects.
type Purger struct {
	store PurgeStore
}

func NewPurger(store PurgeStore) *Purger {
	return &Purger{store: store}
}

// Run executes one sweep and logs the outcome.
func (p *Purger) Run(ctx context.Context) error {
	start := time.Now()

	purged, err := p.store.PurgeDeleted(ctx, RetentionWindow)
	if err != nil {
		log.Printf("purge failed: %v", err)
		return err
	}

	log.Printf("purge completed: %d projects removed in %s", purged, time.Since(start).Round(time.Millisecond))
	return nil
}
