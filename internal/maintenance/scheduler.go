package maintenance

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	purger *Purger
}

func NewScheduler(purger *Purger) *Scheduler {
	return &Scheduler{purger: purger}
}

// Start schedules the nightly purge at 12:00 AM and blocks until the cron
// runner is stopped.
func (s *Scheduler) Start(ctx context.Context) error {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc("0 0 0 * * *", func() {
		if err := s.purger.Run(ctx); err != nil {
			log.Printf("nightly purge: %v", err)
		}
	})
	if err != nil {
		return err
	}

	log.Println("cron scheduler started (nightly purge at 12:00AM)")
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
