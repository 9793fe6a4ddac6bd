package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/time-matcha/timematcha-backend/config"
	"github.com/time-matcha/timematcha-backend/internal/maintenance"
	"github.com/time-matcha/timematcha-backend/internal/projects/repository"
	"github.com/time-matcha/timematcha-backend/internal/storage/postgres"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: worker purge|cron")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer db.Close()

	purger := maintenance.NewPurger(repository.NewProjectRepository(db))

	switch os.Args[1] {
	case "purge":
		if err := purger.Run(context.Background()); err != nil {
			os.Exit(1)
		}
	case "cron":
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := maintenance.NewScheduler(purger).Start(ctx); err != nil {
			log.Fatalf("scheduler: %v", err)
		}
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}
