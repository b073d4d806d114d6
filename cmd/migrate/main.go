package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"ml-metadata-service/internal/adapters/secondary/postgres/migrations"
	"ml-metadata-service/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

const usage = `usage: migrate <command>

commands:
  up            apply all pending revisions
  down [n]      roll back the last n revisions (default 1)
  status        show the revision chain and what is applied
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		log.Fatalf("create db pool: %v", err)
	}
	defer pool.Close()

	runner, err := migrations.NewRunner(pool)
	if err != nil {
		log.Fatalf("build revision chain: %v", err)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "up":
		if err := runner.Up(ctx); err != nil {
			log.Fatalf("migrate up: %v", err)
		}
		log.Info("migrations applied")

	case "down":
		n := 1
		if len(os.Args) > 2 {
			n, err = strconv.Atoi(os.Args[2])
			if err != nil || n < 1 {
				log.Fatalf("invalid step count %q", os.Args[2])
			}
		}
		if err := runner.Down(ctx, n); err != nil {
			log.Fatalf("migrate down: %v", err)
		}
		log.Infof("rolled back %d revision(s)", n)

	case "status":
		statuses, err := runner.Status(ctx)
		if err != nil {
			log.Fatalf("migration status: %v", err)
		}
		for _, s := range statuses {
			marker := " "
			if s.Applied {
				marker = "x"
			}
			current := ""
			if s.Current {
				current = " (current)"
			}
			fmt.Printf("[%s] %s  %s%s\n", marker, s.ID, s.Summary, current)
		}

	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}
