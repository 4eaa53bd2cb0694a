// Command migrate управляет схемой PostgreSQL генератора: up, down, status и seed каталога.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/vladislavdragonenkov/ordergen/internal/fixture"
	"github.com/vladislavdragonenkov/ordergen/internal/storage/postgres"
)

const (
	defaultTimeout = 30 * time.Second
	dsnEnv         = "ORDERGEN_POSTGRES_DSN"
)

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		direction string
		steps     int
		dsn       string
		fixtureAt string
	)
	fs.StringVar(&direction, "direction", "up", "migration direction: up|down|status|seed")
	fs.IntVar(&steps, "steps", 0, "number of migrations to apply/rollback (0=all for up, 1 for down)")
	fs.StringVar(&dsn, "dsn", "", "PostgreSQL DSN (fallback: "+dsnEnv+")")
	fs.StringVar(&fixtureAt, "fixture", "", "JSON catalog for -direction=seed (empty = built-in demo catalog)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	direction = strings.ToLower(strings.TrimSpace(direction))
	switch direction {
	case "up", "down", "status", "seed":
	default:
		return fail(stderr, "unsupported direction: %s (use up|down|status|seed)", direction)
	}

	if strings.TrimSpace(dsn) == "" {
		dsn = strings.TrimSpace(os.Getenv(dsnEnv))
	}
	if dsn == "" {
		return fail(stderr, "%s (or -dsn) is required", dsnEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	store, err := postgres.Open(ctx, dsn)
	if err != nil {
		return fail(stderr, "open postgres store: %v", err)
	}
	defer store.Close()

	switch direction {
	case "up":
		if err := store.MigrateUp(ctx, steps); err != nil {
			return fail(stderr, "migrate up failed: %v", err)
		}
	case "down":
		if steps <= 0 {
			steps = 1
		}
		if err := store.MigrateDown(ctx, steps); err != nil {
			return fail(stderr, "migrate down failed: %v", err)
		}
	case "seed":
		f := fixture.Demo()
		if fixtureAt != "" {
			if f, err = fixture.Load(fixtureAt); err != nil {
				return fail(stderr, "load fixture: %v", err)
			}
		}
		if err := store.MigrateUp(ctx, 0); err != nil {
			return fail(stderr, "migrate up failed: %v", err)
		}
		if err := store.Seed(ctx, f); err != nil {
			return fail(stderr, "seed failed: %v", err)
		}
		fmt.Fprintf(stdout, "seeded: customers=%d products=%d stores=%d\n", len(f.Customers), len(f.Products), len(f.Stores))
	}

	state, err := store.MigrationStatus(ctx)
	if err != nil {
		return fail(stderr, "migration status failed: %v", err)
	}
	fmt.Fprintf(stdout, "migrate %s ok: version=%d applied=%d pending=%d\n", direction, state.Version, state.Applied, len(state.Pending))
	return 0
}

func fail(w io.Writer, format string, args ...any) int {
	_, _ = fmt.Fprintf(w, format+"\n", args...)
	return 1
}
