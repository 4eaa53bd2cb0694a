// Command ordergen создаёт тестовые заказы: случайный или заданный клиент, товар,
// корзина, оформление и дата создания в пределах последних двух лет.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ordergen/internal/app"
	"github.com/vladislavdragonenkov/ordergen/internal/service/ordergen"
	"github.com/vladislavdragonenkov/ordergen/internal/version"
)

const usageLine = "usage: ordergen [-customer ID] [-product SKU|PATTERN] [-store ID] [-shipping CODE] [-report FILE] <count>"

type cliConfig struct {
	count       int
	opts        ordergen.Options
	reportPath  string
	showVersion bool
}

// report: JSON-итог партии для -report.
type report struct {
	StartedAt       time.Time `json:"started_at"`
	DurationSeconds float64   `json:"duration_seconds"`
	Requested       int       `json:"requested"`
	Created         int       `json:"created"`
	Failed          int       `json:"failed"`
	Interrupted     bool      `json:"interrupted"`
	IncrementIDs    []string  `json:"increment_ids"`
	// CustomerOrders: сколько всего заказов у клиента из -customer после партии.
	CustomerOrders int `json:"customer_orders,omitempty"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug(".env file not found, relying on environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run возвращает код выхода 0, если создан хотя бы один заказ, 1, если все итерации упали
// или приложение не собралось, и 2 при неверном вызове.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cli, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		fmt.Fprintln(stderr, usageLine)
		return 2
	}
	if cli.showVersion {
		fmt.Fprintln(stdout, version.Banner("ordergen"))
		return 0
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if err := app.ConfigureLogging(stderr, cfg.LogLevel); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	generator, err := app.New(ctx, cfg, stdout)
	if err != nil {
		log.WithError(err).Error("failed to initialize generator")
		return 1
	}
	defer func() {
		if err := generator.Close(); err != nil {
			log.WithError(err).Warn("failed to release resources")
		}
	}()

	started := time.Now()
	summary := generator.Run(ctx, cli.count, cli.opts)

	fmt.Fprintln(stdout, summaryLine(summary))
	if cli.reportPath != "" {
		r := newReport(summary, started, time.Since(started))
		if cli.opts.CustomerID != "" {
			if r.CustomerOrders, err = generator.CustomerOrderCount(cli.opts.CustomerID); err != nil {
				log.WithError(err).Warn("failed to count customer orders")
			}
		}
		if err := writeReport(cli.reportPath, r); err != nil {
			log.WithError(err).Warn("failed to write report")
		}
	}

	if summary.Created == 0 && summary.Failed > 0 {
		return 1
	}
	return 0
}

func parseArgs(args []string, stderr io.Writer) (cliConfig, error) {
	var cli cliConfig

	fs := flag.NewFlagSet("ordergen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, usageLine)
		fs.PrintDefaults()
	}
	fs.StringVar(&cli.opts.CustomerID, "customer", "", "customer ID to use for every order (default: random customer)")
	fs.StringVar(&cli.opts.Product, "product", "", "product SKU, or SKU pattern with % wildcards (default: random product)")
	fs.StringVar(&cli.opts.StoreID, "store", "", "store ID (default: store of the default website)")
	fs.StringVar(&cli.opts.Shipping, "shipping", "", "shipping method: "+strings.Join(ordergen.SupportedShippingMethods, " | "))
	fs.StringVar(&cli.reportPath, "report", "", "optional JSON report output file path")
	fs.BoolVar(&cli.showVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return cli, err
	}
	positional := fs.Args()
	// Флаги после <count> тоже разрешены.
	if len(positional) > 0 {
		first := positional[0]
		if err := fs.Parse(positional[1:]); err != nil {
			return cli, err
		}
		positional = append([]string{first}, fs.Args()...)
	}

	if cli.showVersion {
		return cli, nil
	}
	if len(positional) != 1 {
		return cli, fmt.Errorf("expected exactly one <count> argument, got %d", len(positional))
	}
	count, err := strconv.Atoi(positional[0])
	if err != nil || count <= 0 {
		return cli, fmt.Errorf("count must be a positive integer, got %q", positional[0])
	}
	cli.count = count
	return cli, nil
}

func summaryLine(s ordergen.Summary) string {
	line := fmt.Sprintf("Created %d of %d orders (%d failed)", s.Created, s.Requested, s.Failed)
	if s.Interrupted {
		line += ", interrupted"
	}
	return line
}

func newReport(s ordergen.Summary, started time.Time, elapsed time.Duration) report {
	ids := s.IncrementIDs
	if ids == nil {
		ids = []string{}
	}
	return report{
		StartedAt:       started.UTC(),
		DurationSeconds: elapsed.Seconds(),
		Requested:       s.Requested,
		Created:         s.Created,
		Failed:          s.Failed,
		Interrupted:     s.Interrupted,
		IncrementIDs:    ids,
	}
}

func writeReport(path string, r report) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}
	body, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, append(body, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
