package main

import (
	"context"
	"fmt"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/hh-analytics/internal/clients/hh"
	"github.com/maxaizer/hh-analytics/internal/config"
	"github.com/maxaizer/hh-analytics/internal/domain/events"
	"github.com/maxaizer/hh-analytics/internal/logger"
	"github.com/maxaizer/hh-analytics/internal/metrics"
	"github.com/maxaizer/hh-analytics/internal/report"
	"github.com/maxaizer/hh-analytics/internal/repositories"
	"github.com/maxaizer/hh-analytics/internal/services"
	log "github.com/sirupsen/logrus"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
)

const usage = `usage: hh-analytics <command>

commands:
  fetch                 download listings from hh.ru into the snapshot file
  load                  recreate the relations and load the snapshot file
  run                   fetch, then load
  query <1..5> [words]  print a report from the store
  serve                 refresh the store on schedule and expose metrics`

type app struct {
	cfg       *config.Config
	dbContext *repositories.DbContext
	pipeline  *services.Pipeline
	bus       EventBus.Bus
}

func newApp(cfg *config.Config) (*app, error) {

	dbContext, err := repositories.NewDbContext(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("can't create db context: %w", err)
	}

	hhClient := hh.NewClient(cfg.HH.Url)
	hhClient.SetRateLimit(cfg.HH.MaxRequestsPerSecond)

	bus := EventBus.New()
	source := services.NewHHListingSource(hhClient, cfg.HH.Pages, cfg.HH.PerPage, cfg.HH.OnlyWithSalary)
	snapshot := repositories.NewSnapshot(cfg.Pipeline.SnapshotFile)
	vacancies := repositories.NewVacanciesRepository(dbContext.DB, cfg.Pipeline.BatchSize)

	loader, err := services.NewLoader(vacancies, bus, cfg.Pipeline.InvalidListingPolicy)
	if err != nil {
		_ = dbContext.Close()
		return nil, fmt.Errorf("can't create loader: %w", err)
	}

	return &app{
		cfg:       cfg,
		dbContext: dbContext,
		pipeline:  services.NewPipeline(source, snapshot, loader, dbContext, cfg.HH.Keyword),
		bus:       bus,
	}, nil
}

func (a *app) close() {
	if err := a.dbContext.Close(); err != nil {
		log.Warnf("failed to close db: %v", err)
	}
}

func (a *app) fetch(ctx context.Context) error {
	count, err := a.pipeline.Fetch(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("fetched %d listings into %s\n", count, a.cfg.Pipeline.SnapshotFile)
	return nil
}

func (a *app) load(ctx context.Context) error {
	loadReport, err := a.pipeline.Rebuild(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("loaded %d companies and %d vacancies, %d listings rejected\n",
		loadReport.Companies, loadReport.Vacancies, len(loadReport.Rejected))
	return nil
}

func (a *app) run(ctx context.Context) error {
	if err := a.fetch(ctx); err != nil {
		return err
	}
	return a.load(ctx)
}

func (a *app) query(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("query number is required\n%s", usage)
	}
	number, err := strconv.Atoi(args[0])
	if err != nil || number < 1 || number > 5 {
		return fmt.Errorf("query number must be between 1 and 5, got %q", args[0])
	}

	if err = a.dbContext.EnsureSchema(); err != nil {
		return err
	}

	catalog := repositories.NewCatalog(a.dbContext.DB)
	var table report.Table

	switch number {
	case 1:
		rows, err := catalog.CompaniesWithVacancyCount(ctx)
		if err != nil {
			return err
		}
		table = report.CompaniesTable(rows)
	case 2:
		rows, err := catalog.AllVacancies(ctx)
		if err != nil {
			return err
		}
		table = report.VacanciesTable(rows)
	case 3:
		rows, err := catalog.AverageSalary(ctx)
		if err != nil {
			return err
		}
		table = report.AverageSalaryTable(rows)
	case 4:
		rows, err := catalog.VacanciesWithHigherSalary(ctx)
		if err != nil {
			return err
		}
		table = report.VacancySalaryTable(rows)
	case 5:
		rows, err := catalog.VacanciesWithKeyword(ctx, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		table = report.VacancySalaryTable(rows)
	}

	return table.Render(os.Stdout)
}

func (a *app) serve(ctx context.Context) error {

	metrics.StartMetricsServer(a.cfg.Metrics.Port)

	err := a.bus.SubscribeAsync(events.LoadCompletedTopic, func(event events.LoadCompleted) {
		log.WithFields(log.Fields{
			"load_id":   event.LoadID,
			"companies": event.Companies,
			"vacancies": event.Vacancies,
			"rejected":  event.Rejected,
		}).Infof("load completed in %v", event.Duration)
	}, false)
	if err != nil {
		return fmt.Errorf("can't subscribe to load events: %w", err)
	}

	if err = a.dbContext.EnsureSchema(); err != nil {
		return err
	}

	refresher, err := services.NewRefresher(ctx, a.pipeline, a.cfg.Pipeline.RefreshSchedule)
	if err != nil {
		return fmt.Errorf("can't create refresher: %w", err)
	}
	refresher.Start()

	<-ctx.Done()

	log.Info("Shutting down services...")
	refresher.Stop()
	a.bus.WaitAsync()
	log.Info("Services stopped.")
	return nil
}

func main() {

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	a, err := newApp(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer a.close()

	command, args := os.Args[1], os.Args[2:]
	switch command {
	case "fetch":
		err = a.fetch(ctx)
	case "load":
		err = a.load(ctx)
	case "run":
		err = a.run(ctx)
	case "query":
		err = a.query(ctx, args)
	case "serve":
		err = a.serve(ctx)
	default:
		err = fmt.Errorf("unknown command %q\n%s", command, usage)
	}

	if err != nil {
		log.Error(err)
		a.close()
		logger.Cleanup()
		os.Exit(1)
	}
}
