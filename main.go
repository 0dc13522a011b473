package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"monster-deals/config"
	"monster-deals/models"
	"monster-deals/observability"
	"monster-deals/scraper"
	"monster-deals/scraper/amazon"
	"monster-deals/services"
	"monster-deals/storage"
	"monster-deals/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(cfg.LogDebug)
	os.Exit(run(cfg, logger))
}

func run(cfg *config.Config, logger *utils.Logger) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runID := uuid.NewString()
	metrics := observability.NewMetrics()

	logger.Info("=== %s deal tracker starting (run %s) ===", cfg.ProductName, runID)
	logger.Info("Config: threshold $%.4f/fl oz | pages: %d | items: %d | min volume: %g fl oz | delay: %dms | fetch: %s",
		cfg.PriceThreshold, cfg.MaxPages, cfg.MaxItems, cfg.MinVolumeOz, cfg.RequestDelayMs, cfg.FetchMode)

	fetcher, closeFetcher := newFetcher(cfg, logger)
	defer closeFetcher()

	s := amazon.New(cfg, logger, fetcher, metrics, runID)
	records := s.Scrape(ctx)

	if len(records) == 0 {
		logger.Error("No results: possibly blocked by %s. History and report left unchanged.", cfg.SourceName)
		writeMetrics(cfg, metrics, logger)
		return 1
	}

	deals := services.FindDeals(records, cfg.PriceThreshold)
	metrics.DealsFound.Set(float64(len(deals)))
	metrics.BestUnitPrice.Set(services.SortByUnitPrice(records)[0].UnitPrice)

	history, closeHistory, err := newHistoryStore(cfg)
	if err != nil {
		logger.Error("History store unavailable: %v", err)
	} else {
		if _, err := storage.AppendHistory(history, records, logger); err != nil {
			logger.Error("History write failed: %v", err)
		} else {
			logger.Info("History saved (%s backend)", cfg.HistoryBackend)
		}
		closeHistory()
	}

	writeSinks(cfg, records, logger)

	report := services.BuildReport(cfg.ProductName, records, deals, cfg.PriceThreshold, time.Now())
	if err := storage.WriteReport(cfg.ReportPath, report); err != nil {
		logger.Error("Report write failed: %v", err)
	} else {
		logger.Info("Report saved to %s", cfg.ReportPath)
	}
	fmt.Println(report)

	metrics.LastRun.SetToCurrentTime()
	writeMetrics(cfg, metrics, logger)

	fmt.Println(services.Summary(records, deals, cfg.PriceThreshold))
	return 0
}

func newFetcher(cfg *config.Config, logger *utils.Logger) (scraper.Fetcher, func()) {
	if cfg.FetchMode == "browser" {
		b := scraper.NewBrowserFetcher(cfg.ChromeBin, cfg.UserAgent, cfg.RequestTimeout(), cfg.BrowserSettle(), logger)
		return b, func() { _ = b.Close() }
	}
	return scraper.NewHTTPFetcher(cfg.RequestTimeout(), cfg.UserAgent), func() {}
}

func newHistoryStore(cfg *config.Config) (storage.HistoryStore, func(), error) {
	if cfg.HistoryBackend == "sqlite" {
		h, err := storage.NewSQLiteHistory(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return h, func() { _ = h.Close() }, nil
	}
	return storage.NewJSONHistory(cfg.HistoryPath), func() {}, nil
}

// writeSinks sends the run's records to the optional CSV export and
// Postgres mirror. Failures here never stop the run.
func writeSinks(cfg *config.Config, records []*models.Record, logger *utils.Logger) {
	var sinks []storage.RecordWriter

	if cfg.CSVOutputPath != "" {
		csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
		if err != nil {
			logger.Error("Failed to create CSV writer: %v", err)
		} else {
			sinks = append(sinks, csvWriter)
		}
	}

	if cfg.PostgresEnabled {
		pgWriter, err := storage.NewPostgresWriter(cfg.DSN(), logger)
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v", err)
		} else {
			sinks = append(sinks, pgWriter)
		}
	}

	for _, sink := range sinks {
		if err := sink.Write(records); err != nil {
			logger.Error("Record export failed: %v", err)
		}
		if err := sink.Close(); err != nil {
			logger.Warn("Closing record sink: %v", err)
		}
	}
}

func writeMetrics(cfg *config.Config, metrics *observability.Metrics, logger *utils.Logger) {
	if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
		logger.Warn("Metrics textfile not written: %v", err)
	}
}
