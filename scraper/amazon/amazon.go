// Package amazon discovers product identifiers from paginated search results
// and enriches each one into a priced record from its detail page.
package amazon

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"monster-deals/config"
	"monster-deals/models"
	"monster-deals/observability"
	"monster-deals/scraper"
	"monster-deals/utils"
)

// Scraper is the run-scoped context for one discovery and enrichment pass.
// It is used from a single goroutine.
type Scraper struct {
	cfg     *config.Config
	logger  *utils.Logger
	fetcher scraper.Fetcher
	pacer   *utils.Pacer
	metrics *observability.Metrics
	runID   string
	now     func() time.Time
}

// New creates a ready-to-use Scraper.
func New(cfg *config.Config, logger *utils.Logger, fetcher scraper.Fetcher, metrics *observability.Metrics, runID string) *Scraper {
	return &Scraper{
		cfg:     cfg,
		logger:  logger,
		fetcher: fetcher,
		pacer:   utils.NewPacer(cfg.RequestDelay(), cfg.RequestJitter()),
		metrics: metrics,
		runID:   runID,
		now:     time.Now,
	}
}

// Scrape runs discovery over the configured number of pages, then enriches
// the discovered identifiers in first-seen order.
func (s *Scraper) Scrape(ctx context.Context) []*models.Record {
	s.logger.Info("[amazon] Starting run %s: up to %d pages, %d items", s.runID, s.cfg.MaxPages, s.cfg.MaxItems)

	ids := s.Discover(ctx, s.cfg.MaxPages)
	s.logger.Info("[amazon] Discovered %d unique products", ids.Size())

	records := s.EnrichAll(ctx, ids.Items())
	s.logger.Info("[amazon] Run complete: %d records", len(records))
	return records
}

// EnrichAll enriches ids in order until MaxItems records have been built.
// Failed items do not count toward the cap; no call is made once it is hit.
func (s *Scraper) EnrichAll(ctx context.Context, ids []string) []*models.Record {
	records := make([]*models.Record, 0, min(len(ids), max(s.cfg.MaxItems, 0)))

	for i, id := range ids {
		if s.cfg.MaxItems > 0 && len(records) >= s.cfg.MaxItems {
			s.logger.Info("[enrich] Reached cap of %d records, skipping %d remaining ids", s.cfg.MaxItems, len(ids)-i)
			break
		}
		if ctx.Err() != nil {
			s.logger.Warn("[enrich] Stopping early: %v", ctx.Err())
			break
		}

		if rec := s.Enrich(ctx, id); rec != nil {
			records = append(records, rec)
			s.metrics.RecordsBuilt.Inc()
		}
	}
	return records
}

func (s *Scraper) searchURL(page int) string {
	q := url.Values{}
	q.Set("k", s.cfg.SearchQuery)
	q.Set("page", strconv.Itoa(page))
	return s.cfg.BaseURL + "/s?" + q.Encode()
}

func (s *Scraper) itemURL(id string) string {
	return s.cfg.BaseURL + "/dp/" + url.PathEscape(id)
}
