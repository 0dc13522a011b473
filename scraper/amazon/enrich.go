package amazon

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"monster-deals/models"
	"monster-deals/scraper"
	"monster-deals/services"
)

// Reasons an identifier yields no record. None of them stops the run.
var (
	ErrNoTitle        = errors.New("no title found")
	ErrOffTopic       = errors.New("title does not mention product keyword")
	ErrNoPrice        = errors.New("no price found")
	ErrNoVolume       = errors.New("no pack size found")
	ErrBelowMinVolume = errors.New("volume below minimum")
	ErrMalformedPage  = errors.New("malformed detail page")
)

// Enrich fetches one product's detail page and returns its normalized
// record, or nil when the product cannot be priced. Failures are logged and
// counted, never returned.
func (s *Scraper) Enrich(ctx context.Context, id string) *models.Record {
	rec, err := s.enrich(ctx, id)
	if err != nil {
		reason := dropReason(err)
		s.metrics.ItemsDropped.WithLabelValues(reason).Inc()
		if reason == "unavailable" || reason == "blocked" {
			s.metrics.FetchFailures.WithLabelValues("enrich").Inc()
			s.logger.Warn("[enrich] %s skipped: %v", id, err)
		} else {
			s.logger.Debug("[enrich] %s dropped: %v", id, err)
		}
		return nil
	}

	s.logger.Info("[enrich] %s: $%.2f for %g fl oz = $%.4f/fl oz (%s)",
		id, rec.Price, rec.Volume, rec.UnitPrice, rec.Seller)
	return rec
}

func (s *Scraper) enrich(ctx context.Context, id string) (*models.Record, error) {
	if err := s.pacer.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", scraper.ErrUnavailable, err)
	}

	link := s.itemURL(id)
	body, err := s.fetcher.Fetch(ctx, link)
	if err != nil {
		return nil, err
	}

	page, err := parseDetailPage(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPage, err)
	}

	if page.Title == "" {
		return nil, ErrNoTitle
	}
	if !strings.Contains(strings.ToLower(page.Title), strings.ToLower(s.cfg.ProductKeyword)) {
		return nil, fmt.Errorf("%w: %q", ErrOffTopic, page.Title)
	}

	best, ok := services.CheapestOffer(page.Offers)
	if !ok {
		return nil, ErrNoPrice
	}

	volume, ok := resolveVolume(page)
	if !ok {
		return nil, ErrNoVolume
	}
	if volume < s.cfg.MinVolumeOz {
		return nil, fmt.Errorf("%w: %g < %g fl oz", ErrBelowMinVolume, volume, s.cfg.MinVolumeOz)
	}

	rec := services.Normalize(models.RawListing{
		Source:     s.cfg.SourceName,
		Identifier: id,
		Title:      page.Title,
		Price:      best.Price,
		Volume:     volume,
		Link:       link,
		Seller:     best.Label,
		ObservedAt: s.now(),
		RunID:      s.runID,
	})
	if rec == nil {
		return nil, ErrNoPrice
	}
	return rec, nil
}

// resolveVolume tries the title first, then each detail block in order.
func resolveVolume(page *detailPage) (float64, bool) {
	if v, ok := services.ExtractVolume(page.Title); ok {
		return v, true
	}
	for _, block := range page.DetailBlocks {
		if v, ok := services.ExtractVolume(block); ok {
			return v, true
		}
	}
	return 0, false
}

func dropReason(err error) string {
	switch {
	case errors.Is(err, scraper.ErrBlocked):
		return "blocked"
	case errors.Is(err, scraper.ErrUnavailable):
		return "unavailable"
	case errors.Is(err, ErrNoTitle):
		return "no_title"
	case errors.Is(err, ErrOffTopic):
		return "off_topic"
	case errors.Is(err, ErrNoPrice):
		return "no_price"
	case errors.Is(err, ErrNoVolume):
		return "no_volume"
	case errors.Is(err, ErrBelowMinVolume):
		return "below_min_volume"
	case errors.Is(err, ErrMalformedPage):
		return "malformed"
	default:
		return "other"
	}
}
