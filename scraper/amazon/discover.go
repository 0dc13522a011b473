package amazon

import (
	"context"

	"monster-deals/utils"
)

// Discover walks search pages 1..maxPages and collects product identifiers.
// A page that fails to fetch is skipped; a page with no product cards ends
// discovery. Requests are spaced by the pacer.
func (s *Scraper) Discover(ctx context.Context, maxPages int) *utils.IDSet {
	ids := utils.NewIDSet()

	for page := 1; page <= maxPages; page++ {
		if err := s.pacer.Wait(ctx); err != nil {
			s.logger.Warn("[discover] Stopping before page %d: %v", page, err)
			break
		}

		pageURL := s.searchURL(page)
		s.logger.Info("[discover] Fetching page %d: %s", page, pageURL)

		body, err := s.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			s.metrics.FetchFailures.WithLabelValues("discover").Inc()
			s.logger.Warn("[discover] Page %d failed, skipping: %v", page, err)
			continue
		}
		s.metrics.PagesFetched.Inc()

		cards, err := parseSearchPage(body)
		if err != nil {
			s.logger.Warn("[discover] Page %d unparsable, skipping: %v", page, err)
			continue
		}

		// An empty page may be the real end of results or a page that did
		// not render; both stop discovery.
		if len(cards) == 0 {
			s.logger.Warn("[discover] Page %d returned 0 product cards, stopping", page)
			break
		}

		added := 0
		for _, id := range cards {
			if ids.Contains(id) {
				s.logger.Debug("[discover] Skipping duplicate: %s", id)
				continue
			}
			ids.Add(id)
			added++
		}
		s.logger.Info("[discover] Page %d: %d cards, %d new (total %d)", page, len(cards), added, ids.Size())
	}

	return ids
}
