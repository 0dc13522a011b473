package services

import (
	"sort"

	"monster-deals/models"
)

// FindDeals returns every record whose unit price is at or below threshold.
func FindDeals(records []*models.Record, threshold float64) []*models.Record {
	var deals []*models.Record
	for _, r := range records {
		if r.UnitPrice <= threshold {
			deals = append(deals, r)
		}
	}
	return deals
}

// SortByUnitPrice returns a copy of records ordered by ascending unit price.
// Equal unit prices fall back to identifier, then title, so the order does
// not depend on input order.
func SortByUnitPrice(records []*models.Record) []*models.Record {
	out := make([]*models.Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UnitPrice != out[j].UnitPrice {
			return out[i].UnitPrice < out[j].UnitPrice
		}
		if out[i].Identifier != out[j].Identifier {
			return out[i].Identifier < out[j].Identifier
		}
		return out[i].Title < out[j].Title
	})
	return out
}
