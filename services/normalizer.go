package services

import (
	"math"
	"strings"
	"unicode"

	"monster-deals/models"
)

// unitPricePrecision is the number of decimals kept on unit prices. Deal
// evaluation compares the rounded value, so display and filtering agree.
const unitPricePrecision = 4

// Normalize turns a raw listing into a Record. It returns nil when price or
// volume is missing or not positive; no partial record is ever built.
func Normalize(raw models.RawListing) *models.Record {
	if !(raw.Price > 0) || !(raw.Volume > 0) {
		return nil
	}
	if math.IsInf(raw.Price, 0) || math.IsInf(raw.Volume, 0) {
		return nil
	}

	unit := RoundUnitPrice(raw.Price / raw.Volume)
	if unit <= 0 {
		return nil
	}

	return &models.Record{
		RunID:      raw.RunID,
		Source:     raw.Source,
		Identifier: raw.Identifier,
		Title:      normaliseText(raw.Title),
		Price:      raw.Price,
		Volume:     raw.Volume,
		UnitPrice:  unit,
		Link:       raw.Link,
		Seller:     normaliseText(raw.Seller),
		ObservedAt: raw.ObservedAt,
	}
}

// RoundUnitPrice rounds to four decimal places.
func RoundUnitPrice(v float64) float64 {
	p := math.Pow(10, unitPricePrecision)
	return math.Round(v*p) / p
}

// CheapestOffer returns the lowest-priced offer. Ties keep the earliest
// offer, so extraction order decides the provenance label. ok is false for
// an empty list.
func CheapestOffer(offers []models.Offer) (best models.Offer, ok bool) {
	for _, o := range offers {
		if !(o.Price > 0) {
			continue
		}
		if !ok || o.Price < best.Price {
			best, ok = o, true
		}
	}
	return best, ok
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}
