package models

import "time"

// Offer is one observed price for an item together with where it came from
// (primary listing, a seller name, or unlabeled).
type Offer struct {
	Label string
	Price float64
}

// RawListing holds what the enricher recovered for one identifier before
// normalization.
type RawListing struct {
	Source     string
	Identifier string
	Title      string
	Price      float64
	Volume     float64
	Link       string
	Seller     string
	ObservedAt time.Time
	RunID      string
}

// Record is a normalized, priced observation. Price, Volume and UnitPrice are
// always positive; records are never mutated after creation.
type Record struct {
	RunID      string    `json:"run_id,omitempty"`
	Source     string    `json:"retailer"`
	Identifier string    `json:"identifier"`
	Title      string    `json:"title"`
	Price      float64   `json:"price"`
	Volume     float64   `json:"fl_oz"`
	UnitPrice  float64   `json:"price_per_oz"`
	Link       string    `json:"link"`
	Seller     string    `json:"seller,omitempty"`
	ObservedAt time.Time `json:"timestamp"`
}

// Savings is what buying this record saves against threshold, in currency.
// Zero or negative means no saving.
func (r *Record) Savings(threshold float64) float64 {
	return (threshold - r.UnitPrice) * r.Volume
}
