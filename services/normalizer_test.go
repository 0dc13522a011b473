package services

import (
	"testing"
	"time"

	"monster-deals/models"
)

func TestNormalizeComputesRoundedUnitPrice(t *testing.T) {
	r := Normalize(models.RawListing{
		Source:     "Amazon",
		Identifier: "B000TEST01",
		Title:      "  Monster   Energy 16 Fl Oz (Pack of 24) ",
		Price:      32.48,
		Volume:     384,
		ObservedAt: time.Unix(0, 0),
	})
	if r == nil {
		t.Fatal("expected a record")
	}
	if r.UnitPrice != 0.0846 {
		t.Errorf("UnitPrice: got %v, want 0.0846", r.UnitPrice)
	}
	if r.Title != "Monster Energy 16 Fl Oz (Pack of 24)" {
		t.Errorf("Title not normalised: %q", r.Title)
	}
}

func TestNormalizeRejectsNonPositive(t *testing.T) {
	tests := []models.RawListing{
		{Price: 0, Volume: 384},
		{Price: 20, Volume: 0},
		{Price: -1, Volume: 10},
		{Price: 20, Volume: -5},
		{Price: 0.00001, Volume: 1000},
	}
	for _, raw := range tests {
		if r := Normalize(raw); r != nil {
			t.Errorf("Normalize(price=%v, volume=%v) should be nil, got %+v", raw.Price, raw.Volume, r)
		}
	}
}

func TestRoundUnitPrice(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.084583, 0.0846},
		{0.12, 0.12},
		{0.11994, 0.1199},
	}
	for _, tt := range tests {
		if got := RoundUnitPrice(tt.in); got != tt.want {
			t.Errorf("RoundUnitPrice(%v) = %v; want %v", tt.in, got, tt.want)
		}
	}
}

func TestCheapestOffer(t *testing.T) {
	offers := []models.Offer{
		{Label: "primary listing", Price: 30.99},
		{Label: "Seller A", Price: 28.50},
		{Label: "Seller B", Price: 28.50},
		{Label: "unlabeled", Price: 40},
	}
	best, ok := CheapestOffer(offers)
	if !ok {
		t.Fatal("expected an offer")
	}
	if best.Label != "Seller A" || best.Price != 28.50 {
		t.Errorf("got %+v; want Seller A at 28.50", best)
	}

	if _, ok := CheapestOffer(nil); ok {
		t.Error("empty offer list should report ok=false")
	}
}
