package utils

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestIDSetNoDuplicates(t *testing.T) {
	s := NewIDSet()

	if !s.Add("B000A") {
		t.Error("first Add should return true")
	}
	if s.Add("B000A") {
		t.Error("second Add of same id should return false")
	}
	s.Add("B000B")

	if s.Size() != 2 {
		t.Errorf("size: got %d, want 2", s.Size())
	}
	if !s.Contains("B000B") || s.Contains("B000C") {
		t.Error("Contains reported wrong membership")
	}
}

func TestIDSetItemsKeepsFirstSeenOrder(t *testing.T) {
	s := NewIDSet()
	for _, id := range []string{"c", "a", "c", "b", "a"} {
		s.Add(id)
	}

	got := strings.Join(s.Items(), ",")
	if got != "c,a,b" {
		t.Errorf("Items: got %q, want %q", got, "c,a,b")
	}

	items := s.Items()
	items[0] = "mutated"
	if s.Items()[0] != "c" {
		t.Error("Items must return a copy")
	}
}

func TestPacerSpacesRequests(t *testing.T) {
	interval := 50 * time.Millisecond
	p := NewPacer(interval, 0)
	ctx := context.Background()

	var stamps []time.Time
	for i := 0; i < 3; i++ {
		if err := p.Wait(ctx); err != nil {
			t.Fatal(err)
		}
		stamps = append(stamps, time.Now())
	}

	for i := 1; i < len(stamps); i++ {
		if gap := stamps[i].Sub(stamps[i-1]); gap < interval {
			t.Errorf("gap between request %d and %d: %v < minimum %v", i-1, i, gap, interval)
		}
	}
}

func TestPacerPausesAfterSlowRequest(t *testing.T) {
	interval := 40 * time.Millisecond
	p := NewPacer(interval, 0)
	ctx := context.Background()

	if err := p.Wait(ctx); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		// The request itself outlasts the interval.
		time.Sleep(3 * interval)
		finished := time.Now()

		if err := p.Wait(ctx); err != nil {
			t.Fatal(err)
		}
		if gap := time.Since(finished); gap < interval {
			t.Errorf("pause after request %d: %v < minimum %v", i, gap, interval)
		}
	}
}

func TestPacerFirstWaitIsImmediate(t *testing.T) {
	p := NewPacer(time.Hour, 0)
	start := time.Now()
	if err := p.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}
	if time.Since(start) > 100*time.Millisecond {
		t.Error("first Wait should not sleep")
	}
}

func TestPacerHonoursCancellation(t *testing.T) {
	p := NewPacer(time.Hour, 0)
	_ = p.Wait(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait on cancelled ctx: got %v, want context.Canceled", err)
	}
}

func TestRetryStopsOnSuccess(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, Logger: NewDiscardLogger()}
	calls := 0
	err := r.Do("op", func() error {
		calls++
		if calls < 2 {
			return errors.New("boom")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls: got %d, want 2", calls)
	}
}

func TestRetryWrapsLastError(t *testing.T) {
	sentinel := errors.New("down")
	r := &RetryConfig{MaxAttempts: 2, BaseDelay: time.Millisecond}
	err := r.Do("ping", func() error { return sentinel })
	if !errors.Is(err, sentinel) {
		t.Errorf("expected wrapped sentinel, got %v", err)
	}
}

func TestLoggerDebugGate(t *testing.T) {
	var out bytes.Buffer
	quiet := NewLoggerTo(&out, &out, false)
	quiet.Debug("hidden %d", 1)
	if out.Len() != 0 {
		t.Errorf("debug output should be suppressed, got %q", out.String())
	}

	loud := NewLoggerTo(&out, &out, true)
	loud.Debug("shown %d", 2)
	if !strings.Contains(out.String(), "shown 2") {
		t.Errorf("debug output missing, got %q", out.String())
	}
}
