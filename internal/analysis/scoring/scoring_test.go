package scoring

import (
	"errors"
	"math"
	"testing"

	"github.com/jengzang/route-finder/internal/models"
)

func tripWithTimes(times ...string) models.Trip {
	trip := models.Trip{Name: "t"}
	for _, tm := range times {
		trip.Fixes = append(trip.Fixes, models.Fix{Time: tm})
	}
	return trip
}

func TestDuration(t *testing.T) {
	cases := []struct {
		name string
		trip models.Trip
		want float64
	}{
		{"empty", tripWithTimes(), 0},
		{"single fix", tripWithTimes("120000.000"), 0},
		{"thirty minutes", tripWithTimes("120000.000", "121000.000", "123000.000"), 30},
		{"seconds", tripWithTimes("120000", "120030"), 0.5},
		{"across midnight", tripWithTimes("235000.000", "001000.000"), -1420},
		{"unreadable end", tripWithTimes("120000.000", "1230"), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Duration(tc.trip); math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCost(t *testing.T) {
	got := Cost(30, 4, 10, DefaultWeights)
	want := 0.7*30 + 0.2*4 + 0.1*10
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("got %v, want %v", got, want)
	}
	if Cost(-30, 0, 0, DefaultWeights) != Cost(30, 0, 0, DefaultWeights) {
		t.Fatalf("cost should use absolute duration")
	}
}

func TestSelector_PicksCheapestQualifyingTrip(t *testing.T) {
	sel := NewSelector(22)
	sel.Offer(models.ScoredTrip{Name: "A", Duration: 10, Cost: 1})
	sel.Offer(models.ScoredTrip{Name: "B", Duration: 25, Cost: 5})
	sel.Offer(models.ScoredTrip{Name: "C", Duration: 30, Cost: 3})

	best, err := sel.Best()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if best.Name != "C" {
		t.Fatalf("expected C, got %s", best.Name)
	}
	if sel.MinCost() != 3 {
		t.Fatalf("expected min cost 3, got %v", sel.MinCost())
	}
}

func TestSelector_TieKeepsFirst(t *testing.T) {
	sel := NewSelector(22)
	if !sel.Offer(models.ScoredTrip{Name: "first", Duration: 30, Cost: 3}) {
		t.Fatalf("first candidate should be accepted")
	}
	if sel.Offer(models.ScoredTrip{Name: "second", Duration: 40, Cost: 3}) {
		t.Fatalf("equal cost should not replace the best")
	}
	best, _ := sel.Best()
	if best.Name != "first" {
		t.Fatalf("expected first, got %s", best.Name)
	}
}

func TestSelector_ThresholdIsStrictAndSigned(t *testing.T) {
	sel := NewSelector(22)
	sel.Offer(models.ScoredTrip{Name: "exact", Duration: 22, Cost: 1})
	sel.Offer(models.ScoredTrip{Name: "midnight", Duration: -1420, Cost: 2})

	if _, err := sel.Best(); !errors.Is(err, ErrNoQualifyingTrip) {
		t.Fatalf("expected ErrNoQualifyingTrip, got %v", err)
	}
	if !math.IsInf(sel.MinCost(), 1) {
		t.Fatalf("expected +Inf min cost, got %v", sel.MinCost())
	}
}
