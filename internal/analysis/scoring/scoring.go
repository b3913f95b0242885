package scoring

import (
	"errors"
	"math"

	"github.com/jengzang/route-finder/internal/models"
)

// ErrNoQualifyingTrip is returned when no trip passes the duration threshold
var ErrNoQualifyingTrip = errors.New("no qualifying trip")

// Weights defines the cost function coefficients
type Weights struct {
	Time     float64 // per minute of |duration|
	LeftTurn float64 // per detected left turn
	Stop     float64 // per detected stop
}

// DefaultWeights provides the default cost function coefficients
var DefaultWeights = Weights{
	Time:     0.7,
	LeftTurn: 0.2,
	Stop:     0.1,
}

// Duration returns the minutes between the first and last fix. Times are
// seconds of day, so a trip crossing midnight comes out negative.
func Duration(trip models.Trip) float64 {
	if trip.Len() < 2 {
		return 0
	}
	start, ok := trip.Fixes[0].TimeOfDay()
	if !ok {
		return 0
	}
	end, ok := trip.Fixes[trip.Len()-1].TimeOfDay()
	if !ok {
		return 0
	}
	return float64(end-start) / 60
}

// Cost combines duration and event counts into a single trip cost
func Cost(duration float64, leftTurns, stops int, w Weights) float64 {
	return w.Time*math.Abs(duration) + w.LeftTurn*float64(leftTurns) + w.Stop*float64(stops)
}

// Selector keeps the running minimum-cost trip among those whose duration
// exceeds the threshold
type Selector struct {
	threshold float64
	minCost   float64
	best      *models.ScoredTrip
}

// NewSelector creates a selector with the given duration threshold in minutes
func NewSelector(thresholdMinutes float64) *Selector {
	return &Selector{
		threshold: thresholdMinutes,
		minCost:   math.Inf(1),
	}
}

// Qualifies reports whether a trip of the given signed duration may be selected
func (s *Selector) Qualifies(duration float64) bool {
	return duration > s.threshold
}

// Offer considers a candidate and reports whether it became the new best.
// The threshold compares signed duration; Cost uses its absolute value.
func (s *Selector) Offer(candidate models.ScoredTrip) bool {
	if candidate.Cost < s.minCost && s.Qualifies(candidate.Duration) {
		s.minCost = candidate.Cost
		c := candidate
		s.best = &c
		return true
	}
	return false
}

// MinCost returns the lowest qualifying cost seen, or +Inf
func (s *Selector) MinCost() float64 {
	return s.minCost
}

// Best returns the selected trip or ErrNoQualifyingTrip
func (s *Selector) Best() (models.ScoredTrip, error) {
	if s.best == nil {
		return models.ScoredTrip{}, ErrNoQualifyingTrip
	}
	return *s.best, nil
}
