package behavior

import (
	"github.com/jengzang/route-finder/internal/models"
)

// TurnOptions configures left-turn detection
type TurnOptions struct {
	MinAngleDelta   float64 // bearing increase, in degrees, that counts as a turn
	NoiseSpeedKnots float64 // decelerating below this speed is not a turn
}

// DefaultTurnOptions provides the default left-turn thresholds
var DefaultTurnOptions = TurnOptions{
	MinAngleDelta:   25.0,
	NoiseSpeedKnots: 10.0,
}

// turnScan is the accumulator threaded through the forward scan
type turnScan struct {
	prevSpeed float64
	prevAngle float64
	turns     []models.Coordinate
}

func (s turnScan) step(f models.Fix, opts TurnOptions) turnScan {
	decelerating := f.Speed < s.prevSpeed && f.Speed < opts.NoiseSpeedKnots
	// Bearings are compared without 0/360 wraparound.
	if !decelerating && f.TrackAngle-s.prevAngle >= opts.MinAngleDelta {
		s.turns = append(s.turns, f.Coordinate())
	}
	s.prevSpeed = f.Speed
	s.prevAngle = f.TrackAngle
	return s
}

// DetectLeftTurns finds fixes where the track angle grew by at least
// MinAngleDelta since the previous fix.
func DetectLeftTurns(fixes []models.Fix, opts TurnOptions) []models.Coordinate {
	if len(fixes) == 0 {
		return []models.Coordinate{}
	}
	scan := turnScan{
		prevSpeed: fixes[0].Speed,
		prevAngle: fixes[0].TrackAngle,
		turns:     []models.Coordinate{},
	}
	for _, f := range fixes {
		scan = scan.step(f, opts)
	}
	return scan.turns
}
