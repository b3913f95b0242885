package behavior

import (
	"github.com/jengzang/route-finder/internal/models"
	"github.com/jengzang/route-finder/internal/spatial"
)

// StopOptions configures stop detection
type StopOptions struct {
	SpeedThresholdKnots float64 // below this a fix is a stop candidate
	MergeRadiusKm       float64 // a candidate this close to the previous stop replaces it, on raw values
}

// DefaultStopOptions matches stop signs and signals seen in city driving logs
var DefaultStopOptions = StopOptions{
	SpeedThresholdKnots: 1.0,
	MergeRadiusKm:       10.0,
}

// stopScan is the accumulator threaded through the forward scan
type stopScan struct {
	stops []models.Coordinate
}

func (s stopScan) step(f models.Fix, opts StopOptions) stopScan {
	if f.Speed >= opts.SpeedThresholdKnots {
		return s
	}
	if n := len(s.stops); n > 0 {
		prev := s.stops[n-1]
		if spatial.DistanceKm(f.Longitude, f.Latitude, prev.Longitude, prev.Latitude) <= opts.MergeRadiusKm {
			s.stops = s.stops[:n-1]
		}
	}
	s.stops = append(s.stops, f.Coordinate())
	return s
}

// DetectStops finds the places where the vehicle came to a stop. One
// stationary episode yields one stop: its last low-speed sample.
func DetectStops(fixes []models.Fix, opts StopOptions) []models.Coordinate {
	scan := stopScan{stops: []models.Coordinate{}}
	for _, f := range fixes {
		scan = scan.step(f, opts)
	}
	return scan.stops
}
