package analysis

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/jengzang/route-finder/internal/analysis/behavior"
	"github.com/jengzang/route-finder/internal/analysis/foundation"
	"github.com/jengzang/route-finder/internal/analysis/scoring"
	"github.com/jengzang/route-finder/internal/models"
	"github.com/jengzang/route-finder/internal/spatial"
)

// Options holds every threshold the pipeline uses
type Options struct {
	Cleaning         foundation.CleaningThresholds
	Stops            behavior.StopOptions
	Turns            behavior.TurnOptions
	Weights          scoring.Weights
	TimeThresholdMin float64 // trips must last longer than this to be selected
}

// DefaultOptions returns the thresholds the route finder ships with
func DefaultOptions() Options {
	return Options{
		Cleaning:         foundation.DefaultCleaningThresholds,
		Stops:            behavior.DefaultStopOptions,
		Turns:            behavior.DefaultTurnOptions,
		Weights:          scoring.DefaultWeights,
		TimeThresholdMin: 22,
	}
}

// Recorder receives per-trip observations during a run
type Recorder interface {
	ObserveClean(report foundation.CleanReport)
	ObserveRoute(route models.ScoredTrip, selected bool)
}

// Progress represents the progress of a run
type Progress struct {
	Processed int     // Number of trips scored
	Total     int     // Total number of trips
	Percent   float64 // Progress percentage (0-100)
}

// Engine cleans, scores and selects trips
type Engine struct {
	Options  Options
	Recorder Recorder // optional
}

// NewEngine creates an engine with the given options
func NewEngine(opts Options) *Engine {
	return &Engine{Options: opts}
}

// Score detects events on a cleaned trip and computes its cost
func (e *Engine) Score(trip models.Trip) models.ScoredTrip {
	stops := behavior.DetectStops(trip.Fixes, e.Options.Stops)
	turns := behavior.DetectLeftTurns(trip.Fixes, e.Options.Turns)
	duration := scoring.Duration(trip)

	points := make([]spatial.Point, 0, trip.Len())
	for _, f := range trip.Fixes {
		c := f.Coordinate().Degrees()
		points = append(points, spatial.Point{Lat: c.Latitude, Lon: c.Longitude})
	}

	return models.ScoredTrip{
		Trip:       trip,
		Name:       trip.Name,
		Cost:       scoring.Cost(duration, len(turns), len(stops), e.Options.Weights),
		Duration:   duration,
		DistanceKm: spatial.PathLengthKm(points),
		Stops:      stops,
		LeftTurns:  turns,
	}
}

// Run cleans every raw trip, scores it and selects the best route. A run in
// which nothing qualifies is not an error: Analysis.Best is nil.
func (e *Engine) Run(ctx context.Context, raws []foundation.RawTrip) (*models.Analysis, error) {
	runID := uuid.NewString()
	log.Printf("[Engine] Starting run %s over %d trips", runID, len(raws))

	selector := scoring.NewSelector(e.Options.TimeThresholdMin)
	result := &models.Analysis{
		RunID:     runID,
		Routes:    make([]models.ScoredTrip, 0, len(raws)),
		BestIndex: -1,
	}

	for i, raw := range raws {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run %s cancelled: %w", runID, err)
		}

		trip, report := foundation.CleanTrip(raw, e.Options.Cleaning)
		if e.Recorder != nil {
			e.Recorder.ObserveClean(report)
		}
		if report.Removed() > 0 {
			log.Printf("[Engine] %s: kept %d of %d fixes %v", raw.Name, report.Output, report.Input, report.Dropped)
		}

		scored := e.Score(trip)
		scored.Qualified = selector.Qualifies(scored.Duration)
		selected := selector.Offer(scored)
		if selected {
			result.BestIndex = i
		}
		if e.Recorder != nil {
			e.Recorder.ObserveRoute(scored, selected)
		}
		result.Routes = append(result.Routes, scored)

		progress := Progress{Processed: i + 1, Total: len(raws)}
		progress.Percent = float64(progress.Processed) / float64(progress.Total) * 100.0
		log.Printf("[Engine] Scored %s: cost=%.3f duration=%.2fmin stops=%d left_turns=%d (%.0f%%)",
			scored.Name, scored.Cost, scored.Duration, len(scored.Stops), len(scored.LeftTurns), progress.Percent)
	}

	result.MinCost = selector.MinCost()
	best, err := selector.Best()
	switch {
	case errors.Is(err, scoring.ErrNoQualifyingTrip):
		log.Printf("[Engine] Run %s: no trip longer than %.1f minutes", runID, e.Options.TimeThresholdMin)
	case err != nil:
		return nil, err
	default:
		result.Best = &best
		log.Printf("[Engine] Run %s selected %s (cost=%.3f)", runID, best.Name, best.Cost)
	}

	return result, nil
}
