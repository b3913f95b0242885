package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/jengzang/route-finder/internal/analysis"
	"github.com/jengzang/route-finder/internal/analysis/behavior"
	"github.com/jengzang/route-finder/internal/analysis/foundation"
	"github.com/jengzang/route-finder/internal/analysis/scoring"
	"github.com/jengzang/route-finder/internal/config"
	"github.com/jengzang/route-finder/internal/export"
	"github.com/jengzang/route-finder/internal/metrics"
	"github.com/jengzang/route-finder/internal/models"
	"github.com/jengzang/route-finder/internal/repository"
)

// ErrNoQualifyingTrip is returned when no trip passes the duration threshold
var ErrNoQualifyingTrip = scoring.ErrNoQualifyingTrip

// RouteService handles business logic for route selection
type RouteService struct {
	repo    *repository.LogRepository
	engine  *analysis.Engine
	metrics *metrics.Collector
}

// NewRouteService creates a new route service. collector may be nil.
func NewRouteService(repo *repository.LogRepository, pipeline config.PipelineConfig, collector *metrics.Collector) *RouteService {
	engine := analysis.NewEngine(OptionsFromConfig(pipeline))
	if collector != nil {
		engine.Recorder = collector
	}
	return &RouteService{
		repo:    repo,
		engine:  engine,
		metrics: collector,
	}
}

// OptionsFromConfig maps configured thresholds onto pipeline options
func OptionsFromConfig(p config.PipelineConfig) analysis.Options {
	return analysis.Options{
		Cleaning: foundation.CleaningThresholds{
			JunkDistanceKm: p.JunkDistanceKm,
		},
		Stops: behavior.StopOptions{
			SpeedThresholdKnots: p.StopSpeedKnots,
			MergeRadiusKm:       p.StopMergeRadiusKm,
		},
		Turns: behavior.TurnOptions{
			MinAngleDelta:   p.TurnMinAngleDelta,
			NoiseSpeedKnots: p.TurnNoiseSpeedKnots,
		},
		Weights: scoring.Weights{
			Time:     p.Weights.Time,
			LeftTurn: p.Weights.LeftTurn,
			Stop:     p.Weights.Stop,
		},
		TimeThresholdMin: p.TimeThresholdMin,
	}
}

// Analyze runs the pipeline over every log in the repository
func (s *RouteService) Analyze(ctx context.Context) (*models.Analysis, error) {
	start := time.Now()
	trips, err := s.repo.GetTrips()
	if err != nil {
		s.observeRun(start, nil, err)
		return nil, err
	}
	return s.run(ctx, start, trips)
}

// AnalyzeUploads runs the pipeline over client-supplied logs
func (s *RouteService) AnalyzeUploads(ctx context.Context, uploads []repository.Upload) (*models.Analysis, error) {
	start := time.Now()
	trips, err := repository.ReadUploads(uploads)
	if err != nil {
		s.observeRun(start, nil, err)
		return nil, err
	}
	return s.run(ctx, start, trips)
}

func (s *RouteService) run(ctx context.Context, start time.Time, trips []foundation.RawTrip) (*models.Analysis, error) {
	result, err := s.engine.Run(ctx, trips)
	s.observeRun(start, result, err)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze routes: %w", err)
	}
	return result, nil
}

func (s *RouteService) observeRun(start time.Time, result *models.Analysis, err error) {
	outcome := "selected"
	switch {
	case err != nil:
		outcome = "error"
		log.Printf("[RouteService] Run failed: %v", err)
	case result.Best == nil:
		outcome = "no_qualifying_trip"
	}
	if s.metrics == nil {
		return
	}
	s.metrics.Runs.WithLabelValues(outcome).Inc()
	s.metrics.RunDuration.Observe(time.Since(start).Seconds())
}

// Summaries lists every scored route of an analysis
func (s *RouteService) Summaries(result *models.Analysis) []models.RouteSummary {
	out := make([]models.RouteSummary, 0, len(result.Routes))
	for i, r := range result.Routes {
		out = append(out, models.RouteSummary{
			Name:       r.Name,
			Fixes:      r.Trip.Len(),
			Cost:       r.Cost,
			Duration:   r.Duration,
			DistanceKm: r.DistanceKm,
			StopCount:  len(r.Stops),
			TurnCount:  len(r.LeftTurns),
			Qualified:  r.Qualified,
			Best:       result.Best != nil && i == result.BestIndex,
		})
	}
	return out
}

// BestRoute returns the selected route of an analysis or ErrNoQualifyingTrip
func (s *RouteService) BestRoute(result *models.Analysis) (*models.BestRoute, error) {
	if result.Best == nil {
		return nil, ErrNoQualifyingTrip
	}
	best := result.Best
	return &models.BestRoute{
		RunID:     result.RunID,
		Name:      best.Name,
		Cost:      best.Cost,
		Duration:  best.Duration,
		Path:      models.Degrees(best.Trip.Path()),
		Stops:     models.Degrees(best.Stops),
		LeftTurns: models.Degrees(best.LeftTurns),
	}, nil
}

// WriteBestKML renders the selected route of an analysis as KML
func (s *RouteService) WriteBestKML(w io.Writer, result *models.Analysis) error {
	if result.Best == nil {
		return ErrNoQualifyingTrip
	}
	return export.WriteKML(w, export.FromRoute(*result.Best))
}

// IsNoQualifyingTrip reports whether err means nothing could be selected
func IsNoQualifyingTrip(err error) bool {
	return errors.Is(err, ErrNoQualifyingTrip)
}
