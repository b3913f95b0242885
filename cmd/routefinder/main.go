// Command routefinder selects the cheapest qualifying trip from a directory
// of GPS logs and writes it as a KML file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/jengzang/route-finder/internal/config"
	"github.com/jengzang/route-finder/internal/models"
	"github.com/jengzang/route-finder/internal/repository"
	"github.com/jengzang/route-finder/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	dir := flag.String("dir", cfg.LogDir, "directory of GPS log files")
	out := flag.String("out", cfg.KMLOutput, "KML output path")
	configFile := flag.String("config", "", "YAML file with pipeline thresholds")
	skip := flag.Bool("skip-corrupt", cfg.SkipCorruptFiles, "skip logs with malformed fields instead of failing")
	flag.Parse()

	if *configFile != "" {
		if err := cfg.LoadPipelineFile(*configFile); err != nil {
			log.Fatal(err)
		}
		if err := cfg.Validate(); err != nil {
			log.Fatal(err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, *dir, *out, *skip); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config.Config, dir, out string, skipCorrupt bool) error {
	svc := service.NewRouteService(repository.NewLogRepository(dir, skipCorrupt), cfg.Pipeline, nil)

	result, err := svc.Analyze(ctx)
	if err != nil {
		return err
	}

	best, err := svc.BestRoute(result)
	if service.IsNoQualifyingTrip(err) {
		log.Printf("[routefinder] %v: nothing in %s lasted longer than %.1f minutes", err, dir, cfg.Pipeline.TimeThresholdMin)
		return nil
	}
	if err != nil {
		return err
	}
	logBest(best)

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	if err := svc.WriteBestKML(f, result); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("[routefinder] Wrote %s to %s", best.Name, out)
	return nil
}

func logBest(best *models.BestRoute) {
	log.Printf("Min Cost function %f", best.Cost)
	log.Printf("min time %f", best.Duration)
	log.Printf("Min left turns %d", len(best.LeftTurns))
	log.Printf("Min stop signs %d", len(best.Stops))
}
