package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jengzang/route-finder/internal/analysis/foundation"
	"github.com/jengzang/route-finder/internal/models"
)

// Collector holds the route finder's Prometheus metrics on a private registry
type Collector struct {
	reg *prometheus.Registry

	Runs          *prometheus.CounterVec // outcome label: selected|no_qualifying_trip|error
	TripsScored   prometheus.Counter
	TripsSelected prometheus.Counter
	FixesInput    prometheus.Counter
	FixesDropped  *prometheus.CounterVec // reason label: cleaning rule
	RouteCost     prometheus.Histogram
	RunDuration   prometheus.Histogram
}

// NewCollector creates and registers the route finder metrics
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "routefinder_runs_total",
			Help: "Pipeline runs by outcome.",
		}, []string{"outcome"}),
		TripsScored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "routefinder_trips_scored_total",
			Help: "Total trips cleaned and scored.",
		}),
		TripsSelected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "routefinder_best_replacements_total",
			Help: "Times a trip replaced the running best during selection.",
		}),
		FixesInput: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "routefinder_fixes_input_total",
			Help: "Total $GPRMC fixes read before cleaning.",
		}),
		FixesDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "routefinder_fixes_dropped_total",
			Help: "Fixes removed during cleaning, by rule.",
		}, []string{"reason"}),
		RouteCost: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "routefinder_route_cost",
			Help:    "Cost of every scored route.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "routefinder_run_duration_seconds",
			Help:    "Wall time of a full load, clean and score run.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		}),
	}

	reg.MustRegister(
		c.Runs, c.TripsScored, c.TripsSelected,
		c.FixesInput, c.FixesDropped,
		c.RouteCost, c.RunDuration,
	)

	return c
}

// ObserveClean records the outcome of cleaning one trip
func (c *Collector) ObserveClean(report foundation.CleanReport) {
	c.FixesInput.Add(float64(report.Input))
	for reason, n := range report.Dropped {
		c.FixesDropped.WithLabelValues(reason).Add(float64(n))
	}
}

// ObserveRoute records a scored route
func (c *Collector) ObserveRoute(route models.ScoredTrip, selected bool) {
	c.TripsScored.Inc()
	c.RouteCost.Observe(route.Cost)
	if selected {
		c.TripsSelected.Inc()
	}
}

// Handler serves the registry in the Prometheus exposition format
func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }
