package models

// ScoredTrip associates a trip with its cost and detected events
type ScoredTrip struct {
	Trip       Trip         `json:"-"`
	Name       string       `json:"name"`
	Cost       float64      `json:"cost"`
	Duration   float64      `json:"duration"`   // Minutes, signed (no midnight rollover)
	DistanceKm float64      `json:"distanceKm"` // Path length, diagnostic only
	Stops      []Coordinate `json:"stops"`
	LeftTurns  []Coordinate `json:"leftTurns"`
	Qualified  bool         `json:"qualified"` // Duration above the selection threshold
}

// Analysis represents one run of the route pipeline over a set of trips
type Analysis struct {
	RunID     string       `json:"runId"`
	Routes    []ScoredTrip `json:"routes"`
	Best      *ScoredTrip  `json:"best,omitempty"`
	BestIndex int          `json:"-"` // index of Best in Routes, -1 when none
	MinCost   float64      `json:"-"` // +Inf when no route qualifies
}

// RouteSummary is the per-route row returned by the list endpoint
type RouteSummary struct {
	Name       string  `json:"name"`
	Fixes      int     `json:"fixes"`
	Cost       float64 `json:"cost"`
	Duration   float64 `json:"duration"`
	DistanceKm float64 `json:"distanceKm"`
	StopCount  int     `json:"stopCount"`
	TurnCount  int     `json:"leftTurnCount"`
	Qualified  bool    `json:"qualified"`
	Best       bool    `json:"best"`
}

// BestRoute is the selected route with everything the exporter needs
type BestRoute struct {
	RunID     string       `json:"runId"`
	Name      string       `json:"name"`
	Cost      float64      `json:"cost"`
	Duration  float64      `json:"duration"`
	Path      []Coordinate `json:"path"`
	Stops     []Coordinate `json:"stops"`
	LeftTurns []Coordinate `json:"leftTurns"`
}
