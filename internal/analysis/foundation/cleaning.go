package foundation

import (
	"github.com/jengzang/route-finder/internal/models"
	"github.com/jengzang/route-finder/internal/spatial"
)

// CleaningThresholds defines configurable thresholds for fix cleaning
type CleaningThresholds struct {
	JunkDistanceKm float64 // 5, measured on raw ddmm.mmmm values
}

// DefaultCleaningThresholds provides the default cleaning thresholds
var DefaultCleaningThresholds = CleaningThresholds{
	JunkDistanceKm: 5.0, // a single jump this long between samples is a bad fix
}

// Drop reasons recorded in a CleanReport
const (
	ReasonMissingField = "MISSING_FIELD"
	ReasonDuplicate    = "DUPLICATE"
	ReasonBadTime      = "BAD_TIME"
	ReasonJump         = "JUMP"
	ReasonBadEndTime   = "BAD_END_TIME"
)

// CleanReport counts the fixes removed from a trip, by reason
type CleanReport struct {
	Input   int
	Output  int
	Dropped map[string]int
}

func newCleanReport(input int) CleanReport {
	return CleanReport{Input: input, Dropped: make(map[string]int)}
}

// CleanTrip removes incomplete, duplicate, badly timed and jumping fixes.
// The input trip is not modified.
func CleanTrip(raw RawTrip, th CleaningThresholds) (models.Trip, CleanReport) {
	report := newCleanReport(len(raw.Records))

	// Rule 1: MISSING_FIELD
	fixes := make([]models.Fix, 0, len(raw.Records))
	for _, rec := range raw.Records {
		if !rec.Complete() {
			report.Dropped[ReasonMissingField]++
			continue
		}
		fixes = append(fixes, models.Fix{
			Time:       rec.Time,
			Status:     rec.Status,
			Latitude:   rec.Latitude,
			NorthSouth: rec.NorthSouth,
			Longitude:  rec.Longitude,
			EastWest:   rec.EastWest,
			Speed:      rec.Speed,
			TrackAngle: rec.TrackAngle,
		})
	}

	trip := models.Trip{Name: raw.Name, Fixes: fixes}
	cleaned, sub := CleanFixes(trip, th)
	for reason, n := range sub.Dropped {
		report.Dropped[reason] += n
	}
	report.Output = cleaned.Len()
	return cleaned, report
}

// CleanFixes applies the duplicate, timestamp and jump rules to an
// already-parsed trip and returns a new trip.
func CleanFixes(trip models.Trip, th CleaningThresholds) (models.Trip, CleanReport) {
	report := newCleanReport(trip.Len())

	// Rule 2: DUPLICATE - same lat/lon anywhere in the trip, first one wins
	type position struct{ lat, lon float64 }
	seen := make(map[position]struct{}, trip.Len())
	fixes := make([]models.Fix, 0, trip.Len())
	for _, f := range trip.Fixes {
		key := position{f.Latitude, f.Longitude}
		if _, dup := seen[key]; dup {
			report.Dropped[ReasonDuplicate]++
			continue
		}
		seen[key] = struct{}{}
		fixes = append(fixes, f)
	}

	if len(fixes) == 0 {
		report.Output = 0
		return models.Trip{Name: trip.Name, Fixes: fixes}, report
	}

	// Rules 3-5 mark indexes in one pass and remove them together at the end
	removing := make(map[int]string)
	for i := 0; i < len(fixes)-1; i++ {
		cur, next := fixes[i], fixes[i+1]

		// Rule 3: BAD_TIME - the pair's jump check is skipped too
		if !cur.HasValidTime() {
			removing[i] = ReasonBadTime
			continue
		}

		// Rule 4: JUMP - blame the arrival fix. Distance is taken on the raw
		// logged values.
		if spatial.DistanceKm(cur.Longitude, cur.Latitude, next.Longitude, next.Latitude) >= th.JunkDistanceKm {
			if _, marked := removing[i+1]; !marked {
				removing[i+1] = ReasonJump
			}
		}
	}

	// Rule 5: BAD_END_TIME
	last := len(fixes) - 1
	if !fixes[last].HasValidTime() {
		if _, marked := removing[last]; !marked {
			removing[last] = ReasonBadEndTime
		}
	}

	kept := make([]models.Fix, 0, len(fixes)-len(removing))
	for i, f := range fixes {
		if reason, drop := removing[i]; drop {
			report.Dropped[reason]++
			continue
		}
		kept = append(kept, f)
	}

	report.Output = len(kept)
	return models.Trip{Name: trip.Name, Fixes: kept}, report
}

// Removed returns the total number of dropped fixes
func (r CleanReport) Removed() int {
	total := 0
	for _, n := range r.Dropped {
		total += n
	}
	return total
}
