package repository

import (
	"fmt"
	"io"

	"github.com/jengzang/route-finder/internal/analysis/foundation"
)

// LogRepository reads trip logs from a directory on disk
type LogRepository struct {
	dir  string
	opts foundation.LoadOptions
}

// NewLogRepository creates a new log repository
func NewLogRepository(dir string, skipCorrupt bool) *LogRepository {
	return &LogRepository{
		dir:  dir,
		opts: foundation.LoadOptions{SkipCorrupt: skipCorrupt},
	}
}

// Dir returns the directory the repository reads from
func (r *LogRepository) Dir() string {
	return r.dir
}

// GetTrips loads every log in the directory
func (r *LogRepository) GetTrips() ([]foundation.RawTrip, error) {
	trips, err := foundation.LoadDir(r.dir, r.opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load trips: %w", err)
	}
	return trips, nil
}

// Upload is a log supplied by a client rather than read from disk
type Upload struct {
	Name   string
	Reader io.Reader
}

// ReadUploads parses uploaded logs. Unlike directory loads, a corrupt upload
// always fails the request.
func ReadUploads(uploads []Upload) ([]foundation.RawTrip, error) {
	trips := make([]foundation.RawTrip, 0, len(uploads))
	for _, u := range uploads {
		trip, err := foundation.ReadTrip(u.Reader, u.Name)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, nil
}
