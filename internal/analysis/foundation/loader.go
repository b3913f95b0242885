package foundation

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/jengzang/route-finder/internal/nmea"
)

// ErrMalformedField is returned when a log line carries a numeric field that
// is present but unparseable. The whole file is rejected.
var ErrMalformedField = nmea.ErrBadNumber

// maxLineBytes bounds a single log line; NMEA sentences are far shorter
const maxLineBytes = 1024 * 1024

// RawTrip holds the $GPRMC records of one log file before cleaning
type RawTrip struct {
	Name    string
	Records []nmea.RMC
}

// LoadOptions controls directory loading
type LoadOptions struct {
	SkipCorrupt bool // log and skip files with malformed fields instead of failing
}

// ReadTrip reads $GPRMC records from r. Any other sentence type is ignored.
func ReadTrip(r io.Reader, name string) (RawTrip, error) {
	trip := RawTrip{Name: name}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if !nmea.IsRMC(line) {
			continue
		}
		rec, err := nmea.ParseRMC(line)
		if err != nil {
			return RawTrip{}, fmt.Errorf("%s line %d: %w", name, lineNo, err)
		}
		trip.Records = append(trip.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		return RawTrip{}, fmt.Errorf("failed to read %s: %w", name, err)
	}

	return trip, nil
}

// LoadFile reads one log file into a RawTrip named after the file
func LoadFile(path string) (RawTrip, error) {
	f, err := os.Open(path)
	if err != nil {
		return RawTrip{}, fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	return ReadTrip(f, filepath.Base(path))
}

// LoadDir reads every regular file in dir, in lexical order
func LoadDir(dir string, opts LoadOptions) ([]RawTrip, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list log directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	trips := make([]RawTrip, 0, len(names))
	for _, name := range names {
		trip, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			if opts.SkipCorrupt && errors.Is(err, ErrMalformedField) {
				log.Printf("[Loader] Skipping corrupt log: %v", err)
				continue
			}
			return nil, err
		}
		trips = append(trips, trip)
	}

	log.Printf("[Loader] Loaded %d trips from %s", len(trips), dir)
	return trips, nil
}
