package models

import (
	"strconv"
	"strings"

	"github.com/jengzang/route-finder/internal/nmea"
)

// Fix represents one parsed $GPRMC positional sample
type Fix struct {
	Time       string  `json:"time"`       // HHMMSS.sss exactly as logged
	Status     string  `json:"status"`     // A=active, V=void
	Latitude   float64 `json:"latitude"`   // Raw ddmm.mmmm as logged
	NorthSouth string  `json:"northSouth"` // N or S
	Longitude  float64 `json:"longitude"`  // Raw dddmm.mmmm as logged
	EastWest   string  `json:"eastWest"`   // E or W
	Speed      float64 `json:"speed"`      // Knots
	TrackAngle float64 `json:"trackAngle"` // Degrees, 0-360
}

// HasValidTime reports whether the logged time has exactly six digits
// before the decimal point
func (f Fix) HasValidTime() bool {
	whole, _, _ := strings.Cut(f.Time, ".")
	if len(whole) != 6 {
		return false
	}
	for _, r := range whole {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// TimeOfDay converts the HHMMSS time field to seconds since midnight
func (f Fix) TimeOfDay() (int, bool) {
	if !f.HasValidTime() {
		return 0, false
	}
	hours, _ := strconv.Atoi(f.Time[0:2])
	mins, _ := strconv.Atoi(f.Time[2:4])
	secs, _ := strconv.Atoi(f.Time[4:6])
	return hours*60*60 + mins*60 + secs, true
}

// Coordinate returns the fix position in raw logged units
func (f Fix) Coordinate() Coordinate {
	return Coordinate{
		Longitude:  f.Longitude,
		Latitude:   f.Latitude,
		NorthSouth: f.NorthSouth,
		EastWest:   f.EastWest,
	}
}

// Coordinate is a (longitude, latitude) pair marking a position or event.
// Values taken from fixes are raw ddmm.mmmm magnitudes; Degrees converts them.
type Coordinate struct {
	Longitude  float64 `json:"longitude"`
	Latitude   float64 `json:"latitude"`
	NorthSouth string  `json:"-"`
	EastWest   string  `json:"-"`
}

// Degrees converts a raw coordinate to signed decimal degrees
func (c Coordinate) Degrees() Coordinate {
	return Coordinate{
		Longitude: nmea.Degrees(c.Longitude, c.EastWest),
		Latitude:  nmea.Degrees(c.Latitude, c.NorthSouth),
	}
}

// Degrees converts every coordinate in coords
func Degrees(coords []Coordinate) []Coordinate {
	out := make([]Coordinate, 0, len(coords))
	for _, c := range coords {
		out = append(out, c.Degrees())
	}
	return out
}
