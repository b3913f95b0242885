package nmea

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RMCMarker is the first field of the only sentence type the loader consumes.
const RMCMarker = "$GPRMC"

// rmcFieldCount covers marker, time, status, lat, N/S, lon, E/W, speed, track.
const rmcFieldCount = 9

// ErrBadNumber is returned when a non-empty numeric field cannot be parsed.
var ErrBadNumber = errors.New("nmea: malformed numeric field")

// RMC is one $GPRMC sentence reduced to the fields the route pipeline uses.
// Numeric fields that were empty or absent in the source are NaN.
//
// Fields (NMEA 0183):
//
//	0: $GPRMC
//	1: time (hhmmss.sss)
//	2: status (A=active, V=void)
//	3: latitude (ddmm.mmmm)
//	4: N/S
//	5: longitude (dddmm.mmmm)
//	6: E/W
//	7: speed over ground (knots)
//	8: course over ground (deg)
type RMC struct {
	Time       string
	TimeValue  float64
	Status     string
	Latitude   float64 // raw ddmm.mmmm
	NorthSouth string
	Longitude  float64 // raw dddmm.mmmm
	EastWest   string
	Speed      float64
	TrackAngle float64
}

// IsRMC reports whether the first field of line is exactly $GPRMC.
func IsRMC(line string) bool {
	first, _, _ := strings.Cut(line, ",")
	return first == RMCMarker
}

// ParseRMC parses a $GPRMC line. Only the first nine comma-separated fields
// are read, so a second sentence glued onto the same line is ignored.
func ParseRMC(line string) (RMC, error) {
	parts := strings.Split(strings.TrimRight(line, "\r\n"), ",")
	if parts[0] != RMCMarker {
		return RMC{}, fmt.Errorf("nmea: not a %s sentence", RMCMarker)
	}
	if len(parts) > rmcFieldCount {
		parts = parts[:rmcFieldCount]
	}
	field := func(i int) string {
		if i >= len(parts) {
			return ""
		}
		return strings.TrimSpace(parts[i])
	}

	var (
		out RMC
		err error
	)
	out.Time = field(1)
	out.Status = field(2)
	out.NorthSouth = strings.ToUpper(field(4))
	out.EastWest = strings.ToUpper(field(6))

	if out.TimeValue, err = parseNumber("time", out.Time); err != nil {
		return RMC{}, err
	}
	if out.Latitude, err = parseNumber("latitude", field(3)); err != nil {
		return RMC{}, err
	}
	if out.Longitude, err = parseNumber("longitude", field(5)); err != nil {
		return RMC{}, err
	}
	if out.Speed, err = parseNumber("speed", field(7)); err != nil {
		return RMC{}, err
	}
	if out.TrackAngle, err = parseNumber("tracking angle", field(8)); err != nil {
		return RMC{}, err
	}
	return out, nil
}

// Complete reports whether every numeric field was present.
func (r RMC) Complete() bool {
	for _, v := range []float64{r.TimeValue, r.Latitude, r.Longitude, r.Speed, r.TrackAngle} {
		if math.IsNaN(v) {
			return false
		}
	}
	return true
}

// ToDecimalDegrees converts an NMEA ddmm.mmmm (or dddmm.mmmm) value to degrees.
// v must be the unsigned magnitude as logged.
func ToDecimalDegrees(v float64) float64 {
	deg := math.Floor(v / 100)
	return deg + (v-deg*100)/60
}

// Degrees converts a raw magnitude to signed decimal degrees. S and W are
// negative; N, E or an empty hemisphere stay positive.
func Degrees(raw float64, hemisphere string) float64 {
	deg := ToDecimalDegrees(raw)
	switch hemisphere {
	case "S", "W":
		return -deg
	}
	return deg
}

// parseNumber returns NaN for an empty field and ErrBadNumber for anything
// that is present but not a number.
func parseNumber(name, s string) (float64, error) {
	if s == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrBadNumber, name, s)
	}
	return v, nil
}
