package nmea

import (
	"errors"
	"math"
	"testing"
)

func TestIsRMC(t *testing.T) {
	cases := map[string]bool{
		"$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A": true,
		"$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47":     false,
		"GPRMC,123519,A":  false,
		"":                false,
		"$GPRMCX,1,2,3,4": false,
		" $GPRMC,123519,A": false,
		"$GPRMC ,123519,A": false,
	}
	for line, want := range cases {
		if got := IsRMC(line); got != want {
			t.Fatalf("IsRMC(%q) = %v, want %v", line, got, want)
		}
	}
}

func TestParseRMC_Fields(t *testing.T) {
	r, err := ParseRMC("$GPRMC,123519.000,A,4807.038,N,01131.000,W,022.4,084.4,230394,003.1,W*6A")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if r.Time != "123519.000" || r.TimeValue != 123519 {
		t.Fatalf("unexpected time %q/%v", r.Time, r.TimeValue)
	}
	if r.Status != "A" {
		t.Fatalf("unexpected status %q", r.Status)
	}
	if r.Latitude != 4807.038 || r.Longitude != 1131.0 {
		t.Fatalf("unexpected raw coords %v,%v", r.Latitude, r.Longitude)
	}
	if r.Speed != 22.4 || r.TrackAngle != 84.4 {
		t.Fatalf("unexpected speed/track %v/%v", r.Speed, r.TrackAngle)
	}
	if !r.Complete() {
		t.Fatalf("expected complete")
	}
	if r.NorthSouth != "N" || r.EastWest != "W" {
		t.Fatalf("unexpected hemispheres %q/%q", r.NorthSouth, r.EastWest)
	}
}

func TestParseRMC_MarkerMustMatchExactly(t *testing.T) {
	if _, err := ParseRMC(" $GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4"); err == nil {
		t.Fatalf("expected error for padded marker")
	}
	if _, err := ParseRMC("$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4\r\n"); err != nil {
		t.Fatalf("line ending should be tolerated: %v", err)
	}
}

func TestParseRMC_SecondSentenceIgnored(t *testing.T) {
	line := "$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4$GPGGA,123520,4807.038,N,01131.000,E,1,08"
	_, err := ParseRMC(line)
	if !errors.Is(err, ErrBadNumber) {
		t.Fatalf("glued track angle should fail to parse, got %v", err)
	}

	line = "$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,$GPGGA,junk,junk"
	r, err := ParseRMC(line)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if r.TrackAngle != 84.4 {
		t.Fatalf("unexpected track %v", r.TrackAngle)
	}
}

func TestParseRMC_EmptyFieldsAreMissing(t *testing.T) {
	r, err := ParseRMC("$GPRMC,123519,V,,,,,,")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if r.Complete() {
		t.Fatalf("expected incomplete")
	}
	if !math.IsNaN(r.Latitude) || !math.IsNaN(r.TrackAngle) {
		t.Fatalf("expected NaN for missing fields, got %+v", r)
	}

	r, err = ParseRMC("$GPRMC,123519,A")
	if err != nil {
		t.Fatalf("short line: unexpected err: %v", err)
	}
	if r.Complete() {
		t.Fatalf("short line: expected incomplete")
	}
}

func TestParseRMC_MalformedNumber(t *testing.T) {
	_, err := ParseRMC("$GPRMC,12AB19,A,4807.038,N,01131.000,E,022.4,084.4")
	if !errors.Is(err, ErrBadNumber) {
		t.Fatalf("expected ErrBadNumber, got %v", err)
	}
}

func TestToDecimalDegrees(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{4807.038, 48 + 7.038/60},
		{1131.000, 11 + 31.0/60},
		{7736.5, 77 + 36.5/60},
		{0, 0},
	}
	for _, tc := range cases {
		if got := ToDecimalDegrees(tc.in); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("ToDecimalDegrees(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestDegrees(t *testing.T) {
	cases := []struct {
		raw        float64
		hemisphere string
		want       float64
	}{
		{4807.038, "N", 48 + 7.038/60},
		{4807.038, "S", -(48 + 7.038/60)},
		{1131.000, "W", -(11 + 31.0/60)},
		{1131.000, "E", 11 + 31.0/60},
		{1131.000, "", 11 + 31.0/60},
	}
	for _, tc := range cases {
		if got := Degrees(tc.raw, tc.hemisphere); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("Degrees(%v, %q) = %v, want %v", tc.raw, tc.hemisphere, got, tc.want)
		}
	}
}
