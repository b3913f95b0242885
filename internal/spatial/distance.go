package spatial

import (
	"github.com/golang/geo/s2"
)

// DistanceKm calculates the great-circle distance in kilometers between two
// points given in degrees, longitude first.
//
// s2.LatLng.Distance evaluates the haversine identity
// 2·asin(sqrt(sin²(Δlat/2) + cos(lat1)·cos(lat2)·sin²(Δlon/2))) in its
// equivalent atan2 form.
func DistanceKm(lon1, lat1, lon2, lat2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// Constants
const (
	EarthRadiusKm = 6371.0 // Earth's mean radius in kilometers
)
