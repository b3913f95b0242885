package spatial

// Point represents a 2D point with latitude and longitude in degrees
type Point struct {
	Lat float64
	Lon float64
}

// PathLengthKm calculates the total length of a path (sequence of points) in kilometers
func PathLengthKm(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}

	var totalDist float64
	for i := 1; i < len(points); i++ {
		totalDist += DistanceKm(points[i-1].Lon, points[i-1].Lat, points[i].Lon, points[i].Lat)
	}

	return totalDist
}
