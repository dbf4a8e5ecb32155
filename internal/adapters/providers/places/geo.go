package places

import "math"

// Mean Earth radius in meters.
const earthRadiusMeters = 6371000.0

// haversineMeters returns the great-circle distance between two coordinates,
// rounded to the nearest meter.
func haversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLng := degreesToRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degreesToRadians(lat1))*math.Cos(degreesToRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return math.Round(earthRadiusMeters * c)
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
