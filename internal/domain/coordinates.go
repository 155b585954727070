package domain

import "math"

// Immutable geographic coordinates (latitude, longitude) in WGS84 degrees.
// Values are stored as-is; range validation is left to the providers.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Mean Earth radius in kilometers.
const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two points in
// kilometers, rounded to two decimals to match provider precision.
// It ignores road networks and systematically under-estimates travel
// distance, which is why it is only the last resort of the provider chain.
func HaversineKm(a, b Coordinates) float64 {
	phi1 := a.Lat * math.Pi / 180
	phi2 := b.Lat * math.Pi / 180
	dPhi := (b.Lat - a.Lat) * math.Pi / 180
	dLambda := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)

	return RoundKm(2 * earthRadiusKm * math.Asin(math.Sqrt(h)))
}

// RoundKm rounds a distance to two decimal places so cached entries and
// display values are uniformly formatted.
func RoundKm(km float64) float64 {
	return math.Round(km*100) / 100
}
