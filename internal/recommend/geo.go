package recommend

import "math"

const earthRadiusKm = 6371

// Haversine возвращает расстояние по большому кругу в километрах.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// filterWithinRadius keeps candidates that lie within radiusKm of at least
// one primary place. With no primaries the result is always empty.
func filterWithinRadius(primary, candidates []scoredPlace, radiusKm float64) []scoredPlace {
	filtered := make([]scoredPlace, 0, len(candidates))

	for _, candidate := range candidates {
		for _, anchor := range primary {
			d := Haversine(
				candidate.place.Latitude, candidate.place.Longitude,
				anchor.place.Latitude, anchor.place.Longitude,
			)
			if d <= radiusKm {
				filtered = append(filtered, candidate)
				break
			}
		}
	}

	return filtered
}
