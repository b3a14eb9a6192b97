package utils

import "math"

const earthRadiusM = 6371000.0

// HaversineDistance вычисляет расстояние между двумя точками в метрах.
// Фильтр по метро считает расстояние в PostGIS; здесь функция служит
// проверкой OffsetMeters для тестовых фикстур.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

// OffsetMeters сдвигает точку на north/east метров (приближение для малых расстояний)
func OffsetMeters(lat, lon, north, east float64) (float64, float64) {
	dLat := north / earthRadiusM * 180.0 / math.Pi
	dLon := east / (earthRadiusM * math.Cos(lat*math.Pi/180.0)) * 180.0 / math.Pi
	return lat + dLat, lon + dLon
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
