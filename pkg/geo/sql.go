package geo

import "fmt"

// DistanceSQL returns the Haversine distance in meters between the row's
// coordinate columns and a point bound through placeholders, plus the
// bound values in placeholder order.
//
// Only radians, sin, cos, asin, sqrt and power are used so the same text runs
// on Postgres and on SQLite connections that register those functions.
func DistanceSQL(latCol, lonCol string, lat, lon float64) (string, []any) {
	expr := fmt.Sprintf(
		"(%[3]f * 2 * ASIN(SQRT("+
			"POWER(SIN((RADIANS(%[1]s) - RADIANS(?)) / 2), 2) + "+
			"COS(RADIANS(?)) * COS(RADIANS(%[1]s)) * "+
			"POWER(SIN((RADIANS(%[2]s) - RADIANS(?)) / 2), 2))))",
		latCol, lonCol, EarthRadiusM,
	)
	return expr, []any{lat, lat, lon}
}
