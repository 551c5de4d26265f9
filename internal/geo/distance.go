// Package geo computes distances between points on the Earth's surface.
package geo

import "github.com/tidwall/geodesic"

// Distance returns the geodesic distance in meters between a and b on the
// WGS-84 ellipsoid. Antipodal and identical points are handled.
func Distance(a, b Point) float64 {
	if a == b {
		return 0
	}
	var s12 float64
	geodesic.WGS84.Inverse(a.Lat, a.Lon, b.Lat, b.Lon, &s12, nil, nil)
	return s12
}
