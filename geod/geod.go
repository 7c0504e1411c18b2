// Package geod defines the geodesic operations consumed by projections and
// provides a great-circle implementation on a sphere.
//
// Angles are degrees, distances are in the units of the engine's equatorial
// radius. Azimuths are measured clockwise from north.
package geod

// Engine solves geodesic problems on an ellipsoid of revolution. An Engine
// is owned by the caller and is never mutated by its consumers, so a single
// value may back any number of projections concurrently as long as its own
// methods are reentrant.
type Engine interface {
	// Inverse solves the inverse geodesic problem from point 1 to point 2,
	// returning the azimuths at both ends (degrees), the reduced length m12,
	// and the geodesic scale M12.
	Inverse(lat1, lon1, lat2, lon2 float64) (azi1, azi2, m12, M12 float64)

	// Line constructs a geodesic line starting at point 1 with azimuth azi1,
	// positioned by arc length.
	Line(lat1, lon1, azi1 float64) Line

	// Radius returns the equatorial radius of the ellipsoid.
	Radius() float64
}

// Line is a geodesic line produced by an Engine.
type Line interface {
	// Position evaluates the line at distance s from its start point,
	// returning the point, the forward azimuth there (degrees), the reduced
	// length m12, and the geodesic scale M12.
	Position(s float64) (lat, lon, azi, m12, M12 float64)
}
