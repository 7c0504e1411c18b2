package geod

import (
	"math"

	"github.com/tidwall/geodesic"
)

// EarthRadius is the WGS84 equatorial radius in meters, used by
// NewEarthSphere.
const EarthRadius = 6378137.0

// Spherical is an Engine backed by great-circle calculations on a sphere.
// On a sphere the auxiliary quantities have closed forms: with sigma = s/R,
// the reduced length is R*sin(sigma) and the geodesic scale is cos(sigma).
type Spherical struct {
	globe  *geodesic.Ellipsoid
	radius float64
}

// NewSpherical returns a spherical engine with the given radius.
func NewSpherical(radius float64) *Spherical {
	return &Spherical{globe: geodesic.NewSpherical(radius), radius: radius}
}

// NewEarthSphere returns a spherical engine with the Earth's equatorial
// radius in meters.
func NewEarthSphere() *Spherical {
	return NewSpherical(EarthRadius)
}

func (e *Spherical) Radius() float64 { return e.radius }

func (e *Spherical) Inverse(lat1, lon1, lat2, lon2 float64) (azi1, azi2, m12, M12 float64) {
	var s12 float64
	e.globe.Inverse(lat1, lon1, lat2, lon2, &s12, &azi1, &azi2)
	sig := s12 / e.radius
	m12 = e.radius * math.Sin(sig)
	M12 = math.Cos(sig)
	return
}

func (e *Spherical) Line(lat1, lon1, azi1 float64) Line {
	return &sphericalLine{engine: e, lat1: lat1, lon1: lon1, azi1: azi1}
}

type sphericalLine struct {
	engine           *Spherical
	lat1, lon1, azi1 float64
}

func (l *sphericalLine) Position(s float64) (lat, lon, azi, m12, M12 float64) {
	if s == 0 {
		// The back-bearing used to recover the forward azimuth degenerates
		// for coincident points.
		return l.lat1, l.lon1, l.azi1, 0, 1
	}
	l.engine.globe.Direct(l.lat1, l.lon1, l.azi1, s, &lat, &lon, &azi)
	sig := s / l.engine.radius
	m12 = l.engine.radius * math.Sin(sig)
	M12 = math.Cos(sig)
	return
}
