// Package gnomonic implements the ellipsoidal gnomonic projection, an
// azimuthal projection in which geodesics through the center project to
// straight lines.
//
// The projection is built on an external geod.Engine: the forward transform
// is a single inverse geodesic computation, the reverse transform a Newton
// iteration along a geodesic line. Centered on (lat0, lon0), a point at
// azimuth azi and reduced length m with geodesic scale M maps to the plane
// at distance rho = m/M along direction azi. The projection is undefined at
// and beyond the conjugate point, where M drops to zero.
package gnomonic

import (
	"math"

	"github.com/pspoerri/geoconv/geod"
)

const (
	numit      = 10 // iteration cap for Reverse
	degToRad   = math.Pi / 180
	machineEps = 0x1p-52
)

var eps = 0.01 * math.Sqrt(machineEps)

// Projection is a gnomonic projection over a caller-supplied geodesic
// engine. It holds only a reference to the engine, which must stay valid for
// the projection's lifetime. The zero value is not usable; construct with
// New.
type Projection struct {
	engine geod.Engine
	a      float64 // equatorial radius, taken from the engine
}

// New returns a gnomonic projection over the given engine.
func New(e geod.Engine) *Projection {
	return &Projection{engine: e, a: e.Radius()}
}

// Radius returns the equatorial radius of the underlying engine.
func (p *Projection) Radius() float64 { return p.a }

// Forward projects (lat, lon) with center (lat0, lon0), returning planar
// coordinates x, y (easting/northing in radius units), the azimuth azi of
// the geodesic at the target point (degrees), and the reciprocal of the
// azimuthal scale rk.
//
// When the target is at or beyond the conjugate point (rk <= 0) the
// projection is undefined and x, y are NaN; azi and rk are still reported.
func (p *Projection) Forward(lat0, lon0, lat, lon float64) (x, y, azi, rk float64) {
	azi0, azi, m, M := p.engine.Inverse(lat0, lon0, lat, lon)
	rk = M
	if M <= 0 {
		x, y = math.NaN(), math.NaN()
	} else {
		rho := m / M
		azi0 *= degToRad
		x = rho * math.Sin(azi0)
		y = rho * math.Cos(azi0)
	}
	return
}

// Reverse projects planar coordinates x, y back to (lat, lon) for center
// (lat0, lon0), also returning the azimuth and reciprocal azimuthal scale at
// the recovered point. x = y = 0 maps to the center with azimuth 0.
//
// The solve is iterative; if it fails to converge within the iteration cap
// (possible only for points outside the projection's valid region) all four
// results are NaN. A failed reverse projection is never an error.
func (p *Projection) Reverse(lat0, lon0, x, y float64) (lat, lon, azi, rk float64) {
	azi0 := math.Atan2(x, y) / degToRad
	rho := math.Hypot(x, y)
	s := p.a * math.Atan(rho/p.a)
	little := rho <= p.a
	if !little {
		// Track 1/rho beyond one radius; the Newton step on rho itself is
		// badly scaled through the antipode.
		rho = 1 / rho
	}
	line := p.engine.Line(lat0, lon0, azi0)
	trip := 0
	var lat1, lon1, azi1, M float64
	for count := numit; count > 0; count-- {
		var m float64
		lat1, lon1, azi1, m, M = line.Position(s)
		if trip > 0 {
			break
		}
		// If little, solve rho(s) = rho with drho/ds = 1/M^2,
		// else solve 1/rho(s) = 1/rho with d(1/rho)/ds = -1/m^2.
		var ds float64
		if little {
			ds = (m/M - rho) * M * M
		} else {
			ds = (rho - M/m) * m * m
		}
		s -= ds
		// One more evaluation at the final s before accepting the result.
		if !(math.Abs(ds) >= eps*p.a) {
			trip++
		}
	}
	if trip > 0 {
		lat, lon, azi, rk = lat1, lon1, azi1, M
	} else {
		lat, lon, azi, rk = math.NaN(), math.NaN(), math.NaN(), math.NaN()
	}
	return
}
