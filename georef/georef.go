// Package georef converts between geodetic coordinates and the World
// Geographic Reference System (GEOREF).
//
// A GEOREF string names a rectangular cell on the globe: a letter pair for
// the 15°x15° tile, an optional letter pair for the 1° cell within it, and
// an optional run of decimal digits for sub-minute resolution (all longitude
// digits first, then all latitude digits).
package georef

import (
	"fmt"
	"math"
	"strings"
)

const (
	tileSize = 15 // tile width in degrees
	lonOrig  = -180 / tileSize
	latOrig  = -90 / tileSize
	base     = 10 // base for the minute digits
	baseLen  = 4
	maxPrec  = 11 // approximately equivalent to MGRS resolution
	maxLat   = 89 // the polar row folds into the top latitude band
)

// Letter alphabets. I and O are skipped in the tile rows; the degree row
// additionally stops at Q (15 symbols for 15 one-degree cells).
const (
	lonTiles = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	latTiles = "ABCDEFGHJKLM"
	degrees  = "ABCDEFGHJKLMNPQ"
	digitSet = "0123456789"
)

// A RangeError reports a latitude outside [-90, 90].
type RangeError struct {
	Lat float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("georef: latitude %v not in [-90, 90]", e.Lat)
}

// A FormatError reports a malformed GEOREF string.
type FormatError struct {
	Georef string // the offending input or trailing fragment
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("georef: %s: %q", e.Reason, e.Georef)
}

// Encode converts a latitude/longitude pair (degrees) to a GEOREF string.
//
// prec selects the cell size: -1 for a 15° tile, 0 for a 1° cell, and 2..11
// for sub-minute cells shrinking by a factor of 10 per level. Requests
// outside that range are clamped; prec 1 (whole minutes, which the format
// cannot express) is promoted to 2. The result has 4+2*prec characters for
// prec >= 0, or 2 for prec == -1.
//
// A NaN latitude or longitude encodes as the literal sentinel "INVALID".
// A latitude outside [-90, 90] is a *RangeError.
func Encode(lat, lon float64, prec int) (string, error) {
	if math.Abs(lat) > 90 {
		return "", &RangeError{Lat: lat}
	}
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return "INVALID", nil
	}
	lon = normalizeLon(lon)
	if prec < -1 {
		prec = -1
	} else if prec > maxPrec {
		prec = maxPrec
	}
	if prec == 1 {
		prec++
	}
	ilon := int(math.Floor(lon))
	lon -= float64(ilon)
	ilat := int(math.Floor(lat))
	if ilat > maxLat {
		ilat = maxLat
	}
	lat -= float64(ilat)

	buf := make([]byte, baseLen+2*prec)
	buf[0] = lonTiles[(ilon+180)/tileSize]
	buf[1] = latTiles[(ilat+90)/tileSize]
	if prec >= 0 {
		buf[2] = degrees[(ilon+180)%tileSize]
		buf[3] = degrees[(ilat+90)%tileSize]
		if prec > 0 {
			// A residual of exactly 1 occurs for lat = 90 (folded into the
			// top band) or a coordinate of -tiny; pull it back below 1 so
			// the digits do not overflow the field.
			if lon == 1 {
				lon -= ulp / 2
			}
			if lat == 1 {
				lat -= ulp / 2
			}
			mult := math.Pow(base, float64(prec-2)) * 60
			x := uint64(math.Floor(mult * lon))
			y := uint64(math.Floor(mult * lat))
			for c := prec - 1; c >= 0; c-- {
				buf[baseLen+c] = digitSet[x%base]
				x /= base
				buf[baseLen+c+prec] = digitSet[y%base]
				y /= base
			}
		}
	}
	return string(buf), nil
}

// ulp is the distance from 1 to the next larger float64.
const ulp = 0x1p-52

// Decode converts a GEOREF string back to a latitude/longitude pair
// (degrees) and the precision level the string carries. Input letters may be
// upper or lower case.
//
// With centered true the midpoint of the smallest resolved cell is returned,
// otherwise its southwest corner.
//
// Any string starting (case-insensitively) with "INV" is the invalid
// sentinel: lat and lon are NaN, there is no error, and the returned prec is
// meaningless. Any other grammar violation is a *FormatError.
func Decode(georef string, centered bool) (lat, lon float64, prec int, err error) {
	n := len(georef)
	if n >= 3 && strings.EqualFold(georef[:3], "INV") {
		return math.NaN(), math.NaN(), 0, nil
	}
	if n < baseLen-2 {
		return 0, 0, 0, &FormatError{georef, "must have at least 2 characters"}
	}
	prec1 := (2+n-baseLen)/2 - 1
	k := lookup(lonTiles, georef[0])
	if k < 0 {
		return 0, 0, 0, &FormatError{georef, "bad longitude tile letter"}
	}
	lon1 := float64(k + lonOrig)
	k = lookup(latTiles, georef[1])
	if k < 0 {
		return 0, 0, 0, &FormatError{georef, "bad latitude tile letter"}
	}
	lat1 := float64(k + latOrig)
	unit := 1.0
	if n > 2 {
		unit *= tileSize
		k = lookup(degrees, georef[2])
		if k < 0 {
			return 0, 0, 0, &FormatError{georef, "bad longitude degree letter"}
		}
		lon1 = lon1*tileSize + float64(k)
		if n < 4 {
			return 0, 0, 0, &FormatError{georef, "missing latitude degree letter"}
		}
		k = lookup(degrees, georef[3])
		if k < 0 {
			return 0, 0, 0, &FormatError{georef, "bad latitude degree letter"}
		}
		lat1 = lat1*tileSize + float64(k)
		if prec1 > 0 {
			trailing := georef[baseLen:]
			if i := strings.IndexFunc(trailing, notDigit); i >= 0 {
				return 0, 0, 0, &FormatError{trailing, "non digits in trailing portion"}
			}
			if n%2 != 0 {
				return 0, 0, 0, &FormatError{trailing, "must end with an even number of digits"}
			}
			if prec1 == 1 {
				return 0, 0, 0, &FormatError{trailing, "needs at least 4 digits for minutes"}
			}
			for i := 0; i < prec1; i++ {
				// The leading digit of each half holds tens of minutes and
				// so runs 0-5; the rest are ordinary decimal digits.
				m := base
				if i == 0 {
					m = 6
				}
				unit *= float64(m)
				x := int(trailing[i] - '0')
				y := int(trailing[i+prec1] - '0')
				if i == 0 && !(x < m && y < m) {
					return 0, 0, 0, &FormatError{trailing, "minutes terms must be less than 60"}
				}
				lon1 = float64(m)*lon1 + float64(x)
				lat1 = float64(m)*lat1 + float64(y)
			}
		}
	}
	if centered {
		unit *= 2
		lat1 = 2*lat1 + 1
		lon1 = 2*lon1 + 1
	}
	return tileSize * lat1 / unit, tileSize * lon1 / unit, prec1, nil
}

func notDigit(r rune) bool { return r < '0' || r > '9' }

// lookup finds c (case-insensitively) in alphabet, or -1.
func lookup(alphabet string, c byte) int {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	return strings.IndexByte(alphabet, c)
}

// normalizeLon reduces a longitude to [-180, 180).
func normalizeLon(lon float64) float64 {
	lon = math.Mod(lon, 360)
	switch {
	case lon >= 180:
		lon -= 360
	case lon < -180:
		lon += 360
	}
	return lon
}
