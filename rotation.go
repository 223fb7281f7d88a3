package impactor

import (
	"math"

	"github.com/gonum/matrix/mat64"
)

const (
	// EarthRotationRate is the average Earth rotation rate in radians per second.
	EarthRotationRate = 7.2921158553e-5
)

// R3R1R3 performs a 3-1-3 Euler parameter rotation.
// From Schaub and Junkins (the one in Vallado is wrong... surprinsingly, right? =/)
func R3R1R3(θ1, θ2, θ3 float64) *mat64.Dense {
	sθ1, cθ1 := math.Sincos(θ1)
	sθ2, cθ2 := math.Sincos(θ2)
	sθ3, cθ3 := math.Sincos(θ3)
	return mat64.NewDense(3, 3, []float64{cθ3*cθ1 - sθ3*cθ2*sθ1, cθ3*sθ1 + sθ3*cθ2*cθ1, sθ3 * sθ2,
		-sθ3*cθ1 - cθ3*cθ2*sθ1, -sθ3*sθ1 + cθ3*cθ2*cθ1, cθ3 * sθ2,
		sθ2 * sθ1, -sθ2 * cθ1, cθ2})
}

// R1 rotation about the 1st axis.
func R1(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{1, 0, 0, 0, c, s, 0, -s, c})
}

// R3 rotation about the 3rd axis.
func R3(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{c, s, 0, -s, c, 0, 0, 0, 1})
}

// MxV33 multiplies a matrix with a vector. Note that there is no dimension check!
func MxV33(m *mat64.Dense, v []float64) (o []float64) {
	vVec := mat64.NewVector(len(v), v)
	var rVec mat64.Vector
	rVec.MulVec(m, vVec)
	return []float64{rVec.At(0, 0), rVec.At(1, 0), rVec.At(2, 0)}
}

// PQW2ECI converts a given vector from the perifocal frame to the inertial
// frame via the inverse 3-1-3 rotation by argument of periapsis, inclination
// and RAAN. Angles in radians.
func PQW2ECI(i, ω, Ω float64, vI []float64) []float64 {
	return MxV33(R3R1R3(-ω, -i, -Ω), vI)
}

// ECI2ECEF converts the provided ECI vector to ECEF for the θgst given in radians.
func ECI2ECEF(R []float64, θgst float64) []float64 {
	return MxV33(R3(θgst), R)
}

// ECEF2LatLong returns the geocentric latitude and longitude (degrees) of the
// provided ECEF vector. Longitude is reported in [-180, 180).
func ECEF2LatLong(R []float64) (lat, long float64) {
	r := norm(R)
	if r == 0 {
		return 0, 0
	}
	lat = math.Asin(R[2]/r) / deg2rad
	long = math.Atan2(R[1], R[0]) / deg2rad
	if long >= 180 {
		long -= 360
	} else if long < -180 {
		long += 360
	}
	return
}

// GMST returns the Greenwich mean sidereal time in radians for a given Julian date.
// Meeus, eq. 12.4 (simplified to the linear terms, amply sufficient here).
func GMST(jd float64) float64 {
	θ := 280.46061837 + 360.98564736629*(jd-2451545.0)
	θ = math.Mod(θ, 360)
	if θ < 0 {
		θ += 360
	}
	return θ * deg2rad
}
