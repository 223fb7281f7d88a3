package impactor

import (
	"fmt"
	"math"

	"github.com/gonum/floats"
)

const (
	eccentricityε = 5e-5                         // 0.00005
	angleε        = (5e-3 / 360) * (2 * math.Pi) // 0.005 degrees
)

// OrbitalElements defines a bound two-body orbit via its Keplerian elements.
// Angles are stored in radians; the constructor takes degrees and wraps them
// to [0, 360). Values are never mutated after creation.
type OrbitalElements struct {
	a float64 // semi-major axis, m
	e float64 // eccentricity
	i float64 // inclination
	Ω float64 // RAAN
	ω float64 // argument of periapsis
	M float64 // mean anomaly at epoch
}

// NewOrbitalElements creates the elements from the semi-major axis (m),
// eccentricity and the four angles in degrees.
// WARNING: Angles must be in degrees not radians.
func NewOrbitalElements(a, e, i, Ω, ω, M float64) OrbitalElements {
	return OrbitalElements{a, e, Deg2rad(i), Deg2rad(Ω), Deg2rad(ω), Deg2rad(M)}
}

// SemiMajorAxis returns the semi-major axis in meters.
func (el OrbitalElements) SemiMajorAxis() float64 { return el.a }

// Eccentricity returns the eccentricity.
func (el OrbitalElements) Eccentricity() float64 { return el.e }

// Inclination returns the inclination in degrees.
func (el OrbitalElements) Inclination() float64 { return Rad2deg(el.i) }

// RAAN returns the right ascension of the ascending node in degrees.
func (el OrbitalElements) RAAN() float64 { return Rad2deg(el.Ω) }

// ArgPeriapsis returns the argument of periapsis in degrees.
func (el OrbitalElements) ArgPeriapsis() float64 { return Rad2deg(el.ω) }

// MeanAnomaly returns the mean anomaly at epoch in degrees.
func (el OrbitalElements) MeanAnomaly() float64 { return Rad2deg(el.M) }

// Apoapsis returns the apoapsis radius.
func (el OrbitalElements) Apoapsis() float64 { return el.a * (1 + el.e) }

// Periapsis returns the periapsis radius.
func (el OrbitalElements) Periapsis() float64 { return el.a * (1 - el.e) }

// MeanMotion returns the mean motion n in rad/s about the given body.
func (el OrbitalElements) MeanMotion(cst Constants) float64 {
	return math.Sqrt(cst.GM() / math.Pow(el.a, 3))
}

// Period returns the orbital period in seconds.
func (el OrbitalElements) Period(cst Constants) float64 {
	return 2 * math.Pi / el.MeanMotion(cst)
}

func (el OrbitalElements) String() string {
	return fmt.Sprintf("a=%.1f e=%.6f i=%.3f Ω=%.3f ω=%.3f M=%.3f",
		el.a, el.e, Rad2deg(el.i), Rad2deg(el.Ω), Rad2deg(el.ω), Rad2deg(el.M))
}

// CartesianState stores an inertial position (m) and velocity (m/s) pair.
// It is derived and recomputed per query, never cached across calls.
type CartesianState struct {
	R []float64
	V []float64
}

// RNorm returns the norm of the position vector.
func (s CartesianState) RNorm() float64 { return norm(s.R) }

// VNorm returns the norm of the velocity vector.
func (s CartesianState) VNorm() float64 { return norm(s.V) }

// KeplerSolution solves Kepler's equation M = E - e·sinE for the eccentric
// anomaly, seeded at E₀ = M. The mean anomaly must be in radians.
func KeplerSolution(M, e float64) Solution {
	if e < eccentricityε {
		// Circular motion degenerates to E = M, no inversion needed.
		return Solution{Root: M, Converged: true}
	}
	f := func(E float64) float64 { return E - e*math.Sin(E) - M }
	df := func(E float64) float64 { return 1 - e*math.Cos(E) }
	return NewSolver().Root(f, df, M)
}

// ElementsFromState recovers the Keplerian elements from a Cartesian state,
// the inverse of Propagate. Undefined angles of degenerate geometries
// (circular, equatorial) are reported as 0.
// From Vallado's RV2COE, page 113.
func ElementsFromState(state CartesianState, cst Constants) OrbitalElements {
	μ := cst.GM()
	R, V := state.R, state.V
	hVec := cross(R, V)
	nVec := cross([]float64{0, 0, 1}, hVec)
	v := norm(V)
	r := norm(R)
	ξ := (v*v)/2 - μ/r
	a := -μ / (2 * ξ)
	eVec := make([]float64, 3)
	for k := 0; k < 3; k++ {
		eVec[k] = ((v*v-μ/r)*R[k] - dot(R, V)*V[k]) / μ
	}
	e := norm(eVec)
	i := math.Acos(unit(hVec)[2])
	ω := math.Acos(dot(nVec, eVec) / (norm(nVec) * e))
	if math.IsNaN(ω) {
		ω = 0
	}
	if eVec[2] < 0 {
		ω = 2*math.Pi - ω
	}
	Ω := math.Acos(nVec[0] / norm(nVec))
	if math.IsNaN(Ω) {
		Ω = 0
	}
	if nVec[1] < 0 {
		Ω = 2*math.Pi - Ω
	}
	cosν := dot(eVec, R) / (e * r)
	if abscosν := math.Abs(cosν); abscosν > 1 && floats.EqualWithinAbs(abscosν, 1, 1e-12) {
		cosν = sign(cosν)
	}
	ν := math.Acos(cosν)
	if math.IsNaN(ν) {
		ν = 0
	}
	if dot(R, V) < 0 {
		ν = 2*math.Pi - ν
	}
	// Mean anomaly via the eccentric anomaly, quadrant safe.
	E := 2 * math.Atan2(math.Sqrt(1-e)*math.Sin(ν/2), math.Sqrt(1+e)*math.Cos(ν/2))
	M := math.Mod(E-e*math.Sin(E), 2*math.Pi)
	if M < 0 {
		M += 2 * math.Pi
	}
	return OrbitalElements{a, e, math.Mod(i, 2*math.Pi), math.Mod(Ω, 2*math.Pi), math.Mod(ω, 2*math.Pi), M}
}

// Propagate advances the elements by Δt seconds and returns the Cartesian
// state in the inertial frame. The output is always a finite vector pair for
// valid element ranges, including e → 0 and i of exactly 0° or 180°.
func Propagate(el OrbitalElements, Δt float64, cst Constants) CartesianState {
	μ := cst.GM()
	n := el.MeanMotion(cst)
	M := math.Mod(el.M+n*Δt, 2*math.Pi)
	if M < 0 {
		M += 2 * math.Pi
	}

	E := KeplerSolution(M, el.e).Root
	sinE, cosE := math.Sincos(E)
	// True anomaly via the half-angle form, quadrant safe.
	ν := 2 * math.Atan2(math.Sqrt(1+el.e)*math.Sin(E/2), math.Sqrt(1-el.e)*math.Cos(E/2))
	r := el.a * (1 - el.e*cosE)

	sinν, cosν := math.Sincos(ν)
	R := []float64{r * cosν, r * sinν, 0}
	vFact := math.Sqrt(μ*el.a) / r
	V := []float64{-vFact * sinE, vFact * math.Sqrt(1-el.e*el.e) * cosE, 0}

	R = PQW2ECI(el.i, el.ω, el.Ω, R)
	V = PQW2ECI(el.i, el.ω, el.Ω, V)
	return CartesianState{R, V}
}
