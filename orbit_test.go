package impactor

import (
	"math"
	"reflect"
	"testing"

	"github.com/gonum/floats"
)

func TestOrbitalElements(t *testing.T) {
	el := NewOrbitalElements(7e6, 0.1, 30, -90, 45, 10)
	if el.SemiMajorAxis() != 7e6 || el.Eccentricity() != 0.1 {
		t.Fatal("shape accessors incorrect")
	}
	if !floats.EqualWithinAbs(el.Inclination(), 30, 1e-9) {
		t.Fatal("inclination accessor incorrect")
	}
	if !floats.EqualWithinAbs(el.RAAN(), 270, 1e-9) {
		t.Fatal("negative RAAN did not wrap to [0, 360)")
	}
	if !floats.EqualWithinRel(el.Apoapsis(), 7.7e6, 1e-12) {
		t.Fatal("apoapsis incorrect")
	}
	if !floats.EqualWithinRel(el.Periapsis(), 6.3e6, 1e-12) {
		t.Fatal("periapsis incorrect")
	}
	cst := DefaultConstants()
	// T = 2π·√(a³/μ)
	expT := 2 * math.Pi * math.Sqrt(math.Pow(7e6, 3)/cst.GM())
	if !floats.EqualWithinRel(el.Period(cst), expT, 1e-12) {
		t.Fatalf("period %f != %f", el.Period(cst), expT)
	}
	if len(el.String()) == 0 {
		t.Fatal("empty String()")
	}
}

func TestKeplerSolution(t *testing.T) {
	for _, e := range []float64{0.001, 0.1, 0.5, 0.9} {
		for M := 0.1; M < 2*math.Pi; M += 0.7 {
			sol := KeplerSolution(M, e)
			if !sol.Converged {
				t.Fatalf("no convergence for e=%f M=%f", e, M)
			}
			E := sol.Root
			if !floats.EqualWithinAbs(E-e*math.Sin(E), M, 1e-8) {
				t.Fatalf("E=%f does not satisfy Kepler's equation for e=%f M=%f", E, e, M)
			}
		}
	}
	// Near-circular orbits short-circuit to E = M.
	sol := KeplerSolution(0.5, 1e-6)
	if !sol.Converged || sol.Root != 0.5 || sol.Iterations != 0 {
		t.Fatalf("circular shortcut not taken: %+v", sol)
	}
}

func TestPropagateAtPeriapsis(t *testing.T) {
	cst := DefaultConstants()
	el := NewOrbitalElements(7e6, 0.1, 0, 0, 0, 0)
	state := Propagate(el, 0, cst)
	if !vectorsEqual(state.R, []float64{el.Periapsis(), 0, 0}) {
		t.Fatalf("position at periapsis incorrect: %+v", state.R)
	}
	// Velocity is along +Y at periapsis of an equatorial prograde orbit.
	if state.V[0] > 1 || state.V[1] <= 0 || math.Abs(state.V[2]) > 1e-9 {
		t.Fatalf("velocity at periapsis incorrect: %+v", state.V)
	}
}

func TestPropagateBounds(t *testing.T) {
	cst := DefaultConstants()
	for _, e := range []float64{0, 0.3, 0.7} {
		el := NewOrbitalElements(8e6, e, 51.6, 120, 87, 0)
		period := el.Period(cst)
		for f := 0.0; f < 1; f += 0.05 {
			state := Propagate(el, f*period, cst)
			r := state.RNorm()
			if r < el.Periapsis()*(1-1e-9) || r > el.Apoapsis()*(1+1e-9) {
				t.Fatalf("radius %f outside [%f, %f] at e=%f f=%f", r, el.Periapsis(), el.Apoapsis(), e, f)
			}
			// Vis-viva: v² = μ(2/r - 1/a).
			expV := math.Sqrt(cst.GM() * (2/r - 1/el.SemiMajorAxis()))
			if !floats.EqualWithinRel(state.VNorm(), expV, 1e-9) {
				t.Fatalf("vis-viva violated at e=%f f=%f", e, f)
			}
		}
	}
}

func TestPropagatePeriodicity(t *testing.T) {
	cst := DefaultConstants()
	el := NewOrbitalElements(7.2e6, 0.2, 28.5, 45, 90, 33)
	s0 := Propagate(el, 0, cst)
	s1 := Propagate(el, el.Period(cst), cst)
	if !vectorsEqual(s0.R, s1.R) || !vectorsEqual(s0.V, s1.V) {
		t.Fatal("state did not return after one period")
	}
}

func TestPropagateDegenerate(t *testing.T) {
	cst := DefaultConstants()
	// Circular and exactly-planar orbits must produce finite states.
	for _, el := range []OrbitalElements{
		NewOrbitalElements(7e6, 0, 45, 0, 0, 0),
		NewOrbitalElements(7e6, 0.1, 0, 0, 0, 90),
		NewOrbitalElements(7e6, 0.1, 180, 0, 0, 90),
	} {
		state := Propagate(el, 1234.5, cst)
		for i := 0; i < 3; i++ {
			if !isFinite(state.R[i]) || !isFinite(state.V[i]) {
				t.Fatalf("non-finite state for %s", el)
			}
		}
		if el.Eccentricity() == 0 && !floats.EqualWithinRel(state.RNorm(), el.SemiMajorAxis(), 1e-9) {
			t.Fatal("circular orbit radius drifted from a")
		}
	}
}

func TestElementsFromState(t *testing.T) {
	cst := DefaultConstants()
	el := NewOrbitalElements(8e6, 0.2, 51.6, 30, 60, 40)
	rec := ElementsFromState(Propagate(el, 0, cst), cst)
	if !floats.EqualWithinRel(rec.SemiMajorAxis(), el.SemiMajorAxis(), 1e-9) {
		t.Fatalf("semi-major axis %f not recovered", rec.SemiMajorAxis())
	}
	if !floats.EqualWithinAbs(rec.Eccentricity(), el.Eccentricity(), 1e-9) {
		t.Fatalf("eccentricity %f not recovered", rec.Eccentricity())
	}
	for name, angles := range map[string][2]float64{
		"inclination":  {rec.Inclination(), el.Inclination()},
		"RAAN":         {rec.RAAN(), el.RAAN()},
		"arg periapsis": {rec.ArgPeriapsis(), el.ArgPeriapsis()},
		"mean anomaly": {rec.MeanAnomaly(), el.MeanAnomaly()},
	} {
		if ok, err := anglesEqual(Deg2rad(angles[0]), Deg2rad(angles[1])); !ok {
			t.Fatalf("%s not recovered: %s", name, err)
		}
	}
	// The shape and orientation are invariant under propagation; only the
	// mean anomaly advances.
	Δt := 1500.0
	rec = ElementsFromState(Propagate(el, Δt, cst), cst)
	if !floats.EqualWithinRel(rec.SemiMajorAxis(), el.SemiMajorAxis(), 1e-9) {
		t.Fatal("semi-major axis drifted under propagation")
	}
	if ok, err := anglesEqual(Deg2rad(rec.RAAN()), Deg2rad(el.RAAN())); !ok {
		t.Fatalf("RAAN drifted: %s", err)
	}
	expM := math.Mod(Deg2rad(el.MeanAnomaly())+el.MeanMotion(cst)*Δt, 2*math.Pi)
	if ok, err := anglesEqual(Deg2rad(rec.MeanAnomaly()), expM); !ok {
		t.Fatalf("mean anomaly did not advance by nΔt: %s", err)
	}
	// Circular orbits recover the shape with the undefined angles zeroed.
	circ := ElementsFromState(Propagate(NewOrbitalElements(7e6, 0, 45, 10, 0, 0), 500, cst), cst)
	if !floats.EqualWithinRel(circ.SemiMajorAxis(), 7e6, 1e-9) {
		t.Fatal("circular semi-major axis not recovered")
	}
	if circ.Eccentricity() > eccentricityε {
		t.Fatalf("spurious eccentricity %e on a circular orbit", circ.Eccentricity())
	}
}

func TestPropagateDeterminism(t *testing.T) {
	cst := DefaultConstants()
	el := NewOrbitalElements(9e6, 0.4, 63.4, 10, 270, 5)
	s0 := Propagate(el, 86400, cst)
	s1 := Propagate(el, 86400, cst)
	if !reflect.DeepEqual(s0, s1) {
		t.Fatal("propagation is not deterministic")
	}
}
