package impactor

import "math"

const (
	// defaultTolerance is the default residual tolerance of a Solver.
	defaultTolerance = 1e-10
	// defaultMaxIterations is the default iteration cap of a Solver.
	defaultMaxIterations = 50
)

// Solution stores the outcome of a root search. When the iteration cap is
// reached, Root is the best estimate found and Converged is false: callers
// performing safety-critical inversions must check Residual themselves.
type Solution struct {
	Root       float64
	Residual   float64
	Iterations uint
	Converged  bool
}

// Solver inverts scalar relations f(x) = 0 via Newton-Raphson, falling back
// to secant steps when no derivative is provided. It is fully deterministic.
type Solver struct {
	Tolerance     float64
	MaxIterations uint
}

// NewSolver returns a Solver with the default tolerance and iteration cap.
func NewSolver() Solver {
	return Solver{Tolerance: defaultTolerance, MaxIterations: defaultMaxIterations}
}

// Root drives f toward zero starting from x0. The derivative df may be nil,
// in which case a secant update is used instead of a Newton step.
func (s Solver) Root(f, df func(float64) float64, x0 float64) Solution {
	if s.Tolerance <= 0 {
		s.Tolerance = defaultTolerance
	}
	if s.MaxIterations == 0 {
		s.MaxIterations = defaultMaxIterations
	}
	x := x0
	fx := f(x)
	best := Solution{Root: x, Residual: math.Abs(fx)}
	// Previous point for the secant fallback.
	xPrev := x + 1e-4
	fPrev := f(xPrev)
	for it := uint(1); it <= s.MaxIterations; it++ {
		if math.Abs(fx) < s.Tolerance {
			return Solution{Root: x, Residual: math.Abs(fx), Iterations: it - 1, Converged: true}
		}
		var slope float64
		if df != nil {
			slope = df(x)
		} else {
			slope = (fx - fPrev) / (x - xPrev)
		}
		if math.Abs(slope) < 1e-15 || !isFinite(slope) {
			// Flat spot: nudge off it instead of dividing by zero.
			slope = math.Copysign(1e-15, slope)
		}
		xPrev, fPrev = x, fx
		x -= fx / slope
		if !isFinite(x) {
			// The step diverged, return whatever was best so far.
			best.Iterations = it
			return best
		}
		fx = f(x)
		if math.Abs(fx) < best.Residual {
			best = Solution{Root: x, Residual: math.Abs(fx), Iterations: it}
		}
	}
	if math.Abs(fx) < s.Tolerance {
		return Solution{Root: x, Residual: math.Abs(fx), Iterations: s.MaxIterations, Converged: true}
	}
	best.Iterations = s.MaxIterations
	return best
}
