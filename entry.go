package impactor

import "math"

const (
	// defaultEntryStep is the integration step when none is provided.
	defaultEntryStep = 0.05 // s
	// maxEntrySteps caps the integration loop regardless of the inputs so
	// that degenerate cases (grazing angles, near-zero velocities) terminate.
	maxEntrySteps = 500000
	// negligibleVelocity ends the integration once the body has effectively
	// stopped decelerating through the atmosphere.
	negligibleVelocity = 10.0 // m/s
	// burnupMassFraction of the initial mass below which the body is gone.
	burnupMassFraction = 1e-6
	// dragCoefficient of a tumbling rough sphere at hypersonic speed.
	dragCoefficient = 1.0
	// Fragmentation spreads the debris cloud: drag area and ablation grow.
	fragmentAreaFactor     = 2.0
	fragmentAblationFactor = 1.5
)

// EntryOutcome identifies how an atmospheric descent ended.
type EntryOutcome uint8

const (
	// OutcomeGroundImpact means the body reached the surface.
	OutcomeGroundImpact EntryOutcome = iota + 1
	// OutcomeBurnup means ablation consumed the body in flight.
	OutcomeBurnup
	// OutcomeDecelerated means drag slowed the body below the negligible
	// velocity threshold before it reached the ground.
	OutcomeDecelerated
	// OutcomeExhausted means the hard step cap was reached first.
	OutcomeExhausted
)

func (o EntryOutcome) String() string {
	switch o {
	case OutcomeGroundImpact:
		return "ground impact"
	case OutcomeBurnup:
		return "burnup"
	case OutcomeDecelerated:
		return "decelerated"
	case OutcomeExhausted:
		return "step cap exhausted"
	default:
		panic("unknown entry outcome")
	}
}

// TrajectoryPoint records one integration step of a descent. Time increases
// monotonically from 0 and altitude never increases between points.
type TrajectoryPoint struct {
	Time             float64   // s
	R                []float64 // m: downrange, crossrange, altitude
	V                []float64 // m/s
	Altitude         float64   // m
	Velocity         float64   // m/s, along the flight path
	Mass             float64   // kg
	DynamicPressure  float64   // Pa
	DistanceToImpact float64   // m, slant range to the nominal impact point
}

// AirburstEvent marks the fragmentation of the body in flight.
type AirburstEvent struct {
	Time            float64 // s
	Altitude        float64 // m
	DynamicPressure float64 // Pa
	FragmentCount   int
}

// EntryResult is the finite, non-restartable output of a descent simulation.
// Re-invoking SimulateEntry with identical inputs reproduces it exactly.
type EntryResult struct {
	Trajectory []TrajectoryPoint
	Outcome    EntryOutcome
	Airburst   *AirburstEvent
	FinalMass  float64
	Duration   float64
}

// SimulateEntry time-steps the body from startAltitude down through an
// exponential atmosphere with drag deceleration and ablation. A step of zero
// (or less) uses the default. The flight path angle is held constant, which
// keeps altitude monotonically non-increasing by construction.
func SimulateEntry(imp ImpactorSpecification, startAltitude, step float64, cst Constants) EntryResult {
	if startAltitude <= 0 {
		startAltitude = cst.AtmosphereHeight
	}
	if step <= 0 {
		step = defaultEntryStep
	}
	θ := Deg2rad(imp.entryAngle())
	sinθ, cosθ := math.Sincos(θ)

	ρbody := imp.BulkDensity(cst)
	strength := imp.Composition.Strength()
	σ := imp.Composition.AblationCoefficient()
	areaFactor := 1.0

	m0 := imp.Mass(cst)
	m := m0
	v := imp.Velocity
	h := startAltitude
	x := 0.0
	t := 0.0

	result := EntryResult{Trajectory: make([]TrajectoryPoint, 0, 1024)}
	record := func(q float64) {
		slant := h
		if sinθ > 1e-6 {
			slant = h / sinθ
		}
		result.Trajectory = append(result.Trajectory, TrajectoryPoint{
			Time:             t,
			R:                []float64{x, 0, h},
			V:                []float64{v * cosθ, 0, -v * sinθ},
			Altitude:         h,
			Velocity:         v,
			Mass:             m,
			DynamicPressure:  q,
			DistanceToImpact: slant,
		})
	}
	record(0)

	for i := 0; i < maxEntrySteps; i++ {
		ρair := cst.SeaLevelAirDensity * math.Exp(-h/cst.AtmScaleHeight)
		q := 0.5 * ρair * v * v

		if result.Airburst == nil && q > strength {
			result.Airburst = &AirburstEvent{
				Time:            t,
				Altitude:        h,
				DynamicPressure: q,
				FragmentCount:   2 + int(8*math.Log10(1+q/strength)),
			}
			areaFactor = fragmentAreaFactor
			σ *= fragmentAblationFactor
		}

		// Current cross-section from the remaining mass.
		r := math.Cbrt(3 * m / (4 * math.Pi * ρbody))
		area := math.Pi * r * r * areaFactor

		drag := dragCoefficient * q * area / m
		dm := σ * q * area * v

		v -= drag * step
		if v < 0 {
			v = 0
		}
		m -= dm * step
		if m < 0 {
			m = 0
		}
		h -= v * sinθ * step
		x += v * cosθ * step
		t += step

		if h <= 0 {
			h = 0
			record(q)
			result.Outcome = OutcomeGroundImpact
			break
		}
		if m <= burnupMassFraction*m0 {
			m = 0
			record(q)
			result.Outcome = OutcomeBurnup
			break
		}
		record(q)
		if v <= negligibleVelocity {
			result.Outcome = OutcomeDecelerated
			break
		}
	}
	if result.Outcome == 0 {
		result.Outcome = OutcomeExhausted
	}
	last := result.Trajectory[len(result.Trajectory)-1]
	result.FinalMass = last.Mass
	result.Duration = last.Time
	return result
}
