package impactor

import "fmt"

// Validation returns human-readable field violations instead of erroring so
// that callers can render field-level messages. An empty slice means valid.
// Non-finite values are rejected here, before they can poison the physics.

func (c Composition) valid() bool {
	return c >= Stony && c <= Icy
}

// ValidateImpactor reports the violations of an impactor specification.
func ValidateImpactor(imp ImpactorSpecification) (violations []string) {
	if !isFinite(imp.Diameter) || imp.Diameter <= 0 {
		violations = append(violations, fmt.Sprintf("diameter: must be a positive finite number of meters, got %v", imp.Diameter))
	}
	if !isFinite(imp.Density) || imp.Density < 0 {
		violations = append(violations, fmt.Sprintf("density: must be a non-negative finite number (zero defers to composition), got %v", imp.Density))
	}
	if imp.Density == 0 && !imp.Composition.valid() {
		violations = append(violations, "composition: unknown class and no explicit density given")
	}
	if imp.Composition != 0 && !imp.Composition.valid() {
		violations = append(violations, fmt.Sprintf("composition: unknown class %d", imp.Composition))
	}
	if !isFinite(imp.Velocity) || imp.Velocity <= 0 {
		violations = append(violations, fmt.Sprintf("velocity: must be a positive finite number of m/s, got %v", imp.Velocity))
	}
	if !isFinite(imp.Angle) || imp.Angle < 0 || imp.Angle > 90 {
		violations = append(violations, fmt.Sprintf("angle: must be within [0, 90] degrees, got %v", imp.Angle))
	}
	if !isFinite(imp.TargetDensity) || imp.TargetDensity < 0 {
		violations = append(violations, fmt.Sprintf("target density: must be a non-negative finite number, got %v", imp.TargetDensity))
	}
	return
}

// ValidateElements reports the violations of orbital elements for a
// bound-orbit query.
func ValidateElements(el OrbitalElements) (violations []string) {
	if !isFinite(el.a) || el.a <= 0 {
		violations = append(violations, fmt.Sprintf("semi-major axis: must be a positive finite number of meters, got %v", el.a))
	}
	if !isFinite(el.e) || el.e < 0 || el.e >= 1 {
		violations = append(violations, fmt.Sprintf("eccentricity: must be within [0, 1) for a bound orbit, got %v", el.e))
	}
	for name, angle := range map[string]float64{
		"inclination":           el.i,
		"RAAN":                  el.Ω,
		"argument of periapsis": el.ω,
		"mean anomaly":          el.M,
	} {
		if !isFinite(angle) {
			violations = append(violations, fmt.Sprintf("%s: must be finite", name))
		}
	}
	return
}

// ValidateScenario reports every violation of a simulation scenario: the
// impactor, the location variant fields, the optional mitigation fields and
// the optional orbital elements.
func ValidateScenario(s SimulationScenario) (violations []string) {
	violations = append(violations, ValidateImpactor(s.Impactor)...)

	switch loc := s.Location.(type) {
	case nil:
		violations = append(violations, "location: missing impact location")
	case LandImpact:
		if !isFinite(loc.PopulationDensity) || loc.PopulationDensity < 0 {
			violations = append(violations, fmt.Sprintf("population density: must be a non-negative finite number, got %v", loc.PopulationDensity))
		}
	case OceanImpact:
		if !isFinite(loc.WaterDepth) || loc.WaterDepth <= 0 {
			violations = append(violations, fmt.Sprintf("water depth: must be a positive finite number of meters, got %v", loc.WaterDepth))
		}
		if !isFinite(loc.DistanceToShore) || loc.DistanceToShore < 0 {
			violations = append(violations, fmt.Sprintf("distance to shore: must be a non-negative finite number, got %v", loc.DistanceToShore))
		}
		if !isFinite(loc.CoastalSlope) || loc.CoastalSlope <= 0 {
			violations = append(violations, fmt.Sprintf("coastal slope: must be strictly positive, got %v", loc.CoastalSlope))
		}
	case AtmosphericBurst:
		// A zero altitude is a surface impact, not a burst.
		if !isFinite(loc.BurstAltitude) || loc.BurstAltitude <= 0 {
			violations = append(violations, fmt.Sprintf("burst altitude: must be a positive finite number of meters, got %v", loc.BurstAltitude))
		}
	default:
		violations = append(violations, fmt.Sprintf("location: unsupported variant %T", s.Location))
	}

	switch m := s.Mitigation.(type) {
	case nil:
		// Mitigation is optional.
	case DeflectionStrategy:
		if !isFinite(m.Impulse) || m.Impulse <= 0 {
			violations = append(violations, fmt.Sprintf("mitigation impulse: must be a positive finite number of N·s, got %v", m.Impulse))
		}
		if !isFinite(m.LeadTime) || m.LeadTime <= 0 {
			violations = append(violations, fmt.Sprintf("mitigation lead time: must be a positive finite number of seconds, got %v", m.LeadTime))
		}
	case KineticImpactorStrategy:
		if !isFinite(m.ProjectileMass) || m.ProjectileMass <= 0 {
			violations = append(violations, fmt.Sprintf("projectile mass: must be a positive finite number of kg, got %v", m.ProjectileMass))
		}
		if !isFinite(m.RelativeVelocity) || m.RelativeVelocity <= 0 {
			violations = append(violations, fmt.Sprintf("projectile velocity: must be a positive finite number of m/s, got %v", m.RelativeVelocity))
		}
	case NuclearStrategy:
		if !isFinite(m.YieldMt) || m.YieldMt <= 0 {
			violations = append(violations, fmt.Sprintf("device yield: must be a positive finite number of Mt, got %v", m.YieldMt))
		}
		if !isFinite(m.Standoff) || m.Standoff <= 0 {
			violations = append(violations, fmt.Sprintf("standoff distance: must be a positive finite number of meters, got %v", m.Standoff))
		}
	default:
		violations = append(violations, fmt.Sprintf("mitigation: unsupported variant %T", s.Mitigation))
	}

	if s.Elements != nil {
		violations = append(violations, ValidateElements(*s.Elements)...)
	}
	return
}
