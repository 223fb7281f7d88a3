package impactor

import (
	"errors"
	"fmt"
	"math"
)

const (
	// momentumEnhancement β captures the ejecta-enhanced momentum transfer
	// of a kinetic impactor (DART measured ~2.2-3.6; stay conservative).
	momentumEnhancement = 1.9
	// nuclearCoupling converts yield energy flux at the body into imparted
	// impulse, in s/m. Policy constant, not physical law.
	nuclearCoupling = 1e-7
	// referenceDeltaV scales the effectiveness score: a ΔV comparable to
	// this is "half effective". In m/s.
	referenceDeltaV = 0.01
)

// MitigationStrategy is the closed set of planetary-defense options the
// modeler can evaluate. Adding a variant is a compile-time checked change.
type MitigationStrategy interface {
	Describe() string
	mitigation()
}

// DeflectionStrategy applies a generic impulse some lead time before impact.
type DeflectionStrategy struct {
	Impulse  float64 // N·s
	LeadTime float64 // s before impact
}

// Describe implements MitigationStrategy.
func (s DeflectionStrategy) Describe() string {
	return fmt.Sprintf("deflection (%.3g N·s, %.3g s lead)", s.Impulse, s.LeadTime)
}
func (s DeflectionStrategy) mitigation() {}

// KineticImpactorStrategy rams a projectile into the body.
type KineticImpactorStrategy struct {
	ProjectileMass   float64 // kg
	RelativeVelocity float64 // m/s
}

// Describe implements MitigationStrategy.
func (s KineticImpactorStrategy) Describe() string {
	return fmt.Sprintf("kinetic impactor (%.3g kg at %.3g m/s)", s.ProjectileMass, s.RelativeVelocity)
}
func (s KineticImpactorStrategy) mitigation() {}

// NuclearStrategy detonates a standoff device near the body.
type NuclearStrategy struct {
	YieldMt  float64 // Mt TNT
	Standoff float64 // m from the surface
}

// Describe implements MitigationStrategy.
func (s NuclearStrategy) Describe() string {
	return fmt.Sprintf("nuclear standoff (%.3g Mt at %.3g m)", s.YieldMt, s.Standoff)
}
func (s NuclearStrategy) mitigation() {}

// MitigationResult is the uniformly consumable outcome of any strategy.
type MitigationResult struct {
	Strategy        string
	DeltaV          float64 // m/s imparted to the body
	Impulse         float64 // N·s
	TrajectoryShift float64 // m of along-track displacement at impact epoch
	Effectiveness   float64 // (0, 1)
	Efficiency      float64 // strategy specific momentum ratio
}

func effectivenessScore(ΔV float64) float64 {
	return ΔV / (ΔV + referenceDeltaV)
}

// EvaluateMitigation dispatches on the strategy variant and returns the
// delta-V/impulse contribution against the given impactor. A nil strategy is
// a configuration error.
func EvaluateMitigation(strategy MitigationStrategy, imp ImpactorSpecification, cst Constants) (MitigationResult, error) {
	if strategy == nil {
		return MitigationResult{}, errors.New("no mitigation strategy provided")
	}
	m := imp.Mass(cst)
	if m <= 0 || !isFinite(m) {
		return MitigationResult{}, errors.New("impactor mass must be positive and finite")
	}
	switch s := strategy.(type) {
	case DeflectionStrategy:
		if s.Impulse <= 0 || s.LeadTime <= 0 {
			return MitigationResult{}, errors.New("deflection requires positive impulse and lead time")
		}
		ΔV := s.Impulse / m
		shift := ΔV * s.LeadTime
		return MitigationResult{
			Strategy:        s.Describe(),
			DeltaV:          ΔV,
			Impulse:         s.Impulse,
			TrajectoryShift: shift,
			Effectiveness:   shift / (shift + cst.EarthRadius),
			Efficiency:      1,
		}, nil

	case KineticImpactorStrategy:
		if s.ProjectileMass <= 0 || s.RelativeVelocity <= 0 {
			return MitigationResult{}, errors.New("kinetic impactor requires positive mass and velocity")
		}
		impulse := momentumEnhancement * s.ProjectileMass * s.RelativeVelocity
		ΔV := impulse / m
		efficiency := impulse / (m * imp.Velocity)
		return MitigationResult{
			Strategy:      s.Describe(),
			DeltaV:        ΔV,
			Impulse:       impulse,
			Effectiveness: effectivenessScore(ΔV),
			Efficiency:    efficiency,
		}, nil

	case NuclearStrategy:
		if s.YieldMt <= 0 || s.Standoff <= 0 {
			return MitigationResult{}, errors.New("nuclear standoff requires positive yield and distance")
		}
		r := imp.Radius()
		impulse := nuclearCoupling * s.YieldMt * cst.JoulesPerMegaton * r * r / (s.Standoff * s.Standoff)
		ΔV := impulse / m
		return MitigationResult{
			Strategy:      s.Describe(),
			DeltaV:        ΔV,
			Impulse:       impulse,
			Effectiveness: effectivenessScore(ΔV),
			Efficiency:    math.Min(1, r*r/(s.Standoff*s.Standoff)),
		}, nil

	default:
		return MitigationResult{}, fmt.Errorf("unsupported mitigation strategy %T", strategy)
	}
}
