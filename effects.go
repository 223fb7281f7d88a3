package impactor

import (
	"errors"
	"math"
)

// Empirical scaling constants. These are policy constants tuned against the
// published scaling laws, not physical law; keep them in one place.
const (
	craterScaling      = 1800.0 // m of crater per (E/1e12 J)^0.25, vertical impact on rock
	craterDepthRatio   = 5.0    // diameter to depth
	seismicOffset      = 4.8    // added to log10(Mt)
	seismicShallowBump = 0.3    // near-surface burst adjustment
	seismicCap         = 10.0
	blastScaling       = 2200.0 // m per Mt^(1/3)
	thermalScaling     = 3300.0 // m per Mt^(1/3)
	overpressureRef    = 6.9e4  // Pa per Mt^(1/3)
	ejectaRatio        = 2.3    // ejecta blanket radius over crater diameter
	burstSaturation    = 1000.0 // m, altitude floor below which blast effects saturate
	burstDecayScale    = 6000.0 // m, e-folding of blast effects with burst altitude
	rockDensity        = 2700.0 // kg/m³, default target surface
	waterDensity       = 1000.0 // kg/m³, target surface of ocean impacts
	waveHeightScaling  = 0.17   // m of open-water wave per sqrt(m of depth) per Mt^0.25
	runupDecayLength   = 60000.0
	defaultEntryAngle  = 45.0 // degrees
)

// ImpactorSpecification describes the body before it hits the atmosphere.
// Velocity is in m/s (typical entry range 11-72 km/s), angle in degrees with
// 0 grazing and 90 vertical. Density of zero defers to the composition class.
type ImpactorSpecification struct {
	Diameter      float64 // m
	Density       float64 // kg/m³, 0 defaults by composition
	Composition   Composition
	Velocity      float64 // m/s
	Angle         float64 // degrees, 0 treated as the 45° default
	TargetDensity float64 // kg/m³, 0 defaults to rock
}

// BulkDensity resolves the density, falling back to the composition table.
func (imp ImpactorSpecification) BulkDensity(cst Constants) float64 {
	if imp.Density > 0 {
		return imp.Density
	}
	return cst.BulkDensity(imp.Composition)
}

// Radius returns the body radius in meters.
func (imp ImpactorSpecification) Radius() float64 {
	return imp.Diameter / 2
}

// Mass returns the spherical mass in kg.
func (imp ImpactorSpecification) Mass(cst Constants) float64 {
	r := imp.Radius()
	return (4 / 3.) * math.Pi * math.Pow(r, 3) * imp.BulkDensity(cst)
}

// KineticEnergy returns ½mv² in joules.
func (imp ImpactorSpecification) KineticEnergy(cst Constants) float64 {
	return 0.5 * imp.Mass(cst) * imp.Velocity * imp.Velocity
}

func (imp ImpactorSpecification) entryAngle() float64 {
	if imp.Angle == 0 {
		return defaultEntryAngle
	}
	return imp.Angle
}

func (imp ImpactorSpecification) targetDensity() float64 {
	if imp.TargetDensity > 0 {
		return imp.TargetDensity
	}
	return rockDensity
}

// ImpactEffectsResult carries the ground-effect metrics of an impact or
// airburst. All fields are non-negative finite numbers for valid input.
type ImpactEffectsResult struct {
	Energy           float64 // J
	EnergyMt         float64 // Mt TNT
	CraterDiameter   float64 // m, zero for airbursts
	CraterDepth      float64 // m
	CraterVolume     float64 // m³
	SeismicMagnitude float64
	Overpressure     float64 // Pa
	BlastRadius      float64 // m
	ThermalRadius    float64 // m
	EjectaRadius     float64 // m
	BurstAltitude    float64 // m, zero for surface impacts
}

// burstAttenuation decays blast and thermal effects with burst altitude, and
// saturates below burstSaturation so that lowering the burst under ~1 km does
// not keep increasing ground effects.
func burstAttenuation(altitude float64) float64 {
	if altitude < burstSaturation {
		altitude = burstSaturation
	}
	return math.Exp(-(altitude - burstSaturation) / burstDecayScale)
}

// ComputeImpactEffects converts the impactor geometry, velocity and angle
// into energy, crater, seismic, blast and thermal metrics. A positive
// burstAltitude models an airburst: no crater forms and blast and thermal
// radii decay with altitude.
func ComputeImpactEffects(imp ImpactorSpecification, burstAltitude float64, cst Constants) ImpactEffectsResult {
	energy := imp.KineticEnergy(cst)
	mt := cst.Megatons(energy)
	θ := Deg2rad(imp.entryAngle())

	res := ImpactEffectsResult{Energy: energy, EnergyMt: mt, BurstAltitude: math.Max(burstAltitude, 0)}

	if burstAltitude <= 0 {
		// Surface impact: crater from the energy power law, scaled by
		// sin(angle) so grazing impacts excavate less, and by the
		// impactor to target density ratio.
		d := craterScaling * math.Pow(energy/1e12, 0.25)
		d *= math.Cbrt(math.Sin(θ))
		d *= math.Cbrt(imp.BulkDensity(cst) / imp.targetDensity())
		res.CraterDiameter = d
		res.CraterDepth = d / craterDepthRatio
		// Paraboloid of revolution.
		res.CraterVolume = math.Pi * d * d * res.CraterDepth / 8
		res.EjectaRadius = ejectaRatio * d
	}

	atten := burstAttenuation(res.BurstAltitude)
	cbrtMt := math.Cbrt(mt)
	res.BlastRadius = blastScaling * cbrtMt * atten
	res.ThermalRadius = thermalScaling * cbrtMt * atten
	res.Overpressure = overpressureRef * cbrtMt * atten

	mag := math.Log10(mt) + seismicOffset
	if res.BurstAltitude < burstSaturation {
		mag += seismicShallowBump
	}
	res.SeismicMagnitude = math.Min(math.Max(mag, 0), seismicCap)
	return res
}

// TsunamiResult carries the ocean-impact wave metrics.
type TsunamiResult struct {
	WaveHeight float64 // m, open water
	Runup      float64 // m, at the shoreline
	Inundation float64 // m inland
}

// ComputeTsunami returns the open-water wave height for an ocean impact.
// The height grows with both water depth and energy, and is capped by the
// water depth itself.
func ComputeTsunami(imp ImpactorSpecification, waterDepth float64, cst Constants) (TsunamiResult, error) {
	if waterDepth <= 0 || !isFinite(waterDepth) {
		return TsunamiResult{}, errors.New("water depth must be positive")
	}
	mt := cst.Megatons(imp.KineticEnergy(cst))
	h := waveHeightScaling * math.Pow(mt, 0.25) * math.Sqrt(waterDepth)
	if h > waterDepth {
		h = waterDepth
	}
	return TsunamiResult{WaveHeight: h}, nil
}

// RunupHeight returns the shoreline runup for a given open-water wave height
// and distance from the impact to the shore. It never exceeds the open-water
// height and is non-increasing in distance.
func RunupHeight(waveHeight, distance float64) float64 {
	if distance < 0 {
		distance = 0
	}
	return waveHeight * math.Exp(-distance/runupDecayLength)
}

// InundationDistance returns how far inland the runup reaches for a given
// coastal slope (rise over run). A non-positive slope is a configuration
// error, not an infinity.
func InundationDistance(runup, slope float64) (float64, error) {
	if slope <= 0 || !isFinite(slope) {
		return 0, errors.New("coastal slope must be strictly positive")
	}
	return runup / slope, nil
}

// DiameterFromEnergy inverts the kinetic energy relation for the diameter
// producing the given energy at the given density and velocity. The returned
// Solution flags whether the inversion converged.
func DiameterFromEnergy(energy, density, velocity float64, cst Constants) (float64, Solution) {
	if energy <= 0 || density <= 0 || velocity <= 0 {
		return 0, Solution{}
	}
	// Normalized so the solver tolerance is relative to the target energy.
	f := func(d float64) float64 {
		return 0.5*(math.Pi/6)*math.Pow(d, 3)*density*velocity*velocity/energy - 1
	}
	// Seed off the analytic solution so Newton has real work to do without
	// wandering to the negative branch.
	seed := 0.75 * math.Cbrt(12*energy/(math.Pi*density*velocity*velocity))
	sol := NewSolver().Root(f, nil, seed)
	return sol.Root, sol
}
