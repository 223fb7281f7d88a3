package impactor

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-kit/kit/log"
)

// ImpactLocation is the closed set of impact site variants.
type ImpactLocation interface {
	Kind() string
	location()
}

// LandImpact hits solid ground with a surrounding population.
type LandImpact struct {
	PopulationDensity float64 // people per km²
}

// Kind implements ImpactLocation.
func (l LandImpact) Kind() string { return "land" }
func (l LandImpact) location()    {}

// OceanImpact hits open water of a given depth.
type OceanImpact struct {
	WaterDepth      float64 // m
	DistanceToShore float64 // m to the nearest shoreline
	CoastalSlope    float64 // rise over run, must be > 0
}

// Kind implements ImpactLocation.
func (l OceanImpact) Kind() string { return "ocean" }
func (l OceanImpact) location()    {}

// AtmosphericBurst detonates at altitude without reaching the surface.
type AtmosphericBurst struct {
	BurstAltitude float64 // m
}

// Kind implements ImpactLocation.
func (l AtmosphericBurst) Kind() string { return "atmosphere" }
func (l AtmosphericBurst) location()    {}

// SimulationScenario composes everything a single run needs. Created fresh
// per run; never shared or mutated concurrently.
type SimulationScenario struct {
	Impactor   ImpactorSpecification
	Location   ImpactLocation
	Mitigation MitigationStrategy // optional
	Elements   *OrbitalElements   // optional trajectory context
	Epoch      time.Time          // used with Elements for the ground track
}

// Severity classifies the scenario on ordered megaton thresholds. The
// thresholds are policy constants, not planetary-defense science.
type Severity string

// Severity classes from worst to most benign.
const (
	SeverityExtinction Severity = "Extinction Level Event"
	SeverityGlobal     Severity = "Global Catastrophe"
	SeverityRegional   Severity = "Regional Disaster"
	SeverityMajor      Severity = "Major Event"
	SeverityLocal      Severity = "Local Event"
	SeverityMinor      Severity = "Minor Event"
)

// ClassifySeverity maps an energy in Mt TNT to its severity class.
func ClassifySeverity(mt float64) Severity {
	switch {
	case mt >= 1e6:
		return SeverityExtinction
	case mt >= 1e4:
		return SeverityGlobal
	case mt >= 1e2:
		return SeverityRegional
	case mt >= 1:
		return SeverityMajor
	case mt >= 1e-2:
		return SeverityLocal
	default:
		return SeverityMinor
	}
}

type simulationState uint8

const (
	stateInitialized simulationState = iota
	stateBasicComputed
	stateLocationComputed
	stateMitigationComputed
	stateFinalized
)

func (s simulationState) String() string {
	switch s {
	case stateInitialized:
		return "initialized"
	case stateBasicComputed:
		return "basic-parameters-computed"
	case stateLocationComputed:
		return "location-effects-computed"
	case stateMitigationComputed:
		return "mitigation-computed"
	case stateFinalized:
		return "finalized"
	default:
		panic("unknown simulation state")
	}
}

// SimulationResult is the assembled output of a full scenario run.
type SimulationResult struct {
	Severity           Severity
	Effects            ImpactEffectsResult
	Entry              EntryResult
	Tsunami            *TsunamiResult    // ocean scenarios only
	Mitigation         *MitigationResult // when a strategy was provided
	Probability        []ImpactProbabilityPoint
	AffectedPopulation float64 // land scenarios, people within the blast radius
	WarningTime        float64 // s, detection-range/velocity heuristic
	Recommendations    []string
}

// Simulator sequences the physics components per scenario type. It holds no
// cross-call state: concurrent Run calls need no coordination.
type Simulator struct {
	cst    Constants
	logger log.Logger
}

// NewSimulator returns a Simulator on the given constants. A nil logger is
// replaced by a nop logger.
func NewSimulator(cst Constants, logger log.Logger) *Simulator {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Simulator{cst: cst, logger: logger}
}

// RunScenario is the convenience entry point with default constants and no
// logging.
func RunScenario(scenario SimulationScenario) (*SimulationResult, error) {
	return NewSimulator(DefaultConstants(), nil).Run(scenario)
}

// Run executes the full state machine: initialized → basic parameters →
// location effects → (optional) mitigation → finalized. Invalid scenarios
// fail fast before any computation; no partial results are returned.
func (s *Simulator) Run(scenario SimulationScenario) (*SimulationResult, error) {
	state := stateInitialized
	s.logger.Log("level", "info", "subsys", "sim", "state", state.String())

	if violations := ValidateScenario(scenario); len(violations) > 0 {
		return nil, fmt.Errorf("scenario validation failed: %s", strings.Join(violations, "; "))
	}

	imp := scenario.Impactor
	// Ocean impacts excavate water, not rock, unless the caller pinned a
	// target density.
	if _, isOcean := scenario.Location.(OceanImpact); isOcean && imp.TargetDensity == 0 {
		imp.TargetDensity = waterDensity
	}
	result := &SimulationResult{}
	result.Entry = SimulateEntry(imp, s.cst.AtmosphereHeight, 0, s.cst)

	// Burst altitude: explicit for atmospheric scenarios, otherwise taken
	// from fragmentation only if the body never reached the ground.
	burstAlt := 0.0
	if loc, isBurst := scenario.Location.(AtmosphericBurst); isBurst {
		burstAlt = loc.BurstAltitude
	} else if result.Entry.Airburst != nil && result.Entry.Outcome != OutcomeGroundImpact {
		burstAlt = result.Entry.Airburst.Altitude
	}
	result.Effects = ComputeImpactEffects(imp, burstAlt, s.cst)
	state = stateBasicComputed
	s.logger.Log("level", "info", "subsys", "sim", "state", state.String(),
		"energy(Mt)", result.Effects.EnergyMt, "outcome", result.Entry.Outcome.String())

	switch loc := scenario.Location.(type) {
	case LandImpact:
		blastKm := result.Effects.BlastRadius / 1000
		result.AffectedPopulation = loc.PopulationDensity * math.Pi * blastKm * blastKm
	case OceanImpact:
		tsunami, err := ComputeTsunami(imp, loc.WaterDepth, s.cst)
		if err != nil {
			return nil, err
		}
		tsunami.Runup = RunupHeight(tsunami.WaveHeight, loc.DistanceToShore)
		tsunami.Inundation, err = InundationDistance(tsunami.Runup, loc.CoastalSlope)
		if err != nil {
			return nil, err
		}
		result.Tsunami = &tsunami
	case AtmosphericBurst:
		// Burst effects are already folded into the attenuated metrics.
	default:
		return nil, fmt.Errorf("unsupported impact location %T", scenario.Location)
	}
	if scenario.Elements != nil {
		result.Probability = ComputeProbabilityField(*scenario.Elements, defaultUncertainty, scenario.Epoch, s.cst)
	}
	state = stateLocationComputed
	s.logger.Log("level", "info", "subsys", "sim", "state", state.String(), "location", scenario.Location.Kind())

	if scenario.Mitigation != nil {
		mitigation, err := EvaluateMitigation(scenario.Mitigation, imp, s.cst)
		if err != nil {
			return nil, err
		}
		result.Mitigation = &mitigation
		state = stateMitigationComputed
		s.logger.Log("level", "info", "subsys", "sim", "state", state.String(),
			"strategy", mitigation.Strategy, "Δv(m/s)", mitigation.DeltaV)
	}

	result.Severity = ClassifySeverity(result.Effects.EnergyMt)
	result.WarningTime = s.cst.DetectionRange / imp.Velocity
	result.Recommendations = recommendations(scenario, result)
	state = stateFinalized
	s.logger.Log("level", "notice", "subsys", "sim", "state", state.String(), "severity", string(result.Severity))
	return result, nil
}

// recommendations builds the free-text advisories. Every branch whose
// trigger holds contributes independently; several may fire at once.
func recommendations(scenario SimulationScenario, result *SimulationResult) []string {
	var recs []string
	mt := result.Effects.EnergyMt
	if mt >= 1e4 {
		recs = append(recs, "Coordinate an international planetary defense response; effects will not be contained regionally.")
	}
	if mt >= 1e2 {
		recs = append(recs, "Begin mass evacuation of the projected impact corridor.")
	}
	switch scenario.Location.(type) {
	case LandImpact:
		if result.AffectedPopulation > 1e5 {
			recs = append(recs, "Pre-position shelter, medical and relief capacity outside the blast radius.")
		}
	case OceanImpact:
		recs = append(recs, "Issue tsunami warnings for all shorelines facing the impact basin.")
		if result.Tsunami != nil && result.Tsunami.Runup > 5 {
			recs = append(recs, fmt.Sprintf("Evacuate coastal zones up to %s m inland.", FormatMagnitude(result.Tsunami.Inundation)))
		}
	}
	if result.Effects.SeismicMagnitude >= 7 {
		recs = append(recs, "Expect severe ground shaking well beyond the blast radius; activate earthquake response protocols.")
	}
	if result.Mitigation != nil && result.Mitigation.Effectiveness >= 0.5 {
		recs = append(recs, "The evaluated mitigation achieves a meaningful deflection; prioritize its launch window.")
	}
	return recs
}
