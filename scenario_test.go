package impactor

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/go-kit/kit/log"
)

func testImpactor() ImpactorSpecification {
	return ImpactorSpecification{Diameter: 100, Density: 3000, Composition: Stony, Velocity: 20000, Angle: 45}
}

func TestRunLandScenario(t *testing.T) {
	res, err := RunScenario(SimulationScenario{
		Impactor: testImpactor(),
		Location: LandImpact{PopulationDensity: 50},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Effects.Energy <= 0 {
		t.Fatal("energy must be positive")
	}
	if res.Effects.CraterDiameter <= 0 {
		t.Fatal("a 100 m stony body on land must excavate a crater")
	}
	if res.Effects.SeismicMagnitude <= 0 || res.Effects.SeismicMagnitude > 10 {
		t.Fatalf("seismic magnitude %f outside (0, 10]", res.Effects.SeismicMagnitude)
	}
	if res.Entry.Outcome != OutcomeGroundImpact {
		t.Fatalf("expected ground impact, got %s", res.Entry.Outcome)
	}
	if res.AffectedPopulation <= 0 {
		t.Fatal("populated land must report exposure")
	}
	if res.Tsunami != nil {
		t.Fatal("land scenarios carry no tsunami")
	}
	if res.Severity != SeverityMajor {
		t.Fatalf("a ~75 Mt impact is a major event, got %q", res.Severity)
	}
	if res.WarningTime <= 0 {
		t.Fatal("warning time must be positive")
	}
}

func TestRunOceanScenario(t *testing.T) {
	res, err := RunScenario(SimulationScenario{
		Impactor: testImpactor(),
		Location: OceanImpact{WaterDepth: 4000, DistanceToShore: 50000, CoastalSlope: 0.01},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Tsunami == nil {
		t.Fatal("ocean scenarios must model the tsunami")
	}
	if res.Tsunami.WaveHeight <= 0 {
		t.Fatal("wave height must be positive")
	}
	if res.Tsunami.Runup > res.Tsunami.WaveHeight {
		t.Fatal("runup cannot exceed the open-water height")
	}
	if res.Tsunami.Inundation <= 0 {
		t.Fatal("a positive runup must reach inland")
	}
	found := false
	for _, rec := range res.Recommendations {
		if strings.Contains(rec, "tsunami warnings") {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing tsunami advisory in %v", res.Recommendations)
	}
}

func TestRunOceanTargetDensity(t *testing.T) {
	cst := DefaultConstants()
	ocean := OceanImpact{WaterDepth: 4000, DistanceToShore: 50000, CoastalSlope: 0.01}
	res, err := RunScenario(SimulationScenario{Impactor: testImpactor(), Location: ocean})
	if err != nil {
		t.Fatal(err)
	}
	// An unset target density must resolve to water, not rock.
	water := testImpactor()
	water.TargetDensity = waterDensity
	if exp := ComputeImpactEffects(water, 0, cst); res.Effects.CraterDiameter != exp.CraterDiameter {
		t.Fatalf("ocean crater %f != water-target crater %f", res.Effects.CraterDiameter, exp.CraterDiameter)
	}
	if rock := ComputeImpactEffects(testImpactor(), 0, cst); res.Effects.CraterDiameter <= rock.CraterDiameter {
		t.Fatal("excavating water must open a wider crater than the rock default")
	}
	// An explicit target density is never overridden.
	pinned := testImpactor()
	pinned.TargetDensity = rockDensity
	res, err = RunScenario(SimulationScenario{Impactor: pinned, Location: ocean})
	if err != nil {
		t.Fatal(err)
	}
	if exp := ComputeImpactEffects(pinned, 0, cst); res.Effects.CraterDiameter != exp.CraterDiameter {
		t.Fatal("explicit target density was overridden for an ocean impact")
	}
}

func TestRunAtmosphericScenario(t *testing.T) {
	imp := ImpactorSpecification{Diameter: 18, Density: 3300, Composition: Stony, Velocity: 19000, Angle: 18}
	low, err := RunScenario(SimulationScenario{Impactor: imp, Location: AtmosphericBurst{BurstAltitude: 2000}})
	if err != nil {
		t.Fatal(err)
	}
	high, err := RunScenario(SimulationScenario{Impactor: imp, Location: AtmosphericBurst{BurstAltitude: 20000}})
	if err != nil {
		t.Fatal(err)
	}
	if low.Effects.CraterDiameter != 0 || high.Effects.CraterDiameter != 0 {
		t.Fatal("airbursts must not excavate a crater")
	}
	if high.Effects.BlastRadius >= low.Effects.BlastRadius {
		t.Fatal("a higher burst must attenuate the blast")
	}
}

func TestRunWithMitigationAndElements(t *testing.T) {
	el := NewOrbitalElements(8e6, 0.2, 45, 10, 20, 30)
	res, err := RunScenario(SimulationScenario{
		Impactor:   testImpactor(),
		Location:   LandImpact{PopulationDensity: 10},
		Mitigation: KineticImpactorStrategy{ProjectileMass: 600, RelativeVelocity: 6000},
		Elements:   &el,
		Epoch:      time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Mitigation == nil {
		t.Fatal("a provided strategy must be evaluated")
	}
	if res.Mitigation.DeltaV <= 0 {
		t.Fatal("ΔV must be positive")
	}
	if len(res.Probability) == 0 {
		t.Fatal("orbital elements must yield an impact probability field")
	}
}

func TestRunValidationFailures(t *testing.T) {
	bad := testImpactor()
	bad.Diameter = -5
	_, err := RunScenario(SimulationScenario{Impactor: bad, Location: LandImpact{}})
	if err == nil {
		t.Fatal("negative diameter must fail before any computation")
	}
	if !strings.Contains(err.Error(), "diameter") {
		t.Fatalf("error must name the violating field, got %q", err)
	}
	if _, err = RunScenario(SimulationScenario{Impactor: testImpactor()}); err == nil {
		t.Fatal("missing location must fail")
	}
	_, err = RunScenario(SimulationScenario{
		Impactor: testImpactor(),
		Location: OceanImpact{WaterDepth: 4000, CoastalSlope: 0},
	})
	if err == nil {
		t.Fatal("zero coastal slope must fail")
	}
}

func TestRunLogsStateMachine(t *testing.T) {
	var buf bytes.Buffer
	sim := NewSimulator(DefaultConstants(), log.NewLogfmtLogger(&buf))
	if _, err := sim.Run(SimulationScenario{Impactor: testImpactor(), Location: LandImpact{}}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, state := range []string{"initialized", "basic-parameters-computed", "location-effects-computed", "finalized"} {
		if !strings.Contains(out, state) {
			t.Fatalf("missing %q in the state log:\n%s", state, out)
		}
	}
}

func TestClassifySeverity(t *testing.T) {
	for mt, exp := range map[float64]Severity{
		2e6:  SeverityExtinction,
		2e4:  SeverityGlobal,
		200:  SeverityRegional,
		2:    SeverityMajor,
		0.02: SeverityLocal,
		1e-3: SeverityMinor,
	} {
		if got := ClassifySeverity(mt); got != exp {
			t.Fatalf("%f Mt classified as %q, expected %q", mt, got, exp)
		}
	}
}

func TestLocationKinds(t *testing.T) {
	for _, tc := range []struct {
		loc  ImpactLocation
		kind string
	}{
		{LandImpact{}, "land"},
		{OceanImpact{}, "ocean"},
		{AtmosphericBurst{}, "atmosphere"},
	} {
		if tc.loc.Kind() != tc.kind {
			t.Fatalf("%T kind %q != %q", tc.loc, tc.loc.Kind(), tc.kind)
		}
	}
}
