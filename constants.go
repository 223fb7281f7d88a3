package impactor

import (
	"fmt"

	"github.com/spf13/viper"
)

// Composition classifies the bulk material of an impactor.
type Composition uint8

const (
	// Stony is an ordinary chondrite body.
	Stony Composition = iota + 1
	// Iron is a nickel-iron body.
	Iron
	// Carbonaceous is a weak carbonaceous chondrite body.
	Carbonaceous
	// Icy is a cometary body.
	Icy
)

func (c Composition) String() string {
	switch c {
	case Stony:
		return "stony"
	case Iron:
		return "iron"
	case Carbonaceous:
		return "carbonaceous"
	case Icy:
		return "icy"
	default:
		panic("unknown composition")
	}
}

// Strength returns the aerodynamic breakup strength in Pa.
// These are bulk strengths, not tensile strengths of hand samples.
func (c Composition) Strength() float64 {
	switch c {
	case Stony:
		return 5e6
	case Iron:
		return 2e8
	case Carbonaceous:
		return 1e6
	case Icy:
		return 1e5
	default:
		panic("unknown composition")
	}
}

// AblationCoefficient returns σ in kg/J, i.e. the mass shed per unit of
// dynamic-pressure work during atmospheric entry.
func (c Composition) AblationCoefficient() float64 {
	switch c {
	case Stony:
		return 1e-8
	case Iron:
		return 7e-9
	case Carbonaceous:
		return 2e-8
	case Icy:
		return 4e-8
	default:
		panic("unknown composition")
	}
}

// Constants gathers the physical constants used throughout the engine.
// A value of this struct is passed explicitly to every computation so that
// there is no module-level mutable state.
type Constants struct {
	G                  float64 // gravitational constant, m³/(kg·s²)
	EarthRadius        float64 // m
	EarthMass          float64 // kg
	EscapeVelocity     float64 // m/s
	AtmosphereHeight   float64 // m, where the entry integration starts
	AtmScaleHeight     float64 // m, of the exponential density profile
	SeaLevelAirDensity float64 // kg/m³
	JoulesPerMegaton   float64 // J per Mt TNT
	DetectionRange     float64 // m, nominal survey detection distance
	Densities          map[Composition]float64
}

// GM returns the two-body gravitational parameter μ = G·M in m³/s².
func (c Constants) GM() float64 {
	return c.G * c.EarthMass
}

// Megatons converts an energy in joules to megatons of TNT.
func (c Constants) Megatons(energy float64) float64 {
	return energy / c.JoulesPerMegaton
}

// BulkDensity returns the default bulk density for a composition class.
func (c Constants) BulkDensity(comp Composition) float64 {
	if ρ, found := c.Densities[comp]; found {
		return ρ
	}
	return c.Densities[Stony]
}

// DefaultConstants returns the documented default constants.
func DefaultConstants() Constants {
	return Constants{
		G:                  6.6743e-11,
		EarthRadius:        6371000.0,
		EarthMass:          5.972e24,
		EscapeVelocity:     11200.0,
		AtmosphereHeight:   100000.0,
		AtmScaleHeight:     8000.0,
		SeaLevelAirDensity: 1.225,
		JoulesPerMegaton:   4.184e15,
		DetectionRange:     7.48e9, // 0.05 AU
		Densities: map[Composition]float64{
			Stony:        3000,
			Iron:         7800,
			Carbonaceous: 2000,
			Icy:          900,
		},
	}
}

// LoadConstants returns the default constants overridden by a constants.toml
// found in the provided directory. An empty path returns the defaults as-is.
func LoadConstants(path string) (Constants, error) {
	cst := DefaultConstants()
	if path == "" {
		return cst, nil
	}
	v := viper.New()
	v.SetConfigName("constants")
	v.AddConfigPath(path)
	if err := v.ReadInConfig(); err != nil {
		return cst, fmt.Errorf("%s/constants.toml not found: %s", path, err)
	}
	for key, dst := range map[string]*float64{
		"physics.gravitational_constant": &cst.G,
		"earth.radius":                   &cst.EarthRadius,
		"earth.mass":                     &cst.EarthMass,
		"earth.escape_velocity":          &cst.EscapeVelocity,
		"atmosphere.height":              &cst.AtmosphereHeight,
		"atmosphere.scale_height":        &cst.AtmScaleHeight,
		"atmosphere.sea_level_density":   &cst.SeaLevelAirDensity,
		"energy.joules_per_megaton":      &cst.JoulesPerMegaton,
		"survey.detection_range":         &cst.DetectionRange,
	} {
		if v.IsSet(key) {
			*dst = v.GetFloat64(key)
		}
	}
	for comp, key := range map[Composition]string{
		Stony:        "densities.stony",
		Iron:         "densities.iron",
		Carbonaceous: "densities.carbonaceous",
		Icy:          "densities.icy",
	} {
		if v.IsSet(key) {
			cst.Densities[comp] = v.GetFloat64(key)
		}
	}
	for name, val := range map[string]float64{
		"gravitational constant": cst.G,
		"Earth radius":           cst.EarthRadius,
		"Earth mass":             cst.EarthMass,
		"atmosphere scale":       cst.AtmScaleHeight,
		"megaton conversion":     cst.JoulesPerMegaton,
	} {
		if val <= 0 || !isFinite(val) {
			return DefaultConstants(), fmt.Errorf("override makes the %s non positive", name)
		}
	}
	return cst, nil
}
