package impactor

import (
	"math"
	"time"

	"github.com/gonum/matrix/mat64"
	"github.com/gonum/stat/distmv"
	"github.com/soniakeys/meeus/julian"
)

const (
	// defaultUncertainty is the dimensionless orbital uncertainty fraction
	// assumed when the caller provides none.
	defaultUncertainty = 0.05
	// probabilityGridHalf is the number of grid steps on each side of the
	// nominal point, per axis.
	probabilityGridHalf = 8
	// probabilityFloor drops grid points with negligible relative density.
	probabilityFloor = 1e-6
)

// ImpactProbabilityPoint is one sample of the relative impact-location
// density. The full set is a density sample, not a normalized distribution.
type ImpactProbabilityPoint struct {
	Latitude    float64 // degrees, [-90, 90]
	Longitude   float64 // degrees, [-180, 180)
	Probability float64 // (0, 1], relative to the nominal point
}

// GroundTrackPoint propagates the elements by Δt seconds and maps the
// inertial position to a geocentric latitude and longitude (degrees) for the
// Earth orientation at the given epoch.
func GroundTrackPoint(el OrbitalElements, Δt float64, epoch time.Time, cst Constants) (lat, long float64) {
	state := Propagate(el, Δt, cst)
	θgst := GMST(julian.TimeToJD(epoch.UTC().Add(time.Duration(Δt * float64(time.Second)))))
	return ECEF2LatLong(ECI2ECEF(state.R, θgst))
}

// ComputeProbabilityField samples a bivariate normal impact-location density
// centered on the nominal ground track point over a deterministic grid. The
// uncertainty fraction widens the distribution; zero or negative uses the
// default. Output coordinates always lie in valid latitude/longitude ranges,
// including at both eccentricity extremes.
func ComputeProbabilityField(el OrbitalElements, uncertainty float64, epoch time.Time, cst Constants) []ImpactProbabilityPoint {
	if uncertainty <= 0 || !isFinite(uncertainty) {
		uncertainty = defaultUncertainty
	}
	if uncertainty > 1 {
		uncertainty = 1
	}
	lat0, long0 := GroundTrackPoint(el, 0, epoch, cst)

	// Spread in degrees; the ground track smears more in longitude than in
	// latitude, hence the elongated covariance.
	σ := 2 + 58*uncertainty
	cov := mat64.NewSymDense(2, []float64{σ * σ, 0, 0, 4 * σ * σ})
	dist, ok := distmv.NewNormal([]float64{0, 0}, cov, nil)
	if !ok {
		panic("impact location covariance is not positive definite")
	}
	peak := dist.Prob([]float64{0, 0})

	stepLat := 3 * σ / probabilityGridHalf
	stepLong := 6 * σ / probabilityGridHalf
	points := make([]ImpactProbabilityPoint, 0, (2*probabilityGridHalf+1)*(2*probabilityGridHalf+1))
	for i := -probabilityGridHalf; i <= probabilityGridHalf; i++ {
		for j := -probabilityGridHalf; j <= probabilityGridHalf; j++ {
			dLat := float64(i) * stepLat
			dLong := float64(j) * stepLong
			p := dist.Prob([]float64{dLat, dLong}) / peak
			if p < probabilityFloor {
				continue
			}
			lat := lat0 + dLat
			if lat > 90 {
				lat = 90
			} else if lat < -90 {
				lat = -90
			}
			long := math.Mod(long0+dLong+540, 360) - 180
			points = append(points, ImpactProbabilityPoint{Latitude: lat, Longitude: long, Probability: p})
		}
	}
	return points
}
