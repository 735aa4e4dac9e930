package nscp

import "math"

// NSCP 2015 shear provisions for nonprestressed beams

const (
	// Stirrup legs assumed for two-legged closed ties
	StirrupLegs = 2

	// Section 409.7.6.2.2 - maximum spacing of shear reinforcement
	SpacingLimitLow      = 600.0 // mm, when Vs <= 0.33√f'c·bw·d
	SpacingLimitHigh     = 300.0 // mm, when Vs > 0.33√f'c·bw·d
	SpacingThresholdCoef = 0.33

	// Section 409.6.3.3 - minimum shear reinforcement
	MinShearCoefSqrt  = 0.062
	MinShearCoefFixed = 0.35

	// Section 422.5.1.2 - cross-sectional dimension limit
	DimensionalLimitCoef = 0.66
)

// SupportShearNote is the advisory printed with every shear check.
const SupportShearNote = "NSCP 2015 Sec. 409.4.3.2: for beams loaded on the top face and supported " +
	"so that compression is introduced at the support, sections located less than d from the " +
	"face of support may be designed for Vu computed at a distance d. Otherwise use Vu at the support face."

// ConcreteShear returns Vc = (1/6)λ√f'c·bw·d in N
// NSCP 2015 Section 422.5.5.1
func ConcreteShear(fc, bw, d, lambda float64) float64 {
	return lambda * math.Sqrt(fc) * bw * d / 6
}

// SpacingThreshold returns the Vs value in N that separates the two rows of
// Table 409.7.6.2.2.
func SpacingThreshold(fc, bw, d float64) float64 {
	return SpacingThresholdCoef * math.Sqrt(fc) * bw * d
}

// SpacingRow is one row of Table 409.7.6.2.2.
type SpacingRow struct {
	Case        string
	DepthFactor float64 // s <= d·DepthFactor
	Limit       float64 // mm
}

// SpacingTable is Table 409.7.6.2.2, low shear row first.
var SpacingTable = [2]SpacingRow{
	{Case: "Vs ≤ 0.33√f'c·bw·d: s_max = min(d/2, 600 mm)", DepthFactor: 0.5, Limit: SpacingLimitLow},
	{Case: "Vs > 0.33√f'c·bw·d: s_max = min(d/4, 300 mm)", DepthFactor: 0.25, Limit: SpacingLimitHigh},
}

// MaxSpacing returns the governing table row and its spacing limit for the
// required steel shear vs (N).
func MaxSpacing(vs, fc, bw, d float64) (SpacingRow, float64) {
	row := SpacingTable[0]
	if vs > SpacingThreshold(fc, bw, d) {
		row = SpacingTable[1]
	}
	return row, math.Min(d*row.DepthFactor, row.Limit)
}

// MinShearRatio returns the minimum Av/s in mm²/mm
// NSCP 2015 Section 409.6.3.3
func MinShearRatio(fc, bw, fyt float64) float64 {
	return math.Max(MinShearCoefSqrt*math.Sqrt(fc)*bw/fyt, MinShearCoefFixed*bw/fyt)
}

// MaxSteelShear returns 0.66√f'c·bw·d in N, the Vs term of the
// cross-sectional dimension limit of Section 422.5.1.2.
func MaxSteelShear(fc, bw, d float64) float64 {
	return DimensionalLimitCoef * math.Sqrt(fc) * bw * d
}
