package nscp

import "math"

// NSCP 2015 Material Constants

const (
	// Beta1 limits for the equivalent rectangular stress block
	// Section 422.2.2.4.3
	Beta1Max = 0.85 // for f'c <= 28 MPa
	Beta1Min = 0.65 // for f'c >= 55 MPa

	// Strain limits
	EpsilonCU = 0.003 // Ultimate concrete strain (Section 422.2.2.1)

	// Net tensile strain limits for the φ ramp (Table 421.2.2)
	EpsilonCompressionControlled = 0.002
	EpsilonTensionControlled     = 0.005

	// Strength reduction factors (Section 421.2.1)
	PhiFlexure     = 0.90 // Tension-controlled sections
	PhiShear       = 0.75 // Shear and torsion
	PhiCompression = 0.65 // Compression-controlled (other than spiral)

	// Modulus of elasticity for steel (Section 420.2.2.2)
	Es = 200000.0 // MPa

	// Equivalent concrete stress intensity (Section 422.2.2.4.1)
	StressBlockFactor = 0.85
)

// Beta1Row is one row of Table 422.2.2.4.3. Rows are tried in order and
// the first one whose upper bound admits f'c applies.
type Beta1Row struct {
	FcMin float64 // MPa, lower bound of the row (informative)
	FcMax float64 // MPa, +Inf for the last row
	// ClosedMax is set when f'c = FcMax still belongs to the row.
	ClosedMax bool
	Value     func(fc float64) float64
}

// Beta1Table is Table 422.2.2.4.3 - Values of β1 for the equivalent
// rectangular concrete stress distribution.
var Beta1Table = []Beta1Row{
	{
		// 17 <= f'c <= 28
		FcMin:     17,
		FcMax:     28,
		ClosedMax: true,
		Value:     func(float64) float64 { return Beta1Max },
	},
	{
		// 28 < f'c < 55: β1 = 0.85 - 0.05(f'c - 28)/7
		FcMin: 28,
		FcMax: 55,
		Value: func(fc float64) float64 { return Beta1Max - 0.05*(fc-28)/7 },
	},
	{
		// f'c >= 55
		FcMin: 55,
		FcMax: math.Inf(1),
		Value: func(float64) float64 { return Beta1Min },
	},
}

// admits reports whether f'c does not exceed the upper bound of the row.
func (r Beta1Row) admits(fc float64) bool {
	return fc < r.FcMax || (r.ClosedMax && fc == r.FcMax)
}

// Beta1 looks up the stress block factor in Table 422.2.2.4.3.
func Beta1(fc float64) float64 {
	for _, row := range Beta1Table {
		if row.admits(fc) {
			return clamp(row.Value(fc), Beta1Min, Beta1Max)
		}
	}
	return Beta1Min
}

// Phi calculates the flexural strength reduction factor from the net
// tensile strain at the extreme tension steel.
// NSCP 2015 Table 421.2.2
func Phi(epsilonT float64) float64 {
	switch {
	case epsilonT <= EpsilonCompressionControlled:
		return PhiCompression
	case epsilonT >= EpsilonTensionControlled:
		return PhiFlexure
	}
	// Transition zone
	ramp := (epsilonT - EpsilonCompressionControlled) /
		(EpsilonTensionControlled - EpsilonCompressionControlled)
	return clamp(PhiCompression+(PhiFlexure-PhiCompression)*ramp, PhiCompression, PhiFlexure)
}

// YieldStrain returns fy/Es.
func YieldStrain(fy float64) float64 {
	return fy / Es
}

// RhoMin calculates the minimum flexural reinforcement ratio
// NSCP 2015 Section 409.6.1.2
func RhoMin(fc, fy float64) float64 {
	// ρmin = max(0.25√f'c / fy, 1.4/fy)
	rho1 := 0.25 * math.Sqrt(fc) / fy
	rho2 := 1.4 / fy
	return math.Max(rho1, rho2)
}

// RhoMax calculates the maximum reinforcement ratio used as the
// tension-controlled proxy bound.
// c/d = εcu / (εcu + 0.005) = 3/8
func RhoMax(fc, fy float64) float64 {
	return (3.0 / 8.0) * StressBlockFactor * Beta1(fc) * fc / fy
}

// Lambda returns the lightweight concrete modification factor
// NSCP 2015 Table 419.2.4.2 (all-lightweight value used for any lightweight mix)
func Lambda(lightweight bool) float64 {
	if lightweight {
		return 0.75
	}
	return 1.0
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
