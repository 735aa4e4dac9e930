// Package flexure computes the nominal and design moment capacity of a
// rectangular section with tension and optional compression steel.
//
// Equilibrium is solved by trying a short, fixed list of steel stress
// assumptions. Each assumption turns Cc + C's = T into a quadratic in the
// neutral axis depth c with a closed-form root; the root is then checked by
// strain compatibility. Every tried case is kept as a derivation trail.
package flexure

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexiusacademia/beamcheck/internal/errors"
	"github.com/alexiusacademia/beamcheck/internal/nscp"
)

// Input holds everything the solver needs. Areas are the ones used for
// capacity, so As may already be replaced by As,min.
type Input struct {
	Width float64 // b (mm)
	Fc    float64 // f'c (MPa)
	Fy    float64 // fy (MPa)

	D      float64  // d (mm)
	DPrime *float64 // d' (mm), nil without compression steel

	As      float64 // tension steel area (mm²)
	AsPrime float64 // compression steel area (mm²)

	Mu float64 // factored moment (kN-m)
}

func (in Input) dPrime() float64 {
	if in.DPrime == nil {
		return 0
	}
	return *in.DPrime
}

func (in Input) hasCompression() bool {
	return in.DPrime != nil && in.AsPrime > 0
}

// Case is one entry of the derivation trail.
type Case struct {
	Label  string `json:"case"`
	Solved bool   `json:"solved"` // false when the case was skipped

	C float64 `json:"c_mm"`
	A float64 `json:"a_mm"`

	EpsilonS      float64 `json:"eps_s"`
	EpsilonSPrime float64 `json:"eps_s_prime"`
	Fs            float64 `json:"fs_MPa"`
	FsPrime       float64 `json:"fsp_MPa"`
	TensionYield  bool    `json:"fs_yield"`
	CompYield     bool    `json:"fsp_yield"`

	// CsRequired is the compression steel force that closes equilibrium
	// when the block edge sits at d' (N).
	CsRequired float64 `json:"Cs_required_N,omitempty"`

	InsideBlock bool   `json:"inside_block"`
	Consistent  bool   `json:"consistent"`
	Reason      string `json:"reason,omitempty"`
}

// Derivation records how the solution was reached.
type Derivation struct {
	Beta1            float64  `json:"beta1"`
	D                float64  `json:"d_mm"`
	DPrime           *float64 `json:"d_prime_mm"`
	AssumptionsTried []Case   `json:"assumptions_tried"`
}

// Result holds the flexural capacity of the section.
type Result struct {
	Beta1  float64  `json:"beta1"`
	D      float64  `json:"d"`       // mm
	DPrime *float64 `json:"d_prime"` // mm

	As      float64 `json:"As_mm2"`       // area used for capacity
	AsPrime float64 `json:"As_prime_mm2"` // compression steel area

	A        float64 `json:"a"` // mm
	C        float64 `json:"c"` // mm
	EpsilonT float64 `json:"eps_t"`
	Fs       float64 `json:"fs_t"` // MPa
	FsPrime  float64 `json:"fs_c"` // MPa

	// Forces (N)
	Cc      float64 `json:"Cc_N"`
	CsPrime float64 `json:"Cs_N"`
	T       float64 `json:"T_N"`

	Phi     float64 `json:"phi"`
	Mn      float64 `json:"Mn_Nmm"`
	PhiMn   float64 `json:"phiMn_kNm"`
	Control string  `json:"control"`

	AssumptionUsed string     `json:"assumption_used"`
	Derivation     Derivation `json:"derivation"`

	// OK is φMn >= Mu
	OK bool `json:"-"`
}

// NoEquilibriumError is returned when none of the assumptions is
// self-consistent. It lists every tried case.
type NoEquilibriumError struct {
	Cases []Case
}

func (e *NoEquilibriumError) Error() string {
	var sb strings.Builder
	sb.WriteString("no consistent equilibrium state:")
	for _, c := range e.Cases {
		fmt.Fprintf(&sb, " [%s: %s]", c.Label, c.Reason)
	}
	return sb.String()
}

// Code returns the error category.
func (e *NoEquilibriumError) Code() errors.Code {
	return errors.ErrCodeNoEquilibrium
}

// Solve finds the first self-consistent assumption and computes the
// moment capacity for it.
func Solve(in Input) (*Result, error) {
	if in.Width <= 0 || in.D <= 0 {
		return nil, errors.New(errors.ErrCodeGeometry, "invalid section: b=%.2f mm, d=%.2f mm", in.Width, in.D)
	}
	if in.Fc <= 0 || in.Fy <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid material properties: f'c=%.2f, fy=%.2f", in.Fc, in.Fy)
	}
	if in.As <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid tension reinforcement: As=%.2f mm²", in.As)
	}
	if in.hasCompression() && *in.DPrime >= in.D {
		return nil, errors.New(errors.ErrCodeGeometry, "compression steel depth d'=%.2f mm is not above d=%.2f mm", *in.DPrime, in.D)
	}

	beta1 := nscp.Beta1(in.Fc)
	trail := make([]Case, 0, len(Assumptions))

	var (
		chosen Assumption
		found  bool
		sol    Case
	)
	for _, asm := range Assumptions {
		tc := trial(in, beta1, asm)
		trail = append(trail, tc)
		if tc.Consistent && !found {
			chosen, sol, found = asm, tc, true
		}
	}

	if !found {
		return nil, &NoEquilibriumError{Cases: trail}
	}

	result := &Result{
		Beta1:          beta1,
		D:              in.D,
		As:             in.As,
		AsPrime:        in.AsPrime,
		A:              sol.A,
		C:              sol.C,
		Fs:             sol.Fs,
		FsPrime:        sol.FsPrime,
		AssumptionUsed: sol.Label,
		Derivation: Derivation{
			Beta1:            beta1,
			D:                in.D,
			AssumptionsTried: trail,
		},
	}
	if in.hasCompression() {
		dp := *in.DPrime
		result.DPrime = &dp
		result.Derivation.DPrime = &dp
	}

	result.EpsilonT = nscp.EpsilonCU * (in.D - sol.C) / sol.C
	result.Phi = nscp.Phi(result.EpsilonT)
	result.Control = controlZone(result.EpsilonT)

	// Forces (N)
	result.Cc = nscp.StressBlockFactor * in.Fc * in.Width * sol.A
	switch {
	case chosen.Compression == CompressionAtEdge:
		result.CsPrime = sol.CsRequired
	case chosen.engaged():
		result.CsPrime = in.AsPrime * (sol.FsPrime - nscp.StressBlockFactor*in.Fc)
	}
	result.T = in.As * sol.Fs

	// Moments about the tension steel centroid
	// Mn = Cc(d - a/2) + C's(d - d')
	result.Mn = result.Cc * (in.D - sol.A/2)
	if chosen.engaged() {
		result.Mn += result.CsPrime * (in.D - *in.DPrime)
	}
	result.PhiMn = result.Phi * result.Mn / 1e6
	result.OK = result.Phi*result.Mn >= in.Mu*1e6

	return result, nil
}

// trial solves equilibrium under one assumption and checks it.
func trial(in Input, beta1 float64, asm Assumption) Case {
	tc := Case{Label: asm.Label()}

	if asm.engaged() && !in.hasCompression() {
		tc.Reason = "no compression steel"
		return tc
	}
	if asm.Compression == CompressionAtEdge {
		return edgeTrial(in, beta1, asm)
	}

	k := nscp.StressBlockFactor * in.Fc * in.Width * beta1
	b, c := asm.coefficients(in)
	tc.Solved = true
	tc.C = positiveRoot(k, b, c)
	tc.A = beta1 * tc.C

	if tc.C <= 0 || math.IsNaN(tc.C) {
		tc.Reason = "equilibrium has no positive neutral axis depth"
		tc.C, tc.A = 0, 0
		return tc
	}

	epsY := nscp.YieldStrain(in.Fy)
	tc.EpsilonS = nscp.EpsilonCU * (in.D - tc.C) / tc.C
	tc.Fs = asm.tensionStress(in, tc.C)
	tc.TensionYield = tc.EpsilonS >= epsY
	if in.hasCompression() {
		tc.EpsilonSPrime = nscp.EpsilonCU * (tc.C - *in.DPrime) / tc.C
		tc.CompYield = tc.EpsilonSPrime >= epsY
		tc.InsideBlock = tc.A >= *in.DPrime
	}
	tc.FsPrime = asm.compressionStress(in, tc.C)

	tc.Reason = inconsistency(in, asm, tc, epsY)
	tc.Consistent = tc.Reason == ""
	return tc
}

// inconsistency returns why the solved case contradicts its assumption, or
// an empty string when it is consistent.
func inconsistency(in Input, asm Assumption, tc Case, epsY float64) string {
	if tc.C >= in.D {
		return fmt.Sprintf("c = %.2f mm is not less than d = %.2f mm", tc.C, in.D)
	}

	if asm.TensionYields && !tc.TensionYield {
		return fmt.Sprintf("tension steel does not yield (εs = %.5f < εy = %.5f)", tc.EpsilonS, epsY)
	}
	if !asm.TensionYields && tc.TensionYield {
		return fmt.Sprintf("tension steel yields (εs = %.5f ≥ εy = %.5f)", tc.EpsilonS, epsY)
	}

	if !in.hasCompression() {
		return ""
	}

	dp := *in.DPrime
	switch asm.Compression {
	case CompressionYields, CompressionElastic:
		if !tc.InsideBlock {
			return fmt.Sprintf("compression steel lies outside the stress block (a = %.2f mm < d' = %.2f mm)", tc.A, dp)
		}
		if asm.Compression == CompressionYields && !tc.CompYield {
			return fmt.Sprintf("compression steel does not yield (ε's = %.5f < εy = %.5f)", tc.EpsilonSPrime, epsY)
		}
		if asm.Compression == CompressionElastic && tc.CompYield {
			return fmt.Sprintf("compression steel yields (ε's = %.5f ≥ εy = %.5f)", tc.EpsilonSPrime, epsY)
		}
	case CompressionNotEngaged:
		if tc.InsideBlock {
			return fmt.Sprintf("compression steel lies inside the stress block (a = %.2f mm ≥ d' = %.2f mm)", tc.A, dp)
		}
	}
	return ""
}

// edgeTrial places the block edge on the compression steel, c = d'/β1, and
// asks how much compression steel force equilibrium needs. The case holds
// when the tension state matches and the force lies between zero and the
// full A's(f's - 0.85f'c).
func edgeTrial(in Input, beta1 float64, asm Assumption) Case {
	dp := *in.DPrime
	epsY := nscp.YieldStrain(in.Fy)

	tc := Case{Label: asm.Label(), Solved: true, InsideBlock: true}
	tc.C = dp / beta1
	tc.A = dp

	tc.EpsilonS = nscp.EpsilonCU * (in.D - tc.C) / tc.C
	tc.Fs = asm.tensionStress(in, tc.C)
	tc.TensionYield = tc.EpsilonS >= epsY

	tc.EpsilonSPrime = nscp.EpsilonCU * (tc.C - dp) / tc.C
	tc.CompYield = tc.EpsilonSPrime >= epsY
	tc.FsPrime = strainStress * (tc.C - dp) / tc.C
	if tc.CompYield {
		tc.FsPrime = in.Fy
	}

	cc := nscp.StressBlockFactor * in.Fc * in.Width * tc.A
	tc.CsRequired = in.As*tc.Fs - cc
	full := in.AsPrime * (tc.FsPrime - nscp.StressBlockFactor*in.Fc)

	switch {
	case tc.C >= in.D:
		tc.Reason = fmt.Sprintf("c = d'/β1 = %.2f mm is not less than d = %.2f mm", tc.C, in.D)
	case asm.TensionYields && !tc.TensionYield:
		tc.Reason = fmt.Sprintf("tension steel does not yield (εs = %.5f < εy = %.5f)", tc.EpsilonS, epsY)
	case !asm.TensionYields && tc.TensionYield:
		tc.Reason = fmt.Sprintf("tension steel yields (εs = %.5f ≥ εy = %.5f)", tc.EpsilonS, epsY)
	case tc.CsRequired < 0 || tc.CsRequired > full:
		tc.Reason = fmt.Sprintf("required C's = %.0f N is outside 0 to %.0f N", tc.CsRequired, full)
	}
	tc.Consistent = tc.Reason == ""
	return tc
}

// positiveRoot returns the larger root of k·x² + b·x + c = 0 for k > 0 and
// c <= 0. The form is chosen to avoid cancellation.
func positiveRoot(k, b, c float64) float64 {
	disc := b*b - 4*k*c
	if disc < 0 {
		return math.NaN()
	}
	sq := math.Sqrt(disc)
	if b >= 0 {
		if b+sq == 0 {
			return 0
		}
		return -2 * c / (b + sq)
	}
	return (-b + sq) / (2 * k)
}

func controlZone(epsilonT float64) string {
	switch {
	case epsilonT >= nscp.EpsilonTensionControlled:
		return "tension-controlled"
	case epsilonT <= nscp.EpsilonCompressionControlled:
		return "compression-controlled"
	}
	return "transition"
}
