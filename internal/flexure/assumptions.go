package flexure

import (
	"fmt"

	"github.com/alexiusacademia/beamcheck/internal/nscp"
)

// CompressionState is the state assumed for the compression steel.
type CompressionState int

const (
	// CompressionYields: f's = fy, steel inside the stress block
	CompressionYields CompressionState = iota
	// CompressionElastic: f's = Es·ε's, steel inside the stress block
	CompressionElastic
	// CompressionNotEngaged: no compression steel, or it lies below the
	// stress block and is not counted
	CompressionNotEngaged
	// CompressionAtEdge: the stress block ends at the compression steel
	// (a = d') and the steel carries whatever part of its force closes
	// equilibrium
	CompressionAtEdge
)

func (s CompressionState) String() string {
	switch s {
	case CompressionYields:
		return "f's = fy"
	case CompressionElastic:
		return "f's elastic"
	case CompressionAtEdge:
		return "compression steel at the block edge"
	default:
		return "compression steel not engaged"
	}
}

// Assumption is one candidate steel stress state.
type Assumption struct {
	TensionYields bool
	Compression   CompressionState
}

// Label returns the human readable name recorded in the derivation trail.
func (a Assumption) Label() string {
	fs := "fs elastic"
	if a.TensionYields {
		fs = "fs = fy"
	}
	return fmt.Sprintf("%s, %s", fs, a.Compression)
}

// engaged reports whether the compression steel enters equilibrium.
func (a Assumption) engaged() bool {
	return a.Compression != CompressionNotEngaged
}

// Assumptions is the fixed priority order in which the stress states are
// tried. The first self-consistent one is used.
//
// The force in the compression steel jumps from zero to A's(f's - 0.85f'c)
// as the block edge passes d'. When T falls inside that jump neither side
// balances, and the last two cases fix c = d'/β1 instead.
var Assumptions = []Assumption{
	{TensionYields: true, Compression: CompressionYields},
	{TensionYields: true, Compression: CompressionElastic},
	{TensionYields: true, Compression: CompressionNotEngaged},
	{TensionYields: false, Compression: CompressionYields},
	{TensionYields: false, Compression: CompressionElastic},
	{TensionYields: false, Compression: CompressionNotEngaged},
	{TensionYields: true, Compression: CompressionAtEdge},
	{TensionYields: false, Compression: CompressionAtEdge},
}

// strainStress is Es·εcu (600 MPa), the elastic steel stress per unit of
// (distance from the neutral axis)/c.
const strainStress = nscp.Es * nscp.EpsilonCU

// coefficients returns B and C of the equilibrium equation
//
//	K·c² + B·c + C = 0,  K = 0.85·f'c·b·β1
//
// obtained by multiplying Cc + C's - T = 0 through by c. Yielding terms are
// constant forces and contribute only to B; elastic terms 600·(y-c)/c
// contribute to both.
func (a Assumption) coefficients(in Input) (b, c float64) {
	// T·c = q1·c + q0
	var q1, q0 float64
	if a.TensionYields {
		q1 = in.As * in.Fy
	} else {
		q1 = -strainStress * in.As
		q0 = strainStress * in.As * in.D
	}

	// C's·c = p1·c + p0
	var p1, p0 float64
	displaced := nscp.StressBlockFactor * in.Fc
	switch a.Compression {
	case CompressionYields:
		p1 = in.AsPrime * (in.Fy - displaced)
	case CompressionElastic:
		p1 = in.AsPrime * (strainStress - displaced)
		p0 = -strainStress * in.AsPrime * in.dPrime()
	}

	return p1 - q1, p0 - q0
}

// tensionStress returns fs under the assumption at neutral axis depth c.
func (a Assumption) tensionStress(in Input, c float64) float64 {
	if a.TensionYields {
		return in.Fy
	}
	return strainStress * (in.D - c) / c
}

// compressionStress returns f's under the assumption at neutral axis depth c.
func (a Assumption) compressionStress(in Input, c float64) float64 {
	switch a.Compression {
	case CompressionYields:
		return in.Fy
	case CompressionElastic:
		return strainStress * (c - in.dPrime()) / c
	}
	return 0
}
