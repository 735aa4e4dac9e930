package section

import (
	"github.com/alexiusacademia/beamcheck/internal/nscp"
)

// Geometry represents a rectangular beam cross-section.
// The local coordinate system has its origin at the bottom-left corner
// with Y pointing up (compression face at the top).
type Geometry struct {
	Width         float64  // b (mm)
	Height        float64  // h (mm)
	Cover         float64  // clear cover to the stirrup (mm)
	AggregateSize *float64 // nominal maximum aggregate size (mm), nil if unknown
	StirrupDia    float64  // stirrup bar diameter (mm)
}

// Materials holds the concrete and steel properties.
type Materials struct {
	Fc          float64 // f'c - concrete compressive strength (MPa)
	FyMain      float64 // fy - longitudinal bar yield strength (MPa)
	FyStirrup   float64 // fyt - stirrup yield strength (MPa)
	Lightweight bool    // lightweight concrete
}

// Lambda returns the lightweight concrete modification factor λ.
func (m Materials) Lambda() float64 {
	return nscp.Lambda(m.Lightweight)
}

// Rebar describes the longitudinal bars requested for the section.
type Rebar struct {
	TensionDia       float64 // mm
	TensionCount     int
	CompressionDia   float64 // mm, 0 when there are no compression bars
	CompressionCount int
}

// HasCompression reports whether compression bars are present.
func (r Rebar) HasCompression() bool {
	return r.CompressionCount > 0 && r.CompressionDia > 0
}

// Depths holds the effective depths measured from the extreme compression fiber.
type Depths struct {
	D      float64  // d - depth to the tension steel centroid (mm)
	DPrime *float64 // d' - depth to the compression steel centroid (mm), nil if none
}
