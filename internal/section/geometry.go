package section

import (
	"math"

	"github.com/alexiusacademia/beamcheck/internal/errors"
)

// Validate checks the geometric invariants of the section against the bars
// it has to hold.
func (g Geometry) Validate(r Rebar) error {
	if g.Width <= 0 || g.Height <= 0 {
		return errors.New(errors.ErrCodeGeometry, "section dimensions must be positive: b=%.1f mm, h=%.1f mm", g.Width, g.Height)
	}
	if g.Cover < 0 {
		return errors.New(errors.ErrCodeGeometry, "cover must not be negative: %.1f mm", g.Cover)
	}
	if g.StirrupDia < 0 {
		return errors.New(errors.ErrCodeGeometry, "stirrup diameter must not be negative: %.1f mm", g.StirrupDia)
	}
	if r.TensionCount < 1 || r.TensionDia <= 0 {
		return errors.New(errors.ErrCodeGeometry, "at least one tension bar with a positive diameter is required")
	}

	// cover + stirrup + bar radius must stay below mid-height and mid-width
	// on every face
	bar := math.Max(r.TensionDia, r.CompressionDia)
	edge := g.Cover + g.StirrupDia + bar/2
	if edge >= g.Height/2 {
		return errors.New(errors.ErrCodeGeometry,
			"cover + stirrup + bar radius (%.1f mm) must be less than h/2 (%.1f mm)", edge, g.Height/2)
	}
	if edge >= g.Width/2 {
		return errors.New(errors.ErrCodeGeometry,
			"cover + stirrup + bar radius (%.1f mm) must be less than b/2 (%.1f mm)", edge, g.Width/2)
	}
	return nil
}

// ResolveDepths converts steel centroids measured from the bottom face into
// effective depths measured from the top face. compressionY is nil when the
// section has no compression steel.
func (g Geometry) ResolveDepths(tensionY float64, compressionY *float64) (Depths, error) {
	d := g.Height - tensionY
	if d <= 0 || d >= g.Height {
		return Depths{}, errors.New(errors.ErrCodeGeometry,
			"effective depth d=%.1f mm must lie within the section height h=%.1f mm", d, g.Height)
	}

	depths := Depths{D: d}
	if compressionY != nil {
		dp := g.Height - *compressionY
		if dp <= 0 || dp >= d {
			return Depths{}, errors.New(errors.ErrCodeGeometry,
				"compression steel depth d'=%.1f mm must lie between the top face and d=%.1f mm", dp, d)
		}
		depths.DPrime = &dp
	}
	return depths, nil
}
