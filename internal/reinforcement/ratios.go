// Package reinforcement computes the tension steel ratios of a section and
// decides which steel area the flexural capacity is computed with.
package reinforcement

import (
	"github.com/alexiusacademia/beamcheck/internal/errors"
	"github.com/alexiusacademia/beamcheck/internal/nscp"
)

// Result holds the reinforcement ratios.
type Result struct {
	As    float64 `json:"As_mm2"`     // provided tension steel (mm²)
	AsMin float64 `json:"As_min_mm2"` // NSCP 409.6.1.2 (mm²)
	D     float64 `json:"d_mm"`

	Rho    float64 `json:"rho"`
	RhoMin float64 `json:"rho_min"`
	RhoMax float64 `json:"rho_max"`

	// AsForCapacity is the area the flexural solve uses
	AsForCapacity         float64 `json:"As_capacity_mm2"`
	UsedRhoMinForCapacity bool    `json:"used_rho_min_for_capacity"`
	ExceedsRhoMax         bool    `json:"exceeds_rho_max"`
}

// Compute returns the ratios for a section of width b and effective depth d
// with tension steel area as.
func Compute(as, b, d, fc, fy float64) (*Result, error) {
	if b <= 0 || d <= 0 {
		return nil, errors.New(errors.ErrCodeGeometry, "invalid section: b=%.2f mm, d=%.2f mm", b, d)
	}
	if fc <= 0 || fy <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid material properties: f'c=%.2f, fy=%.2f", fc, fy)
	}

	bd := b * d
	r := &Result{
		As:     as,
		D:      d,
		AsMin:  nscp.RhoMin(fc, fy) * bd,
		Rho:    as / bd,
		RhoMax: nscp.RhoMax(fc, fy),
	}
	r.RhoMin = r.AsMin / bd
	r.ExceedsRhoMax = r.Rho > r.RhoMax

	r.AsForCapacity = as
	if as < r.AsMin {
		r.AsForCapacity = r.AsMin
		r.UsedRhoMinForCapacity = true
	}
	return r, nil
}
