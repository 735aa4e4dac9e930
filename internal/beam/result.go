package beam

import (
	"github.com/alexiusacademia/beamcheck/internal/flexure"
	"github.com/alexiusacademia/beamcheck/internal/layout"
	"github.com/alexiusacademia/beamcheck/internal/reinforcement"
	"github.com/alexiusacademia/beamcheck/internal/shear"
)

// Result is the assembled output record. Its JSON field names and nesting
// are consumed verbatim by the report and rendering layers.
type Result struct {
	Valid         bool                 `json:"valid"`
	Geom          Geom                 `json:"geom"`
	RebarLayout   RebarLayout          `json:"rebar_layout"`
	Checks        Checks               `json:"checks"`
	Reinforcement reinforcement.Result `json:"reinforcement"`
}

// Geom echoes the geometry, materials and actions of the request.
type Geom struct {
	B              float64  `json:"b_mm"`
	H              float64  `json:"h_mm"`
	Cover          float64  `json:"cover_mm"`
	Fc             float64  `json:"fc_MPa"`
	Agg            *float64 `json:"agg_mm"`
	StirrupDia     float64  `json:"stirrup_dia_mm"`
	TensionDia     float64  `json:"tension_dia_mm"`
	CompressionDia *float64 `json:"compression_dia_mm"`
	NTension       int      `json:"n_tension"`
	NCompression   int      `json:"n_compression"`
	FyMain         float64  `json:"fy_main_MPa"`
	FyStirrup      float64  `json:"fy_stirrup_MPa"`
	Lightweight    bool     `json:"lightweight"`
	Mu             float64  `json:"Mu_kNm"`
	Vu             *float64 `json:"Vu_kN"`
}

// RebarLayout holds the placed bars and the inner stirrup rectangle.
type RebarLayout struct {
	Bars          []layout.Bar       `json:"bars"`
	StirrupInside layout.StirrupRect `json:"stirrup_inside"`

	TensionLayers     int `json:"tension_layers"`
	CompressionLayers int `json:"compression_layers"`
}

// Checks holds the flexure and shear checks.
type Checks struct {
	Flexure         flexure.Result `json:"flexure"`
	FlexureOK       bool           `json:"flexure_ok"`
	FlexureCapacity float64        `json:"flexure_capacity_kNm"`
	Shear           shear.Result   `json:"shear"`
}

// Passed reports whether every code check is satisfied.
func (r *Result) Passed() bool {
	return r.Checks.FlexureOK && r.Checks.Shear.OK && r.Checks.Shear.OKDim
}
