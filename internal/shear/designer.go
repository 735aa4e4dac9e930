// Package shear designs two-legged vertical stirrups for a rectangular beam
// per NSCP 2015 Sections 409.6.3, 409.7.6.2 and 422.5.
package shear

import (
	"github.com/alexiusacademia/beamcheck/internal/errors"
	"github.com/alexiusacademia/beamcheck/internal/nscp"
)

// Limit names the constraint a spacing candidate comes from.
type Limit string

const (
	LimitMinimum  Limit = "minimum"  // minimum Av/s, Section 409.6.3.3
	LimitTable    Limit = "table"    // maximum spacing, Table 409.7.6.2.2
	LimitStrength Limit = "strength" // φ(Vc + Vs) >= Vu
)

// Modes
const (
	ModeCheck        = "check"
	ModeCapacityOnly = "capacity-only"
)

// strengthTolerance absorbs round-off when s_use = s_req makes φVn = Vu (kN).
const strengthTolerance = 1e-6

// Input holds the section data the shear design depends on.
type Input struct {
	Width      float64 // bw (mm)
	D          float64 // d (mm)
	Fc         float64 // f'c (MPa)
	FyStirrup  float64 // fyt (MPa)
	StirrupDia float64 // mm
	Lambda     float64 // λ

	Vu *float64 // factored shear (kN), nil for capacity only
}

// Candidate is one spacing limit. Spacing is nil when the limit does not
// restrict the spacing.
type Candidate struct {
	Limit   Limit    `json:"limit"`
	Spacing *float64 `json:"spacing_mm"`
	Basis   string   `json:"basis"`
}

// Result holds the shear design.
type Result struct {
	Phi    float64 `json:"phi"`
	Lambda float64 `json:"lambda"`

	Vu          *float64 `json:"Vu_kN"`
	Vc          float64  `json:"Vc_kN"`
	VsReq       *float64 `json:"Vs_req_kN"`
	VsThreshold float64  `json:"Vs_threshold_kN"`
	TableCase   string   `json:"table_case"`

	Av         float64     `json:"Av_mm2"`
	SReq       *float64    `json:"s_req_mm"`
	SMinReq    float64     `json:"s_min_req_mm"`
	SMax       float64     `json:"s_max_mm"`
	Candidates []Candidate `json:"candidates"`

	SUse           float64 `json:"s_use_mm"`
	GoverningLimit Limit   `json:"governing_limit"`

	VsProv float64 `json:"Vs_prov_kN"`
	PhiVn  float64 `json:"phiVn_kN"`
	Mode   string  `json:"mode"`
	OK     bool    `json:"ok"`

	VuMax float64 `json:"Vu_max_kN"` // φ(Vc + 0.66√f'c·bw·d), Section 422.5.1.2
	OKDim bool    `json:"ok_dim"`

	Note string `json:"note"`
}

// Design computes the governing stirrup spacing and the shear capacity it
// provides.
func Design(in Input) (*Result, error) {
	if in.Width <= 0 || in.D <= 0 {
		return nil, errors.New(errors.ErrCodeGeometry, "invalid section: bw=%.2f mm, d=%.2f mm", in.Width, in.D)
	}
	if in.Fc <= 0 || in.FyStirrup <= 0 || in.StirrupDia <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"invalid stirrup data: f'c=%.2f, fyt=%.2f, stirrup=%.1f mm", in.Fc, in.FyStirrup, in.StirrupDia)
	}
	if in.Vu != nil && *in.Vu < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "factored shear must not be negative: Vu=%.2f kN", *in.Vu)
	}
	lambda := in.Lambda
	if lambda <= 0 {
		lambda = 1
	}

	r := &Result{
		Phi:    nscp.PhiShear,
		Lambda: lambda,
		Av:     nscp.StirrupLegs * nscp.BarArea(in.StirrupDia),
		Mode:   ModeCapacityOnly,
		OK:     true,
		OKDim:  true,
		Note:   nscp.SupportShearNote,
	}

	vcN := nscp.ConcreteShear(in.Fc, in.Width, in.D, lambda)
	r.Vc = vcN / 1000
	r.VsThreshold = nscp.SpacingThreshold(in.Fc, in.Width, in.D) / 1000

	// Required steel shear, N
	var vsReqN float64
	if in.Vu != nil {
		vu := *in.Vu
		r.Vu = &vu
		r.Mode = ModeCheck
		vsReqN = max(0, vu*1000/r.Phi-vcN)
		vsReq := vsReqN / 1000
		r.VsReq = &vsReq
	}

	row, sMax := nscp.MaxSpacing(vsReqN, in.Fc, in.Width, in.D)
	r.TableCase = row.Case
	r.SMax = sMax

	if vsReqN > 0 {
		s := r.Av * in.FyStirrup * in.D / vsReqN
		r.SReq = &s
	}
	r.SMinReq = r.Av / nscp.MinShearRatio(in.Fc, in.Width, in.FyStirrup)

	sMin, sTable := r.SMinReq, r.SMax
	r.Candidates = []Candidate{
		{Limit: LimitMinimum, Spacing: &sMin, Basis: "Av/s ≥ max(0.062√f'c·bw/fyt, 0.35·bw/fyt)"},
		{Limit: LimitTable, Spacing: &sTable, Basis: row.Case},
		{Limit: LimitStrength, Spacing: r.SReq, Basis: strengthBasis(r.SReq)},
	}
	r.SUse, r.GoverningLimit = governing(r.Candidates)

	// Capacity at the spacing actually used
	vsProvN := r.Av * in.FyStirrup * in.D / r.SUse
	r.VsProv = vsProvN / 1000
	r.PhiVn = r.Phi * (vcN + vsProvN) / 1000
	r.VuMax = r.Phi * (vcN + nscp.MaxSteelShear(in.Fc, in.Width, in.D)) / 1000

	if r.Vu != nil {
		r.OK = r.PhiVn+strengthTolerance >= *r.Vu
		r.OKDim = *r.Vu <= r.VuMax
	}
	return r, nil
}

// governing returns the smallest defined spacing. Candidates are ordered by
// tie-break priority and a later candidate wins only when strictly smaller.
func governing(candidates []Candidate) (float64, Limit) {
	var (
		s     float64
		limit Limit
		found bool
	)
	for _, c := range candidates {
		if c.Spacing == nil {
			continue
		}
		if !found || *c.Spacing < s {
			s, limit, found = *c.Spacing, c.Limit, true
		}
	}
	return s, limit
}

func strengthBasis(s *float64) string {
	if s == nil {
		return "Vs,req ≤ 0: strength does not limit the spacing"
	}
	return "s = Av·fyt·d / Vs,req"
}
