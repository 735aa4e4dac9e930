// Package beam runs the complete NSCP 2015 check of a rectangular beam:
// bar layout, reinforcement ratios, flexure and shear, and packages the
// results into a single output record.
package beam

import (
	"github.com/alexiusacademia/beamcheck/internal/flexure"
	"github.com/alexiusacademia/beamcheck/internal/layout"
	"github.com/alexiusacademia/beamcheck/internal/reinforcement"
	"github.com/alexiusacademia/beamcheck/internal/shear"
)

// Check computes the design checks for a validated input. Code check
// failures are reported in the result; errors are returned only for
// infeasible geometry, infeasible layouts or unsolvable equilibrium.
func Check(in Input) (*Result, error) {
	g, m, r := in.Geometry(), in.Materials(), in.Rebar()

	// Layering decides d, so it runs first
	placement, err := layout.Place(g, r)
	if err != nil {
		return nil, err
	}
	depths, err := placement.Depths(g)
	if err != nil {
		return nil, err
	}

	as := placement.Area(layout.Tension)
	ratios, err := reinforcement.Compute(as, g.Width, depths.D, m.Fc, m.FyMain)
	if err != nil {
		return nil, err
	}

	flex, err := flexure.Solve(flexure.Input{
		Width:   g.Width,
		Fc:      m.Fc,
		Fy:      m.FyMain,
		D:       depths.D,
		DPrime:  depths.DPrime,
		As:      ratios.AsForCapacity,
		AsPrime: placement.Area(layout.Compression),
		Mu:      in.Mu,
	})
	if err != nil {
		return nil, err
	}

	sh, err := shear.Design(shear.Input{
		Width:      g.Width,
		D:          depths.D,
		Fc:         m.Fc,
		FyStirrup:  m.FyStirrup,
		StirrupDia: g.StirrupDia,
		Lambda:     m.Lambda(),
		Vu:         in.Vu,
	})
	if err != nil {
		return nil, err
	}

	return assemble(in, placement, ratios, flex, sh), nil
}

// assemble packages the component results without changing any value.
func assemble(in Input, p *layout.Placement, ratios *reinforcement.Result, flex *flexure.Result, sh *shear.Result) *Result {
	r := in.Rebar()

	geom := Geom{
		B:            in.Width,
		H:            in.Height,
		Cover:        in.Cover,
		Fc:           in.Fc,
		Agg:          copyFloat(in.AggSize),
		StirrupDia:   in.StirrupDia,
		TensionDia:   in.TensionBarDia,
		NTension:     in.NTension,
		NCompression: r.CompressionCount,
		FyMain:       in.FyMain,
		FyStirrup:    in.FyStirrup,
		Lightweight:  in.Lightweight,
		Mu:           in.Mu,
		Vu:           copyFloat(in.Vu),
	}
	if r.HasCompression() {
		geom.CompressionDia = copyFloat(&r.CompressionDia)
	}

	bars := make([]layout.Bar, len(p.Bars))
	copy(bars, p.Bars)

	return &Result{
		Valid: true,
		Geom:  geom,
		RebarLayout: RebarLayout{
			Bars:              bars,
			StirrupInside:     p.Stirrup,
			TensionLayers:     p.TensionLayers,
			CompressionLayers: p.CompressionLayers,
		},
		Checks: Checks{
			Flexure:         *flex,
			FlexureOK:       flex.OK,
			FlexureCapacity: flex.PhiMn,
			Shear:           *sh,
		},
		Reinforcement: *ratios,
	}
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
