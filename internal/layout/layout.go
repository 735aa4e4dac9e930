// Package layout places the longitudinal bars of a rectangular beam inside
// its stirrup following the NSCP 2015 spacing limits (Section 425.2).
//
// Bars are laid in horizontal layers. A layer holds as many bars as fit
// with the minimum clear spacing; extra bars go to further layers with
// 25 mm clear between layers, each bar sitting directly over a bar of the
// first layer. Tension layers grow upwards from the bottom of the stirrup
// and compression layers grow downwards from the top.
//
// Coordinates are in mm with the origin at the bottom-left corner of the
// concrete section.
package layout

import (
	"math"

	"github.com/alexiusacademia/beamcheck/internal/errors"
	"github.com/alexiusacademia/beamcheck/internal/nscp"
	"github.com/alexiusacademia/beamcheck/internal/section"
)

// Role tells whether a bar resists tension or compression.
type Role string

const (
	Tension     Role = "tension"
	Compression Role = "compression"
)

// eps absorbs round-off when comparing lengths in mm.
const eps = 1e-9

// Bar is a single longitudinal bar.
type Bar struct {
	X     float64 `json:"x_mm"`
	Y     float64 `json:"y_mm"`
	Dia   float64 `json:"dia_mm"`
	Role  Role    `json:"role"`
	Layer int     `json:"layer"` // 1 = outermost layer
}

// StirrupRect is the rectangle enclosed by the inner face of the stirrup.
type StirrupRect struct {
	XMin float64 `json:"x_min"`
	YMin float64 `json:"y_min"`
	XMax float64 `json:"x_max"`
	YMax float64 `json:"y_max"`
}

// Width returns the clear width inside the stirrup.
func (r StirrupRect) Width() float64 { return r.XMax - r.XMin }

// Height returns the clear height inside the stirrup.
func (r StirrupRect) Height() float64 { return r.YMax - r.YMin }

// Placement is the result of laying out the bars of one section.
type Placement struct {
	Bars    []Bar
	Stirrup StirrupRect

	TensionLayers     int
	CompressionLayers int

	// Maximum bars per layer permitted by the clear spacing rule
	TensionPerLayer     int
	CompressionPerLayer int

	// Clear spacing required between bars of the same layer (mm)
	TensionClearSpacing     float64
	CompressionClearSpacing float64
}

// Place lays out the tension and compression bars of r inside the stirrup
// of g. It fails when the bars cannot be placed even after layering.
func Place(g section.Geometry, r section.Rebar) (*Placement, error) {
	if err := g.Validate(r); err != nil {
		return nil, err
	}

	inset := g.Cover + g.StirrupDia
	p := &Placement{
		Stirrup: StirrupRect{
			XMin: inset,
			YMin: inset,
			XMax: g.Width - inset,
			YMax: g.Height - inset,
		},
	}

	// Tension bars, bottom layer first
	p.TensionClearSpacing = nscp.ClearSpacing(r.TensionDia, g.AggregateSize)
	p.TensionPerLayer = MaxBarsPerLayer(p.Stirrup.Width(), r.TensionDia, p.TensionClearSpacing)
	rows, err := stackRows(p.Stirrup.Width(), r.TensionCount, r.TensionDia, p.TensionPerLayer, Tension)
	if err != nil {
		return nil, err
	}
	p.TensionLayers = len(rows)
	for i, row := range rows {
		y := p.Stirrup.YMin + r.TensionDia/2 + float64(i)*(r.TensionDia+nscp.MinLayerSpacing)
		p.addRow(row, y, r.TensionDia, Tension, i+1)
	}
	tensionTop := p.Stirrup.YMin + float64(len(rows))*r.TensionDia + float64(len(rows)-1)*nscp.MinLayerSpacing
	if tensionTop > p.Stirrup.YMax+eps {
		return nil, errors.New(errors.ErrCodeLayout,
			"%d layers of %.0f mm tension bars need %.1f mm but only %.1f mm is available inside the stirrup",
			len(rows), r.TensionDia, tensionTop-p.Stirrup.YMin, p.Stirrup.Height())
	}

	if !r.HasCompression() {
		return p, nil
	}

	// Compression bars, top layer first
	p.CompressionClearSpacing = nscp.ClearSpacing(r.CompressionDia, g.AggregateSize)
	p.CompressionPerLayer = MaxBarsPerLayer(p.Stirrup.Width(), r.CompressionDia, p.CompressionClearSpacing)
	rows, err = stackRows(p.Stirrup.Width(), r.CompressionCount, r.CompressionDia, p.CompressionPerLayer, Compression)
	if err != nil {
		return nil, err
	}
	p.CompressionLayers = len(rows)
	for i, row := range rows {
		y := p.Stirrup.YMax - r.CompressionDia/2 - float64(i)*(r.CompressionDia+nscp.MinLayerSpacing)
		p.addRow(row, y, r.CompressionDia, Compression, i+1)
	}
	compressionBottom := p.Stirrup.YMax - float64(len(rows))*r.CompressionDia - float64(len(rows)-1)*nscp.MinLayerSpacing
	if compressionBottom-tensionTop < nscp.MinLayerSpacing-eps {
		return nil, errors.New(errors.ErrCodeLayout,
			"tension layers (top at y=%.1f mm) and compression layers (bottom at y=%.1f mm) need %.0f mm clear between them",
			tensionTop, compressionBottom, nscp.MinLayerSpacing)
	}

	return p, nil
}

// MaxBarsPerLayer returns how many bars of diameter db fit across width
// with clear spacing s: n·db + (n-1)·s <= width.
func MaxBarsPerLayer(width, db, s float64) int {
	if width <= 0 || db <= 0 {
		return 0
	}
	return max(int(math.Floor((width+s)/(db+s)+eps)), 0)
}

// RowPositions returns the x offsets (from the inner stirrup face) of n bars
// spread symmetrically across width. The outer bars touch the stirrup and
// the rest are evenly spaced; a single bar sits on the centerline.
func RowPositions(width float64, n int, db float64) []float64 {
	xs := make([]float64, n)
	if n == 1 {
		xs[0] = width / 2
		return xs
	}
	pitch := (width - db) / float64(n-1)
	for i := range xs {
		xs[i] = db/2 + float64(i)*pitch
	}
	return xs
}

// stackRows splits n bars into layers of at most perLayer bars. Upper
// layers reuse x positions of the first layer.
func stackRows(width float64, n int, db float64, perLayer int, role Role) ([][]float64, error) {
	if perLayer < 1 {
		return nil, errors.New(errors.ErrCodeLayout,
			"a %.0f mm %s bar does not fit inside the stirrup (clear width %.1f mm)", db, role, width)
	}
	if n <= perLayer {
		return [][]float64{RowPositions(width, n, db)}, nil
	}
	if perLayer < 2 {
		return nil, errors.New(errors.ErrCodeLayout,
			"the first %s layer cannot hold at least 2 bars of %.0f mm with the required clear spacing; increase the width or reduce the bar or aggregate size",
			role, db)
	}

	first := RowPositions(width, perLayer, db)
	rows := [][]float64{first}
	for remaining := n - perLayer; remaining > 0; {
		k := min(remaining, perLayer)
		rows = append(rows, pickAbove(first, k))
		remaining -= k
	}
	return rows, nil
}

// pickAbove selects k positions of the first layer for an upper layer:
// one bar goes over the middle bar, two or more start at the outer bars and
// spread evenly between them.
func pickAbove(first []float64, k int) []float64 {
	m := len(first)
	if k >= m {
		return append([]float64(nil), first...)
	}
	if k == 1 {
		// Over the middle bar, not an end bar, so the row stays symmetric
		// about the centreline.
		return []float64{first[(m-1)/2]}
	}
	xs := make([]float64, k)
	step := float64(m-1) / float64(k-1)
	for i := range xs {
		xs[i] = first[int(math.Round(float64(i)*step))]
	}
	return xs
}

func (p *Placement) addRow(xs []float64, y, db float64, role Role, layer int) {
	for _, x := range xs {
		p.Bars = append(p.Bars, Bar{
			X:     p.Stirrup.XMin + x,
			Y:     y,
			Dia:   db,
			Role:  role,
			Layer: layer,
		})
	}
}

// Area returns the total steel area of the bars with the given role (mm²).
func (p *Placement) Area(role Role) float64 {
	var area float64
	for _, b := range p.Bars {
		if b.Role == role {
			area += nscp.BarArea(b.Dia)
		}
	}
	return area
}

// Centroid returns the area-weighted y of the bars with the given role,
// measured from the bottom face. ok is false when there are no such bars.
func (p *Placement) Centroid(role Role) (y float64, ok bool) {
	var area, moment float64
	for _, b := range p.Bars {
		if b.Role == role {
			a := nscp.BarArea(b.Dia)
			area += a
			moment += a * b.Y
		}
	}
	if area <= 0 {
		return 0, false
	}
	return moment / area, true
}

// Depths resolves d and d' of g from the placed bars.
func (p *Placement) Depths(g section.Geometry) (section.Depths, error) {
	yt, ok := p.Centroid(Tension)
	if !ok {
		return section.Depths{}, errors.New(errors.ErrCodeLayout, "no tension bars were placed")
	}
	var yc *float64
	if y, ok := p.Centroid(Compression); ok {
		yc = &y
	}
	return g.ResolveDepths(yt, yc)
}
