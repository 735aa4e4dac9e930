package diagram

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/alexiusacademia/beamcheck/internal/layout"
)

// Image formats understood by gonum/plot writers
var formats = map[string]bool{
	"png": true, "svg": true, "pdf": true, "jpg": true, "jpeg": true, "eps": true, "tif": true, "tiff": true,
}

var (
	outlineColor     = color.Black
	stirrupColor     = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	stressBlockColor = color.RGBA{R: 100, G: 149, B: 237, A: 150}
	stressBlockEdge  = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	neutralAxisColor = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	tensionBarColor  = color.RGBA{R: 139, G: 69, B: 19, A: 255}
	compBarColor     = color.RGBA{R: 205, G: 133, B: 63, A: 255}
)

// SectionPlot draws the section to scale.
func SectionPlot(data SectionData) (*plot.Plot, error) {
	if data.Width <= 0 || data.Height <= 0 {
		return nil, fmt.Errorf("cannot draw a %.0f × %.0f mm section", data.Width, data.Height)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Beam Section %.0f × %.0f mm", data.Width, data.Height)
	p.X.Label.Text = "Width (mm)"
	p.Y.Label.Text = "Height (mm)"

	// Stress block under the outline
	if data.StressBlockDepth > 0 {
		top := data.Height
		bottom := data.Height - math.Min(data.StressBlockDepth, data.Height)
		block, err := plotter.NewPolygon(plotter.XYs{
			{X: 0, Y: top}, {X: data.Width, Y: top},
			{X: data.Width, Y: bottom}, {X: 0, Y: bottom},
		})
		if err != nil {
			return nil, err
		}
		block.Color = stressBlockColor
		block.LineStyle.Color = stressBlockEdge
		p.Add(block)
	}

	outline, err := rectangle(0, 0, data.Width, data.Height)
	if err != nil {
		return nil, err
	}
	outline.LineStyle.Width = vg.Points(2)
	outline.LineStyle.Color = outlineColor
	p.Add(outline)

	s := data.Stirrup
	stirrup, err := rectangle(s.XMin, s.YMin, s.XMax, s.YMax)
	if err != nil {
		return nil, err
	}
	stirrup.LineStyle.Width = vg.Points(1)
	stirrup.LineStyle.Color = stirrupColor
	p.Add(stirrup)

	// Bars as circles in data units
	for _, b := range data.Bars {
		circle, err := plotter.NewPolygon(circlePoints(b.X, b.Y, b.Dia/2, 24))
		if err != nil {
			return nil, err
		}
		circle.Color = tensionBarColor
		if b.Role == layout.Compression {
			circle.Color = compBarColor
		}
		circle.LineStyle.Color = outlineColor
		circle.LineStyle.Width = vg.Points(0.5)
		p.Add(circle)
	}

	// Neutral axis
	if data.NeutralAxisDepth > 0 {
		naY := data.Height - data.NeutralAxisDepth
		naLine, err := plotter.NewLine(plotter.XYs{
			{X: -20, Y: naY},
			{X: data.Width + 20, Y: naY},
		})
		if err != nil {
			return nil, err
		}
		naLine.LineStyle.Width = vg.Points(1.5)
		naLine.LineStyle.Color = neutralAxisColor
		naLine.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(naLine)
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs: []plotter.XY{
			{X: data.Width + 25, Y: data.Height - data.NeutralAxisDepth},
			{X: data.Width + 25, Y: data.Height - data.StressBlockDepth/2},
			{X: data.Width / 2, Y: -30},
		},
		Labels: []string{
			fmt.Sprintf("N.A. c=%.1fmm", data.NeutralAxisDepth),
			fmt.Sprintf("a=%.1fmm", data.StressBlockDepth),
			fmt.Sprintf("As=%.0fmm², d=%.1fmm", data.As, data.D),
		},
	})
	if err != nil {
		return nil, err
	}
	p.Add(labels)

	// Keep the section undistorted
	span := math.Max(data.Width, data.Height)
	cx, cy := data.Width/2, data.Height/2
	p.X.Min, p.X.Max = cx-0.6*span-60, cx+0.6*span+60
	p.Y.Min, p.Y.Max = cy-0.6*span-40, cy+0.6*span+20

	return p, nil
}

// WriteSection renders the section in the given format ("png", "svg",
// "pdf", ...) to w.
func WriteSection(w io.Writer, data SectionData, format string) error {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if !formats[format] {
		return fmt.Errorf("unsupported image format %q", format)
	}
	p, err := SectionPlot(data)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(6*vg.Inch, 6*vg.Inch, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// SaveSection exports the section diagram to an image file. The format is
// taken from the extension; files without one get ".png".
func SaveSection(data SectionData, filename string) error {
	if filepath.Ext(filename) == "" {
		filename += ".png"
	}
	if !formats[strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))] {
		return fmt.Errorf("unsupported image format %q", filepath.Ext(filename))
	}

	if dir := filepath.Dir(filename); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	p, err := SectionPlot(data)
	if err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 6*vg.Inch, filename)
}

// SaveStrain exports the strain distribution diagram to an image file.
func SaveStrain(data SectionData, filename string) error {
	if data.NeutralAxisDepth <= 0 {
		return fmt.Errorf("no neutral axis to draw")
	}

	p := plot.New()
	p.Title.Text = "Strain Distribution"
	p.X.Label.Text = "Strain"
	p.Y.Label.Text = "Height (mm)"

	// Compression positive, tension negative
	strainLine, err := plotter.NewLine(plotter.XYs{
		{X: data.EpsilonCU, Y: data.Height},
		{X: 0, Y: data.Height - data.NeutralAxisDepth},
		{X: -data.EpsilonT, Y: data.Height - data.D},
	})
	if err != nil {
		return err
	}
	strainLine.LineStyle.Width = vg.Points(2)
	strainLine.LineStyle.Color = color.RGBA{R: 0, G: 100, B: 0, A: 255}
	p.Add(strainLine)

	for _, x := range []float64{0, data.EpsilonY, -data.EpsilonY} {
		ref, err := plotter.NewLine(plotter.XYs{{X: x, Y: 0}, {X: x, Y: data.Height}})
		if err != nil {
			return err
		}
		ref.LineStyle.Color = color.RGBA{R: 255, G: 165, B: 0, A: 255}
		if x == 0 {
			ref.LineStyle.Color = color.Gray{Y: 128}
		}
		ref.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
		p.Add(ref)
	}

	if dir := filepath.Dir(filename); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return p.Save(6*vg.Inch, 8*vg.Inch, filename)
}

func rectangle(x0, y0, x1, y1 float64) (*plotter.Line, error) {
	return plotter.NewLine(plotter.XYs{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}, {X: x0, Y: y0},
	})
}

func circlePoints(cx, cy, r float64, n int) plotter.XYs {
	pts := make(plotter.XYs, n)
	for i := range pts {
		t := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = plotter.XY{X: cx + r*math.Cos(t), Y: cy + r*math.Sin(t)}
	}
	return pts
}
