package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/alexiusacademia/beamcheck/internal/beam"
	"github.com/alexiusacademia/beamcheck/internal/diagram"
)

// Core PDF fonts are cp1252; Greek letters and math symbols are spelled out.
var pdfText = strings.NewReplacer(
	"φ", "phi",
	"ε", "eps",
	"β", "beta",
	"λ", "lambda",
	"ρ", "rho",
	"≥", ">=",
	"≤", "<=",
	"√", "sqrt",
	"═", "=",
	"─", "-",
)

type sheet struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func (s *sheet) text(v string) string {
	return s.tr(pdfText.Replace(v))
}

func (s *sheet) heading(title string) {
	s.pdf.Ln(4)
	s.pdf.SetFont("Helvetica", "B", 12)
	s.pdf.CellFormat(0, 7, s.text(title), "B", 1, "L", false, 0, "")
	s.pdf.Ln(1)
	s.pdf.SetFont("Helvetica", "", 10)
}

func (s *sheet) row(label, value string) {
	s.pdf.CellFormat(70, 5.5, s.text(label), "", 0, "L", false, 0, "")
	s.pdf.CellFormat(0, 5.5, s.text(value), "", 1, "L", false, 0, "")
}

func (s *sheet) line(v string) {
	s.pdf.MultiCell(0, 5.5, s.text(v), "", "L", false)
}

// PDF writes a calculation sheet for the result to w, including the
// section diagram.
func PDF(w io.Writer, res *beam.Result, meta Meta) error {
	if res == nil {
		return fmt.Errorf("no result to report")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("NSCP 2015 Beam Check", true)
	if meta.Author != "" {
		pdf.SetAuthor(meta.Author, true)
	}
	s := &sheet{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	g := res.Geom
	f := res.Checks.Flexure
	sh := res.Checks.Shear
	r := res.Reinforcement

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "NSCP 2015 Beam Check")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	if meta.Project != "" {
		s.row("Project:", meta.Project)
	}
	if meta.Author != "" {
		s.row("Author:", meta.Author)
	}
	if meta.Date != "" {
		s.row("Date:", meta.Date)
	}

	s.heading("Inputs")
	s.row("b × h (mm)", fmt.Sprintf("%.0f × %.0f", g.B, g.H))
	s.row("Cover (mm)", fmt.Sprintf("%.0f", g.Cover))
	s.row("Aggregate size (mm)", optional(g.Agg, 0))
	s.row("f'c (MPa)", fmt.Sprintf("%.2f", g.Fc))
	s.row("fy main / stirrups (MPa)", fmt.Sprintf("%.0f / %.0f", g.FyMain, g.FyStirrup))
	bars := fmt.Sprintf("%d-%.0f mm", g.NTension, g.TensionDia)
	if g.CompressionDia != nil {
		bars += fmt.Sprintf(" tension, %d-%.0f mm compression", g.NCompression, *g.CompressionDia)
	}
	s.row("Longitudinal bars", bars)
	s.row("Stirrups", fmt.Sprintf("2 legs of %.0f mm", g.StirrupDia))
	s.row("Mu (kN-m)", fmt.Sprintf("%.2f", g.Mu))
	s.row("Vu (kN)", optional(g.Vu, 2))

	s.heading("Section")
	var img bytes.Buffer
	if err := diagram.WriteSection(&img, diagram.FromResult(res), "png"); err != nil {
		return fmt.Errorf("failed to draw section: %w", err)
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("section", opts, &img)
	pdf.ImageOptions("section", pdf.GetX()+40, pdf.GetY(), 90, 0, true, opts, 0, "")
	s.row("Effective depth d (mm)", fmt.Sprintf("%.1f", f.D))
	if f.DPrime != nil {
		s.row("Compression depth d' (mm)", fmt.Sprintf("%.1f", *f.DPrime))
	}
	s.row("Layers (tension / compression)", fmt.Sprintf("%d / %d", res.RebarLayout.TensionLayers, res.RebarLayout.CompressionLayers))

	s.heading("Reinforcement Ratios")
	s.row("As / As,min (mm²)", fmt.Sprintf("%.1f / %.1f", r.As, r.AsMin))
	s.row("ρ / ρmin / ρmax", fmt.Sprintf("%.5f / %.5f / %.5f", r.Rho, r.RhoMin, r.RhoMax))
	if r.UsedRhoMinForCapacity {
		s.line("As < As,min: capacity computed with As,min.")
	}
	if r.ExceedsRhoMax {
		s.line("Advisory: ρ exceeds ρmax.")
	}

	s.heading("Flexure")
	for _, c := range f.Derivation.AssumptionsTried {
		outcome := "consistent"
		if !c.Consistent {
			outcome = c.Reason
		}
		s.line(fmt.Sprintf("%s: c = %.2f mm, %s", c.Label, c.C, outcome))
	}
	s.row("Assumption used", f.AssumptionUsed)
	s.row("a / c (mm)", fmt.Sprintf("%.2f / %.2f", f.A, f.C))
	s.row("εt / φ", fmt.Sprintf("%.5f / %.3f (%s)", f.EpsilonT, f.Phi, f.Control))
	s.row("Mn / φMn (kN-m)", fmt.Sprintf("%.2f / %.2f", f.Mn/1e6, f.PhiMn))
	s.row("Result", verdict(res.Checks.FlexureOK))

	s.heading("Shear")
	s.row("Vc (kN), φ", fmt.Sprintf("%.2f, %.2f", sh.Vc, sh.Phi))
	s.row("Vs,req (kN)", optional(sh.VsReq, 2))
	s.line(sh.TableCase)
	for _, c := range sh.Candidates {
		s.row(fmt.Sprintf("s (%s) (mm)", c.Limit), optional(c.Spacing, 1))
	}
	s.row("s used (mm)", fmt.Sprintf("%.1f (%s)", sh.SUse, sh.GoverningLimit))
	s.row("φVn (kN)", fmt.Sprintf("%.2f", sh.PhiVn))
	s.row("Section limit (kN)", fmt.Sprintf("%.2f", sh.VuMax))
	s.row("Result", verdict(sh.OK && sh.OKDim))
	pdf.SetFont("Helvetica", "I", 9)
	s.line(sh.Note)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to build PDF: %w", err)
	}
	return pdf.Output(w)
}

func optional(v *float64, digits int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.*f", digits, *v)
}

func verdict(ok bool) string {
	if ok {
		return "OK"
	}
	return "NG"
}
