package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexiusacademia/beamcheck/internal/beam"
	"github.com/alexiusacademia/beamcheck/internal/diagram"
	"github.com/alexiusacademia/beamcheck/internal/report"
)

var (
	// Input file
	checkInput string

	// Geometry inputs
	checkWidth  float64
	checkHeight float64
	checkCover  float64
	checkAgg    float64

	// Material inputs
	checkFc          float64
	checkFy          float64
	checkFyt         float64
	checkLightweight bool

	// Bar inputs
	checkStirrup  float64
	checkBar      float64
	checkNBars    int
	checkCompBar  float64
	checkNCompBar int

	// Actions
	checkMu float64
	checkVu float64

	// Output options
	checkJSON    bool
	checkDiagram bool
	checkImage   string
	checkStrain  string
	checkPDF     string
	checkLaTeX   string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a rectangular RC beam for flexure and shear",
	Long: `Check a rectangular reinforced concrete beam with given bars and stirrups
against NSCP 2015.

The check:
  - Places the bars inside the stirrup (Section 425.2 clear spacing, layering)
  - Section 409.6.1.2: Minimum flexural reinforcement
  - Section 422.2: Flexural strength by strain compatibility
  - Section 421.2: Strength reduction factor φ from εt
  - Sections 422.5, 409.6.3 and 409.7.6.2: Shear strength and stirrup spacing

Inputs come from flags or from a JSON/YAML file (--input); flags given
together with --input override the file.

Examples:
  # 300x500 mm beam, 4-20mm tension and 2-16mm compression bars, 10mm stirrups
  beamcheck check -b 300 --height 500 --fc 27.6 --bar 20 -n 4 --comp-bar 16 --n-comp 2 --mu 120 --vu 180

  # From a file, with the section drawn and a PDF sheet
  beamcheck check -i beam.yaml --diagram --pdf beam.pdf`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	f := checkCmd.Flags()
	f.StringVarP(&checkInput, "input", "i", "", "JSON or YAML input file")

	// Geometry flags
	f.Float64VarP(&checkWidth, "width", "b", 0, "Beam width b (mm)")
	f.Float64Var(&checkHeight, "height", 0, "Beam total depth h (mm)")
	f.Float64VarP(&checkCover, "cover", "c", 40, "Clear cover to the stirrup (mm)")
	f.Float64Var(&checkAgg, "agg", 0, "Nominal maximum aggregate size (mm), optional")

	// Material flags
	f.Float64Var(&checkFc, "fc", 27.6, "Concrete compressive strength f'c (MPa)")
	f.Float64Var(&checkFy, "fy", 414, "Main bar yield strength fy (MPa)")
	f.Float64Var(&checkFyt, "fyt", 275, "Stirrup yield strength fyt (MPa)")
	f.BoolVar(&checkLightweight, "lightweight", false, "Lightweight concrete (λ = 0.75)")

	// Reinforcement flags
	f.Float64Var(&checkStirrup, "stirrup", 10, "Stirrup diameter (mm)")
	f.Float64Var(&checkBar, "bar", 20, "Tension bar diameter (mm)")
	f.IntVarP(&checkNBars, "n-bars", "n", 0, "Number of tension bars")
	f.Float64Var(&checkCompBar, "comp-bar", 0, "Compression bar diameter (mm), optional")
	f.IntVar(&checkNCompBar, "n-comp", 0, "Number of compression bars")

	// Load flags
	f.Float64Var(&checkMu, "mu", 0, "Factored moment Mu (kN-m)")
	f.Float64Var(&checkVu, "vu", 0, "Factored shear Vu (kN), omit for capacity only")

	// Output flags
	f.BoolVar(&checkJSON, "json", false, "Print the result record as JSON")
	f.BoolVar(&checkDiagram, "diagram", false, "Draw the section and strain diagrams")
	f.StringVar(&checkImage, "image", "", "Export the section diagram to an image file (png, svg, pdf)")
	f.StringVar(&checkStrain, "strain-image", "", "Export the strain diagram to an image file")
	f.StringVar(&checkPDF, "pdf", "", "Write a PDF calculation sheet")
	f.StringVar(&checkLaTeX, "latex", "", "Write a LaTeX report")
}

// checkInputFromFlags builds the input from the file (if any) and the flags
// that were set explicitly.
func checkInputFromFlags(cmd *cobra.Command) (beam.Input, error) {
	var in beam.Input
	if checkInput != "" {
		loaded, err := beam.LoadInput(checkInput)
		if err != nil {
			return in, err
		}
		in = *loaded
	}

	set := func(name string) bool {
		// Without a file every flag counts, including defaults
		return checkInput == "" || cmd.Flags().Changed(name)
	}

	if set("width") {
		in.Width = checkWidth
	}
	if set("height") {
		in.Height = checkHeight
	}
	if set("cover") {
		in.Cover = checkCover
	}
	if set("fc") {
		in.Fc = checkFc
	}
	if set("fy") {
		in.FyMain = checkFy
	}
	if set("fyt") {
		in.FyStirrup = checkFyt
	}
	if set("lightweight") {
		in.Lightweight = checkLightweight
	}
	if set("stirrup") {
		in.StirrupDia = checkStirrup
	}
	if set("bar") {
		in.TensionBarDia = checkBar
	}
	if set("n-bars") {
		in.NTension = checkNBars
	}
	if set("n-comp") {
		in.NCompression = checkNCompBar
	}
	if set("mu") {
		in.Mu = checkMu
	}

	// Optional values only when given
	if cmd.Flags().Changed("agg") {
		v := checkAgg
		in.AggSize = &v
	}
	if cmd.Flags().Changed("comp-bar") {
		v := checkCompBar
		in.CompressionBarDia = &v
	}
	if cmd.Flags().Changed("vu") {
		v := checkVu
		in.Vu = &v
	}
	return in, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	in, err := checkInputFromFlags(cmd)
	if err != nil {
		return err
	}
	if err := in.Validate(); err != nil {
		return err
	}

	res, err := beam.Check(in)
	if err != nil {
		return err
	}
	logger.Debug("beam checked",
		zap.String("op", "check"),
		zap.Bool("flexure_ok", res.Checks.FlexureOK),
		zap.Bool("shear_ok", res.Checks.Shear.OK),
	)

	out := cmd.OutOrStdout()
	if checkJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		printCheck(out, res)
	}

	data := diagram.FromResult(res)
	if checkDiagram {
		fmt.Fprint(out, diagram.ASCIISection(data))
		fmt.Fprint(out, diagram.ASCIIStrain(data))
	}
	if checkImage != "" {
		if err := diagram.SaveSection(data, checkImage); err != nil {
			return fmt.Errorf("failed to export diagram: %w", err)
		}
		fmt.Fprintf(os.Stderr, "  Diagram exported to: %s\n", checkImage)
	}
	if checkStrain != "" {
		if err := diagram.SaveStrain(data, checkStrain); err != nil {
			return fmt.Errorf("failed to export strain diagram: %w", err)
		}
		fmt.Fprintf(os.Stderr, "  Strain diagram exported to: %s\n", checkStrain)
	}

	meta := report.Meta{
		Project: conf.Report.Project,
		Author:  conf.Report.Author,
		Date:    time.Now().Format("2006-01-02"),
	}
	if checkLaTeX != "" {
		tex, err := report.LaTeX(res, meta)
		if err != nil {
			return err
		}
		if err := os.WriteFile(checkLaTeX, []byte(tex), 0644); err != nil {
			return fmt.Errorf("failed to write LaTeX report: %w", err)
		}
		fmt.Fprintf(os.Stderr, "  LaTeX report written to: %s\n", checkLaTeX)
	}
	if checkPDF != "" {
		file, err := os.Create(checkPDF)
		if err != nil {
			return fmt.Errorf("failed to create PDF: %w", err)
		}
		if err := report.PDF(file, res, meta); err != nil {
			file.Close()
			return err
		}
		if err := file.Close(); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "  PDF report written to: %s\n", checkPDF)
	}
	return nil
}

func printCheck(out io.Writer, res *beam.Result) {
	g := res.Geom
	f := res.Checks.Flexure
	s := res.Checks.Shear
	r := res.Reinforcement
	rule := "───────────────────────────────────────────────────────────────"

	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "          RC BEAM FLEXURE & SHEAR CHECK - NSCP 2015")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	// Input summary
	fmt.Fprintln(out, "INPUT DATA:")
	fmt.Fprintln(out, rule)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Beam Width (b):\t%.0f mm\n", g.B)
	fmt.Fprintf(w, "  Beam Depth (h):\t%.0f mm\n", g.H)
	fmt.Fprintf(w, "  Clear Cover:\t%.0f mm\n", g.Cover)
	if g.Agg != nil {
		fmt.Fprintf(w, "  Aggregate Size:\t%.0f mm\n", *g.Agg)
	}
	fmt.Fprintf(w, "  f'c:\t%.1f MPa\n", g.Fc)
	fmt.Fprintf(w, "  fy / fyt:\t%.0f / %.0f MPa\n", g.FyMain, g.FyStirrup)
	fmt.Fprintf(w, "  Tension Bars:\t%d-%.0f mm\n", g.NTension, g.TensionDia)
	if g.CompressionDia != nil {
		fmt.Fprintf(w, "  Compression Bars:\t%d-%.0f mm\n", g.NCompression, *g.CompressionDia)
	}
	fmt.Fprintf(w, "  Stirrups:\t2 legs of %.0f mm\n", g.StirrupDia)
	fmt.Fprintf(w, "  Mu:\t%.2f kN-m\n", g.Mu)
	if g.Vu != nil {
		fmt.Fprintf(w, "  Vu:\t%.2f kN\n", *g.Vu)
	}
	w.Flush()
	fmt.Fprintln(out)

	// Bar layout
	fmt.Fprintln(out, "BAR LAYOUT:")
	fmt.Fprintln(out, rule)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Tension Layers:\t%d\n", res.RebarLayout.TensionLayers)
	if res.RebarLayout.CompressionLayers > 0 {
		fmt.Fprintf(w, "  Compression Layers:\t%d\n", res.RebarLayout.CompressionLayers)
	}
	fmt.Fprintf(w, "  Effective Depth (d):\t%.1f mm\n", f.D)
	if f.DPrime != nil {
		fmt.Fprintf(w, "  Compression Depth (d'):\t%.1f mm\n", *f.DPrime)
	}
	w.Flush()
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "  role\tlayer\tdb (mm)\tx (mm)\ty (mm)\t")
	for _, b := range res.RebarLayout.Bars {
		fmt.Fprintf(w, "  %s\t%d\t%.0f\t%.1f\t%.1f\t\n", b.Role, b.Layer, b.Dia, b.X, b.Y)
	}
	w.Flush()
	fmt.Fprintln(out)

	// Reinforcement ratios
	fmt.Fprintln(out, "REINFORCEMENT RATIOS:")
	fmt.Fprintln(out, rule)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  ρ_min:\t%.6f\n", r.RhoMin)
	fmt.Fprintf(w, "  ρ_max (tension-controlled):\t%.6f\n", r.RhoMax)
	fmt.Fprintf(w, "  ρ_actual:\t%.6f", r.Rho)
	switch {
	case r.UsedRhoMinForCapacity:
		fmt.Fprintf(w, " ⚠ (< ρ_min, capacity uses As,min)")
	case r.ExceedsRhoMax:
		fmt.Fprintf(w, " ⚠ (> ρ_max)")
	default:
		fmt.Fprintf(w, " ✓")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  As / As,min:\t%.2f / %.2f mm²\n", r.As, r.AsMin)
	w.Flush()
	fmt.Fprintln(out)

	// Flexure
	fmt.Fprintln(out, "FLEXURE:")
	fmt.Fprintln(out, rule)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, c := range f.Derivation.AssumptionsTried {
		outcome := "✓ consistent"
		if !c.Consistent {
			outcome = "✗ " + c.Reason
		}
		fmt.Fprintf(w, "  %s:\t%s\n", c.Label, outcome)
	}
	w.Flush()
	fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  β₁:\t%.4f\n", f.Beta1)
	fmt.Fprintf(w, "  Compression block depth (a):\t%.2f mm\n", f.A)
	fmt.Fprintf(w, "  Neutral axis depth (c):\t%.2f mm\n", f.C)
	fmt.Fprintf(w, "  fs / f's:\t%.1f / %.1f MPa\n", f.Fs, f.FsPrime)
	fmt.Fprintf(w, "  Tensile strain (εt):\t%.6f\n", f.EpsilonT)
	fmt.Fprintf(w, "  Strength reduction factor (φ):\t%.3f (%s)\n", f.Phi, f.Control)
	fmt.Fprintf(w, "  Nominal Moment (Mn):\t%.2f kN-m\n", f.Mn/1e6)
	w.Flush()
	fmt.Fprintln(out)

	// Shear
	fmt.Fprintln(out, "SHEAR:")
	fmt.Fprintln(out, rule)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Vc:\t%.2f kN\n", s.Vc)
	if s.VsReq != nil {
		fmt.Fprintf(w, "  Vs required:\t%.2f kN\n", *s.VsReq)
	}
	fmt.Fprintf(w, "  Av (2 legs):\t%.2f mm²\n", s.Av)
	fmt.Fprintf(w, "  Spacing table:\t%s\n", s.TableCase)
	for _, c := range s.Candidates {
		spacing := "-"
		if c.Spacing != nil {
			spacing = fmt.Sprintf("%.1f mm", *c.Spacing)
		}
		fmt.Fprintf(w, "  s (%s):\t%s\n", c.Limit, spacing)
	}
	fmt.Fprintf(w, "  s used:\t%.1f mm (%s)\n", s.SUse, s.GoverningLimit)
	fmt.Fprintf(w, "  Section limit:\t%.2f kN\n", s.VuMax)
	w.Flush()
	fmt.Fprintln(out)

	summary := []string{
		fmt.Sprintf("φMn = %.2f kN-m   (Mu = %.2f)   %s", f.PhiMn, g.Mu, verdict(res.Checks.FlexureOK)),
	}
	if s.Vu != nil {
		summary = append(summary, fmt.Sprintf("φVn = %.2f kN     (Vu = %.2f)   %s", s.PhiVn, *s.Vu, verdict(s.OK && s.OKDim)))
	} else {
		summary = append(summary, fmt.Sprintf("φVn = %.2f kN     (capacity only)", s.PhiVn))
	}
	fmt.Fprint(out, diagram.SummaryBox("DESIGN CHECK", summary))
	fmt.Fprintln(out)

	fmt.Fprintln(out, "STATUS:")
	fmt.Fprintln(out, rule)
	if res.Passed() {
		fmt.Fprintln(out, "  ✓ Section is adequate")
	} else {
		var failed []string
		if !res.Checks.FlexureOK {
			failed = append(failed, "flexure")
		}
		if !s.OK {
			failed = append(failed, "shear strength")
		}
		if !s.OKDim {
			failed = append(failed, "shear section limit (enlarge the section)")
		}
		fmt.Fprintf(out, "  ✗ Section is NOT adequate: %s\n", strings.Join(failed, ", "))
	}
	fmt.Fprintf(out, "  Note: %s\n", s.Note)
	fmt.Fprintln(out)
}

func verdict(ok bool) string {
	if ok {
		return "✓ OK"
	}
	return "✗ NG"
}
