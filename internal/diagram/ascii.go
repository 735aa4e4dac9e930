// Package diagram draws the cross-section of a checked beam: bars,
// stirrup, stress block and neutral axis, as terminal text or as an image.
package diagram

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/alexiusacademia/beamcheck/internal/beam"
	"github.com/alexiusacademia/beamcheck/internal/layout"
	"github.com/alexiusacademia/beamcheck/internal/nscp"
)

// SectionData holds what is needed to draw a checked section.
type SectionData struct {
	// Beam dimensions (mm)
	Width  float64
	Height float64

	Stirrup layout.StirrupRect
	Bars    []layout.Bar

	// Flexure results, depths from the top (mm)
	NeutralAxisDepth float64  // c
	StressBlockDepth float64  // a
	D                float64  // d
	DPrime           *float64 // d', nil without compression steel

	// Strains
	EpsilonCU     float64
	EpsilonT      float64
	EpsilonSPrime float64
	EpsilonY      float64

	// Stresses (MPa)
	BlockStress float64 // 0.85 f'c
	Fs          float64
	FsPrime     float64

	// Areas (mm²)
	As      float64
	AsPrime float64
}

// FromResult extracts the drawing data from an assembled check.
func FromResult(res *beam.Result) SectionData {
	f := res.Checks.Flexure
	data := SectionData{
		Width:            res.Geom.B,
		Height:           res.Geom.H,
		Stirrup:          res.RebarLayout.StirrupInside,
		Bars:             res.RebarLayout.Bars,
		NeutralAxisDepth: f.C,
		StressBlockDepth: f.A,
		D:                f.D,
		DPrime:           f.DPrime,
		EpsilonCU:        nscp.EpsilonCU,
		EpsilonT:         f.EpsilonT,
		EpsilonY:         nscp.YieldStrain(res.Geom.FyMain),
		BlockStress:      nscp.StressBlockFactor * res.Geom.Fc,
		Fs:               f.Fs,
		FsPrime:          f.FsPrime,
		As:               f.As,
		AsPrime:          f.AsPrime,
	}
	if f.DPrime != nil && f.C > 0 {
		data.EpsilonSPrime = nscp.EpsilonCU * (f.C - *f.DPrime) / f.C
	}
	return data
}

// ASCIISection draws the section to scale on a character grid with the
// strain and stress values written beside the rows they occur at.
func ASCIISection(data SectionData) string {
	const cols, rows = 32, 18
	if data.Width <= 0 || data.Height <= 0 {
		return ""
	}

	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", cols))
	}
	col := func(x float64) int {
		return clampInt(int(math.Round(x/data.Width*float64(cols-1))), 0, cols-1)
	}
	row := func(depth float64) int {
		return clampInt(int(math.Round(depth/data.Height*float64(rows-1))), 0, rows-1)
	}

	// Stress block
	aRow := row(data.StressBlockDepth)
	for i := 1; i <= aRow && i < rows-1; i++ {
		for j := 1; j < cols-1; j++ {
			grid[i][j] = '░'
		}
	}

	// Stirrup
	s := data.Stirrup
	top, bottom := row(data.Height-s.YMax), row(data.Height-s.YMin)
	left, right := col(s.XMin), col(s.XMax)
	for j := left; j <= right; j++ {
		grid[top][j], grid[bottom][j] = '·', '·'
	}
	for i := top; i <= bottom; i++ {
		grid[i][left], grid[i][right] = '·', '·'
	}

	// Bars
	for _, b := range data.Bars {
		glyph := '●'
		if b.Role == layout.Compression {
			glyph = '○'
		}
		grid[row(data.Height-b.Y)][col(b.X)] = glyph
	}

	// Outline
	for j := range cols {
		grid[0][j], grid[rows-1][j] = '─', '─'
	}
	for i := range rows {
		grid[i][0], grid[i][cols-1] = '│', '│'
	}
	grid[0][0], grid[0][cols-1] = '┌', '┐'
	grid[rows-1][0], grid[rows-1][cols-1] = '└', '┘'

	notes := make(map[int][]string)
	note := func(r int, format string, args ...any) {
		notes[r] = append(notes[r], fmt.Sprintf(format, args...))
	}
	note(0, "εcu = %.4f   0.85f'c = %.1f MPa", data.EpsilonCU, data.BlockStress)
	note(aRow, "a = %.1f mm", data.StressBlockDepth)
	note(row(data.NeutralAxisDepth), "◄─ N.A. c = %.1f mm", data.NeutralAxisDepth)
	if data.DPrime != nil {
		note(row(*data.DPrime), "ε's = %.5f%s   f's = %.1f MPa", data.EpsilonSPrime,
			yieldMark(math.Abs(data.EpsilonSPrime), data.EpsilonY), data.FsPrime)
	}
	note(row(data.D), "εt = %.5f%s   fs = %.1f MPa", data.EpsilonT,
		yieldMark(data.EpsilonT, data.EpsilonY), data.Fs)

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString("  BEAM SECTION                      STRAIN / STRESS\n")
	sb.WriteString("  ────────────                      ───────────────\n")
	for i, line := range grid {
		sb.WriteString("  ")
		sb.WriteString(string(line))
		if n := notes[i]; len(n) > 0 {
			sb.WriteString("  ")
			sb.WriteString(strings.Join(n, "; "))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString("  Legend:\n")
	sb.WriteString("  ░░░ = Compression zone (stress block)\n")
	sb.WriteString("  ● = Tension bar   ○ = Compression bar   · = Stirrup\n")
	fmt.Fprintf(&sb, "  b × h = %.0f × %.0f mm, d = %.1f mm\n", data.Width, data.Height, data.D)

	return sb.String()
}

// ASCIIStrain draws the linear strain distribution over the depth.
func ASCIIStrain(data SectionData) string {
	const height, width = 15, 40
	if data.NeutralAxisDepth <= 0 || data.Height <= 0 {
		return ""
	}

	// Scale strains to fit
	maxStrain := math.Max(data.EpsilonCU, data.EpsilonT)
	scale := float64(width-10) / maxStrain

	naLine := int(data.NeutralAxisDepth / data.Height * height)
	tensionLine := int(data.D / data.Height * height)

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString("  STRAIN DISTRIBUTION DIAGRAM\n")
	sb.WriteString("  ───────────────────────────\n\n")

	for i := 0; i <= height; i++ {
		depth := float64(i) / height * data.Height
		strain := data.EpsilonCU * math.Abs(data.NeutralAxisDepth-depth) / data.NeutralAxisDepth
		bar := strings.Repeat("█", max(int(strain*scale), 0))

		switch {
		case i == 0:
			fmt.Fprintf(&sb, "  Top    │%s▶ εcu=%.4f\n", bar, data.EpsilonCU)
		case i == naLine:
			fmt.Fprintf(&sb, "  N.A.   ├%s (ε=0)\n", strings.Repeat("─", 5))
		case i == tensionLine:
			fmt.Fprintf(&sb, "  Steel  │%s▶ εt=%.4f%s\n", bar, data.EpsilonT, yieldMark(data.EpsilonT, data.EpsilonY))
		case i == height:
			fmt.Fprintf(&sb, "  Bottom │%s\n", bar)
		default:
			fmt.Fprintf(&sb, "         │%s\n", bar)
		}
	}

	// Yield strain reference
	fmt.Fprintf(&sb, "\n  εy = %.4f %s┤ (yield strain)\n", data.EpsilonY, strings.Repeat("─", int(data.EpsilonY*scale)))

	return sb.String()
}

// SummaryBox frames a title and lines in a double-line box.
func SummaryBox(title string, lines []string) string {
	width := utf8.RuneCountInString(title)
	for _, line := range lines {
		width = max(width, utf8.RuneCountInString(line))
	}
	width += 4

	pad := func(s string) string {
		return s + strings.Repeat(" ", width-2-utf8.RuneCountInString(s))
	}

	var sb strings.Builder
	border := strings.Repeat("═", width)
	fmt.Fprintf(&sb, "  ╔%s╗\n", border)
	fmt.Fprintf(&sb, "  ║  %s║\n", pad(title))
	fmt.Fprintf(&sb, "  ╠%s╣\n", border)
	for _, line := range lines {
		fmt.Fprintf(&sb, "  ║  %s║\n", pad(line))
	}
	fmt.Fprintf(&sb, "  ╚%s╝\n", border)

	return sb.String()
}

func yieldMark(strain, yield float64) string {
	if strain >= yield {
		return " (yields)"
	}
	return ""
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
