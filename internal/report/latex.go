// Package report renders a checked beam as a standalone LaTeX document or a
// PDF calculation sheet. Renderers only read the result record.
package report

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/alexiusacademia/beamcheck/internal/beam"
	"github.com/alexiusacademia/beamcheck/internal/flexure"
	"github.com/alexiusacademia/beamcheck/internal/reinforcement"
	"github.com/alexiusacademia/beamcheck/internal/shear"
)

// Meta fills the title block of a report.
type Meta struct {
	Project string
	Author  string
	Date    string // printed as given, omitted when empty
}

var texEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	"_", `\_`,
	"%", `\%`,
	"&", `\&`,
	"#", `\#`,
	"$", `\$`,
	"{", `\{`,
	"}", `\}`,
	"~", `\textasciitilde{}`,
	"^", `\textasciicircum{}`,
	"ε", `$\varepsilon$`,
	"φ", `$\phi$`,
	"β", `$\beta$`,
	"λ", `$\lambda$`,
	"≥", `$\geq$`,
	"≤", `$\leq$`,
	"√", `$\surd$`,
	"·", `$\cdot$`,
	"²", `$^2$`,
)

// escapeTeX makes plain text safe inside a LaTeX document.
func escapeTeX(s string) string {
	return texEscaper.Replace(s)
}

var texFuncs = template.FuncMap{
	"esc": escapeTeX,
	"num": func(v float64, digits int) string {
		return fmt.Sprintf("%.*f", digits, v)
	},
	"opt": func(v *float64, digits int) string {
		if v == nil {
			return "--"
		}
		return fmt.Sprintf("%.*f", digits, *v)
	},
	"okng": func(ok bool) string {
		if ok {
			return "OK"
		}
		return "NG"
	},
	"kNm": func(nmm float64) string {
		return fmt.Sprintf("%.2f", nmm/1e6)
	},
	"inc": func(i int) int { return i + 1 },
}

// Delimiters differ from the defaults so LaTeX braces stay readable.
var texTemplate = template.Must(template.New("report.tex").Delims("<<", ">>").Funcs(texFuncs).Parse(`\documentclass[11pt]{article}
\usepackage{amsmath, amssymb, geometry, booktabs}
\geometry{margin=1in}
\title{NSCP 2015 Beam Check}
\author{<<esc .Meta.Author>>}
\date{<<esc .Meta.Date>>}
\begin{document}
\maketitle
<<- if .Meta.Project>>
\noindent Project: <<esc .Meta.Project>>
<<- end>>

\section*{Inputs}
\begin{tabular}{ll}
$b$ (mm) & <<num .G.B 1>>\\
$h$ (mm) & <<num .G.H 1>>\\
cover (mm) & <<num .G.Cover 1>>\\
aggregate (mm) & <<opt .G.Agg 1>>\\
$f'_c$ (MPa) & <<num .G.Fc 2>>\\
$f_y$ main (MPa) & <<num .G.FyMain 1>>\\
$f_{yt}$ stirrups (MPa) & <<num .G.FyStirrup 1>>\\
$\lambda$ & <<num .S.Lambda 2>>\\
$M_u$ (kN\,m) & <<num .G.Mu 2>>\\
$V_u$ (kN) & <<opt .G.Vu 2>>\\
\end{tabular}

\section*{Geometry \& Placement}
Effective depth $d$ = <<num .F.D 1>> mm<<if .F.DPrime>>, $d'$ = <<opt .F.DPrime 1>> mm<<end>>; $\beta_1$ = <<num .F.Beta1 3>>.
Stirrup inside: $x$ <<num .L.StirrupInside.XMin 1>>--<<num .L.StirrupInside.XMax 1>> mm, $y$ <<num .L.StirrupInside.YMin 1>>--<<num .L.StirrupInside.YMax 1>> mm.

\medskip
\begin{tabular}{rlrrrr}
\toprule
\# & role & $d_b$ & $x$ & $y$ & layer\\
\midrule
<<range $i, $b := .L.Bars>><<inc $i>> & <<$b.Role>> & <<num $b.Dia 0>> & <<num $b.X 1>> & <<num $b.Y 1>> & <<$b.Layer>>\\
<<end>>\bottomrule
\end{tabular}

\section*{Reinforcement Ratios}
$A_s$ = <<num .R.As 1>> mm$^2$; $A_{s,\min}$ = <<num .R.AsMin 1>> mm$^2$.\\
$\rho$ = <<num .R.Rho 5>>; $\rho_{\min}$ = <<num .R.RhoMin 5>>; $\rho_{\max}$ = <<num .R.RhoMax 5>>.
<<- if .R.UsedRhoMinForCapacity>>\\
$A_s < A_{s,\min}$: capacity computed with $A_{s,\min}$.
<<- end>>
<<- if .R.ExceedsRhoMax>>\\
Advisory: $\rho > \rho_{\max}$.
<<- end>>

\section*{Flexure}
\begin{tabular}{lrrl}
\toprule
case & $c$ & $a$ & outcome\\
\midrule
<<range .F.Derivation.AssumptionsTried>><<esc .Label>> & <<num .C 2>> & <<num .A 2>> & <<if .Consistent>>consistent<<else>><<esc .Reason>><<end>>\\
<<end>>\bottomrule
\end{tabular}

\medskip
Assumption used: <<esc .F.AssumptionUsed>>.\\
$a$ = <<num .F.A 2>> mm, $c$ = <<num .F.C 2>> mm.\\
$\varepsilon_t$ = <<num .F.EpsilonT 5>>; $\phi$ = <<num .F.Phi 3>> (<<.F.Control>>).\\
$M_n$ = <<kNm .F.Mn>> kN\,m; $\phi M_n$ = <<num .F.PhiMn 2>> kN\,m.\\
Demand: $M_u$ = <<num .G.Mu 2>> kN\,m.\\
Result: $\boxed{\text{<<okng .FlexureOK>>}}$

\section*{Shear}
$V_c$ = <<num .S.Vc 2>> kN; $\phi$ = <<num .S.Phi 2>>; $V_{s,\text{req}}$ = <<opt .S.VsReq 2>> kN.\\
Use two-legged <<num .G.StirrupDia 0>> mm ties, $A_v$ = <<num .S.Av 1>> mm$^2$.\\
<<esc .S.TableCase>>.\\
$s_\text{req}$ = <<opt .S.SReq 1>> mm; $s_{\min,\text{code}}$ = <<num .S.SMinReq 1>> mm; $s_\text{max}$ = <<num .S.SMax 1>> mm.\\
Provide $s$ = <<num .S.SUse 1>> mm (<<.S.GoverningLimit>>) $\Rightarrow$ $\phi V_n$ = <<num .S.PhiVn 2>> kN.\\
Demand: $V_u$ = <<opt .G.Vu 2>> kN.\\
Section limit: $\phi(V_c + 0.66\sqrt{f'_c}\,b\,d)$ = <<num .S.VuMax 2>> kN<<if not .S.OKDim>> (exceeded: enlarge the section)<<end>>.\\
Result: $\boxed{\text{<<okng .ShearOK>>}}$

\medskip
\noindent\emph{<<esc .S.Note>>}

\end{document}
`))

type texData struct {
	Meta Meta
	G    beam.Geom
	L    beam.RebarLayout
	R    reinforcement.Result
	F    flexure.Result
	S    shear.Result

	FlexureOK bool
	ShearOK   bool
}

// LaTeX renders the result as a standalone LaTeX document.
func LaTeX(res *beam.Result, meta Meta) (string, error) {
	if res == nil {
		return "", fmt.Errorf("no result to report")
	}
	data := texData{
		Meta:      meta,
		G:         res.Geom,
		L:         res.RebarLayout,
		R:         res.Reinforcement,
		F:         res.Checks.Flexure,
		S:         res.Checks.Shear,
		FlexureOK: res.Checks.FlexureOK,
		ShearOK:   res.Checks.Shear.OK && res.Checks.Shear.OKDim,
	}

	var sb strings.Builder
	if err := texTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render LaTeX report: %w", err)
	}
	return sb.String(), nil
}
