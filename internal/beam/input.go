package beam

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/beamcheck/internal/section"
)

// Input is the request record for one beam check.
// Units: mm for geometry, MPa for stresses, kN and kN-m for actions.
type Input struct {
	// Geometry (mm)
	Width   float64  `json:"width" yaml:"width"`
	Height  float64  `json:"height" yaml:"height"`
	Cover   float64  `json:"cover" yaml:"cover"`
	AggSize *float64 `json:"agg_size,omitempty" yaml:"agg_size,omitempty"`

	// Concrete (MPa)
	Fc          float64 `json:"fc" yaml:"fc"`
	Lightweight bool    `json:"lightweight" yaml:"lightweight"`

	// Steel
	StirrupDia        float64  `json:"stirrup_dia" yaml:"stirrup_dia"`
	TensionBarDia     float64  `json:"tension_bar_dia" yaml:"tension_bar_dia"`
	CompressionBarDia *float64 `json:"compression_bar_dia,omitempty" yaml:"compression_bar_dia,omitempty"`
	NTension          int      `json:"n_tension" yaml:"n_tension"`
	NCompression      int      `json:"n_compression" yaml:"n_compression"`
	FyMain            float64  `json:"fy_main" yaml:"fy_main"`
	FyStirrup         float64  `json:"fy_stirrup" yaml:"fy_stirrup"`

	// Factored actions
	Mu float64  `json:"Mu" yaml:"Mu"`                     // kN-m
	Vu *float64 `json:"Vu,omitempty" yaml:"Vu,omitempty"` // kN, nil for capacity only
}

// Geometry returns the section geometry of the input.
func (in Input) Geometry() section.Geometry {
	return section.Geometry{
		Width:         in.Width,
		Height:        in.Height,
		Cover:         in.Cover,
		AggregateSize: in.AggSize,
		StirrupDia:    in.StirrupDia,
	}
}

// Materials returns the material properties of the input.
func (in Input) Materials() section.Materials {
	return section.Materials{
		Fc:          in.Fc,
		FyMain:      in.FyMain,
		FyStirrup:   in.FyStirrup,
		Lightweight: in.Lightweight,
	}
}

// Rebar returns the bar configuration of the input. Compression bars are
// ignored when either their count or diameter is missing.
func (in Input) Rebar() section.Rebar {
	r := section.Rebar{
		TensionDia:   in.TensionBarDia,
		TensionCount: in.NTension,
	}
	if in.NCompression > 0 && in.CompressionBarDia != nil && *in.CompressionBarDia > 0 {
		r.CompressionDia = *in.CompressionBarDia
		r.CompressionCount = in.NCompression
	}
	return r
}

// LoadInput reads an input record from a JSON or YAML file.
func LoadInput(path string) (*Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var in Input
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &in)
	case ".json", "":
		err = json.Unmarshal(data, &in)
	default:
		return nil, fmt.Errorf("unsupported input file type %q (use .json, .yaml or .yml)", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return &in, nil
}
