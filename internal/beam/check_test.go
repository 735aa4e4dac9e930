package beam

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/alexiusacademia/beamcheck/internal/errors"
	"github.com/alexiusacademia/beamcheck/internal/layout"
	"github.com/alexiusacademia/beamcheck/internal/shear"
)

func ptr(v float64) *float64 { return &v }

// exampleInput is a 300 x 500 mm beam with 4-20 mm bottom bars, 2-16 mm
// top bars and 10 mm stirrups.
func exampleInput() Input {
	return Input{
		Width:             300,
		Height:            500,
		Cover:             40,
		Fc:                27.6,
		StirrupDia:        10,
		TensionBarDia:     20,
		CompressionBarDia: ptr(16),
		NTension:          4,
		NCompression:      2,
		FyMain:            414,
		FyStirrup:         275,
		Mu:                120,
		Vu:                ptr(180),
	}
}

func TestCheckExample(t *testing.T) {
	in := exampleInput()
	if err := in.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	res, err := Check(in)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	if !res.Valid || !res.Passed() {
		t.Errorf("valid = %v, passed = %v", res.Valid, res.Passed())
	}

	fl := res.Checks.Flexure
	if math.Abs(fl.D-440) > 1e-9 || fl.DPrime == nil || math.Abs(*fl.DPrime-58) > 1e-9 {
		t.Errorf("d = %v, d' = %v; want 440, 58", fl.D, fl.DPrime)
	}
	if fl.AssumptionUsed != "fs = fy, f's elastic" {
		t.Errorf("AssumptionUsed = %q", fl.AssumptionUsed)
	}
	if math.Abs(res.Checks.FlexureCapacity-189.29) > 0.01 {
		t.Errorf("φMn = %v, want 189.29", res.Checks.FlexureCapacity)
	}
	if !res.Checks.FlexureOK {
		t.Error("FlexureOK = false")
	}

	sh := res.Checks.Shear
	if math.Abs(sh.SUse-152.76) > 0.01 || sh.GoverningLimit != shear.LimitStrength {
		t.Errorf("s_use = %v (%s), want 152.76 (strength)", sh.SUse, sh.GoverningLimit)
	}

	rf := res.Reinforcement
	if math.Abs(rf.AsMin-446.38) > 0.01 || rf.UsedRhoMinForCapacity || rf.ExceedsRhoMax {
		t.Errorf("reinforcement = %+v", rf)
	}

	if len(res.RebarLayout.Bars) != 6 {
		t.Errorf("placed %d bars, want 6", len(res.RebarLayout.Bars))
	}
	if res.RebarLayout.TensionLayers != 1 || res.RebarLayout.CompressionLayers != 1 {
		t.Errorf("layers = %d/%d", res.RebarLayout.TensionLayers, res.RebarLayout.CompressionLayers)
	}

	g := res.Geom
	if g.B != 300 || g.NCompression != 2 || g.CompressionDia == nil || *g.CompressionDia != 16 {
		t.Errorf("geom = %+v", g)
	}
	if g.Vu == nil || *g.Vu != 180 {
		t.Errorf("geom Vu = %v", g.Vu)
	}
}

func TestCheckDeterministicJSON(t *testing.T) {
	first, err := Check(exampleInput())
	if err != nil {
		t.Fatal(err)
	}
	second, err := Check(exampleInput())
	if err != nil {
		t.Fatal(err)
	}

	a, err := json.Marshal(first)
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("two checks of the same input serialise differently")
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(a, &doc); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"valid", "geom", "rebar_layout", "checks", "reinforcement"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("output is missing %q", key)
		}
	}

	var checks map[string]json.RawMessage
	if err := json.Unmarshal(doc["checks"], &checks); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"flexure", "flexure_ok", "flexure_capacity_kNm", "shear"} {
		if _, ok := checks[key]; !ok {
			t.Errorf("checks is missing %q", key)
		}
	}
}

func TestCheckVariants(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Input)
		verify func(*testing.T, *Result)
	}{
		{
			name:   "capacity only",
			modify: func(in *Input) { in.Vu = nil },
			verify: func(t *testing.T, r *Result) {
				if r.Checks.Shear.Mode != shear.ModeCapacityOnly || r.Geom.Vu != nil {
					t.Errorf("mode = %s, Vu = %v", r.Checks.Shear.Mode, r.Geom.Vu)
				}
				if !r.Passed() {
					t.Error("capacity-only check should pass")
				}
			},
		},
		{
			name: "singly reinforced",
			modify: func(in *Input) {
				in.NCompression = 0
				in.CompressionBarDia = nil
			},
			verify: func(t *testing.T, r *Result) {
				if r.Checks.Flexure.DPrime != nil || r.Geom.CompressionDia != nil {
					t.Error("singly reinforced section reports compression steel")
				}
				if r.RebarLayout.CompressionLayers != 0 {
					t.Errorf("CompressionLayers = %d", r.RebarLayout.CompressionLayers)
				}
			},
		},
		{
			name: "steel below the minimum",
			modify: func(in *Input) {
				in.TensionBarDia = 16
				in.NTension = 2
			},
			verify: func(t *testing.T, r *Result) {
				rf := r.Reinforcement
				if !rf.UsedRhoMinForCapacity {
					t.Error("UsedRhoMinForCapacity = false")
				}
				if r.Checks.Flexure.As != rf.AsMin {
					t.Errorf("flexure As = %v, want As,min = %v", r.Checks.Flexure.As, rf.AsMin)
				}
				if rf.As >= rf.AsMin {
					t.Errorf("provided As = %v should stay below As,min", rf.As)
				}
			},
		},
		{
			name: "aggregate forces a second layer",
			modify: func(in *Input) {
				in.AggSize = ptr(25)
				in.NTension = 5
			},
			verify: func(t *testing.T, r *Result) {
				if r.RebarLayout.TensionLayers != 2 {
					t.Fatalf("TensionLayers = %d, want 2", r.RebarLayout.TensionLayers)
				}
				// centroid (4·60 + 105) / 5 = 69 mm above the soffit
				if d := r.Checks.Flexure.D; math.Abs(d-431) > 1e-9 {
					t.Errorf("d = %v, want 431", d)
				}
			},
		},
		{
			name:   "moment exceeds capacity",
			modify: func(in *Input) { in.Mu = 250 },
			verify: func(t *testing.T, r *Result) {
				if r.Checks.FlexureOK || r.Passed() {
					t.Error("Mu = 250 kN-m should fail flexure")
				}
				if !r.Valid {
					t.Error("a failing check is still a valid result")
				}
			},
		},
		{
			name: "stress block ends at the top bars",
			modify: func(in *Input) {
				in.Height = 300
				in.Fc = 21
				in.TensionBarDia = 28
				in.NTension = 2
				in.FyMain = 275
				in.Mu = 40
				in.Vu = nil
			},
			verify: func(t *testing.T, r *Result) {
				fl := r.Checks.Flexure
				if math.Abs(fl.D-236) > 1e-9 || fl.DPrime == nil || math.Abs(*fl.DPrime-58) > 1e-9 {
					t.Fatalf("d = %v, d' = %v; want 236, 58", fl.D, fl.DPrime)
				}
				if fl.AssumptionUsed != "fs = fy, compression steel at the block edge" {
					t.Errorf("AssumptionUsed = %q", fl.AssumptionUsed)
				}
				if math.Abs(fl.A-58) > 1e-9 || !r.Checks.FlexureOK {
					t.Errorf("a = %v, flexure ok = %v", fl.A, r.Checks.FlexureOK)
				}
			},
		},
		{
			name:   "lightweight",
			modify: func(in *Input) { in.Lightweight = true },
			verify: func(t *testing.T, r *Result) {
				if r.Checks.Shear.Lambda != 0.75 {
					t.Errorf("λ = %v, want 0.75", r.Checks.Shear.Lambda)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := exampleInput()
			tt.modify(&in)
			if err := in.Validate(); err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			res, err := Check(in)
			if err != nil {
				t.Fatalf("Check() error = %v", err)
			}
			tt.verify(t, res)
		})
	}
}

func TestCheckLayoutInfeasible(t *testing.T) {
	in := exampleInput()
	in.Width = 200
	in.TensionBarDia = 36
	in.NTension = 2
	in.NCompression = 0
	in.CompressionBarDia = nil

	if err := in.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	_, err := Check(in)
	if !errors.Is(err, errors.ErrCodeLayout) {
		t.Errorf("Check() error = %v, want %s", err, errors.ErrCodeLayout)
	}
}

func TestRebarIgnoresIncompleteCompression(t *testing.T) {
	in := exampleInput()
	in.CompressionBarDia = nil
	if r := in.Rebar(); r.HasCompression() {
		t.Errorf("Rebar() = %+v, want no compression bars", r)
	}

	in = exampleInput()
	in.NCompression = 0
	if r := in.Rebar(); r.HasCompression() {
		t.Errorf("Rebar() = %+v, want no compression bars", r)
	}
}

func TestCheckBarsInsideStirrup(t *testing.T) {
	res, err := Check(exampleInput())
	if err != nil {
		t.Fatal(err)
	}
	s := res.RebarLayout.StirrupInside
	for _, b := range res.RebarLayout.Bars {
		r := b.Dia / 2
		if b.X-r < s.XMin-1e-9 || b.X+r > s.XMax+1e-9 || b.Y-r < s.YMin-1e-9 || b.Y+r > s.YMax+1e-9 {
			t.Errorf("bar %+v leaves the stirrup %+v", b, s)
		}
		if b.Role != layout.Tension && b.Role != layout.Compression {
			t.Errorf("bar role = %q", b.Role)
		}
	}
}
