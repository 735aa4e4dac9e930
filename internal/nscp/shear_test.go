package nscp

import (
	"testing"
)

func TestConcreteShear(t *testing.T) {
	// b = 300, d = 440, f'c = 27.6
	if got := ConcreteShear(27.6, 300, 440, 1) / 1000; !almostEqual(got, 115.5785, 1e-3) {
		t.Errorf("Vc = %v kN, want 115.5785", got)
	}
	if got := ConcreteShear(27.6, 300, 440, 0.75) / 1000; !almostEqual(got, 0.75*115.5785, 1e-3) {
		t.Errorf("lightweight Vc = %v kN", got)
	}
}

func TestMaxSpacing(t *testing.T) {
	threshold := SpacingThreshold(27.6, 300, 440)

	tests := []struct {
		name      string
		vs        float64
		wantS     float64
		wantDepth float64
	}{
		{"no steel shear", 0, 220, 0.5},
		{"at threshold", threshold, 220, 0.5},
		{"above threshold", threshold + 1, 110, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, s := MaxSpacing(tt.vs, 27.6, 300, 440)
			if !almostEqual(s, tt.wantS, 1e-9) {
				t.Errorf("s_max = %v, want %v", s, tt.wantS)
			}
			if row.DepthFactor != tt.wantDepth {
				t.Errorf("depth factor = %v, want %v", row.DepthFactor, tt.wantDepth)
			}
		})
	}

	// Deep section: 600 mm cap governs over d/2
	if _, s := MaxSpacing(0, 27.6, 300, 1400); s != SpacingLimitLow {
		t.Errorf("s_max = %v, want %v", s, SpacingLimitLow)
	}
}

func TestMinShearRatio(t *testing.T) {
	// 0.35·bw/fyt governs for f'c below about 31.9 MPa
	if got, want := MinShearRatio(27.6, 300, 275), 0.35*300/275.0; !almostEqual(got, want, 1e-12) {
		t.Errorf("MinShearRatio = %v, want %v", got, want)
	}
	if got, want := MinShearRatio(50, 300, 275), 0.062*7.0710678*300/275; !almostEqual(got, want, 1e-6) {
		t.Errorf("MinShearRatio = %v, want %v", got, want)
	}
}

func TestClearSpacing(t *testing.T) {
	agg := 25.0
	small := 10.0

	tests := []struct {
		name string
		db   float64
		agg  *float64
		want float64
	}{
		{"minimum governs", 20, nil, 25},
		{"bar governs", 32, nil, 32},
		{"aggregate governs", 20, &agg, 100.0 / 3},
		{"small aggregate", 20, &small, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClearSpacing(tt.db, tt.agg); !almostEqual(got, tt.want, 1e-9) {
				t.Errorf("ClearSpacing = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStockedDiameters(t *testing.T) {
	if !IsStirrupDiameter(10) || IsStirrupDiameter(20) || IsStirrupDiameter(10.5) {
		t.Error("unexpected stirrup diameter stock")
	}
	if !IsMainDiameter(36) || IsMainDiameter(12) {
		t.Error("unexpected main diameter stock")
	}
}
