package nscp

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestBeta1(t *testing.T) {
	tests := []struct {
		fc   float64
		want float64
	}{
		{17, 0.85},
		{21, 0.85},
		{27.6, 0.85},
		{28, 0.85},
		{35, 0.80},
		{42, 0.75},
		{54.9, 0.657857143},
		{55, 0.65},
		{55.1, 0.65},
		{60, 0.65},
		{100, 0.65},
	}

	for _, tt := range tests {
		if got := Beta1(tt.fc); !almostEqual(got, tt.want, 1e-6) {
			t.Errorf("Beta1(%v) = %v, want %v", tt.fc, got, tt.want)
		}
	}
}

func TestBeta1TableEdges(t *testing.T) {
	// f'c = 55 MPa opens the last row of the table
	if got := Beta1(55); got != Beta1Min {
		t.Errorf("Beta1(55) = %v, want %v", got, Beta1Min)
	}
	if got := Beta1(28); got != Beta1Max {
		t.Errorf("Beta1(28) = %v, want %v", got, Beta1Max)
	}

	prev := Beta1(10)
	for fc := 10.0; fc <= 80; fc += 0.5 {
		got := Beta1(fc)
		if got > prev+1e-12 {
			t.Fatalf("Beta1 increased at f'c=%v: %v > %v", fc, got, prev)
		}
		prev = got
	}
}

func TestPhi(t *testing.T) {
	tests := []struct {
		name string
		eps  float64
		want float64
	}{
		{"compression-controlled", 0.001, 0.65},
		{"at compression limit", 0.002, 0.65},
		{"midway", 0.0035, 0.775},
		{"at tension limit", 0.005, 0.90},
		{"tension-controlled", 0.0139, 0.90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Phi(tt.eps); !almostEqual(got, tt.want, 1e-9) {
				t.Errorf("Phi(%v) = %v, want %v", tt.eps, got, tt.want)
			}
		})
	}
}

func TestPhiMonotonic(t *testing.T) {
	prev := Phi(0)
	for eps := 0.0; eps <= 0.01; eps += 0.0001 {
		got := Phi(eps)
		if got < prev-1e-12 {
			t.Fatalf("Phi decreased at εt=%v: %v < %v", eps, got, prev)
		}
		if got < PhiCompression || got > PhiFlexure {
			t.Fatalf("Phi(%v) = %v outside [%v, %v]", eps, got, PhiCompression, PhiFlexure)
		}
		prev = got
	}
}

func TestRhoLimits(t *testing.T) {
	// f'c = 27.6 MPa, fy = 414 MPa: 1.4/fy governs over 0.25√f'c/fy
	if got, want := RhoMin(27.6, 414), 1.4/414; !almostEqual(got, want, 1e-12) {
		t.Errorf("RhoMin = %v, want %v", got, want)
	}
	// f'c = 40 MPa: 0.25√40/fy = 0.00382 > 1.4/414 = 0.00338
	if got, want := RhoMin(40, 414), 0.25*math.Sqrt(40)/414; !almostEqual(got, want, 1e-12) {
		t.Errorf("RhoMin = %v, want %v", got, want)
	}
	if got := RhoMax(27.6, 414); !almostEqual(got, 0.0180625, 1e-7) {
		t.Errorf("RhoMax = %v, want 0.0180625", got)
	}
}

func TestLambda(t *testing.T) {
	if Lambda(false) != 1.0 || Lambda(true) != 0.75 {
		t.Errorf("Lambda = %v/%v, want 1.0/0.75", Lambda(false), Lambda(true))
	}
}
