package beam

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexiusacademia/beamcheck/internal/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Input)
		fields []string
	}{
		{"valid", func(in *Input) {}, nil},
		{"narrow beam", func(in *Input) { in.Width = 150 }, []string{"width"}},
		{"thin cover", func(in *Input) { in.Cover = 20 }, []string{"cover"}},
		{"weak concrete", func(in *Input) { in.Fc = 14 }, []string{"fc"}},
		{"unstocked stirrup", func(in *Input) { in.StirrupDia = 8 }, []string{"stirrup_dia"}},
		{"unstocked main bar", func(in *Input) { in.TensionBarDia = 22 }, []string{"tension_bar_dia"}},
		{"no tension bars", func(in *Input) { in.NTension = 0 }, []string{"n_tension"}},
		{"negative moment", func(in *Input) { in.Mu = -1 }, []string{"Mu"}},
		{"negative shear", func(in *Input) { in.Vu = ptr(-5) }, []string{"Vu"}},
		{"zero stirrup yield", func(in *Input) { in.FyStirrup = 0 }, []string{"fy_stirrup"}},
		{"missing compression diameter", func(in *Input) { in.CompressionBarDia = nil }, []string{"compression_bar_dia"}},
		{"oversized width", func(in *Input) { in.Width = 2500 }, []string{"width"}},
		{"high fy", func(in *Input) { in.FyMain = 800 }, []string{"fy_main"}},
		{
			name: "several fields",
			modify: func(in *Input) {
				in.Width = 100
				in.Height = 100
				in.Cover = 0
			},
			fields: []string{"cover", "height", "width"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := exampleInput()
			tt.modify(&in)
			err := in.Validate()

			if tt.fields == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}

			var ve *ValidationError
			if !stderrors.As(err, &ve) {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if len(ve.Fields) != len(tt.fields) {
				t.Errorf("fields = %v, want %v", ve.Fields, tt.fields)
			}
			for _, f := range tt.fields {
				if ve.Fields[f] == "" {
					t.Errorf("missing message for %q in %v", f, ve.Fields)
				}
			}
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateFirstMessageWins(t *testing.T) {
	in := exampleInput()
	in.Width = 100

	var ve *ValidationError
	if !stderrors.As(in.Validate(), &ve) {
		t.Fatal("Validate() did not return a *ValidationError")
	}
	if got := ve.Fields["width"]; got != "must be at least 200" {
		t.Errorf("width message = %q", got)
	}
}

func TestValidationErrorSorted(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"width": "w", "cover": "c", "fc": "f"}}
	want := "invalid input: cover: c; fc: f; width: w"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestLoadInput(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"beam.json": `{
			"width": 300, "height": 500, "cover": 40, "fc": 27.6,
			"stirrup_dia": 10, "tension_bar_dia": 20, "compression_bar_dia": 16,
			"n_tension": 4, "n_compression": 2, "fy_main": 414, "fy_stirrup": 275,
			"Mu": 120, "Vu": 180
		}`,
		"beam.yaml": strings.Join([]string{
			"width: 300",
			"height: 500",
			"cover: 40",
			"fc: 27.6",
			"stirrup_dia: 10",
			"tension_bar_dia: 20",
			"compression_bar_dia: 16",
			"n_tension: 4",
			"n_compression: 2",
			"fy_main: 414",
			"fy_stirrup: 275",
			"Mu: 120",
			"Vu: 180",
		}, "\n"),
	}

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			in, err := LoadInput(path)
			if err != nil {
				t.Fatalf("LoadInput() error = %v", err)
			}

			want := exampleInput()
			if in.Width != want.Width || in.NTension != want.NTension || in.Mu != want.Mu {
				t.Errorf("LoadInput() = %+v", in)
			}
			if in.CompressionBarDia == nil || *in.CompressionBarDia != 16 {
				t.Errorf("compression_bar_dia = %v", in.CompressionBarDia)
			}
			if in.Vu == nil || *in.Vu != 180 {
				t.Errorf("Vu = %v", in.Vu)
			}
			if in.AggSize != nil {
				t.Errorf("agg_size = %v, want nil", *in.AggSize)
			}
		})
	}
}

func TestLoadInputErrors(t *testing.T) {
	dir := t.TempDir()

	toml := filepath.Join(dir, "beam.toml")
	if err := os.WriteFile(toml, []byte("width = 300"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadInput(toml); err == nil {
		t.Error("LoadInput(.toml) error = nil")
	}

	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadInput(broken); err == nil {
		t.Error("LoadInput(broken json) error = nil")
	}

	if _, err := LoadInput(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("LoadInput(missing) error = nil")
	}
}
