package beam

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alexiusacademia/beamcheck/internal/errors"
	"github.com/alexiusacademia/beamcheck/internal/nscp"
)

// ValidationError lists every offending input field.
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface with fields in sorted order.
func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Code returns the error category.
func (e *ValidationError) Code() errors.Code {
	return errors.ErrCodeInvalidInput
}

// Validate checks every field before any solving happens. It returns a
// *ValidationError with one message per offending field.
func (in Input) Validate() error {
	fields := map[string]string{}
	fail := func(field, format string, args ...any) {
		if _, seen := fields[field]; !seen {
			fields[field] = fmt.Sprintf(format, args...)
		}
	}

	// Minimums
	atLeast := func(field string, v, lo float64) {
		if v < lo {
			fail(field, "must be at least %g", lo)
		}
	}
	atLeast("width", in.Width, 200)
	atLeast("height", in.Height, 200)
	atLeast("cover", in.Cover, 25)
	atLeast("fc", in.Fc, 17)
	atLeast("fy_main", in.FyMain, 275)
	atLeast("Mu", in.Mu, 0)
	if in.FyStirrup <= 0 {
		fail("fy_stirrup", "must be greater than 0")
	}
	if in.AggSize != nil && *in.AggSize < 0 {
		fail("agg_size", "must not be negative")
	}
	if in.Vu != nil && *in.Vu < 0 {
		fail("Vu", "must not be negative")
	}
	if in.NTension < 1 {
		fail("n_tension", "at least 1 tension bar is required")
	}
	if in.NCompression < 0 {
		fail("n_compression", "must not be negative")
	}

	// Stocked bar sizes
	if !nscp.IsStirrupDiameter(in.StirrupDia) {
		fail("stirrup_dia", "stirrup_dia must be one of %v mm", nscp.StirrupDiameters)
	}
	if !nscp.IsMainDiameter(in.TensionBarDia) {
		fail("tension_bar_dia", "tension_bar_dia must be one of %v mm", nscp.MainDiameters)
	}
	if in.CompressionBarDia != nil && !nscp.IsMainDiameter(*in.CompressionBarDia) {
		fail("compression_bar_dia", "compression_bar_dia must be one of %v mm or omitted", nscp.MainDiameters)
	}
	if in.NCompression > 0 && in.CompressionBarDia == nil {
		fail("compression_bar_dia", "provide compression_bar_dia if n_compression > 0")
	}

	// Soft caps to catch typos
	if in.Width > 2000 {
		fail("width", "width seems too large (>2000 mm)")
	}
	if in.Height > 3000 {
		fail("height", "height seems too large (>3000 mm)")
	}
	if in.Cover > 100 {
		fail("cover", "cover seems too large (>100 mm); typical beam cover is about 40 mm")
	}
	if in.Fc > 70 {
		fail("fc", "f'c above 70 MPa is atypical for NSCP 2015 practical designs")
	}
	if in.FyMain > 700 {
		fail("fy_main", "main bar yield strength seems high (>700 MPa)")
	}
	if in.FyStirrup > 700 {
		fail("fy_stirrup", "stirrup yield strength seems high (>700 MPa)")
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
