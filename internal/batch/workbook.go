package batch

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/beamcheck/internal/errors"
)

const (
	inputSheet  = "Beams"
	resultSheet = "Results"
)

var resultColumns = []string{
	"row", "status",
	"Mu_kNm", "phiMn_kNm", "phi", "control", "assumption_used", "flexure_ok",
	"Vu_kN", "phiVn_kN", "s_use_mm", "governing_limit", "shear_ok", "ok_dim",
	"d_mm", "rho", "As_min_mm2", "used_rho_min_for_capacity", "exceeds_rho_max",
	"error",
}

// Status of a row
const (
	StatusOK    = "OK"
	StatusNG    = "NG"
	StatusError = "ERROR"
)

// Status summarises an outcome.
func (o Outcome) Status() string {
	switch {
	case o.Err != nil:
		return StatusError
	case o.Result.Passed():
		return StatusOK
	}
	return StatusNG
}

// WriteResults writes one result row per outcome to a new workbook.
func WriteResults(w io.Writer, outcomes []Outcome) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), resultSheet); err != nil {
		return err
	}
	if err := writeHeader(f, resultSheet, resultColumns); err != nil {
		return err
	}

	for i, o := range outcomes {
		values := []any{o.Row.Line, o.Status()}
		if o.Err != nil {
			values = append(values, o.Row.Input.Mu)
			for range len(resultColumns) - 4 {
				values = append(values, nil)
			}
			values = append(values, errors.UserMessage(o.Err))
		} else {
			r := o.Result
			fl, sh, rf := r.Checks.Flexure, r.Checks.Shear, r.Reinforcement
			values = append(values,
				r.Geom.Mu, fl.PhiMn, fl.Phi, fl.Control, fl.AssumptionUsed, r.Checks.FlexureOK,
				optional(sh.Vu), sh.PhiVn, sh.SUse, string(sh.GoverningLimit), sh.OK, sh.OKDim,
				rf.D, rf.Rho, rf.AsMin, rf.UsedRhoMinForCapacity, rf.ExceedsRhoMax,
				"",
			)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(resultSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", o.Row.Line, err)
		}
	}

	return f.Write(w)
}

// WriteTemplate writes an input workbook with the header and one example
// row.
func WriteTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), inputSheet); err != nil {
		return err
	}
	if err := writeHeader(f, inputSheet, Columns); err != nil {
		return err
	}
	example := []any{300, 500, 40, 27.6, 20, 10, 20, 16, 4, 2, 414, 275, 120, 180, "no"}
	if err := f.SetSheetRow(inputSheet, "A2", &example); err != nil {
		return err
	}
	return f.Write(w)
}

func writeHeader(f *excelize.File, sheet string, columns []string) error {
	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(columns))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 14)
}

func optional(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
