package batch

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/alexiusacademia/beamcheck/internal/errors"
)

// workbook builds an input workbook from rows of cell values.
func workbook(t *testing.T, rows ...[]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	return &buf
}

func header() []any {
	h := make([]any, len(Columns))
	for i, c := range Columns {
		h[i] = c
	}
	return h
}

func TestTemplateRoundTrip(t *testing.T) {
	var tmpl bytes.Buffer
	if err := WriteTemplate(&tmpl); err != nil {
		t.Fatalf("WriteTemplate() error = %v", err)
	}

	rows, err := ReadInputs(&tmpl)
	if err != nil {
		t.Fatalf("ReadInputs() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	row := rows[0]
	if row.Err != nil {
		t.Fatalf("row error = %v", row.Err)
	}
	if row.Line != 2 || row.Input.Width != 300 || row.Input.Fc != 27.6 || row.Input.NTension != 4 {
		t.Errorf("row = %+v", row)
	}
	if row.Input.CompressionBarDia == nil || *row.Input.CompressionBarDia != 16 {
		t.Errorf("compression_bar_dia = %v", row.Input.CompressionBarDia)
	}
	if row.Input.Vu == nil || *row.Input.Vu != 180 || row.Input.Lightweight {
		t.Errorf("Vu = %v, lightweight = %v", row.Input.Vu, row.Input.Lightweight)
	}

	outcomes, err := Run(context.Background(), zap.NewNop(), rows, 2)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(outcomes) != 1 || outcomes[0].Status() != StatusOK {
		t.Fatalf("outcome = %+v", outcomes[0])
	}

	var out bytes.Buffer
	if err := WriteResults(&out, outcomes); err != nil {
		t.Fatalf("WriteResults() error = %v", err)
	}

	f, err := excelize.OpenReader(&out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	got, err := f.GetRows(resultSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("results sheet has %d rows, want 2", len(got))
	}
	if len(got[0]) != len(resultColumns) {
		t.Errorf("header has %d columns, want %d", len(got[0]), len(resultColumns))
	}
	if got[1][0] != "2" || got[1][1] != StatusOK {
		t.Errorf("result row = %v", got[1])
	}
	if got[1][10] == "" || got[1][11] != "strength" {
		t.Errorf("shear columns = %v / %v", got[1][10], got[1][11])
	}
}

func TestReadInputsRows(t *testing.T) {
	good := []any{300, 500, 40, 27.6, "", 10, 20, "", 3, "", 414, 275, 80, "", "yes"}
	badNumber := []any{"wide", 500, 40, 27.6, "", 10, 20, "", 3, "", 414, 275, 80, "", ""}
	badFlag := []any{300, 500, 40, 27.6, "", 10, 20, "", 3, "", 414, 275, 80, "", "maybe"}
	blank := []any{"", "", ""}

	buf := workbook(t, header(), good, blank, badNumber, badFlag)
	rows, err := ReadInputs(buf)
	if err != nil {
		t.Fatalf("ReadInputs() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3 (blank row skipped)", len(rows))
	}

	if rows[0].Err != nil {
		t.Errorf("good row error = %v", rows[0].Err)
	}
	in := rows[0].Input
	if !in.Lightweight || in.Vu != nil || in.AggSize != nil || in.NCompression != 0 {
		t.Errorf("good row = %+v", in)
	}

	if rows[1].Line != 4 || !errors.Is(rows[1].Err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad number row: line %d, err %v", rows[1].Line, rows[1].Err)
	}
	if !strings.Contains(rows[1].Err.Error(), "width") {
		t.Errorf("error does not name the column: %v", rows[1].Err)
	}
	if !errors.Is(rows[2].Err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad flag row err = %v", rows[2].Err)
	}
}

func TestReadInputsErrors(t *testing.T) {
	tests := []struct {
		name string
		data *bytes.Buffer
		want string
	}{
		{"not a workbook", bytes.NewBufferString("width,height\n300,500\n"), "invalid workbook"},
		{"no data rows", workbook(t, header()), "no data rows"},
		{"missing columns", workbook(t, []any{"width", "height"}, []any{300, 500}), "missing columns"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadInputs(tt.data)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ReadInputs() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestRunOutcomes(t *testing.T) {
	good := []any{300, 500, 40, 27.6, "", 10, 20, "", 3, "", 414, 275, 80, 60, ""}
	failing := []any{300, 500, 40, 27.6, "", 10, 20, "", 3, "", 414, 275, 400, 60, ""}
	invalid := []any{100, 500, 40, 27.6, "", 10, 20, "", 3, "", 414, 275, 80, 60, ""}
	unplaceable := []any{200, 500, 40, 27.6, "", 10, 36, "", 2, "", 414, 275, 80, "", ""}

	rows, err := ReadInputs(workbook(t, header(), good, failing, invalid, unplaceable))
	if err != nil {
		t.Fatal(err)
	}

	outcomes, err := Run(context.Background(), zap.NewNop(), rows, 3)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []struct {
		line   int
		status string
		code   errors.Code
	}{
		{2, StatusOK, ""},
		{3, StatusNG, ""},
		{4, StatusError, errors.ErrCodeInvalidInput},
		{5, StatusError, errors.ErrCodeLayout},
	}
	if len(outcomes) != len(want) {
		t.Fatalf("got %d outcomes, want %d", len(outcomes), len(want))
	}
	for i, w := range want {
		o := outcomes[i]
		if o.Row.Line != w.line || o.Status() != w.status {
			t.Errorf("outcome %d: line %d status %s, want line %d status %s", i, o.Row.Line, o.Status(), w.line, w.status)
		}
		if errors.GetCode(o.Err) != w.code {
			t.Errorf("outcome %d: code %q, want %q", i, errors.GetCode(o.Err), w.code)
		}
	}

	var out bytes.Buffer
	if err := WriteResults(&out, outcomes); err != nil {
		t.Fatalf("WriteResults() error = %v", err)
	}
	f, err := excelize.OpenReader(&out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	msg, err := f.GetCellValue(resultSheet, "T5")
	if err != nil {
		t.Fatal(err)
	}
	if msg == "" {
		t.Error("error row has no message")
	}
}

func TestRunCancelled(t *testing.T) {
	rows, err := ReadInputs(workbook(t, header(),
		[]any{300, 500, 40, 27.6, "", 10, 20, "", 3, "", 414, 275, 80, 60, ""}))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, zap.NewNop(), rows, 1); err == nil {
		t.Error("Run() with a cancelled context error = nil")
	}
}
