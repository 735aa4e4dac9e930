// Package batch checks many beams from a spreadsheet. Each data row of the
// first sheet is one input record; results are written to a new workbook
// in the same row order.
package batch

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alexiusacademia/beamcheck/internal/beam"
	"github.com/alexiusacademia/beamcheck/internal/errors"
)

// Columns is the input header, in template order.
var Columns = []string{
	"width", "height", "cover", "fc", "agg_size", "stirrup_dia",
	"tension_bar_dia", "compression_bar_dia", "n_tension", "n_compression",
	"fy_main", "fy_stirrup", "Mu", "Vu", "lightweight",
}

var required = []string{
	"width", "height", "cover", "fc", "stirrup_dia", "tension_bar_dia",
	"n_tension", "fy_main", "fy_stirrup", "Mu",
}

// Row is one parsed data row. Err is set when the row could not be read.
type Row struct {
	Line  int // 1-based sheet row
	Input beam.Input
	Err   error
}

// Outcome is the check of one row.
type Outcome struct {
	Row    Row
	Result *beam.Result
	Err    error
}

// ReadInputs parses the first sheet of an .xlsx workbook.
func ReadInputs(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("invalid workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheet)
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, name := range required {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("sheet %q is missing columns: %s", sheet, strings.Join(missing, ", "))
	}

	var out []Row
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		in, err := parseRow(rows[i], index)
		out = append(out, Row{Line: i + 1, Input: in, Err: err})
	}
	return out, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseRow(row []string, index map[string]int) (beam.Input, error) {
	cell := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var (
		in   beam.Input
		errs []string
	)
	num := func(name string) float64 {
		v, err := strconv.ParseFloat(cell(name), 64)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %q is not a number", name, cell(name)))
		}
		return v
	}
	optNum := func(name string) *float64 {
		if cell(name) == "" {
			return nil
		}
		v := num(name)
		return &v
	}
	count := func(name string) int {
		if cell(name) == "" {
			return 0
		}
		v, err := strconv.Atoi(cell(name))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %q is not a whole number", name, cell(name)))
		}
		return v
	}

	in.Width = num("width")
	in.Height = num("height")
	in.Cover = num("cover")
	in.Fc = num("fc")
	in.AggSize = optNum("agg_size")
	in.StirrupDia = num("stirrup_dia")
	in.TensionBarDia = num("tension_bar_dia")
	in.CompressionBarDia = optNum("compression_bar_dia")
	in.NTension = count("n_tension")
	in.NCompression = count("n_compression")
	in.FyMain = num("fy_main")
	in.FyStirrup = num("fy_stirrup")
	in.Mu = num("Mu")
	in.Vu = optNum("Vu")

	switch strings.ToLower(cell("lightweight")) {
	case "", "0", "false", "no", "n":
	case "1", "true", "yes", "y":
		in.Lightweight = true
	default:
		errs = append(errs, fmt.Sprintf("lightweight: %q is not a yes/no value", cell("lightweight")))
	}

	if len(errs) > 0 {
		return in, errors.New(errors.ErrCodeInvalidInput, "%s", strings.Join(errs, "; "))
	}
	return in, nil
}

// Run checks every row with at most workers checks in flight. Row
// failures are kept in their outcome; the returned error is set only when
// ctx is cancelled.
func Run(ctx context.Context, logger *zap.Logger, rows []Row, workers int) ([]Outcome, error) {
	outcomes := make([]Outcome, len(rows))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	for i, row := range rows {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = checkRow(row)
			if err := outcomes[i].Err; err != nil {
				logger.Debug("row rejected",
					zap.String("op", "batch.Run"),
					zap.Int("line", row.Line),
					zap.Error(err),
				)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func checkRow(row Row) Outcome {
	if row.Err != nil {
		return Outcome{Row: row, Err: row.Err}
	}
	if err := row.Input.Validate(); err != nil {
		return Outcome{Row: row, Err: err}
	}
	res, err := beam.Check(row.Input)
	return Outcome{Row: row, Result: res, Err: err}
}
