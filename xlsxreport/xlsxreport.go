// Package xlsxreport serializes a metric set to the .xlsx report the
// clinicians download and archive, and parses such reports back.
package xlsxreport

import (
	"fmt"
	"io"
	"strconv"

	"github.com/carbocation/pfx"
	"github.com/xuri/excelize/v2"
	"gopkg.in/guregu/null.v3"

	"github.com/fkucharczak/bodycomp"
)

const (
	// SheetName is the single sheet the report is written to.
	SheetName = "Sheet1"

	// MIMEType is the content type served with the download.
	MIMEType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// UndefinedCell is written in place of a ratio whose denominator
	// was measured at zero mass, so the export never carries an
	// unflagged ±Inf.
	UndefinedCell = "undefined"

	labelHeader = "Métrique"
	valueHeader = "Valeur"
)

// Row is one parsed report line, as read back by Read.
type Row struct {
	Label     string
	Value     null.Float
	Undefined bool
}

// Write emits the header row followed by the 8 metric rows. Metrics
// that could not be computed leave their value cell empty.
func Write(w io.Writer, metrics bodycomp.MetricSet) error {
	f := excelize.NewFile()

	if err := f.SetCellValue(SheetName, "A1", labelHeader); err != nil {
		return pfx.Err(err)
	}
	if err := f.SetCellValue(SheetName, "B1", valueHeader); err != nil {
		return pfx.Err(err)
	}

	for i, m := range metrics {
		row := strconv.Itoa(i + 2)

		if err := f.SetCellValue(SheetName, "A"+row, m.Label); err != nil {
			return pfx.Err(err)
		}

		switch {
		case m.Undefined:
			if err := f.SetCellValue(SheetName, "B"+row, UndefinedCell); err != nil {
				return pfx.Err(err)
			}
		case m.Value.Valid:
			if err := f.SetCellValue(SheetName, "B"+row, m.Value.Float64); err != nil {
				return pfx.Err(err)
			}
		default:
			// Not computable; the cell stays empty
		}
	}

	if err := f.Write(w); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// Read parses a report produced by Write and returns its data rows in
// sheet order, skipping the header.
func Read(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	cells, err := f.GetRows(SheetName)
	if err != nil {
		return nil, pfx.Err(err)
	}

	if len(cells) == 0 {
		return nil, pfx.Err(fmt.Errorf("sheet %s is empty", SheetName))
	}

	out := make([]Row, 0, len(cells)-1)
	for _, rowCells := range cells[1:] {
		row := Row{}
		if len(rowCells) > 0 {
			row.Label = rowCells[0]
		}

		// Trailing empty cells are dropped by the parser, so a
		// one-cell row is a metric with no value.
		if len(rowCells) > 1 && rowCells[1] != "" {
			if rowCells[1] == UndefinedCell {
				row.Undefined = true
			} else {
				v, err := strconv.ParseFloat(rowCells[1], 64)
				if err != nil {
					return nil, pfx.Err(fmt.Errorf("row %q: %w", row.Label, err))
				}
				row.Value = null.FloatFrom(v)
			}
		}

		out = append(out, row)
	}

	return out, nil
}
