package main

import (
	"os"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/fkucharczak/bodycomp"
	"github.com/fkucharczak/bodycomp/xlsxreport"
)

type csvRow struct {
	Metric string `csv:"Métrique"`
	Value  string `csv:"Valeur"`
}

func writeCSV(path string, metrics bodycomp.MetricSet) error {
	rows := make([]csvRow, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, csvRow{Metric: m.Label, Value: displayValue(m)})
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return gocsv.Marshal(&rows, f)
}

// displayValue renders a metric value for the table and CSV outputs.
// Missing values render as an empty field, zero-denominator ratios as
// the same marker the xlsx export uses.
func displayValue(m bodycomp.Metric) string {
	switch {
	case m.Undefined:
		return xlsxreport.UndefinedCell
	case !m.Value.Valid:
		return ""
	default:
		return strconv.FormatFloat(m.Value.Float64, 'g', -1, 64)
	}
}
