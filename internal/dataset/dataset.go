// Package dataset loads the optional marketing CSV and summarizes it for the
// data analyst's prompt. The dataset is flavor only: absence or corruption
// degrades to a "no dataset" note, never an error.
package dataset

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// NoDataSummary is returned whenever no usable dataset exists.
const NoDataSummary = "No dataset available. Using general marketing knowledge."

const sampleRows = 5

// Dataset is a loaded tabular file.
type Dataset struct {
	Columns []string
	Rows    [][]string
}

// Load reads a CSV file. A missing or malformed file yields a nil dataset and
// no error; the caller proceeds without data.
func Load(path string) *Dataset {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil || len(records) == 0 {
		return nil
	}
	return &Dataset{Columns: records[0], Rows: records[1:]}
}

// Summary produces the text digest embedded in the analyst's prompt: shape,
// column names, a few sample rows and basic statistics for numeric columns.
func (d *Dataset) Summary() string {
	if d == nil || len(d.Rows) == 0 {
		return NoDataSummary
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dataset shape: (%d, %d)\n", len(d.Rows), len(d.Columns))
	fmt.Fprintf(&b, "Columns: %s\n", strings.Join(d.Columns, ", "))

	b.WriteString("\nSample data (first rows):\n")
	n := len(d.Rows)
	if n > sampleRows {
		n = sampleRows
	}
	b.WriteString(strings.Join(d.Columns, " | "))
	b.WriteString("\n")
	for _, row := range d.Rows[:n] {
		b.WriteString(strings.Join(row, " | "))
		b.WriteString("\n")
	}

	stats := d.numericStats()
	if len(stats) > 0 {
		b.WriteString("\nBasic statistics:\n")
		for _, s := range stats {
			fmt.Fprintf(&b, "%s: count=%d mean=%.2f min=%.2f max=%.2f\n",
				s.Column, s.Count, s.Mean, s.Min, s.Max)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

type columnStats struct {
	Column string
	Count  int
	Mean   float64
	Min    float64
	Max    float64
}

// numericStats computes per-column statistics for columns where every
// non-empty cell parses as a number.
func (d *Dataset) numericStats() []columnStats {
	var out []columnStats
	for col, name := range d.Columns {
		sum := 0.0
		count := 0
		min := math.Inf(1)
		max := math.Inf(-1)
		numeric := true
		for _, row := range d.Rows {
			if col >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[col])
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				numeric = false
				break
			}
			sum += v
			count++
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		if !numeric || count == 0 {
			continue
		}
		out = append(out, columnStats{
			Column: name,
			Count:  count,
			Mean:   sum / float64(count),
			Min:    min,
			Max:    max,
		})
	}
	return out
}
