package ingest

// CSV ingestion: the upstream collaborator that turns raw text into the
// tabular payload the pipeline works on.  A column is numeric iff every
// non-empty cell parses as a float; everything else stays text.

import (
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dataspine/mcda-go/pkg/dataset"
)

// ParseCSV parses CSV text with a header row into a Table.
func ParseCSV(text string) (*dataset.Table, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("csv needs a header row and at least one data row, got %d rows", len(records))
	}

	header := records[0]
	rows := records[1:]

	columns := make([]dataset.Column, len(header))
	for colIdx, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("column %d has an empty header", colIdx+1)
		}

		cells := make([]string, len(rows))
		for rowIdx, row := range rows {
			cells[rowIdx] = strings.TrimSpace(row[colIdx])
		}

		if numbers, ok := parseNumeric(cells); ok {
			columns[colIdx] = dataset.Column{Name: name, Kind: dataset.NumericColumn, Numbers: numbers}
		} else {
			columns[colIdx] = dataset.Column{Name: name, Kind: dataset.TextColumn, Text: cells}
		}
	}

	return dataset.NewTable(columns)
}

// parseNumeric converts a column's cells to floats.  Empty cells become 0 so
// downstream stages never see NaN; a single unparsable or non-finite cell
// (ParseFloat accepts NaN and Inf spellings) makes the whole column text.
func parseNumeric(cells []string) ([]float64, bool) {
	numbers := make([]float64, len(cells))
	sawValue := false

	for i, cell := range cells {
		if cell == "" {
			numbers[i] = 0
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false
		}
		numbers[i] = v
		sawValue = true
	}

	return numbers, sawValue
}
