package dataset

// Table is the tabular payload handed to the pipeline by the upstream
// ingestion collaborator: an ordered sequence of named columns with a
// consistent row count.  Columns are either numeric or text; every
// analytical stage only ever reads the numeric ones, text columns survive
// into derived resources as row labels.

import (
	"fmt"
	"math"
)

type ColumnKind int

const (
	NumericColumn ColumnKind = iota
	TextColumn
)

type Column struct {
	Name    string     `json:"name"`
	Kind    ColumnKind `json:"kind"`
	Numbers []float64  `json:"numbers,omitempty"`
	Text    []string   `json:"text,omitempty"`
}

func (c Column) Len() int {
	if c.Kind == NumericColumn {
		return len(c.Numbers)
	}
	return len(c.Text)
}

type Table struct {
	Columns []Column `json:"columns"`
}

// NewTable validates that every column carries the same row count.
func NewTable(columns []Column) (*Table, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("table needs at least one column")
	}
	rows := columns[0].Len()
	for _, col := range columns[1:] {
		if col.Len() != rows {
			return nil, fmt.Errorf(
				"inconsistent row count: column %q has %d rows, expected %d",
				col.Name, col.Len(), rows,
			)
		}
	}
	return &Table{Columns: columns}, nil
}

func (t *Table) Rows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].Len()
}

func (t *Table) Column(name string) (Column, bool) {
	for _, col := range t.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.Column(name)
	return ok
}

// NumericColumns returns the numeric columns in table order.
func (t *Table) NumericColumns() []Column {
	out := make([]Column, 0, len(t.Columns))
	for _, col := range t.Columns {
		if col.Kind == NumericColumn {
			out = append(out, col)
		}
	}
	return out
}

// RowLabels returns the first text column if one exists, otherwise
// generated labels T1..Tn.
func (t *Table) RowLabels() []string {
	for _, col := range t.Columns {
		if col.Kind == TextColumn {
			return append([]string(nil), col.Text...)
		}
	}
	labels := make([]string, t.Rows())
	for i := range labels {
		labels[i] = fmt.Sprintf("T%d", i+1)
	}
	return labels
}

// Clone deep-copies the table so derived resources never alias the parent's
// payload.
func (t *Table) Clone() *Table {
	columns := make([]Column, len(t.Columns))
	for i, col := range t.Columns {
		columns[i] = Column{
			Name:    col.Name,
			Kind:    col.Kind,
			Numbers: append([]float64(nil), col.Numbers...),
			Text:    append([]string(nil), col.Text...),
		}
	}
	return &Table{Columns: columns}
}

// Shape is the human-readable "rows × columns" summary used in listings.
func (t *Table) Shape() string {
	return fmt.Sprintf("%d rows x %d columns", t.Rows(), len(t.Columns))
}

// IsFinite reports whether every numeric cell is a finite value.
func (t *Table) IsFinite() bool {
	for _, col := range t.Columns {
		if col.Kind != NumericColumn {
			continue
		}
		for _, v := range col.Numbers {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}
