package export

// CSV flattening of resource payloads for external inspection.  Tabular
// payloads round-trip losslessly; nested payloads (membership tensors,
// score vectors) are flattened best-effort, one row per alternative.

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dataspine/mcda-go/pkg/analyze"
	"github.com/dataspine/mcda-go/pkg/dataset"
	"github.com/dataspine/mcda-go/pkg/errors"
	"github.com/dataspine/mcda-go/pkg/evaluate"
	"github.com/dataspine/mcda-go/pkg/membership"
)

// ToCSV renders a resource payload as CSV text.
func ToCSV(payload any) (string, error) {
	switch p := payload.(type) {
	case *dataset.Table:
		return tableCSV(p)
	case *membership.Matrix:
		return membershipCSV(p)
	case *evaluate.Scores:
		return scoresCSV(p)
	case *evaluate.Grades:
		return gradesCSV(p)
	case *analyze.FieldReport:
		return fieldReportCSV(p)
	case map[string]any:
		return genericCSV(p)
	default:
		return "", errors.MissingInput("exportable payload", payload)
	}
}

func tableCSV(t *dataset.Table) (string, error) {
	header := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col.Name
	}

	records := [][]string{header}
	for row := 0; row < t.Rows(); row++ {
		record := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			if col.Kind == dataset.NumericColumn {
				record[i] = formatFloat(col.Numbers[row])
			} else {
				record[i] = col.Text[row]
			}
		}
		records = append(records, record)
	}

	return write(records)
}

// membershipCSV emits one row per alternative with one column per
// criterion × level, named criterion_L{k}.
func membershipCSV(m *membership.Matrix) (string, error) {
	header := []string{"alternative"}
	for _, criterion := range m.Criteria {
		for k := 1; k <= m.Levels; k++ {
			header = append(header, fmt.Sprintf("%s_L%d", criterion, k))
		}
	}

	records := [][]string{header}
	for i, name := range m.Alternatives {
		record := []string{name}
		for c := range m.Criteria {
			for k := 0; k < m.Levels; k++ {
				record = append(record, formatFloat(m.Degrees[i][c][k]))
			}
		}
		records = append(records, record)
	}

	return write(records)
}

func scoresCSV(s *evaluate.Scores) (string, error) {
	header := []string{"alternative", "score", "rank"}
	if s.Method == evaluate.MethodTOPSIS {
		header = append(header, "d_plus", "d_minus")
	} else {
		header = append(header, "s", "r", "q")
	}
	for k := 1; k <= s.Levels; k++ {
		header = append(header, fmt.Sprintf("u_L%d", k))
	}

	records := [][]string{header}
	for i, name := range s.Alternatives {
		record := []string{name, formatFloat(s.Scores[i]), strconv.Itoa(s.Rank[i])}
		if s.Method == evaluate.MethodTOPSIS {
			record = append(record, formatFloat(s.DPlus[i]), formatFloat(s.DMinus[i]))
		} else {
			record = append(record, formatFloat(s.S[i]), formatFloat(s.R[i]), formatFloat(s.Q[i]))
		}
		if s.LevelMemberships != nil {
			for _, u := range s.LevelMemberships[i] {
				record = append(record, formatFloat(u))
			}
		}
		records = append(records, record)
	}

	return write(records)
}

func gradesCSV(g *evaluate.Grades) (string, error) {
	records := [][]string{{"alternative", "characteristic", "grade", "alpha"}}
	for i, name := range g.Alternatives {
		records = append(records, []string{
			name,
			formatFloat(g.Characteristic[i]),
			strconv.Itoa(g.Grade[i]),
			formatFloat(g.Alpha[i]),
		})
	}
	return write(records)
}

func fieldReportCSV(r *analyze.FieldReport) (string, error) {
	records := [][]string{{"field", "kind", "min", "max", "mean", "std", "polarity"}}

	polarity := map[string]analyze.Polarity{}
	for _, d := range r.Polarity {
		polarity[d.Field] = d.Original
	}

	names := make([]string, 0, len(r.Numeric))
	for name := range r.Numeric {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		stats := r.Numeric[name]
		records = append(records, []string{
			name, "numeric",
			formatFloat(stats.Min), formatFloat(stats.Max),
			formatFloat(stats.Mean), formatFloat(stats.Std),
			string(polarity[name]),
		})
	}

	names = names[:0]
	for name := range r.Categorical {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		records = append(records, []string{name, "categorical", "", "", "", "", ""})
	}

	return write(records)
}

// genericCSV emits key/value rows, JSON-encoding nested values.
func genericCSV(m map[string]any) (string, error) {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	records := [][]string{{"key", "value"}}
	for _, key := range keys {
		encoded, err := json.Marshal(m[key])
		if err != nil {
			return "", fmt.Errorf("encode value for %q: %w", key, err)
		}
		records = append(records, []string{key, string(encoded)})
	}

	return write(records)
}

func write(records [][]string) (string, error) {
	builder := &strings.Builder{}
	writer := csv.NewWriter(builder)
	if err := writer.WriteAll(records); err != nil {
		return "", err
	}
	return builder.String(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
