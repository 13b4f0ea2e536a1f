package evaluate

// Grade assessment: collapse an evaluation into a level characteristic value
// per alternative and express it as a binary-semantic pair (k, α): an
// integer grade plus a continuous offset from it.

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/dataspine/mcda-go/pkg/errors"
)

// Grades is the payload of a binary_semantic resource.
type Grades struct {
	Alternatives   []string  `json:"alternatives"`
	Levels         int       `json:"levels"`
	Characteristic []float64 `json:"characteristic"`
	Grade          []int     `json:"grade"`
	Alpha          []float64 `json:"alpha"`
	Report         string    `json:"report"`
}

// Grade assesses a multi_criteria result.  When the upstream scores carry
// per-level memberships the characteristic value is the level-weighted sum
// Σ k·u_jk; otherwise the scalar scores are rescaled onto the 1..levels
// ordinal scale.  Fails with a missing input error when neither shape is
// available.
func Grade(scores *Scores, levels int) (*Grades, error) {
	if scores == nil || len(scores.Alternatives) == 0 {
		return nil, errors.MissingInput("multi-criteria scores", scores)
	}
	if levels < 2 {
		levels = 2
	}

	var characteristic []float64
	switch {
	case len(scores.LevelMemberships) == len(scores.Alternatives) && scores.Levels >= 2:
		levels = scores.Levels
		characteristic = make([]float64, len(scores.Alternatives))
		for i, memberships := range scores.LevelMemberships {
			if len(memberships) != levels {
				return nil, errors.MissingInput(
					fmt.Sprintf("level membership vector of length %d", levels), memberships)
			}
			for k, u := range memberships {
				characteristic[i] += float64(k+1) * u
			}
		}

	case len(scores.Scores) == len(scores.Alternatives):
		characteristic = rescale(scores.Scores, scores.Ascending, levels)

	default:
		return nil, errors.MissingInput("score vector matching alternatives", scores.Scores)
	}

	grades := &Grades{
		Alternatives:   scores.Alternatives,
		Levels:         levels,
		Characteristic: characteristic,
		Grade:          make([]int, len(characteristic)),
		Alpha:          make([]float64, len(characteristic)),
	}

	for i, v := range characteristic {
		k := int(math.Round(v))
		if k < 1 {
			k = 1
		}
		if k > levels {
			k = levels
		}
		grades.Grade[i] = k
		grades.Alpha[i] = v - float64(k)
	}

	grades.Report = report(grades)

	log.Info("grade assessment complete",
		"alternatives", len(grades.Alternatives), "levels", levels)
	return grades, nil
}

// rescale maps scalar scores onto [1, levels], orienting so larger means a
// higher level first.  A zero score range puts every alternative on the
// midpoint.
func rescale(scores []float64, ascending bool, levels int) []float64 {
	oriented := make([]float64, len(scores))
	for i, s := range scores {
		if ascending {
			oriented[i] = -s
		} else {
			oriented[i] = s
		}
	}

	lo, hi := minMax(oriented)
	out := make([]float64, len(oriented))
	if hi == lo {
		mid := (1 + float64(levels)) / 2
		for i := range out {
			out[i] = mid
		}
		return out
	}

	for i, g := range oriented {
		out[i] = 1 + float64(levels-1)*(g-lo)/(hi-lo)
	}
	return out
}

func report(g *Grades) string {
	builder := &strings.Builder{}
	builder.WriteString("Grade assessment\n")
	fmt.Fprintf(builder, "alternatives: %d, levels: %d\n\n", len(g.Alternatives), g.Levels)
	builder.WriteString("alternative\tcharacteristic\tbinary semantic\tgrade\n")

	for i, name := range g.Alternatives {
		fmt.Fprintf(builder, "%s\t%.3f\t(%d, %+.3f)\tlevel %d\n",
			name, g.Characteristic[i], g.Grade[i], g.Alpha[i], g.Grade[i])
	}

	return builder.String()
}
