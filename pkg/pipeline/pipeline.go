package pipeline

// Pipeline wires the analytical stages to the resource store.  Stages never
// call each other: each one reads its declared input resource type, computes,
// and creates exactly one new resource with the input recorded as parent.

import (
	"encoding/json"

	"github.com/charmbracelet/log"

	"github.com/dataspine/mcda-go/pkg/analyze"
	"github.com/dataspine/mcda-go/pkg/dataset"
	"github.com/dataspine/mcda-go/pkg/datastore"
	"github.com/dataspine/mcda-go/pkg/errors"
	"github.com/dataspine/mcda-go/pkg/evaluate"
	"github.com/dataspine/mcda-go/pkg/export"
	"github.com/dataspine/mcda-go/pkg/ingest"
	"github.com/dataspine/mcda-go/pkg/membership"
)

type Pipeline struct {
	store *datastore.Store
}

func New(store *datastore.Store) *Pipeline {
	return &Pipeline{store: store}
}

func (p *Pipeline) Store() *datastore.Store {
	return p.store
}

// IngestCSV parses CSV text into a tabular root resource.
func (p *Pipeline) IngestCSV(csvText string) (*datastore.Resource, error) {
	table, err := ingest.ParseCSV(csvText)
	if err != nil {
		return nil, err
	}

	return p.store.Create(datastore.RawData, table, "", datastore.Metadata{
		Operation:   "upload_csv",
		Annotations: map[string]string{"shape": table.Shape()},
	})
}

// AnalyzeFields produces a field_analysis resource with full numeric and
// categorical statistics plus polarity proposals.
func (p *Pipeline) AnalyzeFields(idOrURI string) (*datastore.Resource, error) {
	table, parent, err := p.table(idOrURI)
	if err != nil {
		return nil, err
	}

	report := analyze.AnalyzeFields(table)
	return p.store.Create(datastore.FieldAnalysis, report, parent.ID, datastore.Metadata{
		Operation: "analyze_fields",
	})
}

// AdjustPolarity rewrites the dataset benefit-oriented and records the
// per-field adjustment report in the new resource's annotations.
func (p *Pipeline) AdjustPolarity(idOrURI string, explicit map[string]analyze.Polarity) (*datastore.Resource, []analyze.Decision, error) {
	table, parent, err := p.table(idOrURI)
	if err != nil {
		return nil, nil, err
	}

	adjusted, decisions, err := analyze.AdjustPolarity(table, explicit)
	if err != nil {
		return nil, nil, err
	}

	reportJSON, _ := json.Marshal(decisions)
	resource, err := p.store.Create(datastore.RawData, adjusted, parent.ID, datastore.Metadata{
		Operation: "adjust_polarity",
		Annotations: map[string]string{
			"shape":           adjusted.Shape(),
			"polarity_report": string(reportJSON),
		},
	})
	if err != nil {
		return nil, nil, err
	}
	return resource, decisions, nil
}

// GenerateMembershipConfig derives a starting configuration from the
// dataset's field statistics.
func (p *Pipeline) GenerateMembershipConfig(idOrURI string, levels int) (membership.Config, error) {
	table, _, err := p.table(idOrURI)
	if err != nil {
		return membership.Config{}, err
	}
	return membership.GenerateTemplate(table, levels)
}

// ValidateMembershipConfig reports on the configuration without touching the
// store.
func (p *Pipeline) ValidateMembershipConfig(cfg membership.Config) membership.ValidationReport {
	return membership.Validate(cfg)
}

// CalculateMembership computes the fuzzy membership matrix for a dataset
// under a validated configuration.
func (p *Pipeline) CalculateMembership(idOrURI string, cfg membership.Config) (*datastore.Resource, error) {
	table, parent, err := p.table(idOrURI)
	if err != nil {
		return nil, err
	}

	matrix, err := membership.Calculate(table, cfg)
	if err != nil {
		return nil, err
	}

	return p.store.Create(datastore.MembershipCalc, matrix, parent.ID, datastore.Metadata{
		Operation: "calculate_membership",
	})
}

// EvaluateTOPSIS ranks the alternatives of a membership matrix (or raw
// dataset) by relative closeness.  An empty id falls back to the latest
// membership resource.
func (p *Pipeline) EvaluateTOPSIS(idOrURI string, weights []float64) (*datastore.Resource, error) {
	input, err := p.evaluationInput(idOrURI)
	if err != nil {
		return nil, err
	}

	scores, err := evaluate.TOPSIS(input.Payload, weights)
	if err != nil {
		return nil, err
	}

	return p.store.Create(datastore.MultiCriteria, scores, input.ID, datastore.Metadata{
		Operation: "evaluate_topsis",
	})
}

// EvaluateVIKOR produces the S/R/Q compromise ranking.  An empty id falls
// back to the latest membership resource.
func (p *Pipeline) EvaluateVIKOR(idOrURI string, weights []float64, v float64) (*datastore.Resource, error) {
	input, err := p.evaluationInput(idOrURI)
	if err != nil {
		return nil, err
	}

	scores, err := evaluate.VIKOR(input.Payload, weights, v)
	if err != nil {
		return nil, err
	}

	return p.store.Create(datastore.MultiCriteria, scores, input.ID, datastore.Metadata{
		Operation: "evaluate_vikor",
	})
}

// AssessGrade turns a multi_criteria result into binary-semantic grades.  An
// empty id falls back to the latest multi_criteria resource.
func (p *Pipeline) AssessGrade(idOrURI string, levels int) (*datastore.Resource, error) {
	var resource *datastore.Resource
	var err error

	if idOrURI == "" {
		var ok bool
		resource, ok = p.store.FindLatest(datastore.MultiCriteria)
		if !ok {
			return nil, errors.MissingInput("a multi_criteria resource in the store", nil)
		}
		log.Info("auto-discovered evaluation resource", "id", resource.ID)
	} else {
		resource, err = p.store.Get(idOrURI)
		if err != nil {
			return nil, err
		}
	}

	scores, ok := resource.Payload.(*evaluate.Scores)
	if !ok {
		return nil, errors.MissingInput("multi_criteria scores payload", resource.Payload)
	}

	grades, err := evaluate.Grade(scores, levels)
	if err != nil {
		return nil, err
	}

	return p.store.Create(datastore.BinarySemantic, grades, resource.ID, datastore.Metadata{
		Operation: "assess_grade",
	})
}

// ExportCSV flattens any resource payload to CSV text.
func (p *Pipeline) ExportCSV(idOrURI string) (string, error) {
	resource, err := p.store.Get(idOrURI)
	if err != nil {
		return "", err
	}
	return export.ToCSV(resource.Payload)
}

// table resolves an id to a raw_data resource and its tabular payload,
// failing closed on any other resource or payload shape.
func (p *Pipeline) table(idOrURI string) (*dataset.Table, *datastore.Resource, error) {
	resource, err := p.store.Get(idOrURI)
	if err != nil {
		return nil, nil, err
	}
	if resource.Type != datastore.RawData {
		return nil, nil, errors.MissingInput(string(datastore.RawData), string(resource.Type))
	}
	table, ok := resource.Payload.(*dataset.Table)
	if !ok {
		return nil, nil, errors.MissingInput("tabular payload", resource.Payload)
	}
	return table, resource, nil
}

// evaluationInput resolves the input of an evaluator: a given id must be a
// membership_calc or raw_data resource, an empty id auto-discovers the
// latest membership matrix.
func (p *Pipeline) evaluationInput(idOrURI string) (*datastore.Resource, error) {
	if idOrURI == "" {
		resource, ok := p.store.FindLatest(datastore.MembershipCalc)
		if !ok {
			return nil, errors.MissingInput("a membership_calc resource in the store", nil)
		}
		log.Info("auto-discovered membership resource", "id", resource.ID)
		return resource, nil
	}

	resource, err := p.store.Get(idOrURI)
	if err != nil {
		return nil, err
	}
	if resource.Type != datastore.MembershipCalc && resource.Type != datastore.RawData {
		return nil, errors.MissingInput("membership_calc or raw_data resource", string(resource.Type))
	}
	return resource, nil
}
