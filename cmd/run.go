package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dataspine/mcda-go/pkg/datastore"
	"github.com/dataspine/mcda-go/pkg/evaluate"
	"github.com/dataspine/mcda-go/pkg/pipeline"
)

/*
runCmd executes the whole pipeline on a local CSV file and prints the grade
report, for quick evaluations without standing up a server.
*/
var (
	runLevels int
	runMethod string
	runV      float64

	runCmd = &cobra.Command{
		Use:   "run <file.csv>",
		Short: "Run the full analysis pipeline on a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			levels := runLevels
			if levels == 0 {
				levels = viper.GetInt("analysis.levels")
			}

			p := pipeline.New(datastore.New())

			raw, err := p.IngestCSV(string(data))
			if err != nil {
				return err
			}
			log.Info("ingested dataset", "id", raw.ID, "shape", raw.Metadata.Annotations["shape"])

			adjusted, decisions, err := p.AdjustPolarity(raw.ID, nil)
			if err != nil {
				return err
			}
			for _, d := range decisions {
				if d.Applied != d.Original {
					log.Info("adjusted field polarity", "field", d.Field, "rule", d.Rule)
				}
			}

			cfg, err := p.GenerateMembershipConfig(adjusted.ID, levels)
			if err != nil {
				return err
			}

			matrix, err := p.CalculateMembership(adjusted.ID, cfg)
			if err != nil {
				return err
			}

			var scored *datastore.Resource
			switch runMethod {
			case "topsis":
				scored, err = p.EvaluateTOPSIS(matrix.ID, nil)
			case "vikor":
				v := runV
				if v == 0 {
					v = viper.GetFloat64("analysis.vikor.v")
				}
				scored, err = p.EvaluateVIKOR(matrix.ID, nil, v)
			default:
				return fmt.Errorf("unknown method %q, want topsis or vikor", runMethod)
			}
			if err != nil {
				return err
			}

			graded, err := p.AssessGrade(scored.ID, levels)
			if err != nil {
				return err
			}

			grades := graded.Payload.(*evaluate.Grades)
			fmt.Println(grades.Report)

			chain, err := p.Store().DependencyChain(graded.ID)
			if err != nil {
				return err
			}
			for _, resource := range chain.Resources {
				fmt.Printf("%-20s %s\n", resource.Metadata.Operation, resource.URI())
			}

			return nil
		},
	}
)

func init() {
	runCmd.Flags().IntVar(&runLevels, "levels", 0, "number of fuzzy levels (default from config)")
	runCmd.Flags().StringVar(&runMethod, "method", "topsis", "ranking method: topsis or vikor")
	runCmd.Flags().Float64Var(&runV, "v", 0, "VIKOR compromise weight in [0, 1] (default from config)")
	rootCmd.AddCommand(runCmd)
}
