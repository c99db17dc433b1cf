package cmd

import (
	"github.com/spf13/cobra"

	"github.com/neurosx/schedctl/internal/config"
	"github.com/neurosx/schedctl/internal/metrics"
	"github.com/neurosx/schedctl/internal/yearly"
)

func newGenerateYearlyCommand() *cobra.Command {
	var (
		configPath     string
		residentsPath  string
		rotatorsPath   string
		academicYearID string
	)

	cmd := &cobra.Command{
		Use:   "generate-yearly",
		Short: "Run the Yearly Rotation Engine and persist the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(cmd); err != nil {
				return fail(cmd, err)
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return fail(cmd, err)
			}
			residents, err := loadResidents(residentsPath)
			if err != nil {
				return fail(cmd, err)
			}
			rotators, err := loadRotators(rotatorsPath)
			if err != nil {
				return fail(cmd, err)
			}

			engine := yearly.NewEngine(*cfg)
			ay, err := engine.Generate(residents, rotators, academicYearID)
			if err != nil {
				return fail(cmd, err)
			}

			metrics.YearlyGenerations.Inc()
			metrics.YearlyCoverageViolations.Add(float64(len(ay.Metadata.CoverageViolations)))

			if err := sharedStore.PutAcademicYear(cmd.Context(), ay); err != nil {
				return fail(cmd, err)
			}
			return printJSON(ay)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to the YAML configuration file")
	cmd.Flags().StringVar(&residentsPath, "residents", "", "path to a JSON array of residents")
	cmd.Flags().StringVar(&rotatorsPath, "rotators", "", "path to a JSON array of external rotators")
	cmd.Flags().StringVar(&academicYearID, "academic-year-id", "", "academic year id, format YYYY-YYYY")
	cmd.MarkFlagRequired("config")
	cmd.MarkFlagRequired("residents")
	cmd.MarkFlagRequired("academic-year-id")
	addAdminFlag(cmd)

	return cmd
}
