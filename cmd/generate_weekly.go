package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/neurosx/schedctl/internal/apperrors"
	"github.com/neurosx/schedctl/internal/config"
	"github.com/neurosx/schedctl/internal/domain"
	"github.com/neurosx/schedctl/internal/metrics"
	"github.com/neurosx/schedctl/internal/weekly"
)

func newGenerateWeeklyCommand() *cobra.Command {
	var (
		configPath    string
		residentsPath string
		weekStartRaw  string
		orSlotsPath   string
		clinicPath    string
		academicYearID string
		year          int
		month         int
	)

	cmd := &cobra.Command{
		Use:   "generate-weekly",
		Short: "Build the read-only weekly schedule view",
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

			weekStart, err := time.Parse("2006-01-02", weekStartRaw)
			if err != nil {
				return fail(cmd, apperrors.Wrap(apperrors.Validation, "parsing --week-start", err))
			}

			var orSlots []domain.ORSlot
			if orSlotsPath != "" {
				if err := loadJSONFile(orSlotsPath, &orSlots); err != nil {
					return fail(cmd, err)
				}
			}
			var clinicSlots []domain.ClinicSlot
			if clinicPath != "" {
				if err := loadJSONFile(clinicPath, &clinicSlots); err != nil {
					return fail(cmd, err)
				}
			}

			var callAssignments []domain.CallAssignment
			if academicYearID != "" {
				sched, err := sharedStore.GetMonthlySchedule(cmd.Context(), academicYearID, year, month)
				if err == nil {
					callAssignments = sched.Assignments
				}
			}

			sched, err := weekly.Build(residents, weekStart, orSlots, clinicSlots, callAssignments, *cfg)
			if err != nil {
				return fail(cmd, err)
			}

			if err := sharedStore.PutWeeklySchedule(cmd.Context(), sched); err != nil {
				return fail(cmd, err)
			}

			metrics.WeeklyGenerations.Inc()
			return printJSON(sched)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to the YAML configuration file")
	cmd.Flags().StringVar(&residentsPath, "residents", "", "path to a JSON array of residents")
	cmd.Flags().StringVar(&weekStartRaw, "week-start", "", "first day of the week, YYYY-MM-DD")
	cmd.Flags().StringVar(&orSlotsPath, "or-slots", "", "path to a JSON array of OR slots")
	cmd.Flags().StringVar(&clinicPath, "clinic-slots", "", "path to a JSON array of clinic slots")
	cmd.Flags().StringVar(&academicYearID, "academic-year-id", "", "academic year id to pull call assignments from, if any")
	cmd.Flags().IntVar(&year, "year", 0, "calendar year of the monthly schedule to pull call assignments from")
	cmd.Flags().IntVar(&month, "month", 0, "month of the monthly schedule to pull call assignments from, 0-indexed")
	cmd.MarkFlagRequired("config")
	cmd.MarkFlagRequired("residents")
	cmd.MarkFlagRequired("week-start")
	addAdminFlag(cmd)

	return cmd
}
