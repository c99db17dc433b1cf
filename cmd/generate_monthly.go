package cmd

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/neurosx/schedctl/internal/apperrors"
	"github.com/neurosx/schedctl/internal/calendar"
	"github.com/neurosx/schedctl/internal/config"
	"github.com/neurosx/schedctl/internal/domain"
	"github.com/neurosx/schedctl/internal/metrics"
	"github.com/neurosx/schedctl/internal/monthly"
)

func newGenerateMonthlyCommand() *cobra.Command {
	var (
		configPath     string
		residentsPath  string
		leavePath      string
		academicYearID string
		year           int
		month          int
		staffing       string
		force          bool
	)

	cmd := &cobra.Command{
		Use:   "generate-monthly",
		Short: "Run the Monthly Call Scheduler and persist the result",
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
			leaveRequests, err := loadLeaveRequests(leavePath)
			if err != nil {
				return fail(cmd, err)
			}

			ay, err := sharedStore.GetAcademicYear(cmd.Context(), academicYearID)
			if err != nil {
				return fail(cmd, err)
			}

			var staffingLevel domain.StaffingLevel
			switch staffing {
			case "normal", "":
				staffingLevel = domain.StaffingNormal
			case "shortage":
				staffingLevel = domain.StaffingShortage
			default:
				return fail(cmd, apperrors.New(apperrors.Validation, "staffing must be one of: normal, shortage"))
			}

			existing, err := sharedStore.ListMonthlyAssignments(cmd.Context(), academicYearID)
			if err != nil {
				return fail(cmd, err)
			}

			holidays, err := calendar.NewHolidaySet(cfg.Holidays, year)
			if err != nil {
				return fail(cmd, apperrors.Wrap(apperrors.Validation, "invalid holidays configuration", err))
			}
			weekends, err := calendar.NewWeekendSet(cfg.MonthlySchedulerConfig.WeekendDefinition)
			if err != nil {
				return fail(cmd, apperrors.Wrap(apperrors.Validation, "invalid weekend definition", err))
			}

			scheduler := monthly.NewScheduler(*cfg, holidays, weekends)
			result, err := scheduler.Generate(residents, ay, leaveRequests, existing, year, month, staffingLevel)
			if err != nil {
				return fail(cmd, err)
			}

			sched := domain.MonthlySchedule{
				ID:             uuid.New().String(),
				AcademicYearID: academicYearID,
				Year:           year,
				Month:          month,
				Assignments:    result.Assignments,
				TotalsByType:   result.Metrics.TotalsByType,
				CoverageRate:   result.Metrics.CoverageRate,
				Gini:           result.Metrics.Gini,
				UnfilledSlots:  result.Metrics.UnfilledSlots,
			}

			if err := sharedStore.PutMonthlySchedule(cmd.Context(), sched, force); err != nil {
				if force {
					return fail(cmd, err)
				}
				existingSched, getErr := sharedStore.GetMonthlySchedule(cmd.Context(), academicYearID, year, month)
				if getErr != nil {
					return fail(cmd, err)
				}
				return printJSON(existingSched)
			}

			metrics.MonthlyGenerations.Inc()
			metrics.MonthlyUnfilledSlots.Add(float64(result.Metrics.UnfilledSlots))
			metrics.MonthlyCoverageRate.WithLabelValues(academicYearID).Set(result.Metrics.CoverageRate)
			metrics.MonthlyGini.WithLabelValues(academicYearID).Set(result.Metrics.Gini)
			for t, n := range result.Metrics.TotalsByType {
				metrics.MonthlyCallsAssigned.WithLabelValues(string(t)).Add(float64(n))
			}

			return printJSON(sched)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to the YAML configuration file")
	cmd.Flags().StringVar(&residentsPath, "residents", "", "path to a JSON array of residents")
	cmd.Flags().StringVar(&leavePath, "leave", "", "path to a JSON array of leave requests")
	cmd.Flags().StringVar(&academicYearID, "academic-year-id", "", "academic year id this month belongs to")
	cmd.Flags().IntVar(&year, "year", 0, "calendar year of the month to generate")
	cmd.Flags().IntVar(&month, "month", 0, "month to generate, 0-indexed (0=January)")
	cmd.Flags().StringVar(&staffing, "staffing", "normal", "staffing mode: normal or shortage")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing monthly schedule")
	cmd.MarkFlagRequired("config")
	cmd.MarkFlagRequired("residents")
	cmd.MarkFlagRequired("academic-year-id")
	cmd.MarkFlagRequired("year")
	addAdminFlag(cmd)

	return cmd
}
