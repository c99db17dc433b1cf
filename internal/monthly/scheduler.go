// Package monthly implements the Monthly Call Scheduler (spec §4.4):
// day-by-day, constraint-filtered eligibility plus weighted-scoring
// selection, producing a month's CallAssignments.
//
// The overall shape — build state from config, then iterate a fixed
// ordered sequence of steps, logging each and updating shared
// in-memory state (here CallStats, there NodeStateTracker) — is
// grounded on the teacher's pkg/controller.Reconciler.RunOnce loop.
package monthly

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/neurosx/schedctl/internal/apperrors"
	"github.com/neurosx/schedctl/internal/calendar"
	"github.com/neurosx/schedctl/internal/domain"
	"github.com/neurosx/schedctl/internal/rules"
	"github.com/neurosx/schedctl/internal/scoring"
)

// DayRequirement is the call-type and required-coverage shape of one
// calendar day of the month (spec §4.4 step 2).
type DayRequirement struct {
	Date             time.Time
	CallType         domain.CallType
	Priority         int
	RequiredCoverage int
}

// Metrics summarizes one generation run (spec §4.4 step 5).
type Metrics struct {
	TotalsByType  map[domain.CallType]int
	CoverageRate  float64
	Gini          float64
	UnfilledSlots int
}

// Scheduler generates one month's CallAssignments per invocation. It
// is a value, constructed per request and discarded after.
type Scheduler struct {
	Config   domain.AppConfiguration
	Holidays *calendar.HolidaySet
	Weekends *calendar.WeekendSet
}

// NewScheduler builds a Scheduler for one run; the holiday set must
// already include the configured holidays plus the standard fixed
// dates for the target year (calendar.NewHolidaySet).
func NewScheduler(cfg domain.AppConfiguration, holidays *calendar.HolidaySet, weekends *calendar.WeekendSet) *Scheduler {
	return &Scheduler{Config: cfg, Holidays: holidays, Weekends: weekends}
}

// Result is the output of one Generate call.
type Result struct {
	Assignments []domain.CallAssignment
	Metrics     Metrics
}

// Generate runs the 6-step algorithm of §4.4 for one calendar month.
// month is 0-indexed (0=January), matching the RPC contract of §6.2.
func (s *Scheduler) Generate(
	residents []domain.Resident,
	academicYear domain.AcademicYear,
	leave []domain.LeaveRequest,
	existing []domain.CallAssignment,
	year int, month int,
	staffing domain.StaffingLevel,
) (Result, error) {
	if len(residents) == 0 {
		return Result{}, apperrors.New(apperrors.Validation, "at least one resident is required")
	}
	if month < 0 || month > 11 {
		return Result{}, apperrors.New(apperrors.Validation, "month must be in [0,11]")
	}

	stats := NewCallStats(existing)
	leaveIdx := NewLeaveIndex(leave)
	evaluator := rules.NewEvaluator(s.Config, academicYear, s.Holidays)

	days := buildDayRequirements(year, month, s.Holidays, s.Weekends)
	sort.SliceStable(days, func(i, j int) bool { return days[i].Priority > days[j].Priority })

	daysInMonth := calendar.DaysInMonth(year, month)
	monthStart := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 0, daysInMonth-1)

	var assignments []domain.CallAssignment
	unfilled := 0
	coveredDays := map[string]bool{}

	for _, day := range days {
		if day.CallType == domain.CallNone {
			continue
		}

		selectedToday := map[string]bool{}
		for i := 0; i < day.RequiredCoverage; i++ {
			pick, ok := selectCandidate(residents, day, staffing, evaluator, stats, leaveIdx, academicYear, selectedToday)
			if !ok {
				slog.Warn("monthly scheduler: no eligible resident for required slot", "date", day.Date.Format("2006-01-02"), "callType", day.CallType)
				unfilled++
				continue
			}

			team := teamForResident(academicYear, pick.ID, day.Date)
			assignment := domain.CallAssignment{
				ID:         uuid.New().String(),
				ResidentID: pick.ID,
				Date:       day.Date,
				Type:       day.CallType,
				Points:     day.CallType.Points(),
				IsHoliday:  day.CallType == domain.CallHoliday,
				Team:       team,
				Status:     domain.CallStatusScheduled,
			}
			assertInvariant(stats.CallCount(pick.ID) < rules.MaxCalls(pick, workingDaysFor(academicYear, day.Date, s.Holidays), staffing, s.Config.MonthlySchedulerConfig),
				"selection would exceed max-calls cap")

			stats.Record(assignment)
			assignments = append(assignments, assignment)
			selectedToday[pick.ID] = true
			coveredDays[calendar.Civil(day.Date).Format("2006-01-02")] = true

			postCallDate := day.Date.AddDate(0, 0, 1)
			if !postCallDate.After(monthEnd) {
				post := domain.CallAssignment{
					ID:         uuid.New().String(),
					ResidentID: pick.ID,
					Date:       postCallDate,
					Type:       domain.CallPostCall,
					Points:     domain.CallPostCall.Points(),
					Team:       team,
					Status:     domain.CallStatusPostCall,
				}
				assignments = append(assignments, post)
			}
		}
	}

	metrics := computeMetrics(assignments, residents, stats, daysInMonth, coveredDays, unfilled)
	return Result{Assignments: assignments, Metrics: metrics}, nil
}

func selectCandidate(
	residents []domain.Resident,
	day DayRequirement,
	staffing domain.StaffingLevel,
	evaluator *rules.Evaluator,
	stats *CallStats,
	leaveIdx *LeaveIndex,
	ay domain.AcademicYear,
	alreadySelected map[string]bool,
) (domain.Resident, bool) {
	var eligible []domain.Resident
	for _, r := range residents {
		if alreadySelected[r.ID] {
			continue
		}
		result := evaluator.Evaluate(r, day.Date, day.CallType, staffing, stats, leaveIdx)
		if result.Eligible {
			eligible = append(eligible, r)
		}
	}
	if len(eligible) == 0 {
		return domain.Resident{}, false
	}

	teamOf := func(id string) domain.Team { return teamForResident(ay, id, day.Date) }
	avg := scoring.ComputeAverages(residents, stats, teamOf)

	var best domain.Resident
	var bestScore float64
	first := true
	for _, r := range eligible {
		team := teamForResident(ay, r.ID, day.Date)
		breakdown := scoring.Score(r, day.Date, day.CallType, team, stats, avg, leaveIdx)
		if first || breakdown.Total > bestScore ||
			(breakdown.Total == bestScore && scoring.TieBreak(stats.CallCount(r.ID), stats.CallCount(best.ID), r.ID, best.ID)) {
			best = r
			bestScore = breakdown.Total
			first = false
		}
	}
	return best, true
}

func buildDayRequirements(year, month int, holidays *calendar.HolidaySet, weekends *calendar.WeekendSet) []DayRequirement {
	days := calendar.DaysInMonth(year, month)
	out := make([]DayRequirement, 0, days)
	for d := 1; d <= days; d++ {
		date := time.Date(year, time.Month(month+1), d, 0, 0, 0, 0, time.UTC)
		out = append(out, dayRequirement(date, holidays, weekends))
	}
	return out
}

func dayRequirement(date time.Time, holidays *calendar.HolidaySet, weekends *calendar.WeekendSet) DayRequirement {
	switch {
	case holidays.IsHoliday(date):
		return DayRequirement{Date: date, CallType: domain.CallHoliday, Priority: 3, RequiredCoverage: 2}
	case weekends.IsWeekend(date):
		return DayRequirement{Date: date, CallType: domain.CallWeekend, Priority: 2, RequiredCoverage: 1}
	case isWeeknight(date.Weekday()):
		return DayRequirement{Date: date, CallType: domain.CallNight, Priority: 1, RequiredCoverage: 1}
	default:
		return DayRequirement{Date: date, CallType: domain.CallNone, Priority: 0, RequiredCoverage: 0}
	}
}

func isWeeknight(d time.Weekday) bool {
	switch d {
	case time.Monday, time.Tuesday, time.Wednesday, time.Thursday:
		return true
	default:
		return false
	}
}

func teamForResident(ay domain.AcademicYear, residentID string, date time.Time) domain.Team {
	block, ok := ay.BlockContaining(date)
	if !ok {
		return domain.TeamNone
	}
	a, ok := block.Assignments[residentID]
	if !ok {
		return domain.TeamNone
	}
	return a.Team
}

func workingDaysFor(ay domain.AcademicYear, date time.Time, holidays *calendar.HolidaySet) int {
	block, ok := ay.BlockContaining(date)
	if !ok {
		return 0
	}
	return calendar.WorkingDaysInRange(block.StartDate, block.EndDate, holidays)
}

func computeMetrics(assignments []domain.CallAssignment, residents []domain.Resident, stats *CallStats, daysInMonth int, coveredDays map[string]bool, unfilled int) Metrics {
	totals := map[domain.CallType]int{}
	for _, a := range assignments {
		totals[a.Type]++
	}

	coverageRate := 0.0
	if daysInMonth > 0 {
		coverageRate = float64(len(coveredDays)) / float64(daysInMonth)
	}

	counts := stats.CallCounts(residents)
	gini := giniCoefficient(counts)

	return Metrics{
		TotalsByType:  totals,
		CoverageRate:  coverageRate,
		Gini:          gini,
		UnfilledSlots: unfilled,
	}
}

// giniCoefficient computes the Gini coefficient of a set of
// non-negative values using the standard Lorenz formulation:
//
//	G = (2 * Σ i·x_i) / (n * Σ x_i) - (n+1)/n
//
// for x sorted ascending and i ranging 1..n. Returns 0 for an empty
// slice or when every value is 0 (perfect equality by convention).
func giniCoefficient(values []int) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	var sum float64
	for i, v := range values {
		sorted[i] = float64(v)
		sum += float64(v)
	}
	if sum == 0 {
		return 0
	}
	sort.Float64s(sorted)

	var weighted float64
	for i, x := range sorted {
		weighted += float64(i+1) * x
	}

	return (2*weighted)/(float64(n)*sum) - float64(n+1)/float64(n)
}

func assertInvariant(ok bool, message string) {
	if !ok {
		panic(fmt.Sprintf("monthly scheduler: invariant violated: %s", message))
	}
}
