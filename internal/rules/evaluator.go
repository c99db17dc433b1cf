// Package rules implements the Rule Evaluator (spec §4.1): the
// ordered, short-circuit eligibility chain that decides whether a
// resident may take a given call type on a given date under a given
// staffing mode.
//
// The chain's shape — an ordered sequence of named checks, each
// returning early on first failure — is grounded on the teacher's
// pkg/strategy.LoadAverageScaleDown.ShouldScaleDown, which runs
// threshold-then-cluster-aggregate checks in the same short-circuit
// style.
package rules

import (
	"log/slog"
	"time"

	"github.com/neurosx/schedctl/internal/calendar"
	"github.com/neurosx/schedctl/internal/domain"
)

// Reason is the closed enumeration of eligibility failure reasons.
type Reason string

const (
	ReasonEligible             Reason = "eligible"
	ReasonOffService           Reason = "off-service-or-exempt-chief"
	ReasonNotCoreNSX           Reason = "not-on-core-nsx-rotation"
	ReasonOnApprovedLeave      Reason = "on-approved-leave"
	ReasonPostCallRest         Reason = "post-call-rest-violation"
	ReasonMaxCallsReached      Reason = "max-calls-reached"
	ReasonMaxWeekendsReached   Reason = "max-weekends-reached"
	ReasonParoRollingViolation Reason = "paro-1-in-4-rolling-violation"
	ReasonNoBlock              Reason = "no-rotation-block-for-date"
)

// Counters is the minimal read view of a resident's running tally the
// evaluator needs. internal/monthly.CallStats implements it.
type Counters interface {
	CallCount(residentID string) int
	WeekendCount(residentID string) int
	LastCallDate(residentID string) (time.Time, bool)
	RecentCallDates(residentID string, windowStart, windowEndExclusive time.Time) []time.Time
}

// LeaveIndex answers whether a resident is on approved leave spanning
// a date.
type LeaveIndex interface {
	OnApprovedLeave(residentID string, d time.Time) bool
}

// Result is the outcome of an eligibility evaluation.
type Result struct {
	Eligible bool
	Reason   Reason
	MaxCalls int
}

// Evaluator evaluates resident eligibility against a fixed
// AppConfiguration and a fixed academic year for one run.
type Evaluator struct {
	Config       domain.AppConfiguration
	AcademicYear domain.AcademicYear
	Holidays     *calendar.HolidaySet
}

// NewEvaluator builds an Evaluator for one scheduling run.
func NewEvaluator(cfg domain.AppConfiguration, ay domain.AcademicYear, holidays *calendar.HolidaySet) *Evaluator {
	return &Evaluator{Config: cfg, AcademicYear: ay, Holidays: holidays}
}

// Evaluate runs the ordered eligibility chain of §4.1 for resident r,
// call type t, date d, under staffing mode m.
func (e *Evaluator) Evaluate(r domain.Resident, d time.Time, t domain.CallType, m domain.StaffingLevel, counters Counters, leave LeaveIndex) Result {
	// 1. on-service, and not an exempt chief.
	if !r.OnService || (r.IsChief && r.CallExempt) {
		return Result{Reason: ReasonOffService}
	}

	// 2. must be on a CORE_NSX rotation in the block containing d.
	block, ok := e.AcademicYear.BlockContaining(d)
	if !ok {
		return Result{Reason: ReasonNoBlock}
	}
	assignment, ok := block.Assignments[r.ID]
	if !ok || assignment.RotationType != domain.RotationCoreNSX {
		return Result{Reason: ReasonNotCoreNSX}
	}

	// 3. not on approved leave spanning d.
	if leave != nil && leave.OnApprovedLeave(r.ID, d) {
		return Result{Reason: ReasonOnApprovedLeave}
	}

	// 4. not post-call: no recorded call on the day before or the day
	// after d. Days are not processed in calendar order (§4.4 step 3),
	// so a call later in the month must not block earlier dates.
	if last, ok := counters.LastCallDate(r.ID); ok {
		if gap := calendar.DaysBetween(last, d); gap > -2 && gap < 2 {
			return Result{Reason: ReasonPostCallRest}
		}
	}
	if len(counters.RecentCallDates(r.ID, d.AddDate(0, 0, -1), d.AddDate(0, 0, 2))) > 0 {
		return Result{Reason: ReasonPostCallRest}
	}

	// 5. under the computed per-resident call cap.
	working := calendar.WorkingDaysInRange(block.StartDate, block.EndDate, e.Holidays)
	maxCalls := MaxCalls(r, working, m, e.Config.MonthlySchedulerConfig)
	if counters.CallCount(r.ID) >= maxCalls {
		return Result{Reason: ReasonMaxCallsReached, MaxCalls: maxCalls}
	}

	// 6. weekend-specific cap.
	if t == domain.CallWeekend && counters.WeekendCount(r.ID) >= e.Config.MonthlySchedulerConfig.MaxWeekendsPerRotation {
		return Result{Reason: ReasonMaxWeekendsReached, MaxCalls: maxCalls}
	}

	// 7. PARO 1-in-4 rolling rule: 28-day look-back window ending at d
	// (exclusive), averaged form (spec §9 open question resolved
	// toward the averaged semantics the spec text encodes).
	windowStart := d.AddDate(0, 0, -28)
	recent := len(counters.RecentCallDates(r.ID, windowStart, d))
	if recent+1 > 7 {
		return Result{Reason: ReasonParoRollingViolation, MaxCalls: maxCalls}
	}

	return Result{Eligible: true, Reason: ReasonEligible, MaxCalls: maxCalls}
}

// MaxCalls computes the per-resident call cap for a block of W working
// days, PGY level p and staffing mode m, per §4.1.1.
func MaxCalls(r domain.Resident, workingDays int, m domain.StaffingLevel, cfg domain.MonthlySchedulerConfig) int {
	if r.IsChief && r.CallExempt {
		return 0
	}

	paroCap := 8
	found := false
	for _, rule := range cfg.ParoHardCaps {
		if workingDays >= rule.MinDays && workingDays <= rule.MaxDays {
			paroCap = rule.Calls
			found = true
			break
		}
	}
	if !found {
		slog.Debug("no paroHardCaps rule matched working days, using default", "workingDays", workingDays, "default", paroCap)
	}

	if m == domain.StaffingShortage {
		return paroCap
	}

	ratio, ok := cfg.CallRatios[r.PGYLevel]
	if !ok || ratio <= 0 {
		slog.Warn("no callRatio configured for PGY level, falling back to PARO cap alone", "pgyLevel", r.PGYLevel)
		return paroCap
	}

	pgyTarget := workingDays / ratio
	if pgyTarget < paroCap {
		return pgyTarget
	}
	return paroCap
}
