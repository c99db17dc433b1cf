// Package scoring implements the Scorer (spec §4.2): given an eligible
// resident and a day's context, produce a numeric score plus a
// breakdown of its components.
//
// The component-table-of-pure-functions shape is grounded on the
// teacher's pkg/strategy evalFuncs map (average/median/p90 functions
// over a []float64) — here each component is a pure function of the
// per-resident counters and the run-wide averages, summed rather than
// looked up by mode.
package scoring

import (
	"time"

	"github.com/neurosx/schedctl/internal/calendar"
	"github.com/neurosx/schedctl/internal/domain"
)

// Stats is the read view of per-resident running counters the scorer
// needs. internal/monthly.CallStats implements it.
type Stats interface {
	CallCount(residentID string) int
	Points(residentID string) int
	LastCallDate(residentID string) (time.Time, bool)
}

// LeaveIndex answers whether a resident has a pending or denied leave
// spanning a date.
type LeaveIndex interface {
	OnPendingOrDeniedLeave(residentID string, d time.Time) bool
}

// Averages holds the run-wide aggregates the component formulas
// compare each resident against. Computed across all residents of the
// run, not only the eligible subset, per §4.2.
type Averages struct {
	AvgCalls     float64
	AvgPoints    float64
	TeamAvgCalls map[domain.Team]float64
}

// Breakdown is the per-component contribution for one scoring call,
// useful for diagnostics and tests.
type Breakdown struct {
	Fairness       float64
	Rest           float64
	Seniority      float64
	PointsBalance  float64
	TeamBalance    float64
	PendingPenalty float64
	Total          float64
}

// Score scores resident r, eligible for call type t on date d, against
// the run's averages.
func Score(r domain.Resident, d time.Time, t domain.CallType, team domain.Team, stats Stats, avg Averages, leave LeaveIndex) Breakdown {
	calls := float64(stats.CallCount(r.ID))
	points := float64(stats.Points(r.ID))

	b := Breakdown{}

	b.Fairness = max0(30 - (calls-avg.AvgCalls)*10)

	if last, ok := stats.LastCallDate(r.ID); ok {
		daysSince := float64(calendar.DaysBetween(last, d))
		b.Rest = min(daysSince*3, 30)
	} else {
		b.Rest = 30
	}

	if t == domain.CallWeekend || t == domain.CallHoliday {
		b.Seniority = float64(2 * r.PGYLevel)
	}

	b.PointsBalance = max0(20 - (points - avg.AvgPoints))

	teamAvg := avg.TeamAvgCalls[team]
	overallAvg := avg.AvgCalls
	b.TeamBalance = roundHalfAwayFromZero(5 * (overallAvg - teamAvg))

	if leave != nil && leave.OnPendingOrDeniedLeave(r.ID, d) {
		b.PendingPenalty = -50
	}

	total := 100 + b.Fairness + b.Rest + b.Seniority + b.PointsBalance + b.TeamBalance + b.PendingPenalty
	if total < 0 {
		total = 0
	}
	b.Total = total
	return b
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func roundHalfAwayFromZero(v float64) float64 {
	if v >= 0 {
		return float64(int(v + 0.5))
	}
	return -float64(int(-v + 0.5))
}

// ComputeAverages computes run-wide averages across every resident of
// the run (not only eligible ones), per §4.2.
func ComputeAverages(residents []domain.Resident, stats Stats, teamOf func(residentID string) domain.Team) Averages {
	if len(residents) == 0 {
		return Averages{TeamAvgCalls: map[domain.Team]float64{}}
	}

	var totalCalls, totalPoints float64
	teamCalls := map[domain.Team]float64{}
	teamCount := map[domain.Team]float64{}

	for _, r := range residents {
		c := float64(stats.CallCount(r.ID))
		p := float64(stats.Points(r.ID))
		totalCalls += c
		totalPoints += p
		team := teamOf(r.ID)
		teamCalls[team] += c
		teamCount[team]++
	}

	n := float64(len(residents))
	teamAvg := map[domain.Team]float64{}
	for team, sum := range teamCalls {
		teamAvg[team] = sum / teamCount[team]
	}

	return Averages{
		AvgCalls:     totalCalls / n,
		AvgPoints:    totalPoints / n,
		TeamAvgCalls: teamAvg,
	}
}

// TieBreak orders candidates by (ascending call count, ascending
// resident id) for deterministic selection among equal scores (§4.2).
func TieBreak(aCalls, bCalls int, aID, bID string) bool {
	if aCalls != bCalls {
		return aCalls < bCalls
	}
	return aID < bID
}
