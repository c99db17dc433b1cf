package leave

import (
	"time"

	"github.com/neurosx/schedctl/internal/calendar"
	"github.com/neurosx/schedctl/internal/domain"
)

// coverageImpact implements §4.5's coverage impact calculation.
func coverageImpact(req domain.LeaveRequest, data CoverageData, weekends *calendar.WeekendSet) domain.CoverageImpact {
	total := len(data.SpecialtyPeers) + 1 // peers + the requester
	overlapping := len(data.OverlappingLeave)
	available := total - overlapping - 1
	ratio := 0.0
	if total > 0 {
		ratio = float64(available) / float64(total)
	}

	risk := domain.RiskHigh
	switch {
	case ratio >= 0.8:
		risk = domain.RiskLow
	case ratio >= 0.6:
		risk = domain.RiskMedium
	}

	weekendDays := countWeekendDays(req.StartDate, req.EndDate, weekends)
	if risk == domain.RiskLow && weekendDays > 2 {
		risk = domain.RiskMedium
	}
	if weekendDays > 4 {
		risk = domain.RiskHigh
	}

	return domain.CoverageImpact{
		TotalResidents:     total,
		OverlappingLeave:   overlapping,
		AvailableResidents: available,
		Ratio:              ratio,
		Risk:               risk,
	}
}

func countWeekendDays(start, end time.Time, weekends *calendar.WeekendSet) int {
	n := 0
	for _, d := range calendar.InclusiveRange(start, end) {
		if weekends.IsWeekend(d) {
			n++
		}
	}
	return n
}

// fairnessAssessment implements §4.5's fairness calculation over the
// trailing 6 months.
func fairnessAssessment(req domain.LeaveRequest, resident domain.Resident, historical []domain.LeaveRequest, peer PeerComparisonData, now time.Time) domain.FairnessAssessment {
	sixMonthsAgo := now.AddDate(0, -6, 0)

	recentDaysOff := 0
	var sameMonthTotal, sameMonthApproved int
	for _, h := range historical {
		if !h.StartDate.Before(sixMonthsAgo) && h.Status == domain.LeaveStatusApproved {
			recentDaysOff += inclusiveDays(h.StartDate, h.EndDate)
		}
		if h.StartDate.Month() == req.StartDate.Month() {
			sameMonthTotal++
			if h.Status == domain.LeaveStatusApproved {
				sameMonthApproved++
			}
		}
	}

	historicalRate := 0.5
	if sameMonthTotal > 0 {
		historicalRate = float64(sameMonthApproved) / float64(sameMonthTotal)
	}

	peerAvg := 10.0
	if peer.Defined {
		peerAvg = peer.PeerAverageDaysOff
	}
	peerComparison := 0.0
	if peerAvg > 0 {
		peerComparison = float64(recentDaysOff) / peerAvg
	}

	score := 100
	switch {
	case recentDaysOff > 15:
		score -= 30
	case recentDaysOff > 10:
		score -= 20
	case recentDaysOff > 5:
		score -= 10
	}
	switch {
	case peerComparison > 1.5:
		score -= 20
	case peerComparison > 1.2:
		score -= 10
	}
	if peerComparison < 0.5 {
		score += 10
	}
	score += 2 * resident.PGYLevel

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return domain.FairnessAssessment{
		RecentDaysOff:  recentDaysOff,
		HistoricalRate: historicalRate,
		PeerComparison: peerComparison,
		Score:          score,
	}
}

func inclusiveDays(start, end time.Time) int {
	return int(calendar.Civil(end).Sub(calendar.Civil(start)).Hours()/24) + 1
}

// policyCompliance implements §4.5's additive policy-violation list.
func policyCompliance(req domain.LeaveRequest, policy domain.LeavePolicy, yearDaysUsed int) domain.PolicyCompliance {
	var violations []string

	daysNotice := calendar.DaysBetween(req.RequestedAt, req.StartDate)
	if daysNotice < policy.MinNoticeDays && req.Type != domain.LeaveCompassionate {
		violations = append(violations, "insufficient notice")
	}

	requestDays := req.Days()
	if requestDays > policy.MaxConsecutiveDays {
		violations = append(violations, "exceeds maximum consecutive days")
	}

	if yearDaysUsed+requestDays > policy.AnnualLimit {
		violations = append(violations, "exceeds annual leave limit")
	}

	return domain.PolicyCompliance{Violations: violations}
}

// synthesize implements §4.5's recommendation decision tree.
func synthesize(coverage domain.CoverageImpact, fairness domain.FairnessAssessment, conflicts []domain.ScheduleConflict, policy domain.PolicyCompliance) (domain.Recommendation, string) {
	for _, c := range conflicts {
		if c.Severity == domain.SeverityHigh {
			return domain.RecommendDeny, conflictJustification(c)
		}
	}

	if len(policy.Violations) >= 2 {
		return domain.RecommendDeny, "multiple policy violations: " + joinViolations(policy.Violations)
	}

	if coverage.Risk == domain.RiskHigh && coverage.Ratio < 0.5 {
		return domain.RecommendDeny, "insufficient coverage: high risk with availability ratio below 0.5"
	}

	concerns := 0
	if coverage.Risk == domain.RiskMedium {
		concerns++
	}
	if fairness.Score < 40 {
		concerns++
	}
	if len(conflicts) > 0 {
		concerns++
	}
	if !policy.Compliant() {
		concerns++
	}

	if concerns >= 1 {
		return domain.RecommendFlaggedForReview, ""
	}

	return domain.RecommendApprove, ""
}

func conflictJustification(c domain.ScheduleConflict) string {
	return string(c.Type) + " conflict on " + c.Date.Format("2006-01-02") + ": " + c.Description
}

func joinViolations(v []string) string {
	out := ""
	for i, s := range v {
		if i > 0 {
			out += "; "
		}
		out += s
	}
	return out
}
