package monthly_test

import (
	"testing"
	"time"

	"github.com/neurosx/schedctl/internal/domain"
	"github.com/neurosx/schedctl/internal/monthly"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCallStats_SeedsFromExisting(t *testing.T) {
	existing := []domain.CallAssignment{
		{ResidentID: "r1", Type: domain.CallWeekend, Points: 2, Date: date(2026, 7, 4), Status: domain.CallStatusScheduled},
		{ResidentID: "r1", Type: domain.CallPostCall, Points: 0, Date: date(2026, 7, 5), Status: domain.CallStatusPostCall},
	}
	stats := monthly.NewCallStats(existing)

	if got := stats.CallCount("r1"); got != 1 {
		t.Errorf("CallCount = %d, want 1 (PostCall should not count)", got)
	}
	if got := stats.WeekendCount("r1"); got != 1 {
		t.Errorf("WeekendCount = %d, want 1", got)
	}
	if got := stats.Points("r1"); got != 2 {
		t.Errorf("Points = %d, want 2", got)
	}
}

func TestCallStats_RecordUpdatesLastCallDate(t *testing.T) {
	stats := monthly.NewCallStats(nil)
	stats.Record(domain.CallAssignment{ResidentID: "r1", Type: domain.CallNight, Points: 1, Date: date(2026, 7, 1), Status: domain.CallStatusScheduled})
	stats.Record(domain.CallAssignment{ResidentID: "r1", Type: domain.CallNight, Points: 1, Date: date(2026, 7, 10), Status: domain.CallStatusScheduled})

	last, ok := stats.LastCallDate("r1")
	if !ok || !last.Equal(date(2026, 7, 10)) {
		t.Errorf("LastCallDate = %v (ok=%v), want 2026-07-10", last, ok)
	}
	if got := stats.CallCount("r1"); got != 2 {
		t.Errorf("CallCount = %d, want 2", got)
	}
}

func TestCallStats_RecordIgnoresPostCall(t *testing.T) {
	stats := monthly.NewCallStats(nil)
	stats.Record(domain.CallAssignment{ResidentID: "r1", Type: domain.CallPostCall, Points: 0, Date: date(2026, 7, 2), Status: domain.CallStatusPostCall})
	if got := stats.CallCount("r1"); got != 0 {
		t.Errorf("CallCount = %d, want 0 for a post-call-only record", got)
	}
}

func TestCallStats_RecentCallDatesWindowed(t *testing.T) {
	stats := monthly.NewCallStats(nil)
	for _, d := range []time.Time{date(2026, 7, 1), date(2026, 7, 15), date(2026, 8, 1)} {
		stats.Record(domain.CallAssignment{ResidentID: "r1", Type: domain.CallNight, Points: 1, Date: d, Status: domain.CallStatusScheduled})
	}

	recent := stats.RecentCallDates("r1", date(2026, 7, 1), date(2026, 8, 1))
	if len(recent) != 2 {
		t.Errorf("expected 2 dates in [Jul 1, Aug 1), got %d: %v", len(recent), recent)
	}
}

func TestLeaveIndex_PartitionsByStatus(t *testing.T) {
	requests := []domain.LeaveRequest{
		{ResidentID: "r1", Status: domain.LeaveStatusApproved, StartDate: date(2026, 7, 10), EndDate: date(2026, 7, 12)},
		{ResidentID: "r2", Status: domain.LeaveStatusPendingApproval, StartDate: date(2026, 7, 20), EndDate: date(2026, 7, 21)},
	}
	idx := monthly.NewLeaveIndex(requests)

	if !idx.OnApprovedLeave("r1", date(2026, 7, 11)) {
		t.Error("expected r1 to be on approved leave on Jul 11")
	}
	if idx.OnApprovedLeave("r1", date(2026, 7, 13)) {
		t.Error("expected r1 to not be on approved leave outside the request window")
	}
	if !idx.OnPendingOrDeniedLeave("r2", date(2026, 7, 20)) {
		t.Error("expected r2 to be flagged as pending on Jul 20")
	}
	if idx.OnPendingOrDeniedLeave("r1", date(2026, 7, 11)) {
		t.Error("expected an approved request to not show up as pending/denied")
	}
}
