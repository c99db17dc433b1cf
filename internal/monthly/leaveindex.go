package monthly

import (
	"time"

	"github.com/neurosx/schedctl/internal/calendar"
	"github.com/neurosx/schedctl/internal/domain"
)

// LeaveIndex answers approved/pending-or-denied leave membership
// queries for a fixed set of leave requests, satisfying both
// rules.LeaveIndex and scoring.LeaveIndex.
type LeaveIndex struct {
	approved         map[string][]span
	pendingOrDenied  map[string][]span
}

type span struct{ start, end time.Time }

func (s span) contains(d time.Time) bool {
	day := calendar.Civil(d)
	return !day.Before(calendar.Civil(s.start)) && !day.After(calendar.Civil(s.end))
}

// NewLeaveIndex partitions leave requests by resident and status.
func NewLeaveIndex(requests []domain.LeaveRequest) *LeaveIndex {
	idx := &LeaveIndex{
		approved:        make(map[string][]span),
		pendingOrDenied: make(map[string][]span),
	}
	for _, r := range requests {
		sp := span{r.StartDate, r.EndDate}
		switch r.Status {
		case domain.LeaveStatusApproved:
			idx.approved[r.ResidentID] = append(idx.approved[r.ResidentID], sp)
		case domain.LeaveStatusPendingApproval, domain.LeaveStatusPendingAnalysis, domain.LeaveStatusDenied, domain.LeaveStatusFlaggedForReview:
			idx.pendingOrDenied[r.ResidentID] = append(idx.pendingOrDenied[r.ResidentID], sp)
		}
	}
	return idx
}

// OnApprovedLeave implements rules.LeaveIndex.
func (idx *LeaveIndex) OnApprovedLeave(residentID string, d time.Time) bool {
	for _, sp := range idx.approved[residentID] {
		if sp.contains(d) {
			return true
		}
	}
	return false
}

// OnPendingOrDeniedLeave implements scoring.LeaveIndex.
func (idx *LeaveIndex) OnPendingOrDeniedLeave(residentID string, d time.Time) bool {
	for _, sp := range idx.pendingOrDenied[residentID] {
		if sp.contains(d) {
			return true
		}
	}
	return false
}
