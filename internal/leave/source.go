package leave

import (
	"context"
	"time"

	"github.com/neurosx/schedctl/internal/domain"
)

// CoverageData is the raw input the coverage-impact calculation needs:
// the on-service specialty peer roster (excluding the requester) and
// any approved leave from other residents overlapping the request.
type CoverageData struct {
	SpecialtyPeers   []domain.Resident
	OverlappingLeave []domain.LeaveRequest
}

// PeerComparisonData is the raw input the fairness peer-comparison
// needs.
type PeerComparisonData struct {
	PeerAverageDaysOff float64
	Defined            bool
}

// DataSource is the six independent reads of §4.5/§5, one method per
// read, each issued concurrently by Analyzer.Analyze and joined before
// synthesis begins. The per-concern-interface shape is grounded on the
// teacher's pkg/power.PowerController: one narrow interface per
// external capability, constructed once and called through an
// abstraction the analyzer does not need to know the backing store of.
type DataSource interface {
	FetchResident(ctx context.Context, residentID string) (domain.Resident, error)
	FetchHistoricalLeave(ctx context.Context, residentID string, since time.Time) ([]domain.LeaveRequest, error)
	FetchScheduleConflicts(ctx context.Context, residentID string, start, end time.Time) ([]domain.ScheduleConflict, error)
	FetchCoverageData(ctx context.Context, req domain.LeaveRequest) (CoverageData, error)
	FetchConfiguration(ctx context.Context) (domain.AppConfiguration, error)
	FetchPeerComparisonData(ctx context.Context, residentID string) (PeerComparisonData, error)
}
