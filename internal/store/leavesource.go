package store

import (
	"context"
	"time"

	"github.com/neurosx/schedctl/internal/apperrors"
	"github.com/neurosx/schedctl/internal/domain"
	"github.com/neurosx/schedctl/internal/leave"
)

// LeaveDataSource adapts a MemoryStore into leave.DataSource, computing
// the coverage and peer-comparison reads from the resident roster and
// leave history already on file rather than a separate collection.
type LeaveDataSource struct {
	Store *MemoryStore
}

// NewLeaveDataSource returns a leave.DataSource backed by store.
func NewLeaveDataSource(s *MemoryStore) *LeaveDataSource {
	return &LeaveDataSource{Store: s}
}

func (d *LeaveDataSource) FetchResident(ctx context.Context, residentID string) (domain.Resident, error) {
	return d.Store.Get(ctx, residentID)
}

func (d *LeaveDataSource) FetchHistoricalLeave(ctx context.Context, residentID string, since time.Time) ([]domain.LeaveRequest, error) {
	all, err := d.Store.ListLeaveRequests(ctx, residentID)
	if err != nil {
		return nil, err
	}
	var out []domain.LeaveRequest
	for _, r := range all {
		if !r.StartDate.Before(since) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (d *LeaveDataSource) FetchScheduleConflicts(ctx context.Context, residentID string, start, end time.Time) ([]domain.ScheduleConflict, error) {
	// No independent conflict-detection collection is modeled; a real
	// deployment would check OR/clinic/call assignments overlapping
	// [start, end] here. The in-memory fake reports none.
	return nil, nil
}

func (d *LeaveDataSource) FetchCoverageData(ctx context.Context, req domain.LeaveRequest) (leave.CoverageData, error) {
	requester, err := d.Store.Get(ctx, req.ResidentID)
	if err != nil {
		return leave.CoverageData{}, err
	}

	all, err := d.Store.List(ctx)
	if err != nil {
		return leave.CoverageData{}, err
	}
	var peers []domain.Resident
	for _, r := range all {
		if r.ID != requester.ID && r.Specialty == requester.Specialty && r.OnService {
			peers = append(peers, r)
		}
	}

	everyLeave, err := d.Store.ListLeaveRequests(ctx, "")
	if err != nil {
		return leave.CoverageData{}, err
	}
	var overlapping []domain.LeaveRequest
	for _, l := range everyLeave {
		if l.ResidentID == req.ResidentID || l.Status != domain.LeaveStatusApproved {
			continue
		}
		if l.StartDate.After(req.EndDate) || l.EndDate.Before(req.StartDate) {
			continue
		}
		overlapping = append(overlapping, l)
	}

	return leave.CoverageData{SpecialtyPeers: peers, OverlappingLeave: overlapping}, nil
}

func (d *LeaveDataSource) FetchConfiguration(ctx context.Context) (domain.AppConfiguration, error) {
	return d.Store.GetConfiguration(ctx)
}

// FetchPeerComparisonData is an independent read: it looks the
// resident up by id itself rather than depending on another
// concurrent read's result, so it can be fanned out alongside the
// other five reads without a join in between.
func (d *LeaveDataSource) FetchPeerComparisonData(ctx context.Context, residentID string) (leave.PeerComparisonData, error) {
	if residentID == "" {
		return leave.PeerComparisonData{}, apperrors.New(apperrors.Validation, "resident id required")
	}

	resident, err := d.Store.Get(ctx, residentID)
	if err != nil {
		return leave.PeerComparisonData{}, err
	}

	all, err := d.Store.List(ctx)
	if err != nil {
		return leave.PeerComparisonData{}, err
	}

	everyLeave, err := d.Store.ListLeaveRequests(ctx, "")
	if err != nil {
		return leave.PeerComparisonData{}, err
	}

	sixMonthsAgo := time.Now().AddDate(0, -6, 0)
	totalDays, peerCount := 0, 0
	for _, r := range all {
		if r.ID == resident.ID || r.Specialty != resident.Specialty || r.PGYLevel != resident.PGYLevel {
			continue
		}
		peerCount++
		for _, l := range everyLeave {
			if l.ResidentID == r.ID && l.Status == domain.LeaveStatusApproved && !l.StartDate.Before(sixMonthsAgo) {
				totalDays += l.Days()
			}
		}
	}
	if peerCount == 0 {
		return leave.PeerComparisonData{Defined: false}, nil
	}
	return leave.PeerComparisonData{PeerAverageDaysOff: float64(totalDays) / float64(peerCount), Defined: true}, nil
}
