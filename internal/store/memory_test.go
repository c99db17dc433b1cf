package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/neurosx/schedctl/internal/apperrors"
	"github.com/neurosx/schedctl/internal/domain"
	"github.com/neurosx/schedctl/internal/store"
	"github.com/stretchr/testify/require"
)

func TestResidentStore_GetMissingReturnsNotFound(t *testing.T) {
	s := store.NewMemoryStore()
	_, err := s.Get(context.Background(), "nope")
	if apperrors.KindOf(err) != apperrors.NotFound {
		t.Errorf("expected NotFound, got %v", apperrors.KindOf(err))
	}
}

func TestResidentStore_PutThenGetRoundTrips(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()
	want := domain.Resident{ID: "r1", PGYLevel: 3}
	if err := s.Put(ctx, want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := s.Get(ctx, "r1")
	require.NoError(t, err)
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestPutMonthlySchedule_RejectsOverwriteWithoutForce(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()
	sched := domain.MonthlySchedule{AcademicYearID: "2026-2027", Year: 2026, Month: 6}

	if err := s.PutMonthlySchedule(ctx, sched, false); err != nil {
		t.Fatalf("unexpected error on first write: %v", err)
	}
	err := s.PutMonthlySchedule(ctx, sched, false)
	if apperrors.KindOf(err) != apperrors.Conflict {
		t.Errorf("expected Conflict on a second non-forced write, got %v", apperrors.KindOf(err))
	}
}

func TestPutMonthlySchedule_ForceRegenerateOverwrites(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()
	first := domain.MonthlySchedule{AcademicYearID: "2026-2027", Year: 2026, Month: 6, UnfilledSlots: 5}
	second := domain.MonthlySchedule{AcademicYearID: "2026-2027", Year: 2026, Month: 6, UnfilledSlots: 0}

	if err := s.PutMonthlySchedule(ctx, first, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.PutMonthlySchedule(ctx, second, true); err != nil {
		t.Fatalf("unexpected error on forced overwrite: %v", err)
	}
	got, err := s.GetMonthlySchedule(ctx, "2026-2027", 2026, 6)
	require.NoError(t, err)
	if got.UnfilledSlots != 0 {
		t.Errorf("expected the forced write to replace the stored schedule, got %+v", got)
	}
}

func TestListMonthlyAssignments_FiltersByAcademicYear(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()
	a1 := domain.CallAssignment{ResidentID: "r1", Date: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)}
	a2 := domain.CallAssignment{ResidentID: "r2", Date: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)}
	a3 := domain.CallAssignment{ResidentID: "r3", Date: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)}

	if err := s.PutMonthlySchedule(ctx, domain.MonthlySchedule{AcademicYearID: "2026-2027", Year: 2026, Month: 6, Assignments: []domain.CallAssignment{a1}}, false); err != nil {
		t.Fatal(err)
	}
	if err := s.PutMonthlySchedule(ctx, domain.MonthlySchedule{AcademicYearID: "2026-2027", Year: 2026, Month: 7, Assignments: []domain.CallAssignment{a2}}, false); err != nil {
		t.Fatal(err)
	}
	if err := s.PutMonthlySchedule(ctx, domain.MonthlySchedule{AcademicYearID: "2025-2026", Year: 2025, Month: 6, Assignments: []domain.CallAssignment{a3}}, false); err != nil {
		t.Fatal(err)
	}

	got, err := s.ListMonthlyAssignments(ctx, "2026-2027")
	require.NoError(t, err)
	if len(got) != 2 {
		t.Errorf("expected 2 assignments for the 2026-2027 academic year, got %d", len(got))
	}
}

func TestPutLeaveAnalysisReport_IsWriteOnce(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()
	report := domain.LeaveAnalysisReport{ID: "report-1"}

	if err := s.PutLeaveAnalysisReport(ctx, report); err != nil {
		t.Fatalf("unexpected error on first write: %v", err)
	}
	err := s.PutLeaveAnalysisReport(ctx, report)
	if apperrors.KindOf(err) != apperrors.Conflict {
		t.Errorf("expected Conflict on a second write, got %v", apperrors.KindOf(err))
	}
}

func TestCommitAnalysisResult_RequiresExistingRequest(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()
	err := s.CommitAnalysisResult(ctx, domain.LeaveAnalysisReport{ID: "report-1"}, "missing-request", domain.LeaveStatusApproved)
	if apperrors.KindOf(err) != apperrors.NotFound {
		t.Errorf("expected NotFound for a nonexistent request, got %v", apperrors.KindOf(err))
	}
}

func TestCommitAnalysisResult_WritesReportAndStatusTogether(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()
	req := domain.LeaveRequest{ID: "req-1", ResidentID: "r1", Status: domain.LeaveStatusPendingAnalysis}
	if err := s.PutLeaveRequest(ctx, req); err != nil {
		t.Fatal(err)
	}

	report := domain.LeaveAnalysisReport{ID: "report-1", RequestID: "req-1"}
	if err := s.CommitAnalysisResult(ctx, report, "req-1", domain.LeaveStatusApproved); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gotReq, err := s.GetLeaveRequest(ctx, "req-1")
	require.NoError(t, err)
	if gotReq.Status != domain.LeaveStatusApproved || gotReq.AnalysisReportID != "report-1" {
		t.Errorf("expected the request to be updated alongside the report commit, got %+v", gotReq)
	}
	if _, err := s.GetLeaveAnalysisReport(ctx, "report-1"); err != nil {
		t.Errorf("expected the report to be retrievable after commit: %v", err)
	}
}

func TestCommitAnalysisResult_RefusesToOverwriteExistingReport(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()
	req := domain.LeaveRequest{ID: "req-1", ResidentID: "r1", Status: domain.LeaveStatusPendingAnalysis}
	if err := s.PutLeaveRequest(ctx, req); err != nil {
		t.Fatal(err)
	}
	report := domain.LeaveAnalysisReport{ID: "report-1"}
	if err := s.PutLeaveAnalysisReport(ctx, report); err != nil {
		t.Fatal(err)
	}

	err := s.CommitAnalysisResult(ctx, report, "req-1", domain.LeaveStatusApproved)
	if apperrors.KindOf(err) != apperrors.Conflict {
		t.Errorf("expected Conflict when the report already exists, got %v", apperrors.KindOf(err))
	}

	gotReq, getErr := s.GetLeaveRequest(ctx, "req-1")
	if getErr != nil {
		t.Fatal(getErr)
	}
	if gotReq.Status != domain.LeaveStatusPendingAnalysis {
		t.Errorf("expected the request status to be left untouched on a failed commit, got %v", gotReq.Status)
	}
}

func TestGetWeeklySchedule_KeyedByWeekStartDate(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()
	weekStart := time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC)
	sched := domain.WeeklySchedule{ID: "w1", WeekStart: weekStart}
	if err := s.PutWeeklySchedule(ctx, sched); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetWeeklySchedule(ctx, "2026-07-06")
	require.NoError(t, err)
	if got.ID != "w1" {
		t.Errorf("got %+v, want ID w1", got)
	}
}

func TestListLeaveRequests_FiltersByResident(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()
	if err := s.PutLeaveRequest(ctx, domain.LeaveRequest{ID: "a", ResidentID: "r1"}); err != nil {
		t.Fatal(err)
	}
	if err := s.PutLeaveRequest(ctx, domain.LeaveRequest{ID: "b", ResidentID: "r2"}); err != nil {
		t.Fatal(err)
	}
	got, err := s.ListLeaveRequests(ctx, "r1")
	require.NoError(t, err)
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("expected only r1's request, got %+v", got)
	}
}
