package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/neurosx/schedctl/internal/apperrors"
	"github.com/neurosx/schedctl/internal/domain"
)

// MemoryStore is an in-process fake implementing every store interface
// in this package. It is not safe to share across processes; it exists
// for local/demo CLI runs and as the seam this package's tests
// substitute for a real document store.
type MemoryStore struct {
	mu sync.Mutex

	residents    map[string]domain.Resident
	config       *domain.AppConfiguration
	academicYear map[string]domain.AcademicYear
	monthly      map[string]domain.MonthlySchedule
	weekly       map[string]domain.WeeklySchedule
	leaveReqs    map[string]domain.LeaveRequest
	reports      map[string]domain.LeaveAnalysisReport
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		residents:    make(map[string]domain.Resident),
		academicYear: make(map[string]domain.AcademicYear),
		monthly:      make(map[string]domain.MonthlySchedule),
		weekly:       make(map[string]domain.WeeklySchedule),
		leaveReqs:    make(map[string]domain.LeaveRequest),
		reports:      make(map[string]domain.LeaveAnalysisReport),
	}
}

// --- ResidentStore ---

func (m *MemoryStore) Get(ctx context.Context, id string) (domain.Resident, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.residents[id]
	if !ok {
		return domain.Resident{}, apperrors.New(apperrors.NotFound, fmt.Sprintf("resident %q not found", id))
	}
	return r, nil
}

func (m *MemoryStore) List(ctx context.Context) ([]domain.Resident, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Resident, 0, len(m.residents))
	for _, r := range m.residents {
		out = append(out, r)
	}
	return out, nil
}

func (m *MemoryStore) Put(ctx context.Context, r domain.Resident) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.residents[r.ID] = r
	return nil
}

// --- ConfigurationStore ---

func (m *MemoryStore) GetConfiguration(ctx context.Context) (domain.AppConfiguration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.config == nil {
		return domain.AppConfiguration{}, apperrors.New(apperrors.NotFound, "no configuration loaded")
	}
	return *m.config, nil
}

func (m *MemoryStore) PutConfiguration(ctx context.Context, cfg domain.AppConfiguration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config = &cfg
	return nil
}

// --- AcademicYearStore ---

func (m *MemoryStore) GetAcademicYear(ctx context.Context, id string) (domain.AcademicYear, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ay, ok := m.academicYear[id]
	if !ok {
		return domain.AcademicYear{}, apperrors.New(apperrors.NotFound, fmt.Sprintf("academic year %q not found", id))
	}
	return ay, nil
}

func (m *MemoryStore) PutAcademicYear(ctx context.Context, ay domain.AcademicYear) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.academicYear[ay.ID] = ay
	return nil
}

// --- MonthlyScheduleStore ---

func monthlyKey(academicYearID string, year, month int) string {
	return fmt.Sprintf("%s/%d/%d", academicYearID, year, month)
}

func (m *MemoryStore) GetMonthlySchedule(ctx context.Context, academicYearID string, year, month int) (domain.MonthlySchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.monthly[monthlyKey(academicYearID, year, month)]
	if !ok {
		return domain.MonthlySchedule{}, apperrors.New(apperrors.NotFound, "monthly schedule not found")
	}
	return s, nil
}

// PutMonthlySchedule enforces the already-exists/forceRegenerate
// contract of §6.2: a schedule already on file is only overwritten
// when forceRegenerate is true, otherwise the write is rejected as a
// conflict so the caller can replay the existing schedule instead.
func (m *MemoryStore) PutMonthlySchedule(ctx context.Context, sched domain.MonthlySchedule, forceRegenerate bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := monthlyKey(sched.AcademicYearID, sched.Year, sched.Month)
	if _, exists := m.monthly[key]; exists && !forceRegenerate {
		return apperrors.New(apperrors.Conflict, "monthly schedule already exists; pass forceRegenerate to replace it")
	}
	m.monthly[key] = sched
	return nil
}

// ListMonthlyAssignments returns every CallAssignment already recorded
// for academicYearID across every month generated so far, used to seed
// a new month's running call/weekend counters so per-resident caps are
// enforced across the whole academic year rather than reset each call
// to generate-monthly.
func (m *MemoryStore) ListMonthlyAssignments(ctx context.Context, academicYearID string) ([]domain.CallAssignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.CallAssignment
	for _, sched := range m.monthly {
		if sched.AcademicYearID == academicYearID {
			out = append(out, sched.Assignments...)
		}
	}
	return out, nil
}

// --- WeeklyScheduleStore ---

func (m *MemoryStore) GetWeeklySchedule(ctx context.Context, weekStart string) (domain.WeeklySchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.weekly[weekStart]
	if !ok {
		return domain.WeeklySchedule{}, apperrors.New(apperrors.NotFound, "weekly schedule not found")
	}
	return s, nil
}

func (m *MemoryStore) PutWeeklySchedule(ctx context.Context, sched domain.WeeklySchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.weekly[sched.WeekStart.Format("2006-01-02")] = sched
	return nil
}

// --- LeaveRequestStore ---

func (m *MemoryStore) GetLeaveRequest(ctx context.Context, id string) (domain.LeaveRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.leaveReqs[id]
	if !ok {
		return domain.LeaveRequest{}, apperrors.New(apperrors.NotFound, fmt.Sprintf("leave request %q not found", id))
	}
	return r, nil
}

func (m *MemoryStore) ListLeaveRequests(ctx context.Context, residentID string) ([]domain.LeaveRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.LeaveRequest
	for _, r := range m.leaveReqs {
		if residentID == "" || r.ResidentID == residentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MemoryStore) PutLeaveRequest(ctx context.Context, req domain.LeaveRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaveReqs[req.ID] = req
	return nil
}

func (m *MemoryStore) UpdateLeaveRequestStatus(ctx context.Context, id string, status domain.LeaveStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.leaveReqs[id]
	if !ok {
		return apperrors.New(apperrors.NotFound, fmt.Sprintf("leave request %q not found", id))
	}
	req.Status = status
	m.leaveReqs[id] = req
	return nil
}

// --- LeaveAnalysisReportStore ---

func (m *MemoryStore) GetLeaveAnalysisReport(ctx context.Context, id string) (domain.LeaveAnalysisReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reports[id]
	if !ok {
		return domain.LeaveAnalysisReport{}, apperrors.New(apperrors.NotFound, fmt.Sprintf("analysis report %q not found", id))
	}
	return r, nil
}

// PutLeaveAnalysisReport rejects overwriting an existing report: a
// LeaveAnalysisReport is write-once (§6.1).
func (m *MemoryStore) PutLeaveAnalysisReport(ctx context.Context, report domain.LeaveAnalysisReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.reports[report.ID]; exists {
		return apperrors.New(apperrors.Conflict, "leave analysis report is write-once and already exists")
	}
	m.reports[report.ID] = report
	return nil
}

// CommitAnalysisResult atomically persists a completed analysis report
// and the originating request's resulting status, standing in for the
// "atomic transaction" of §5: a reader must never observe the report
// without the status update, or vice versa.
func (m *MemoryStore) CommitAnalysisResult(ctx context.Context, report domain.LeaveAnalysisReport, requestID string, status domain.LeaveStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	req, ok := m.leaveReqs[requestID]
	if !ok {
		return apperrors.New(apperrors.NotFound, fmt.Sprintf("leave request %q not found", requestID))
	}
	if _, exists := m.reports[report.ID]; exists {
		return apperrors.New(apperrors.Conflict, "leave analysis report is write-once and already exists")
	}

	m.reports[report.ID] = report
	req.Status = status
	req.AnalysisReportID = report.ID
	m.leaveReqs[requestID] = req
	return nil
}
