// Package store defines the persistence contract the scheduling
// engines are driven against (SPEC_FULL §10): one narrow interface per
// stored collection, taking and returning domain types only, never raw
// documents. The document store itself is out of scope; this package
// only ships the contract plus an in-memory fake used by the CLI for
// local runs and by this package's tests as the seam a real store
// would occupy — grounded on the teacher's pkg/kubeclient.Get
// (a single real constructor behind an interface boundary) paired with
// its test suite's convention of substituting a fake in place of a
// live cluster.
package store

import (
	"context"

	"github.com/neurosx/schedctl/internal/domain"
)

// ResidentStore holds the resident roster.
type ResidentStore interface {
	Get(ctx context.Context, id string) (domain.Resident, error)
	List(ctx context.Context) ([]domain.Resident, error)
	Put(ctx context.Context, r domain.Resident) error
}

// ConfigurationStore holds the single active AppConfiguration.
type ConfigurationStore interface {
	GetConfiguration(ctx context.Context) (domain.AppConfiguration, error)
	PutConfiguration(ctx context.Context, cfg domain.AppConfiguration) error
}

// AcademicYearStore holds generated AcademicYears, keyed by ID.
type AcademicYearStore interface {
	GetAcademicYear(ctx context.Context, id string) (domain.AcademicYear, error)
	PutAcademicYear(ctx context.Context, ay domain.AcademicYear) error
}

// MonthlyScheduleStore holds one MonthlySchedule per (academicYearID,
// year, month). PutMonthlySchedule enforces the
// already-exists/forceRegenerate contract of §6.2.
type MonthlyScheduleStore interface {
	GetMonthlySchedule(ctx context.Context, academicYearID string, year, month int) (domain.MonthlySchedule, error)
	PutMonthlySchedule(ctx context.Context, sched domain.MonthlySchedule, forceRegenerate bool) error
}

// WeeklyScheduleStore holds one WeeklySchedule per week-start date.
type WeeklyScheduleStore interface {
	GetWeeklySchedule(ctx context.Context, weekStart string) (domain.WeeklySchedule, error)
	PutWeeklySchedule(ctx context.Context, sched domain.WeeklySchedule) error
}

// LeaveRequestStore holds LeaveRequests and their lifecycle status.
type LeaveRequestStore interface {
	GetLeaveRequest(ctx context.Context, id string) (domain.LeaveRequest, error)
	ListLeaveRequests(ctx context.Context, residentID string) ([]domain.LeaveRequest, error)
	PutLeaveRequest(ctx context.Context, req domain.LeaveRequest) error
	UpdateLeaveRequestStatus(ctx context.Context, id string, status domain.LeaveStatus) error
}

// LeaveAnalysisReportStore holds write-once LeaveAnalysisReports.
type LeaveAnalysisReportStore interface {
	GetLeaveAnalysisReport(ctx context.Context, id string) (domain.LeaveAnalysisReport, error)
	PutLeaveAnalysisReport(ctx context.Context, report domain.LeaveAnalysisReport) error
}
