// Package domain holds the entity types and closed enumerations shared
// by every scheduling engine: residents, rotations, calls, leave
// requests and the configuration they are evaluated against.
//
// Nothing here has behavior beyond small accessor helpers — the
// engines in internal/rules, internal/scoring, internal/yearly,
// internal/monthly and internal/leave own the rules.
package domain

import "time"

// RotationType is the closed enumeration of rotation assignment kinds.
type RotationType string

const (
	RotationCoreNSX       RotationType = "CORE_NSX"
	RotationMandatoryOff  RotationType = "MANDATORY_OFF_SERVICE"
	RotationExamLeave     RotationType = "EXAM_LEAVE"
	RotationHolidayLeave  RotationType = "HOLIDAY_LEAVE"
	RotationFlexible      RotationType = "FLEXIBLE"
)

// Team is a rotation team tag.
type Team string

const (
	TeamNone Team = ""
	TeamRed  Team = "Red"
	TeamBlue Team = "Blue"
)

// CallType is the closed enumeration of call assignment kinds.
type CallType string

const (
	CallNone     CallType = ""
	CallNight    CallType = "Night"
	CallWeekend  CallType = "Weekend"
	CallHoliday  CallType = "Holiday"
	CallPostCall CallType = "PostCall"
)

// Points returns the point value of a call type (§4.2).
func (c CallType) Points() int {
	switch c {
	case CallNight:
		return 1
	case CallWeekend:
		return 2
	case CallHoliday:
		return 3
	default:
		return 0
	}
}

// CallAssignmentStatus is the lifecycle status of a CallAssignment.
type CallAssignmentStatus string

const (
	CallStatusScheduled CallAssignmentStatus = "Scheduled"
	CallStatusPostCall  CallAssignmentStatus = "PostCall"
)

// LeaveType enumerates the kinds of leave a resident can request.
type LeaveType string

const (
	LeaveVacation     LeaveType = "Vacation"
	LeaveSick         LeaveType = "Sick"
	LeaveConference   LeaveType = "Conference"
	LeaveCompassionate LeaveType = "Compassionate"
	LeaveOther        LeaveType = "Other"
)

// LeaveStatus is the closed lifecycle enumeration for a LeaveRequest.
type LeaveStatus string

const (
	LeaveStatusPendingAnalysis  LeaveStatus = "Pending Analysis"
	LeaveStatusPendingApproval  LeaveStatus = "Pending Approval"
	LeaveStatusApproved         LeaveStatus = "Approved"
	LeaveStatusDenied           LeaveStatus = "Denied"
	LeaveStatusFlaggedForReview LeaveStatus = "Flagged for Review"
	LeaveStatusAnalysisFailed   LeaveStatus = "Analysis Failed"
)

// RiskLevel is the closed coverage-risk enumeration (§4.5).
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Recommendation is the closed leave-analysis outcome enumeration.
type Recommendation string

const (
	RecommendApprove           Recommendation = "Approve"
	RecommendFlaggedForReview  Recommendation = "Flagged for Review"
	RecommendDeny              Recommendation = "Deny"
)

// StaffingLevel governs whether the PGY target caps calls in addition
// to the PARO hard cap (Normal), or whether only PARO applies (Shortage).
type StaffingLevel string

const (
	StaffingNormal   StaffingLevel = "Normal"
	StaffingShortage StaffingLevel = "Shortage"
)

// ConflictType enumerates the kinds of schedule conflict the Leave
// Analyzer can surface.
type ConflictType string

const (
	ConflictCall    ConflictType = "Call"
	ConflictOR      ConflictType = "OR"
	ConflictClinic  ConflictType = "Clinic"
)

// ConflictSeverity is the closed severity enumeration for a conflict.
type ConflictSeverity string

const (
	SeverityHigh   ConflictSeverity = "High"
	SeverityMedium ConflictSeverity = "Medium"
)

// Resident is immutable for the duration of a scheduling run.
type Resident struct {
	ID                string
	Name              string
	PGYLevel          int
	Specialty         string
	OnService         bool
	IsChief           bool
	CallExempt        bool
	AnnualLeaveQuota  int
}

// ExternalRotator counts only as coverage augmentation; it consumes no
// rotation-grid cell.
type ExternalRotator struct {
	ID        string
	StartDate time.Time
	EndDate   time.Time
}

// Overlaps reports whether the rotator is present for any part of [start, end].
func (e ExternalRotator) Overlaps(start, end time.Time) bool {
	return !e.EndDate.Before(start) && !e.StartDate.After(end)
}

// RotationAssignment is one resident's placement for a single block.
type RotationAssignment struct {
	ResidentID   string
	RotationName string
	RotationType RotationType
	Team         Team
	HolidayType  string
}

// RotationBlock is one of the 13 fixed 28-day blocks of an academic year.
type RotationBlock struct {
	BlockNumber int
	StartDate   time.Time
	EndDate     time.Time
	Assignments map[string]RotationAssignment // keyed by ResidentID
}

// Contains reports whether d falls within [StartDate, EndDate] inclusive.
func (b RotationBlock) Contains(d time.Time) bool {
	day := civilDate(d)
	return !day.Before(civilDate(b.StartDate)) && !day.After(civilDate(b.EndDate))
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AcademicYear is produced once by the Yearly Rotation Engine and never
// mutated after write.
type AcademicYear struct {
	ID       string // "YYYY-YYYY"
	Blocks   []RotationBlock
	Metadata AcademicYearMetadata
}

// AcademicYearMetadata carries generation diagnostics, including
// non-fatal coverage violations (§4.3 step 7).
type AcademicYearMetadata struct {
	GeneratedAt         time.Time
	CoverageViolations  []CoverageViolation
}

// CoverageViolation records a single failed coverage rule evaluation.
type CoverageViolation struct {
	BlockNumber int
	RuleName    string
	Required    int
	Actual      int
}

// BlockContaining returns the block whose date range contains d, if any.
func (ay AcademicYear) BlockContaining(d time.Time) (RotationBlock, bool) {
	for _, b := range ay.Blocks {
		if b.Contains(d) {
			return b, true
		}
	}
	return RotationBlock{}, false
}

// CallAssignment is one scheduled (or post-call) duty for one resident
// on one date.
type CallAssignment struct {
	ID         string
	ResidentID string
	Date       time.Time
	Type       CallType
	Points     int
	IsHoliday  bool
	Team       Team
	Status     CallAssignmentStatus
}

// LeaveRequest is created externally with status Pending Analysis and
// transitioned exactly once by the Leave-Request Analyzer.
type LeaveRequest struct {
	ID               string
	ResidentID       string
	Type             LeaveType
	Status           LeaveStatus
	StartDate        time.Time
	EndDate           time.Time
	RequestedAt       time.Time
	AnalysisReportID string
}

// Days returns the inclusive day count of the request.
func (l LeaveRequest) Days() int {
	return inclusiveDays(l.StartDate, l.EndDate)
}

func inclusiveDays(start, end time.Time) int {
	s, e := civilDate(start), civilDate(end)
	return int(e.Sub(s).Hours()/24) + 1
}

// ScheduleConflict is a single detected conflict against an existing
// call/OR/clinic assignment.
type ScheduleConflict struct {
	Type        ConflictType
	Date        time.Time
	Description string
	Severity    ConflictSeverity
}

// CoverageImpact is the coverage-risk component of a leave analysis.
type CoverageImpact struct {
	TotalResidents      int
	OverlappingLeave    int
	AvailableResidents  int
	Ratio               float64
	Risk                RiskLevel
}

// FairnessAssessment is the fairness component of a leave analysis.
type FairnessAssessment struct {
	RecentDaysOff   int
	HistoricalRate  float64
	PeerComparison  float64
	Score           int
}

// PolicyCompliance is the policy-violation component of a leave analysis.
type PolicyCompliance struct {
	Violations []string
}

// Compliant reports whether no policy violations were recorded.
func (p PolicyCompliance) Compliant() bool {
	return len(p.Violations) == 0
}

// AlternativeDates is a candidate disjoint window offered as an
// alternative when the recommendation is not Approve.
type AlternativeDates struct {
	StartDate time.Time
	EndDate   time.Time
	Ratio     float64
}

// LeaveAnalysisReport is write-once.
type LeaveAnalysisReport struct {
	ID                string
	RequestID         string
	Coverage          CoverageImpact
	Fairness          FairnessAssessment
	Conflicts         []ScheduleConflict
	AlternativeDates  []AlternativeDates
	Recommendation    Recommendation
	DenialJustification string
	GeneratedAt       time.Time
}

// MonthlySchedule is one Monthly Call Scheduler run, keyed by the
// calendar month it covers. Month is 0-indexed (0=January), matching
// the generate-monthly RPC contract.
type MonthlySchedule struct {
	ID             string
	AcademicYearID string
	Year           int
	Month          int
	Assignments    []CallAssignment
	TotalsByType   map[CallType]int
	CoverageRate   float64
	Gini           float64
	UnfilledSlots  int
	GeneratedAt    time.Time
}

// ORSlot is one operating-room block occupant on a given date, named
// by the resident assigned to cover it.
type ORSlot struct {
	Date       time.Time
	ResidentID string
	RoomName   string
}

// ClinicSlot is one outpatient clinic block occupant on a given date.
type ClinicSlot struct {
	Date       time.Time
	ResidentID string
	ClinicName string
}

// WeeklyDay is one read-only day projection within a WeeklySchedule.
type WeeklyDay struct {
	Date           time.Time
	OnCall         []CallAssignment
	ORAssignments  []ORSlot
	ClinicAssignments []ClinicSlot
}

// WeeklySchedule is the seven-day projection produced by the weekly
// schedule view (SPEC_FULL §12). It introduces no new domain rule — it
// only re-surfaces CallAssignments, ORSlots and ClinicSlots already
// produced elsewhere, grouped by day.
type WeeklySchedule struct {
	ID          string
	WeekStart   time.Time
	Days        []WeeklyDay
	GeneratedAt time.Time
}
