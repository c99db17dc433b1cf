package domain_test

import (
	"testing"
	"time"

	"github.com/neurosx/schedctl/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCallType_Points(t *testing.T) {
	cases := []struct {
		t    domain.CallType
		want int
	}{
		{domain.CallNight, 1},
		{domain.CallWeekend, 2},
		{domain.CallHoliday, 3},
		{domain.CallPostCall, 0},
		{domain.CallNone, 0},
	}
	for _, c := range cases {
		if got := c.t.Points(); got != c.want {
			t.Errorf("%s.Points() = %d, want %d", c.t, got, c.want)
		}
	}
}

func TestRotationBlock_Contains(t *testing.T) {
	b := domain.RotationBlock{StartDate: date(2026, 7, 1), EndDate: date(2026, 7, 28)}

	if !b.Contains(date(2026, 7, 1)) {
		t.Error("expected start date to be contained")
	}
	if !b.Contains(date(2026, 7, 28)) {
		t.Error("expected end date to be contained")
	}
	if b.Contains(date(2026, 7, 29)) {
		t.Error("expected day after end date to not be contained")
	}
	if b.Contains(date(2026, 6, 30)) {
		t.Error("expected day before start date to not be contained")
	}
}

func TestAcademicYear_BlockContaining(t *testing.T) {
	ay := domain.AcademicYear{Blocks: []domain.RotationBlock{
		{BlockNumber: 1, StartDate: date(2026, 7, 1), EndDate: date(2026, 7, 28)},
		{BlockNumber: 2, StartDate: date(2026, 7, 29), EndDate: date(2026, 8, 25)},
	}}

	b, ok := ay.BlockContaining(date(2026, 8, 1))
	if !ok || b.BlockNumber != 2 {
		t.Fatalf("expected block 2, got %+v (ok=%v)", b, ok)
	}

	_, ok = ay.BlockContaining(date(2027, 1, 1))
	if ok {
		t.Error("expected no block to contain a date outside the academic year")
	}
}

func TestExternalRotator_Overlaps(t *testing.T) {
	r := domain.ExternalRotator{StartDate: date(2026, 7, 10), EndDate: date(2026, 7, 20)}

	if !r.Overlaps(date(2026, 7, 1), date(2026, 7, 11)) {
		t.Error("expected overlap at the start of the rotator window")
	}
	if r.Overlaps(date(2026, 8, 1), date(2026, 8, 10)) {
		t.Error("expected no overlap for a disjoint range")
	}
}

func TestLeaveRequest_Days(t *testing.T) {
	cases := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{"single day", date(2026, 3, 1), date(2026, 3, 1), 1},
		{"one week", date(2026, 3, 1), date(2026, 3, 7), 7},
		{"spans month boundary", date(2026, 2, 27), date(2026, 3, 2), 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l := domain.LeaveRequest{StartDate: c.start, EndDate: c.end}
			if got := l.Days(); got != c.want {
				t.Errorf("Days() = %d, want %d", got, c.want)
			}
		})
	}
}

func TestPolicyCompliance_Compliant(t *testing.T) {
	if !(domain.PolicyCompliance{}).Compliant() {
		t.Error("expected zero-value PolicyCompliance to be compliant")
	}
	if (domain.PolicyCompliance{Violations: []string{"insufficient notice"}}).Compliant() {
		t.Error("expected a PolicyCompliance with violations to be non-compliant")
	}
}
