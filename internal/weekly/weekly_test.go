package weekly_test

import (
	"testing"
	"time"

	"github.com/neurosx/schedctl/internal/apperrors"
	"github.com/neurosx/schedctl/internal/domain"
	"github.com/neurosx/schedctl/internal/weekly"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuild_RejectsEmptyResidents(t *testing.T) {
	_, err := weekly.Build(nil, date(2026, 7, 6), nil, nil, nil, domain.AppConfiguration{})
	if apperrors.KindOf(err) != apperrors.Validation {
		t.Errorf("expected Validation kind for an empty resident list, got %v", apperrors.KindOf(err))
	}
}

func TestBuild_ProducesSevenDaysStartingAtWeekStart(t *testing.T) {
	residents := []domain.Resident{{ID: "r1"}}
	sched, err := weekly.Build(residents, date(2026, 7, 6), nil, nil, nil, domain.AppConfiguration{})
	require.NoError(t, err)
	if len(sched.Days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(sched.Days))
	}
	if !sched.Days[0].Date.Equal(date(2026, 7, 6)) {
		t.Errorf("expected the first day to be the week start, got %v", sched.Days[0].Date)
	}
	if !sched.Days[6].Date.Equal(date(2026, 7, 12)) {
		t.Errorf("expected the last day to be 6 days after the week start, got %v", sched.Days[6].Date)
	}
}

func TestBuild_GroupsEachFactOnItsOwnDay(t *testing.T) {
	residents := []domain.Resident{{ID: "r1"}}
	calls := []domain.CallAssignment{
		{ResidentID: "r1", Date: date(2026, 7, 6)},
		{ResidentID: "r1", Date: date(2026, 7, 9)},
	}
	orSlots := []domain.ORSlot{{ResidentID: "r1", RoomName: "OR-1", Date: date(2026, 7, 7)}}
	clinicSlots := []domain.ClinicSlot{{ResidentID: "r1", ClinicName: "Spine Clinic", Date: date(2026, 7, 8)}}

	sched, err := weekly.Build(residents, date(2026, 7, 6), orSlots, clinicSlots, calls, domain.AppConfiguration{})
	require.NoError(t, err)

	byDate := map[string]domain.WeeklyDay{}
	for _, d := range sched.Days {
		byDate[d.Date.Format("2006-01-02")] = d
	}

	if len(byDate["2026-07-06"].OnCall) != 1 {
		t.Errorf("expected a call assignment on Jul 6, got %+v", byDate["2026-07-06"])
	}
	if len(byDate["2026-07-07"].ORAssignments) != 1 {
		t.Errorf("expected an OR slot on Jul 7, got %+v", byDate["2026-07-07"])
	}
	if len(byDate["2026-07-08"].ClinicAssignments) != 1 {
		t.Errorf("expected a clinic slot on Jul 8, got %+v", byDate["2026-07-08"])
	}
	if len(byDate["2026-07-09"].OnCall) != 1 {
		t.Errorf("expected a call assignment on Jul 9, got %+v", byDate["2026-07-09"])
	}
	if len(byDate["2026-07-10"].OnCall) != 0 {
		t.Errorf("expected no call assignment on Jul 10, got %+v", byDate["2026-07-10"])
	}
}
