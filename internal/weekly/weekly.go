// Package weekly builds the seven-day schedule view named in §6.1/§6.2
// but never given its own algorithm section: a read-only projection of
// already-computed CallAssignments plus OR and clinic slots onto a
// calendar week, introducing no new scheduling rule.
package weekly

import (
	"time"

	"github.com/google/uuid"

	"github.com/neurosx/schedctl/internal/apperrors"
	"github.com/neurosx/schedctl/internal/calendar"
	"github.com/neurosx/schedctl/internal/domain"
)

// Build produces a WeeklySchedule covering the seven days starting at
// weekStart (inclusive), grouping the supplied assignments and slots
// by day. Residents is accepted for signature symmetry with the other
// engines' Generate entry points but is not consulted: every fact a
// WeeklyDay needs already lives in callAssignments, orSlots and
// clinicSlots.
func Build(
	residents []domain.Resident,
	weekStart time.Time,
	orSlots []domain.ORSlot,
	clinicSlots []domain.ClinicSlot,
	callAssignments []domain.CallAssignment,
	config domain.AppConfiguration,
) (domain.WeeklySchedule, error) {
	if len(residents) == 0 {
		return domain.WeeklySchedule{}, apperrors.New(apperrors.Validation, "at least one resident is required")
	}

	start := calendar.Civil(weekStart)
	days := make([]domain.WeeklyDay, 0, 7)
	for i := 0; i < 7; i++ {
		date := start.AddDate(0, 0, i)
		days = append(days, domain.WeeklyDay{
			Date:              date,
			OnCall:            callsOn(callAssignments, date),
			ORAssignments:     orSlotsOn(orSlots, date),
			ClinicAssignments: clinicSlotsOn(clinicSlots, date),
		})
	}

	return domain.WeeklySchedule{
		ID:          uuid.New().String(),
		WeekStart:   start,
		Days:        days,
		GeneratedAt: time.Now(),
	}, nil
}

func callsOn(assignments []domain.CallAssignment, date time.Time) []domain.CallAssignment {
	var out []domain.CallAssignment
	for _, a := range assignments {
		if calendar.SameDay(a.Date, date) {
			out = append(out, a)
		}
	}
	return out
}

func orSlotsOn(slots []domain.ORSlot, date time.Time) []domain.ORSlot {
	var out []domain.ORSlot
	for _, s := range slots {
		if calendar.SameDay(s.Date, date) {
			out = append(out, s)
		}
	}
	return out
}

func clinicSlotsOn(slots []domain.ClinicSlot, date time.Time) []domain.ClinicSlot {
	var out []domain.ClinicSlot
	for _, s := range slots {
		if calendar.SameDay(s.Date, date) {
			out = append(out, s)
		}
	}
	return out
}
