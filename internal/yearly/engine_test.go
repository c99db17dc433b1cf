package yearly_test

import (
	"testing"

	"github.com/neurosx/schedctl/internal/apperrors"
	"github.com/neurosx/schedctl/internal/domain"
	"github.com/neurosx/schedctl/internal/yearly"
	"github.com/stretchr/testify/require"
)

func residents(n int, pgy int) []domain.Resident {
	out := make([]domain.Resident, n)
	for i := range out {
		out[i] = domain.Resident{ID: string(rune('a' + i)), PGYLevel: pgy, OnService: true, Specialty: "Neurosurgery"}
	}
	return out
}

func TestGenerate_RejectsInvalidAcademicYearID(t *testing.T) {
	e := yearly.NewEngine(domain.AppConfiguration{})
	_, err := e.Generate(residents(1, 3), nil, "not-a-valid-id")
	require.Error(t, err, "expected an error for a malformed academic year id")
	if apperrors.KindOf(err) != apperrors.Validation {
		t.Errorf("expected Validation kind, got %v", apperrors.KindOf(err))
	}
}

func TestGenerate_RejectsEmptyResidents(t *testing.T) {
	e := yearly.NewEngine(domain.AppConfiguration{})
	_, err := e.Generate(nil, nil, "2026-2027")
	require.Error(t, err, "expected an error for an empty resident list")
}

func TestGenerate_ProducesThirteenBlocks(t *testing.T) {
	e := yearly.NewEngine(domain.AppConfiguration{})
	ay, err := e.Generate(residents(4, 3), nil, "2026-2027")
	require.NoError(t, err)
	if len(ay.Blocks) != 13 {
		t.Fatalf("expected 13 blocks, got %d", len(ay.Blocks))
	}
}

func TestGenerate_EveryResidentAssignedInEveryBlock(t *testing.T) {
	e := yearly.NewEngine(domain.AppConfiguration{})
	rs := residents(5, 3)
	ay, err := e.Generate(rs, nil, "2026-2027")
	require.NoError(t, err)
	for _, b := range ay.Blocks {
		if len(b.Assignments) != len(rs) {
			t.Errorf("block %d: expected %d assignments, got %d", b.BlockNumber, len(rs), len(b.Assignments))
		}
		for _, r := range rs {
			if _, ok := b.Assignments[r.ID]; !ok {
				t.Errorf("block %d: resident %s has no assignment", b.BlockNumber, r.ID)
			}
		}
	}
}

func TestGenerate_MandatoryRotationHonored(t *testing.T) {
	cfg := domain.AppConfiguration{
		YearlySchedulerConfig: domain.YearlySchedulerConfig{
			MandatoryRotations: []domain.MandatoryRotationRule{
				{BlockNumber: 1, PGYLevels: []int{1}, RotationName: "Neuro ICU"},
			},
		},
	}
	e := yearly.NewEngine(cfg)
	rs := residents(2, 1)
	ay, err := e.Generate(rs, nil, "2026-2027")
	require.NoError(t, err)
	block := ay.Blocks[0]
	for _, r := range rs {
		a := block.Assignments[r.ID]
		if a.RotationType != domain.RotationMandatoryOff || a.RotationName != "Neuro ICU" {
			t.Errorf("expected resident %s to be placed on the mandatory rotation, got %+v", r.ID, a)
		}
	}
}

func TestGenerate_HolidayLeaveOnlyForSeniors(t *testing.T) {
	e := yearly.NewEngine(domain.AppConfiguration{})
	rs := append(residents(2, 2), domain.Resident{ID: "senior", PGYLevel: 5, OnService: true})
	ay, err := e.Generate(rs, nil, "2026-2027")
	require.NoError(t, err)

	foundHolidayLeave := false
	for _, b := range ay.Blocks {
		if b.BlockNumber != 6 && b.BlockNumber != 7 {
			continue
		}
		if a, ok := b.Assignments["senior"]; ok && a.RotationType == domain.RotationHolidayLeave {
			foundHolidayLeave = true
		}
		for _, r := range rs {
			if r.PGYLevel >= 4 {
				continue
			}
			if a, ok := b.Assignments[r.ID]; ok && a.RotationType == domain.RotationHolidayLeave {
				t.Errorf("resident %s (PGY %d) should not receive holiday leave", r.ID, r.PGYLevel)
			}
		}
	}
	if !foundHolidayLeave {
		t.Error("expected the senior resident to receive holiday leave in block 6 or 7")
	}
}

func TestGenerate_TeamsBalancedPerBlock(t *testing.T) {
	e := yearly.NewEngine(domain.AppConfiguration{})
	rs := residents(6, 3)
	ay, err := e.Generate(rs, nil, "2026-2027")
	require.NoError(t, err)
	for _, b := range ay.Blocks {
		var red, blue int
		for _, a := range b.Assignments {
			switch a.Team {
			case domain.TeamRed:
				red++
			case domain.TeamBlue:
				blue++
			}
		}
		diff := red - blue
		if diff < -1 || diff > 1 {
			t.Errorf("block %d: unbalanced teams red=%d blue=%d", b.BlockNumber, red, blue)
		}
	}
}

func TestGenerate_CoverageViolationRecordedWhenUnderstaffed(t *testing.T) {
	cfg := domain.AppConfiguration{
		CoverageRules: []domain.CoverageRule{
			{RotationBlock: 1, Kind: "SPECIALTY", Specialty: "Neurosurgery", MinCount: 10, Name: "min-nsx-coverage"},
		},
	}
	e := yearly.NewEngine(cfg)
	ay, err := e.Generate(residents(2, 3), nil, "2026-2027")
	require.NoError(t, err)
	if len(ay.Metadata.CoverageViolations) == 0 {
		t.Fatal("expected a coverage violation when required staffing exceeds the roster")
	}
	v := ay.Metadata.CoverageViolations[0]
	if v.RuleName != "min-nsx-coverage" || v.Required != 10 {
		t.Errorf("unexpected violation: %+v", v)
	}
}

func TestNewAcademicYearID(t *testing.T) {
	if got := yearly.NewAcademicYearID(2026); got != "2026-2027" {
		t.Errorf("NewAcademicYearID(2026) = %q, want %q", got, "2026-2027")
	}
}
