// Package yearly implements the Yearly Rotation Engine (spec §4.3):
// an 8-phase, strictly-ordered placement of rotation assignments over
// a 13×N grid, each phase writing only to cells left empty by the
// phases before it.
//
// The phase-construction shape — build a fixed ordered sequence of
// named steps from configuration, then run them in order, logging
// each — is grounded on the teacher's pkg/controller.NewReconciler,
// which builds an ordered strategy chain from config and runs it every
// iteration.
package yearly

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/neurosx/schedctl/internal/apperrors"
	"github.com/neurosx/schedctl/internal/calendar"
	"github.com/neurosx/schedctl/internal/domain"
)

// Engine generates one AcademicYear per invocation. It is a value,
// constructed per request and discarded after — never a singleton
// (spec §9).
type Engine struct {
	Config domain.AppConfiguration
}

// NewEngine builds an Engine bound to a fixed, read-once configuration.
func NewEngine(cfg domain.AppConfiguration) *Engine {
	return &Engine{Config: cfg}
}

// Generate produces the AcademicYear identified by academicYearID for
// the given residents and external rotators. The id is accepted
// explicitly rather than derived from any month (spec §9 open
// question).
func (e *Engine) Generate(residents []domain.Resident, rotators []domain.ExternalRotator, academicYearID string) (domain.AcademicYear, error) {
	firstYear, err := firstCalendarYear(academicYearID)
	if err != nil {
		return domain.AcademicYear{}, apperrors.Wrap(apperrors.Validation, "invalid academic year id", err)
	}
	if len(residents) == 0 {
		return domain.AcademicYear{}, apperrors.New(apperrors.Validation, "at least one resident is required")
	}

	ranges := calendar.AcademicYearBlocks(firstYear)
	blocks := make([]domain.RotationBlock, len(ranges))
	for i, r := range ranges {
		blocks[i] = domain.RotationBlock{
			BlockNumber: i + 1,
			StartDate:   r.Start,
			EndDate:     r.End,
			Assignments: make(map[string]domain.RotationAssignment, len(residents)),
		}
	}

	slog.Info("yearly engine: placing external rotators", "count", len(rotators))
	// Phase 0: external rotators consume no cells; kept for phase 7.

	slog.Info("yearly engine: mandatory off-service phase")
	placeMandatory(blocks, residents, e.Config.YearlySchedulerConfig.MandatoryRotations, domain.RotationMandatoryOff)

	slog.Info("yearly engine: exam leave phase")
	placeMandatory(blocks, residents, e.Config.YearlySchedulerConfig.ExamLeave, domain.RotationExamLeave)

	slog.Info("yearly engine: competitive holiday leave phase")
	placeHolidayLeave(blocks, residents)

	slog.Info("yearly engine: core neurosurgery fill phase")
	fillCoreNSX(blocks, residents)

	// Phase 5: flexible/elective is a reserved no-op — see placeFlexible.
	placeFlexible(blocks, residents)

	slog.Info("yearly engine: team balancing phase")
	balanceTeams(blocks)

	slog.Info("yearly engine: validation phase")
	violations := validate(blocks, rotators, e.Config.CoverageRules, residents)

	return domain.AcademicYear{
		ID:     academicYearID,
		Blocks: blocks,
		Metadata: domain.AcademicYearMetadata{
			GeneratedAt:        time.Now(),
			CoverageViolations: violations,
		},
	}, nil
}

func firstCalendarYear(academicYearID string) (int, error) {
	parts := strings.Split(academicYearID, "-")
	if len(parts) != 2 {
		return 0, fmt.Errorf("expected format YYYY-YYYY, got %q", academicYearID)
	}
	y, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid year in %q: %w", academicYearID, err)
	}
	return y, nil
}

// placeMandatory implements phases 1 and 2: for each rule, every
// resident whose PGY level matches gets the rule's rotation name in
// the named block, provided the cell is still empty.
func placeMandatory(blocks []domain.RotationBlock, residents []domain.Resident, rules []domain.MandatoryRotationRule, rt domain.RotationType) {
	for _, rule := range rules {
		block := blockByNumber(blocks, rule.BlockNumber)
		if block == nil {
			continue
		}
		for _, r := range sortedByID(residents) {
			if !pgyMatches(r.PGYLevel, rule.PGYLevels) {
				continue
			}
			if _, taken := block.Assignments[r.ID]; taken {
				continue
			}
			block.Assignments[r.ID] = domain.RotationAssignment{
				ResidentID:   r.ID,
				RotationName: rule.RotationName,
				RotationType: rt,
			}
		}
	}
}

func pgyMatches(level int, allowed []int) bool {
	for _, a := range allowed {
		if a == level {
			return true
		}
	}
	return false
}

// placeHolidayLeave implements phase 3: PGY>=4 seniors, sorted
// descending by PGY level (stable by id), are offered block 6
// (Christmas) on even index, block 7 (New Year) on odd index, skipped
// if the slot is already filled.
func placeHolidayLeave(blocks []domain.RotationBlock, residents []domain.Resident) {
	var seniors []domain.Resident
	for _, r := range residents {
		if r.PGYLevel >= 4 {
			seniors = append(seniors, r)
		}
	}
	sort.Slice(seniors, func(i, j int) bool {
		if seniors[i].PGYLevel != seniors[j].PGYLevel {
			return seniors[i].PGYLevel > seniors[j].PGYLevel
		}
		return seniors[i].ID < seniors[j].ID
	})

	for k, r := range seniors {
		blockNum := 6
		holidayType := "Christmas"
		if k%2 == 1 {
			blockNum = 7
			holidayType = "NewYear"
		}
		block := blockByNumber(blocks, blockNum)
		if block == nil {
			continue
		}
		if _, taken := block.Assignments[r.ID]; taken {
			continue
		}
		block.Assignments[r.ID] = domain.RotationAssignment{
			ResidentID:   r.ID,
			RotationName: "Holiday Leave",
			RotationType: domain.RotationHolidayLeave,
			HolidayType:  holidayType,
		}
	}
}

// fillCoreNSX implements phase 4: any cell still empty gets CORE_NSX.
func fillCoreNSX(blocks []domain.RotationBlock, residents []domain.Resident) {
	for bi := range blocks {
		for _, r := range sortedByID(residents) {
			if _, taken := blocks[bi].Assignments[r.ID]; taken {
				continue
			}
			blocks[bi].Assignments[r.ID] = domain.RotationAssignment{
				ResidentID:   r.ID,
				RotationName: "Core Neurosurgery",
				RotationType: domain.RotationCoreNSX,
			}
		}
	}
}

// placeFlexible implements phase 5: reserved. A future revision may
// let residents swap a CORE_NSX placement for a FLEXIBLE elective by
// preference; no such preference input exists yet, and phase 4 leaves
// no empty cells behind, so this phase is a deliberate no-op.
func placeFlexible(_ []domain.RotationBlock, _ []domain.Resident) {}

// balanceTeams implements phase 6: per block, untagged CORE_NSX rows
// are assigned to the minority team, ties broken by assigning Red
// first.
func balanceTeams(blocks []domain.RotationBlock) {
	for bi := range blocks {
		block := &blocks[bi]
		var red, blue int
		for _, a := range block.Assignments {
			if a.RotationType != domain.RotationCoreNSX {
				continue
			}
			switch a.Team {
			case domain.TeamRed:
				red++
			case domain.TeamBlue:
				blue++
			}
		}

		ids := make([]string, 0, len(block.Assignments))
		for id, a := range block.Assignments {
			if a.RotationType == domain.RotationCoreNSX && a.Team == domain.TeamNone {
				ids = append(ids, id)
			}
		}
		sort.Strings(ids)

		for _, id := range ids {
			a := block.Assignments[id]
			if red <= blue {
				a.Team = domain.TeamRed
				red++
			} else {
				a.Team = domain.TeamBlue
				blue++
			}
			block.Assignments[id] = a
		}
	}
}

// validate implements phase 7: evaluate every coverage rule against
// the block's CORE_NSX residents plus overlapping external rotators.
// Violations are recorded, never fatal.
func validate(blocks []domain.RotationBlock, rotators []domain.ExternalRotator, rules []domain.CoverageRule, residents []domain.Resident) []domain.CoverageViolation {
	byID := make(map[string]domain.Resident, len(residents))
	for _, r := range residents {
		byID[r.ID] = r
	}

	var violations []domain.CoverageViolation
	for _, rule := range rules {
		block := blockByNumber(blocks, rule.RotationBlock)
		if block == nil {
			continue
		}

		count := 0
		for id, a := range block.Assignments {
			if a.RotationType != domain.RotationCoreNSX {
				continue
			}
			r, ok := byID[id]
			if !ok {
				continue
			}
			if !matchesCoverageRule(r, rule) {
				continue
			}
			count++
		}
		for _, ext := range rotators {
			if ext.Overlaps(block.StartDate, block.EndDate) {
				count++
			}
		}

		if count < rule.MinCount {
			name := rule.Name
			if name == "" {
				name = rule.Kind
			}
			violations = append(violations, domain.CoverageViolation{
				BlockNumber: rule.RotationBlock,
				RuleName:    name,
				Required:    rule.MinCount,
				Actual:      count,
			})
		}
	}
	return violations
}

func matchesCoverageRule(r domain.Resident, rule domain.CoverageRule) bool {
	switch rule.Kind {
	case "SPECIALTY":
		return r.Specialty == rule.Specialty
	case "SPECIALTY_PGY_MIN":
		return r.Specialty == rule.Specialty && r.PGYLevel >= rule.MinPgyLevel
	default:
		return false
	}
}

func blockByNumber(blocks []domain.RotationBlock, n int) *domain.RotationBlock {
	for i := range blocks {
		if blocks[i].BlockNumber == n {
			return &blocks[i]
		}
	}
	return nil
}

func sortedByID(residents []domain.Resident) []domain.Resident {
	out := make([]domain.Resident, len(residents))
	copy(out, residents)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// NewAcademicYearID generates a fallback id (callers should normally
// supply one explicitly, per spec §9) in the plain "YYYY-YYYY" shape,
// with no suffix.
func NewAcademicYearID(firstCalendarYear int) string {
	return fmt.Sprintf("%d-%d", firstCalendarYear, firstCalendarYear+1)
}
