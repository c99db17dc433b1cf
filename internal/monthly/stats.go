package monthly

import (
	"sort"
	"sync"
	"time"

	"github.com/neurosx/schedctl/internal/domain"
)

// CallStats is the per-resident running tally the Rule Evaluator and
// Scorer read from and the scheduler writes to as assignments are
// made. Its mutex-guarded-map-of-timestamps shape is grounded on the
// teacher's pkg/nodeops.NodeStateTracker, which tracks per-node
// cooldown timestamps behind a sync.Mutex in exactly this way — there
// the cooldown key is a shutdown/boot timestamp, here it is the
// resident's call history.
type CallStats struct {
	mu            sync.Mutex
	totalCalls    map[string]int
	weekendCalls  map[string]int
	holidayCalls  map[string]int
	nightCalls    map[string]int
	points        map[string]int
	lastCallDate  map[string]time.Time
	callDates     map[string][]time.Time
}

// NewCallStats builds an empty tracker and seeds it from any
// existingAssignments passed into a run (spec §4.4 step 1).
func NewCallStats(existing []domain.CallAssignment) *CallStats {
	s := &CallStats{
		totalCalls:   make(map[string]int),
		weekendCalls: make(map[string]int),
		holidayCalls: make(map[string]int),
		nightCalls:   make(map[string]int),
		points:       make(map[string]int),
		lastCallDate: make(map[string]time.Time),
		callDates:    make(map[string][]time.Time),
	}
	for _, a := range existing {
		if a.Status == domain.CallStatusPostCall {
			continue
		}
		s.record(a.ResidentID, a.Type, a.Date, a.Points)
	}
	return s
}

// Record updates the tracker after a CallAssignment (other than
// PostCall, which carries 0 points and does not count toward any cap).
func (s *CallStats) Record(a domain.CallAssignment) {
	if a.Status == domain.CallStatusPostCall {
		return
	}
	s.record(a.ResidentID, a.Type, a.Date, a.Points)
}

func (s *CallStats) record(residentID string, t domain.CallType, date time.Time, points int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.totalCalls[residentID]++
	s.points[residentID] += points
	switch t {
	case domain.CallWeekend:
		s.weekendCalls[residentID]++
	case domain.CallHoliday:
		s.holidayCalls[residentID]++
	case domain.CallNight:
		s.nightCalls[residentID]++
	}

	if cur, ok := s.lastCallDate[residentID]; !ok || date.After(cur) {
		s.lastCallDate[residentID] = date
	}
	s.callDates[residentID] = append(s.callDates[residentID], date)
}

// CallCount implements rules.Counters and scoring.Stats.
func (s *CallStats) CallCount(residentID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalCalls[residentID]
}

// WeekendCount implements rules.Counters.
func (s *CallStats) WeekendCount(residentID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.weekendCalls[residentID]
}

// Points implements scoring.Stats.
func (s *CallStats) Points(residentID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.points[residentID]
}

// LastCallDate implements rules.Counters and scoring.Stats.
func (s *CallStats) LastCallDate(residentID string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.lastCallDate[residentID]
	return d, ok
}

// RecentCallDates implements rules.Counters: every recorded call date
// in [windowStart, windowEndExclusive).
func (s *CallStats) RecentCallDates(residentID string, windowStart, windowEndExclusive time.Time) []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []time.Time
	for _, d := range s.callDates[residentID] {
		if !d.Before(windowStart) && d.Before(windowEndExclusive) {
			out = append(out, d)
		}
	}
	return out
}

// CallCounts returns a sorted-by-id snapshot of total call counts,
// used for the Gini coefficient.
func (s *CallStats) CallCounts(residents []domain.Resident) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, len(residents))
	for i, r := range residents {
		ids[i] = r.ID
	}
	sort.Strings(ids)
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = s.totalCalls[id]
	}
	return out
}
