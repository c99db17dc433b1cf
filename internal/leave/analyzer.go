// Package leave implements the Leave-Request Analyzer (spec §4.5):
// six independent concurrent reads joined before a deterministic,
// synchronous synthesis into a recommendation.
//
// The fan-out-then-join shape mirrors the teacher's per-concern
// interface design (pkg/power.PowerController +
// NewPowerControllerFromConfig) generalized from "one controller,
// called once" to "six data sources, called concurrently and joined" —
// grounded in the broader pack's convention (evident throughout
// hashicorp-nomad's client and command packages) of driving bounded
// fan-out with plain context.Context + sync.WaitGroup rather than a
// third-party fan-out library, since the fan-out width here is fixed
// at 6 and never grows.
package leave

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/neurosx/schedctl/internal/apperrors"
	"github.com/neurosx/schedctl/internal/calendar"
	"github.com/neurosx/schedctl/internal/domain"
)

// Analyzer runs one leave-request analysis per Analyze call. It is a
// value, constructed per request and discarded after (spec §9).
type Analyzer struct {
	Source  DataSource
	Timeout time.Duration
}

// NewAnalyzer builds an Analyzer bound to a DataSource and a per-run
// timeout (spec §5: "timeouts cause the request to transition to
// Analysis Failed").
func NewAnalyzer(source DataSource, timeout time.Duration) *Analyzer {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Analyzer{Source: source, Timeout: timeout}
}

type fetchResult struct {
	resident   domain.Resident
	historical []domain.LeaveRequest
	conflicts  []domain.ScheduleConflict
	coverage   CoverageData
	cfg        domain.AppConfiguration
	peer       PeerComparisonData
}

// Analyze runs the six concurrent reads, joins them, and synthesizes a
// LeaveAnalysisReport. Only a LeaveRequest with status Pending
// Analysis should be passed in — callers are responsible for the
// skip-if-already-processed check of §5 before calling Analyze, since
// that check requires a transactional read against the document store
// this package has no opinion on.
func (a *Analyzer) Analyze(ctx context.Context, req domain.LeaveRequest) (domain.LeaveAnalysisReport, error) {
	ctx, cancel := context.WithTimeout(ctx, a.Timeout)
	defer cancel()

	result, err := a.fetchAll(ctx, req)
	if err != nil {
		return domain.LeaveAnalysisReport{}, apperrors.Wrap(apperrors.AnalysisFailed, "fetching analysis inputs", err)
	}

	weekends, err := calendar.NewWeekendSet(result.cfg.MonthlySchedulerConfig.WeekendDefinition)
	if err != nil {
		return domain.LeaveAnalysisReport{}, apperrors.Wrap(apperrors.Internal, "invalid weekend definition", err)
	}

	coverage := coverageImpact(req, result.coverage, weekends)
	fairness := fairnessAssessment(req, result.resident, result.historical, result.peer, req.RequestedAt)

	yearDaysUsed := 0
	for _, h := range result.historical {
		if h.Status == domain.LeaveStatusApproved && h.StartDate.Year() == req.StartDate.Year() && h.ID != req.ID {
			yearDaysUsed += inclusiveDays(h.StartDate, h.EndDate)
		}
	}
	policy := policyCompliance(req, result.cfg.LeavePolicy, yearDaysUsed)

	recommendation, justification := synthesize(coverage, fairness, result.conflicts, policy)

	var alternatives []domain.AlternativeDates
	if recommendation != domain.RecommendApprove {
		alternatives = a.findAlternatives(ctx, req, coverage.Ratio, weekends)
	}

	return domain.LeaveAnalysisReport{
		ID:                  uuid.New().String(),
		RequestID:           req.ID,
		Coverage:            coverage,
		Fairness:            fairness,
		Conflicts:           result.conflicts,
		AlternativeDates:    alternatives,
		Recommendation:      recommendation,
		DenialJustification: justification,
		GeneratedAt:         time.Now(),
	}, nil
}

func (a *Analyzer) fetchAll(ctx context.Context, req domain.LeaveRequest) (fetchResult, error) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		result   fetchResult
		firstErr error
	)

	record := func(err error) {
		if err == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	since := req.RequestedAt.AddDate(0, -6, 0)

	wg.Add(6)
	go func() {
		defer wg.Done()
		r, err := a.Source.FetchResident(ctx, req.ResidentID)
		mu.Lock()
		result.resident = r
		mu.Unlock()
		record(err)
	}()
	go func() {
		defer wg.Done()
		h, err := a.Source.FetchHistoricalLeave(ctx, req.ResidentID, since)
		mu.Lock()
		result.historical = h
		mu.Unlock()
		record(err)
	}()
	go func() {
		defer wg.Done()
		c, err := a.Source.FetchScheduleConflicts(ctx, req.ResidentID, req.StartDate, req.EndDate)
		mu.Lock()
		result.conflicts = c
		mu.Unlock()
		record(err)
	}()
	go func() {
		defer wg.Done()
		d, err := a.Source.FetchCoverageData(ctx, req)
		mu.Lock()
		result.coverage = d
		mu.Unlock()
		record(err)
	}()
	go func() {
		defer wg.Done()
		cfg, err := a.Source.FetchConfiguration(ctx)
		mu.Lock()
		result.cfg = cfg
		mu.Unlock()
		record(err)
	}()
	go func() {
		defer wg.Done()
		p, err := a.Source.FetchPeerComparisonData(ctx, req.ResidentID)
		mu.Lock()
		result.peer = p
		mu.Unlock()
		record(err)
	}()
	wg.Wait()

	if ctx.Err() != nil {
		return result, ctx.Err()
	}
	return result, firstErr
}

// findAlternatives implements §4.5's alternative-dates search: ±14
// days in day steps, same duration, disjoint from the request, with
// computed coverage Low and ratio greater than the request's own.
func (a *Analyzer) findAlternatives(ctx context.Context, req domain.LeaveRequest, currentRatio float64, weekends *calendar.WeekendSet) []domain.AlternativeDates {
	duration := req.Days()
	var out []domain.AlternativeDates

	for offset := -14; offset <= 14 && len(out) < 3; offset++ {
		if offset == 0 {
			continue
		}
		candidateStart := req.StartDate.AddDate(0, 0, offset)
		candidateEnd := candidateStart.AddDate(0, 0, duration-1)

		if overlaps(candidateStart, candidateEnd, req.StartDate, req.EndDate) {
			continue
		}

		candidateReq := req
		candidateReq.StartDate = candidateStart
		candidateReq.EndDate = candidateEnd

		data, err := a.Source.FetchCoverageData(ctx, candidateReq)
		if err != nil {
			continue
		}
		impact := coverageImpact(candidateReq, data, weekends)
		if impact.Risk == domain.RiskLow && impact.Ratio > currentRatio {
			out = append(out, domain.AlternativeDates{
				StartDate: candidateStart,
				EndDate:   candidateEnd,
				Ratio:     impact.Ratio,
			})
		}
	}
	return out
}

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !calendar.Civil(aEnd).Before(calendar.Civil(bStart)) && !calendar.Civil(aStart).After(calendar.Civil(bEnd))
}
