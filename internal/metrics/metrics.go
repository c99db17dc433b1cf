// Package metrics exposes the Prometheus counters and gauges the CLI
// subcommands update as they run, grounded on the teacher's
// pkg/metrics package (promauto-registered package-level collectors
// plus a Serve func that serves /metrics).
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	YearlyGenerations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "schedctl_yearly_generations_total",
		Help: "Number of yearly rotation generation runs",
	})
	YearlyCoverageViolations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "schedctl_yearly_coverage_violations_total",
		Help: "Number of coverage rule violations recorded across yearly generation runs",
	})
	MonthlyGenerations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "schedctl_monthly_generations_total",
		Help: "Number of monthly call schedule generation runs",
	})
	MonthlyUnfilledSlots = promauto.NewCounter(prometheus.CounterOpts{
		Name: "schedctl_monthly_unfilled_slots_total",
		Help: "Number of call slots that could not be filled across monthly generation runs",
	})
	MonthlyCallsAssigned = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "schedctl_monthly_calls_assigned_total",
		Help: "Number of call assignments made, by call type",
	}, []string{"call_type"})
	MonthlyCoverageRate = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "schedctl_monthly_coverage_rate",
		Help: "Fraction of the month's days with at least one call assigned in the most recent generation run, by academic year",
	}, []string{"academic_year_id"})
	MonthlyGini = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "schedctl_monthly_call_gini",
		Help: "Gini coefficient of call counts across residents in the most recent generation run, by academic year",
	}, []string{"academic_year_id"})
	WeeklyGenerations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "schedctl_weekly_generations_total",
		Help: "Number of weekly schedule view generations",
	})
	LeaveAnalysesRun = promauto.NewCounter(prometheus.CounterOpts{
		Name: "schedctl_leave_analyses_total",
		Help: "Number of leave request analyses run",
	})
	LeaveRecommendations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "schedctl_leave_recommendations_total",
		Help: "Number of leave analyses completed, by recommendation outcome",
	}, []string{"recommendation"})
	LeaveAnalysisFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "schedctl_leave_analysis_failures_total",
		Help: "Number of leave analyses that ended in Analysis Failed",
	})
)

// Serve starts the /metrics HTTP endpoint in the background on addr
// (e.g. ":9090"). It does not block the caller.
func Serve(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(addr, mux)
}
