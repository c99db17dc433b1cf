package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/neurosx/schedctl/internal/apperrors"
	"github.com/neurosx/schedctl/internal/domain"
	"github.com/neurosx/schedctl/internal/leave"
	"github.com/neurosx/schedctl/internal/metrics"
	"github.com/neurosx/schedctl/internal/store"
)

func newAnalyzeLeaveCommand() *cobra.Command {
	var (
		requestID string
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "analyze-leave",
		Short: "Run the Leave-Request Analyzer against a pending request",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(cmd); err != nil {
				return fail(cmd, err)
			}

			req, err := sharedStore.GetLeaveRequest(cmd.Context(), requestID)
			if err != nil {
				return fail(cmd, err)
			}

			// Idempotency per §5: a request not in Pending Analysis has
			// already been processed (or failed) and is skipped rather
			// than re-analyzed.
			if req.Status != domain.LeaveStatusPendingAnalysis {
				return printJSON(req)
			}

			source := store.NewLeaveDataSource(sharedStore)
			analyzer := leave.NewAnalyzer(source, timeout)

			metrics.LeaveAnalysesRun.Inc()
			report, err := analyzer.Analyze(cmd.Context(), req)
			if err != nil {
				metrics.LeaveAnalysisFailures.Inc()
				if updateErr := sharedStore.UpdateLeaveRequestStatus(cmd.Context(), requestID, domain.LeaveStatusAnalysisFailed); updateErr != nil {
					return fail(cmd, updateErr)
				}
				return fail(cmd, apperrors.Wrap(apperrors.AnalysisFailed, "leave analysis failed; request marked Analysis Failed", err))
			}

			newStatus := recommendationToStatus(report.Recommendation)
			if err := sharedStore.CommitAnalysisResult(cmd.Context(), report, requestID, newStatus); err != nil {
				return fail(cmd, err)
			}

			metrics.LeaveRecommendations.WithLabelValues(string(report.Recommendation)).Inc()
			return printJSON(report)
		},
	}

	cmd.Flags().StringVar(&requestID, "request-id", "", "id of the leave request to analyze")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "per-run analysis timeout")
	cmd.MarkFlagRequired("request-id")
	addAdminFlag(cmd)

	return cmd
}

// recommendationToStatus maps a synthesized recommendation onto the
// LeaveRequest lifecycle status it drives the request to (§3/§4.5/§5).
// An Approve recommendation hands the request to Pending Approval for
// a human to finalize, not straight to Approved; Deny is terminal;
// Flagged for Review hands the request to a human reviewer rather than
// auto-approving or auto-denying it.
func recommendationToStatus(r domain.Recommendation) domain.LeaveStatus {
	switch r {
	case domain.RecommendApprove:
		return domain.LeaveStatusPendingApproval
	case domain.RecommendDeny:
		return domain.LeaveStatusDenied
	default:
		return domain.LeaveStatusFlaggedForReview
	}
}
