// Package cmd wires the cobra command tree that stands in for the RPC
// surface of §6.2 (SPEC_FULL §11): one subcommand per engine entry
// point, each loading its inputs from flags, running the engine, and
// persisting the result through internal/store.
//
// The command-construction shape (one NewXCommand func returning a
// *cobra.Command, flags registered via pflag, RunE doing all the work)
// is grounded on the kube-scheduler app server's NewSchedulerCommand,
// the one file in the retrieved pack that exercises cobra.Command
// directly; cobra itself was already present, as an indirect
// transitive dependency, in the teacher's own go.mod.
package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/neurosx/schedctl/internal/apperrors"
	"github.com/neurosx/schedctl/internal/domain"
	"github.com/neurosx/schedctl/internal/store"
)

// sharedStore is process-lifetime state: it starts empty on every
// invocation of schedctl and is discarded on exit. An invocation runs
// one subcommand, so nothing a subcommand writes is visible to a later
// invocation.
var sharedStore = store.NewMemoryStore()

// NewRootCommand builds the schedctl command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "schedctl",
		Short: "Neurosurgery resident scheduling engine",
	}

	root.AddCommand(
		newGenerateYearlyCommand(),
		newGenerateMonthlyCommand(),
		newGenerateWeeklyCommand(),
		newAnalyzeLeaveCommand(),
	)
	return root
}

func requireAdmin(cmd *cobra.Command) error {
	asAdmin, _ := cmd.Flags().GetBool("as-admin")
	if !asAdmin {
		return apperrors.New(apperrors.PermissionDenied, "this operation requires --as-admin")
	}
	return nil
}

func addAdminFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("as-admin", false, "run as an authorized administrator (stand-in for the real authorization context)")
}

func fail(cmd *cobra.Command, err error) error {
	slog.Error("command failed", "kind", apperrors.KindOf(err), "err", err)
	cmd.SilenceUsage = true
	return err
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func loadResidents(path string) ([]domain.Resident, error) {
	var out []domain.Resident
	if err := loadJSONFile(path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func loadRotators(path string) ([]domain.ExternalRotator, error) {
	if path == "" {
		return nil, nil
	}
	var out []domain.ExternalRotator
	if err := loadJSONFile(path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func loadLeaveRequests(path string) ([]domain.LeaveRequest, error) {
	if path == "" {
		return nil, nil
	}
	var out []domain.LeaveRequest
	if err := loadJSONFile(path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func loadJSONFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.Wrap(apperrors.NotFound, fmt.Sprintf("reading %s", path), err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.Wrap(apperrors.Validation, fmt.Sprintf("parsing %s", path), err)
	}
	return nil
}
