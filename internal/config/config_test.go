package config_test

import (
	"os"
	"testing"

	"github.com/neurosx/schedctl/internal/apperrors"
	"github.com/neurosx/schedctl/internal/config"
	"github.com/neurosx/schedctl/internal/domain"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString(contents); err != nil {
		t.Fatal(err)
	}
	f.Close()
	return f.Name()
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeTemp(t, `
monthlySchedulerConfig:
  maxWeekendsPerRotation: 2
leavePolicy:
  minNoticeDays: 14
  maxConsecutiveDays: 10
  annualLimit: 20
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.MonthlySchedulerConfig.MaxWeekendsPerRotation != 2 {
		t.Errorf("maxWeekendsPerRotation = %d, want 2", cfg.MonthlySchedulerConfig.MaxWeekendsPerRotation)
	}
	if len(cfg.MonthlySchedulerConfig.WeekendDefinition) != 3 {
		t.Errorf("expected default weekend definition to be filled in, got %v", cfg.MonthlySchedulerConfig.WeekendDefinition)
	}
	if len(cfg.MonthlySchedulerConfig.ParoHardCaps) != 1 {
		t.Errorf("expected default PARO hard cap to be filled in, got %v", cfg.MonthlySchedulerConfig.ParoHardCaps)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load("/nonexistent/path/config.yaml")
	require.Error(t, err, "expected error for missing file")
	if apperrors.KindOf(err) != apperrors.NotFound {
		t.Errorf("expected NotFound kind, got %v", apperrors.KindOf(err))
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeTemp(t, "{this: is, not: valid yaml")
	_, err := config.Load(path)
	require.Error(t, err, "expected YAML parse error")
	if apperrors.KindOf(err) != apperrors.Validation {
		t.Errorf("expected Validation kind, got %v", apperrors.KindOf(err))
	}
}

func TestApplyDefaultsAndValidate_RejectsMissingMaxWeekends(t *testing.T) {
	cfg := &domain.AppConfiguration{
		LeavePolicy: domain.LeavePolicy{AnnualLimit: 20, MaxConsecutiveDays: 10},
	}
	if err := config.ApplyDefaultsAndValidate(cfg); err == nil {
		t.Fatal("expected error for missing maxWeekendsPerRotation")
	}
}

func TestApplyDefaultsAndValidate_RejectsMissingAnnualLimit(t *testing.T) {
	cfg := &domain.AppConfiguration{
		MonthlySchedulerConfig: domain.MonthlySchedulerConfig{MaxWeekendsPerRotation: 2},
		LeavePolicy:            domain.LeavePolicy{MaxConsecutiveDays: 10},
	}
	if err := config.ApplyDefaultsAndValidate(cfg); err == nil {
		t.Fatal("expected error for missing annualLimit")
	}
}
