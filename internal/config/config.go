// Package config loads the read-only AppConfiguration singleton
// (spec §3, §6.3) from a YAML file, the same way the teacher's
// pkg/config.Load reads a YAML file into a Config struct and applies
// defaults/validation before returning it.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/neurosx/schedctl/internal/apperrors"
	"github.com/neurosx/schedctl/internal/domain"
)

// Load reads and validates an AppConfiguration from path.
func Load(path string) (*domain.AppConfiguration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.NotFound, "reading configuration file", err)
	}

	var cfg domain.AppConfiguration
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, apperrors.Wrap(apperrors.Validation, "parsing configuration yaml", err)
	}

	if err := ApplyDefaultsAndValidate(&cfg); err != nil {
		return nil, apperrors.Wrap(apperrors.Validation, "invalid configuration", err)
	}

	return &cfg, nil
}

// ApplyDefaultsAndValidate fills configuration defaults and rejects
// structurally invalid configuration before it reaches any engine.
func ApplyDefaultsAndValidate(cfg *domain.AppConfiguration) error {
	if len(cfg.MonthlySchedulerConfig.WeekendDefinition) == 0 {
		cfg.MonthlySchedulerConfig.WeekendDefinition = []string{"Friday", "Saturday", "Sunday"}
	}

	if len(cfg.MonthlySchedulerConfig.ParoHardCaps) == 0 {
		cfg.MonthlySchedulerConfig.ParoHardCaps = []domain.ParoHardCapRule{
			{MinDays: 1, MaxDays: 31, Calls: 8},
		}
	}

	if cfg.MonthlySchedulerConfig.MaxWeekendsPerRotation <= 0 {
		return fmt.Errorf("monthlySchedulerConfig.maxWeekendsPerRotation must be positive")
	}

	if cfg.MonthlySchedulerConfig.CallRatios == nil {
		cfg.MonthlySchedulerConfig.CallRatios = map[int]int{}
	}

	if cfg.LeavePolicy.AnnualLimit <= 0 {
		return fmt.Errorf("leavePolicy.annualLimit must be positive")
	}

	if cfg.LeavePolicy.MaxConsecutiveDays <= 0 {
		return fmt.Errorf("leavePolicy.maxConsecutiveDays must be positive")
	}

	return nil
}
