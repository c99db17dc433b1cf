package domain

// ParoHardCapRule is one entry of config.paroHardCaps: the hard PARO
// call cap for block lengths in [MinDays, MaxDays].
type ParoHardCapRule struct {
	MinDays int `yaml:"minDays"`
	MaxDays int `yaml:"maxDays"`
	Calls   int `yaml:"calls"`
}

// MonthlySchedulerConfig is §6.3's monthlySchedulerConfig.
type MonthlySchedulerConfig struct {
	ParoHardCaps           []ParoHardCapRule `yaml:"paroHardCaps"`
	CallRatios             map[int]int       `yaml:"callRatios"`
	MaxWeekendsPerRotation int               `yaml:"maxWeekendsPerRotation"`
	WeekendDefinition      []string          `yaml:"weekendDefinition"`
}

// MandatoryRotationRule places every resident matching PGYLevels into
// RotationName for BlockNumber (§4.3 phases 1-2).
type MandatoryRotationRule struct {
	BlockNumber  int    `yaml:"blockNumber"`
	PGYLevels    []int  `yaml:"pgyLevels"`
	RotationName string `yaml:"rotationName"`
}

// YearlySchedulerConfig is §6.3's yearlySchedulerConfig.
type YearlySchedulerConfig struct {
	MandatoryRotations []MandatoryRotationRule `yaml:"mandatoryRotations"`
	ExamLeave          []MandatoryRotationRule `yaml:"examLeave"`
}

// CoverageRule is one rule evaluated at yearly-engine finalization
// (§4.3 phase 7).
type CoverageRule struct {
	RotationBlock int    `yaml:"rotationBlock"`
	Kind          string `yaml:"kind"` // SPECIALTY or SPECIALTY_PGY_MIN
	Specialty     string `yaml:"specialty"`
	MinPgyLevel   int    `yaml:"minPgyLevel"`
	MinCount      int    `yaml:"minCount"`
	AppliesTo     string `yaml:"appliesTo"`
	Name          string `yaml:"name"`
}

// LeavePolicy is §6.3's leavePolicy.
type LeavePolicy struct {
	MinNoticeDays      int `yaml:"minNoticeDays"`
	MaxConsecutiveDays int `yaml:"maxConsecutiveDays"`
	AnnualLimit        int `yaml:"annualLimit"`
}

// AppConfiguration is the read-only, read-once-per-run configuration
// singleton (§3, §6.3).
type AppConfiguration struct {
	MonthlySchedulerConfig MonthlySchedulerConfig `yaml:"monthlySchedulerConfig"`
	YearlySchedulerConfig  YearlySchedulerConfig  `yaml:"yearlySchedulerConfig"`
	CoverageRules          []CoverageRule         `yaml:"coverageRules"`
	Holidays               []string               `yaml:"holidays"`
	LeavePolicy            LeavePolicy            `yaml:"leavePolicy"`
}
