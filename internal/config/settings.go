// Package config loads and validates the settings that steer
// initialization: whether basic events must all carry a probability
// expression, the mission time in hours, and where diagnostics should be
// sent.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Settings mirrors SCRAM's project-settings file, trimmed to the fields
// this initializer actually consults.
type Settings struct {
	// ProbabilityAnalysis, when true, requires every basic event to carry
	// a probability expression by the end of initialization.
	ProbabilityAnalysis bool `yaml:"probability_analysis"`

	// MissionTimeHours is the value assigned to the model's mission-time
	// parameter. It is carried through unevaluated; this package only
	// checks it is non-negative.
	MissionTimeHours float64 `yaml:"mission_time_hours" validate:"gte=0"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`

	// MetricsAddr is loaded and kept but read by nothing in this module;
	// cmd/mef-init serves /metrics on its -listen address.
	MetricsAddr string `yaml:"metrics_addr"`

	// NotifyAddr, if set, is the nanomsg PUB endpoint the model-ready
	// notification is published on.
	NotifyAddr string `yaml:"notify_addr"`

	// AuditDSN, if set, is a PostgreSQL connection string audit records
	// are written to.
	AuditDSN string `yaml:"audit_dsn"`
}

// Default returns the settings initialization uses when the caller
// supplies no configuration file: no probability requirement, an
// 8760-hour (one year) mission time, info logging, nothing else wired.
func Default() Settings {
	return Settings{
		MissionTimeHours: 8760,
		LogLevel:         "info",
	}
}

var validate = validator.New()

// Load reads and validates a YAML settings file.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("reading settings file: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parsing settings file: %w", err)
	}
	if err := validate.Struct(&s); err != nil {
		return Settings{}, formatValidationError(err)
	}
	return s, nil
}

func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	for _, e := range validationErrs {
		switch e.Tag() {
		case "gte":
			return fmt.Errorf("%s: must be at least %s", e.Field(), e.Param())
		case "oneof":
			return fmt.Errorf("%s: must be one of %s", e.Field(), e.Param())
		default:
			return fmt.Errorf("%s: validation failed (%s)", e.Field(), e.Tag())
		}
	}
	return err
}
