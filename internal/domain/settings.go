package domain

import "time"

// Default finance settings, applied when the singleton row is first read.
const (
	DefaultBaseCurrency          = "BDT"
	DefaultAllowNegativeBalances = true
)

// Settings is the process-wide finance configuration singleton. It is
// lazily created with defaults on first read.
type Settings struct {
	BaseCurrency          string
	AllowNegativeBalances bool
	UpdatedAt             time.Time
}

// DefaultSettings returns the settings used when none are stored yet.
func DefaultSettings(now time.Time) *Settings {
	return &Settings{
		BaseCurrency:          DefaultBaseCurrency,
		AllowNegativeBalances: DefaultAllowNegativeBalances,
		UpdatedAt:             now,
	}
}

// Validate checks the settings shape.
func (s *Settings) Validate() error {
	return ValidateCurrency(s.BaseCurrency)
}
