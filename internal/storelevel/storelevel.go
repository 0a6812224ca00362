// Package storelevel defines the per-probe persistence policy and the
// threshold-breach severity enums shared across probe variants.
package storelevel

import "fmt"

// DatabaseStoreLevel controls whether a status transition is written
// through to persistence (spec §3, §4.1).
type DatabaseStoreLevel int

const (
	// None never writes through.
	None DatabaseStoreLevel = iota
	// Errors writes through for every status except Ok and Unknown.
	Errors
	// All always writes through.
	All
)

func (l DatabaseStoreLevel) String() string {
	switch l {
	case None:
		return "None"
	case Errors:
		return "Errors"
	case All:
		return "All"
	default:
		return "Errors"
	}
}

// ParseDatabaseStoreLevel parses the JSON config values "None"/"Errors"/"All".
// An empty value yields the default, Errors (spec §3); an unrecognized value
// is an error.
func ParseDatabaseStoreLevel(s string) (DatabaseStoreLevel, error) {
	switch s {
	case "", "Errors":
		return Errors, nil
	case "None":
		return None, nil
	case "All":
		return All, nil
	default:
		return Errors, fmt.Errorf("unknown store level %q", s)
	}
}

func (l DatabaseStoreLevel) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.String() + `"`), nil
}

func (l *DatabaseStoreLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := unquote(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDatabaseStoreLevel(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ThresholdLevel controls which Status class a breached numeric threshold
// produces (spec §3).
type ThresholdLevel int

const (
	ThresholdWarn ThresholdLevel = iota
	ThresholdError
)

func (t ThresholdLevel) String() string {
	if t == ThresholdError {
		return "Error"
	}
	return "Warn"
}

func ParseThresholdLevel(s string) (ThresholdLevel, error) {
	switch s {
	case "", "Warn":
		return ThresholdWarn, nil
	case "Error":
		return ThresholdError, nil
	default:
		return ThresholdWarn, fmt.Errorf("unknown threshold level %q", s)
	}
}

func (t ThresholdLevel) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *ThresholdLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := unquote(data, &s); err != nil {
		return err
	}
	parsed, err := ParseThresholdLevel(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func unquote(data []byte, out *string) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid string literal: %s", data)
	}
	*out = string(data[1 : len(data)-1])
	return nil
}
