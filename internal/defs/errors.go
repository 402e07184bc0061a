package defs

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the root of every content validation failure.
var ErrConfiguration = errors.New("configuration error")

// ConfigurationError describes one invalid piece of content.
type ConfigurationError struct {
	Subject string // e.g. `turret "Cannon"`
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Subject, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

func configErr(subject, format string, args ...any) error {
	return &ConfigurationError{Subject: subject, Reason: fmt.Sprintf(format, args...)}
}
