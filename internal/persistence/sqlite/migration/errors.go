package migration

import (
	"errors"
	"fmt"
)

var (
	ErrMigrationFailed      = errors.New("migration: execution failed")
	ErrInvalidMigrationFile = errors.New("migration: invalid file")
	ErrInvalidVersion       = errors.New("migration: invalid version")
	ErrDuplicateVersion     = errors.New("migration: duplicate version")
	// ErrChecksumMismatch means an applied migration file was edited afterwards.
	ErrChecksumMismatch = errors.New("migration: checksum mismatch")
)

// StepError reports the migration, if any, and the step that failed.
type StepError struct {
	Version string
	File    string
	Step    string
	Err     error
}

func (e *StepError) Error() string {
	switch {
	case e.Version != "" && e.File != "":
		return fmt.Sprintf("migration %s (%s): %s: %v", e.Version, e.File, e.Step, e.Err)
	case e.Version != "":
		return fmt.Sprintf("migration %s: %s: %v", e.Version, e.Step, e.Err)
	case e.File != "":
		return fmt.Sprintf("migration %s: %s: %v", e.File, e.Step, e.Err)
	default:
		return fmt.Sprintf("migrations: %s: %v", e.Step, e.Err)
	}
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func stepError(version, file, step string, err error) *StepError {
	return &StepError{Version: version, File: file, Step: step, Err: err}
}
