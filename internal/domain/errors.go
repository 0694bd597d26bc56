package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrNotFound     = errors.New("not found")
	ErrNoTransition = errors.New("no matching transition")
	ErrSyncFailed   = errors.New("sync failed")
)

// SourceError represents a failure talking to an upstream task source
type SourceError struct {
	Source  Source // Origin system
	Op      string // Operation: "fetch", "transitions", "apply", etc.
	TaskID  string // Optional: specific task ID
	Message string // Human-readable context
	Err     error  // Underlying error
}

func (e *SourceError) Error() string {
	if e.TaskID != "" {
		return fmt.Sprintf("%s %s [%s]: %v", e.Source, e.Op, e.TaskID, e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %s", e.Source, e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Source, e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s failed", e.Source, e.Op)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// ReportError represents a failure writing a triage report
type ReportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ReportError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("report %s [%s]: %v", e.Format, e.Path, e.Err)
	}
	return fmt.Sprintf("report %s: %v", e.Format, e.Err)
}

func (e *ReportError) Unwrap() error {
	return e.Err
}
