package deploy

import (
	"errors"
	"fmt"
)

// Sentinel errors for local preconditions and poll coordination.
var (
	// ErrNotDeployed indicates no deployment record exists for the name.
	ErrNotDeployed = errors.New("deploy: model not deployed")
	// ErrNotReady indicates the deployment has not reached ready yet.
	ErrNotReady = errors.New("deploy: model not ready")
	// ErrDuplicateModel indicates the name is already tracked.
	ErrDuplicateModel = errors.New("deploy: model name already tracked")
	// ErrPollInProgress indicates another poll loop owns the record.
	ErrPollInProgress = errors.New("deploy: poll already in progress")
	// ErrPollTimeout indicates the attempt budget ran out without a
	// terminal status from the remote.
	ErrPollTimeout = errors.New("deploy: poll attempt budget exhausted")
)

// SubmissionError reports a rejected or unreachable deployment registration.
type SubmissionError struct {
	Name    string
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("submit %s: %s", e.Name, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("submit %s: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("submit %s: deployment rejected", e.Name)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// TimeoutError is returned when a poll invocation exhausts its budget. Err
// holds the final attempt's transport or protocol error when the last query
// itself failed; otherwise the remote simply never reached a terminal state.
type TimeoutError struct {
	Name     string
	Attempts int
	Err      error
}

func (e *TimeoutError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("poll %s: gave up after %d attempts, last error: %v", e.Name, e.Attempts, e.Err)
	}
	return fmt.Sprintf("poll %s: gave up after %d attempts", e.Name, e.Attempts)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// Is lets callers match TimeoutError against ErrPollTimeout.
func (e *TimeoutError) Is(target error) bool { return target == ErrPollTimeout }
