package deploy

import (
	"context"
	"time"

	"github.com/digitalproph8/ai-builder-cli/internal/backend"
)

// PollOptions tunes one poll invocation. Zero MaxAttempts falls back to the
// backend profile; a zero Interval polls back to back and exists for tests.
type PollOptions struct {
	Interval    time.Duration
	MaxAttempts int
}

// Outcome is the single terminal result of a poll invocation.
type Outcome struct {
	Status   Status
	Endpoint string
	Error    string
	Attempts int
}

// DefaultPollOptions returns the backend profile's tuning.
func (s *Service) DefaultPollOptions() PollOptions {
	return PollOptions{
		Interval:    s.backend.PollInterval,
		MaxAttempts: s.backend.MaxAttempts,
	}
}

// Poll drives the deployment status state machine for name until the remote
// reports a terminal status or the attempt budget runs out. Ready and Failed
// are reported outcomes with a nil error; an exhausted budget (including a
// transport failure on the final attempt) comes back as *TimeoutError. A
// transport or protocol error on any earlier attempt is swallowed and the
// loop keeps going. Exactly one terminal outcome is produced per invocation,
// and the record for name is only ever mutated here while the loop holds it.
func (s *Service) Poll(ctx context.Context, name string, opts PollOptions) (Outcome, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = s.backend.MaxAttempts
	}
	if opts.Interval < 0 {
		opts.Interval = 0
	}
	if err := s.store.beginPoll(name); err != nil {
		return Outcome{Status: StatusUnknown}, err
	}
	defer s.store.endPoll(name)

	var lastErr error
	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		s.metrics.recordAttempt()
		resp, err := s.api.DeploymentStatus(ctx, s.backend.StatusPathFor(name))
		if err != nil {
			lastErr = err
			if attempt == opts.MaxAttempts {
				break
			}
			s.logger.Warn("status query failed, treating as unknown", "model", name, "attempt", attempt, "error", err)
		} else {
			lastErr = nil
			switch s.backend.Classify(resp.Status) {
			case backend.ClassReady:
				s.store.update(name, StatusReady, resp.Endpoint, "")
				rec, _ := s.store.Get(name)
				s.metrics.recordPollOutcome(s.backend.Name, "ready")
				s.logger.Info("deployment ready", "model", name, "attempt", attempt, "endpoint", rec.Endpoint)
				return Outcome{Status: StatusReady, Endpoint: rec.Endpoint, Attempts: attempt}, nil
			case backend.ClassFailed:
				msg := resp.Error
				if msg == "" {
					msg = "deployment failed"
				}
				s.store.update(name, StatusFailed, resp.Endpoint, msg)
				s.metrics.recordPollOutcome(s.backend.Name, "failed")
				s.logger.Error("deployment failed", "model", name, "attempt", attempt, "reason", msg)
				return Outcome{Status: StatusFailed, Error: msg, Attempts: attempt}, nil
			default:
				s.logger.Debug("deployment still in progress", "model", name, "attempt", attempt, "status", resp.Status)
			}
			if attempt == opts.MaxAttempts {
				break
			}
		}

		if opts.Interval > 0 {
			timer := time.NewTimer(opts.Interval)
			select {
			case <-ctx.Done():
				timer.Stop()
				s.metrics.recordPollOutcome(s.backend.Name, "cancelled")
				return Outcome{Status: StatusUnknown, Attempts: attempt}, ctx.Err()
			case <-timer.C:
			}
		} else if ctx.Err() != nil {
			s.metrics.recordPollOutcome(s.backend.Name, "cancelled")
			return Outcome{Status: StatusUnknown, Attempts: attempt}, ctx.Err()
		}
	}

	s.metrics.recordPollOutcome(s.backend.Name, "timeout")
	s.logger.Error("poll budget exhausted", "model", name, "attempts", opts.MaxAttempts, "last_error", lastErr)
	return Outcome{Status: StatusUnknown, Attempts: opts.MaxAttempts},
		&TimeoutError{Name: name, Attempts: opts.MaxAttempts, Err: lastErr}
}
