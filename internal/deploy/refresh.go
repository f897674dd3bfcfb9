package deploy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/digitalproph8/ai-builder-cli/internal/backend"
)

// Refresh queries the remote status once and reattaches a local record to an
// already-submitted deployment. It lets a fresh process watch or invoke a
// model it did not submit itself. Refusing to run while a poll loop owns the
// record keeps the single-writer rule intact.
func (s *Service) Refresh(ctx context.Context, name string) (Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Record{}, fmt.Errorf("model name is required")
	}
	if s.store.isPolling(name) {
		return Record{}, ErrPollInProgress
	}

	resp, err := s.api.DeploymentStatus(ctx, s.backend.StatusPathFor(name))
	if err != nil {
		return Record{}, fmt.Errorf("refresh %s: %w", name, err)
	}

	status := StatusDeploying
	switch s.backend.Classify(resp.Status) {
	case backend.ClassReady:
		status = StatusReady
	case backend.ClassFailed:
		status = StatusFailed
	}

	now := time.Now().UTC()
	rec := s.store.adopt(&Record{
		ID:        uuid.NewString(),
		Name:      name,
		Endpoint:  resp.Endpoint,
		Status:    status,
		Error:     resp.Error,
		CreatedAt: now,
		UpdatedAt: now,
	})
	s.logger.Info("deployment record refreshed", "model", name, "status", rec.Status)
	return rec, nil
}
