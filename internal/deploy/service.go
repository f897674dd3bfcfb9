package deploy

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/digitalproph8/ai-builder-cli/internal/backend"
	"github.com/digitalproph8/ai-builder-cli/internal/client"
)

// platformAPI is the slice of the HTTP client the service depends on.
type platformAPI interface {
	SubmitDeployment(ctx context.Context, path string, req client.SubmitRequest) (client.SubmitResponse, error)
	DeploymentStatus(ctx context.Context, path string) (client.StatusResponse, error)
	Infer(ctx context.Context, path string, req client.InferRequest) (client.InferResponse, error)
	HasCredentials() bool
}

// Service owns the record store and drives submit, poll and infer against a
// single backend.
type Service struct {
	api     platformAPI
	backend backend.Backend
	store   *Store
	logger  *slog.Logger
	metrics *Metrics
}

// New returns a deployment service for the given backend. metrics may be nil.
func New(api platformAPI, b backend.Backend, store *Store, logger *slog.Logger, metrics *Metrics) (*Service, error) {
	if api == nil {
		return nil, errors.New("deploy: platform client is required")
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if store == nil {
		store = NewStore()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		api:     api,
		backend: b,
		store:   store,
		logger:  logger,
		metrics: metrics,
	}, nil
}

// Store exposes the record store for read access.
func (s *Service) Store() *Store { return s.store }

// Backend returns the backend descriptor this service targets.
func (s *Service) Backend() backend.Backend { return s.backend }

// SubmitConfig carries the opaque deployment parameters. Only presence is
// validated here; the platform judges semantic correctness.
type SubmitConfig struct {
	Framework        string
	DeploymentConfig map[string]any
	Requirements     []string
}

// Submit registers a model deployment. On an accepted response a record is
// created in StatusDeploying; on any other outcome no record exists and the
// caller decides whether to retry.
func (s *Service) Submit(ctx context.Context, name string, cfg SubmitConfig) (Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Record{}, &SubmissionError{Name: name, Message: "model name is required"}
	}
	if strings.TrimSpace(cfg.Framework) == "" {
		return Record{}, &SubmissionError{Name: name, Message: "framework is required"}
	}
	if _, exists := s.store.Get(name); exists {
		return Record{}, ErrDuplicateModel
	}
	if !s.api.HasCredentials() {
		s.logger.Warn("no platform credentials configured, request will likely be rejected", "backend", s.backend.Name)
	}

	resp, err := s.api.SubmitDeployment(ctx, s.backend.SubmitPath, client.SubmitRequest{
		ModelName:        name,
		Framework:        cfg.Framework,
		DeploymentConfig: cfg.DeploymentConfig,
		Requirements:     cfg.Requirements,
	})
	if err != nil {
		s.metrics.recordSubmit(s.backend.Name, "error")
		s.logger.Error("deployment submission failed", "model", name, "backend", s.backend.Name, "error", err)
		return Record{}, &SubmissionError{Name: name, Err: err}
	}
	if !resp.Success {
		s.metrics.recordSubmit(s.backend.Name, "rejected")
		msg := resp.Error
		if msg == "" {
			msg = "platform rejected the deployment"
		}
		s.logger.Error("deployment rejected", "model", name, "backend", s.backend.Name, "reason", msg)
		return Record{}, &SubmissionError{Name: name, Message: msg}
	}

	now := time.Now().UTC()
	rec := &Record{
		ID:        uuid.NewString(),
		Name:      name,
		Endpoint:  resp.Endpoint,
		Status:    StatusDeploying,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.insert(rec); err != nil {
		return Record{}, err
	}
	s.metrics.recordSubmit(s.backend.Name, "accepted")
	s.logger.Info("deployment submitted", "model", name, "backend", s.backend.Name, "endpoint", resp.Endpoint)
	return *rec, nil
}
