package deploy

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/digitalproph8/ai-builder-cli/internal/client"
)

// InferPayload carries the inference input and optional parameters.
type InferPayload struct {
	Data       json.RawMessage
	Parameters map[string]any
}

// Infer invokes a deployed model once. The local record is checked before any
// network call: an unknown name or a deployment that never reached ready
// fails fast. No retry, no polling.
func (s *Service) Infer(ctx context.Context, name string, payload InferPayload) (json.RawMessage, error) {
	rec, ok := s.store.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotDeployed, name)
	}
	if rec.Status != StatusReady {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotReady, name, rec.Status)
	}

	resp, err := s.api.Infer(ctx, s.backend.InferPath, client.InferRequest{
		ModelName:  name,
		Data:       payload.Data,
		Parameters: payload.Parameters,
	})
	if err != nil {
		s.logger.Error("inference request failed", "model", name, "error", err)
		return nil, fmt.Errorf("infer %s: %w", name, err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("infer %s: %s", name, resp.Error)
	}
	return resp.Result, nil
}
