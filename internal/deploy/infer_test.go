package deploy

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/digitalproph8/ai-builder-cli/internal/client"
)

func readyModel(t *testing.T, svc *Service, api *fakeAPI, name string) {
	t.Helper()
	submitDeploying(t, svc, api, name)
	api.statusSeq = []statusStep{{resp: client.StatusResponse{Status: "ready"}}}
	if _, err := svc.Poll(context.Background(), name, PollOptions{MaxAttempts: 1}); err != nil {
		t.Fatalf("Poll returned error: %v", err)
	}
}

func TestInferUnknownModelMakesNoNetworkCall(t *testing.T) {
	api := &fakeAPI{}
	svc := newTestService(t, api)

	_, err := svc.Infer(context.Background(), "ghost-model", InferPayload{Data: json.RawMessage(`{"text":"hi"}`)})
	if !errors.Is(err, ErrNotDeployed) {
		t.Fatalf("expected ErrNotDeployed, got %v", err)
	}
	if api.inferCalls != 0 || api.statusCalls != 0 || api.submitCalls != 0 {
		t.Fatalf("expected zero network calls, got submit=%d status=%d infer=%d",
			api.submitCalls, api.statusCalls, api.inferCalls)
	}
}

func TestInferNotReadyModelFailsFast(t *testing.T) {
	api := &fakeAPI{}
	svc := newTestService(t, api)
	submitDeploying(t, svc, api, "sentiment")

	_, err := svc.Infer(context.Background(), "sentiment", InferPayload{Data: json.RawMessage(`{}`)})
	if !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
	if api.inferCalls != 0 {
		t.Fatalf("expected no infer calls, got %d", api.inferCalls)
	}
}

func TestInferReadyModelReturnsResult(t *testing.T) {
	api := &fakeAPI{inferResp: client.InferResponse{Result: json.RawMessage(`{"label":"positive"}`)}}
	svc := newTestService(t, api)
	readyModel(t, svc, api, "sentiment")

	result, err := svc.Infer(context.Background(), "sentiment", InferPayload{Data: json.RawMessage(`{"text":"great"}`)})
	if err != nil {
		t.Fatalf("Infer returned error: %v", err)
	}
	if string(result) != `{"label":"positive"}` {
		t.Fatalf("unexpected result %s", result)
	}
	if api.inferCalls != 1 {
		t.Fatalf("expected exactly one infer call, got %d", api.inferCalls)
	}
}

func TestInferRemoteErrorIsSurfaced(t *testing.T) {
	api := &fakeAPI{inferResp: client.InferResponse{Error: "model overloaded"}}
	svc := newTestService(t, api)
	readyModel(t, svc, api, "sentiment")

	_, err := svc.Infer(context.Background(), "sentiment", InferPayload{Data: json.RawMessage(`{}`)})
	if err == nil || err.Error() != "infer sentiment: model overloaded" {
		t.Fatalf("expected remote error message, got %v", err)
	}
}
