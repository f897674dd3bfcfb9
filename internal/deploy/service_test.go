package deploy

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/digitalproph8/ai-builder-cli/internal/backend"
	"github.com/digitalproph8/ai-builder-cli/internal/client"
)

type statusStep struct {
	resp client.StatusResponse
	err  error
}

type fakeAPI struct {
	submitResp  client.SubmitResponse
	submitErr   error
	submitCalls int

	statusSeq   []statusStep
	statusCalls int

	inferResp  client.InferResponse
	inferErr   error
	inferCalls int

	noCreds bool
}

func (f *fakeAPI) SubmitDeployment(_ context.Context, _ string, _ client.SubmitRequest) (client.SubmitResponse, error) {
	f.submitCalls++
	if f.submitErr != nil {
		return client.SubmitResponse{}, f.submitErr
	}
	return f.submitResp, nil
}

func (f *fakeAPI) DeploymentStatus(_ context.Context, _ string) (client.StatusResponse, error) {
	idx := f.statusCalls
	f.statusCalls++
	if len(f.statusSeq) == 0 {
		return client.StatusResponse{Status: "deploying"}, nil
	}
	if idx >= len(f.statusSeq) {
		idx = len(f.statusSeq) - 1
	}
	step := f.statusSeq[idx]
	return step.resp, step.err
}

func (f *fakeAPI) Infer(_ context.Context, _ string, _ client.InferRequest) (client.InferResponse, error) {
	f.inferCalls++
	if f.inferErr != nil {
		return client.InferResponse{}, f.inferErr
	}
	return f.inferResp, nil
}

func (f *fakeAPI) HasCredentials() bool { return !f.noCreds }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T, api *fakeAPI) *Service {
	t.Helper()
	svc, err := New(api, backend.Fast("http://platform.test"), NewStore(), testLogger(), nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return svc
}

// submitDeploying registers a model through the fake so the store holds a
// record in StatusDeploying.
func submitDeploying(t *testing.T, svc *Service, api *fakeAPI, name string) Record {
	t.Helper()
	api.submitResp = client.SubmitResponse{Success: true, Endpoint: "http://platform.test/models/" + name}
	rec, err := svc.Submit(context.Background(), name, SubmitConfig{Framework: "pytorch"})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	return rec
}
