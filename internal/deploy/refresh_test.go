package deploy

import (
	"context"
	"errors"
	"testing"

	"github.com/digitalproph8/ai-builder-cli/internal/client"
)

func TestRefreshAdoptsExternalDeployment(t *testing.T) {
	api := &fakeAPI{statusSeq: []statusStep{
		{resp: client.StatusResponse{Status: "succeeded", Endpoint: "http://platform.test/models/sentiment"}},
	}}
	svc := newTestService(t, api)

	rec, err := svc.Refresh(context.Background(), "sentiment")
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if rec.Status != StatusReady {
		t.Fatalf("expected ready, got %s", rec.Status)
	}
	if _, ok := svc.Store().Get("sentiment"); !ok {
		t.Fatal("expected adopted record in store")
	}
}

func TestRefreshMapsFailedSynonym(t *testing.T) {
	api := &fakeAPI{statusSeq: []statusStep{
		{resp: client.StatusResponse{Status: "error", Error: "crash loop"}},
	}}
	svc := newTestService(t, api)

	rec, err := svc.Refresh(context.Background(), "sentiment")
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if rec.Status != StatusFailed || rec.Error != "crash loop" {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestRefreshPropagatesQueryError(t *testing.T) {
	api := &fakeAPI{statusSeq: []statusStep{{err: errors.New("connection refused")}}}
	svc := newTestService(t, api)

	if _, err := svc.Refresh(context.Background(), "sentiment"); err == nil {
		t.Fatal("expected error")
	}
	if _, ok := svc.Store().Get("sentiment"); ok {
		t.Fatal("expected no record after failed refresh")
	}
}

func TestRefreshRefusedWhilePolling(t *testing.T) {
	api := &fakeAPI{}
	svc := newTestService(t, api)
	submitDeploying(t, svc, api, "sentiment")

	if err := svc.Store().beginPoll("sentiment"); err != nil {
		t.Fatalf("beginPoll returned error: %v", err)
	}
	defer svc.Store().endPoll("sentiment")

	if _, err := svc.Refresh(context.Background(), "sentiment"); !errors.Is(err, ErrPollInProgress) {
		t.Fatalf("expected ErrPollInProgress, got %v", err)
	}
}
