package backend

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// AuthScheme selects how credentials are attached to platform requests.
type AuthScheme string

// Supported auth schemes.
const (
	AuthBearer AuthScheme = "bearer"
	AuthBasic  AuthScheme = "basic"
)

// Class is the normalized reading of a remote status string.
type Class int

// Status classes. Anything that is neither ready nor failed keeps the
// poller going.
const (
	ClassPending Class = iota
	ClassReady
	ClassFailed
)

// Backend describes one remote deployment platform: where it lives, how to
// authenticate, which paths to hit and how to read its status vocabulary.
// The three hand-rolled integrations this replaces differed only in these
// fields.
type Backend struct {
	Name           string
	BaseURL        string
	Auth           AuthScheme
	SubmitPath     string
	StatusPath     string
	InferPath      string
	ReadySynonyms  []string
	FailedSynonyms []string
	PollInterval   time.Duration
	MaxAttempts    int
}

var defaultReady = []string{"ready", "succeeded", "success"}
var defaultFailed = []string{"failed", "error"}

// Fast returns the profile tuned for fast self-hosted endpoints.
func Fast(baseURL string) Backend {
	return Backend{
		Name:         "fast",
		BaseURL:      baseURL,
		Auth:         AuthBearer,
		SubmitPath:   "/deploy",
		StatusPath:   "/status/%s",
		InferPath:    "/infer",
		PollInterval: 5 * time.Second,
		MaxAttempts:  30,
	}
}

// Managed returns the profile tuned for slower managed platforms.
func Managed(baseURL string) Backend {
	return Backend{
		Name:         "managed",
		BaseURL:      baseURL,
		Auth:         AuthBasic,
		SubmitPath:   "/deploy",
		StatusPath:   "/api/models/%s/status",
		InferPath:    "/infer",
		PollInterval: 10 * time.Second,
		MaxAttempts:  60,
	}
}

// ByProfile resolves a named profile.
func ByProfile(profile, baseURL string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(profile)) {
	case "", "fast":
		return Fast(baseURL), nil
	case "managed":
		return Managed(baseURL), nil
	default:
		return Backend{}, fmt.Errorf("unknown backend profile %q", profile)
	}
}

// Validate checks the descriptor is usable.
func (b Backend) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return errors.New("backend: name is required")
	}
	if b.SubmitPath == "" || b.StatusPath == "" || b.InferPath == "" {
		return errors.New("backend: submit, status and infer paths are required")
	}
	if !strings.Contains(b.StatusPath, "%s") {
		return errors.New("backend: status path must contain a %s placeholder")
	}
	if b.PollInterval < 0 {
		return errors.New("backend: poll interval must not be negative")
	}
	if b.MaxAttempts <= 0 {
		return errors.New("backend: max attempts must be positive")
	}
	return nil
}

// StatusPathFor renders the status path for a deployment name.
func (b Backend) StatusPathFor(name string) string {
	return fmt.Sprintf(b.StatusPath, url.PathEscape(name))
}

// Classify normalizes a remote status string. Matching is case-insensitive;
// the per-backend synonym lists extend the defaults rather than replace them.
func (b Backend) Classify(raw string) Class {
	status := strings.ToLower(strings.TrimSpace(raw))
	if status == "" {
		return ClassPending
	}
	for _, s := range defaultReady {
		if status == s {
			return ClassReady
		}
	}
	for _, s := range b.ReadySynonyms {
		if status == strings.ToLower(s) {
			return ClassReady
		}
	}
	for _, s := range defaultFailed {
		if status == s {
			return ClassFailed
		}
	}
	for _, s := range b.FailedSynonyms {
		if status == strings.ToLower(s) {
			return ClassFailed
		}
	}
	return ClassPending
}
