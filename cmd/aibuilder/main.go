package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/zalando/go-keyring"
	"golang.org/x/term"

	"github.com/digitalproph8/ai-builder-cli/internal/backend"
	"github.com/digitalproph8/ai-builder-cli/internal/client"
	"github.com/digitalproph8/ai-builder-cli/internal/deploy"
	"github.com/digitalproph8/ai-builder-cli/internal/scaffold"
	"github.com/digitalproph8/ai-builder-cli/pkg/config"
	"github.com/digitalproph8/ai-builder-cli/pkg/logger"
)

const (
	keyringService = "aibuilder"
	keyringUser    = "api-token"
)

var buildVersion = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	args := os.Args[2:]

	config.LoadDotenv("")

	var err error
	switch cmd {
	case "init":
		err = commandInit(args)
	case "login":
		err = commandLogin(args)
	case "logout":
		err = commandLogout(args)
	case "deploy":
		err = commandDeploy(args)
	case "status":
		err = commandStatus(args)
	case "watch":
		err = commandWatch(args)
	case "infer":
		err = commandInfer(args)
	case "version", "--version", "-v":
		printVersion()
		return
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func commandInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	name := fs.String("name", "", "Project name")
	kind := fs.String("kind", "chatbot", "Project kind ("+strings.Join(scaffold.Kinds(), "|")+")")
	framework := fs.String("framework", "pytorch", "ML framework")
	dir := fs.String("dir", "", "Parent directory (default from AI_BUILDER_PROJECTS_DIR)")
	fs.Parse(args)

	if strings.TrimSpace(*name) == "" {
		return errors.New("--name is required")
	}
	cfg := config.LoadCLIConfig()
	root := strings.TrimSpace(*dir)
	if root == "" {
		root = cfg.ScaffoldTargetBase
	}
	path, err := scaffold.Generate(root, scaffold.Project{
		Name:      *name,
		Kind:      *kind,
		Framework: *framework,
	})
	if err != nil {
		return err
	}
	fmt.Printf("project created: %s\n", path)
	return nil
}

func commandLogin(args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	token := fs.String("token", "", "API token (supply to avoid prompt)")
	fs.Parse(args)

	secret := strings.TrimSpace(*token)
	if secret == "" {
		fmt.Print("API token: ")
		bytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Print("\n")
		if err != nil {
			return fmt.Errorf("read token: %w", err)
		}
		secret = strings.TrimSpace(string(bytes))
	}
	if secret == "" {
		return errors.New("token cannot be empty")
	}
	if err := keyring.Set(keyringService, keyringUser, secret); err != nil {
		return fmt.Errorf("store token in keyring: %w", err)
	}
	fmt.Println("token stored")
	return nil
}

func commandLogout(args []string) error {
	if err := keyring.Delete(keyringService, keyringUser); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Println("no stored token")
			return nil
		}
		return fmt.Errorf("remove token from keyring: %w", err)
	}
	fmt.Println("token removed")
	return nil
}

func commandDeploy(args []string) error {
	fs := flag.NewFlagSet("deploy", flag.ExitOnError)
	model := fs.String("model", "", "Model name")
	framework := fs.String("framework", "pytorch", "ML framework")
	requirements := fs.String("requirements", "", "Comma-separated pip requirements")
	replicas := fs.Int("replicas", 1, "Replica count")
	wait := fs.Bool("wait", true, "Poll until the deployment is terminal")
	interval := fs.Int("interval", 0, "Poll interval in seconds (0 uses the backend profile)")
	attempts := fs.Int("attempts", 0, "Maximum poll attempts (0 uses the backend profile)")
	fs.Parse(args)

	if strings.TrimSpace(*model) == "" {
		return errors.New("--model is required")
	}

	svc, cfg, err := buildService()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	rec, err := svc.Submit(ctx, *model, deploy.SubmitConfig{
		Framework: *framework,
		DeploymentConfig: map[string]any{
			"replicas": *replicas,
		},
		Requirements: splitList(*requirements),
	})
	cancel()
	if err != nil {
		return err
	}
	fmt.Printf("deployment submitted: %s status=%s\n", rec.Name, rec.Status)

	if !*wait {
		return nil
	}
	outcome, err := svc.Poll(context.Background(), rec.Name, pollOptions(svc, cfg, *interval, *attempts))
	if err != nil {
		return err
	}
	printOutcome(rec.Name, outcome)
	return nil
}

func commandStatus(args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	model := fs.String("model", "", "Model name")
	fs.Parse(args)

	if strings.TrimSpace(*model) == "" {
		return errors.New("--model is required")
	}
	svc, cfg, err := buildService()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	rec, err := svc.Refresh(ctx, *model)
	if err != nil {
		return err
	}
	fmt.Printf("%s\t%s\t%s\n", rec.Name, rec.Status, rec.Endpoint)
	if rec.Error != "" {
		fmt.Printf("error: %s\n", rec.Error)
	}
	return nil
}

func commandWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	model := fs.String("model", "", "Model name")
	interval := fs.Int("interval", 0, "Poll interval in seconds (0 uses the backend profile)")
	attempts := fs.Int("attempts", 0, "Maximum poll attempts (0 uses the backend profile)")
	fs.Parse(args)

	if strings.TrimSpace(*model) == "" {
		return errors.New("--model is required")
	}
	svc, cfg, err := buildService()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	if _, err := svc.Refresh(ctx, *model); err != nil {
		cancel()
		return err
	}
	cancel()

	outcome, err := svc.Poll(context.Background(), *model, pollOptions(svc, cfg, *interval, *attempts))
	if err != nil {
		return err
	}
	printOutcome(*model, outcome)
	return nil
}

func commandInfer(args []string) error {
	fs := flag.NewFlagSet("infer", flag.ExitOnError)
	model := fs.String("model", "", "Model name")
	data := fs.String("data", "", "Inference input as JSON")
	fs.Parse(args)

	if strings.TrimSpace(*model) == "" {
		return errors.New("--model is required")
	}
	if strings.TrimSpace(*data) == "" {
		return errors.New("--data is required")
	}
	if !json.Valid([]byte(*data)) {
		return errors.New("--data must be valid JSON")
	}

	svc, cfg, err := buildService()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	if _, err := svc.Refresh(ctx, *model); err != nil {
		return err
	}
	result, err := svc.Infer(ctx, *model, deploy.InferPayload{Data: json.RawMessage(*data)})
	if err != nil {
		return err
	}
	fmt.Println(string(result))
	return nil
}

func buildService() (*deploy.Service, config.CLIConfig, error) {
	cfg := config.LoadCLIConfig()
	log := logger.New("aibuilder", logger.Parse(cfg.LogLevel))

	b, err := backend.ByProfile(cfg.BackendProfile, cfg.APIBaseURL)
	if err != nil {
		return nil, cfg, err
	}

	opts := []client.Option{}
	switch b.Auth {
	case backend.AuthBasic:
		if cfg.BasicAuthUser != "" {
			opts = append(opts, client.WithBasicAuth(cfg.BasicAuthUser, cfg.BasicAuthPassword))
		}
	default:
		token := resolveToken(cfg)
		if token != "" {
			opts = append(opts, client.WithBearerToken(token))
		}
	}

	api, err := client.New(cfg.APIBaseURL, opts...)
	if err != nil {
		return nil, cfg, err
	}
	if !api.HasCredentials() {
		log.Warn("no credentials configured, requests may be rejected", "backend", b.Name)
	}

	svc, err := deploy.New(api, b, deploy.NewStore(), log, deploy.NewMetrics())
	if err != nil {
		return nil, cfg, err
	}
	return svc, cfg, nil
}

// resolveToken prefers the environment but falls back to the OS keyring
// populated by `aibuilder login`.
func resolveToken(cfg config.CLIConfig) string {
	if cfg.AuthToken != "" {
		return cfg.AuthToken
	}
	token, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(token)
}

func pollOptions(svc *deploy.Service, cfg config.CLIConfig, intervalSeconds, attempts int) deploy.PollOptions {
	opts := svc.DefaultPollOptions()
	if cfg.PollInterval > 0 {
		opts.Interval = cfg.PollInterval
	}
	if cfg.PollMaxAttempts > 0 {
		opts.MaxAttempts = cfg.PollMaxAttempts
	}
	if intervalSeconds > 0 {
		opts.Interval = time.Duration(intervalSeconds) * time.Second
	}
	if attempts > 0 {
		opts.MaxAttempts = attempts
	}
	return opts
}

func printOutcome(name string, outcome deploy.Outcome) {
	switch outcome.Status {
	case deploy.StatusReady:
		fmt.Printf("%s is ready at %s (after %d attempts)\n", name, outcome.Endpoint, outcome.Attempts)
	case deploy.StatusFailed:
		fmt.Printf("%s failed: %s\n", name, outcome.Error)
	default:
		fmt.Printf("%s finished with status %s\n", name, outcome.Status)
	}
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func printUsage() {
	fmt.Printf("aibuilder CLI %s\n\n", buildVersion)
	fmt.Print(`Usage:
	aibuilder init --name <project> [--kind chatbot|classifier|api] [--framework pytorch]
	aibuilder login [--token <token>]
	aibuilder logout
	aibuilder deploy --model <name> [--framework pytorch] [--requirements a,b] [--replicas N] [--wait=false]
	aibuilder status --model <name>
	aibuilder watch --model <name> [--interval seconds] [--attempts N]
	aibuilder infer --model <name> --data '<json>'
	aibuilder version
`)
}

func printVersion() {
	fmt.Println(strings.TrimSpace(buildVersion))
}
