package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateWritesStarterFiles(t *testing.T) {
	root := t.TempDir()
	dir, err := Generate(root, Project{Name: "sentiment-bot", Kind: "chatbot"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if dir != filepath.Join(root, "sentiment-bot") {
		t.Fatalf("unexpected target dir %q", dir)
	}
	for _, name := range []string{"README.md", "requirements.txt", "model.yaml", "app.py"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}
	readme, err := os.ReadFile(filepath.Join(dir, "README.md"))
	if err != nil {
		t.Fatalf("read README: %v", err)
	}
	if !strings.Contains(string(readme), "sentiment-bot") {
		t.Fatal("README not rendered with project name")
	}
	manifest, err := os.ReadFile(filepath.Join(dir, "model.yaml"))
	if err != nil {
		t.Fatalf("read model.yaml: %v", err)
	}
	if !strings.Contains(string(manifest), "framework: pytorch") {
		t.Fatal("expected default framework in manifest")
	}
}

func TestGenerateRefusesNonEmptyTarget(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "existing")
	if err := os.MkdirAll(target, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(target, "keep.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := Generate(root, Project{Name: "existing", Kind: "api"}); err == nil {
		t.Fatal("expected error for non-empty target")
	}
	if _, err := os.Stat(filepath.Join(target, "keep.txt")); err != nil {
		t.Fatalf("existing file must be untouched: %v", err)
	}
}

func TestGenerateRejectsUnknownKind(t *testing.T) {
	if _, err := Generate(t.TempDir(), Project{Name: "x", Kind: "quantum"}); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestGenerateRejectsEmptyName(t *testing.T) {
	if _, err := Generate(t.TempDir(), Project{Name: "  ", Kind: "api"}); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestGenerateEachKind(t *testing.T) {
	for _, kind := range Kinds() {
		root := t.TempDir()
		dir, err := Generate(root, Project{Name: "proj-" + kind, Kind: kind, Framework: "tensorflow"})
		if err != nil {
			t.Fatalf("Generate(%s) returned error: %v", kind, err)
		}
		reqs, err := os.ReadFile(filepath.Join(dir, "requirements.txt"))
		if err != nil {
			t.Fatalf("read requirements: %v", err)
		}
		if !strings.HasPrefix(string(reqs), "tensorflow") {
			t.Fatalf("expected framework in requirements for %s", kind)
		}
	}
}
