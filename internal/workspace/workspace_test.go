package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolvePaths(t *testing.T) {
	root := t.TempDir()

	ws, err := Resolve(root)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if ws.Root != root {
		t.Errorf("Root = %q, want %q", ws.Root, root)
	}
	if want := filepath.Join(root, "campaign_context.json"); ws.ContextFile != want {
		t.Errorf("ContextFile = %q, want %q", ws.ContextFile, want)
	}
	if want := filepath.Join(root, "data", "marketing_data.csv"); ws.DataFile != want {
		t.Errorf("DataFile = %q, want %q", ws.DataFile, want)
	}
	if want := filepath.Join(root, "audit", "audit.sqlite"); ws.AuditDBPath != want {
		t.Errorf("AuditDBPath = %q, want %q", ws.AuditDBPath, want)
	}
}

func TestResolveMissingRoot(t *testing.T) {
	if _, err := Resolve(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing root")
	}
	if _, err := Resolve(""); err == nil {
		t.Fatal("expected error for empty root")
	}
}

func TestResolveRejectsFileRoot(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Resolve(file); err == nil {
		t.Fatal("expected error for file root")
	}
}

func TestEnsureDirs(t *testing.T) {
	root := t.TempDir()
	ws, err := Resolve(root)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if err := ws.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}
	for _, dir := range []string{
		ws.ArtifactsDir,
		ws.AuditDir,
		ws.MemoryDir,
		filepath.Join(ws.ArtifactsDir, "reports"),
	} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("missing dir %s: %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", dir)
		}
	}
}

func TestResolvePath(t *testing.T) {
	root := t.TempDir()
	ws, err := Resolve(root)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	got, err := ws.ResolvePath("reports/out.json")
	if err != nil {
		t.Fatalf("ResolvePath: %v", err)
	}
	if want := filepath.Join(root, "reports", "out.json"); got != want {
		t.Errorf("relative path = %q, want %q", got, want)
	}

	abs := filepath.Join(t.TempDir(), "elsewhere.json")
	got, err = ws.ResolvePath(abs)
	if err != nil {
		t.Fatalf("ResolvePath abs: %v", err)
	}
	if got != abs {
		t.Errorf("absolute path = %q, want %q", got, abs)
	}

	got, err = ws.ResolvePath("  ")
	if err != nil {
		t.Fatalf("ResolvePath blank: %v", err)
	}
	if got != "" {
		t.Errorf("blank path = %q, want empty", got)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}

	got, err := expandHome("~/projects")
	if err != nil {
		t.Fatalf("expandHome: %v", err)
	}
	if want := filepath.Join(home, "projects"); got != want {
		t.Errorf("expandHome = %q, want %q", got, want)
	}

	if _, err := expandHome("~user/projects"); err == nil {
		t.Fatal("expected error for ~user expansion")
	}
}
