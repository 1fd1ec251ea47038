package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// SeedWorkspace creates a campaign workspace under a temp dir with a config
// file selecting the mock provider and a small marketing dataset, so smoke
// tests run without network access or credentials.
func SeedWorkspace(t *testing.T) string {
	t.Helper()

	fixture := filepath.Join(t.TempDir(), "fixture")
	if err := os.MkdirAll(filepath.Join(fixture, "data"), 0o755); err != nil {
		t.Fatalf("create fixture: %v", err)
	}

	config := "llm:\n  provider: mock\nlogging:\n  level: warn\n"
	if err := os.WriteFile(filepath.Join(fixture, "config.yml"), []byte(config), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	data := "channel,impressions,conversions\nInstagram,12000,340\nEmail,8000,410\nTikTok,15000,220\n"
	if err := os.WriteFile(filepath.Join(fixture, "data", "marketing_data.csv"), []byte(data), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}

	workspace := filepath.Join(t.TempDir(), "workspace")
	CopyDir(t, fixture, workspace)
	return workspace
}

// CopyDir copies a fixture directory into a destination path.
func CopyDir(t *testing.T, src, dst string) {
	t.Helper()
	if err := copyDir(src, dst); err != nil {
		t.Fatalf("copy dir %s to %s: %v", src, dst, err)
	}
}

func copyDir(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("source is not a directory")
	}
	if err := os.MkdirAll(dst, info.Mode()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.Type()&os.ModeSymlink != 0 {
			return fmt.Errorf("symlink not supported: %s", srcPath)
		}

		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(srcPath)
		if err != nil {
			return err
		}
		if err := os.WriteFile(dstPath, data, info.Mode()); err != nil {
			return err
		}
	}
	return nil
}
