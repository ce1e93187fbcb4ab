package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateTipFolders(t *testing.T) {
	root := t.TempDir()

	if err := CreateTipFolders(root, 5); err != nil {
		t.Fatalf("CreateTipFolders failed: %v", err)
	}

	for i := 1; i <= 5; i++ {
		dir := filepath.Join(root, fmt.Sprintf("Tip_%03d", i))
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected folder %s: %v", dir, err)
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", dir)
		}

		data, err := os.ReadFile(filepath.Join(dir, "README.md"))
		if err != nil {
			t.Fatalf("expected README in %s: %v", dir, err)
		}
		want := fmt.Sprintf("# Tip %d:", i)
		if !strings.Contains(string(data), want) {
			t.Errorf("README in %s missing header %q", dir, want)
		}
	}
}

func TestCreateTipFoldersPreservesExistingReadme(t *testing.T) {
	root := t.TempDir()

	if err := CreateTipFolders(root, 1); err != nil {
		t.Fatalf("CreateTipFolders failed: %v", err)
	}

	readme := filepath.Join(root, "Tip_001", "README.md")
	custom := "# Tip 1: My Edited Title\n\nreal content\n"
	if err := os.WriteFile(readme, []byte(custom), 0o644); err != nil {
		t.Fatalf("failed to edit README: %v", err)
	}

	if err := CreateTipFolders(root, 3); err != nil {
		t.Fatalf("second CreateTipFolders failed: %v", err)
	}

	data, err := os.ReadFile(readme)
	if err != nil {
		t.Fatalf("failed to read README: %v", err)
	}
	if string(data) != custom {
		t.Errorf("edited README was overwritten:\n%s", data)
	}

	if _, err := os.Stat(filepath.Join(root, "Tip_003")); err != nil {
		t.Errorf("expected Tip_003 to be created: %v", err)
	}
}

func TestRenameDayFolders(t *testing.T) {
	root := t.TempDir()

	for _, i := range []int{1, 2, 7} {
		dir := filepath.Join(root, fmt.Sprintf("Day_%03d", i))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("setup failed: %v", err)
		}
		readme := fmt.Sprintf("# Day %d: [Tip Title]\n", i)
		if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte(readme), 0o644); err != nil {
			t.Fatalf("setup failed: %v", err)
		}
	}

	renamed, err := RenameDayFolders(root)
	if err != nil {
		t.Fatalf("RenameDayFolders failed: %v", err)
	}
	if renamed != 3 {
		t.Errorf("renamed = %d, want 3", renamed)
	}

	for _, i := range []int{1, 2, 7} {
		oldDir := filepath.Join(root, fmt.Sprintf("Day_%03d", i))
		if _, err := os.Stat(oldDir); !os.IsNotExist(err) {
			t.Errorf("old folder %s still exists", oldDir)
		}

		newDir := filepath.Join(root, fmt.Sprintf("Tip_%03d", i))
		data, err := os.ReadFile(filepath.Join(newDir, "README.md"))
		if err != nil {
			t.Fatalf("expected README in %s: %v", newDir, err)
		}
		want := fmt.Sprintf("# Tip %d:", i)
		if !strings.Contains(string(data), want) {
			t.Errorf("README in %s not retitled: %s", newDir, data)
		}
	}
}

func TestRenameDayFoldersHandlesMissingReadme(t *testing.T) {
	root := t.TempDir()

	if err := os.MkdirAll(filepath.Join(root, "Day_004"), 0o755); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	renamed, err := RenameDayFolders(root)
	if err != nil {
		t.Fatalf("RenameDayFolders failed: %v", err)
	}
	if renamed != 1 {
		t.Errorf("renamed = %d, want 1", renamed)
	}
	if _, err := os.Stat(filepath.Join(root, "Tip_004")); err != nil {
		t.Errorf("expected Tip_004: %v", err)
	}
}

func TestRenameDayFoldersNothingToDo(t *testing.T) {
	root := t.TempDir()

	if err := CreateTipFolders(root, 2); err != nil {
		t.Fatalf("CreateTipFolders failed: %v", err)
	}

	renamed, err := RenameDayFolders(root)
	if err != nil {
		t.Fatalf("RenameDayFolders failed: %v", err)
	}
	if renamed != 0 {
		t.Errorf("renamed = %d, want 0", renamed)
	}
}
