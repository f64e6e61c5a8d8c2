package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"mergepick/internal/util"
)

// conflictedRepo builds a repository whose last merge left conflict.txt unmerged.
func conflictedRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	t.Setenv("GIT_AUTHOR_NAME", "test")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "test")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")
	t.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)

	dir := t.TempDir()
	ctx := context.Background()
	git := func(args ...string) {
		t.Helper()
		if _, err := util.Run(ctx, dir, "git", args...); err != nil {
			t.Fatalf("git %v: %v", args, err)
		}
	}
	write := func(content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, "conflict.txt"), []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}

	git("init", "-q", "-b", "main")
	write("base\n")
	git("add", "conflict.txt")
	git("commit", "-q", "-m", "base")

	git("checkout", "-q", "-b", "feature")
	write("feature\n")
	git("commit", "-q", "-am", "feature")

	git("checkout", "-q", "main")
	write("main\n")
	git("commit", "-q", "-am", "main")

	// The merge exits non-zero because of the conflict.
	_, _ = util.Run(ctx, dir, "git", "merge", "-q", "feature")
	return dir
}

func TestListConflictedFilesAndStage(t *testing.T) {
	dir := conflictedRepo(t)
	ctx := context.Background()

	root, err := DiscoverRepoRoot(ctx, dir)
	if err != nil {
		t.Fatalf("DiscoverRepoRoot() error = %v", err)
	}
	if root == "" {
		t.Fatalf("expected repo root")
	}

	status := NewStatusService()
	paths, err := status.ListConflictedFiles(ctx, dir)
	if err != nil {
		t.Fatalf("ListConflictedFiles() error = %v", err)
	}
	if len(paths) != 1 || paths[0] != "conflict.txt" {
		t.Fatalf("ListConflictedFiles() = %v, want [conflict.txt]", paths)
	}

	if err := os.WriteFile(filepath.Join(dir, "conflict.txt"), []byte("main\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := NewStageService().Stage(ctx, dir, "conflict.txt"); err != nil {
		t.Fatalf("Stage() error = %v", err)
	}

	paths, err = status.ListConflictedFiles(ctx, dir)
	if err != nil {
		t.Fatalf("ListConflictedFiles() error = %v", err)
	}
	if len(paths) != 0 {
		t.Fatalf("expected no conflicts after staging, got %v", paths)
	}
}

func TestStageWithoutPathsIsNoop(t *testing.T) {
	if err := NewStageService().Stage(context.Background(), t.TempDir()); err != nil {
		t.Fatalf("Stage() error = %v", err)
	}
}
