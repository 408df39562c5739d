package gitrepo

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func requireGit(t *testing.T) {
	t.Helper()
	if !Available() {
		t.Skip("git not available")
	}
}

// setIdentity configures a repo-local identity so commits succeed on
// machines without a global git config.
func setIdentity(t *testing.T, dir string) {
	t.Helper()
	for _, kv := range [][2]string{
		{"user.name", "Test User"},
		{"user.email", "test@example.com"},
	} {
		cmd := exec.Command("git", "config", kv[0], kv[1])
		cmd.Dir = dir
		if err := cmd.Run(); err != nil {
			t.Fatalf("setting %s: %v", kv[0], err)
		}
	}
}

func TestInit(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	repo := New(dir)

	if repo.Exists() {
		t.Fatal("fresh directory should not be a repository")
	}
	if _, err := repo.Init(context.Background()); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if !repo.Exists() {
		t.Error("repository should exist after init")
	}
	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		t.Error(".git directory missing after init")
	}

	// A second init is refused.
	if _, err := repo.Init(context.Background()); !errors.Is(err, ErrRepoExists) {
		t.Errorf("second Init() error = %v, want ErrRepoExists", err)
	}
}

func TestAddCommit(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	repo := New(dir)
	ctx := context.Background()

	// Add before init is refused.
	if _, err := repo.Add(ctx); !errors.Is(err, ErrRepoNotFound) {
		t.Fatalf("Add() before init error = %v, want ErrRepoNotFound", err)
	}

	if _, err := repo.Init(ctx); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	setIdentity(t, dir)

	if err := os.WriteFile(filepath.Join(dir, "example.txt"), []byte("hello\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Add(ctx); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if _, err := repo.Commit(ctx, "Test commit"); err != nil {
		t.Fatalf("Commit() error: %v", err)
	}

	// Nothing staged: commit fails.
	if _, err := repo.Commit(ctx, "Empty commit"); err == nil {
		t.Error("Commit() with nothing staged should fail")
	}
}

func TestConfigValueUnsetKey(t *testing.T) {
	requireGit(t)
	if v := ConfigValue(context.Background(), "pkgforge.thiskeydoesnotexist"); v != "" {
		t.Errorf("unset key returned %q, want empty", v)
	}
}

func TestLoadConfigWithoutGitIsEmpty(t *testing.T) {
	if Available() {
		t.Skip("git is available")
	}
	cfg := LoadConfig(context.Background())
	if cfg.UserName != "" || cfg.UserEmail != "" {
		t.Errorf("LoadConfig() without git = %+v, want zero value", cfg)
	}
}
