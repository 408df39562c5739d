// Package gitrepo wraps the local git executable for repository
// initialization and config lookups. Git absence is a recoverable
// condition: the create flow degrades to a warning instead of failing.
package gitrepo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

var (
	// ErrGitNotAvailable is returned when no git executable is on PATH.
	ErrGitNotAvailable = errors.New("git not available")

	// ErrRepoExists is returned by Init when the directory already holds a
	// .git directory.
	ErrRepoExists = errors.New("git repository already exists")

	// ErrRepoNotFound is returned by Add/Commit when the directory is not a
	// git repository.
	ErrRepoNotFound = errors.New("git repository not found")
)

// Repository wraps git operations rooted at one directory.
type Repository struct {
	dir     string
	gitPath string
}

// New creates a Repository for the given directory.
func New(dir string) *Repository {
	return &Repository{dir: dir, gitPath: "git"}
}

// SetGitPath overrides the git executable (useful for testing).
func (r *Repository) SetGitPath(path string) { r.gitPath = path }

// Available reports whether a git executable can be found on PATH.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Exists reports whether the directory already holds a git repository.
func (r *Repository) Exists() bool {
	out, _, err := r.run(context.Background(), "rev-parse", "--git-dir")
	if err != nil {
		return false
	}
	// rev-parse resolves enclosing repositories too; only treat the
	// directory itself as a repository.
	gitDir := out
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(r.dir, gitDir)
	}
	parent, _ := filepath.Abs(filepath.Dir(gitDir))
	dir, _ := filepath.Abs(r.dir)
	return parent == dir
}

// Init initializes a new repository in the directory.
func (r *Repository) Init(ctx context.Context) (string, error) {
	if !Available() {
		return "", ErrGitNotAvailable
	}
	if r.Exists() {
		return "", fmt.Errorf("%w: %s", ErrRepoExists, r.dir)
	}
	out, stderr, err := r.run(ctx, "init")
	if err != nil {
		return "", fmt.Errorf("git init: %w\n%s", err, stderr)
	}
	return out, nil
}

// Add stages all files in the directory.
func (r *Repository) Add(ctx context.Context) (string, error) {
	if !Available() {
		return "", ErrGitNotAvailable
	}
	if !r.Exists() {
		return "", fmt.Errorf("%w: %s", ErrRepoNotFound, r.dir)
	}
	out, stderr, err := r.run(ctx, "add", ".")
	if err != nil {
		return "", fmt.Errorf("git add: %w\n%s", err, stderr)
	}
	return out, nil
}

// Commit records the staged files with the given message.
func (r *Repository) Commit(ctx context.Context, message string) (string, error) {
	if !Available() {
		return "", ErrGitNotAvailable
	}
	if !r.Exists() {
		return "", fmt.Errorf("%w: %s", ErrRepoNotFound, r.dir)
	}
	out, stderr, err := r.run(ctx, "commit", "-m", message)
	if err != nil {
		return "", fmt.Errorf("git commit: %w\n%s", err, stderr)
	}
	return out, nil
}

// run executes one git command in the repository directory.
func (r *Repository) run(ctx context.Context, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, r.gitPath, args...)
	cmd.Dir = r.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return strings.TrimSpace(stdout.String()), strings.TrimSpace(stderr.String()), err
}

// Config holds git config values read once per process run and passed to
// the suggestion engine, instead of re-reading (or caching globally) on
// every lookup.
type Config struct {
	UserName  string
	UserEmail string
}

// LoadConfig reads the identity keys from the user's git config. Missing
// git or unset keys yield empty fields, never an error.
func LoadConfig(ctx context.Context) Config {
	return Config{
		UserName:  ConfigValue(ctx, "user.name"),
		UserEmail: ConfigValue(ctx, "user.email"),
	}
}

// ConfigValue returns one git config value, or "" when git is missing or
// the key is unset.
func ConfigValue(ctx context.Context, key string) string {
	if !Available() {
		return ""
	}
	out, err := exec.CommandContext(ctx, "git", "config", "--get", key).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
