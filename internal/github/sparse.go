package github

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrDestinationExists is returned when the checkout destination is already
// present. The destination is never replaced or merged into.
var ErrDestinationExists = errors.New("destination already exists")

// tmpSuffix is appended to the destination dir during the staged checkout.
const tmpSuffix = ".tmp"

// SparseCheckout materializes the repository (or one subfolder) into destDir
// using the local git client's sparse-checkout feature instead of the REST
// API. This trades API rate limits for requiring git on PATH and fetching
// the full history metadata of one commit.
//
// The checkout is staged: files land in a .tmp directory first and are moved
// into place on success. On failure the .tmp directory is cleaned up. An
// existing destination is refused before anything is fetched.
func SparseCheckout(ctx context.Context, repo Repository, subfolder, destDir string) error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git is required for sparse checkout but not found in PATH")
	}

	if _, err := os.Stat(destDir); err == nil {
		return fmt.Errorf("%w: %s", ErrDestinationExists, destDir)
	}

	tmpDir := destDir + tmpSuffix

	// Clean up any leftover tmp dir from a previous failed attempt.
	_ = os.RemoveAll(tmpDir)

	if err := os.MkdirAll(filepath.Dir(tmpDir), 0755); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}

	if err := sparseClone(ctx, repo, subfolder, tmpDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return err
	}

	// Move the requested tree into place.
	src := tmpDir
	if subfolder != "" {
		src = filepath.Join(tmpDir, filepath.FromSlash(subfolder))
		if _, err := os.Stat(src); err != nil {
			_ = os.RemoveAll(tmpDir)
			return fmt.Errorf("subfolder %q: %w", subfolder, ErrNotFound)
		}
	} else {
		// Full-tree checkout: drop the git metadata before the move.
		_ = os.RemoveAll(filepath.Join(tmpDir, ".git"))
	}

	if err := os.MkdirAll(filepath.Dir(destDir), 0755); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("creating destination parent: %w", err)
	}
	if err := os.Rename(src, destDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("finalizing checkout: %w", err)
	}
	_ = os.RemoveAll(tmpDir)

	return nil
}

// sparseClone runs the three-step sparse checkout into targetDir.
func sparseClone(ctx context.Context, repo Repository, subfolder, targetDir string) error {
	args := []string{"clone", "--depth=1", "--sparse", "--no-checkout", "--branch", repo.Branch, repo.CloneURL(), targetDir}
	if err := runGit(ctx, "", args...); err != nil {
		return fmt.Errorf("sparse clone: %w", err)
	}

	sparsePath := "/*"
	if subfolder != "" {
		sparsePath = strings.Trim(subfolder, "/")
	}
	if err := runGit(ctx, targetDir, "sparse-checkout", "set", "--no-cone", sparsePath); err != nil {
		return fmt.Errorf("sparse-checkout set: %w", err)
	}

	if err := runGit(ctx, targetDir, "checkout", repo.Branch); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	return nil
}

// runGit executes one git command, surfacing combined output on failure.
func runGit(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w\n%s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
