// Package venv creates Python virtual environments and installs packages
// into them by shelling out to the local interpreter. Creation and install
// failures are distinct conditions so the create flow can report them
// separately.
package venv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

var (
	// ErrPythonNotAvailable is returned when no python executable is on PATH.
	ErrPythonNotAvailable = errors.New("python not available")

	// ErrEnvExists is returned by Create when the venv directory is present.
	ErrEnvExists = errors.New("virtual environment already exists")

	// ErrCreateFailed wraps a failed environment creation.
	ErrCreateFailed = errors.New("environment creation failed")

	// ErrInstallFailed wraps a failed package install.
	ErrInstallFailed = errors.New("install failed")
)

// dirName is the fixed relative path of the environment.
const dirName = ".venv"

// Environment manages one virtual environment below a project directory.
type Environment struct {
	parentDir string
}

// New creates an Environment rooted at the given project directory.
func New(parentDir string) *Environment {
	return &Environment{parentDir: parentDir}
}

// Dir returns the path of the venv directory.
func (e *Environment) Dir() string {
	return filepath.Join(e.parentDir, dirName)
}

// Python returns the interpreter path inside the venv, trying the POSIX
// layout first and the Windows layout second.
func (e *Environment) Python() (string, error) {
	candidates := []string{
		filepath.Join(e.Dir(), "bin", "python"),
		filepath.Join(e.Dir(), "Scripts", "python.exe"),
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no python executable found in %s", e.Dir())
}

// Create builds the virtual environment via "python -m venv".
func (e *Environment) Create(ctx context.Context) error {
	python, err := hostPython()
	if err != nil {
		return err
	}

	if _, err := os.Stat(e.Dir()); err == nil {
		return fmt.Errorf("%w: %s", ErrEnvExists, e.Dir())
	}

	cmd := exec.CommandContext(ctx, python, "-m", "venv", e.Dir())
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w: %v\n%s", ErrCreateFailed, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Install installs packages into the venv via pip. Paths in editable are
// installed with "-e" so source edits take effect without reinstalling.
func (e *Environment) Install(ctx context.Context, packages, editable []string) error {
	python, err := e.Python()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInstallFailed, err)
	}

	for _, pkg := range packages {
		if err := pipInstall(ctx, python, pkg); err != nil {
			return err
		}
	}
	for _, pkg := range editable {
		if err := pipInstall(ctx, python, pkg, "-e"); err != nil {
			return err
		}
	}
	return nil
}

// pipInstall runs "python -m pip install [pipArgs...] pkg".
func pipInstall(ctx context.Context, python, pkg string, pipArgs ...string) error {
	args := append([]string{"-m", "pip", "install"}, pipArgs...)
	args = append(args, pkg)

	cmd := exec.CommandContext(ctx, python, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w: %s: %v\n%s", ErrInstallFailed, pkg, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// hostPython locates the interpreter used to build the venv.
func hostPython() (string, error) {
	for _, name := range []string{"python3", "python"} {
		if p, err := exec.LookPath(name); err == nil {
			return p, nil
		}
	}
	return "", ErrPythonNotAvailable
}
