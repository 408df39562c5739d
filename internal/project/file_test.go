package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeProjectFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing project file: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeProjectFile(t, `
name: mypkg
description: A test package
version: 1.0.0
author_name: Jane Doe
dependencies:
  - numpy
urls:
  homepage: https://example.com
`)

	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if s.Name != "mypkg" {
		t.Errorf("Name = %q, want %q", s.Name, "mypkg")
	}
	if s.Version != "1.0.0" {
		t.Errorf("Version = %q, want %q", s.Version, "1.0.0")
	}
	if len(s.Dependencies) != 1 || s.Dependencies[0] != "numpy" {
		t.Errorf("Dependencies = %v", s.Dependencies)
	}
	if s.URLs.Homepage != "https://example.com" {
		t.Errorf("Homepage = %q", s.URLs.Homepage)
	}
	// Unset fields keep their placeholders.
	if s.AuthorMail != DefaultAuthorMail {
		t.Errorf("AuthorMail = %q, want placeholder", s.AuthorMail)
	}
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	path := writeProjectFile(t, "name: mypkg\nnot_a_field: true\n")
	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() should reject unknown keys")
	}
}

func TestLoadFileRejectsBadVersion(t *testing.T) {
	path := writeProjectFile(t, "name: mypkg\nversion: latest\n")
	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() should reject a non-semver version")
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("LoadFile() should fail for a missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist, got %v", err)
	}
}
