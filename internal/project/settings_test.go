package project

import (
	"strings"
	"testing"
)

func TestURLDerivation(t *testing.T) {
	s := NewSettings()
	s.GitHubUsername = "octocat"
	s.GitHubRepositoryName = "hello-world"

	repo := "https://github.com/octocat/hello-world"
	tests := []struct {
		field string
		want  string
	}{
		{"homepage", repo},
		{"download", repo},
		{"changelog", repo + "/commits"},
		{"releasenotes", repo + "/commits"},
		{"documentation", repo + "/README.md"},
		{"issues", repo + "/issues"},
		{"source", repo + ".git"},
		{"funding", ""},
	}
	for _, tt := range tests {
		if got := s.URL(tt.field); got != tt.want {
			t.Errorf("URL(%q) = %q, want %q", tt.field, got, tt.want)
		}
	}
}

func TestURLExplicitWinsOverDerived(t *testing.T) {
	s := NewSettings()
	s.URLs.Homepage = "https://example.com"
	if got := s.URL("homepage"); got != "https://example.com" {
		t.Errorf("URL(homepage) = %q, want explicit value", got)
	}
}

func TestResolvedURLsSkipsFunding(t *testing.T) {
	s := NewSettings()
	for _, u := range s.ResolvedURLs() {
		if u.Label == "Funding" {
			t.Error("funding should not resolve without an explicit URL")
		}
		if u.URL == "" {
			t.Errorf("%s resolved to empty URL", u.Label)
		}
	}

	s.URLs.Funding = "https://example.com/sponsor"
	found := false
	for _, u := range s.ResolvedURLs() {
		if u.Label == "Funding" && u.URL == "https://example.com/sponsor" {
			found = true
		}
	}
	if !found {
		t.Error("explicit funding URL missing from ResolvedURLs")
	}
}

func TestIsDefault(t *testing.T) {
	s := NewSettings()
	if !s.IsDefault(FieldAuthorName) {
		t.Error("fresh settings should report author_name as default")
	}
	if !s.IsDefault(FieldGitHubRepo) {
		t.Error("fresh settings should report github_repositoryname as default")
	}

	s.AuthorName = "Jane Doe"
	if s.IsDefault(FieldAuthorName) {
		t.Error("author_name no longer default after set")
	}

	if !s.IsDefault(FieldGitHubUser) {
		t.Error("fresh settings should report github_username as default")
	}
	s.GitHubUsername = "jdoe"
	if s.IsDefault(FieldGitHubUser) {
		t.Error("github_username no longer default after set")
	}

	if s.IsDefault("unknown_field") {
		t.Error("unknown fields are never default")
	}
}

func TestValidate(t *testing.T) {
	s := NewSettings()
	s.Name = "mypkg"
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() on defaults: %v", err)
	}

	s.Version = "not-a-version"
	if err := s.Validate(); err == nil {
		t.Error("Validate() should reject a non-semver version")
	}

	s.Version = "v1.2.3"
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() should tolerate a v prefix: %v", err)
	}

	s.Version = "0.1.0"
	s.Name = ""
	if err := s.Validate(); err == nil {
		t.Error("Validate() should reject an empty name")
	}
}

func TestNiceString(t *testing.T) {
	s := NewSettings()
	s.Name = "mypkg"
	s.LicenseID = "mit"

	out := s.NiceString()
	if !strings.Contains(out, "mypkg") {
		t.Error("NiceString missing package name")
	}
	if !strings.Contains(out, "mit") {
		t.Error("NiceString missing license id")
	}
	// Values align into a second column.
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, " ") {
			t.Errorf("line %q is not two columns", line)
		}
	}
}
