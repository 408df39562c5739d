package project

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const githubBaseURL = "https://github.com"

// Placeholder defaults used when a field was never set. The suggestion
// engine compares against these to decide whether to offer a value.
const (
	DefaultName           = "PACKAGENAME"
	DefaultDescription    = "PACKAGEDESCRIPTION"
	DefaultAuthorName     = "AUTHORNAME"
	DefaultAuthorMail     = "AUTHORMAIL@SOMETHING.com"
	DefaultGitHubUsername = "USERNAME"
	DefaultGitHubRepoName = "REPOSITORYNAME"
	DefaultVersion        = "0.1.0"
)

// Suggestible field identifiers, shared with the prompt engine.
const (
	FieldAuthorName = "author_name"
	FieldAuthorMail = "author_mail"
	FieldGitHubUser = "github_username"
	FieldGitHubRepo = "github_repositoryname"
)

// URLSet holds the project URLs written to the packaging manifest.
// Empty fields are derived from the GitHub repository URL on access.
type URLSet struct {
	Changelog     string `yaml:"changelog"`
	Documentation string `yaml:"documentation"`
	Download      string `yaml:"download"`
	Funding       string `yaml:"funding"`
	Homepage      string `yaml:"homepage"`
	Issues        string `yaml:"issues"`
	ReleaseNotes  string `yaml:"releasenotes"`
	Source        string `yaml:"source"`
}

// Settings carries all user-supplied project metadata for one create run.
// It is constructed from CLI flags (plus optional prompts), consumed by the
// scaffold templates, and discarded afterwards.
type Settings struct {
	Name                 string   `yaml:"name"`
	Description          string   `yaml:"description"`
	Version              string   `yaml:"version"`
	LicenseID            string   `yaml:"license"`
	AuthorName           string   `yaml:"author_name"`
	AuthorMail           string   `yaml:"author_mail"`
	GitHubUsername       string   `yaml:"github_username"`
	GitHubRepositoryName string   `yaml:"github_repositoryname"`
	Script               bool     `yaml:"script"`
	Dependencies         []string `yaml:"dependencies"`
	OptionalDependencies []string `yaml:"optional_dependencies"`
	Classifiers          []string `yaml:"classifiers"`
	URLs                 URLSet   `yaml:"urls"`
}

// NewSettings returns Settings with all placeholder defaults populated.
func NewSettings() *Settings {
	return &Settings{
		Name:                 DefaultName,
		Description:          DefaultDescription,
		Version:              DefaultVersion,
		AuthorName:           DefaultAuthorName,
		AuthorMail:           DefaultAuthorMail,
		GitHubUsername:       DefaultGitHubUsername,
		GitHubRepositoryName: DefaultGitHubRepoName,
		Classifiers: []string{
			"Programming Language :: Python :: 3",
			"Operating System :: OS Independent",
		},
	}
}

// Validate checks invariants that hold before any file is written.
func (s *Settings) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("package name must not be empty")
	}
	if _, err := semver.NewVersion(strings.TrimPrefix(s.Version, "v")); err != nil {
		return fmt.Errorf("invalid package version %q: %w", s.Version, err)
	}
	return nil
}

// IsDefault reports whether a suggestible field still carries its placeholder.
func (s *Settings) IsDefault(field string) bool {
	switch field {
	case FieldAuthorName:
		return s.AuthorName == DefaultAuthorName
	case FieldAuthorMail:
		return s.AuthorMail == DefaultAuthorMail
	case FieldGitHubUser:
		return s.GitHubUsername == DefaultGitHubUsername
	case FieldGitHubRepo:
		return s.GitHubRepositoryName == DefaultGitHubRepoName
	default:
		return false
	}
}

// RepoURL returns the web URL of the GitHub repository.
func (s *Settings) RepoURL() string {
	return fmt.Sprintf("%s/%s/%s", githubBaseURL, s.GitHubUsername, s.GitHubRepositoryName)
}

// OwnerURL returns the web URL of the repository owner.
func (s *Settings) OwnerURL() string {
	return fmt.Sprintf("%s/%s", githubBaseURL, s.GitHubUsername)
}

// URL resolves a named project URL, falling back to a GitHub subpage derived
// from username+reponame when the field is unset. Funding has no derived
// default and resolves to "" when unset.
func (s *Settings) URL(name string) string {
	repo := s.RepoURL()
	switch name {
	case "changelog":
		return orDerived(s.URLs.Changelog, repo+"/commits")
	case "documentation":
		return orDerived(s.URLs.Documentation, repo+"/README.md")
	case "download":
		return orDerived(s.URLs.Download, repo)
	case "funding":
		return s.URLs.Funding
	case "homepage":
		return orDerived(s.URLs.Homepage, repo)
	case "issues":
		return orDerived(s.URLs.Issues, repo+"/issues")
	case "releasenotes":
		return orDerived(s.URLs.ReleaseNotes, repo+"/commits")
	case "source":
		return orDerived(s.URLs.Source, repo+".git")
	default:
		return ""
	}
}

func orDerived(explicit, derived string) string {
	if explicit != "" {
		return explicit
	}
	return derived
}

// URLFieldNames returns the names of all project URL fields, sorted.
func URLFieldNames() []string {
	return []string{
		"changelog", "documentation", "download", "funding",
		"homepage", "issues", "releasenotes", "source",
	}
}

// NamedURL is one resolved project URL with its manifest label.
type NamedURL struct {
	Label string // Capitalized, e.g. "Changelog"
	URL   string
}

var titleCaser = cases.Title(language.English)

// ResolvedURLs returns all non-empty project URLs in stable label order.
func (s *Settings) ResolvedURLs() []NamedURL {
	var out []NamedURL
	for _, name := range URLFieldNames() {
		if u := s.URL(name); u != "" {
			out = append(out, NamedURL{Label: titleCaser.String(name), URL: u})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// NiceString returns an aligned table of all set fields for the
// pre-creation summary prompt.
func (s *Settings) NiceString() string {
	rows := [][2]string{
		{"name", s.Name},
		{"description", s.Description},
		{"version", s.Version},
		{"license", s.LicenseID},
		{"author_name", s.AuthorName},
		{"author_mail", s.AuthorMail},
		{"github_username", s.GitHubUsername},
		{"github_repositoryname", s.GitHubRepositoryName},
	}
	for _, name := range URLFieldNames() {
		if u := s.URL(name); u != "" {
			rows = append(rows, [2]string{name, u})
		}
	}

	width := 0
	for _, row := range rows {
		if len(row[0]) > width {
			width = len(row[0])
		}
	}

	var b strings.Builder
	for i, row := range rows {
		if row[1] == "" {
			continue
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-*s %s", width, row[0], row[1])
	}
	return b.String()
}
