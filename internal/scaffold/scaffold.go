package scaffold

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/pkgforge-labs/pkgforge/internal/project"
)

// ErrExists is returned when the project path is already present.
// The create flow aborts before any file is written.
var ErrExists = errors.New("project path already exists")

// minPython is the default lower bound written to requires-python.
const minPython = "3.10"

// Result holds the outcome of a scaffold generation.
type Result struct {
	ProjectDir string
	Files      []string // Relative to ProjectDir, in creation order.
	Warnings   []string
}

// templateData holds all variables available to scaffold templates.
type templateData struct {
	Name                 string
	Description          string
	Version              string
	AuthorName           string
	AuthorMail           string
	Script               bool
	Dependencies         []string
	OptionalDependencies []string
	Classifiers          []string
	ProjectURLs          []project.NamedURL
	OwnerURL             string
	SourceURL            string
	IssuesURL            string
	LicenseName          string
	MinPython            string
	Year                 int
}

// newTemplateData derives template variables from the project settings.
func newTemplateData(s *project.Settings, licenseText string) *templateData {
	d := &templateData{
		Name:                 s.Name,
		Description:          s.Description,
		Version:              s.Version,
		AuthorName:           s.AuthorName,
		AuthorMail:           s.AuthorMail,
		Script:               s.Script,
		Dependencies:         s.Dependencies,
		OptionalDependencies: s.OptionalDependencies,
		Classifiers:          s.Classifiers,
		ProjectURLs:          s.ResolvedURLs(),
		OwnerURL:             s.OwnerURL(),
		SourceURL:            s.URL("source"),
		IssuesURL:            s.URL("issues"),
		LicenseName:          "LICENSENAME",
		MinPython:            minPython,
		Year:                 time.Now().Year(),
	}

	// The catalog serves license texts with the full name on the first line.
	if line, _, ok := strings.Cut(strings.TrimLeft(licenseText, "\n"), "\n"); ok && strings.TrimSpace(line) != "" {
		d.LicenseName = strings.TrimSpace(line)
	}

	return d
}

// planEntry maps one embedded template to its output path inside the project.
type planEntry struct {
	tmpl   string // File name under scaffolds/package/.
	outRel string // Output path relative to the project directory.
}

// plan returns the template/output pairs implied by the active settings.
func plan(s *project.Settings) []planEntry {
	srcDir := filepath.Join("src", s.Name)
	entries := []planEntry{
		{"gitignore.tmpl", ".gitignore"},
		{"README.md.tmpl", "README.md"},
		{"pyproject.toml.tmpl", "pyproject.toml"},
		{"init.py.tmpl", filepath.Join(srcDir, "__init__.py")},
	}
	if s.Script {
		entries = append(entries, planEntry{"main.py.tmpl", filepath.Join(srcDir, "__main__.py")})
	}
	return entries
}

// Generate creates a new package layout at <destination>/<name>.
//
// licenseText, when non-empty, is written verbatim to LICENSE. The target
// directory must not exist yet; nothing is written when it does.
func Generate(s *project.Settings, destination, licenseText string) (*Result, error) {
	projectDir := filepath.Join(destination, s.Name)

	if _, err := os.Stat(projectDir); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrExists, projectDir)
	}

	if err := os.MkdirAll(projectDir, 0755); err != nil {
		return nil, fmt.Errorf("creating project directory: %w", err)
	}

	result := &Result{ProjectDir: projectDir}
	data := newTemplateData(s, licenseText)

	for _, entry := range plan(s) {
		content, err := render(entry.tmpl, data)
		if err != nil {
			return nil, err
		}

		outPath := filepath.Join(projectDir, entry.outRel)
		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return nil, fmt.Errorf("creating directory for %s: %w", entry.outRel, err)
		}
		if err := os.WriteFile(outPath, content, 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", entry.outRel, err)
		}
		result.Files = append(result.Files, entry.outRel)
	}

	if licenseText != "" {
		outPath := filepath.Join(projectDir, "LICENSE")
		if err := os.WriteFile(outPath, []byte(licenseText), 0644); err != nil {
			return nil, fmt.Errorf("writing LICENSE: %w", err)
		}
		result.Files = append(result.Files, "LICENSE")
	}

	return result, nil
}

// render parses and executes one embedded template.
func render(name string, data *templateData) ([]byte, error) {
	tmplBytes, err := fs.ReadFile(scaffoldFS, "scaffolds/package/"+name)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", name, err)
	}

	tmpl, err := template.New(name).Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
