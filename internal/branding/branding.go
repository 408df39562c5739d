// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package and rebuild; Go's //go:embed
// bakes the values into the binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName           string `yaml:"cli_name"`
	DisplayName       string `yaml:"display_name"`
	Description       string `yaml:"description"`
	HomeDir           string `yaml:"home_dir"`
	EnvPrefix         string `yaml:"env_prefix"`
	GoModule          string `yaml:"go_module"`
	GitHubAPIBase     string `yaml:"github_api_base"`
	LicenseCatalogURL string `yaml:"license_catalog_url"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:           "pkgforge",
			DisplayName:       "PkgForge",
			Description:       "Scaffold Python packages and fetch GitHub repository contents",
			HomeDir:           ".pkgforge",
			EnvPrefix:         "PKGFORGE",
			GoModule:          "github.com/pkgforge-labs/pkgforge",
			GitHubAPIBase:     "https://api.github.com",
			LicenseCatalogURL: "https://api.github.com/repos/github/choosealicense.com/contents/_licenses",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "pkgforge").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".pkgforge").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "PKGFORGE").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Used by release scripts, not at runtime.
func GoModule() string { load(); return defaults.GoModule }

// GitHubAPIBase returns the base URL of the GitHub REST API.
func GitHubAPIBase() string { load(); return defaults.GitHubAPIBase }

// LicenseCatalogURL returns the contents-API URL of the license catalog.
func LicenseCatalogURL() string { load(); return defaults.LicenseCatalogURL }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("TOKEN") → "PKGFORGE_TOKEN".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
