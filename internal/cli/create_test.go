package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkgforge-labs/pkgforge/internal/config"
	"github.com/pkgforge-labs/pkgforge/internal/project"
	"github.com/spf13/viper"
)

// resetCreateFlags restores the create command's flag state between runs;
// cobra keeps parsed values in package globals.
func resetCreateFlags() {
	createDestination = "."
	createPromptMode = ""
	createInitGit = false
	createInitVenv = false
	createLicenseID = ""
	createScript = false
	createPkgVersion = project.DefaultVersion
	createFromFile = ""
	createDescription = ""
	createAuthorName = ""
	createAuthorMail = ""
	createGHUsername = ""
	createGHRepoName = ""
	for _, v := range createURLFlags {
		*v = ""
	}
}

// runCLI executes the root command with the given args and stdin.
func runCLI(t *testing.T, in io.Reader, args ...string) error {
	t.Helper()
	resetCreateFlags()

	if in == nil {
		in = bytes.NewReader(nil)
	}
	var out, errOut bytes.Buffer
	rootCmd.SetIn(in)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// failingReader fails the test when anything reads from stdin.
type failingReader struct{ t *testing.T }

func (r failingReader) Read([]byte) (int, error) {
	r.t.Error("create flow read from stdin in prompt-mode no")
	return 0, io.EOF
}

func TestCreateBasic(t *testing.T) {
	dir := t.TempDir()

	err := runCLI(t, nil, "create", "mypkg", "-d", dir, "-m", "no")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	pkgDir := filepath.Join(dir, "mypkg")
	for _, f := range []string{
		".gitignore",
		"README.md",
		"pyproject.toml",
		filepath.Join("src", "mypkg", "__init__.py"),
	} {
		info, err := os.Stat(filepath.Join(pkgDir, f))
		if err != nil {
			t.Errorf("missing %s: %v", f, err)
			continue
		}
		if info.Size() == 0 && f != ".gitignore" {
			t.Errorf("%s is empty", f)
		}
	}

	// No flags, no extras.
	if _, err := os.Stat(filepath.Join(pkgDir, "LICENSE")); err == nil {
		t.Error("LICENSE should not exist without --license")
	}
	if _, err := os.Stat(filepath.Join(pkgDir, "src", "mypkg", "__main__.py")); err == nil {
		t.Error("__main__.py should not exist without --script")
	}
	if _, err := os.Stat(filepath.Join(pkgDir, ".git")); err == nil {
		t.Error("git must not be initialised in prompt-mode no")
	}
	if _, err := os.Stat(filepath.Join(pkgDir, ".venv")); err == nil {
		t.Error("venv must not be created in prompt-mode no")
	}
}

func TestCreateScript(t *testing.T) {
	dir := t.TempDir()

	if err := runCLI(t, nil, "create", "mypkg", "-d", dir, "-m", "no", "--script"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "mypkg", "src", "mypkg", "__main__.py")); err != nil {
		t.Error("--script should add the entry-point file")
	}
}

func TestCreateFailsIfPathExists(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "mypkg")
	if err := os.MkdirAll(existing, 0755); err != nil {
		t.Fatal(err)
	}

	if err := runCLI(t, nil, "create", "mypkg", "-d", dir, "-m", "no"); err == nil {
		t.Fatal("create on an existing path must fail")
	}

	entries, err := os.ReadDir(existing)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("existing directory was modified: %v", entries)
	}
}

func TestCreateNeverPromptsInNoMode(t *testing.T) {
	dir := t.TempDir()

	// All suggestible fields unset; stdin reads would fail the test.
	err := runCLI(t, failingReader{t}, "create", "mypkg", "-d", dir, "-m", "no")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
}

func TestCreateRejectsBadPromptMode(t *testing.T) {
	dir := t.TempDir()

	if err := runCLI(t, nil, "create", "mypkg", "-d", dir, "-m", "maybe"); err == nil {
		t.Fatal("invalid prompt mode must be a configuration error")
	}
	if _, err := os.Stat(filepath.Join(dir, "mypkg")); err == nil {
		t.Error("nothing may be written after a configuration error")
	}
}

func TestCreateUsesConfiguredGitHubUsername(t *testing.T) {
	dir := t.TempDir()

	viper.Set(config.KeyGitHubUsername, "jdoe-from-config")
	t.Cleanup(func() { viper.Set(config.KeyGitHubUsername, "") })

	// auto mode accepts the identity suggestion without prompting.
	if err := runCLI(t, nil, "create", "mypkg", "-d", dir, "-m", "auto"); err != nil {
		t.Fatalf("create: %v", err)
	}

	pyproject, err := os.ReadFile(filepath.Join(dir, "mypkg", "pyproject.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(pyproject, []byte("github.com/jdoe-from-config/mypkg")) {
		t.Error("configured github_username should feed the derived URLs")
	}
	if bytes.Contains(pyproject, []byte(project.DefaultGitHubUsername+"/")) {
		t.Error("placeholder username leaked into the manifest")
	}
}

func TestCreateFlagBeatsConfiguredGitHubUsername(t *testing.T) {
	dir := t.TempDir()

	viper.Set(config.KeyGitHubUsername, "jdoe-from-config")
	t.Cleanup(func() { viper.Set(config.KeyGitHubUsername, "") })

	err := runCLI(t, nil, "create", "mypkg", "-d", dir, "-m", "auto", "--github-username", "explicit-user")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	pyproject, err := os.ReadFile(filepath.Join(dir, "mypkg", "pyproject.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(pyproject, []byte("github.com/explicit-user/mypkg")) {
		t.Error("explicit --github-username must win over the config value")
	}
}

func TestCreateFromFile(t *testing.T) {
	dir := t.TempDir()
	projectFile := filepath.Join(dir, "project.yaml")
	content := `
description: Loaded from file
author_name: Jane Doe
author_mail: jane@example.com
github_username: jdoe
github_repositoryname: mypkg
`
	if err := os.WriteFile(projectFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	err := runCLI(t, nil, "create", "mypkg", "-d", dir, "-m", "no", "--from-file", projectFile)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	readme, err := os.ReadFile(filepath.Join(dir, "mypkg", "README.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(readme, []byte("Jane Doe")) {
		t.Error("README should carry the author from the project file")
	}
	if !bytes.Contains(readme, []byte("Loaded from file")) {
		t.Error("README should carry the description from the project file")
	}
}
