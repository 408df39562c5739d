package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkgforge-labs/pkgforge/internal/config"
	"github.com/pkgforge-labs/pkgforge/internal/gitrepo"
	"github.com/pkgforge-labs/pkgforge/internal/license"
	"github.com/pkgforge-labs/pkgforge/internal/project"
	"github.com/pkgforge-labs/pkgforge/internal/prompt"
	"github.com/pkgforge-labs/pkgforge/internal/scaffold"
	"github.com/pkgforge-labs/pkgforge/internal/ui"
	"github.com/pkgforge-labs/pkgforge/internal/venv"
	"github.com/spf13/cobra"
)

// initialCommitMessage is used for the first commit after scaffolding.
const initialCommitMessage = "Created repository and initial commit"

var (
	createDestination string
	createPromptMode  string
	createInitGit     bool
	createInitVenv    bool
	createLicenseID   string
	createScript      bool
	createPkgVersion  string
	createFromFile    string

	createDescription string
	createAuthorName  string
	createAuthorMail  string
	createGHUsername  string
	createGHRepoName  string

	createURLFlags = map[string]*string{}
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Scaffold a new Python package structure",
	Long: `Scaffold a conventional Python package layout with src tree, pyproject.toml,
README, .gitignore, and an optional license, entry-point script, git
repository, and virtual environment.

Examples:
  pkgforge create mypkg --license mit --init-git
  pkgforge create mypkg -m auto --script --init-venv
  pkgforge create mypkg --from-file project.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	f := createCmd.Flags()
	f.StringVarP(&createDestination, "destination", "d", ".", "Destination directory for the package structure")
	f.StringVarP(&createPromptMode, "prompt-mode", "m", "",
		"Control prompts: ask (default), yes (always accept), no (always decline), auto (decide automatically)")
	f.BoolVarP(&createInitGit, "init-git", "i", false, "Initialise a git repository and commit created files (requires git)")
	f.BoolVarP(&createInitVenv, "init-venv", "v", false, "Initialise a virtual environment and install the package in editable mode")
	f.StringVarP(&createLicenseID, "license", "l", "", "License to include in the package")
	f.BoolVar(&createScript, "script", false, "Add a __main__.py entry point and script declaration")
	f.StringVar(&createPkgVersion, "pkg-version", project.DefaultVersion, "Initial package version (semver)")
	f.StringVar(&createFromFile, "from-file", "", "Load project settings from a YAML file")

	f.StringVar(&createDescription, "description", "", "Project description")
	f.StringVar(&createAuthorName, "author-name", "", "Author name")
	f.StringVar(&createAuthorMail, "author-mail", "", "Author mail address")
	f.StringVar(&createGHUsername, "github-username", "", "GitHub username")
	f.StringVar(&createGHRepoName, "github-repositoryname", "", "GitHub repository name")

	for _, name := range project.URLFieldNames() {
		createURLFlags[name] = f.String(name, "", "URL to "+name+" (default: derived from GitHub settings)")
	}

	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	console := ui.New(cmd.ErrOrStderr())

	settings, err := buildSettings(cmd, args[0])
	if err != nil {
		return err
	}

	mode, err := resolvePromptMode()
	if err != nil {
		return err
	}
	prompter := prompt.New(mode, cmd.InOrStdin(), cmd.ErrOrStderr())

	// Abort before prompting when the target already exists.
	projectDir := filepath.Join(createDestination, settings.Name)
	if _, err := os.Stat(projectDir); err == nil {
		return fmt.Errorf("%w: %s", scaffold.ErrExists, projectDir)
	}

	// Offer suggestions for fields that were never set explicitly.
	suggestDefaults(ctx, settings, prompter, console)

	if err := settings.Validate(); err != nil {
		return err
	}

	// Final confirmation. The "no" mode skips the prompt without aborting.
	summary := fmt.Sprintf("Settings:\n%s\nCreate package %q at %q?",
		settings.NiceString(), settings.Name, projectDir)
	if !prompter.Confirm(summary, prompt.Safe) && mode != prompt.ModeNo {
		console.Info("Creation aborted")
		return nil
	}

	licenseText := fetchLicense(ctx, settings.LicenseID, console)

	result, err := scaffold.Generate(settings, createDestination, licenseText)
	if err != nil {
		return err
	}
	console.Success("Created project %q at %s", settings.Name, result.ProjectDir)
	for _, f := range result.Files {
		console.Detail("%s", f)
	}

	initGit(ctx, result.ProjectDir, prompter, console)
	initVenv(ctx, result.ProjectDir, prompter, console)

	return nil
}

// buildSettings assembles project settings from --from-file and flags.
// Flags that were set explicitly win over file values and placeholders.
func buildSettings(cmd *cobra.Command, name string) (*project.Settings, error) {
	var settings *project.Settings
	if createFromFile != "" {
		loaded, err := project.LoadFile(createFromFile)
		if err != nil {
			return nil, err
		}
		settings = loaded
	} else {
		settings = project.NewSettings()
	}

	settings.Name = name
	if createLicenseID != "" {
		settings.LicenseID = createLicenseID
	}
	if cmd.Flags().Changed("script") {
		settings.Script = createScript
	}
	if cmd.Flags().Changed("pkg-version") || settings.Version == "" {
		settings.Version = createPkgVersion
	}
	if createDescription != "" {
		settings.Description = createDescription
	}
	if createAuthorName != "" {
		settings.AuthorName = createAuthorName
	}
	if createAuthorMail != "" {
		settings.AuthorMail = createAuthorMail
	}
	if createGHUsername != "" {
		settings.GitHubUsername = createGHUsername
	}
	if createGHRepoName != "" {
		settings.GitHubRepositoryName = createGHRepoName
	}

	urls := map[string]*string{
		"changelog":     &settings.URLs.Changelog,
		"documentation": &settings.URLs.Documentation,
		"download":      &settings.URLs.Download,
		"funding":       &settings.URLs.Funding,
		"homepage":      &settings.URLs.Homepage,
		"issues":        &settings.URLs.Issues,
		"releasenotes":  &settings.URLs.ReleaseNotes,
		"source":        &settings.URLs.Source,
	}
	for field, flagValue := range createURLFlags {
		if *flagValue != "" {
			*urls[field] = *flagValue
		}
	}

	return settings, nil
}

// resolvePromptMode picks the mode from the flag, then the config file,
// then the "ask" default.
func resolvePromptMode() (prompt.Mode, error) {
	s := createPromptMode
	if s == "" {
		s = config.Get(config.KeyPromptMode)
	}
	if s == "" {
		s = string(prompt.ModeAsk)
	}
	return prompt.ParseMode(s)
}

// suggestDefaults fills placeholder fields from context: the package name
// for the repository name, and the local git config for the author
// identity. All of these are metadata-only and classified safe.
func suggestDefaults(ctx context.Context, settings *project.Settings, prompter *prompt.Prompter, console *ui.Console) {
	if v := config.Get(config.KeyGitHubUsername); v != "" && settings.IsDefault(project.FieldGitHubUser) {
		msg := fmt.Sprintf("'--github-username' was not set. Set to %s (from config)?", v)
		if prompter.Confirm(msg, prompt.Safe) {
			settings.GitHubUsername = v
			console.Info("Set '--github-username' to %s", v)
		}
	}

	if settings.IsDefault(project.FieldGitHubRepo) {
		msg := fmt.Sprintf("'--github-repositoryname' was not set. Set to %s?", settings.Name)
		if prompter.Confirm(msg, prompt.Safe) {
			settings.GitHubRepositoryName = settings.Name
			console.Info("Set '--github-repositoryname' to %s", settings.Name)
		}
	}

	if !gitrepo.Available() {
		return
	}
	gitConfig := gitrepo.LoadConfig(ctx)

	if v := config.Get(config.KeyAuthorName); v != "" && gitConfig.UserName == "" {
		gitConfig.UserName = v
	}
	if v := config.Get(config.KeyAuthorMail); v != "" && gitConfig.UserEmail == "" {
		gitConfig.UserEmail = v
	}

	if settings.IsDefault(project.FieldAuthorName) && gitConfig.UserName != "" {
		msg := fmt.Sprintf("'--author-name' was not set. Set to %s (from 'git config')?", gitConfig.UserName)
		if prompter.Confirm(msg, prompt.Safe) {
			settings.AuthorName = gitConfig.UserName
			console.Info("Set '--author-name' to %s", gitConfig.UserName)
		}
	}

	if settings.IsDefault(project.FieldAuthorMail) && gitConfig.UserEmail != "" {
		msg := fmt.Sprintf("'--author-mail' was not set. Set to %s (from 'git config')?", gitConfig.UserEmail)
		if prompter.Confirm(msg, prompt.Safe) {
			settings.AuthorMail = gitConfig.UserEmail
			console.Info("Set '--author-mail' to %s", gitConfig.UserEmail)
		}
	}
}

// fetchLicense retrieves the license text, degrading to a warning so the
// scaffolding run continues without a LICENSE file.
func fetchLicense(ctx context.Context, id string, console *ui.Console) string {
	if id == "" {
		return ""
	}
	text, err := license.NewClient().Fetch(ctx, id)
	if err != nil {
		console.Warn("could not download license %q: %v", id, err)
		return ""
	}
	return text
}

// initGit initializes a repository and commits the scaffolded files.
// Git absence or failure is a warning, never fatal to the run.
func initGit(ctx context.Context, projectDir string, prompter *prompt.Prompter, console *ui.Console) {
	if !gitrepo.Available() {
		if createInitGit {
			console.Warn("git not available, skipping repository initialisation")
		}
		return
	}
	if !createInitGit && !prompter.Confirm("Initialise Git repository and commit?", prompt.Unsafe) {
		return
	}

	repo := gitrepo.New(projectDir)
	steps := []func() (string, error){
		func() (string, error) { return repo.Init(ctx) },
		func() (string, error) { return repo.Add(ctx) },
		func() (string, error) { return repo.Commit(ctx, initialCommitMessage) },
	}
	for _, step := range steps {
		out, err := step()
		if err != nil {
			console.Warn("git: %v", err)
			return
		}
		if out != "" {
			console.Detail("%s", out)
		}
	}
	console.Success("Initialised git repository in %s", projectDir)
}

// initVenv creates a virtual environment and installs the new package in
// editable mode. Failures are reported distinctly but do not undo the
// scaffolding.
func initVenv(ctx context.Context, projectDir string, prompter *prompt.Prompter, console *ui.Console) {
	if !createInitVenv && !prompter.Confirm("Initialise venv and install package in editable mode?", prompt.Unsafe) {
		return
	}

	env := venv.New(projectDir)
	console.Info("Creating venv in %s (this may take some time)...", env.Dir())
	if err := env.Create(ctx); err != nil {
		console.Warn("%v", err)
		return
	}

	absDir, err := filepath.Abs(projectDir)
	if err != nil {
		absDir = projectDir
	}
	if err := env.Install(ctx, nil, []string{absDir}); err != nil {
		console.Warn("%v", err)
		return
	}
	console.Success("Created venv and installed %s in editable mode", absDir)
}
