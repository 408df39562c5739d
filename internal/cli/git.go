package cli

import (
	"fmt"

	"github.com/pkgforge-labs/pkgforge/internal/gitrepo"
	"github.com/pkgforge-labs/pkgforge/internal/ui"
	"github.com/spf13/cobra"
)

var (
	gitDir     string
	gitMessage string
)

var gitCmd = &cobra.Command{
	Use:   "git",
	Short: "Thin wrapper over the local git client",
	Long: `Convenience access to the git operations used by the create flow:
initialise a repository, stage files, and record a commit.`,
}

var gitInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialise a git repository",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGitStep(cmd, func(repo *gitrepo.Repository) (string, error) {
			return repo.Init(cmd.Context())
		})
	},
}

var gitAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Stage all files in the target directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGitStep(cmd, func(repo *gitrepo.Repository) (string, error) {
			return repo.Add(cmd.Context())
		})
	},
}

var gitCommitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Commit the staged files",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGitStep(cmd, func(repo *gitrepo.Repository) (string, error) {
			return repo.Commit(cmd.Context(), gitMessage)
		})
	},
}

func init() {
	gitCmd.PersistentFlags().StringVarP(&gitDir, "directory", "d", ".", "Target directory")
	gitCommitCmd.Flags().StringVarP(&gitMessage, "message", "m", initialCommitMessage, "Commit message")

	gitCmd.AddCommand(gitInitCmd)
	gitCmd.AddCommand(gitAddCmd)
	gitCmd.AddCommand(gitCommitCmd)
	rootCmd.AddCommand(gitCmd)
}

func runGitStep(cmd *cobra.Command, step func(*gitrepo.Repository) (string, error)) error {
	if !gitrepo.Available() {
		return fmt.Errorf("%w: install git to use this command", gitrepo.ErrGitNotAvailable)
	}
	out, err := step(gitrepo.New(gitDir))
	if err != nil {
		return err
	}
	if out != "" {
		ui.New(cmd.OutOrStdout()).Info("%s", out)
	}
	return nil
}
