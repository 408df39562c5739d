package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkgforge-labs/pkgforge/internal/branding"
	"github.com/pkgforge-labs/pkgforge/internal/config"
	"github.com/pkgforge-labs/pkgforge/internal/license"
	"github.com/pkgforge-labs/pkgforge/internal/ui"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var listLicensesFlag bool

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds a conventional Python package layout (source tree,
packaging manifest, readme, license, ignore file), optionally initializing a
git repository and a virtual environment, and downloads GitHub repository
contents via the REST API or git sparse checkout.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if listLicensesFlag {
			return runListLicenses(cmd.Context(), cmd.OutOrStdout())
		}
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&listLicensesFlag, "list-licenses", false,
		"List all available license identifiers and exit")
}

// runListLicenses prints the full known-identifier set without fetching any
// license text.
func runListLicenses(ctx context.Context, out io.Writer) error {
	ids, err := license.NewClient().Identifiers(ctx)
	if err != nil {
		return fmt.Errorf("listing licenses: %w", err)
	}
	fmt.Fprintf(out, "Available licenses are:\n%s\n", strings.Join(ids, ", "))
	return nil
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		ui.New(os.Stderr).Error("%v", err)
	}
	return err
}
