package cli

import (
	"github.com/pkgforge-labs/pkgforge/internal/ui"
	"github.com/pkgforge-labs/pkgforge/internal/venv"
	"github.com/spf13/cobra"
)

var (
	venvDir      string
	venvInstall  []string
	venvEditable []string
)

var venvCmd = &cobra.Command{
	Use:   "venv",
	Short: "Create a virtual environment and install packages into it",
	Long: `Create a Python virtual environment at <directory>/.venv and optionally
install packages, including local packages in editable mode.

Examples:
  pkgforge venv
  pkgforge venv -d ./mypkg --editable .`,
	RunE: func(cmd *cobra.Command, args []string) error {
		console := ui.New(cmd.ErrOrStderr())
		env := venv.New(venvDir)

		console.Info("Creating venv in %s (this may take some time)...", env.Dir())
		if err := env.Create(cmd.Context()); err != nil {
			return err
		}
		console.Success("Finished creating venv in %s", env.Dir())

		if len(venvInstall) == 0 && len(venvEditable) == 0 {
			return nil
		}
		if err := env.Install(cmd.Context(), venvInstall, venvEditable); err != nil {
			return err
		}
		console.Success("Installed %d package(s)", len(venvInstall)+len(venvEditable))
		return nil
	},
}

func init() {
	venvCmd.Flags().StringVarP(&venvDir, "directory", "d", ".", "Directory the .venv folder is created in")
	venvCmd.Flags().StringArrayVar(&venvInstall, "install", nil, "Package to install (repeatable)")
	venvCmd.Flags().StringArrayVar(&venvEditable, "editable", nil, "Local package path to install in editable mode (repeatable)")
	rootCmd.AddCommand(venvCmd)
}
