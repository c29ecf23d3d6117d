package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/keymacro/internal/library"
	"github.com/mj1618/keymacro/internal/output"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved macros",
	Long:  "List saved macros with their ID, title, name, loop delay and event count.",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("pretty", false, "Pretty-print output (no-op for YAML)")
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), false, library.Options{})
	if err != nil {
		return err
	}
	defer s.close()
	return output.Print(s.lib.List())
}
