package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/keymacro/internal/library"
	"github.com/mj1618/keymacro/internal/output"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a macro with its recorded events",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().Bool("pretty", false, "Pretty-print output (no-op for YAML)")
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), false, library.Options{})
	if err != nil {
		return err
	}
	defer s.close()

	sum, err := s.lib.Summary(args[0])
	if err != nil {
		return err
	}
	rec, err := s.lib.Record(args[0])
	if err != nil {
		return err
	}
	return output.Print(output.MacroDetail{MacroSummary: sum, Record: rec.Events()})
}
