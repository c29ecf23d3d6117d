package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mj1618/keymacro/internal/library"
	"github.com/mj1618/keymacro/internal/output"
)

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create an empty macro",
	Long: `Create an empty macro and print its summary. The ID in the output is used by
every other command.

Examples:
  keymacro new
  keymacro new "open terminal"`,
	Args: cobra.ArbitraryArgs,
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), false, library.Options{})
	if err != nil {
		return err
	}
	defer s.close()

	rec, err := s.lib.Create(strings.Join(args, " "))
	if err != nil {
		return err
	}
	if err := s.save(cmd.Context()); err != nil {
		return err
	}
	return output.Print(rec.Summary())
}
