package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/keymacro/internal/library"
	"github.com/mj1618/keymacro/internal/output"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a macro",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), false, library.Options{})
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.lib.Delete(args[0]); err != nil {
		return err
	}
	if err := s.save(cmd.Context()); err != nil {
		return err
	}
	return output.Print(output.ActionResult{OK: true, Action: "delete", ID: args[0]})
}
