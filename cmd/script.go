package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/keymacro/internal/library"
	"github.com/mj1618/keymacro/internal/output"
)

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "View or edit a macro as script text",
	Long: `A script is a macro's events as text: a delay line in milliseconds, then
the event. Blank lines are ignored.

  0000
  ctrl: down
  0120
  c: down
  0040
  mouse left: double
  0016
  move: [10,20]
  0300
  wheel: -1`,
}

var scriptShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a macro as script text",
	Args:  cobra.ExactArgs(1),
	RunE:  runScriptShow,
}

var scriptApplyCmd = &cobra.Command{
	Use:   "apply <id> [file|-]",
	Short: "Replace a macro's events with a parsed script",
	Long: `Parse a script from a file, or stdin when the file is - or omitted, and
replace the macro's events. Nothing changes if any line fails to parse.

Examples:
  keymacro script show 0192f1c2-... > m.txt
  keymacro script apply 0192f1c2-... m.txt`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runScriptApply,
}

func init() {
	rootCmd.AddCommand(scriptCmd)
	scriptCmd.AddCommand(scriptShowCmd)
	scriptCmd.AddCommand(scriptApplyCmd)
}

func runScriptShow(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), false, library.Options{})
	if err != nil {
		return err
	}
	defer s.close()

	m, err := s.macro(args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), m.Script())
	return err
}

func readScript(cmd *cobra.Command, args []string) (string, error) {
	if len(args) < 2 || args[1] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[1])
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func runScriptApply(cmd *cobra.Command, args []string) error {
	text, err := readScript(cmd, args)
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context(), false, library.Options{})
	if err != nil {
		return err
	}
	defer s.close()

	m, err := s.macro(args[0])
	if err != nil {
		return err
	}
	if err := m.SetScript(text); err != nil {
		return err
	}
	if err := s.save(cmd.Context()); err != nil {
		return err
	}
	return output.Print(output.ActionResult{OK: true, Action: "script apply", ID: args[0], Events: output.Count(m.Log().Len())})
}
