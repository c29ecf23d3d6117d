package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/keymacro/internal/engine"
	"github.com/mj1618/keymacro/internal/library"
	"github.com/mj1618/keymacro/internal/output"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a single event to a macro",
}

var addKeyCmd = &cobra.Command{
	Use:   "key <id> <key> <down|up>",
	Short: "Append a key event",
	Long: `Append a key event --delay milliseconds after the macro's last event.

Examples:
  keymacro add key 0192f1c2-... shift down
  keymacro add key 0192f1c2-... shift up --delay 50`,
	Args: cobra.ExactArgs(3),
	RunE: runAddKey,
}

var addMouseCmd = &cobra.Command{
	Use:   "mouse <id> <value> <action>",
	Short: "Append a mouse event",
	Long: `Append a mouse event --delay milliseconds after the macro's last event.
The value depends on the action:

  down, up, double   button: left, right or middle
  move               relative offset: [x,y]
  wheel              scroll delta

Examples:
  keymacro add mouse 0192f1c2-... left double
  keymacro add mouse 0192f1c2-... [10,-5] move --delay 16
  keymacro add mouse 0192f1c2-... -- -1 wheel`,
	Args: cobra.ExactArgs(3),
	RunE: runAddMouse,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.AddCommand(addKeyCmd)
	addCmd.AddCommand(addMouseCmd)
	for _, c := range []*cobra.Command{addKeyCmd, addMouseCmd} {
		c.Flags().Int("delay", 0, "Milliseconds after the previous event")
	}
}

func runAddKey(cmd *cobra.Command, args []string) error {
	return appendEvent(cmd, args[0], func(m *engine.Macro, delay int) error {
		return m.AddKeyRecord(args[1], args[2], delay)
	})
}

func runAddMouse(cmd *cobra.Command, args []string) error {
	return appendEvent(cmd, args[0], func(m *engine.Macro, delay int) error {
		return m.AddMouseRecord(args[1], args[2], delay)
	})
}

func appendEvent(cmd *cobra.Command, id string, add func(m *engine.Macro, delay int) error) error {
	delay, _ := cmd.Flags().GetInt("delay")

	s, err := openSession(cmd.Context(), false, library.Options{})
	if err != nil {
		return err
	}
	defer s.close()

	m, err := s.macro(id)
	if err != nil {
		return err
	}
	if err := add(m, delay); err != nil {
		return err
	}
	if err := s.save(cmd.Context()); err != nil {
		return err
	}
	return output.Print(output.ActionResult{OK: true, Action: "add", ID: id, Events: output.Count(m.Log().Len())})
}
