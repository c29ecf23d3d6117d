package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/keymacro/internal/library"
	"github.com/mj1618/keymacro/internal/model"
	"github.com/mj1618/keymacro/internal/output"
)

var setCmd = &cobra.Command{
	Use:   "set <id>",
	Short: "Change a macro's name, loop delay or hotkey",
	Long: `Change a macro's settings. Only the flags given are updated.

Examples:
  keymacro set 0192f1c2-... --name "fill form"
  keymacro set 0192f1c2-... --delay 500 --hotkey f9`,
	Args: cobra.ExactArgs(1),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
	setCmd.Flags().String("name", "", "Display name")
	setCmd.Flags().Int("delay", 0, "Pause between looped passes in milliseconds")
	setCmd.Flags().String("hotkey", "", "Hotkey label stored with the macro")
}

func runSet(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if !flags.Changed("name") && !flags.Changed("delay") && !flags.Changed("hotkey") {
		return fmt.Errorf("nothing to change: use --name, --delay or --hotkey")
	}
	name, _ := flags.GetString("name")
	delay, _ := flags.GetInt("delay")
	hotkey, _ := flags.GetString("hotkey")

	s, err := openSession(cmd.Context(), false, library.Options{})
	if err != nil {
		return err
	}
	defer s.close()

	rec, err := s.lib.Update(args[0], func(r *model.MacroRecord) {
		if flags.Changed("name") {
			r.Name = name
		}
		if flags.Changed("delay") {
			r.Delay = delay
		}
		if flags.Changed("hotkey") {
			r.Hotkey = hotkey
		}
	})
	if err != nil {
		return err
	}
	if err := s.save(cmd.Context()); err != nil {
		return err
	}
	return output.Print(rec.Summary())
}
