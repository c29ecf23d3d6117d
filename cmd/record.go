package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/keymacro/internal/engine"
	"github.com/mj1618/keymacro/internal/library"
	"github.com/mj1618/keymacro/internal/output"
)

var recordCmd = &cobra.Command{
	Use:   "record <id>",
	Short: "Record global keyboard and mouse input into a macro",
	Long: `Replace a macro's events with live input. Recording runs until the --until
key is pressed or the command is interrupted (Ctrl+C).

Without --keys or --mouse both are recorded.

Examples:
  keymacro record 0192f1c2-... --until f12
  keymacro record 0192f1c2-... --keys`,
	Args: cobra.ExactArgs(1),
	RunE: runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)
	recordCmd.Flags().Bool("keys", false, "Record keyboard events")
	recordCmd.Flags().Bool("mouse", false, "Record mouse events")
	recordCmd.Flags().String("until", "", "Stop recording when this key is pressed")
}

func runRecord(cmd *cobra.Command, args []string) error {
	keys, _ := cmd.Flags().GetBool("keys")
	mouse, _ := cmd.Flags().GetBool("mouse")
	until, _ := cmd.Flags().GetString("until")
	if !keys && !mouse {
		keys, mouse = true, true
	}

	recorded := make(chan int, 1)
	s, err := openSession(cmd.Context(), true, library.Options{
		OnRecorded: func(id string, n int) {
			if id == args[0] {
				recorded <- n
			}
		},
	})
	if err != nil {
		return err
	}
	defer s.close()

	m, err := s.macro(args[0])
	if err != nil {
		return err
	}

	ctx, stop := interruptContext(cmd.Context())
	defer stop()

	if err := m.StartRecording(engine.RecordOptions{Keys: keys, Mouse: mouse, UntilKey: until}); err != nil {
		return err
	}
	if until != "" {
		fmt.Fprintf(os.Stderr, "Recording. Press %s or Ctrl+C to stop.\n", until)
	} else {
		fmt.Fprintln(os.Stderr, "Recording. Press Ctrl+C to stop.")
	}

	var n int
	select {
	case n = <-recorded:
	case <-ctx.Done():
		if err := m.StopRecording(); err != nil {
			return err
		}
		n = <-recorded
	}

	if err := s.save(cmd.Context()); err != nil {
		return err
	}
	return output.Print(output.ActionResult{OK: true, Action: "record", ID: args[0], Events: output.Count(n)})
}
