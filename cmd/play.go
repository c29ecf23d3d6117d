package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/keymacro/internal/engine"
	"github.com/mj1618/keymacro/internal/library"
	"github.com/mj1618/keymacro/internal/output"
)

var playCmd = &cobra.Command{
	Use:   "play <id>",
	Short: "Replay a macro as synthetic input",
	Long: `Replay a macro's events. With --loop playback repeats until interrupted
(Ctrl+C), pausing --delay milliseconds between passes (default: the macro's
own delay).

Examples:
  keymacro play 0192f1c2-...
  keymacro play 0192f1c2-... --no-timing
  keymacro play 0192f1c2-... --loop --delay 1000`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().Bool("loop", false, "Repeat until interrupted")
	playCmd.Flags().Bool("no-timing", false, "Send events back to back, ignoring recorded gaps")
	playCmd.Flags().Int("delay", 0, "Pause between looped passes in milliseconds")
}

func runPlay(cmd *cobra.Command, args []string) error {
	loop, _ := cmd.Flags().GetBool("loop")
	noTiming, _ := cmd.Flags().GetBool("no-timing")
	delayMs, _ := cmd.Flags().GetInt("delay")
	if delayMs < 0 {
		return fmt.Errorf("--delay must be >= 0, got %d", delayMs)
	}

	s, err := openSession(cmd.Context(), true, library.Options{})
	if err != nil {
		return err
	}
	defer s.close()

	m, err := s.macro(args[0])
	if err != nil {
		return err
	}
	rec, err := s.lib.Record(args[0])
	if err != nil {
		return err
	}
	delay := rec.LoopDelay()
	if cmd.Flags().Changed("delay") {
		delay = time.Duration(delayMs) * time.Millisecond
	}

	ctx, stop := interruptContext(cmd.Context())
	defer stop()

	done := make(chan engine.Result, 1)
	err = m.Play(engine.PlaybackConfig{
		PreserveTiming:      !noTiming,
		Loop:                loop,
		InterIterationDelay: delay,
		OnComplete:          func(r engine.Result) { done <- r },
	})
	if err != nil {
		return err
	}
	if loop {
		fmt.Fprintln(os.Stderr, "Playing in a loop. Press Ctrl+C to stop.")
	}

	var res engine.Result
	select {
	case res = <-done:
	case <-ctx.Done():
		m.Terminate(false)
		res = <-done
	}
	if res.Err != nil {
		return res.Err
	}
	return output.Print(output.ActionResult{
		OK:      true,
		Action:  "play",
		ID:      args[0],
		Events:  output.Count(res.Dispatched),
		Passes:  output.Count(res.Passes),
		Message: res.Outcome(),
	})
}
