package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/logging"
	"github.com/xvierd/pomo/internal/services"
)

var (
	continueFlag  bool
	intervalsFlag int
)

// runOptions controls runHeadless.
type runOptions struct {
	// Continue starts each interval after an expiry.
	Continue bool
	// Intervals stops after this many expiries when Continue is set. Zero
	// means run until interrupted.
	Intervals int
	// Interval is the wall-clock tick period.
	Interval time.Duration
	// Width enables an in-place status line of at most Width columns.
	Width int
}

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the timer without the interactive UI",
	Long: `Start the first interval immediately and print every transition.

Without --continue the command exits after the first interval ends. With
--continue each new interval starts on its own until --intervals expiries
have happened or the process is interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if intervalsFlag < 0 {
			return fmt.Errorf("--intervals must not be negative")
		}

		session, err := newSession()
		if err != nil {
			return err
		}
		defer session.Close()

		opts := runOptions{
			Continue:  continueFlag,
			Intervals: intervalsFlag,
			Interval:  time.Second,
		}
		if term.IsTerminal(os.Stdout.Fd()) {
			if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil {
				opts.Width = w
			}
		}

		return runHeadless(setupSignalHandler(), session, cmd.OutOrStdout(), opts)
	},
}

func init() {
	runCmd.Flags().BoolVarP(&continueFlag, "continue", "c", false, "Start the next interval after each one ends")
	runCmd.Flags().IntVarP(&intervalsFlag, "intervals", "n", 0, "Stop after this many intervals (with --continue)")
}

// runHeadless starts the clock and reports its progress to out until ctx is
// done or the requested number of intervals has ended.
func runHeadless(ctx context.Context, session *services.SessionService, out io.Writer, opts runOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := session.Subscribe(64)
	started := session.Start()
	fmt.Fprintln(out, startLine(started.State))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return services.NewTicker(session, opts.Interval).Run(ctx)
	})
	g.Go(func() error {
		defer cancel()

		// Observers may drop events, so they only wake the loop. Decisions
		// come from the session state, and the poll covers the paused clock
		// after an expiry, which publishes nothing.
		poll := time.NewTicker(opts.Interval)
		defer poll.Stop()

		last := started.State
		expiries := 0
		for {
			select {
			case <-ctx.Done():
				clearStatus(out, opts.Width)
				return nil
			case _, ok := <-events:
				if !ok {
					return nil
				}
			case <-poll.C:
			}

			state := session.State()
			if state.Clock.Mode == last.Clock.Mode {
				if opts.Width > 0 && statusLine(state) != statusLine(last) {
					fmt.Fprint(out, "\r"+fitWidth(statusLine(state), opts.Width))
				}
				last = state
				continue
			}

			clearStatus(out, opts.Width)
			fmt.Fprintln(out, transitionLine(domain.Transition{
				From:                  last.Clock.Mode,
				To:                    state.Clock.Mode,
				CompletedWorkSessions: state.Clock.CompletedWorkSessions,
			}, state))
			expiries++

			if !opts.Continue || (opts.Intervals > 0 && expiries >= opts.Intervals) {
				logging.Logger.Debug("Headless run finished", "intervals", expiries)
				return nil
			}
			last = session.Start().State
		}
	})

	return g.Wait()
}

func startLine(state domain.State) string {
	line := fmt.Sprintf("%s started (%s)", state.Clock.Mode.Label(), state.Clock.Countdown())
	if current := state.Queue.Current; current != nil {
		line += fmt.Sprintf(" · now on %q", current.Content)
	}
	if n := len(state.Queue.Active); n > 0 {
		line += fmt.Sprintf(" · %d queued", n)
	}
	return line
}

// transitionLine renders an expiry such as "Work → Short Break (1 completed)".
func transitionLine(t domain.Transition, state domain.State) string {
	line := fmt.Sprintf("%s → %s (%d completed)", t.From.Label(), t.To.Label(), t.CompletedWorkSessions)
	if !t.EndedWork() && state.Queue.Current != nil {
		line += fmt.Sprintf(" · now on %q", state.Queue.Current.Content)
	}
	return line
}

func statusLine(state domain.State) string {
	line := fmt.Sprintf("%s %s", state.Clock.Mode.Label(), state.Clock.Countdown())
	if !state.Clock.Running {
		line += " (paused)"
	}
	if current := state.Queue.Current; current != nil {
		line += " · " + current.Content
	}
	return line
}

// fitWidth truncates or pads s to exactly width columns.
func fitWidth(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width-1])
	}
	return s + strings.Repeat(" ", width-1-len(runes))
}

func clearStatus(out io.Writer, width int) {
	if width > 0 {
		fmt.Fprint(out, "\r"+strings.Repeat(" ", width-1)+"\r")
	}
}
