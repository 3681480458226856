package ports

import (
	"context"

	"github.com/xvierd/pomo/internal/domain"
)

// Command represents a user action issued from a presentation surface.
type Command string

const (
	// CmdToggle starts a paused clock or pauses a running one.
	CmdToggle Command = "toggle"

	// CmdStart starts the countdown.
	CmdStart Command = "start"

	// CmdPause pauses the countdown.
	CmdPause Command = "pause"

	// CmdReset restores the current interval's full duration.
	CmdReset Command = "reset"

	// CmdSkip abandons the current break.
	CmdSkip Command = "skip"

	// CmdSelectNext takes the front active task.
	CmdSelectNext Command = "select_next"

	// CmdComplete finishes the current task.
	CmdComplete Command = "complete"

	// CmdCompleteNext finishes the current task and takes the next one.
	CmdCompleteNext Command = "complete_next"

	// CmdReturn puts the current task back at the front of the queue.
	CmdReturn Command = "return"

	// CmdQuit exits the application.
	CmdQuit Command = "quit"
)

// ValidCommands lists every command in display order.
var ValidCommands = []Command{
	CmdToggle, CmdStart, CmdPause, CmdReset, CmdSkip,
	CmdSelectNext, CmdComplete, CmdCompleteNext, CmdReturn, CmdQuit,
}

// Apply issues c on session. It reports false for commands that are not
// session intents, such as CmdQuit.
func (c Command) Apply(session SessionController) (domain.Outcome, bool) {
	switch c {
	case CmdToggle:
		return session.Toggle(), true
	case CmdStart:
		return session.Start(), true
	case CmdPause:
		return session.Pause(), true
	case CmdReset:
		return session.Reset(), true
	case CmdSkip:
		return session.SkipBreak(), true
	case CmdSelectNext:
		return session.SelectNext(), true
	case CmdComplete:
		return session.Complete(), true
	case CmdCompleteNext:
		return session.CompleteAndSelectNext(), true
	case CmdReturn:
		return session.ReturnToQueue(), true
	default:
		return domain.Outcome{}, false
	}
}

// Timer is the interactive presentation surface.
// This is a driving port (called by the application layer).
type Timer interface {
	// Run starts the interface and blocks until the user quits or ctx is done.
	Run(ctx context.Context) error
}
