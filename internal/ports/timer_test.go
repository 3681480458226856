package ports_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
	"github.com/xvierd/pomo/internal/services"
)

func TestCommand_Apply(t *testing.T) {
	session := services.NewSessionService(domain.DefaultSessionConfig(), services.SessionOptions{})
	defer session.Close()
	session.Enqueue("one")
	session.Enqueue("two")

	var controller ports.SessionController = session

	tests := []struct {
		cmd     ports.Command
		applied bool
		check   func(t *testing.T, state domain.State)
	}{
		{ports.CmdStart, true, func(t *testing.T, s domain.State) { assert.True(t, s.Clock.Running) }},
		{ports.CmdStart, false, nil},
		{ports.CmdPause, true, func(t *testing.T, s domain.State) { assert.False(t, s.Clock.Running) }},
		{ports.CmdToggle, true, func(t *testing.T, s domain.State) { assert.True(t, s.Clock.Running) }},
		{ports.CmdReset, true, func(t *testing.T, s domain.State) { assert.False(t, s.Clock.Running) }},
		{ports.CmdSkip, false, nil},
		{ports.CmdSelectNext, true, func(t *testing.T, s domain.State) {
			require.NotNil(t, s.Queue.Current)
			assert.Equal(t, "one", s.Queue.Current.Content)
		}},
		{ports.CmdReturn, true, func(t *testing.T, s domain.State) { assert.Nil(t, s.Queue.Current) }},
		{ports.CmdSelectNext, true, nil},
		{ports.CmdCompleteNext, true, func(t *testing.T, s domain.State) {
			require.NotNil(t, s.Queue.Current)
			assert.Equal(t, "two", s.Queue.Current.Content)
		}},
		{ports.CmdComplete, true, func(t *testing.T, s domain.State) { assert.Len(t, s.Queue.Completed, 2) }},
	}

	for _, tt := range tests {
		out, ok := tt.cmd.Apply(controller)
		require.True(t, ok, "%s is a session intent", tt.cmd)
		assert.Equal(t, tt.applied, out.Applied, "%s", tt.cmd)
		if tt.check != nil {
			tt.check(t, out.State)
		}
	}
}

func TestCommand_ApplyQuit(t *testing.T) {
	session := services.NewSessionService(domain.DefaultSessionConfig(), services.SessionOptions{})
	defer session.Close()

	out, ok := ports.CmdQuit.Apply(session)
	assert.False(t, ok)
	assert.False(t, out.Applied)
	assert.Len(t, ports.ValidCommands, 10)
}
