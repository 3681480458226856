package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/services"
)

func newTestServer() (*Server, *services.SessionService) {
	session := services.NewSessionService(domain.DefaultSessionConfig(), services.SessionOptions{})
	return NewServer(session, "test"), session
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func decodeResponse(t *testing.T, result *mcp.CallToolResult) toolResponse {
	t.Helper()
	var resp toolResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &resp))
	return resp
}

func TestNewServer(t *testing.T) {
	server, session := newTestServer()

	require.NotNil(t, server)
	assert.Equal(t, session, server.session)
	assert.NotNil(t, server.server)
}

func TestServer_IsRunning(t *testing.T) {
	server, _ := newTestServer()

	assert.False(t, server.IsRunning(), "not running before Start")
	assert.NoError(t, server.Stop())
}

func TestServer_handleGetState(t *testing.T) {
	server, session := newTestServer()
	session.Enqueue("write docs")

	result, err := server.handleGetState(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)

	var state domain.State
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &state))
	assert.Equal(t, domain.IntervalWork, state.Clock.Mode)
	assert.Equal(t, 1500, state.Clock.RemainingSeconds)
	require.Len(t, state.Queue.Active, 1)
	assert.Equal(t, "write docs", state.Queue.Active[0].Content)
}

func TestServer_TimerTools(t *testing.T) {
	server, session := newTestServer()
	ctx := context.Background()

	resp := decodeResponse(t, mustCall(t, server.intent(session.Start, "the timer is already running"), ctx, nil))
	assert.True(t, resp.Applied)
	assert.True(t, resp.State.Clock.Running)

	resp = decodeResponse(t, mustCall(t, server.intent(session.Start, "the timer is already running"), ctx, nil))
	assert.False(t, resp.Applied)
	assert.Equal(t, "the timer is already running", resp.Reason)

	resp = decodeResponse(t, mustCall(t, server.intent(session.SkipBreak, "not in a break"), ctx, nil))
	assert.False(t, resp.Applied)
	assert.Equal(t, "not in a break", resp.Reason)
}

func TestServer_handleUpdateConfig(t *testing.T) {
	server, _ := newTestServer()
	ctx := context.Background()

	result, err := server.handleUpdateConfig(ctx, callRequest(map[string]interface{}{
		"work_minutes":        float64(50),
		"short_break_minutes": float64(0),
	}))
	require.NoError(t, err)
	resp := decodeResponse(t, result)

	assert.Equal(t, domain.SessionConfig{WorkMinutes: 50, ShortBreakMinutes: 1, LongBreakMinutes: 10, SessionsBeforeLongBreak: 4}, resp.State.Clock.Config)
	assert.Equal(t, 3000, resp.State.Clock.RemainingSeconds)

	result, err = server.handleUpdateConfig(ctx, callRequest(map[string]interface{}{"preset": "sprint"}))
	require.NoError(t, err)
	resp = decodeResponse(t, result)
	assert.Equal(t, domain.PresetSprint.Config(), resp.State.Clock.Config)

	result, err = server.handleUpdateConfig(ctx, callRequest(map[string]interface{}{"preset": "marathon"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestServer_handleAddTask(t *testing.T) {
	server, _ := newTestServer()
	ctx := context.Background()

	result, err := server.handleAddTask(ctx, callRequest(map[string]interface{}{"content": "review PR"}))
	require.NoError(t, err)
	resp := decodeResponse(t, result)
	assert.True(t, resp.Applied)
	require.NotNil(t, resp.Task)
	assert.Equal(t, "review PR", resp.Task.Content)
	assert.NotEmpty(t, resp.Task.ID)

	result, err = server.handleAddTask(ctx, callRequest(map[string]interface{}{"content": "   "}))
	require.NoError(t, err)
	resp = decodeResponse(t, result)
	assert.False(t, resp.Applied)
	assert.Equal(t, domain.ErrEmptyTaskContent.Error(), resp.Reason)

	result, err = server.handleAddTask(ctx, callRequest(nil))
	require.NoError(t, err)
	assert.True(t, result.IsError, "missing content is an argument error")
}

func TestServer_QueueTools(t *testing.T) {
	server, session := newTestServer()
	ctx := context.Background()
	session.Enqueue("one")
	session.Enqueue("two")

	resp := decodeResponse(t, mustCall(t, server.intent(session.Complete, "no task in progress"), ctx, nil))
	assert.False(t, resp.Applied)
	assert.Equal(t, "no task in progress", resp.Reason)

	resp = decodeResponse(t, mustCall(t, server.intent(session.SelectNext, ""), ctx, nil))
	require.True(t, resp.Applied)
	assert.Equal(t, "one", resp.Task.Content)

	resp = decodeResponse(t, mustCall(t, server.intent(session.CompleteAndSelectNext, ""), ctx, nil))
	require.True(t, resp.Applied)
	assert.Equal(t, "one", resp.Task.Content)
	require.NotNil(t, resp.Next)
	assert.Equal(t, "two", resp.Next.Content)

	resp = decodeResponse(t, mustCall(t, server.intent(session.ReturnToQueue, ""), ctx, nil))
	require.True(t, resp.Applied)
	assert.Nil(t, resp.State.Queue.Current)
	assert.Len(t, resp.State.Queue.Active, 1)
	assert.Len(t, resp.State.Queue.Completed, 1)
}

func TestServer_handleReorderTask(t *testing.T) {
	server, session := newTestServer()
	ctx := context.Background()
	for _, content := range []string{"a", "b", "c"} {
		session.Enqueue(content)
	}

	result, err := server.handleReorderTask(ctx, callRequest(map[string]interface{}{"from": float64(0), "to": float64(2)}))
	require.NoError(t, err)
	resp := decodeResponse(t, result)
	require.True(t, resp.Applied)
	assert.Equal(t, "a", resp.State.Queue.Active[2].Content)

	result, err = server.handleReorderTask(ctx, callRequest(map[string]interface{}{"from": float64(0), "to": float64(9)}))
	require.NoError(t, err)
	resp = decodeResponse(t, result)
	assert.False(t, resp.Applied)
	assert.Contains(t, resp.Reason, "active")

	result, err = server.handleReorderTask(ctx, callRequest(map[string]interface{}{"list": "archived", "from": float64(0), "to": float64(1)}))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = server.handleReorderTask(ctx, callRequest(map[string]interface{}{"from": float64(0)}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestServer_handleFindTask(t *testing.T) {
	server, session := newTestServer()
	ctx := context.Background()
	session.Enqueue("write release notes")
	session.Enqueue("fix flaky test")

	result, err := server.handleFindTask(ctx, callRequest(map[string]interface{}{"query": "flaky"}))
	require.NoError(t, err)

	var matches []domain.TaskMatch
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, domain.ListActive, matches[0].List)
	assert.Equal(t, 1, matches[0].Index)

	result, err = server.handleFindTask(ctx, callRequest(map[string]interface{}{"query": "zzz"}))
	require.NoError(t, err)
	assert.Equal(t, "[]", resultText(t, result))
}

func mustCall(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), ctx context.Context, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	result, err := handler(ctx, callRequest(args))
	require.NoError(t, err)
	return result
}
