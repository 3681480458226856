// Package mcp exposes the session over the Model Context Protocol so an
// assistant can drive the timer and the task queue.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/logging"
	"github.com/xvierd/pomo/internal/ports"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server  *server.MCPServer
	session ports.SessionController

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(session ports.SessionController, version string) *Server {
	s := &Server{
		session: session,
	}

	s.server = server.NewMCPServer(
		"pomo",
		version,
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// toolResponse is the JSON body returned by every intent tool.
type toolResponse struct {
	domain.Outcome
	Reason string `json:"reason,omitempty"`
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"get_state",
			mcp.WithDescription("Get the timer mode, remaining seconds, completed work sessions, configuration and both task lists"),
		),
		s.handleGetState,
	)

	s.server.AddTool(
		mcp.NewTool("start_timer", mcp.WithDescription("Start or resume the countdown")),
		s.intent(s.session.Start, "the timer is already running"),
	)

	s.server.AddTool(
		mcp.NewTool("pause_timer", mcp.WithDescription("Pause the countdown")),
		s.intent(s.session.Pause, "the timer is already paused"),
	)

	s.server.AddTool(
		mcp.NewTool("reset_timer", mcp.WithDescription("Pause and restore the full duration of the current interval")),
		s.intent(s.session.Reset, ""),
	)

	s.server.AddTool(
		mcp.NewTool("skip_break", mcp.WithDescription("Abandon the current break and load a paused work interval")),
		s.intent(s.session.SkipBreak, "not in a break"),
	)

	updateConfigTool := mcp.NewTool(
		"update_config",
		mcp.WithDescription("Change interval lengths. Omitted values keep their current setting; values below 1 become 1"),
		mcp.WithNumber("work_minutes", mcp.Description("Work interval length in minutes")),
		mcp.WithNumber("short_break_minutes", mcp.Description("Short break length in minutes")),
		mcp.WithNumber("long_break_minutes", mcp.Description("Long break length in minutes")),
		mcp.WithNumber("sessions_before_long_break", mcp.Description("Work sessions between long breaks")),
		mcp.WithString(
			"preset",
			mcp.Description("Apply a named preset instead of individual values"),
			mcp.Enum(presetNames()...),
		),
	)
	s.server.AddTool(updateConfigTool, s.handleUpdateConfig)

	addTaskTool := mcp.NewTool(
		"add_task",
		mcp.WithDescription("Append a task to the end of the active list"),
		mcp.WithString(
			"content",
			mcp.Required(),
			mcp.Description("The task text"),
		),
	)
	s.server.AddTool(addTaskTool, s.handleAddTask)

	s.server.AddTool(
		mcp.NewTool("select_next_task", mcp.WithDescription("Take the first active task as the task in progress")),
		s.intent(s.session.SelectNext, "a task is already in progress or the active list is empty"),
	)

	s.server.AddTool(
		mcp.NewTool("complete_task", mcp.WithDescription("Mark the task in progress as completed")),
		s.intent(s.session.Complete, "no task in progress"),
	)

	s.server.AddTool(
		mcp.NewTool("complete_and_select_next", mcp.WithDescription("Complete the task in progress, then take the next active task")),
		s.intent(s.session.CompleteAndSelectNext, "no task in progress"),
	)

	s.server.AddTool(
		mcp.NewTool("return_task", mcp.WithDescription("Put the task in progress back at the front of the active list")),
		s.intent(s.session.ReturnToQueue, "no task in progress"),
	)

	reorderTool := mcp.NewTool(
		"reorder_task",
		mcp.WithDescription("Move a task to another position within the same list"),
		mcp.WithString(
			"list",
			mcp.Description("Which list to reorder (default: active)"),
			mcp.Enum(string(domain.ListActive), string(domain.ListCompleted)),
		),
		mcp.WithNumber("from", mcp.Required(), mcp.Description("Zero-based index of the task to move")),
		mcp.WithNumber("to", mcp.Required(), mcp.Description("Zero-based destination index")),
	)
	s.server.AddTool(reorderTool, s.handleReorderTask)

	findTool := mcp.NewTool(
		"find_task",
		mcp.WithDescription("Fuzzy search task text in both lists; returns list and index for use with reorder_task"),
		mcp.WithString(
			"query",
			mcp.Required(),
			mcp.Description("Characters to match in order"),
		),
	)
	s.server.AddTool(findTool, s.handleFindTask)
}

// Start begins serving MCP requests via stdio. It returns when ctx is done
// or stdin is closed.
func (s *Server) Start(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve handles MCP requests read from in and writes responses to out.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(ctx)
	ctx = s.ctx
	s.mu.Unlock()
	defer s.Stop()

	logging.Logger.Info("MCP server listening on stdio")
	stdio := server.NewStdioServer(s.server)
	if err := stdio.Listen(ctx, in, out); err != nil && ctx.Err() == nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

// intent adapts an argument-free session intent to a tool handler. reason is
// reported when the intent's precondition did not hold.
func (s *Server) intent(fn func() domain.Outcome, reason string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return respond(fn(), reason)
	}
}

// handleGetState handles the get_state tool.
func (s *Server) handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(s.session.State(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleUpdateConfig handles the update_config tool.
func (s *Server) handleUpdateConfig(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if name := request.GetString("preset", ""); name != "" {
		preset, err := domain.ValidatePreset(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return respond(s.session.ApplyPreset(preset), "")
	}

	config := s.session.State().Clock.Config
	config.WorkMinutes = request.GetInt("work_minutes", config.WorkMinutes)
	config.ShortBreakMinutes = request.GetInt("short_break_minutes", config.ShortBreakMinutes)
	config.LongBreakMinutes = request.GetInt("long_break_minutes", config.LongBreakMinutes)
	config.SessionsBeforeLongBreak = request.GetInt("sessions_before_long_break", config.SessionsBeforeLongBreak)

	return respond(s.session.UpdateConfig(config), "")
}

// handleAddTask handles the add_task tool.
func (s *Server) handleAddTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := request.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return respond(s.session.Enqueue(content), domain.ErrEmptyTaskContent.Error())
}

// handleReorderTask handles the reorder_task tool.
func (s *Server) handleReorderTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := domain.ParseTaskList(request.GetString("list", string(domain.ListActive)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	from, err := request.RequireInt("from")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	to, err := request.RequireInt("to")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return respond(s.session.Reorder(list, from, to), fmt.Sprintf("index out of range for the %s list", list))
}

// handleFindTask handles the find_task tool.
func (s *Server) handleFindTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	matches := s.session.FindTasks(query)
	if matches == nil {
		matches = []domain.TaskMatch{}
	}

	jsonData, err := json.MarshalIndent(matches, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal matches: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func respond(out domain.Outcome, reason string) (*mcp.CallToolResult, error) {
	resp := toolResponse{Outcome: out}
	if !out.Applied {
		resp.Reason = reason
	}

	jsonData, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal outcome: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func presetNames() []string {
	names := make([]string, len(domain.ValidPresets))
	for i, p := range domain.ValidPresets {
		names[i] = string(p)
	}
	return names
}
