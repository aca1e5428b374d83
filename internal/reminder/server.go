package reminder

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "reminder"
	serverVersion = "1.0.0"
)

// Server is the MCP server exposing the reminder engine as tools.
type Server struct {
	mcpServer *server.MCPServer
	service   *Service
}

// NewServer creates a new reminder MCP server backed by the given service.
func NewServer(service *Service) *Server {
	s := &Server{
		service: service,
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)

	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server for serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	// add_reminder_from_text
	s.mcpServer.AddTool(
		mcp.NewTool("add_reminder_from_text",
			mcp.WithDescription("Create a reminder from natural language, e.g. 'remind me every day at 8am to take my medicine'"),
			mcp.WithString("text", mcp.Required(), mcp.Description("The reminder request in natural language")),
		),
		s.handleAddFromText,
	)

	// add_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("add_reminder",
			mcp.WithDescription("Create a reminder with explicit fields. A past due date fires on the next poll."),
			mcp.WithString("text", mcp.Required(), mcp.Description("Reminder text")),
			mcp.WithString("due_time", mcp.Required(), mcp.Description("Due time in RFC3339 format (e.g. 2025-01-15T09:00:00Z)")),
			mcp.WithString("recurring_unit", mcp.Description("Recurrence unit: days, weeks or months")),
			mcp.WithNumber("recurring_count", mcp.Description("Recurrence count (default 1 when a unit is given)")),
		),
		s.handleAddStructured,
	)

	// list_upcoming
	s.mcpServer.AddTool(
		mcp.NewTool("list_upcoming",
			mcp.WithDescription("List pending reminders sorted by due time"),
			mcp.WithNumber("limit", mcp.Description("Maximum number of reminders to return (default 10)")),
		),
		s.handleListUpcoming,
	)

	// get_due_reminders
	s.mcpServer.AddTool(
		mcp.NewTool("get_due_reminders",
			mcp.WithDescription("Get all pending reminders that are due now or overdue"),
		),
		s.handleGetDue,
	)

	// complete_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("complete_reminder",
			mcp.WithDescription("Mark a reminder as completed"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder ID")),
		),
		s.handleComplete,
	)

	// cancel_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("cancel_reminder",
			mcp.WithDescription("Cancel and delete a reminder permanently"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder ID")),
		),
		s.handleCancel,
	)
}

func (s *Server) handleAddFromText(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")
	if text == "" {
		return mcp.NewToolResultError("text is required"), nil
	}

	added, ok, err := s.service.AddFromText(text, time.Now().UTC())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add reminder: %v", err)), nil
	}
	if !ok {
		return mcp.NewToolResultError("could not understand the reminder, please rephrase"), nil
	}

	output, _ := json.MarshalIndent(added, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleAddStructured(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")
	dueStr := req.GetString("due_time", "")

	if text == "" {
		return mcp.NewToolResultError("text is required"), nil
	}
	if dueStr == "" {
		return mcp.NewToolResultError("due_time is required"), nil
	}

	due, err := time.Parse(time.RFC3339, dueStr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid due_time format: %v (use RFC3339, e.g. 2025-01-15T09:00:00Z)", err)), nil
	}

	var interval *Recurrence
	if unit := req.GetString("recurring_unit", ""); unit != "" {
		count := int(req.GetFloat("recurring_count", 1))
		rc := Recurrence{Unit: unit, N: count}
		if !rc.Valid() {
			return mcp.NewToolResultError(fmt.Sprintf("invalid recurrence %s=%d (units: days, weeks, months)", unit, count)), nil
		}
		interval = &rc
	}

	added, err := s.service.AddStructured(text, due, interval)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add reminder: %v", err)), nil
	}

	output, _ := json.MarshalIndent(added, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleListUpcoming(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := int(req.GetFloat("limit", 10))

	reminders := s.service.Upcoming(limit)
	if len(reminders) == 0 {
		return mcp.NewToolResultText("No upcoming reminders."), nil
	}

	output, _ := json.MarshalIndent(reminders, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleGetDue(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reminders := s.service.DueNow(time.Now().UTC())
	if len(reminders) == 0 {
		return mcp.NewToolResultText("No due reminders."), nil
	}

	output, _ := json.MarshalIndent(reminders, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleComplete(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	found, err := s.service.Complete(id, time.Now().UTC())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to complete reminder: %v", err)), nil
	}
	if !found {
		return mcp.NewToolResultError(fmt.Sprintf("reminder %s not found", id)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Reminder %s marked as completed.", id)), nil
}

func (s *Server) handleCancel(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	found, err := s.service.Cancel(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to cancel reminder: %v", err)), nil
	}
	if !found {
		return mcp.NewToolResultError(fmt.Sprintf("reminder %s not found", id)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Reminder %s cancelled.", id)), nil
}
