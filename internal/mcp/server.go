// Package mcp implements the Model Context Protocol server for focusflow.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ajitpratap0/focusflow/internal/models"
	"github.com/ajitpratap0/focusflow/internal/query"
	"github.com/ajitpratap0/focusflow/internal/state"
)

// Server wraps an MCPServer with the focusflow state container.
type Server struct {
	mcp    *mcpserver.MCPServer
	st     *state.Store
	logger *slog.Logger
}

// NewServer creates a new MCP server. If st is nil, tool calls return an
// error response instead of panicking.
func NewServer(st *state.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		st:     st,
		logger: logger,
	}

	mcpSrv := mcpserver.NewMCPServer(
		"focusflow",
		"1.0.0",
		mcpserver.WithToolCapabilities(true),
	)

	mcpSrv.AddTool(buildCaptureIdeaTool(), s.handleCaptureIdea)
	mcpSrv.AddTool(buildListIdeasTool(), s.handleListIdeas)
	mcpSrv.AddTool(buildCompleteIdeaTool(), s.handleCompleteIdea)
	mcpSrv.AddTool(buildAddEventTool(), s.handleAddEvent)
	mcpSrv.AddTool(buildListEventsTool(), s.handleListEvents)

	s.mcp = mcpSrv
	return s
}

// MCPServer returns the underlying mcp-go MCPServer for use with ServeStdio.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcp
}

// HandleCaptureIdea is the exported handler for the "capture_idea" tool.
// It is exposed for direct testing without the mcp-go transport layer.
func (s *Server) HandleCaptureIdea(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleCaptureIdea(ctx, req)
}

// HandleListIdeas is the exported handler for the "list_ideas" tool.
func (s *Server) HandleListIdeas(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleListIdeas(ctx, req)
}

// HandleCompleteIdea is the exported handler for the "complete_idea" tool.
func (s *Server) HandleCompleteIdea(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleCompleteIdea(ctx, req)
}

// HandleAddEvent is the exported handler for the "add_event" tool.
func (s *Server) HandleAddEvent(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleAddEvent(ctx, req)
}

// HandleListEvents is the exported handler for the "list_events" tool.
func (s *Server) HandleListEvents(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleListEvents(ctx, req)
}

// --- helpers ---

// toolResultJSON marshals v to JSON and returns it as a tool text result.
func toolResultJSON(v any) (*mcpgo.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("mcp: marshaling result: %w", err)
	}
	return mcpgo.NewToolResultText(string(b)), nil
}

// --- tool definitions ---

func buildCaptureIdeaTool() mcpgo.Tool {
	return mcpgo.NewTool("capture_idea",
		mcpgo.WithDescription("Capture a new idea in FocusFlow."),
		mcpgo.WithString("title",
			mcpgo.Required(),
			mcpgo.Description("Short title of the idea"),
		),
		mcpgo.WithString("description",
			mcpgo.Description("Longer free-form description"),
		),
		mcpgo.WithString("layer",
			mcpgo.Description("Layer: personal, trabajo, proyectos, inspiracion or referencias"),
		),
		mcpgo.WithString("date",
			mcpgo.Description("Scheduled date, YYYY-MM-DD"),
		),
		mcpgo.WithString("time",
			mcpgo.Description("Scheduled time, HH:mm"),
		),
		mcpgo.WithString("energy",
			mcpgo.Description("Energy block: alta, media or baja"),
		),
		mcpgo.WithBoolean("urgent",
			mcpgo.Description("Mark the idea as urgent"),
		),
	)
}

func buildListIdeasTool() mcpgo.Tool {
	return mcpgo.NewTool("list_ideas",
		mcpgo.WithDescription("List ideas in a mental space or on a date."),
		mcpgo.WithString("space",
			mcpgo.Description("Mental space: hoy, activas, recientes, archivadas or calendario (default: hoy)"),
		),
		mcpgo.WithString("date",
			mcpgo.Description("Only ideas scheduled on this date, YYYY-MM-DD (overrides space)"),
		),
		mcpgo.WithString("layer",
			mcpgo.Description("Only ideas in this layer"),
		),
	)
}

func buildCompleteIdeaTool() mcpgo.Tool {
	return mcpgo.NewTool("complete_idea",
		mcpgo.WithDescription("Toggle an idea's completion. Completing a completed idea reopens it."),
		mcpgo.WithString("id",
			mcpgo.Required(),
			mcpgo.Description("The idea ID"),
		),
	)
}

func buildAddEventTool() mcpgo.Tool {
	return mcpgo.NewTool("add_event",
		mcpgo.WithDescription("Add an agenda event."),
		mcpgo.WithString("title",
			mcpgo.Required(),
			mcpgo.Description("Event title"),
		),
		mcpgo.WithString("date",
			mcpgo.Required(),
			mcpgo.Description("Event date, YYYY-MM-DD"),
		),
		mcpgo.WithString("time",
			mcpgo.Required(),
			mcpgo.Description("Event time, HH:mm"),
		),
		mcpgo.WithString("description",
			mcpgo.Description("Event description"),
		),
		mcpgo.WithString("anxiety",
			mcpgo.Description("Anxiety level: bajo, medio or alto (default: medio)"),
		),
		mcpgo.WithString("priority",
			mcpgo.Description("Priority level: baja, normal, alta or urgente (default: normal)"),
		),
	)
}

func buildListEventsTool() mcpgo.Tool {
	return mcpgo.NewTool("list_events",
		mcpgo.WithDescription("List agenda events."),
		mcpgo.WithString("view",
			mcpgo.Description("today, upcoming or completed (default: upcoming)"),
		),
		mcpgo.WithString("date",
			mcpgo.Description("Only pending events on this date, YYYY-MM-DD (overrides view)"),
		),
	)
}

// --- handlers ---

func (s *Server) handleCaptureIdea(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.st == nil {
		return mcpgo.NewToolResultError("store is unavailable"), nil
	}

	draft := state.IdeaDraft{
		Title:       strings.TrimSpace(req.GetString("title", "")),
		Description: req.GetString("description", ""),
		Layer:       models.Layer(req.GetString("layer", "")),
		Date:        req.GetString("date", ""),
		Time:        req.GetString("time", ""),
		EnergyBlock: models.EnergyLevel(req.GetString("energy", "")),
		IsUrgent:    req.GetBool("urgent", false),
	}
	if err := draft.Validate(); err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}

	idea := s.st.AddIdea(draft)
	s.logger.Info("mcp: captured idea", "id", idea.ID)
	return toolResultJSON(idea)
}

func (s *Server) handleListIdeas(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.st == nil {
		return mcpgo.NewToolResultError("store is unavailable"), nil
	}

	ideas := s.st.State().Ideas
	var out []models.Idea
	if date := req.GetString("date", ""); date != "" {
		out = query.IdeasByDate(ideas, date)
	} else {
		space := models.MentalSpace(req.GetString("space", string(models.SpaceToday)))
		if !space.IsValid() {
			return mcpgo.NewToolResultErrorf("invalid space %q: must be one of hoy, activas, recientes, archivadas, calendario", space), nil
		}
		out = query.IdeasInSpace(ideas, space, s.st.Now())
	}

	if l := req.GetString("layer", ""); l != "" {
		filter := models.LayerFilter(l)
		if !filter.IsValid() {
			return mcpgo.NewToolResultErrorf("invalid layer %q", l), nil
		}
		out = query.InLayer(out, filter)
	}

	return toolResultJSON(map[string]any{
		"ideas": out,
		"count": len(out),
	})
}

func (s *Server) handleCompleteIdea(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.st == nil {
		return mcpgo.NewToolResultError("store is unavailable"), nil
	}

	id := strings.TrimSpace(req.GetString("id", ""))
	if id == "" {
		return mcpgo.NewToolResultError("id is required and must not be empty"), nil
	}
	if _, ok := s.st.State().FindIdea(id); !ok {
		return mcpgo.NewToolResultErrorf("idea %q not found", id), nil
	}

	s.st.CompleteIdea(id)
	idea, _ := s.st.State().FindIdea(id)
	s.logger.Info("mcp: toggled idea completion", "id", id, "completed", idea.IsCompleted())
	return toolResultJSON(map[string]any{
		"id":        id,
		"completed": idea.IsCompleted(),
	})
}

func (s *Server) handleAddEvent(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.st == nil {
		return mcpgo.NewToolResultError("store is unavailable"), nil
	}

	draft := state.EventDraft{
		Title:         strings.TrimSpace(req.GetString("title", "")),
		Date:          req.GetString("date", ""),
		Time:          req.GetString("time", ""),
		Description:   req.GetString("description", ""),
		AnxietyLevel:  models.AnxietyLevel(req.GetString("anxiety", "")),
		PriorityLevel: models.PriorityLevel(req.GetString("priority", "")),
	}
	if err := draft.Validate(); err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}

	ev := s.st.AddEvent(draft)
	s.logger.Info("mcp: added event", "id", ev.ID, "date", ev.Date)
	return toolResultJSON(ev)
}

func (s *Server) handleListEvents(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.st == nil {
		return mcpgo.NewToolResultError("store is unavailable"), nil
	}

	events := s.st.State().Events
	today := s.st.Today()

	var out []models.AgendaEvent
	if date := req.GetString("date", ""); date != "" {
		out = query.EventsByDate(events, date)
		query.SortChronologically(out)
	} else {
		switch view := req.GetString("view", "upcoming"); view {
		case "upcoming":
			out = query.UpcomingEvents(events, today)
		case "today":
			out = query.EventsToday(events, today)
			query.SortChronologically(out)
		case "completed":
			out = query.CompletedEvents(events)
		default:
			return mcpgo.NewToolResultErrorf("invalid view %q: must be one of today, upcoming, completed", view), nil
		}
	}

	return toolResultJSON(map[string]any{
		"eventos": out,
		"count":   len(out),
	})
}
