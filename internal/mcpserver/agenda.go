package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/raido/internal/agenda"
	"github.com/starford/raido/internal/apperr"
)

// The Agenda tool handlers share one shape: bind the arguments into the
// typed record, validate, build the callback URL, dispatch. A failed
// dispatch is reported in-band as a tool result so the calling agent can
// react to it; only argument problems become request-level errors.

func (s *Server) createAgendaNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p agenda.CreateNoteParams
	if err := req.BindArguments(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidArgument, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidArgument, err)
	}

	if res := s.dispatcher.Open(ctx, p.URL()); !res.OK {
		return mcp.NewToolResultError("Failed to create note in Agenda: " + res.Err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Created note '%s' in Agenda", p.Title)), nil
}

func (s *Server) createAgendaProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p agenda.CreateProjectParams
	if err := req.BindArguments(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidArgument, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidArgument, err)
	}

	if res := s.dispatcher.Open(ctx, p.URL()); !res.OK {
		return mcp.NewToolResultError("Failed to create project in Agenda: " + res.Err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Created project '%s' in Agenda", p.Title)), nil
}

func (s *Server) openAgendaNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p agenda.OpenNoteParams
	if err := req.BindArguments(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidArgument, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidArgument, err)
	}

	if res := s.dispatcher.Open(ctx, p.URL()); !res.OK {
		return mcp.NewToolResultError("Failed to open note in Agenda: " + res.Err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Opened note '%s' in Agenda", p.Subject())), nil
}
