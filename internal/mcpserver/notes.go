package mcpserver

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/models"
)

type addNoteParams struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

func (p addNoteParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Content, validation.Required),
	)
}

// addNote upserts a note and refreshes its resource registration. mcp-go
// notifies connected sessions that the resource list changed.
func (s *Server) addNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p addNoteParams
	if err := req.BindArguments(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidArgument, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidArgument, err)
	}

	s.store.Put(p.Name, p.Content)
	s.registerNoteResource(models.Note{Name: p.Name, Content: p.Content})

	return mcp.NewToolResultText(
		fmt.Sprintf("Added note '%s' with content: %s", p.Name, p.Content)), nil
}

func (s *Server) registerNoteResource(n models.Note) {
	s.mcp.AddResource(
		mcp.NewResource(n.URI(), "Note: "+n.Name,
			mcp.WithResourceDescription("A simple note named "+n.Name),
			mcp.WithMIMEType("text/plain"),
		),
		s.readNoteResource,
	)
}

// readNoteResource serves note://internal/<name> reads from the store.
func (s *Server) readNoteResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	u, err := url.Parse(req.Params.URI)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed resource URI: %s", apperr.ErrInvalidArgument, req.Params.URI)
	}
	if u.Scheme != models.NoteScheme {
		return nil, fmt.Errorf("%w: unsupported URI scheme: %s", apperr.ErrInvalidArgument, u.Scheme)
	}

	name := strings.TrimPrefix(u.Path, "/")
	content, ok := s.store.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: note not found: %s", apperr.ErrNotFound, name)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     content,
		},
	}, nil
}

// summarizeNotes renders every stored note into a single user message,
// in store insertion order.
func (s *Server) summarizeNotes(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	detail := ""
	if req.Params.Arguments["style"] == "detailed" {
		detail = " Give extensive details."
	}

	notes := s.store.List()
	lines := make([]string, len(notes))
	for i, n := range notes {
		lines[i] = fmt.Sprintf("- %s: %s", n.Name, n.Content)
	}

	text := fmt.Sprintf("Here are the current notes to summarize:%s\n\n%s",
		detail, strings.Join(lines, "\n"))

	return mcp.NewGetPromptResult(
		"Summarize the current notes",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}
