// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the Raido note store and Agenda x-callback actions to LLM clients.
package mcpserver

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/raido/internal/notestore"
	"github.com/starford/raido/internal/xcallback"
)

// Server wraps the MCP server with the note store and the Agenda dispatcher.
type Server struct {
	mcp        *server.MCPServer
	store      *notestore.Store
	dispatcher xcallback.Dispatcher
}

// New creates an MCP server with all Raido tools and prompts registered.
func New(store *notestore.Store, dispatcher xcallback.Dispatcher) *Server {
	s := &Server{store: store, dispatcher: dispatcher}

	s.mcp = server.NewMCPServer(
		"Raido",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(false),
		server.WithInstructions(XCallbackContract),
	)

	s.mcp.AddTool(mcp.NewTool("add-note",
		mcp.WithDescription("Add a new note"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Unique name of the note")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Text content of the note")),
	), s.addNote)

	s.mcp.AddTool(mcp.NewTool("create-agenda-note",
		mcp.WithDescription("Create a note in Agenda"),
		mcp.WithString("title", mcp.Required(), mcp.Description("Title of the new note")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Markdown body of the note")),
		mcp.WithString("project_title", mcp.Description("Project to create the note in")),
		mcp.WithBoolean("on_the_agenda", mcp.Description("Put the note on the agenda")),
		mcp.WithString("date", mcp.Description("Date to assign to the note")),
		mcp.WithString("start_date", mcp.Description("Start of the note's date range")),
		mcp.WithString("end_date", mcp.Description("End of the note's date range")),
		mcp.WithString("template_name", mcp.Description("Template to create the note from")),
		mcp.WithString("template_input", mcp.Description("Input text for the template")),
		mcp.WithBoolean("collapsed", mcp.Description("Create the note collapsed")),
		mcp.WithBoolean("completed", mcp.Description("Mark the note as completed")),
		mcp.WithBoolean("pinned", mcp.Description("Pin the note")),
		mcp.WithBoolean("footnote", mcp.Description("Add the text as a footnote")),
		mcp.WithBoolean("select", mcp.Description("Select the note after creating it")),
	), s.createAgendaNote)

	s.mcp.AddTool(mcp.NewTool("create-agenda-project",
		mcp.WithDescription("Create a new project in Agenda"),
		mcp.WithString("title", mcp.Required(), mcp.Description("Title of the new project")),
		mcp.WithString("category_title", mcp.Description("Category to create the project in")),
		mcp.WithString("identifier", mcp.Description("Identifier to assign to the project")),
		mcp.WithBoolean("select", mcp.Description("Select the project after creating it")),
		mcp.WithString("sort_order", mcp.Description("Note sort order within the project"),
			mcp.Enum("newest-first", "oldest-first")),
	), s.createAgendaProject)

	s.mcp.AddTool(mcp.NewTool("open-agenda-note",
		mcp.WithDescription("Open a note in Agenda. Either title or identifier must be provided."),
		mcp.WithString("title", mcp.Description("Title of the note to open")),
		mcp.WithString("identifier", mcp.Description("Identifier of the note to open")),
		mcp.WithString("project_title", mcp.Description("Project containing the note")),
		mcp.WithBoolean("separate_window", mcp.Description("Open the note in a separate window")),
	), s.openAgendaNote)

	s.mcp.AddPrompt(mcp.NewPrompt("summarize-notes",
		mcp.WithPromptDescription("Creates a summary of all notes"),
		mcp.WithArgument("style",
			mcp.ArgumentDescription("Style of the summary (brief/detailed)"),
		),
	), s.summarizeNotes)

	return s
}

// ServeStdio runs the MCP server over stdin/stdout until ctx is cancelled
// or stdin closes. Diagnostics go to stderr; stdout belongs to the protocol.
func (s *Server) ServeStdio(ctx context.Context) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(log.New(os.Stderr, "", log.LstdFlags))
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

// HTTPHandler returns the streamable-HTTP form of the server, suitable for
// mounting in an HTTP router.
func (s *Server) HTTPHandler() http.Handler {
	return server.NewStreamableHTTPServer(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}
