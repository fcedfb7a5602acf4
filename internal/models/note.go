// Package models defines the domain types for Raido.
package models

// NoteScheme is the URI scheme under which notes are exposed as MCP resources.
const NoteScheme = "note"

// noteHost is the fixed host segment of every note resource URI.
const noteHost = "internal"

// Note is an ephemeral text note held in memory for the lifetime of the process.
type Note struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// URI returns the resource URI for the note, e.g. "note://internal/todo".
func (n Note) URI() string {
	return NoteScheme + "://" + noteHost + "/" + n.Name
}
