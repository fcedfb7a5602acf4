// Package agenda builds x-callback-url strings for the Agenda app.
//
// Each action has a typed parameter record; optional fields are pointers so
// that an explicitly supplied false still renders into the query string.
// Building a URL is pure and cannot fail once the record has been validated.
package agenda

import (
	"net/url"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// BaseURL is the x-callback-url prefix every Agenda action shares.
const BaseURL = "agenda://x-callback-url/"

// Actions understood by Agenda's x-callback-url handler.
const (
	ActionCreateNote    = "create-note"
	ActionCreateProject = "create-project"
	ActionOpenNote      = "open-note"
)

// Sort orders accepted by the create-project action.
const (
	SortNewestFirst = "newest-first"
	SortOldestFirst = "oldest-first"
)

// CreateNoteParams are the arguments for the create-note action.
type CreateNoteParams struct {
	Title         string  `json:"title"`
	Text          string  `json:"text"`
	ProjectTitle  *string `json:"project_title,omitempty"`
	OnTheAgenda   *bool   `json:"on_the_agenda,omitempty"`
	Date          *string `json:"date,omitempty"`
	StartDate     *string `json:"start_date,omitempty"`
	EndDate       *string `json:"end_date,omitempty"`
	TemplateName  *string `json:"template_name,omitempty"`
	TemplateInput *string `json:"template_input,omitempty"`
	Collapsed     *bool   `json:"collapsed,omitempty"`
	Completed     *bool   `json:"completed,omitempty"`
	Pinned        *bool   `json:"pinned,omitempty"`
	Footnote      *bool   `json:"footnote,omitempty"`
	Select        *bool   `json:"select,omitempty"`
}

// Validate checks the create-note required fields.
func (p CreateNoteParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Text, validation.Required),
	)
}

// URL renders the create-note callback URL.
func (p CreateNoteParams) URL() string {
	q := newQuery(ActionCreateNote)
	q.add("title", p.Title)
	q.add("text", p.Text)
	q.addOpt("project-title", p.ProjectTitle)
	q.addBool("on-the-agenda", p.OnTheAgenda)
	q.addOpt("date", p.Date)
	q.addOpt("start-date", p.StartDate)
	q.addOpt("end-date", p.EndDate)
	q.addOpt("template-name", p.TemplateName)
	q.addOpt("template-input", p.TemplateInput)
	q.addBool("collapsed", p.Collapsed)
	q.addBool("completed", p.Completed)
	q.addBool("pinned", p.Pinned)
	q.addBool("footnote", p.Footnote)
	q.addBool("select", p.Select)
	return q.String()
}

// CreateProjectParams are the arguments for the create-project action.
type CreateProjectParams struct {
	Title         string  `json:"title"`
	CategoryTitle *string `json:"category_title,omitempty"`
	Identifier    *string `json:"identifier,omitempty"`
	Select        *bool   `json:"select,omitempty"`
	SortOrder     *string `json:"sort_order,omitempty"`
}

// Validate checks the create-project required fields and the sort order enum.
func (p CreateProjectParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.SortOrder, validation.In(SortNewestFirst, SortOldestFirst)),
	)
}

// URL renders the create-project callback URL.
func (p CreateProjectParams) URL() string {
	q := newQuery(ActionCreateProject)
	q.add("title", p.Title)
	q.addOpt("category-title", p.CategoryTitle)
	q.addOpt("identifier", p.Identifier)
	q.addBool("select", p.Select)
	q.addOpt("sort-order", p.SortOrder)
	return q.String()
}

// OpenNoteParams are the arguments for the open-note action.
type OpenNoteParams struct {
	Title          *string `json:"title,omitempty"`
	Identifier     *string `json:"identifier,omitempty"`
	ProjectTitle   *string `json:"project_title,omitempty"`
	SeparateWindow *bool   `json:"separate_window,omitempty"`
}

// Validate requires at least one of title or identifier so Agenda can
// locate the note.
func (p OpenNoteParams) Validate() error {
	if p.Title == nil && p.Identifier == nil {
		return validation.NewError("validation_open_note", "either title or identifier must be provided")
	}
	return nil
}

// Subject returns what the open-note call addresses, preferring the title.
func (p OpenNoteParams) Subject() string {
	switch {
	case p.Title != nil:
		return *p.Title
	case p.Identifier != nil:
		return *p.Identifier
	default:
		return "requested note"
	}
}

// URL renders the open-note callback URL.
func (p OpenNoteParams) URL() string {
	q := newQuery(ActionOpenNote)
	q.addOpt("title", p.Title)
	q.addOpt("identifier", p.Identifier)
	q.addOpt("project-title", p.ProjectTitle)
	q.addBool("separate-window", p.SeparateWindow)
	return q.String()
}

// query accumulates key=value pairs in the order they are added. Agenda does
// not care about parameter order, but a deterministic order keeps the URLs
// reproducible and testable.
type query struct {
	action string
	pairs  []string
}

func newQuery(action string) *query {
	return &query{action: action}
}

func (q *query) add(key, value string) {
	q.pairs = append(q.pairs, key+"="+escape(value))
}

func (q *query) addOpt(key string, value *string) {
	if value != nil {
		q.add(key, *value)
	}
}

// addBool renders the literal words true/false, which need no escaping.
func (q *query) addBool(key string, value *bool) {
	if value != nil {
		q.pairs = append(q.pairs, key+"="+strconv.FormatBool(*value))
	}
}

func (q *query) String() string {
	return BaseURL + q.action + "?" + strings.Join(q.pairs, "&")
}

// escape percent-encodes a query value with %20 for spaces. QueryEscape's
// plus-sign form confuses some x-callback consumers, Agenda included.
func escape(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}
