package mcpserver

// XCallbackContract describes how Raido maps its tools onto Agenda's
// x-callback-url scheme. It is announced as session instructions so that
// LLM clients know what each tool actually does on the host machine.
const XCallbackContract = `# Raido — Agenda bridge

Raido keeps a small in-process scratchpad of named notes and can drive the
Agenda app on this machine through its x-callback-url scheme.

## Scratchpad

- ` + "`" + `add-note` + "`" + ` stores (or overwrites) a note under a unique name. Stored
  notes appear as ` + "`" + `note://internal/<name>` + "`" + ` resources and feed the
  ` + "`" + `summarize-notes` + "`" + ` prompt. They are NOT persisted across restarts and
  never reach Agenda.

## Agenda actions

Each tool below builds a URL of the form
` + "`" + `agenda://x-callback-url/<action>?<params>` + "`" + ` and hands it to the OS, which
activates Agenda. Agenda gives no synchronous result back; a success reply
only means the URL was dispatched.

- ` + "`" + `create-agenda-note` + "`" + ` -> ` + "`" + `create-note` + "`" + `. Requires title and text; the
  optional fields (project_title, dates, template, flags) map 1:1 onto
  Agenda's query parameters.
- ` + "`" + `create-agenda-project` + "`" + ` -> ` + "`" + `create-project` + "`" + `. Requires title;
  sort_order must be newest-first or oldest-first.
- ` + "`" + `open-agenda-note` + "`" + ` -> ` + "`" + `open-note` + "`" + `. Needs title or identifier.

If the OS cannot dispatch the URL (for example, Agenda is not installed)
the tool returns a "Failed to ... in Agenda" text instead of an error, so
you can tell the user what went wrong.`
