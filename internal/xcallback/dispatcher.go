// Package xcallback hands callback URLs to the operating system's
// default-handler facility (the `open` command on macOS).
package xcallback

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Result is the outcome of dispatching a single URL. A failed dispatch is
// data, not a Go error: the caller decides how to surface it.
type Result struct {
	OK     bool
	Output string
	Err    string
}

// Dispatcher opens a URL with whatever handles its scheme. The call blocks
// until the facility acknowledges; it is not idempotent and never retried.
type Dispatcher interface {
	Open(ctx context.Context, url string) Result
}

// Exec dispatches URLs by running an external command with the URL as its
// sole argument.
type Exec struct {
	command string
	logger  *slog.Logger
}

// NewExec creates a Dispatcher around the given command, typically "open".
func NewExec(command string, logger *slog.Logger) *Exec {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exec{command: command, logger: logger}
}

// Open runs the command and folds any failure, including the facility's own
// stderr text, into the Result.
func (e *Exec) Open(ctx context.Context, url string) Result {
	e.logger.Debug("dispatching x-callback-url",
		slog.String("command", e.command),
		slog.String("url", url))

	cmd := exec.CommandContext(ctx, e.command, url)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := fmt.Sprintf("failed to execute x-callback-url: %v", err)
		if s := strings.TrimSpace(stderr.String()); s != "" {
			msg += ": " + s
		}
		e.logger.Warn("x-callback-url dispatch failed", slog.String("error", msg))
		return Result{Err: msg}
	}

	// Most handlers acknowledge silently; stdout is usually empty.
	return Result{OK: true, Output: stdout.String()}
}

// Noop is a Dispatcher for platforms without a URL-dispatch facility. Every
// call succeeds without doing anything.
type Noop struct{}

// Open implements Dispatcher.
func (Noop) Open(context.Context, string) Result {
	return Result{OK: true}
}
