// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package log prints user-facing console lines and mirrors each of them to
// zerolog.
package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

const (
	rowIndent   = 4
	labelWidth  = 32
	kindWidth   = 10
	actionWidth = 12
)

// Action is what happened to a node.
type Action string

const (
	Added     Action = "added"
	Updated   Action = "updated"
	Removed   Action = "removed"
	Moved     Action = "moved"
	Published Action = "published"
	Unchanged Action = "unchanged"
)

// 🎯 NodeOperation is one row of console output about a tree node.
type NodeOperation struct {
	ID     int
	Label  string
	Folder bool
	Action Action
	Detail string // free text shown after the action, e.g. a gist url
}

// ScopeOperation names the tree a command works on.
type ScopeOperation struct {
	Scope    string // global or workspace
	Location string // file path or database key
}

// 🎯 Logger writes console output and zerolog records.
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	scope   *ScopeOperation
	rows    int
}

// 🏭 New creates a logger writing to console. Structured records go to
// stderr at level.
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

type contextKey struct{}

// FromContext returns the logger stored by NewContext. It panics when there
// is none.
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// NewContext stores l in ctx.
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

func (l *Logger) formatNodeOperation(op NodeOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch op.Action {
	case Removed:
		symbol, symbolColor = '✗', color.FgRed
	case Added:
		symbol, symbolColor = '✓', color.FgGreen
	case Updated, Moved:
		symbol, symbolColor = '⟳', color.FgBlue
	case Published:
		symbol, symbolColor = '↑', color.FgMagenta
	default:
		symbol, symbolColor = '•', color.FgCyan
	}

	kind, kindColor := "snippet", color.FgYellow
	if op.Folder {
		kind, kindColor = "folder", color.FgCyan
	}

	label := fmt.Sprintf("%s #%d", op.Label, op.ID)
	line := fmt.Sprintf("%*s%s %-*s %s %-*s",
		rowIndent, "",
		color.New(symbolColor).Sprint(string(symbol)),
		labelWidth, label,
		color.New(kindColor).Sprint(fmt.Sprintf("%-*s", kindWidth, kind)),
		actionWidth, string(op.Action))
	if op.Detail != "" {
		line += " " + color.New(color.Faint).Sprint(op.Detail)
	}
	return line
}

// 📝 LogNodeOperation prints one node row.
func (l *Logger) LogNodeOperation(ctx context.Context, op NodeOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rows++
	fmt.Fprintln(l.console, l.formatNodeOperation(op))

	l.zlog.Info().
		Int("id", op.ID).
		Str("label", op.Label).
		Bool("folder", op.Folder).
		Str("action", string(op.Action)).
		Str("detail", op.Detail).
		Msg("node operation")
}

// StartScope prints the tree being worked on.
func (l *Logger) StartScope(ctx context.Context, op ScopeOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.scope = &op
	l.rows = 0

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Scope),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(op.Location))

	l.zlog.Info().
		Str("scope", op.Scope).
		Str("location", op.Location).
		Msg("starting scope")
}

// EndScope closes the scope opened by StartScope.
func (l *Logger) EndScope(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.scope == nil {
		return
	}

	l.zlog.Info().
		Str("scope", l.scope.Scope).
		Int("rows", l.rows).
		Msg("scope complete")

	l.scope = nil
	l.rows = 0
}

func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// Header prints a command banner.
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("snipr")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// Print writes msg verbatim, for command results such as rendered trees.
func (l *Logger) Print(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console, msg)
}

func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

func (l *Logger) Infof(format string, args ...any) {
	l.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Warningf(format string, args ...any) {
	l.Warning(fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...any) {
	l.Error(fmt.Sprintf(format, args...))
}

func (l *Logger) Successf(format string, args ...any) {
	l.Success(fmt.Sprintf(format, args...))
}
