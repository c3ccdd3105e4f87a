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

package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_scope",
			op: func(t *testing.T, logger *Logger) {
				logger.StartScope(context.Background(), ScopeOperation{
					Scope:    "workspace",
					Location: "/tmp/snippets.json",
				})
				logger.EndScope(context.Background())
			},
			wantLogs: []string{
				"◆ workspace • /tmp/snippets.json",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
				logger.Successf("success %d", 2)
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"❌ error test",
				"✅ success 2",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("listing snippets")
			},
			wantLogs: []string{
				"snipr • listing snippets",
			},
		},
		{
			name: "log_newline_and_print",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("first")
				logger.LogNewline()
				logger.Print("raw")
			},
			wantLogs: []string{
				"ℹ️  first",
				"",
				"raw",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.Disabled)

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	logger := New(io.Discard, zerolog.Disabled)

	ctx := NewContext(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx), "logger from context should be the same instance")

	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}

func TestNodeOperationFormatting(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		op   NodeOperation
		want []string
	}{
		{
			name: "added_snippet",
			op:   NodeOperation{ID: 3, Label: "iferr", Action: Added},
			want: []string{"✓", "iferr", "#3", "snippet", "added"},
		},
		{
			name: "moved_folder",
			op:   NodeOperation{ID: 2, Label: "Go", Folder: true, Action: Moved},
			want: []string{"⟳", "Go", "#2", "folder", "moved"},
		},
		{
			name: "removed_snippet",
			op:   NodeOperation{ID: 9, Label: "old", Action: Removed},
			want: []string{"✗", "old", "#9", "snippet", "removed"},
		},
		{
			name: "published_with_detail",
			op:   NodeOperation{ID: 4, Label: "retry", Action: Published, Detail: "https://gist.github.com/abc"},
			want: []string{"↑", "retry", "#4", "snippet", "published", "https://gist.github.com/abc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.Disabled)

			logger.LogNodeOperation(context.Background(), tt.op)

			assert.Equal(t, tt.want, strings.Fields(buf.String()))
		})
	}
}
