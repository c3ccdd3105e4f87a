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

package store

import (
	"context"
	"database/sql"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/walteh/snipr/pkg/snippet"
	"gitlab.com/tozd/go/errors"
)

const (
	// GlobalKey holds the user-wide tree in host storage.
	GlobalKey = "snippets.global"
	// WorkspaceKey holds the per-workspace tree in host storage.
	WorkspaceKey = "snippets.workspace"
)

const kvSchema = `
CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// 🗄️ SQLiteStore keeps trees in a key-value table, one row per scope key.
type SQLiteStore struct {
	db   *sql.DB
	path string
	key  string
}

var _ DataStore = (*SQLiteStore)(nil)

// OpenSQLite opens (and initializes) the key-value database at path and binds
// the store to key.
func OpenSQLite(ctx context.Context, path, key string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, unavailable("opening", path, err)
	}

	if _, err := db.ExecContext(ctx, kvSchema); err != nil {
		db.Close()
		return nil, unavailable("initializing", path, err)
	}

	return &SQLiteStore{db: db, path: path, key: key}, nil
}

// WithKey returns a store sharing the same database under another key.
func (s *SQLiteStore) WithKey(key string) *SQLiteStore {
	return &SQLiteStore{db: s.db, path: s.path, key: key}
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.Errorf("closing sqlite store: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (*snippet.Node, error) {
	zerolog.Ctx(ctx).Debug().Str("path", s.path).Str("key", s.key).Msg("loading snippet key")

	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", s.key).Scan(&value)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, unavailable("reading", s.location(), err)
	}

	if strings.TrimSpace(value) == "" {
		root := snippet.NewRoot()
		if err := s.Save(ctx, root); err != nil {
			return nil, errors.Errorf("initializing snippet key: %w", err)
		}
		return root, nil
	}

	root, err := snippet.Decode([]byte(value))
	if err != nil {
		return nil, unavailable("parsing", s.location(), err)
	}
	return root, nil
}

func (s *SQLiteStore) Save(ctx context.Context, root *snippet.Node) error {
	zerolog.Ctx(ctx).Debug().Str("path", s.path).Str("key", s.key).Msg("saving snippet key")

	data, err := snippet.Encode(root)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		s.key, string(data))
	if err != nil {
		return unavailable("writing", s.location(), err)
	}
	return nil
}

func (s *SQLiteStore) HasNoChildren(ctx context.Context) (bool, error) {
	return hasNoChildren(ctx, s)
}

func (s *SQLiteStore) location() string {
	return s.path + "#" + s.key
}
