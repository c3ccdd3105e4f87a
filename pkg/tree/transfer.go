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

package tree

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/snipr/pkg/store"
	"gitlab.com/tozd/go/errors"
)

// BackupMarker is inserted before the extension of an imported file to name
// the backup taken before the import.
const BackupMarker = "-pre-import-backup"

// BackupPath returns where ImportTree backs up the current tree before
// importing path.
func BackupPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + BackupMarker + ext
}

// 📤 ExportSubtree writes the node with nodeID and its descendants to path as
// a standalone tree. The copy carries this tree's id counter. Unknown ids are
// ignored.
func (s *Service) ExportSubtree(ctx context.Context, path string, nodeID int) error {
	node := s.FindNode(nodeID)
	if node == nil {
		zerolog.Ctx(ctx).Debug().Int("id", nodeID).Msg("export of unknown node ignored")
		return nil
	}

	out := node.Clone()
	out.LastID = s.root.LastID

	if err := s.open(path).Save(ctx, out); err != nil {
		return errors.Errorf("exporting snippets to %s: %w", path, err)
	}
	return nil
}

// 📥 ImportTree replaces the tree's content with the tree stored at path. The
// current tree is first written next to path (see BackupPath). Only the
// imported root's children and counter are adopted. It returns the backup
// location.
func (s *Service) ImportTree(ctx context.Context, path string) (string, error) {
	backup := BackupPath(path)
	if err := s.open(backup).Save(ctx, s.root); err != nil {
		return "", errors.Errorf("writing import backup %s: %w", backup, err)
	}

	loaded, err := store.ReadFile(ctx, path)
	if err != nil {
		return backup, errors.Errorf("importing snippets from %s: %w", path, err)
	}

	s.root.Children = loaded.Children
	s.root.LastID = loaded.LastID
	s.FixLastID(ctx)

	zerolog.Ctx(ctx).Debug().Str("path", path).Str("backup", backup).Int("children", len(s.root.Children)).Msg("imported snippets")
	return backup, nil
}
