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

	"github.com/rs/zerolog"
	"github.com/walteh/snipr/pkg/snippet"
)

// 🩹 FixCorruption repairs duplicate ids and leaves that carry children.
//
// Among nodes sharing an id, the copies without children get fresh ids. The
// children of every corrupted leaf are moved into a new folder under the root,
// and that folder is checked for duplicates once more. Each pass saves when it
// changed something. It returns how many ids were reassigned and how many
// nodes were extracted.
func (s *Service) FixCorruption(ctx context.Context) (duplicatesFixed, corruptedFixed int, err error) {
	logger := zerolog.Ctx(ctx)

	s.FixLastID(ctx)

	duplicatesFixed = s.fixDuplicateIDs(ctx, FlattenAll(s.root.Children))
	if duplicatesFixed > 0 {
		if err := s.SaveSnippets(ctx); err != nil {
			return duplicatesFixed, 0, err
		}
	}

	var corrupted []*snippet.Node
	for _, n := range FlattenAll(s.root.Children) {
		if n.IsCorrupted() {
			corrupted = append(corrupted, n)
		}
	}
	if len(corrupted) == 0 {
		return duplicatesFixed, 0, nil
	}

	folder := snippet.NewFolder(s.IncrementLastID(), s.root.ID, snippet.UnorganizedLabel, snippet.WarningIcon)
	s.AddNode(folder)

	for _, broken := range corrupted {
		logger.Debug().Int("id", broken.ID).Str("label", broken.Label).Int("children", len(broken.Children)).Msg("extracting children of corrupted snippet")
		for len(broken.Children) > 0 {
			child := broken.Children[0]
			broken.Children = broken.Children[1:]
			child.ParentID = folder.ID
			s.AddExistingNode(child)
			corruptedFixed++
		}
		broken.Children = []*snippet.Node{}
	}

	duplicatesFixed += s.fixDuplicateIDs(ctx, FlattenAll(folder.Children))

	if err := s.SaveSnippets(ctx); err != nil {
		return duplicatesFixed, corruptedFixed, err
	}
	return duplicatesFixed, corruptedFixed, nil
}

// fixDuplicateIDs reassigns ids of the childless copies of every id that
// appears more than once in nodes.
func (s *Service) fixDuplicateIDs(ctx context.Context, nodes []*snippet.Node) int {
	groups := map[int][]*snippet.Node{}
	var order []int
	for _, n := range nodes {
		if _, seen := groups[n.ID]; !seen {
			order = append(order, n.ID)
		}
		groups[n.ID] = append(groups[n.ID], n)
	}

	fixed := 0
	for _, id := range order {
		copies := groups[id]
		if len(copies) < 2 {
			continue
		}
		for _, n := range copies {
			if len(n.Children) > 0 {
				continue
			}
			s.OverrideID(n)
			zerolog.Ctx(ctx).Debug().Int("old_id", id).Int("new_id", n.ID).Str("label", n.Label).Msg("reassigned duplicate id")
			fixed++
		}
	}
	return fixed
}

// DuplicateIDs lists ids used by more than one node, for reporting.
func (s *Service) DuplicateIDs() []int {
	counts := map[int]int{}
	var dups []int
	for _, n := range FlattenAll(s.root.Children) {
		counts[n.ID]++
		if counts[n.ID] == 2 {
			dups = append(dups, n.ID)
		}
	}
	return dups
}
