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

package controller

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
	"github.com/walteh/snipr/pkg/snippet"
	"github.com/walteh/snipr/pkg/tree"
	"gitlab.com/tozd/go/errors"
)

// PayloadMimeType tags drag payloads produced by EncodePayload.
const PayloadMimeType = "application/vnd.code.tree.snippetsprovider"

// EncodePayload serializes dragged nodes for Drop.
func EncodePayload(nodes ...*snippet.Node) ([]byte, error) {
	data, err := json.Marshal(nodes)
	if err != nil {
		return nil, errors.Errorf("encoding drag payload: %w", err)
	}
	return data, nil
}

// 🎯 Drop moves the first node of payload into target, or into the root when
// target is nil. It returns whether anything moved.
//
// Nothing happens when the payload is empty, the node is dropped on itself,
// on a leaf, or on the folder it already lives in, or when a folder would end
// up inside its own descendant.
func (c *Controller) Drop(ctx context.Context, payload []byte, target *snippet.Node) (bool, error) {
	logger := zerolog.Ctx(ctx)

	if len(payload) == 0 {
		return false, nil
	}

	var sources []*snippet.Node
	if err := json.Unmarshal(payload, &sources); err != nil {
		return false, errors.Errorf("decoding drag payload: %w", err)
	}
	if len(sources) == 0 || sources[0] == nil {
		return false, nil
	}

	// the payload may be stale, work on the live nodes
	source := c.svc.FindNode(sources[0].ID)
	if target == nil {
		target = c.svc.Root()
	} else {
		target = c.svc.FindNode(target.ID)
	}
	if source == nil || target == nil || source.ID == target.ID || source.IsRoot() {
		return false, nil
	}

	holderID := source.ParentID
	if holder := c.svc.ParentOf(source); holder != nil {
		holderID = holder.ID
	}
	relocate := target.IsRoot() || (target.Folder && target.ID != holderID)
	if !relocate {
		return false, nil
	}

	if target.Folder && source.Folder && c.isAncestorOrSelf(source.ID, target) {
		logger.Debug().Int("source", source.ID).Int("target", target.ID).Msg("drop would create a cycle")
		return false, nil
	}

	c.svc.RemoveNode(source)
	source.ParentID = target.ID
	c.svc.AddExistingNode(source)

	if err := c.Sync(ctx); err != nil {
		return true, errors.Errorf("moving %s: %w", source.Label, err)
	}
	return true, nil
}

// MoveTo drops the node with id onto the folder with targetID.
func (c *Controller) MoveTo(ctx context.Context, id, targetID int) (bool, error) {
	node := c.svc.FindNode(id)
	if node == nil {
		return false, nil
	}
	payload, err := EncodePayload(node)
	if err != nil {
		return false, err
	}
	target := c.svc.FindNode(targetID)
	if target == nil {
		return false, nil
	}
	return c.Drop(ctx, payload, target)
}

// isAncestorOrSelf walks the folders holding start upward and reports whether
// id is met before the root. The walk is bounded so corrupted parent links cannot
// loop forever.
func (c *Controller) isAncestorOrSelf(id int, start *snippet.Node) bool {
	limit := len(tree.FlattenAll(c.svc.Root().Children)) + 1
	current := start
	for steps := 0; current != nil && steps <= limit; steps++ {
		if current.ID == id {
			return true
		}
		if current.IsRoot() {
			return false
		}
		current = c.svc.ParentOf(current)
	}
	return false
}
