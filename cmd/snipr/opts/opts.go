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

package opts

import (
	"github.com/walteh/snipr/pkg/config"
	"github.com/walteh/snipr/pkg/controller"
	"github.com/walteh/snipr/pkg/log"
)

// Scopes a command can work on.
const (
	ScopeGlobal    = "global"
	ScopeWorkspace = "workspace"
)

// RootOpts carries what every command needs. It is filled before a command
// runs.
type RootOpts struct {
	Config     *config.Config
	Controller *controller.Controller
	Logger     *log.Logger
	Scope      string
	// Location is the file behind the tree, empty for database backends
	Location string
	Closer   func() error
}

// Close releases the store.
func (o *RootOpts) Close() error {
	if o.Closer == nil {
		return nil
	}
	return o.Closer()
}
