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

package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/walteh/snipr/cmd/snipr/opts"
	"github.com/walteh/snipr/pkg/suggest"
	"gitlab.com/tozd/go/errors"
)

func NewSuggestCmd(o *opts.RootOpts) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "suggest <document>",
		Short: "List the snippets that apply to a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items := suggest.Suggest(o.Controller.Root(), args[0], o.Config.Languages)

			if asJSON {
				data, err := json.MarshalIndent(items, "", "  ")
				if err != nil {
					return errors.Errorf("encoding suggestions: %w", err)
				}
				o.Logger.Print(string(data))
				return nil
			}

			if len(items) == 0 {
				o.Logger.Info("no snippets apply")
				return nil
			}
			for _, s := range items {
				line := fmt.Sprintf("%-20s #%d", s.Trigger, s.ID)
				if s.Description != "" {
					line += "  " + s.Description
				}
				o.Logger.Print(line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print suggestions as JSON")
	return cmd
}
