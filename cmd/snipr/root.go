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

package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/snipr/cmd/snipr/opts"
	"github.com/walteh/snipr/pkg/config"
	"github.com/walteh/snipr/pkg/controller"
	"github.com/walteh/snipr/pkg/log"
	"github.com/walteh/snipr/pkg/remote"
	"github.com/walteh/snipr/pkg/store"
	"github.com/walteh/snipr/pkg/tree"
	"gitlab.com/tozd/go/errors"

	_ "github.com/walteh/snipr/pkg/remote/github"
)

var (
	configFile string
	envFile    string
	debug      bool
	workspace  bool
)

func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultFileName, "config file path")
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the gist token")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&workspace, "workspace", "w", false, "use the workspace tree instead of the global one")
}

func setupLogging() zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	return logger
}

func loadEnv(ctx context.Context) error {
	if envFile == "" {
		return nil
	}
	if _, err := os.Stat(envFile); err != nil {
		zerolog.Ctx(ctx).Debug().Str("path", envFile).Msg("no dotenv file")
		return nil
	}
	if err := godotenv.Load(envFile); err != nil {
		return errors.Errorf("loading %s: %w", envFile, err)
	}
	return nil
}

// openStore picks the backend for the selected scope.
func openStore(ctx context.Context, cfg *config.Config, scope string) (store.DataStore, string, func() error, error) {
	if cfg.Store.Backend == config.BackendSQLite {
		key := store.GlobalKey
		if scope == opts.ScopeWorkspace {
			key = store.WorkspaceKey
		}
		if err := os.MkdirAll(filepath.Dir(cfg.Store.SQLitePath), 0o755); err != nil {
			return nil, "", nil, errors.Errorf("creating database directory: %w", err)
		}
		db, err := store.OpenSQLite(ctx, cfg.Store.SQLitePath, key)
		if err != nil {
			return nil, "", nil, err
		}
		return db, "", db.Close, nil
	}

	path := cfg.Store.GlobalPath
	if scope == opts.ScopeWorkspace {
		path = cfg.Store.WorkspacePath
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", nil, errors.Errorf("resolving %s: %w", path, err)
	}
	return store.NewFileStore(abs), abs, nil, nil
}

func newGistClient(ctx context.Context, cfg *config.Config) remote.GistClient {
	client, err := remote.NewClient(ctx, cfg.Gist.Provider, remote.Options{
		Token: os.Getenv(cfg.Gist.TokenEnv),
	})
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("gist backend disabled")
		return nil
	}
	return client
}

func initRootOpts(ctx context.Context, o *opts.RootOpts) error {
	if err := loadEnv(ctx); err != nil {
		return err
	}

	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	scope := opts.ScopeGlobal
	if workspace {
		scope = opts.ScopeWorkspace
	}

	ds, location, closer, err := openStore(ctx, cfg, scope)
	if err != nil {
		return errors.Errorf("opening %s store: %w", scope, err)
	}

	svc, err := tree.NewService(ctx, ds, tree.WithStoreFactory(store.OpenFile))
	if err != nil {
		if closer != nil {
			_ = closer()
		}
		return errors.Errorf("loading %s snippets: %w", scope, err)
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	o.Config = cfg
	o.Scope = scope
	o.Location = location
	o.Closer = closer
	o.Logger = log.New(os.Stdout, level)
	o.Controller = controller.New(svc, controller.Options{
		Gists:                newGistClient(ctx, cfg),
		DeleteRemoteOnRemove: cfg.Gist.DeleteOnRemove,
		PublishConcurrency:   cfg.Gist.Concurrency,
	})
	return nil
}
