// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/KhalidiZib/supporthub/lib/api"
	"github.com/KhalidiZib/supporthub/lib/config"
	"github.com/KhalidiZib/supporthub/lib/session"
)

// App bundles the shared state every command needs: configuration,
// the API client, and the settled session. Built once per invocation.
type App struct {
	Config   *config.Config
	Client   *api.Client
	Sessions *session.Manager
	Logger   *slog.Logger
}

// configPath holds the value of the global --config flag. It is set
// by ExtractGlobalFlags before subcommand dispatch and takes priority
// over the SUPPORTHUB_CONFIG environment variable.
var configPath string

// ExtractGlobalFlags pulls flags that apply to every command out of
// args before subcommand dispatch. Only --config is global; everything
// else stays in place for the selected command's own flag set.
func ExtractGlobalFlags(args []string) ([]string, error) {
	remaining := make([]string, 0, len(args))
	for index := 0; index < len(args); index++ {
		arg := args[index]
		switch {
		case arg == "--config":
			if index+1 >= len(args) {
				return nil, Validation("flag --config needs a file path argument")
			}
			index++
			configPath = args[index]
		case strings.HasPrefix(arg, "--config="):
			configPath = strings.TrimPrefix(arg, "--config=")
		default:
			remaining = append(remaining, arg)
		}
	}
	return remaining, nil
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Load()
}

// NewApp loads configuration, wires the client to the session store,
// and restores any persisted session. The returned App's session is
// settled: Loading() is false by the time this returns.
func NewApp(ctx context.Context, logger *slog.Logger) (*App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsurePaths(); err != nil {
		return nil, err
	}

	sessions, err := session.NewManager(session.ManagerConfig{
		StateDir: cfg.Paths.State,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}

	client, err := api.NewClient(api.ClientConfig{
		BaseURL:        cfg.Server.BaseURL,
		HTTPClient:     &http.Client{Timeout: cfg.Server.Timeout},
		Logger:         logger,
		TokenSource:    sessions.Token,
		OnUnauthorized: sessions.ForceLogout,
	})
	if err != nil {
		return nil, err
	}

	sessions.Restore(ctx, client)

	return &App{
		Config:   cfg,
		Client:   client,
		Sessions: sessions,
		Logger:   logger,
	}, nil
}

// RequireSession returns the current session or an error telling the
// user to sign in. Commands that talk to authenticated endpoints call
// this before doing anything else.
func (app *App) RequireSession() (session.Session, error) {
	current, ok := app.Sessions.Current()
	if !ok {
		return session.Session{}, fmt.Errorf("not signed in (run 'supporthub login')")
	}
	return current, nil
}
