package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rezkam/taskmate/internal/board"
	"github.com/rezkam/taskmate/internal/client"
	"github.com/rezkam/taskmate/internal/config"
	"github.com/rezkam/taskmate/internal/infrastructure/observability"
	"github.com/rezkam/taskmate/internal/infrastructure/preferences"
	"github.com/rezkam/taskmate/internal/infrastructure/preferences/fs"
	"github.com/rezkam/taskmate/internal/infrastructure/preferences/gcs"
	"github.com/rezkam/taskmate/internal/theme"
)

// app is the state shared by every command of one invocation.
type app struct {
	out    io.Writer
	cfg    *config.ClientConfig
	api    *client.Client
	board  *board.Board
	prefs  preferences.Store
	themes *theme.Manager
	paint  painter

	closers []io.Closer
}

func (a *app) init(ctx context.Context, opts *options, out, errOut io.Writer) error {
	slog.SetDefault(observability.NewCLILogger(errOut, opts.verbose))

	path := opts.configPath
	if path == "" {
		var err error
		if path, err = config.DefaultClientConfigPath(); err != nil {
			return err
		}
	}
	cfg, err := config.LoadClientConfig(path)
	if err != nil {
		return err
	}
	if opts.apiBase != "" {
		cfg.APIBase = opts.apiBase
	}
	slog.DebugContext(ctx, "loaded client config", "path", path, "api_base", cfg.APIBase)

	prefs, err := a.openPreferences(ctx, cfg.Preferences)
	if err != nil {
		return err
	}

	a.out = out
	a.cfg = cfg
	a.api = client.New(client.Config{BaseURL: cfg.APIBase, Timeout: cfg.Timeout})
	a.board = board.New(a.api, board.Config{})
	a.prefs = prefs
	a.themes = theme.NewManager(prefs)
	a.paint = painter{enabled: colorEnabled(out, opts.noColor), settings: a.themes.Load(ctx, opts.systemDark)}
	return nil
}

// openPreferences uses the bucket when one is configured, the local
// directory otherwise.
func (a *app) openPreferences(ctx context.Context, cfg config.PreferencesConfig) (preferences.Store, error) {
	if cfg.GCSBucket != "" {
		store, err := gcs.NewStore(ctx, gcs.Config{
			Bucket:   cfg.GCSBucket,
			Prefix:   cfg.GCSPrefix,
			Endpoint: cfg.GCSEndpoint,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open preference bucket: %w", err)
		}
		a.closers = append(a.closers, store)
		return store, nil
	}

	store, err := fs.NewStore(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open preference directory: %w", err)
	}
	return store, nil
}

func (a *app) close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			slog.Warn("failed to close preference store", "error", err)
		}
	}
	a.closers = nil
}

// colorEnabled honours --no-color and NO_COLOR, and only colours terminals.
func colorEnabled(out io.Writer, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
