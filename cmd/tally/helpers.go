package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/tally/internal/api"
	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/config"
	"github.com/Veraticus/tally/internal/engine"
	"github.com/Veraticus/tally/internal/session"
	"github.com/Veraticus/tally/internal/storage"
	"github.com/spf13/viper"
)

var errNotLoggedIn = common.NewUserError("Please log in first: tally login", common.ErrNotAuthenticated)

// app bundles everything a command needs: the local store, the API client,
// the session and the ledger engine.
type app struct {
	cfg     *config.Config
	storage *storage.SQLiteStorage
	client  *api.Client
	session *session.Store
	engine  *engine.Engine
}

// initStorage opens the local database and runs migrations.
func initStorage(ctx context.Context, cfg *config.Config) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// newApp wires the application from the loaded configuration and restores any saved session.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	client := api.NewClient(cfg.APIURL, cfg.APITimeout)
	sess := session.New(client, store)
	if err := sess.Rehydrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	eng := engine.New(client)
	if user, ok := sess.Current(); ok {
		eng.SetUser(user)
	}

	slog.Debug("Application initialized",
		"api_url", cfg.APIURL,
		"database", store.Path())

	return &app{
		cfg:     cfg,
		storage: store,
		client:  client,
		session: sess,
		engine:  eng,
	}, nil
}

// withApp runs fn with an initialized app and closes it afterwards.
func withApp(ctx context.Context, fn func(*app) error) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.storage.Close(); closeErr != nil {
			slog.Error("failed to close storage", "error", closeErr)
		}
	}()
	return fn(a)
}

// withSession is withApp for commands that need a logged-in user but not the dashboard.
func withSession(ctx context.Context, fn func(*app) error) error {
	return withApp(ctx, func(a *app) error {
		if _, ok := a.session.Current(); !ok {
			return errNotLoggedIn
		}
		return fn(a)
	})
}

// withUser is withSession for commands that read the cached ledger. The dashboard is loaded first.
func withUser(ctx context.Context, fn func(*app) error) error {
	return withSession(ctx, func(a *app) error {
		if err := a.engine.Refresh(ctx); err != nil {
			return err
		}
		return fn(a)
	})
}

// reportChange prints success for a change the server accepted. A failed refresh after the
// change only adds a warning; any other error is returned.
func reportChange(out io.Writer, err error, success string) error {
	if err != nil && !errors.Is(err, common.ErrRefreshFailed) {
		return err
	}
	fmt.Fprintln(out, cli.FormatSuccess(success))
	if err != nil {
		slog.Debug("Refresh after change failed", "error", err)
		fmt.Fprintln(out, cli.FormatWarning(common.RefreshFailedMessage))
	}
	return nil
}
