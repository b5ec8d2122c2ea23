// Package engine keeps the client's copy of the ledger in step with the server.
// Every successful mutation is followed by exactly one dashboard fetch; nothing is patched locally.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/service"
	"golang.org/x/sync/errgroup"
)

// State is the cached view of the server for the current user.
type State struct {
	User         model.User
	Transactions []model.Transaction
	Chart        model.ChartData
	Financials   model.Financials
	Version      uint64
	Loaded       bool
}

// Engine owns the transaction cache and performs all ledger operations.
type Engine struct {
	api     service.LedgerAPI
	state   State
	issued  uint64
	applied uint64
	mutex   sync.Mutex
}

// New creates an engine with no user. Call SetUser before any operation.
func New(api service.LedgerAPI) *Engine {
	return &Engine{api: api}
}

// SetUser makes user the owner of the cache. Switching to a different user clears it.
func (e *Engine) SetUser(user model.User) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.state.User.ID != user.ID {
		e.state = State{Version: e.state.Version + 1}
		e.applied = e.issued
	}
	e.state.User = user
}

// Reset forgets the user and the cache. Responses still in flight are dropped.
func (e *Engine) Reset() {
	e.SetUser(model.User{})
}

// Snapshot returns a copy of the current state that the caller may keep.
func (e *Engine) Snapshot() State {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	s := e.state
	s.Transactions = slices.Clone(e.state.Transactions)
	s.Chart = model.ChartData{
		Labels: slices.Clone(e.state.Chart.Labels),
		Values: slices.Clone(e.state.Chart.Values),
	}
	return s
}

// Refresh fetches the dashboard and replaces transactions, financials and chart together.
// If a newer fetch has already been applied the response is discarded.
func (e *Engine) Refresh(ctx context.Context) error {
	userID, seq, err := e.beginFetch()
	if err != nil {
		return err
	}

	dash, err := e.api.Dashboard(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to fetch dashboard: %w", err)
	}

	e.apply(seq, userID, dash)
	return nil
}

// SaveTransaction creates the draft if it has no ID and updates it otherwise.
func (e *Engine) SaveTransaction(ctx context.Context, draft model.Draft) error {
	if err := ValidateDraft(draft); err != nil {
		return err
	}
	userID, err := e.userID()
	if err != nil {
		return err
	}

	draft = normalizeDraft(draft)
	if draft.IsNew() {
		err = e.api.CreateTransaction(ctx, userID, draft)
	} else {
		err = e.api.UpdateTransaction(ctx, userID, draft)
	}
	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}

	slog.Info("Transaction saved", "id", draft.ID, "new", draft.IsNew())
	return e.refreshAfterChange(ctx)
}

// DeleteTransaction moves a transaction to the trash once confirm approves it.
// A declined confirmation returns common.ErrCancelled without contacting the server.
func (e *Engine) DeleteTransaction(ctx context.Context, id int64, confirm Confirmer) error {
	if _, err := e.userID(); err != nil {
		return err
	}
	if id == 0 {
		return common.NewValidationError("id", "Transaction has no identifier")
	}

	ok, err := confirm.Confirm(ctx, DeletePrompt)
	if err != nil {
		return fmt.Errorf("confirmation failed: %w", err)
	}
	if !ok {
		return common.ErrCancelled
	}

	if err := e.api.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}

	slog.Info("Transaction moved to trash", "id", id)
	return e.refreshAfterChange(ctx)
}

// ListTrash returns the user's soft-deleted transactions. The result is not cached.
func (e *Engine) ListTrash(ctx context.Context) ([]model.Transaction, error) {
	userID, err := e.userID()
	if err != nil {
		return nil, err
	}

	trash, err := e.api.Trash(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load trash: %w", err)
	}
	return trash, nil
}

// RestoreTransaction brings a transaction back from the trash and returns the updated trash listing.
// The trash and the dashboard are refetched concurrently. If the restore succeeded but a refetch
// failed the error wraps common.ErrRefreshFailed, and the trash is still returned when it loaded.
func (e *Engine) RestoreTransaction(ctx context.Context, id int64) ([]model.Transaction, error) {
	if _, err := e.userID(); err != nil {
		return nil, err
	}

	if err := e.api.RestoreTransaction(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to restore transaction %d: %w", id, err)
	}
	slog.Info("Transaction restored", "id", id)

	var (
		trash      []model.Transaction
		trashErr   error
		refreshErr error
		g          errgroup.Group
	)
	g.Go(func() error {
		trash, trashErr = e.ListTrash(ctx)
		return nil
	})
	g.Go(func() error {
		refreshErr = e.Refresh(ctx)
		return nil
	})
	_ = g.Wait()

	if err := errors.Join(trashErr, refreshErr); err != nil {
		return trash, fmt.Errorf("%w: %w", common.ErrRefreshFailed, err)
	}
	return trash, nil
}

// refreshAfterChange fetches the dashboard after a mutation the server already accepted.
func (e *Engine) refreshAfterChange(ctx context.Context) error {
	if err := e.Refresh(ctx); err != nil {
		slog.Warn("Change saved but dashboard refresh failed", "error", err)
		return fmt.Errorf("%w: %w", common.ErrRefreshFailed, err)
	}
	return nil
}

func (e *Engine) userID() (int64, error) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.state.User.ID == 0 {
		return 0, common.ErrNotAuthenticated
	}
	return e.state.User.ID, nil
}

func (e *Engine) beginFetch() (int64, uint64, error) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.state.User.ID == 0 {
		return 0, 0, common.ErrNotAuthenticated
	}
	e.issued++
	return e.state.User.ID, e.issued, nil
}

func (e *Engine) apply(seq uint64, userID int64, dash model.Dashboard) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if seq <= e.applied || userID != e.state.User.ID {
		slog.Debug("Dropping stale dashboard response", "seq", seq, "applied", e.applied)
		return
	}

	e.applied = seq
	e.state.Transactions = dash.Transactions
	e.state.Financials = dash.Financials
	e.state.Chart = dash.Chart
	e.state.Loaded = true
	e.state.Version++

	slog.Debug("Dashboard applied", "seq", seq, "transactions", len(dash.Transactions))
}
