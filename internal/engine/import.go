package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
)

// ImportSkip records a draft that failed local validation.
type ImportSkip struct {
	Reason string
	Index  int
}

// ImportResult summarizes a bulk import.
type ImportResult struct {
	Skipped []ImportSkip
	Created int
}

// ImportTransactions creates every valid draft in order. Invalid drafts are skipped and
// reported; the first server or transport failure stops the import. The dashboard is
// fetched once at the end if anything was created, and a failure there wraps
// common.ErrRefreshFailed. progress receives the number of drafts handled so far and may be nil.
func (e *Engine) ImportTransactions(ctx context.Context, drafts []model.Draft, progress func(int)) (ImportResult, error) {
	var result ImportResult

	userID, err := e.userID()
	if err != nil {
		return result, err
	}

	var importErr error
	for i, draft := range drafts {
		if err := ctx.Err(); err != nil {
			importErr = err
			break
		}

		if err := ValidateDraft(draft); err != nil {
			result.Skipped = append(result.Skipped, ImportSkip{Index: i, Reason: common.UserMessage(err)})
		} else {
			draft = normalizeDraft(draft)
			draft.ID = 0
			if err := e.api.CreateTransaction(ctx, userID, draft); err != nil {
				importErr = fmt.Errorf("failed to import %q: %w", draft.Title, err)
				break
			}
			result.Created++
		}

		if progress != nil {
			progress(i + 1)
		}
	}

	slog.Info("Import finished",
		"created", result.Created,
		"skipped", len(result.Skipped),
		"total", len(drafts))

	if result.Created > 0 {
		if err := e.refreshAfterChange(ctx); err != nil && importErr == nil {
			importErr = err
		}
	}
	return result, importErr
}
