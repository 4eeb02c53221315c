// Package worker consumes transaction events and mirrors settled
// transactions to the export sheet.
package worker

import (
	"context"
	"errors"
	"fmt"

	"cashbook/internal/core"
	"cashbook/internal/events"
	"cashbook/internal/export"
	"cashbook/internal/log"
	"cashbook/internal/store"
)

// Consumer delivers transaction events until the context is done.
type Consumer interface {
	ConsumeTransactionEvents(ctx context.Context, handler func(*events.TransactionEvent) error) error
}

type ExportWorker struct {
	consumer Consumer
	store    store.TransactionStore
	appender export.RowAppender
	logger   *log.Logger
}

func NewExportWorker(consumer Consumer, st store.TransactionStore, appender export.RowAppender, logger *log.Logger) *ExportWorker {
	return &ExportWorker{
		consumer: consumer,
		store:    st,
		appender: appender,
		logger:   logger.WithComponent("export-worker"),
	}
}

// Run consumes events until ctx is cancelled.
func (w *ExportWorker) Run(ctx context.Context) error {
	w.logger.InfoContext(ctx, "Export worker starting")
	err := w.consumer.ConsumeTransactionEvents(ctx, func(e *events.TransactionEvent) error {
		return w.HandleEvent(ctx, e)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// HandleEvent exports the transaction behind one event. Deletions and
// transactions that are gone or still pending are skipped, not errors:
// the event only says something changed.
func (w *ExportWorker) HandleEvent(ctx context.Context, e *events.TransactionEvent) error {
	if e.Action == events.ActionDeleted {
		w.logger.DebugContext(ctx, "Skipping deleted transaction", "transaction_id", e.TransactionID)
		return nil
	}

	t, err := w.store.GetTransaction(ctx, e.UserID, e.TransactionID)
	if errors.Is(err, core.ErrNotFound) {
		w.logger.WarnContext(ctx, "Transaction vanished before export", "transaction_id", e.TransactionID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get transaction: %w", err)
	}

	if !t.IsSettled() {
		w.logger.DebugContext(ctx, "Skipping pending transaction", "transaction_id", t.ID)
		return nil
	}

	if err := w.appender.Append(ctx, t); err != nil {
		return fmt.Errorf("append transaction %s: %w", t.ID, err)
	}

	w.logger.InfoContext(ctx, "Transaction exported",
		"transaction_id", t.ID,
		"action", e.Action)
	return nil
}
