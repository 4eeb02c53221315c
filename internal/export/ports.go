// Package export mirrors settled transactions to an external ledger
// sheet.
package export

import (
	"context"

	"cashbook/internal/core"
)

// RowAppender appends one ledger row per settled transaction.
type RowAppender interface {
	Append(ctx context.Context, t core.Transaction) error
}
