package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

type Tx interface{}

var NoTX interface{}

// TransactionManager runs fn inside a database transaction, handing the
// backend-specific handle to fn via tx. Repository methods accept `tx Tx`
// and must gracefully fall back to their pool when tx is nil, so use cases
// never touch transaction types directly.
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}
