// Package repokit binds domain repositories to the store's sql seam
package repokit

import (
	"context"
	"fmt"

	"creditrisk/internal/platform/store"
)

type (
	// Queryer is what a bound repo runs statements against: the pool or an open transaction
	Queryer = store.RowQuerier

	// TxRunner is a Queryer that can also open transactions
	TxRunner = store.TxRunner

	// Row is a single row result
	Row = store.Row

	// CommandTag reports what a statement changed
	CommandTag = store.CommandTag
)

// Binder builds a domain repo over a Queryer
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a constructor to Binder
type BindFunc[T any] func(Queryer) T

// Bind calls f
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// MustBind binds b to q; a nil q is a wiring bug and panics at startup rather than on first insert
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic(fmt.Sprintf("repokit: %T bound to a nil Queryer", b))
	}
	return b.Bind(q)
}

// WithTx runs fn inside one transaction on tx
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}
