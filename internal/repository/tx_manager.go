package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type txKey struct{}

// TransactionManager runs fn inside one database transaction carried by txCtx.
type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

type transactionManager struct {
	db        *gorm.DB
	isolation sql.IsolationLevel
}

// NewTransactionManager opens transactions at the given isolation level; sql.LevelDefault leaves it to the server.
func NewTransactionManager(db *gorm.DB, isolation sql.IsolationLevel) TransactionManager {
	return &transactionManager{db: db, isolation: isolation}
}

// RunInTx joins the transaction already in ctx, if any, instead of nesting a savepoint.
func (t *transactionManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	}, &sql.TxOptions{Isolation: t.isolation})
}

// GetDB returns the transaction in ctx, or rootDB outside one.
func GetDB(ctx context.Context, rootDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return rootDB.WithContext(ctx)
}
