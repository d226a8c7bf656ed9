package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/Dosada05/group-stage/db"
)

// TxManager owns the long-lived store handle and scopes every engine operation to one transaction.
// Mutations are serialized through a single writer lock; reads use a snapshot transaction and may
// run concurrently with each other.
type TxManager struct {
	db      *sql.DB
	dialect db.Dialect
	writeMu sync.Mutex
}

func NewTxManager(conn *sql.DB, dialect db.Dialect) *TxManager {
	return &TxManager{db: conn, dialect: dialect}
}

// Write runs fn inside a read-write transaction while holding the writer lock.
func (m *TxManager) Write(ctx context.Context, fn func(tx *sql.Tx) error) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	return m.run(ctx, nil, fn)
}

// Read runs fn inside a read-only snapshot transaction.
func (m *TxManager) Read(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return m.run(ctx, m.dialect.ReadTxOptions(), fn)
}

// HoldWrites runs fn while holding the writer lock, so no mutation can commit until fn returns.
// fn may issue any number of Read calls; together they observe a single state of the store.
// fn must not call Write.
func (m *TxManager) HoldWrites(ctx context.Context, fn func(ctx context.Context) error) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	return fn(ctx)
}

func (m *TxManager) run(ctx context.Context, opts *sql.TxOptions, fn func(tx *sql.Tx) error) (txErr error) {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return storeFailure("begin transaction", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				txErr = fmt.Errorf("%w (rollback also failed: %v)", txErr, rbErr)
			}
		} else if cErr := tx.Commit(); cErr != nil {
			txErr = storeFailure("commit transaction", cErr)
		}
	}()

	txErr = fn(tx)
	return txErr
}
