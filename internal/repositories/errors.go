package repositories

import (
	"database/sql"
	"errors"
)

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrDatabaseError is returned for unexpected database errors.
	// It can be used to wrap more specific driver errors.
	ErrDatabaseError = errors.New("database error")

	// ErrDuplicateKey is returned when an insert/update violates a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")
)

// SQLExecutor defines an interface that can be satisfied by *sql.DB or *sql.Tx.
// This allows repository methods to be used within transactions or with a direct
// DB connection.
type SQLExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Query(query string, args ...interface{}) (*sql.Rows, error)
}

// Tx is the transactional executor handed to repository calls that must
// commit or roll back together. *sql.Tx satisfies it.
type Tx interface {
	SQLExecutor
	Commit() error
	Rollback() error
}

// TxBeginner starts transactions. Services depend on this rather than on
// *sql.DB directly so transactional flows can run against fakes.
type TxBeginner interface {
	Begin() (Tx, error)
}

type sqlTxBeginner struct {
	db *sql.DB
}

func (b sqlTxBeginner) Begin() (Tx, error) {
	tx, err := b.db.Begin()
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// NewTxBeginner adapts *sql.DB to TxBeginner.
func NewTxBeginner(db *sql.DB) TxBeginner {
	return sqlTxBeginner{db: db}
}
