package db

import (
	"context"
	"database/sql"
	"errors"
)

// InTx runs fn with queries bound to a single transaction, the transaction is committed when
// fn returns nil and rolled back otherwise.
func InTx(ctx context.Context, database *sql.DB, fn func(qry *Queries) error) error {
	sqltx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	err = fn(New(database).WithTx(sqltx))
	if err != nil {
		return errors.Join(err, sqltx.Rollback())
	}
	return sqltx.Commit()
}
