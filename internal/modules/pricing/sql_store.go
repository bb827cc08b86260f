// README: Pricing store over database/sql, used for SQLite and MySQL rate tables.
package pricing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

func NewSQLStore(db *sql.DB, dialect Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

func (s *SQLStore) Lookup(ctx context.Context, from, to string) (Rate, error) {
	r := Rate{Rates: make(map[string]string, len(ClassIDs))}
	cells := make([]sql.NullString, len(ClassIDs))
	dest := []any{&r.EntryName, &r.ExitName}
	for i := range cells {
		dest = append(dest, &cells[i])
	}

	err := s.db.QueryRowContext(ctx, lookupSQL(s.dialect), from, to).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return Rate{}, ErrRateNotFound
	}
	if err != nil {
		return Rate{}, err
	}
	for i, id := range ClassIDs {
		if cells[i].Valid {
			r.Rates[id] = cells[i].String
		}
	}
	return r, nil
}

func (s *SQLStore) ResetTable(ctx context.Context) error {
	for _, stmt := range schemaSQL(s.dialect) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("reset toll_rates: %w", err)
		}
	}
	return nil
}

func (s *SQLStore) InsertRates(ctx context.Context, rates []Rate) error {
	if len(rates) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertSQL(s.dialect))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rates {
		if _, err := stmt.ExecContext(ctx, insertArgs(r)...); err != nil {
			return fmt.Errorf("insert toll_rates: %w", err)
		}
	}
	return tx.Commit()
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
