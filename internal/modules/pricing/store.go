// README: Pricing store backed by PostgreSQL.
package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Lookup(ctx context.Context, from, to string) (Rate, error) {
	r := Rate{Rates: make(map[string]string, len(ClassIDs))}
	cells := make([]*string, len(ClassIDs))
	dest := []any{&r.EntryName, &r.ExitName}
	for i := range cells {
		dest = append(dest, &cells[i])
	}

	err := s.db.QueryRow(ctx, lookupSQL(DialectPostgres), from, to).Scan(dest...)
	if errors.Is(err, pgx.ErrNoRows) {
		return Rate{}, ErrRateNotFound
	}
	if err != nil {
		return Rate{}, err
	}
	for i, id := range ClassIDs {
		if cells[i] != nil {
			r.Rates[id] = *cells[i]
		}
	}
	return r, nil
}

func (s *Store) ResetTable(ctx context.Context) error {
	for _, stmt := range schemaSQL(DialectPostgres) {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("reset toll_rates: %w", err)
		}
	}
	return nil
}

func (s *Store) InsertRates(ctx context.Context, rates []Rate) error {
	if len(rates) == 0 {
		return nil
	}
	q := insertSQL(DialectPostgres)
	batch := &pgx.Batch{}
	for _, r := range rates {
		batch.Queue(q, insertArgs(r)...)
	}
	br := s.db.SendBatch(ctx, batch)
	defer br.Close()
	for range rates {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert toll_rates: %w", err)
		}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
