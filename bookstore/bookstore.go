// Package bookstore is the order-intake and storage collaborator the
// clearing core explicitly treats as out of scope: it owns the
// Postgres-backed book for one symbol, sorts the two order streams the
// way the core's ordering contract requires, and persists the outcome
// of a clearing run. The core itself never touches a database.
package bookstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/lightsgoout/callauction/clearing/decimalprice"
)

// schemaDDL mirrors the teacher's orders/deals schema, reshaped for a
// call auction: one row per resting order, one row per clearing run
// instead of one row per individual fill.
const schemaDDL = `
DROP TABLE IF EXISTS book_orders CASCADE;
CREATE TABLE book_orders (
	id     bigserial primary key,
	symbol text not null,
	side   text not null check (side in ('ask','bid')),
	price  numeric not null,
	volume bigint not null check (volume >= 0)
) with (fillfactor=90);

DROP TABLE IF EXISTS clearing_runs CASCADE;
CREATE TABLE clearing_runs (
	id         bigserial primary key,
	symbol     text not null,
	price      numeric,
	volume     bigint,
	range_low  numeric,
	range_high numeric,
	ran_at     timestamptz not null default now()
);
`

// ResetSchema drops and recreates the book_orders/clearing_runs tables.
func ResetSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("bookstore: reset schema: %w", err)
	}
	return nil
}

// BulkLoad inserts a symbol's asks and bids via a COPY FROM, mirroring
// the teacher's FillTestData. The caller's stream order is not
// preserved or trusted here — FetchBook is what establishes the sort
// order the core relies on.
func BulkLoad(ctx context.Context, db *sql.DB, symbol string, asks, bids []decimalprice.Order) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("bookstore: begin bulk load: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("book_orders", "symbol", "side", "price", "volume"))
	if err != nil {
		return fmt.Errorf("bookstore: prepare copy-in: %w", err)
	}

	for _, a := range asks {
		if _, err := stmt.ExecContext(ctx, symbol, "ask", a.Price, int64(a.Volume)); err != nil {
			return fmt.Errorf("bookstore: copy-in ask: %w", err)
		}
	}
	for _, b := range bids {
		if _, err := stmt.ExecContext(ctx, symbol, "bid", b.Price, int64(b.Volume)); err != nil {
			return fmt.Errorf("bookstore: copy-in bid: %w", err)
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		return fmt.Errorf("bookstore: flush copy-in: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("bookstore: close copy-in: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("bookstore: commit bulk load: %w", err)
	}
	return nil
}

const fetchAsksSQL = `SELECT price, volume FROM book_orders WHERE symbol = $1 AND side = 'ask' ORDER BY price ASC, id ASC`
const fetchBidsSQL = `SELECT price, volume FROM book_orders WHERE symbol = $1 AND side = 'bid' ORDER BY price DESC, id ASC`

// FetchBook returns a symbol's resting asks (non-descending by price)
// and bids (non-ascending by price) — exactly the sort order the
// clearing core's ordering contract trusts. This is where that
// contract is established; the core itself never sorts.
func FetchBook(ctx context.Context, db *sql.DB, symbol string) (asks, bids []decimalprice.Order, err error) {
	asks, err = fetchSide(ctx, db, fetchAsksSQL, symbol)
	if err != nil {
		return nil, nil, fmt.Errorf("bookstore: fetch asks: %w", err)
	}
	bids, err = fetchSide(ctx, db, fetchBidsSQL, symbol)
	if err != nil {
		return nil, nil, fmt.Errorf("bookstore: fetch bids: %w", err)
	}
	return asks, bids, nil
}

func fetchSide(ctx context.Context, db *sql.DB, query, symbol string) ([]decimalprice.Order, error) {
	rows, err := db.QueryContext(ctx, query, symbol)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []decimalprice.Order
	for rows.Next() {
		var price decimal.Decimal
		var volume int64
		if err := rows.Scan(&price, &volume); err != nil {
			return nil, err
		}
		result = append(result, decimalprice.NewOrder(price, uint64(volume)))
	}
	return result, rows.Err()
}

// Outcome is what PersistRun records: either a clearing range result
// or, when Matched is false, a no-match run.
type Outcome struct {
	Matched bool
	Low     decimal.Decimal
	High    decimal.Decimal
	Price   decimal.Decimal
	Volume  uint64
}

// PersistRun records one clearing run's outcome, mirroring the
// teacher's PersistDeals bookkeeping — simplified to a single row,
// since a call auction produces one outcome per run rather than a
// stream of individual fills.
func PersistRun(ctx context.Context, db *sql.DB, symbol string, o Outcome) error {
	if !o.Matched {
		_, err := db.ExecContext(ctx,
			`INSERT INTO clearing_runs (symbol) VALUES ($1)`, symbol)
		if err != nil {
			return fmt.Errorf("bookstore: persist no-match run: %w", err)
		}
		return nil
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO clearing_runs (symbol, price, volume, range_low, range_high) VALUES ($1, $2, $3, $4, $5)`,
		symbol, o.Price, int64(o.Volume), o.Low, o.High)
	if err != nil {
		return fmt.Errorf("bookstore: persist run: %w", err)
	}
	return nil
}
