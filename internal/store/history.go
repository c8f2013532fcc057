package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/shoplist/internal/model"
)

// HistoryStore persists purchase_history, one row per (store, item name).
type HistoryStore struct {
	db DBTX
}

func NewHistoryStore(db DBTX) *HistoryStore {
	return &HistoryStore{db: db}
}

// WithTx returns a HistoryStore bound to tx.
func (s *HistoryStore) WithTx(tx *sql.Tx) *HistoryStore {
	return &HistoryStore{db: tx}
}

func scanEntry(scanner interface{ Scan(...any) error }) (*model.PurchaseHistoryEntry, error) {
	var e model.PurchaseHistoryEntry
	var buyerID sql.NullInt64

	err := scanner.Scan(
		&e.ID, &e.StoreID, &e.ItemName, &buyerID, &e.BuyerName,
		&e.PurchaseDate, &e.Frequency, &e.LastQuantity, &e.LastNotes,
	)
	if err != nil {
		return nil, err
	}
	e.BuyerID = int64Ptr(buyerID)
	return &e, nil
}

const entryCols = `id, store_id, item_name, buyer_id, buyer_name, purchase_date, frequency, last_quantity, last_notes`

// Purchase describes one purchase being recorded in the ledger.
type Purchase struct {
	StoreID   int64
	ItemName  string
	BuyerID   *int64
	BuyerName string
	Quantity  string
	Notes     string
	At        time.Time
}

// Record inserts a ledger row with frequency 1 for a first purchase of the
// name in the store, or increments the existing row's frequency and
// overwrites buyer, date, quantity and notes. It reports whether a new row
// was created.
func (s *HistoryStore) Record(ctx context.Context, p Purchase) (*model.PurchaseHistoryEntry, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO purchase_history (store_id, item_name, buyer_id, buyer_name, purchase_date, frequency, last_quantity, last_notes)
		 VALUES (?, ?, ?, ?, ?, 1, ?, ?)
		 ON CONFLICT (store_id, item_name) DO UPDATE SET
			frequency = frequency + 1,
			buyer_id = excluded.buyer_id,
			buyer_name = excluded.buyer_name,
			purchase_date = excluded.purchase_date,
			last_quantity = excluded.last_quantity,
			last_notes = excluded.last_notes
		 RETURNING `+entryCols,
		p.StoreID, p.ItemName, nullInt64(p.BuyerID), p.BuyerName, p.At.UTC(), p.Quantity, p.Notes,
	)
	e, err := scanEntry(row)
	if err != nil {
		return nil, false, fmt.Errorf("record purchase: %w", err)
	}
	return e, e.Frequency == 1, nil
}

func (s *HistoryStore) GetByID(ctx context.Context, id int64) (*model.PurchaseHistoryEntry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+entryCols+` FROM purchase_history WHERE id = ?`, id)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get history entry: %w", err)
	}
	return e, nil
}

func (s *HistoryStore) FindByName(ctx context.Context, storeID int64, itemName string) (*model.PurchaseHistoryEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryCols+` FROM purchase_history WHERE store_id = ? AND item_name = ?`,
		storeID, itemName,
	)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find history entry: %w", err)
	}
	return e, nil
}

// ListByStore returns every ledger row for the store, most recent purchase first.
func (s *HistoryStore) ListByStore(ctx context.Context, storeID int64) ([]model.PurchaseHistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryCols+` FROM purchase_history WHERE store_id = ? ORDER BY purchase_date DESC, id DESC`,
		storeID,
	)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var entries []model.PurchaseHistoryEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func (s *HistoryStore) Delete(ctx context.Context, id int64) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM purchase_history WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete history entry: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func (s *HistoryStore) DeleteByStore(ctx context.Context, storeID int64) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM purchase_history WHERE store_id = ?`, storeID)
	if err != nil {
		return 0, fmt.Errorf("delete store history: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
