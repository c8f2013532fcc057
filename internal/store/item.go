package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dukerupert/shoplist/internal/model"
)

// ItemStore persists shopping_items.
type ItemStore struct {
	db DBTX
}

func NewItemStore(db DBTX) *ItemStore {
	return &ItemStore{db: db}
}

// WithTx returns an ItemStore bound to tx.
func (s *ItemStore) WithTx(tx *sql.Tx) *ItemStore {
	return &ItemStore{db: tx}
}

func scanItem(scanner interface{ Scan(...any) error }) (*model.ShoppingItem, error) {
	var item model.ShoppingItem
	var addedBy, purchasedBy sql.NullInt64
	var purchasedDate sql.NullTime
	var purchased int

	err := scanner.Scan(
		&item.ID, &item.StoreID, &item.Name, &item.Quantity, &item.Notes,
		&addedBy, &item.AddedDate, &purchased, &purchasedBy, &purchasedDate,
	)
	if err != nil {
		return nil, err
	}

	item.IsPurchased = purchased != 0
	item.AddedBy = int64Ptr(addedBy)
	item.PurchasedBy = int64Ptr(purchasedBy)
	if purchasedDate.Valid {
		item.PurchasedDate = &purchasedDate.Time
	}
	return &item, nil
}

const itemCols = `id, store_id, name, quantity, notes, added_by, added_date, is_purchased, purchased_by, purchased_date`

func (s *ItemStore) Create(ctx context.Context, storeID int64, name, quantity, notes string, addedBy *int64) (*model.ShoppingItem, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO shopping_items (store_id, name, quantity, notes, added_by, added_date) VALUES (?, ?, ?, ?, ?, ?)`,
		storeID, name, quantity, notes, nullInt64(addedBy), time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *ItemStore) GetByID(ctx context.Context, id int64) (*model.ShoppingItem, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemCols+` FROM shopping_items WHERE id = ?`, id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

func (s *ItemStore) queryItems(ctx context.Context, query string, args ...any) ([]model.ShoppingItem, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []model.ShoppingItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// ListActive returns the store's unpurchased items, newest first.
func (s *ItemStore) ListActive(ctx context.Context, storeID int64) ([]model.ShoppingItem, error) {
	return s.queryItems(ctx,
		`SELECT `+itemCols+` FROM shopping_items WHERE store_id = ? AND is_purchased = 0 ORDER BY added_date DESC, id DESC`,
		storeID,
	)
}

// ListActiveByStores returns unpurchased items across storeIDs in one query.
func (s *ItemStore) ListActiveByStores(ctx context.Context, storeIDs []int64) ([]model.ShoppingItem, error) {
	if len(storeIDs) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(storeIDs)), ",")
	args := make([]any, len(storeIDs))
	for i, id := range storeIDs {
		args[i] = id
	}
	return s.queryItems(ctx,
		`SELECT `+itemCols+` FROM shopping_items WHERE is_purchased = 0 AND store_id IN (`+placeholders+`) ORDER BY added_date DESC, id DESC`,
		args...,
	)
}

// FindActiveByName returns an unpurchased item in the store with exactly this name.
func (s *ItemStore) FindActiveByName(ctx context.Context, storeID int64, name string) (*model.ShoppingItem, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+itemCols+` FROM shopping_items WHERE store_id = ? AND name = ? AND is_purchased = 0 ORDER BY id ASC LIMIT 1`,
		storeID, name,
	)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find active item: %w", err)
	}
	return item, nil
}

// MarkPurchased flips an active item to purchased. It reports false when the
// item was already purchased or does not exist.
func (s *ItemStore) MarkPurchased(ctx context.Context, id int64, purchasedBy *int64, at time.Time) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE shopping_items SET is_purchased = 1, purchased_by = ?, purchased_date = ? WHERE id = ? AND is_purchased = 0`,
		nullInt64(purchasedBy), at.UTC(), id,
	)
	if err != nil {
		return false, fmt.Errorf("mark purchased: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func (s *ItemStore) DeleteByStore(ctx context.Context, storeID int64) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM shopping_items WHERE store_id = ?`, storeID)
	if err != nil {
		return 0, fmt.Errorf("delete store items: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
