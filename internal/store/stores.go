package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dukerupert/shoplist/internal/model"
)

// StoreStore persists the family's shops ("stores" table).
type StoreStore struct {
	db DBTX
}

func NewStoreStore(db DBTX) *StoreStore {
	return &StoreStore{db: db}
}

// WithTx returns a StoreStore bound to tx.
func (s *StoreStore) WithTx(tx *sql.Tx) *StoreStore {
	return &StoreStore{db: tx}
}

func scanStore(scanner interface{ Scan(...any) error }) (*model.Store, error) {
	var st model.Store
	err := scanner.Scan(&st.ID, &st.Name, &st.Description, &st.Color, &st.FamilyCode, &st.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

const storeCols = `id, name, description, color, family_code, created_at`

func (s *StoreStore) Create(ctx context.Context, name, description, color, familyCode string) (*model.Store, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO stores (name, description, color, family_code) VALUES (?, ?, ?, ?)`,
		name, description, color, familyCode,
	)
	if err != nil {
		return nil, fmt.Errorf("insert store: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *StoreStore) GetByID(ctx context.Context, id int64) (*model.Store, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+storeCols+` FROM stores WHERE id = ?`, id)
	st, err := scanStore(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get store: %w", err)
	}
	return st, nil
}

// GetForFamily returns the store only if it belongs to familyCode.
func (s *StoreStore) GetForFamily(ctx context.Context, id int64, familyCode string) (*model.Store, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+storeCols+` FROM stores WHERE id = ? AND family_code = ?`,
		id, familyCode,
	)
	st, err := scanStore(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get store: %w", err)
	}
	return st, nil
}

// ListByFamily returns the family's stores in insertion order.
func (s *StoreStore) ListByFamily(ctx context.Context, familyCode string) ([]model.Store, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+storeCols+` FROM stores WHERE family_code = ? ORDER BY id ASC`,
		familyCode,
	)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	var stores []model.Store
	for rows.Next() {
		st, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		stores = append(stores, *st)
	}
	return stores, rows.Err()
}

func (s *StoreStore) Delete(ctx context.Context, id int64) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM stores WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete store: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
