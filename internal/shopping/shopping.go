// Package shopping implements the family shopping operations on top of the
// table stores: the store dashboard, per-store lists, purchases and the
// purchase history ledger.
package shopping

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/dukerupert/shoplist/internal/auth"
	"github.com/dukerupert/shoplist/internal/i18n"
	"github.com/dukerupert/shoplist/internal/model"
	"github.com/dukerupert/shoplist/internal/store"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrStoreNotFound = errors.New("store not found")
	ErrItemNotFound  = errors.New("item not found")
	ErrEntryNotFound = errors.New("history entry not found")
)

type Service struct {
	db      *sql.DB
	users   *store.UserStore
	stores  *store.StoreStore
	items   *store.ItemStore
	history *store.HistoryStore
	now     func() time.Time
	logger  *slog.Logger
}

func NewService(db *sql.DB, logger *slog.Logger) *Service {
	return &Service{
		db:      db,
		users:   store.NewUserStore(db),
		stores:  store.NewStoreStore(db),
		items:   store.NewItemStore(db),
		history: store.NewHistoryStore(db),
		now:     time.Now,
		logger:  logger,
	}
}

// inTx runs fn in a transaction, committing only if fn returns nil.
func (s *Service) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Login returns the user for (name, familyCode), creating it on first use.
func (s *Service) Login(ctx context.Context, name, familyCode string) (*model.User, error) {
	name = strings.TrimSpace(name)
	familyCode = strings.TrimSpace(familyCode)
	if name == "" || familyCode == "" {
		return nil, fmt.Errorf("%w: name and family code are required", ErrInvalidInput)
	}

	u, created, err := s.users.GetOrCreate(ctx, name, familyCode)
	if err != nil {
		return nil, err
	}
	if created {
		s.logger.Info("user created", "user_id", u.ID, "family_code", familyCode)
	}
	return u, nil
}

// --- Stores ---

func (s *Service) ListStores(ctx context.Context, familyCode string) ([]model.Store, error) {
	return s.stores.ListByFamily(ctx, familyCode)
}

func (s *Service) GetStore(ctx context.Context, familyCode string, id int64) (*model.Store, error) {
	st, err := s.stores.GetForFamily(ctx, id, familyCode)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrStoreNotFound
	}
	return st, nil
}

// CreateStore adds a store for the family. Color must come from the palette;
// an empty color gets model.DefaultStoreColor.
func (s *Service) CreateStore(ctx context.Context, familyCode, name, description, color string) (*model.Store, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	color = strings.ToLower(strings.TrimSpace(color))
	switch {
	case color == "":
		color = model.DefaultStoreColor
	case color != model.DefaultStoreColor && !model.IsPaletteColor(color):
		return nil, fmt.Errorf("%w: color %q is not in the palette", ErrInvalidInput, color)
	}
	return s.stores.Create(ctx, name, strings.TrimSpace(description), color, familyCode)
}

// DeleteResult counts the rows removed by DeleteStore.
type DeleteResult struct {
	Items   int64 `json:"items"`
	History int64 `json:"history"`
}

// DeleteStore removes the store's shopping items, then its purchase history,
// then the store itself. The three deletes share one transaction so a failure
// at any step leaves everything in place.
func (s *Service) DeleteStore(ctx context.Context, familyCode string, id int64) (*DeleteResult, error) {
	var res DeleteResult
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		st, err := s.stores.WithTx(tx).GetForFamily(ctx, id, familyCode)
		if err != nil {
			return err
		}
		if st == nil {
			return ErrStoreNotFound
		}

		if res.Items, err = s.items.WithTx(tx).DeleteByStore(ctx, id); err != nil {
			return fmt.Errorf("delete store %d: %w", id, err)
		}
		if res.History, err = s.history.WithTx(tx).DeleteByStore(ctx, id); err != nil {
			return fmt.Errorf("delete store %d: %w", id, err)
		}
		if _, err := s.stores.WithTx(tx).Delete(ctx, id); err != nil {
			return fmt.Errorf("delete store %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// --- Shopping list ---

// ListItems returns the store and its active items, newest first.
func (s *Service) ListItems(ctx context.Context, familyCode string, storeID int64) (*model.Store, []model.ShoppingItem, error) {
	st, err := s.GetStore(ctx, familyCode, storeID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.items.ListActive(ctx, storeID)
	if err != nil {
		return st, nil, err
	}
	return st, items, nil
}

// AddItem puts a new active item on the store's list.
func (s *Service) AddItem(ctx context.Context, sess auth.Session, storeID int64, name, quantity, notes string) (*model.ShoppingItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if _, err := s.GetStore(ctx, sess.FamilyCode, storeID); err != nil {
		return nil, err
	}
	return s.items.Create(ctx, storeID, name, strings.TrimSpace(quantity), strings.TrimSpace(notes), userRef(sess))
}

// PurchaseResult describes the outcome of Purchase.
type PurchaseResult struct {
	Item             *model.ShoppingItem         `json:"item"`
	Entry            *model.PurchaseHistoryEntry `json:"entry"`
	Created          bool                        `json:"created"`
	AlreadyPurchased bool                        `json:"already_purchased"`
}

// Purchase marks an active item purchased and records it in the store's
// history ledger in a single transaction. The ledger has one row per item
// name: the first purchase inserts it with frequency 1, later purchases
// increment the frequency and overwrite buyer, date, quantity and notes.
// Purchasing an item that is already purchased changes nothing.
func (s *Service) Purchase(ctx context.Context, sess auth.Session, itemID int64) (*PurchaseResult, error) {
	var res PurchaseResult
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		items := s.items.WithTx(tx)
		history := s.history.WithTx(tx)

		item, err := items.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return ErrItemNotFound
		}
		st, err := s.stores.WithTx(tx).GetForFamily(ctx, item.StoreID, sess.FamilyCode)
		if err != nil {
			return err
		}
		if st == nil {
			return ErrItemNotFound
		}

		now := s.now().UTC()
		flipped, err := items.MarkPurchased(ctx, itemID, userRef(sess), now)
		if err != nil {
			return err
		}
		if !flipped {
			res.Item = item
			res.AlreadyPurchased = true
			res.Entry, err = history.FindByName(ctx, item.StoreID, item.Name)
			return err
		}

		res.Entry, res.Created, err = history.Record(ctx, store.Purchase{
			StoreID:   item.StoreID,
			ItemName:  item.Name,
			BuyerID:   userRef(sess),
			BuyerName: sess.UserName,
			Quantity:  item.Quantity,
			Notes:     item.Notes,
			At:        now,
		})
		if err != nil {
			return err
		}
		res.Item, err = items.GetByID(ctx, itemID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// --- Purchase history ---

// ListHistory returns the store and every ledger row for it.
func (s *Service) ListHistory(ctx context.Context, familyCode string, storeID int64) (*model.Store, []model.PurchaseHistoryEntry, error) {
	st, err := s.GetStore(ctx, familyCode, storeID)
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.history.ListByStore(ctx, storeID)
	if err != nil {
		return st, nil, err
	}
	return st, entries, nil
}

func (s *Service) entryForFamily(ctx context.Context, h *store.HistoryStore, st *store.StoreStore, familyCode string, id int64) (*model.PurchaseHistoryEntry, error) {
	e, err := h.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrEntryNotFound
	}
	owner, err := st.GetForFamily(ctx, e.StoreID, familyCode)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, ErrEntryNotFound
	}
	return e, nil
}

// DeleteHistoryEntry removes one ledger row and returns it.
func (s *Service) DeleteHistoryEntry(ctx context.Context, familyCode string, id int64) (*model.PurchaseHistoryEntry, error) {
	e, err := s.entryForFamily(ctx, s.history, s.stores, familyCode, id)
	if err != nil {
		return nil, err
	}
	n, err := s.history.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrEntryNotFound
	}
	return e, nil
}

// ReAddResult describes the outcome of ReAdd. ReAdded is false when an
// active item with the same name was already on the list.
type ReAddResult struct {
	Entry   *model.PurchaseHistoryEntry `json:"entry"`
	Item    *model.ShoppingItem         `json:"item"`
	ReAdded bool                        `json:"readded"`
}

// ReAdd puts a history entry's item back on the store's active list, carrying
// over its last quantity and notes, unless it is already there.
func (s *Service) ReAdd(ctx context.Context, sess auth.Session, entryID int64) (*ReAddResult, error) {
	var res ReAddResult
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		items := s.items.WithTx(tx)

		e, err := s.entryForFamily(ctx, s.history.WithTx(tx), s.stores.WithTx(tx), sess.FamilyCode, entryID)
		if err != nil {
			return err
		}
		res.Entry = e

		existing, err := items.FindActiveByName(ctx, e.StoreID, e.ItemName)
		if err != nil {
			return err
		}
		if existing != nil {
			res.Item = existing
			return nil
		}

		res.Item, err = items.Create(ctx, e.StoreID, e.ItemName, e.LastQuantity, e.LastNotes, userRef(sess))
		if err != nil {
			return err
		}
		res.ReAdded = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// --- Summary ---

// Summary returns every active item across the family's stores with the
// store's name and color attached, ordered by store name then item name.
func (s *Service) Summary(ctx context.Context, familyCode string, tag language.Tag) ([]model.SummaryItem, error) {
	stores, err := s.stores.ListByFamily(ctx, familyCode)
	if err != nil {
		return nil, err
	}
	if len(stores) == 0 {
		return nil, nil
	}

	byID := make(map[int64]model.Store, len(stores))
	ids := make([]int64, 0, len(stores))
	for _, st := range stores {
		byID[st.ID] = st
		ids = append(ids, st.ID)
	}

	items, err := s.items.ListActiveByStores(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]model.SummaryItem, 0, len(items))
	for _, it := range items {
		st := byID[it.StoreID]
		out = append(out, model.SummaryItem{ShoppingItem: it, StoreName: st.Name, StoreColor: st.Color})
	}

	c := i18n.NewCollator(tag)
	sort.SliceStable(out, func(i, j int) bool {
		if d := c.CompareString(out[i].StoreName, out[j].StoreName); d != 0 {
			return d < 0
		}
		return c.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out, nil
}

func userRef(sess auth.Session) *int64 {
	if sess.UserID == 0 {
		return nil
	}
	id := sess.UserID
	return &id
}
