package model

import "time"

// DefaultStoreColor is used when a store is created without a palette color.
const DefaultStoreColor = "#f0f4f8"

// StorePalette is the fixed set of colors a store may be given.
var StorePalette = []string{
	"#d0e1f9",
	"#b5e2fa",
	"#b5ead7",
	"#e2f0cb",
	"#ffdac1",
	"#ffb7b2",
	"#e0c3fc",
	"#f9f7c9",
	"#c7ceea",
	"#ffc8dd",
}

// IsPaletteColor reports whether c is one of StorePalette.
func IsPaletteColor(c string) bool {
	for _, p := range StorePalette {
		if p == c {
			return true
		}
	}
	return false
}

type Store struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	FamilyCode  string    `json:"family_code"`
	CreatedAt   time.Time `json:"created_at"`
}

type ShoppingItem struct {
	ID            int64      `json:"id"`
	StoreID       int64      `json:"store_id"`
	Name          string     `json:"name"`
	Quantity      string     `json:"quantity"`
	Notes         string     `json:"notes"`
	AddedBy       *int64     `json:"added_by"`
	AddedDate     time.Time  `json:"added_date"`
	IsPurchased   bool       `json:"is_purchased"`
	PurchasedBy   *int64     `json:"purchased_by"`
	PurchasedDate *time.Time `json:"purchased_date"`
}

// PurchaseHistoryEntry is the per-store ledger row for an item name.
// There is at most one entry per (StoreID, ItemName).
type PurchaseHistoryEntry struct {
	ID           int64     `json:"id"`
	StoreID      int64     `json:"store_id"`
	ItemName     string    `json:"item_name"`
	BuyerID      *int64    `json:"buyer_id"`
	BuyerName    string    `json:"buyer_name"`
	PurchaseDate time.Time `json:"purchase_date"`
	Frequency    int       `json:"frequency"`
	LastQuantity string    `json:"last_quantity"`
	LastNotes    string    `json:"last_notes"`
}

// SummaryItem is an active item joined with its store's name and color.
type SummaryItem struct {
	ShoppingItem
	StoreName  string `json:"store_name"`
	StoreColor string `json:"store_color"`
}
