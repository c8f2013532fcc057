package database

import "testing"

func TestOpenRunsMigrations(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	for _, table := range []string{"users", "stores", "shopping_items", "purchase_history", "sessions"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestForeignKeysEnabled(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	var on int
	if err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&on); err != nil {
		t.Fatalf("pragma: %v", err)
	}
	if on != 1 {
		t.Errorf("foreign_keys = %d, want 1", on)
	}

	_, err = db.Exec(`INSERT INTO shopping_items (store_id, name) VALUES (999, 'Milk')`)
	if err == nil {
		t.Error("expected foreign key violation for missing store")
	}
}

func TestHistoryUniquePerStoreAndName(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(`INSERT INTO stores (name, family_code) VALUES ('Groceries', 'FAM1')`); err != nil {
		t.Fatalf("insert store: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO purchase_history (store_id, item_name) VALUES (1, 'Milk')`); err != nil {
		t.Fatalf("insert history: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO purchase_history (store_id, item_name) VALUES (1, 'Milk')`); err == nil {
		t.Error("expected unique violation for duplicate (store, item_name)")
	}
}
