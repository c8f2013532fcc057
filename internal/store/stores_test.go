package store

import (
	"context"
	"testing"
)

func TestStoreCRUD(t *testing.T) {
	ss := NewStoreStore(setupTestDB(t))
	ctx := context.Background()

	st, err := ss.Create(ctx, "Groceries", "weekly shop", "#b5ead7", "FAM123")
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	if st.Name != "Groceries" || st.Color != "#b5ead7" || st.Description != "weekly shop" {
		t.Errorf("store = %+v", st)
	}

	got, err := ss.GetByID(ctx, st.ID)
	if err != nil {
		t.Fatalf("get store: %v", err)
	}
	if got == nil || got.FamilyCode != "FAM123" {
		t.Fatalf("get store = %+v", got)
	}

	n, err := ss.Delete(ctx, st.ID)
	if err != nil {
		t.Fatalf("delete store: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}
	if got, _ := ss.GetByID(ctx, st.ID); got != nil {
		t.Error("expected nil for deleted store")
	}
}

func TestStoreListByFamilyInsertionOrder(t *testing.T) {
	ss := NewStoreStore(setupTestDB(t))
	ctx := context.Background()

	ss.Create(ctx, "Zeta", "", "#d0e1f9", "FAM123")
	ss.Create(ctx, "Alpha", "", "#d0e1f9", "FAM123")
	ss.Create(ctx, "Hidden", "", "#d0e1f9", "OTHER")

	stores, err := ss.ListByFamily(ctx, "FAM123")
	if err != nil {
		t.Fatalf("list stores: %v", err)
	}
	if len(stores) != 2 {
		t.Fatalf("stores = %d, want 2", len(stores))
	}
	if stores[0].Name != "Zeta" || stores[1].Name != "Alpha" {
		t.Errorf("order = %q, %q; want Zeta, Alpha", stores[0].Name, stores[1].Name)
	}
}

func TestStoreGetForFamily(t *testing.T) {
	ss := NewStoreStore(setupTestDB(t))
	ctx := context.Background()

	st, _ := ss.Create(ctx, "Bakery", "", "#ffdac1", "FAM123")

	if got, _ := ss.GetForFamily(ctx, st.ID, "FAM123"); got == nil {
		t.Error("expected store for owning family")
	}
	if got, _ := ss.GetForFamily(ctx, st.ID, "OTHER"); got != nil {
		t.Error("expected nil for another family")
	}
}
