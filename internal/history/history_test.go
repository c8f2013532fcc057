package history

import (
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/dukerupert/shoplist/internal/model"
)

var base = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

func sample() []model.PurchaseHistoryEntry {
	return []model.PurchaseHistoryEntry{
		{ID: 1, ItemName: "Milk", BuyerName: "Anna", PurchaseDate: base.Add(1 * time.Hour), Frequency: 4},
		{ID: 2, ItemName: "bread", BuyerName: "Pau", PurchaseDate: base.Add(3 * time.Hour), Frequency: 1},
		{ID: 3, ItemName: "Almond milk", BuyerName: "Anna", PurchaseDate: base.Add(2 * time.Hour), Frequency: 2},
		{ID: 4, ItemName: "Eggs", BuyerName: "", PurchaseDate: base, Frequency: 7},
	}
}

func ids(entries []model.PurchaseHistoryEntry) []int64 {
	out := make([]int64, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterCaseInsensitive(t *testing.T) {
	tests := []struct {
		term string
		want []int64
	}{
		{"milk", []int64{1, 3}},
		{"MILK", []int64{1, 3}},
		{"  Bread ", []int64{2}},
		{"", []int64{1, 2, 3, 4}},
		{"cheese", []int64{}},
	}
	for _, tt := range tests {
		got := ids(Filter(sample(), tt.term))
		if !equalIDs(got, tt.want) {
			t.Errorf("Filter(%q) = %v, want %v", tt.term, got, tt.want)
		}
	}
}

func TestSort(t *testing.T) {
	tests := []struct {
		by   SortBy
		want []int64
	}{
		{SortByName, []int64{3, 2, 4, 1}},
		{SortByDate, []int64{2, 3, 1, 4}},
		{SortByFrequency, []int64{4, 1, 3, 2}},
	}
	for _, tt := range tests {
		entries := sample()
		Sort(entries, tt.by, language.Catalan)
		if got := ids(entries); !equalIDs(got, tt.want) {
			t.Errorf("Sort(%s) = %v, want %v", tt.by, got, tt.want)
		}
	}
}

func TestParseSortBy(t *testing.T) {
	tests := map[string]SortBy{
		"name":      SortByName,
		"Frequency": SortByFrequency,
		"date":      SortByDate,
		"":          SortByDate,
		"bogus":     SortByDate,
	}
	for in, want := range tests {
		if got := ParseSortBy(in); got != want {
			t.Errorf("ParseSortBy(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestGroupByBuyer(t *testing.T) {
	entries := sample()
	Sort(entries, SortByDate, language.Catalan)

	groups := GroupByBuyer(entries, "Unknown", language.Catalan)
	if len(groups) != 3 {
		t.Fatalf("groups = %d, want 3", len(groups))
	}
	wantBuyers := []string{"Anna", "Pau", "Unknown"}
	for i, g := range groups {
		if g.Buyer != wantBuyers[i] {
			t.Errorf("group[%d] = %q, want %q", i, g.Buyer, wantBuyers[i])
		}
	}
	if got := ids(groups[0].Entries); !equalIDs(got, []int64{3, 1}) {
		t.Errorf("Anna entries = %v, want [3 1] (date order kept)", got)
	}
}

func TestBuild(t *testing.T) {
	v := Build(sample(), "milk", SortByFrequency, "Unknown", language.English)
	if got := ids(v.Entries); !equalIDs(got, []int64{1, 3}) {
		t.Errorf("entries = %v, want [1 3]", got)
	}
	if len(v.ByBuyer) != 1 || v.ByBuyer[0].Buyer != "Anna" {
		t.Errorf("by buyer = %+v", v.ByBuyer)
	}
	if v.SortBy != SortByFrequency || v.Query != "milk" {
		t.Errorf("view = %+v", v)
	}
}
