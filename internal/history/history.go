// Package history filters, sorts and groups purchase ledger entries for
// display.
package history

import (
	"sort"
	"strings"

	"golang.org/x/text/language"

	"github.com/dukerupert/shoplist/internal/i18n"
	"github.com/dukerupert/shoplist/internal/model"
)

// SortBy selects the ordering of a history view.
type SortBy string

const (
	SortByName      SortBy = "name"
	SortByDate      SortBy = "date"
	SortByFrequency SortBy = "frequency"
)

// ParseSortBy maps a query value to a SortBy, defaulting to date.
func ParseSortBy(s string) SortBy {
	switch SortBy(strings.ToLower(strings.TrimSpace(s))) {
	case SortByName:
		return SortByName
	case SortByFrequency:
		return SortByFrequency
	default:
		return SortByDate
	}
}

// Filter keeps entries whose item name contains term, ignoring case.
// An empty term keeps everything.
func Filter(entries []model.PurchaseHistoryEntry, term string) []model.PurchaseHistoryEntry {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]model.PurchaseHistoryEntry, 0, len(entries))
	for _, e := range entries {
		if term == "" || strings.Contains(strings.ToLower(e.ItemName), term) {
			out = append(out, e)
		}
	}
	return out
}

// Sort orders entries in place: names alphabetically using tag's collation,
// dates and frequencies descending.
func Sort(entries []model.PurchaseHistoryEntry, by SortBy, tag language.Tag) {
	switch by {
	case SortByName:
		c := i18n.NewCollator(tag)
		sort.SliceStable(entries, func(i, j int) bool {
			return c.CompareString(entries[i].ItemName, entries[j].ItemName) < 0
		})
	case SortByFrequency:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Frequency > entries[j].Frequency
		})
	default:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].PurchaseDate.After(entries[j].PurchaseDate)
		})
	}
}

// BuyerGroup is one buyer's entries in the grouped view.
type BuyerGroup struct {
	Buyer   string                       `json:"buyer"`
	Entries []model.PurchaseHistoryEntry `json:"entries"`
}

// GroupByBuyer groups entries by buyer name, keeping each group in the input
// order. Groups are ordered by buyer name. Entries without a buyer name go
// under unknown.
func GroupByBuyer(entries []model.PurchaseHistoryEntry, unknown string, tag language.Tag) []BuyerGroup {
	idx := make(map[string]int)
	var groups []BuyerGroup
	for _, e := range entries {
		buyer := e.BuyerName
		if buyer == "" {
			buyer = unknown
		}
		i, ok := idx[buyer]
		if !ok {
			i = len(groups)
			idx[buyer] = i
			groups = append(groups, BuyerGroup{Buyer: buyer})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}

	c := i18n.NewCollator(tag)
	sort.SliceStable(groups, func(i, j int) bool {
		return c.CompareString(groups[i].Buyer, groups[j].Buyer) < 0
	})
	return groups
}

// View is a filtered, sorted history with its buyer grouping.
type View struct {
	Query   string                       `json:"query"`
	SortBy  SortBy                       `json:"sort_by"`
	Entries []model.PurchaseHistoryEntry `json:"entries"`
	ByBuyer []BuyerGroup                 `json:"by_buyer"`
}

// Build applies Filter, Sort and GroupByBuyer in that order.
func Build(entries []model.PurchaseHistoryEntry, query string, by SortBy, unknown string, tag language.Tag) View {
	filtered := Filter(entries, query)
	Sort(filtered, by, tag)
	return View{
		Query:   query,
		SortBy:  by,
		Entries: filtered,
		ByBuyer: GroupByBuyer(filtered, unknown, tag),
	}
}
