package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/shoplist/internal/auth"
	"github.com/dukerupert/shoplist/internal/history"
	"github.com/dukerupert/shoplist/internal/i18n"
	"github.com/dukerupert/shoplist/internal/metrics"
	"github.com/dukerupert/shoplist/internal/model"
	"github.com/dukerupert/shoplist/internal/shopping"
	"github.com/dukerupert/shoplist/internal/websocket"
)

// ViewHandler serves the HTML pages. Every route requires RequireSession.
type ViewHandler struct {
	svc         *shopping.Service
	renderer    *Renderer
	metrics     *metrics.Metrics
	events      broadcaster
	devFallback bool
	logger      *slog.Logger
}

func NewViewHandler(svc *shopping.Service, renderer *Renderer, m *metrics.Metrics, hub *websocket.Hub, devFallback bool, logger *slog.Logger) *ViewHandler {
	return &ViewHandler{
		svc:         svc,
		renderer:    renderer,
		metrics:     m,
		events:      broadcaster{hub: hub},
		devFallback: devFallback,
		logger:      logger,
	}
}

func translator(data map[string]any) *i18n.Translator {
	return data["T"].(*i18n.Translator)
}

// --- Store dashboard ---

func (h *ViewHandler) Stores(w http.ResponseWriter, r *http.Request) {
	h.renderStores(w, r, http.StatusOK, "")
}

func (h *ViewHandler) renderStores(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	data := h.renderer.page(r, i18n.ListShoppingList)
	data["Palette"] = model.StorePalette
	data["Error"] = errMsg

	stores, err := h.svc.ListStores(r.Context(), auth.FamilyCode(r.Context()))
	if err != nil {
		h.logger.Error("list stores", "error", err)
		if data["Error"] == "" {
			data["Error"] = err.Error()
		}
		status = http.StatusInternalServerError
	}
	data["Stores"] = stores
	h.renderer.render(w, status, "stores", data)
}

func (h *ViewHandler) CreateStore(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	family := auth.FamilyCode(r.Context())
	st, err := h.svc.CreateStore(r.Context(), family, r.FormValue("name"), r.FormValue("description"), r.FormValue("color"))
	if err != nil {
		status := errorStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("create store", "error", err)
		}
		tr := h.renderer.bundle.FromRequest(r)
		h.renderStores(w, r, status, tr.T(i18n.StoresCreateError, errorMessage(err)))
		return
	}

	h.events.send(family, websocket.EntityStore, "created", st.ID, nil)
	http.Redirect(w, r, "/stores", http.StatusSeeOther)
}

func (h *ViewHandler) DeleteStore(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	family := auth.FamilyCode(r.Context())
	res, err := h.svc.DeleteStore(r.Context(), family, id)
	if err != nil {
		status := errorStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("delete store", "store_id", id, "error", err)
		}
		tr := h.renderer.bundle.FromRequest(r)
		h.renderStores(w, r, status, tr.T(i18n.StoresDeleteError, errorMessage(err)))
		return
	}

	h.logger.Info("store deleted", "store_id", id, "items", res.Items, "history", res.History)
	h.events.send(family, websocket.EntityStore, "deleted", id, nil)
	http.Redirect(w, r, "/stores", http.StatusSeeOther)
}

// --- Shopping list ---

type listItem struct {
	model.ShoppingItem
	LocalOnly bool
}

// sampleItems stands in for a list that could not be loaded when the dev
// fallback is enabled.
func sampleItems(storeID int64) []listItem {
	now := time.Now()
	return []listItem{
		{ShoppingItem: model.ShoppingItem{StoreID: storeID, Name: "Milk", Quantity: "1 gallon", Notes: "Whole milk preferred", AddedDate: now}, LocalOnly: true},
		{ShoppingItem: model.ShoppingItem{StoreID: storeID, Name: "Bread", Quantity: "2 loaves", Notes: "Whole wheat", AddedDate: now}, LocalOnly: true},
		{ShoppingItem: model.ShoppingItem{StoreID: storeID, Name: "Eggs", Quantity: "1 dozen", Notes: "Organic", AddedDate: now}, LocalOnly: true},
	}
}

// loadList fetches the store and its active items. A store that exists but
// could not be read gets a placeholder name and the default color. Items
// that could not be read are replaced by sample items in dev mode.
func (h *ViewHandler) loadList(r *http.Request, storeID int64, tr *i18n.Translator) (*model.Store, []listItem, error) {
	st, items, err := h.svc.ListItems(r.Context(), auth.FamilyCode(r.Context()), storeID)
	if errors.Is(err, shopping.ErrStoreNotFound) {
		return nil, nil, err
	}
	if err != nil {
		h.logger.Error("load shopping list", "store_id", storeID, "error", err)
		if st == nil {
			st = &model.Store{
				ID:    storeID,
				Name:  fmt.Sprintf("%s %d", tr.T(i18n.CommonStore), storeID),
				Color: model.DefaultStoreColor,
			}
		}
		if h.devFallback {
			return st, sampleItems(storeID), nil
		}
		return st, nil, err
	}

	out := make([]listItem, 0, len(items))
	for _, it := range items {
		out = append(out, listItem{ShoppingItem: it})
	}
	return st, out, nil
}

func (h *ViewHandler) renderList(w http.ResponseWriter, r *http.Request, status int, storeID int64, extra *listItem, errMsg string) {
	data := h.renderer.page(r, i18n.ListShoppingList)
	tr := translator(data)

	st, items, err := h.loadList(r, storeID, tr)
	if errors.Is(err, shopping.ErrStoreNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil && errMsg == "" {
		errMsg = err.Error()
	}
	if extra != nil {
		items = append([]listItem{*extra}, items...)
	}

	data["Title"] = st.Name
	data["Store"] = st
	data["Items"] = items
	data["Error"] = errMsg
	h.renderer.render(w, status, "list", data)
}

func (h *ViewHandler) ShoppingList(w http.ResponseWriter, r *http.Request) {
	storeID, err := parsePathID(r, "storeId")
	if err != nil {
		http.Error(w, "invalid store id", http.StatusBadRequest)
		return
	}
	h.renderList(w, r, http.StatusOK, storeID, nil, "")
}

// AddItem adds an item and returns to the list. If the insert fails for a
// reason other than bad input, the list is shown with the item marked as not
// saved.
func (h *ViewHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	storeID, err := parsePathID(r, "storeId")
	if err != nil {
		http.Error(w, "invalid store id", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	sess, _ := auth.FromContext(r.Context())
	name, quantity, notes := r.FormValue("name"), r.FormValue("quantity"), r.FormValue("notes")
	item, err := h.svc.AddItem(r.Context(), sess, storeID, name, quantity, notes)
	switch {
	case errors.Is(err, shopping.ErrStoreNotFound):
		http.NotFound(w, r)
		return
	case errors.Is(err, shopping.ErrInvalidInput):
		h.renderList(w, r, http.StatusBadRequest, storeID, nil, err.Error())
		return
	case err != nil:
		h.logger.Error("add item", "store_id", storeID, "error", err)
		local := &listItem{
			ShoppingItem: model.ShoppingItem{
				StoreID:   storeID,
				Name:      name,
				Quantity:  quantity,
				Notes:     notes,
				AddedBy:   userRef(sess),
				AddedDate: time.Now(),
			},
			LocalOnly: true,
		}
		h.renderList(w, r, http.StatusOK, storeID, local, "")
		return
	}

	h.events.send(sess.FamilyCode, websocket.EntityItem, "created", item.ID, map[string]any{"store_id": storeID})
	http.Redirect(w, r, fmt.Sprintf("/shopping-list/%d", storeID), http.StatusSeeOther)
}

func userRef(sess auth.Session) *int64 {
	if sess.UserID == 0 {
		return nil
	}
	id := sess.UserID
	return &id
}

// purchase runs the shared purchase operation and reports success. On
// failure it has already written the response.
func (h *ViewHandler) purchase(w http.ResponseWriter, r *http.Request) bool {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return false
	}

	sess, _ := auth.FromContext(r.Context())
	res, err := h.svc.Purchase(r.Context(), sess, id)
	if err != nil {
		status := errorStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("purchase item", "item_id", id, "error", err)
		}
		http.Error(w, errorMessage(err), status)
		return false
	}

	h.metrics.ObservePurchase(res.AlreadyPurchased, res.Created)
	if !res.AlreadyPurchased {
		publishPurchase(h.events, sess.FamilyCode, res)
	}
	return true
}

func (h *ViewHandler) PurchaseFromList(w http.ResponseWriter, r *http.Request) {
	storeID, err := parsePathID(r, "storeId")
	if err != nil {
		http.Error(w, "invalid store id", http.StatusBadRequest)
		return
	}
	if h.purchase(w, r) {
		http.Redirect(w, r, fmt.Sprintf("/shopping-list/%d", storeID), http.StatusSeeOther)
	}
}

// --- Summary ---

func (h *ViewHandler) Summary(w http.ResponseWriter, r *http.Request) {
	data := h.renderer.page(r, i18n.SummaryTitle)
	tr := translator(data)

	status := http.StatusOK
	items, err := h.svc.Summary(r.Context(), auth.FamilyCode(r.Context()), tr.Tag())
	if err != nil {
		h.logger.Error("summary", "error", err)
		data["Error"] = err.Error()
		status = http.StatusInternalServerError
	}
	data["Items"] = items
	h.renderer.render(w, status, "summary", data)
}

func (h *ViewHandler) PurchaseFromSummary(w http.ResponseWriter, r *http.Request) {
	if h.purchase(w, r) {
		http.Redirect(w, r, "/summary-list", http.StatusSeeOther)
	}
}

// --- Purchase history ---

func (h *ViewHandler) renderHistory(w http.ResponseWriter, r *http.Request, status int, storeID, readdedID int64, errMsg string) {
	data := h.renderer.page(r, i18n.HistoryTitle, "")
	tr := translator(data)

	st, entries, err := h.svc.ListHistory(r.Context(), auth.FamilyCode(r.Context()), storeID)
	if errors.Is(err, shopping.ErrStoreNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.logger.Error("list history", "store_id", storeID, "error", err)
		if errMsg == "" {
			errMsg = err.Error()
		}
		status = http.StatusInternalServerError
	}
	if st == nil {
		st = &model.Store{
			ID:    storeID,
			Name:  fmt.Sprintf("%s %d", tr.T(i18n.CommonStore), storeID),
			Color: model.DefaultStoreColor,
		}
	}

	q := r.URL.Query()
	mode := "all"
	if q.Get("view") == "buyer" {
		mode = "buyer"
	}

	data["Title"] = tr.T(i18n.HistoryTitle, st.Name)
	data["Store"] = st
	data["View"] = history.Build(entries, q.Get("q"), history.ParseSortBy(q.Get("sort")), tr.T(i18n.CommonUnknown), tr.Tag())
	data["Mode"] = mode
	data["ReAddedID"] = readdedID
	data["Error"] = errMsg
	h.renderer.render(w, status, "history", data)
}

func (h *ViewHandler) History(w http.ResponseWriter, r *http.Request) {
	storeID, err := parsePathID(r, "storeId")
	if err != nil {
		http.Error(w, "invalid store id", http.StatusBadRequest)
		return
	}
	h.renderHistory(w, r, http.StatusOK, storeID, 0, "")
}

// DeleteHistoryEntry removes a ledger row. The row disappears from the page
// only after the delete succeeded; otherwise the page shows the error.
func (h *ViewHandler) DeleteHistoryEntry(w http.ResponseWriter, r *http.Request) {
	storeID, err := parsePathID(r, "storeId")
	if err != nil {
		http.Error(w, "invalid store id", http.StatusBadRequest)
		return
	}
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	family := auth.FamilyCode(r.Context())
	if _, err := h.svc.DeleteHistoryEntry(r.Context(), family, id); err != nil {
		status := errorStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("delete history entry", "entry_id", id, "error", err)
		}
		tr := h.renderer.bundle.FromRequest(r)
		h.renderHistory(w, r, status, storeID, 0, tr.T(i18n.HistoryDeleteError, errorMessage(err)))
		return
	}

	h.events.send(family, websocket.EntityHistory, "deleted", id, map[string]any{"store_id": storeID})
	target := fmt.Sprintf("/stores/%d/history", storeID)
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// ReAdd puts a ledger row's item back on the list and shows the history with
// that row marked as re-added.
func (h *ViewHandler) ReAdd(w http.ResponseWriter, r *http.Request) {
	storeID, err := parsePathID(r, "storeId")
	if err != nil {
		http.Error(w, "invalid store id", http.StatusBadRequest)
		return
	}
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	sess, _ := auth.FromContext(r.Context())
	res, err := h.svc.ReAdd(r.Context(), sess, id)
	if err != nil {
		status := errorStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("re-add item", "entry_id", id, "error", err)
		}
		h.renderHistory(w, r, status, storeID, 0, errorMessage(err))
		return
	}

	if res.ReAdded {
		h.events.send(sess.FamilyCode, websocket.EntityItem, "created", res.Item.ID, map[string]any{"store_id": storeID})
	}
	h.renderHistory(w, r, http.StatusOK, storeID, id, "")
}
