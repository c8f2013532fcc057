package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dukerupert/shoplist/internal/auth"
	"github.com/dukerupert/shoplist/internal/history"
	"github.com/dukerupert/shoplist/internal/i18n"
	"github.com/dukerupert/shoplist/internal/metrics"
	"github.com/dukerupert/shoplist/internal/model"
	"github.com/dukerupert/shoplist/internal/shopping"
	"github.com/dukerupert/shoplist/internal/websocket"
)

// APIHandler serves the JSON API. Every route requires RequireSession.
type APIHandler struct {
	svc     *shopping.Service
	bundle  *i18n.Bundle
	metrics *metrics.Metrics
	events  broadcaster
	logger  *slog.Logger
}

func NewAPIHandler(svc *shopping.Service, bundle *i18n.Bundle, m *metrics.Metrics, hub *websocket.Hub, logger *slog.Logger) *APIHandler {
	return &APIHandler{
		svc:     svc,
		bundle:  bundle,
		metrics: m,
		events:  broadcaster{hub: hub},
		logger:  logger,
	}
}

func (h *APIHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(op, "path", r.URL.Path, "error", err)
	}
	writeError(w, status, errorMessage(err))
}

// --- Stores ---

func (h *APIHandler) ListStores(w http.ResponseWriter, r *http.Request) {
	stores, err := h.svc.ListStores(r.Context(), auth.FamilyCode(r.Context()))
	if err != nil {
		h.fail(w, r, "list stores", err)
		return
	}
	if stores == nil {
		stores = []model.Store{}
	}
	writeJSON(w, http.StatusOK, stores)
}

func (h *APIHandler) GetStore(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	st, err := h.svc.GetStore(r.Context(), auth.FamilyCode(r.Context()), id)
	if err != nil {
		h.fail(w, r, "get store", err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

type createStoreRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

func (h *APIHandler) CreateStore(w http.ResponseWriter, r *http.Request) {
	var req createStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	family := auth.FamilyCode(r.Context())
	st, err := h.svc.CreateStore(r.Context(), family, req.Name, req.Description, req.Color)
	if err != nil {
		h.fail(w, r, "create store", err)
		return
	}

	h.events.send(family, websocket.EntityStore, "created", st.ID, nil)
	writeJSON(w, http.StatusCreated, st)
}

func (h *APIHandler) DeleteStore(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	family := auth.FamilyCode(r.Context())
	res, err := h.svc.DeleteStore(r.Context(), family, id)
	if err != nil {
		h.fail(w, r, "delete store", err)
		return
	}

	h.events.send(family, websocket.EntityStore, "deleted", id, nil)
	writeJSON(w, http.StatusOK, res)
}

// --- Items ---

func (h *APIHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	st, items, err := h.svc.ListItems(r.Context(), auth.FamilyCode(r.Context()), id)
	if err != nil {
		h.fail(w, r, "list items", err)
		return
	}
	if items == nil {
		items = []model.ShoppingItem{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"store": st, "items": items})
}

type addItemRequest struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Notes    string `json:"notes"`
}

func (h *APIHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	storeID, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	sess, _ := auth.FromContext(r.Context())
	item, err := h.svc.AddItem(r.Context(), sess, storeID, req.Name, req.Quantity, req.Notes)
	if err != nil {
		h.fail(w, r, "add item", err)
		return
	}

	h.events.send(sess.FamilyCode, websocket.EntityItem, "created", item.ID, map[string]any{"store_id": storeID})
	writeJSON(w, http.StatusCreated, item)
}

func (h *APIHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	sess, _ := auth.FromContext(r.Context())
	res, err := h.svc.Purchase(r.Context(), sess, id)
	if err != nil {
		h.fail(w, r, "purchase item", err)
		return
	}

	h.metrics.ObservePurchase(res.AlreadyPurchased, res.Created)
	if !res.AlreadyPurchased {
		publishPurchase(h.events, sess.FamilyCode, res)
	}
	writeJSON(w, http.StatusOK, res)
}

func publishPurchase(events broadcaster, family string, res *shopping.PurchaseResult) {
	extra := map[string]any{"store_id": res.Item.StoreID}
	events.send(family, websocket.EntityItem, "purchased", res.Item.ID, extra)
	action := "updated"
	if res.Created {
		action = "created"
	}
	events.send(family, websocket.EntityHistory, action, res.Entry.ID, extra)
}

// --- History ---

// ListHistory returns the store's ledger filtered by ?q=, sorted by ?sort=
// (name, date or frequency) and grouped by buyer.
func (h *APIHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	st, entries, err := h.svc.ListHistory(r.Context(), auth.FamilyCode(r.Context()), id)
	if err != nil {
		h.fail(w, r, "list history", err)
		return
	}

	tr := h.bundle.FromRequest(r)
	q := r.URL.Query()
	view := history.Build(entries, q.Get("q"), history.ParseSortBy(q.Get("sort")), tr.T(i18n.CommonUnknown), tr.Tag())
	if view.Entries == nil {
		view.Entries = []model.PurchaseHistoryEntry{}
	}
	if view.ByBuyer == nil {
		view.ByBuyer = []history.BuyerGroup{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"store": st, "history": view})
}

func (h *APIHandler) DeleteHistoryEntry(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	family := auth.FamilyCode(r.Context())
	e, err := h.svc.DeleteHistoryEntry(r.Context(), family, id)
	if err != nil {
		h.fail(w, r, "delete history entry", err)
		return
	}

	h.events.send(family, websocket.EntityHistory, "deleted", id, map[string]any{"store_id": e.StoreID})
	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandler) ReAdd(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	sess, _ := auth.FromContext(r.Context())
	res, err := h.svc.ReAdd(r.Context(), sess, id)
	if err != nil {
		h.fail(w, r, "re-add item", err)
		return
	}

	if res.ReAdded {
		h.events.send(sess.FamilyCode, websocket.EntityItem, "created", res.Item.ID, map[string]any{"store_id": res.Item.StoreID})
	}
	writeJSON(w, http.StatusOK, res)
}

// --- Summary ---

func (h *APIHandler) Summary(w http.ResponseWriter, r *http.Request) {
	tr := h.bundle.FromRequest(r)
	items, err := h.svc.Summary(r.Context(), auth.FamilyCode(r.Context()), tr.Tag())
	if err != nil {
		h.fail(w, r, "summary", err)
		return
	}
	if items == nil {
		items = []model.SummaryItem{}
	}
	writeJSON(w, http.StatusOK, items)
}
