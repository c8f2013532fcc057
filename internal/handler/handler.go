// Package handler serves the shopping list over HTTP: HTML views for the
// browser and a JSON API under /api.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dukerupert/shoplist/internal/shopping"
	"github.com/dukerupert/shoplist/internal/websocket"
)

const sessionCookieName = "shoplist_session"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func parseIDParam(r *http.Request) (int64, error) {
	return parsePathID(r, "id")
}

func parsePathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

// errorStatus maps service errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, shopping.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, shopping.ErrStoreNotFound),
		errors.Is(err, shopping.ErrItemNotFound),
		errors.Is(err, shopping.ErrEntryNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage hides internal error text from clients.
func errorMessage(err error) string {
	if errorStatus(err) == http.StatusInternalServerError {
		return "internal error"
	}
	return err.Error()
}

// broadcaster sends change notifications to the family's websocket clients.
// A nil hub disables notifications.
type broadcaster struct {
	hub *websocket.Hub
}

func (b broadcaster) send(family, entity, action string, id int64, extra map[string]any) {
	if b.hub == nil {
		return
	}
	b.hub.Broadcast(family, websocket.NewMessage(entity, action, id, extra))
}
