package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/shoplist/internal/auth"
	"github.com/dukerupert/shoplist/internal/i18n"
	"github.com/dukerupert/shoplist/internal/shopping"
	"github.com/dukerupert/shoplist/internal/store"
)

type AuthHandler struct {
	svc           *shopping.Service
	sessionStore  *store.SessionStore
	userStore     *store.UserStore
	renderer      *Renderer
	sessionTTL    time.Duration
	secureCookies bool
	logger        *slog.Logger
}

func NewAuthHandler(
	svc *shopping.Service,
	ss *store.SessionStore,
	us *store.UserStore,
	renderer *Renderer,
	sessionTTL time.Duration,
	secureCookies bool,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		svc:           svc,
		sessionStore:  ss,
		userStore:     us,
		renderer:      renderer,
		sessionTTL:    sessionTTL,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// Entry shows the name + family code form, or sends a signed-in visitor
// straight to the dashboard.
func (h *AuthHandler) Entry(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if h.hasSession(r) {
		http.Redirect(w, r, "/stores", http.StatusSeeOther)
		return
	}
	data := h.renderer.page(r, i18n.HomeTitle)
	data["Name"] = ""
	data["FamilyCode"] = ""
	h.renderer.render(w, http.StatusOK, "entry", data)
}

func (h *AuthHandler) hasSession(r *http.Request) bool {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}
	sess, err := h.sessionStore.GetByToken(r.Context(), cookie.Value)
	if err != nil || sess == nil {
		return false
	}
	u, err := h.userStore.GetByID(r.Context(), sess.UserID)
	return err == nil && u != nil
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	name := r.FormValue("name")
	familyCode := r.FormValue("family_code")

	user, err := h.svc.Login(r.Context(), name, familyCode)
	if err != nil {
		data := h.renderer.page(r, i18n.HomeTitle)
		data["Name"] = name
		data["FamilyCode"] = familyCode
		status := http.StatusBadRequest
		if errors.Is(err, shopping.ErrInvalidInput) {
			data["Error"] = data["T"].(*i18n.Translator).T(i18n.HomeError)
		} else {
			h.logger.Error("login", "error", err)
			status = http.StatusInternalServerError
			data["Error"] = errorMessage(err)
		}
		h.renderer.render(w, status, "entry", data)
		return
	}

	sess, err := h.sessionStore.Create(r.Context(), user.ID, h.sessionTTL)
	if err != nil {
		h.logger.Error("create session", "user_id", user.ID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookies || r.TLS != nil,
	})

	h.logger.Info("signed in", "user_id", user.ID, "family_code", user.FamilyCode)
	http.Redirect(w, r, "/stores", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if sess, err := h.sessionStore.GetByToken(r.Context(), cookie.Value); err == nil && sess != nil {
			if err := h.sessionStore.Delete(r.Context(), sess.ID); err != nil {
				h.logger.Error("delete session", "session_id", sess.ID, "error", err)
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Session reports the signed-in identity. Requires RequireSession.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not signed in")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":     sess.UserID,
		"user_name":   sess.UserName,
		"family_code": sess.FamilyCode,
	})
}
