package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/shoplist/internal/auth"
	"github.com/dukerupert/shoplist/internal/i18n"
	"github.com/dukerupert/shoplist/internal/model"
)

// Renderer holds one parsed template set per page, each sharing the layout.
type Renderer struct {
	pages  map[string]*template.Template
	bundle *i18n.Bundle
	logger *slog.Logger
}

var pageNames = []string{"entry", "stores", "list", "summary", "history"}

func NewRenderer(fsys fs.FS, bundle *i18n.Bundle, logger *slog.Logger) (*Renderer, error) {
	funcs := template.FuncMap{
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Local().Format("2006-01-02")
		},
		"buyer": func(name, unknown string) string {
			if name == "" {
				return unknown
			}
			return name
		},
		"entryData": func(page map[string]any, e model.PurchaseHistoryEntry) map[string]any {
			readded, _ := page["ReAddedID"].(int64)
			return map[string]any{
				"T":       page["T"],
				"Unknown": page["Unknown"],
				"Entry":   e,
				"ReAdded": readded != 0 && readded == e.ID,
			}
		},
	}

	base, err := template.New("base").Funcs(funcs).ParseFS(fsys, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout: %w", err)
		}
		if _, err := t.ParseFS(fsys, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name] = t
	}

	return &Renderer{pages: pages, bundle: bundle, logger: logger}, nil
}

// page builds the data shared by every view: translator, session, language.
func (rd *Renderer) page(r *http.Request, title i18n.Key, titleArgs ...any) map[string]any {
	tr := rd.bundle.FromRequest(r)
	sess, _ := auth.FromContext(r.Context())
	return map[string]any{
		"T":       tr,
		"Lang":    tr.Tag().String(),
		"Title":   tr.T(title, titleArgs...),
		"Session": sess,
		"Live":    sess.Valid(),
		"Unknown": tr.T(i18n.CommonUnknown),
		"Error":   "",
	}
}

// render executes a page into a buffer first so a template error never
// produces a half-written response.
func (rd *Renderer) render(w http.ResponseWriter, status int, name string, data map[string]any) {
	t, ok := rd.pages[name]
	if !ok {
		rd.logger.Error("unknown template", "name", name)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		rd.logger.Error("render template", "name", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
