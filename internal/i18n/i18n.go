// Package i18n holds the static translation catalogs and a small translator
// that resolves typed keys to locale-formatted strings.
package i18n

import (
	"log/slog"
	"net/http"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Bundle resolves a Translator for a requested language.
type Bundle struct {
	def     language.Tag
	matcher language.Matcher
	tags    []language.Tag
	logger  *slog.Logger
}

// NewBundle builds a Bundle with def as the preferred fallback language.
// An unsupported def falls back to DefaultLanguage.
func NewBundle(def string, logger *slog.Logger) *Bundle {
	defTag := DefaultLanguage
	if t, err := language.Parse(def); err == nil {
		if _, ok := catalogs[t]; ok {
			defTag = t
		}
	}

	tags := []language.Tag{defTag}
	for t := range catalogs {
		if t != defTag {
			tags = append(tags, t)
		}
	}

	return &Bundle{
		def:     defTag,
		matcher: language.NewMatcher(tags),
		tags:    tags,
		logger:  logger,
	}
}

// Default returns the Translator for the bundle's default language.
func (b *Bundle) Default() *Translator {
	return b.For(b.def)
}

// For returns a Translator for the closest supported language to tag.
func (b *Bundle) For(tag language.Tag) *Translator {
	_, idx, _ := b.matcher.Match(tag)
	return b.newTranslator(b.tags[idx])
}

// FromRequest picks a language from the ?lang= query parameter, then the
// Accept-Language header.
func (b *Bundle) FromRequest(r *http.Request) *Translator {
	var prefs []language.Tag
	if lang := r.URL.Query().Get("lang"); lang != "" {
		if t, err := language.Parse(lang); err == nil {
			prefs = append(prefs, t)
		}
	}
	if accept, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language")); err == nil {
		prefs = append(prefs, accept...)
	}
	if len(prefs) == 0 {
		return b.Default()
	}
	_, idx, _ := b.matcher.Match(prefs...)
	return b.newTranslator(b.tags[idx])
}

func (b *Bundle) newTranslator(tag language.Tag) *Translator {
	return &Translator{
		tag:      tag,
		messages: catalogs[tag],
		fallback: catalogs[b.def],
		printer:  message.NewPrinter(tag),
		logger:   b.logger,
	}
}

// Translator formats catalog strings for a single language.
type Translator struct {
	tag      language.Tag
	messages map[Key]string
	fallback map[Key]string
	printer  *message.Printer
	logger   *slog.Logger
}

// Tag returns the translator's language.
func (t *Translator) Tag() language.Tag {
	return t.tag
}

// T formats the string for key with args. A key missing from every catalog
// is returned as its dotted path.
func (t *Translator) T(key Key, args ...any) string {
	format, ok := t.messages[key]
	if !ok {
		format, ok = t.fallback[key]
	}
	if !ok {
		t.logger.Warn("translation key not found", "key", string(key), "lang", t.tag.String())
		return string(key)
	}
	if len(args) == 0 {
		return format
	}
	return t.printer.Sprintf(format, args...)
}

// Lookup resolves a dotted path such as "shoppingList.addItem". Unknown or
// partial paths return the path itself.
func (t *Translator) Lookup(path string) string {
	return t.T(Key(path))
}

// NewCollator returns a case-insensitive collator for tag.
func NewCollator(tag language.Tag) *collate.Collator {
	return collate.New(tag, collate.IgnoreCase)
}
