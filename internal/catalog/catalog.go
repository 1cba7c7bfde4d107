// Package catalog holds the fixed display strings of the occasion engine.
//
// Strings are kept in embedded go-i18n message files so the literal markup
// (**bold**, bullets, emoji) lives in one place and templated values are
// rendered with text/template semantics.
package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-occasions/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Data carries template values for a message.
type Data map[string]any

// Catalog resolves message ids into display text.
type Catalog struct {
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	languages []string
}

// New loads every embedded locale and selects lang (falling back to English).
func New(lang string) (*Catalog, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLocalesAccess, err)
	}

	var detected []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			return nil, fmt.Errorf("%s %s: %w", config.ErrLocaleLoad, name, err)
		}
		detected = append(detected, langCode)

		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}

	if lang == "" {
		lang = config.DefaultLanguage
	}

	return &Catalog{
		bundle:    bundle,
		localizer: i18n.NewLocalizer(bundle, lang, config.DefaultLanguage),
		languages: detected,
	}, nil
}

// Languages returns the locale codes found in the embedded bundle.
func (c *Catalog) Languages() []string {
	out := make([]string, len(c.languages))
	copy(out, c.languages)
	return out
}

// Require verifies that every id resolves. It is meant for construction time.
func (c *Catalog) Require(ids ...string) error {
	var errs []error
	for _, id := range ids {
		if _, err := c.localizer.Localize(&i18n.LocalizeConfig{MessageID: id}); err != nil {
			errs = append(errs, fmt.Errorf("%s %q: %w", config.ErrLocaleMissing, id, err))
		}
	}
	return errors.Join(errs...)
}

// Text renders the message id with data. Lookups never fail: an unknown id
// is returned as-is so live queries keep producing output.
func (c *Catalog) Text(id string, data Data) string {
	if c == nil || c.localizer == nil {
		return id
	}
	msg, err := c.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: map[string]any(data),
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, id,
			config.LogKeyError, err,
		)
		return id
	}
	return msg
}
