// Package i18n provides per-component message catalogs for the DSFR components.
//
// French is the default language of every component. Other languages are
// registered at runtime, either from code (Component.Add) or from a YAML
// file (LoadFile). The active language travels in the render context.
package i18n

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// DefaultLang is the language used when nothing else matches.
var DefaultLang = language.French

// Messages maps a message key to its text in one language.
type Messages map[string]string

type langKey struct{}

// WithLang returns a copy of ctx carrying the given languages, most
// preferred first.
func WithLang(ctx context.Context, tags ...language.Tag) context.Context {
	return context.WithValue(ctx, langKey{}, tags)
}

// LangsFromContext returns the languages stored in ctx, or DefaultLang alone.
func LangsFromContext(ctx context.Context) []language.Tag {
	if ctx != nil {
		if tags, ok := ctx.Value(langKey{}).([]language.Tag); ok && len(tags) > 0 {
			return tags
		}
	}
	return []language.Tag{DefaultLang}
}

// LangFromContext returns the preferred language stored in ctx, or DefaultLang.
func LangFromContext(ctx context.Context) language.Tag {
	return LangsFromContext(ctx)[0]
}

// Component is the message catalog of a single component.
type Component struct {
	name string

	mu      sync.RWMutex
	langs   []language.Tag
	builder *catalog.Builder
	matcher language.Matcher
}

// NewComponent creates a catalog for the named component seeded with its
// French messages, and registers it so LoadFile can find it by name.
func NewComponent(name string, frMessages Messages) *Component {
	c := &Component{
		name:    name,
		builder: catalog.NewBuilder(catalog.Fallback(DefaultLang)),
	}
	if err := c.AddTag(DefaultLang, frMessages); err != nil {
		panic(fmt.Sprintf("i18n: %s: %v", name, err))
	}
	register(c)
	return c
}

// Name returns the component name.
func (c *Component) Name() string {
	return c.name
}

// Add registers messages for a BCP 47 language such as "en" or "es".
func (c *Component) Add(lang string, msgs Messages) error {
	tag, err := language.Parse(lang)
	if err != nil {
		return fmt.Errorf("i18n: %s: invalid language %q: %w", c.name, lang, err)
	}
	return c.AddTag(tag, msgs)
}

// AddTag registers messages for a language tag. Messages for an already
// registered language replace the previous text key by key. Texts are stored
// verbatim; a % is not a formatting verb.
func (c *Component) AddTag(tag language.Tag, msgs Messages) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(msgs))
	for k := range msgs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := c.builder.SetString(tag, k, strings.ReplaceAll(msgs[k], "%", "%%")); err != nil {
			return fmt.Errorf("i18n: %s: set %q for %s: %w", c.name, k, tag, err)
		}
	}

	for _, t := range c.langs {
		if t == tag {
			return nil
		}
	}
	c.langs = append(c.langs, tag)
	c.matcher = language.NewMatcher(c.langs)
	return nil
}

// Langs returns the registered languages, default language first.
func (c *Component) Langs() []language.Tag {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]language.Tag, len(c.langs))
	copy(out, c.langs)
	return out
}

// Match returns the registered language closest to the preference list.
func (c *Component) Match(tags ...language.Tag) language.Tag {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No {
		return c.langs[0]
	}
	return c.langs[idx]
}

// T returns the text of key in the language carried by ctx.
// Unknown keys are returned as is.
func (c *Component) T(ctx context.Context, key string) string {
	tag := c.Match(LangsFromContext(ctx)...)

	c.mu.RLock()
	defer c.mu.RUnlock()
	return message.NewPrinter(tag, message.Catalog(c.builder)).Sprintf(key)
}
