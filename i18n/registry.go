package i18n

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// ErrUnknownComponent is returned when a translation file names a component
// that was never created.
var ErrUnknownComponent = errors.New("i18n: unknown component")

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*Component)
)

func register(c *Component) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[c.name] = c
}

// Lookup returns the registered component catalog with the given name.
func Lookup(name string) (*Component, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	c, ok := registry[name]
	return c, ok
}

// Components returns the names of all registered components, sorted.
func Components() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// File is the layout of a translation file:
//
//	Modal:
//	  de:
//	    close: Schließen
type File map[string]map[string]Messages

// Load applies every translation in f to the registered components.
func Load(f File) error {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		c, ok := Lookup(name)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownComponent, name)
		}
		for lang, msgs := range f[name] {
			if err := c.Add(lang, msgs); err != nil {
				return err
			}
		}
	}
	return nil
}

// LoadFile reads a YAML translation file and applies it with Load.
func LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("i18n: read %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("i18n: parse %s: %w", path, err)
	}
	return Load(f)
}

// ParseLang parses a language tag, falling back to DefaultLang.
func ParseLang(s string) language.Tag {
	if s == "" {
		return DefaultLang
	}
	tag, err := language.Parse(s)
	if err != nil {
		return DefaultLang
	}
	return tag
}

// FromAcceptLanguage returns the languages of an Accept-Language header
// value by decreasing preference, or fallback alone when there are none.
func FromAcceptLanguage(header string, fallback language.Tag) []language.Tag {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return []language.Tag{fallback}
	}
	return tags
}
