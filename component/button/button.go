// Package button provides the DSFR button component.
package button

import (
	"context"
	"fmt"
	"io"
	"maps"

	"github.com/a-h/templ"
	"github.com/aydenstechdungeon/dsfr/fr"
)

// Priority defines the visual emphasis of a button
type Priority string

const (
	Primary           Priority = "primary"
	Secondary         Priority = "secondary"
	Tertiary          Priority = "tertiary"
	TertiaryNoOutline Priority = "tertiary no outline"
)

// Size defines the size of a button
type Size string

const (
	Small  Size = "small"
	Medium Size = "medium"
	Large  Size = "large"
)

// IconPosition places the icon relative to the label
type IconPosition string

const (
	IconLeft  IconPosition = "left"
	IconRight IconPosition = "right"
)

// Config is the element a button renders to. It is either a Link or a Native
// button; a Props value holds exactly one of them.
type Config interface {
	// WithAttr returns a copy of the configuration with the attribute set.
	WithAttr(name string, value any) Config
	// Attributes returns the passthrough attributes.
	Attributes() templ.Attributes
	isConfig()
}

// Link renders the button as an anchor.
type Link struct {
	// Href is the link target
	Href string
	// Target for links (_blank, etc.)
	Target string
	// Attrs adds additional HTML attributes
	Attrs templ.Attributes
}

// WithAttr implements Config.
func (l Link) WithAttr(name string, value any) Config {
	l.Attrs = withAttr(l.Attrs, name, value)
	return l
}

// Attributes implements Config.
func (l Link) Attributes() templ.Attributes { return l.Attrs }

func (Link) isConfig() {}

// Native renders the button as a <button> element.
type Native struct {
	// Type is the button type (button, submit, reset); defaults to button
	Type string
	// Disabled disables the button
	Disabled bool
	// Attrs adds additional HTML attributes
	Attrs templ.Attributes
}

// WithAttr implements Config.
func (n Native) WithAttr(name string, value any) Config {
	n.Attrs = withAttr(n.Attrs, name, value)
	return n
}

// Attributes implements Config.
func (n Native) Attributes() templ.Attributes { return n.Attrs }

func (Native) isConfig() {}

func withAttr(attrs templ.Attributes, name string, value any) templ.Attributes {
	out := make(templ.Attributes, len(attrs)+1)
	maps.Copy(out, attrs)
	out[name] = value
	return out
}

// Props defines the properties for a Button component
type Props struct {
	// Label is the escaped text content, used when Children is nil
	Label string
	// Children replaces Label with arbitrary content
	Children templ.Component
	// Priority defines the emphasis; empty means primary
	Priority Priority
	// Size defines the button size; empty means medium
	Size Size
	// IconID is a DSFR or Remix icon class
	IconID string
	// IconPosition places the icon; empty means left
	IconPosition IconPosition
	// Title is the native title attribute
	Title string
	// ID is the element ID
	ID string
	// Class adds additional CSS classes
	Class string
	// OnClick is an inline click handler; empty renders none
	OnClick string
	// Config selects the link or native element; nil means Native{}
	Config Config
}

// WithAttr returns a copy of p whose configuration carries the attribute.
func (p Props) WithAttr(name string, value any) Props {
	p.Config = p.config().WithAttr(name, value)
	return p
}

func (p Props) config() Config {
	if p.Config == nil {
		return Native{}
	}
	return p.Config
}

// Classes returns the CSS classes for a button based on props
func Classes(p Props) string {
	var priority string
	switch p.Priority {
	case Secondary:
		priority = "fr-btn--secondary"
	case Tertiary:
		priority = "fr-btn--tertiary"
	case TertiaryNoOutline:
		priority = "fr-btn--tertiary-no-outline"
	}

	var size string
	switch p.Size {
	case Small:
		size = "fr-btn--sm"
	case Large:
		size = "fr-btn--lg"
	}

	var icon string
	if p.IconID != "" {
		if p.IconPosition == IconRight {
			icon = fr.Cx(p.IconID, "fr-btn--icon-right")
		} else {
			icon = fr.Cx(p.IconID, "fr-btn--icon-left")
		}
	}

	return fr.Cx("fr-btn", priority, size, icon, p.Class)
}

// Button renders a DSFR button.
func Button(p Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var tag string
		switch cfg := p.config().(type) {
		case Link:
			tag = "a"
			if _, err := io.WriteString(w, "<a"); err != nil {
				return err
			}
			if err := writeCommon(w, p); err != nil {
				return err
			}
			if cfg.Href != "" {
				if err := fr.Attr(w, "href", cfg.Href); err != nil {
					return err
				}
			}
			if cfg.Target != "" {
				if err := fr.Attr(w, "target", cfg.Target); err != nil {
					return err
				}
			}
			if err := fr.Attrs(w, cfg.Attrs); err != nil {
				return err
			}
		case Native:
			tag = "button"
			if _, err := io.WriteString(w, "<button"); err != nil {
				return err
			}
			if err := writeCommon(w, p); err != nil {
				return err
			}
			typ := cfg.Type
			if typ == "" {
				typ = "button"
			}
			if err := fr.Attr(w, "type", typ); err != nil {
				return err
			}
			if cfg.Disabled {
				if _, err := io.WriteString(w, " disabled"); err != nil {
					return err
				}
			}
			if err := fr.Attrs(w, cfg.Attrs); err != nil {
				return err
			}
		default:
			return fmt.Errorf("button: unsupported config %T", cfg)
		}

		if _, err := io.WriteString(w, ">"); err != nil {
			return err
		}
		if p.Children != nil {
			if err := p.Children.Render(ctx, w); err != nil {
				return err
			}
		} else if _, err := io.WriteString(w, templ.EscapeString(p.Label)); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "</%s>", tag)
		return err
	})
}

func writeCommon(w io.Writer, p Props) error {
	if p.ID != "" {
		if err := fr.Attr(w, "id", p.ID); err != nil {
			return err
		}
	}
	if err := fr.Attr(w, "class", Classes(p)); err != nil {
		return err
	}
	if p.Title != "" {
		if err := fr.Attr(w, "title", p.Title); err != nil {
			return err
		}
	}
	if p.OnClick != "" {
		if err := fr.Attr(w, "onclick", p.OnClick); err != nil {
			return err
		}
	}
	return nil
}
