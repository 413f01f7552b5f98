// Package modal provides the DSFR modal dialog and the factory that binds a
// dialog to the buttons opening it.
package modal

import (
	"context"
	"io"
	"slices"
	"strconv"

	"github.com/a-h/templ"
	"github.com/aydenstechdungeon/dsfr/component/button"
	"github.com/aydenstechdungeon/dsfr/fr"
	"github.com/aydenstechdungeon/dsfr/i18n"
)

// Size defines the width of a modal
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// SizeClasses returns the grid column classes for a modal size.
// Unknown sizes fall back to medium.
func SizeClasses(size Size) string {
	switch size {
	case SizeSmall:
		return fr.Cx("fr-col-12", "fr-col-md-6", "fr-col-lg-4")
	case SizeLarge:
		return fr.Cx("fr-col-12", "fr-col-md-10", "fr-col-lg-8")
	default:
		return fr.Cx("fr-col-12", "fr-col-md-8", "fr-col-lg-6")
	}
}

// ActionButton is a button of the modal footer.
type ActionButton struct {
	button.Props
	// DoClosesModal links the button to the modal so activating it closes
	// the dialog. nil means true.
	DoClosesModal *bool
}

func (b ActionButton) closesModal() bool {
	return b.DoClosesModal == nil || *b.DoClosesModal
}

// ButtonSet is either a single ActionButton or an ActionButtons list.
type ButtonSet interface {
	buttons() []ActionButton
}

func (b ActionButton) buttons() []ActionButton { return []ActionButton{b} }

// ActionButtons is an ordered list of footer buttons. The first one is the
// primary action.
type ActionButtons []ActionButton

func (l ActionButtons) buttons() []ActionButton { return l }

// Props defines the properties for a modal dialog
type Props struct {
	// Class is additional CSS classes
	Class string
	// Style is an inline style
	Style string
	// Size controls the modal width; defaults to medium
	Size Size
	// Title is the content of the title heading
	Title templ.Component
	// Children is the body of the modal
	Children templ.Component
	// ConcealingBackdrop intercepts backdrop clicks and escape instead of
	// closing the dialog. nil means true.
	ConcealingBackdrop *bool
	// TopAnchor anchors the dialog to the top of the viewport
	TopAnchor bool
	// IconID renders an icon before the title
	IconID string
	// Buttons fills the footer; nil renders no footer
	Buttons ButtonSet
}

// Bool returns a pointer to v, for the optional boolean props.
func Bool(v bool) *bool {
	return &v
}

var translations = i18n.NewComponent("Modal", i18n.Messages{
	"close": "Fermer",
})

func init() {
	must(AddTranslations("en", i18n.Messages{"close": "Close"}))
	must(AddTranslations("es", i18n.Messages{"close": "Cerrar"}))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// AddTranslations registers the modal messages for another language.
func AddTranslations(lang string, msgs i18n.Messages) error {
	return translations.Add(lang, msgs)
}

// FooterButtons returns the footer buttons of a modal in rendering order:
// reversed, with the caller's first button defaulting to primary and the
// others to secondary, and aria-controls set on every closing button.
func FooterButtons(modalID string, set ButtonSet) []button.Props {
	if set == nil {
		return nil
	}
	in := set.buttons()
	out := make([]button.Props, 0, len(in))
	for i, b := range in {
		p := b.Props
		if p.Priority == "" {
			if i == 0 {
				p.Priority = button.Primary
			} else {
				p.Priority = button.Secondary
			}
		}
		if b.closesModal() {
			p = p.WithAttr("aria-controls", modalID)
		}
		out = append(out, p)
	}
	slices.Reverse(out)
	return out
}

// Dialog renders the modal dialog with the given identifier.
func Dialog(id string, props Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		titleID := TitleID(id)
		concealing := props.ConcealingBackdrop == nil || *props.ConcealingBackdrop

		if _, err := io.WriteString(w, "<dialog"); err != nil {
			return err
		}
		if err := fr.Attr(w, "aria-labelledby", titleID); err != nil {
			return err
		}
		if err := fr.Attr(w, "role", "dialog"); err != nil {
			return err
		}
		if err := fr.Attr(w, "id", id); err != nil {
			return err
		}
		if err := fr.Attr(w, "class", fr.Cx("fr-modal", fr.If(props.TopAnchor, "fr-modal--top"), props.Class)); err != nil {
			return err
		}
		if props.Style != "" {
			if err := fr.Attr(w, "style", props.Style); err != nil {
				return err
			}
		}
		if err := fr.Attr(w, "data-fr-concealing-backdrop", strconv.FormatBool(concealing)); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `><div class="fr-container fr-container--fluid fr-container-md"><div class="fr-grid-row fr-grid-row--center"><div`); err != nil {
			return err
		}
		if err := fr.Attr(w, "class", SizeClasses(props.Size)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `><div class="fr-modal__body"><div class="fr-modal__header"><button class="fr-link--close fr-link"`); err != nil {
			return err
		}
		closeLabel := translations.T(ctx, "close")
		if err := fr.Attr(w, "title", closeLabel); err != nil {
			return err
		}
		if err := fr.Attr(w, "aria-controls", id); err != nil {
			return err
		}
		if _, err := io.WriteString(w, ">"+templ.EscapeString(closeLabel)+`</button></div><div class="fr-modal__content"><h1`); err != nil {
			return err
		}
		if err := fr.Attr(w, "id", titleID); err != nil {
			return err
		}
		if _, err := io.WriteString(w, ` class="fr-modal__title">`); err != nil {
			return err
		}
		if props.IconID != "" {
			if _, err := io.WriteString(w, "<span"); err != nil {
				return err
			}
			if err := fr.Attr(w, "class", fr.Cx(props.IconID, "fr-fi--lg")); err != nil {
				return err
			}
			if _, err := io.WriteString(w, "></span>"); err != nil {
				return err
			}
		}
		if err := renderOptional(ctx, w, props.Title); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "</h1>"); err != nil {
			return err
		}
		if err := renderOptional(ctx, w, props.Children); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "</div>"); err != nil {
			return err
		}

		if buttons := FooterButtons(id, props.Buttons); len(buttons) > 0 {
			if _, err := io.WriteString(w, `<div class="fr-modal__footer"><ul class="fr-btns-group fr-btns-group--right fr-btns-group--inline-reverse fr-btns-group--inline-lg fr-btns-group--icon-left">`); err != nil {
				return err
			}
			for _, b := range buttons {
				if _, err := io.WriteString(w, "<li>"); err != nil {
					return err
				}
				if err := button.Button(b).Render(ctx, w); err != nil {
					return err
				}
				if _, err := io.WriteString(w, "</li>"); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "</ul></div>"); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, "</div></div></div></div></dialog>")
		return err
	})
}

func renderOptional(ctx context.Context, w io.Writer, c templ.Component) error {
	if c == nil {
		return nil
	}
	return c.Render(ctx, w)
}
