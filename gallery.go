package dsfr

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/aydenstechdungeon/dsfr/component/button"
	"github.com/aydenstechdungeon/dsfr/component/modal"
)

// Demo is a modal shown in the gallery together with its trigger.
type Demo struct {
	Modal *modal.Modal
	// Trigger is the label of the button opening the modal. Modals opened by
	// default have no visible trigger.
	Trigger string
	Props   modal.Props
}

// Demos creates the gallery modals on alloc.
func Demos(alloc *modal.Allocator) []Demo {
	return []Demo{
		{
			Modal:   alloc.Create("Confirm", false),
			Trigger: "Supprimer le dossier",
			Props: modal.Props{
				Size:     modal.SizeSmall,
				IconID:   "fr-icon-warning-line",
				Title:    templ.Raw("Supprimer le dossier ?"),
				Children: templ.Raw("<p>Cette action est définitive.</p>"),
				Buttons: modal.ActionButtons{
					{Props: button.Props{Label: "Supprimer", Config: button.Native{Type: "submit"}}},
					{Props: button.Props{Label: "Annuler"}},
				},
			},
		},
		{
			Modal:   alloc.Create("Terms", false),
			Trigger: "Conditions d'utilisation",
			Props: modal.Props{
				Size:      modal.SizeLarge,
				TopAnchor: true,
				Title:     templ.Raw("Conditions d'utilisation"),
				Children:  templ.Raw("<p>Les présentes conditions s'appliquent au service.</p>"),
				Buttons: modal.ActionButton{
					Props: button.Props{
						Label:  "Lire la version complète",
						Config: button.Link{Href: "/cgu", Target: "_blank"},
					},
					DoClosesModal: modal.Bool(false),
				},
			},
		},
		{
			Modal: alloc.Create("Welcome", true),
			Props: modal.Props{
				ConcealingBackdrop: modal.Bool(false),
				Title:              templ.Raw("Bienvenue"),
				Children:           templ.Raw("<p>Découvrez les composants du système de design.</p>"),
			},
		},
	}
}

// Gallery renders every demo: a heading, its trigger and the modal.
func Gallery(demos []Demo) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<main class="fr-container fr-my-6w">`); err != nil {
			return err
		}
		for _, d := range demos {
			if _, err := io.WriteString(w, `<section class="fr-mb-4w"><h2>`+templ.EscapeString(d.Modal.DisplayName())+`</h2>`); err != nil {
				return err
			}
			if d.Trigger != "" {
				trigger := d.Modal.ButtonProps()
				trigger.Label = d.Trigger
				if err := button.Button(trigger).Render(ctx, w); err != nil {
					return err
				}
			}
			if err := d.Modal.Component(d.Props).Render(ctx, w); err != nil {
				return err
			}
			if _, err := io.WriteString(w, `</section>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main>`)
		return err
	})
}
