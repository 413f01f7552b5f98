package modal

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/aydenstechdungeon/dsfr/component/button"
)

// Modal is a dialog bound to an identifier. Buttons built from ButtonProps
// open it through aria-controls, so the trigger and the dialog can be placed
// anywhere in the page.
type Modal struct {
	id              string
	name            string
	openedByDefault bool
}

// Create allocates a modal on the DefaultAllocator.
func Create(name string, openedByDefault bool) *Modal {
	return DefaultAllocator.Create(name, openedByDefault)
}

// Create allocates an identifier for name and returns the modal bound to it.
func (a *Allocator) Create(name string, openedByDefault bool) *Modal {
	m := &Modal{
		id:              a.Allocate(name),
		name:            name,
		openedByDefault: openedByDefault,
	}

	a.mu.Lock()
	a.modals = append(a.modals, m)
	a.mu.Unlock()

	return m
}

// ID returns the dialog element id.
func (m *Modal) ID() string { return m.id }

// Name returns the name the modal was created with.
func (m *Modal) Name() string { return m.name }

// OpenedByDefault reports whether the dialog opens itself on page load.
func (m *Modal) OpenedByDefault() bool { return m.openedByDefault }

// DisplayName is the component name, e.g. "ConfirmModal" for "confirm".
func (m *Modal) DisplayName() string {
	return capitalize(m.name) + "Modal"
}

// ButtonPropsName is the conventional name of the trigger props,
// e.g. "confirmModalButtonProps" for "Confirm".
func (m *Modal) ButtonPropsName() string {
	return uncapitalize(m.name) + "ModalButtonProps"
}

// ButtonProps returns the props of a button opening the modal. No click
// handler is set: the DSFR runtime opens the dialog from aria-controls, which
// also works for statically rendered pages.
func (m *Modal) ButtonProps() button.Props {
	return button.Props{
		Config: button.Native{
			Attrs: templ.Attributes{
				"aria-controls":  m.id,
				"data-fr-opened": strconv.FormatBool(m.openedByDefault),
			},
		},
	}
}

// Component renders the dialog. A modal opened by default also renders a
// hidden trigger so it can open itself without a visible button.
func (m *Modal) Component(props Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if m.openedByDefault {
			trigger := m.ButtonProps()
			trigger.Class = "fr-hidden"
			trigger.Label = " "
			if err := button.Button(trigger).Render(ctx, w); err != nil {
				return err
			}
		}
		return Dialog(m.id, props).Render(ctx, w)
	})
}
