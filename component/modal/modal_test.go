package modal

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/a-h/templ"
	"github.com/aydenstechdungeon/dsfr/component/button"
	"github.com/aydenstechdungeon/dsfr/i18n"
	"golang.org/x/net/html"
	"golang.org/x/text/language"
)

func renderString(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var b strings.Builder
	if err := c.Render(ctx, &b); err != nil {
		t.Fatalf("render: %v", err)
	}
	return b.String()
}

func parse(t *testing.T, markup string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func byTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == tag }
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func footerButtons(t *testing.T, doc *html.Node) []*html.Node {
	t.Helper()
	lists := findAll(doc, func(n *html.Node) bool {
		class, _ := attr(n, "class")
		return n.Data == "ul" && strings.Contains(class, "fr-btns-group")
	})
	if len(lists) != 1 {
		t.Fatalf("Expected one footer list, got %d", len(lists))
	}
	var out []*html.Node
	for li := lists[0].FirstChild; li != nil; li = li.NextSibling {
		if li.FirstChild != nil {
			out = append(out, li.FirstChild)
		}
	}
	return out
}

func TestAllocateFormat(t *testing.T) {
	a := NewAllocator()

	if got := a.Allocate("Confirm"); got != "confirm-modal-0" {
		t.Errorf("Expected confirm-modal-0, got %s", got)
	}
	if got := a.Allocate("confirm"); got != "confirm-modal-1" {
		t.Errorf("Expected confirm-modal-1, got %s", got)
	}
	if got := a.Allocate("ÉditionProfil"); got != "éditionProfil-modal-2" {
		t.Errorf("Expected éditionProfil-modal-2, got %s", got)
	}
}

func TestAllocateUnique(t *testing.T) {
	a := NewAllocator()
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		id := a.Allocate("same")
		if seen[id] {
			t.Fatalf("Duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestAllocateUniqueConcurrent(t *testing.T) {
	a := NewAllocator()
	const workers, perWorker = 16, 50

	var mu sync.Mutex
	seen := make(map[string]bool)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				m := a.Create("Shared", false)
				mu.Lock()
				seen[m.ID()] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*perWorker {
		t.Errorf("Expected %d distinct ids, got %d", workers*perWorker, len(seen))
	}
	if len(a.Modals()) != workers*perWorker {
		t.Errorf("Expected %d registered modals, got %d", workers*perWorker, len(a.Modals()))
	}
}

func TestCreateUsesDefaultAllocator(t *testing.T) {
	first := Create("Global", false)
	second := Create("global", true)

	if first.ID() == second.ID() {
		t.Fatalf("Expected distinct ids, got %s twice", first.ID())
	}
	counter := func(m *Modal) int {
		t.Helper()
		id := m.ID()
		if !strings.HasPrefix(id, "global-modal-") {
			t.Fatalf("Expected global-modal- prefix, got %s", id)
		}
		n, err := strconv.Atoi(id[strings.LastIndex(id, "-")+1:])
		if err != nil {
			t.Fatalf("Expected numeric suffix in %s", id)
		}
		return n
	}
	if a, b := counter(first), counter(second); b != a+1 {
		t.Errorf("Expected consecutive counters, got %d and %d", a, b)
	}

	modals := DefaultAllocator.Modals()
	if len(modals) < 2 || modals[len(modals)-2] != first || modals[len(modals)-1] != second {
		t.Error("Expected both modals in the default registry")
	}
}

func TestTitleIDMatchesLabel(t *testing.T) {
	m := NewAllocator().Create("Profile", false)
	doc := parse(t, renderString(t, context.Background(), m.Component(Props{Title: templ.Raw("Profil")})))

	dialogs := findAll(doc, byTag("dialog"))
	if len(dialogs) != 1 {
		t.Fatalf("Expected one dialog, got %d", len(dialogs))
	}
	label, _ := attr(dialogs[0], "aria-labelledby")

	headings := findAll(doc, byTag("h1"))
	if len(headings) != 1 {
		t.Fatalf("Expected one heading, got %d", len(headings))
	}
	headingID, _ := attr(headings[0], "id")

	if label != headingID {
		t.Errorf("Expected aria-labelledby %q to equal heading id %q", label, headingID)
	}
	if label != "fr-modal-title-profile-modal-0" {
		t.Errorf("Unexpected title id %q", label)
	}
	if got := text(headings[0]); got != "Profil" {
		t.Errorf("Expected title text Profil, got %q", got)
	}
}

func TestDialogAttributes(t *testing.T) {
	doc := parse(t, renderString(t, context.Background(), Dialog("x-modal-3", Props{})))
	d := findAll(doc, byTag("dialog"))[0]

	checks := map[string]string{
		"id":                          "x-modal-3",
		"role":                        "dialog",
		"class":                       "fr-modal",
		"data-fr-concealing-backdrop": "true",
	}
	for k, want := range checks {
		if got, _ := attr(d, k); got != want {
			t.Errorf("Expected %s=%q, got %q", k, want, got)
		}
	}
	if _, ok := attr(d, "style"); ok {
		t.Error("Expected no style attribute by default")
	}

	closers := findAll(doc, func(n *html.Node) bool {
		class, _ := attr(n, "class")
		return n.Data == "button" && class == "fr-link--close fr-link"
	})
	if len(closers) != 1 {
		t.Fatalf("Expected one close button, got %d", len(closers))
	}
	if got, _ := attr(closers[0], "aria-controls"); got != "x-modal-3" {
		t.Errorf("Expected close button to control the dialog, got %q", got)
	}

	if len(findAll(doc, byTag("ul"))) != 0 {
		t.Error("Expected no footer without buttons")
	}
}

func TestDialogOptions(t *testing.T) {
	doc := parse(t, renderString(t, context.Background(), Dialog("y-modal-0", Props{
		Class:              "custom",
		Style:              "max-height: 80vh",
		ConcealingBackdrop: Bool(false),
		TopAnchor:          true,
		IconID:             "fr-icon-info-line",
		Children:           templ.Raw("<p>Body</p>"),
	})))
	d := findAll(doc, byTag("dialog"))[0]

	if got, _ := attr(d, "class"); got != "fr-modal fr-modal--top custom" {
		t.Errorf("Unexpected dialog class %q", got)
	}
	if got, _ := attr(d, "style"); got != "max-height: 80vh" {
		t.Errorf("Unexpected style %q", got)
	}
	if got, _ := attr(d, "data-fr-concealing-backdrop"); got != "false" {
		t.Errorf("Expected concealing backdrop false, got %q", got)
	}

	icons := findAll(doc, byTag("span"))
	if len(icons) != 1 {
		t.Fatalf("Expected one icon, got %d", len(icons))
	}
	if got, _ := attr(icons[0], "class"); got != "fr-icon-info-line fr-fi--lg" {
		t.Errorf("Unexpected icon class %q", got)
	}
	if icons[0].Parent.Data != "h1" {
		t.Errorf("Expected icon inside the title, got parent %s", icons[0].Parent.Data)
	}

	paragraphs := findAll(doc, byTag("p"))
	if len(paragraphs) != 1 || text(paragraphs[0]) != "Body" {
		t.Error("Expected body content to be rendered")
	}
}

func TestSizeClasses(t *testing.T) {
	tests := []struct {
		size Size
		want string
	}{
		{SizeSmall, "fr-col-12 fr-col-md-6 fr-col-lg-4"},
		{SizeMedium, "fr-col-12 fr-col-md-8 fr-col-lg-6"},
		{SizeLarge, "fr-col-12 fr-col-md-10 fr-col-lg-8"},
		{"", "fr-col-12 fr-col-md-8 fr-col-lg-6"},
		{"huge", "fr-col-12 fr-col-md-8 fr-col-lg-6"},
	}

	for _, tt := range tests {
		t.Run(string(tt.size), func(t *testing.T) {
			if got := SizeClasses(tt.size); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}

	markup := renderString(t, context.Background(), Dialog("z-modal-0", Props{Size: SizeLarge}))
	if !strings.Contains(markup, `class="fr-col-12 fr-col-md-10 fr-col-lg-8"`) {
		t.Error("Expected large column classes in markup")
	}
}

func TestFooterOrderAndPriority(t *testing.T) {
	props := Props{Buttons: ActionButtons{
		{Props: button.Props{Label: "A"}},
		{Props: button.Props{Label: "B"}},
		{Props: button.Props{Label: "C"}},
	}}
	doc := parse(t, renderString(t, context.Background(), Dialog("f-modal-0", props)))
	buttons := footerButtons(t, doc)

	if len(buttons) != 3 {
		t.Fatalf("Expected 3 footer buttons, got %d", len(buttons))
	}

	wantLabels := []string{"C", "B", "A"}
	wantClasses := []string{"fr-btn fr-btn--secondary", "fr-btn fr-btn--secondary", "fr-btn"}
	for i, b := range buttons {
		if got := text(b); got != wantLabels[i] {
			t.Errorf("Position %d: expected %s, got %s", i, wantLabels[i], got)
		}
		if got, _ := attr(b, "class"); got != wantClasses[i] {
			t.Errorf("Position %d: expected class %q, got %q", i, wantClasses[i], got)
		}
		if got, _ := attr(b, "aria-controls"); got != "f-modal-0" {
			t.Errorf("Position %d: expected aria-controls f-modal-0, got %q", i, got)
		}
	}
}

func TestFooterExplicitPriority(t *testing.T) {
	got := FooterButtons("p-modal-0", ActionButtons{
		{Props: button.Props{Label: "A", Priority: button.Tertiary}},
		{Props: button.Props{Label: "B", Priority: button.Primary}},
	})

	if got[0].Label != "B" || got[0].Priority != button.Primary {
		t.Errorf("Expected B to keep primary, got %+v", got[0])
	}
	if got[1].Label != "A" || got[1].Priority != button.Tertiary {
		t.Errorf("Expected A to keep tertiary, got %+v", got[1])
	}
}

func TestSingleButtonEqualsList(t *testing.T) {
	b := ActionButton{Props: button.Props{Label: "OK"}}

	single := renderString(t, context.Background(), Dialog("s-modal-0", Props{Buttons: b}))
	list := renderString(t, context.Background(), Dialog("s-modal-0", Props{Buttons: ActionButtons{b}}))

	if single != list {
		t.Errorf("Expected identical markup\nsingle: %s\nlist:   %s", single, list)
	}
	if !strings.Contains(single, `<li><button class="fr-btn" type="button" aria-controls="s-modal-0">OK</button></li>`) {
		t.Errorf("Unexpected footer markup: %s", single)
	}
}

func TestEmptyButtonListRendersNoFooter(t *testing.T) {
	markup := renderString(t, context.Background(), Dialog("e-modal-0", Props{Buttons: ActionButtons{}}))
	if strings.Contains(markup, "fr-modal__footer") {
		t.Error("Expected no footer for an empty list")
	}
}

func TestDoClosesModalFalse(t *testing.T) {
	props := Props{Buttons: ActionButtons{
		{Props: button.Props{Label: "Stay"}, DoClosesModal: Bool(false)},
		{Props: button.Props{Label: "Leave"}, DoClosesModal: Bool(true)},
	}}
	doc := parse(t, renderString(t, context.Background(), Dialog("c-modal-0", props)))
	buttons := footerButtons(t, doc)

	if _, ok := attr(buttons[1], "aria-controls"); ok {
		t.Error("Expected no aria-controls on a button that keeps the modal open")
	}
	if got, _ := attr(buttons[0], "aria-controls"); got != "c-modal-0" {
		t.Errorf("Expected aria-controls on the closing button, got %q", got)
	}
}

func TestFooterLinkButton(t *testing.T) {
	props := Props{Buttons: ActionButton{Props: button.Props{
		Label:  "Read more",
		Config: button.Link{Href: "/more", Attrs: templ.Attributes{"rel": "noopener"}},
	}}}
	doc := parse(t, renderString(t, context.Background(), Dialog("l-modal-0", props)))
	buttons := footerButtons(t, doc)

	if buttons[0].Data != "a" {
		t.Fatalf("Expected a link, got <%s>", buttons[0].Data)
	}
	if got, _ := attr(buttons[0], "aria-controls"); got != "l-modal-0" {
		t.Errorf("Expected aria-controls on link, got %q", got)
	}
	if got, _ := attr(buttons[0], "rel"); got != "noopener" {
		t.Errorf("Expected rel preserved, got %q", got)
	}
	if _, ok := attr(buttons[0], "type"); ok {
		t.Error("Expected no native button attributes on a link")
	}
}

func bodyChildren(doc *html.Node) []*html.Node {
	body := findAll(doc, byTag("body"))[0]
	var out []*html.Node
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

func TestOpenedByDefaultRendersHiddenTrigger(t *testing.T) {
	a := NewAllocator()

	closed := a.Create("Closed", false)
	nodes := bodyChildren(parse(t, renderString(t, context.Background(), closed.Component(Props{}))))
	if len(nodes) != 1 || nodes[0].Data != "dialog" {
		t.Fatalf("Expected only the dialog, got %d elements", len(nodes))
	}

	opened := a.Create("Welcome", true)
	nodes = bodyChildren(parse(t, renderString(t, context.Background(), opened.Component(Props{}))))
	if len(nodes) != 2 {
		t.Fatalf("Expected trigger and dialog, got %d elements", len(nodes))
	}
	trigger := nodes[0]
	if trigger.Data != "button" {
		t.Fatalf("Expected hidden trigger button first, got <%s>", trigger.Data)
	}
	if got, _ := attr(trigger, "class"); got != "fr-btn fr-hidden" {
		t.Errorf("Unexpected trigger class %q", got)
	}
	if got, _ := attr(trigger, "aria-controls"); got != opened.ID() {
		t.Errorf("Expected trigger to control %s, got %q", opened.ID(), got)
	}
	if got, _ := attr(trigger, "data-fr-opened"); got != "true" {
		t.Errorf("Expected data-fr-opened true, got %q", got)
	}
	if _, ok := attr(trigger, "onclick"); ok {
		t.Error("Expected no click handler on the trigger")
	}
}

func TestButtonProps(t *testing.T) {
	m := NewAllocator().Create("Confirm", false)
	p := m.ButtonProps()

	if p.OnClick != "" {
		t.Errorf("Expected no click handler, got %q", p.OnClick)
	}
	native, ok := p.Config.(button.Native)
	if !ok {
		t.Fatalf("Expected native button config, got %T", p.Config)
	}
	if native.Attrs["aria-controls"] != "confirm-modal-0" {
		t.Errorf("Unexpected aria-controls %v", native.Attrs["aria-controls"])
	}
	if native.Attrs["data-fr-opened"] != "false" {
		t.Errorf("Unexpected data-fr-opened %v", native.Attrs["data-fr-opened"])
	}
}

func TestNames(t *testing.T) {
	m := NewAllocator().Create("confirmDelete", false)
	if m.DisplayName() != "ConfirmDeleteModal" {
		t.Errorf("Expected ConfirmDeleteModal, got %s", m.DisplayName())
	}
	if m.ButtonPropsName() != "confirmDeleteModalButtonProps" {
		t.Errorf("Expected confirmDeleteModalButtonProps, got %s", m.ButtonPropsName())
	}
	if m.Name() != "confirmDelete" || m.OpenedByDefault() {
		t.Error("Unexpected name or opened state")
	}
}

func TestAllocatorRegistry(t *testing.T) {
	a := NewAllocator()
	first := a.Create("One", false)
	second := a.Create("Two", true)

	modals := a.Modals()
	if len(modals) != 2 || modals[0] != first || modals[1] != second {
		t.Errorf("Expected modals in creation order, got %v", modals)
	}
}

func TestCloseLabelLocale(t *testing.T) {
	tests := []struct {
		ctx  context.Context
		want string
	}{
		{context.Background(), "Fermer"},
		{i18n.WithLang(context.Background(), language.Spanish), "Cerrar"},
		{i18n.WithLang(context.Background(), language.English), "Close"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			doc := parse(t, renderString(t, tt.ctx, Dialog("i-modal-0", Props{})))
			closers := findAll(doc, func(n *html.Node) bool {
				class, _ := attr(n, "class")
				return n.Data == "button" && strings.Contains(class, "fr-link--close")
			})
			if got := text(closers[0]); got != tt.want {
				t.Errorf("Expected label %q, got %q", tt.want, got)
			}
			if got, _ := attr(closers[0], "title"); got != tt.want {
				t.Errorf("Expected title %q, got %q", tt.want, got)
			}
		})
	}
}

func TestAddTranslations(t *testing.T) {
	if err := AddTranslations("it", i18n.Messages{"close": "Chiudi"}); err != nil {
		t.Fatalf("AddTranslations: %v", err)
	}
	markup := renderString(t, i18n.WithLang(context.Background(), language.Italian), Dialog("t-modal-0", Props{}))
	if !strings.Contains(markup, ">Chiudi</button>") {
		t.Errorf("Expected Italian close label, got %s", markup)
	}
}

func TestRenderIdempotent(t *testing.T) {
	m := NewAllocator().Create("Again", true)
	c := m.Component(Props{Title: templ.Raw("T"), Buttons: ActionButton{Props: button.Props{Label: "OK"}}})

	first := renderString(t, context.Background(), c)
	second := renderString(t, context.Background(), c)
	if first != second {
		t.Error("Expected identical markup across renders")
	}
	if m.ID() != "again-modal-0" {
		t.Errorf("Expected rendering not to advance the counter, got %s", m.ID())
	}
}

func ExampleAllocator_Create() {
	a := NewAllocator()
	m := a.Create("Confirm", false)
	fmt.Println(m.ID(), m.DisplayName(), TitleID(m.ID()))
	// Output: confirm-modal-0 ConfirmModal fr-modal-title-confirm-modal-0
}
