package modal

import (
	"strconv"
	"sync"
	"sync/atomic"
	"unicode"
	"unicode/utf8"
)

// Allocator hands out modal identifiers of the form {name}-modal-{n}.
// The counter starts at 0 and only moves forward, so two calls on the same
// allocator never return the same identifier.
type Allocator struct {
	counter atomic.Uint64

	mu     sync.Mutex
	modals []*Modal
}

// NewAllocator returns an allocator whose first identifier ends in -0.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// DefaultAllocator backs the package-level Create.
var DefaultAllocator = NewAllocator()

// Allocate returns the next identifier for name.
func (a *Allocator) Allocate(name string) string {
	n := a.counter.Add(1) - 1
	return uncapitalize(name) + "-modal-" + strconv.FormatUint(n, 10)
}

// Modals returns the modals created through this allocator, in creation order.
func (a *Allocator) Modals() []*Modal {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*Modal, len(a.modals))
	copy(out, a.modals)
	return out
}

// TitleID returns the id of the title heading of the dialog modalID.
// The dialog's aria-labelledby uses the same value.
func TitleID(modalID string) string {
	return "fr-modal-title-" + modalID
}

func uncapitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
