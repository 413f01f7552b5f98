package fr

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/a-h/templ"
)

// Attr writes a single escaped attribute, preceded by a space.
func Attr(w io.Writer, name, value string) error {
	_, err := fmt.Fprintf(w, ` %s="%s"`, name, templ.EscapeString(value))
	return err
}

// Attrs writes passthrough attributes in key order. A true bool renders the
// bare attribute name, a false bool or nil value omits it.
func Attrs(w io.Writer, attrs templ.Attributes) error {
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		var err error
		switch v := attrs[k].(type) {
		case nil:
		case bool:
			if v {
				_, err = fmt.Fprintf(w, " %s", templ.EscapeString(k))
			}
		case string:
			err = Attr(w, templ.EscapeString(k), v)
		default:
			err = Attr(w, templ.EscapeString(k), fmt.Sprint(v))
		}
		if err != nil {
			return err
		}
	}
	return nil
}
