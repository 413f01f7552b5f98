// Package layout provides the HTML page shell used to preview components.
package layout

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// CSS returns a link tag for a stylesheet.
func CSS(href string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<link rel="stylesheet" href="%s">`, templ.EscapeString(href))
		return err
	})
}

// Script returns a deferred script tag, as the DSFR runtime expects.
func Script(src string, module bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		typ := "nomodule"
		if module {
			typ = `type="module"`
		}
		_, err := fmt.Fprintf(w, `<script %s src="%s" defer></script>`, typ, templ.EscapeString(src))
		return err
	})
}

// Meta returns a meta tag.
func Meta(name, content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<meta name="%s" content="%s">`, templ.EscapeString(name), templ.EscapeString(content))
		return err
	})
}

// Title returns a title tag.
func Title(title string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<title>%s</title>`, templ.EscapeString(title))
		return err
	})
}

// Group renders components one after the other.
func Group(components ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, c := range components {
			if c == nil {
				continue
			}
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// Page returns a complete HTML page.
func Page(lang string, head, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="%s" data-fr-scheme="system"><head><meta charset="utf-8">`, templ.EscapeString(lang)); err != nil {
			return err
		}
		if head != nil {
			if err := head.Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</head><body>`); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

// ErrorBoundary catches rendering errors from content and renders a fallback UI instead
func ErrorBoundary(content templ.Component, fallback func(error) templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		err := content.Render(ctx, &buf)
		if err != nil {
			if fallback != nil {
				return fallback(err).Render(ctx, w)
			}
			return err
		}
		_, writeErr := io.Copy(w, &buf)
		return writeErr
	})
}
