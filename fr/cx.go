// Package fr holds the DSFR class-name helpers shared by the components.
package fr

import "strings"

// Cx joins class tokens with a single space, skipping empty tokens.
// It mirrors the conditional class composition used by the DSFR markup:
// callers pass "" for a token that should not apply.
func Cx(classes ...string) string {
	var b strings.Builder
	for _, c := range classes {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c)
	}
	return b.String()
}

// If returns class when cond holds and "" otherwise.
func If(cond bool, class string) string {
	if cond {
		return class
	}
	return ""
}
