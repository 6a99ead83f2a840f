package domain

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Catalog is the immutable set of services the desk offers. It is
// built once at startup; prefixes are derived from the service name
// initials at construction time, not per request.
type Catalog struct {
	names    []string
	prefixes map[string]string
}

func NewCatalog(names []string) *Catalog {
	c := &Catalog{
		prefixes: make(map[string]string, len(names)),
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := c.prefixes[name]; ok {
			continue
		}
		c.names = append(c.names, name)
		c.prefixes[name] = Prefix(name)
	}
	return c
}

// Prefix derives the ticket-number prefix from a service name: the
// first letter of each word, uppercased. "PELAYANAN UMUM" -> "PU".
// Decoded rune by rune so multibyte initials stay valid UTF-8.
func Prefix(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
	}
	if b.Len() == 0 {
		return "Q"
	}
	return b.String()
}

func (c *Catalog) Valid(serviceType string) bool {
	_, ok := c.prefixes[serviceType]
	return ok
}

func (c *Catalog) PrefixFor(serviceType string) string {
	if p, ok := c.prefixes[serviceType]; ok {
		return p
	}
	return "Q"
}

func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// FormatQueueNumber renders the external ticket identifier,
// zero-padding the sequence to at least three digits.
func FormatQueueNumber(prefix string, seq int64) string {
	return fmt.Sprintf("%s-%03d", prefix, seq)
}
