// Package html parses fetched pages and answers CSS selector queries
// against them. It knows nothing about quotes; callers supply selectors.
package html

import (
	"fmt"

	"github.com/andybalholm/cascadia"
)

// Selector is a compiled CSS selector.
type Selector struct {
	raw string
	sel cascadia.Selector
}

// Compile compiles a CSS selector. Invalid selectors are rejected here so
// configuration mistakes surface before the first request.
func Compile(raw string) (Selector, error) {
	sel, err := cascadia.Compile(raw)
	if err != nil {
		return Selector{}, fmt.Errorf("compiling selector %q: %w", raw, err)
	}
	return Selector{raw: raw, sel: sel}, nil
}

// String returns the selector source.
func (s Selector) String() string {
	return s.raw
}
