package query

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Token is a canonical filter keyword understood by the catalog
type Token string

// Canonical filter tokens
const (
	TokenCircle    Token = "circle"
	TokenTriangle  Token = "triangle"
	TokenSquare    Token = "square"
	TokenHexagon   Token = "hexagon"
	TokenAvailable Token = "available"
)

// synonyms maps a lowercase English or German term onto its canonical token.
// Lookups are exact, there is no fuzzy matching.
var synonyms = map[string]Token{
	"circle":  TokenCircle,
	"circles": TokenCircle,
	"kreis":   TokenCircle,
	"kreise":  TokenCircle,

	"triangle":  TokenTriangle,
	"triangles": TokenTriangle,
	"dreieck":   TokenTriangle,
	"dreiecke":  TokenTriangle,

	"square":   TokenSquare,
	"squares":  TokenSquare,
	"quadrat":  TokenSquare,
	"quadrate": TokenSquare,
	"viereck":  TokenSquare,
	"vierecke": TokenSquare,

	"hexagon":   TokenHexagon,
	"hexagons":  TokenHexagon,
	"sechseck":  TokenHexagon,
	"sechsecke": TokenHexagon,

	"available":  TokenAvailable,
	"verfügbar":  TokenAvailable,
	"verfuegbar": TokenAvailable,
	"lieferbar":  TokenAvailable,
	"in stock":   TokenAvailable,
}

// Filter is a normalized filter: canonical tokens in the order the caller
// named them. An empty Filter means "no filter".
type Filter []Token

// IsEmpty reports whether no usable filter is present
func (f Filter) IsEmpty() bool {
	return len(f) == 0
}

// Has reports whether the filter contains the token
func (f Filter) Has(t Token) bool {
	for _, tok := range f {
		if tok == t {
			return true
		}
	}
	return false
}

// String returns the comma-joined wire form, "" when empty
func (f Filter) String() string {
	parts := make([]string, len(f))
	for i, tok := range f {
		parts[i] = string(tok)
	}
	return strings.Join(parts, ",")
}

// NormalizeFilter converts a free-form filter expression into canonical
// tokens. Accepted forms include "Triangle", "type:Triangle", "  Hexagon ",
// "Dreiecke" and "circle, verfügbar". Only the text after the first colon
// is considered. Terms that are not in the synonym table are dropped and
// returned as the second value so the caller can report them.
func NormalizeFilter(raw string) (Filter, []string) {
	s := fold(raw)
	if s == "" {
		return nil, nil
	}

	if i := strings.Index(s, ":"); i >= 0 {
		s = strings.TrimSpace(s[i+1:])
	}

	var (
		filter  Filter
		dropped []string
	)
	for _, term := range strings.Split(s, ",") {
		term = strings.Join(strings.Fields(term), " ")
		if term == "" {
			continue
		}

		tok, ok := synonyms[term]
		if !ok {
			dropped = append(dropped, term)
			continue
		}
		if !filter.Has(tok) {
			filter = append(filter, tok)
		}
	}

	return filter, dropped
}

// fold lowercases and trims s after composing it to NFC, so a decomposed
// "u" plus combining diaeresis matches the "ü" of the synonym tables
func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(s)))
}
