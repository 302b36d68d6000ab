package textnorm

import "strings"

// ZeroWidthSpace is stripped from every normalized value before replacements run.
const ZeroWidthSpace = "\u200b"

// Replacement rewrites one literal export artifact.
type Replacement struct {
	Old string
	New string
}

// DefaultReplacements lists the known transcription artifacts in the order
// they must be applied.
var DefaultReplacements = []Replacement{
	{Old: " a      ", New: ""},
	{Old: "  bนั้น", New: "นั้น"},
}

// Normalizer applies a fixed, ordered rewrite to content text.
type Normalizer struct {
	replacements []Replacement
}

// New returns a Normalizer using the given replacements in order.
func New(replacements []Replacement) *Normalizer {
	return &Normalizer{replacements: append([]Replacement(nil), replacements...)}
}

// Default returns a Normalizer with DefaultReplacements.
func Default() *Normalizer {
	return New(DefaultReplacements)
}

// Apply strips zero-width spaces and then applies each replacement to the
// output of the previous one.
func (n *Normalizer) Apply(value string) string {
	value = strings.ReplaceAll(value, ZeroWidthSpace, "")
	if n == nil {
		return value
	}
	for _, r := range n.replacements {
		if r.Old == "" {
			continue
		}
		value = strings.ReplaceAll(value, r.Old, r.New)
	}
	return value
}
