package language

import (
	"strings"

	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

func parse(code string) (xlanguage.Base, string, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return xlanguage.Base{}, "", false
	}
	base, err := xlanguage.ParseBase(code)
	if err != nil {
		return xlanguage.Base{}, code, false
	}
	return base, code, true
}

// ToISO3 converts a recognized two- or three-letter code to ISO 639-3.
// Unrecognized codes are lowercased and passed through so that private
// or newly assigned codes still compare equal to themselves.
func ToISO3(code string) string {
	base, cleaned, ok := parse(code)
	if !ok {
		return cleaned
	}
	return base.ISO3()
}

// Equal reports whether two codes name the same language.
func Equal(a, b string) bool {
	a, b = ToISO3(a), ToISO3(b)
	return a != "" && a == b
}

// DisplayName returns the English name for a recognized code. Unknown
// codes come back uppercased, and empty input yields "".
func DisplayName(code string) string {
	base, cleaned, ok := parse(code)
	if !ok {
		return strings.ToUpper(cleaned)
	}
	if name := display.English.Languages().Name(base); name != "" {
		return name
	}
	return strings.ToUpper(cleaned)
}
