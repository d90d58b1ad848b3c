package cmdbind

import "strings"

// DisplayLabel converts a mixed-case identifier into a human-readable label:
// "someCamelCaseName" becomes "Some Camel Case Name", "someAPI" becomes
// "Some API". A space is inserted before each uppercase letter unless the
// letter is interior to an acronym run (its predecessor is uppercase and its
// successor is uppercase or absent). ASCII only; the empty string is returned
// unchanged.
func DisplayLabel(s string) string {
	if s == "" {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if i == 0 {
			sb.WriteByte(asciiUpper(c))
			continue
		}
		if isASCIIUpper(c) && !midAcronym(s, i) {
			sb.WriteByte(' ')
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// FlagToken converts a mixed-case identifier into a dash-separated flag
// token: "someCamelCaseName" becomes "some-camel-case-name", "someAPI"
// becomes "some-api". A dash is inserted before each uppercase letter that
// starts a new word (its predecessor is not uppercase); letters interior to
// an acronym run stay joined. Everything is lower-cased. ASCII only; the
// empty string is returned unchanged.
func FlagToken(s string) string {
	if s == "" {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isASCIIUpper(c) {
			if i > 0 && !isASCIIUpper(s[i-1]) {
				sb.WriteByte('-')
			}
			c = asciiLower(c)
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// midAcronym reports whether the uppercase letter at position i sits inside
// an acronym run: predecessor uppercase, successor uppercase or absent.
// "API" in "someAPIKey" keeps P and I attached while K starts a new word.
func midAcronym(s string, i int) bool {
	if i == 0 || !isASCIIUpper(s[i-1]) {
		return false
	}
	return i+1 >= len(s) || isASCIIUpper(s[i+1])
}

func isASCIIUpper(c byte) bool { return c >= 'A' && c <= 'Z' }

func asciiUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

func asciiLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
