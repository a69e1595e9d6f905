package template

import (
	"strings"
	"unicode"
)

// Kebab converts a PascalCase logical name to the hyphenated-lowercase
// deployed name: a hyphen before each internal uppercase letter, then
// lowercased. UserLogin -> user-login, ABCTest -> a-b-c-test.
func Kebab(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte('-')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// NormalizeHandler strips the build-output prefix from a handler
// reference if and only if it is present.
func NormalizeHandler(handler string) string {
	return strings.TrimPrefix(handler, "dist/")
}
