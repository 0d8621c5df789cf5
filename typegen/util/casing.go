package util

import "unicode"

// LowerInitial lower-cases the leading rune, or the whole leading initialism:
// "Name" -> "name", "ID" -> "id", "URLPath" -> "urlPath", "TenantID" -> "tenantID".
func LowerInitial(s string) string {
	runes := []rune(s)
	if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
		return s
	}

	// Length of the leading run of upper-case runes
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}

	switch {
	case n == 1 || n == len(runes):
		// "Name" or "ID": lower the whole run
	case unicode.IsLetter(runes[n]):
		// "URLPath": the last capital starts the next word
		n--
	}

	for i := 0; i < n; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// IsIdentifier reports whether s can be written as a bare property name in
// JavaScript-family languages.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || r == '$' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
