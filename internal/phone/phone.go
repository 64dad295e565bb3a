// Package phone extracts dialable numbers from tel: URIs.
package phone

import "strings"

// Scheme is the URI scheme this application registers for.
const Scheme = "tel:"

// HasTelScheme reports whether s carries the tel: prefix. The scheme is
// matched case-insensitively because some platforms upcase it when invoking
// the registered handler.
func HasTelScheme(s string) bool {
	if len(s) < len(Scheme) {
		return false
	}
	return strings.EqualFold(s[:len(Scheme)], Scheme)
}

// Normalize strips the tel: prefix and removes dashes, spaces and
// parentheses from the remainder. A leading + and all digits are preserved.
// It does not validate that the result looks like a phone number; callers
// only require non-emptiness.
func Normalize(uri string) string {
	if !HasTelScheme(uri) {
		return ""
	}
	raw := uri[len(Scheme):]
	replacer := strings.NewReplacer("-", "", " ", "", "(", "", ")", "")
	return replacer.Replace(raw)
}

// FindTelArg returns the first tel: argument in args, or "" when none is
// present. The OS passes the clicked URI as a plain process argument.
func FindTelArg(args []string) string {
	for _, arg := range args {
		if HasTelScheme(arg) {
			return arg
		}
	}
	return ""
}
