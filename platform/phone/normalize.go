package phone

import (
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"
)

// dialable keeps what a user could dial: a leading plus sign and the digits,
// with any script's digits folded to ASCII.
func dialable(input string) string {
	trimmed := strings.TrimLeftFunc(input, func(r rune) bool {
		return unicode.IsSpace(r) || r == '(' || r == '[' || r == '-' || r == '.'
	})
	digits := phonenumbers.NormalizeDigitsOnly(trimmed)
	if strings.HasPrefix(trimmed, "+") || strings.HasPrefix(trimmed, "＋") {
		return "+" + digits
	}
	return digits
}

// cutAfterDigits returns formatted up to and including the last of the typed
// digits. A closing parenthesis right after that digit is kept so an area code
// reads as a finished group. It reports false if formatted does not start
// with the typed digits.
func cutAfterDigits(formatted, digits string) (string, bool) {
	var b strings.Builder
	matched := 0
	for _, r := range formatted {
		if matched == len(digits) {
			if r == ')' {
				b.WriteRune(r)
			}
			break
		}
		if r >= '0' && r <= '9' {
			if byte(r) != digits[matched] {
				return "", false
			}
			matched++
		}
		b.WriteRune(r)
	}
	if matched < len(digits) {
		return "", false
	}
	return b.String(), true
}

// dropLeadingDigits removes the national prefix digits from the front of a
// formatted number, for input typed without them. Separators left leading
// are trimmed; an opening parenthesis is kept.
func dropLeadingDigits(formatted, prefix string) (string, bool) {
	var b strings.Builder
	matched := 0
	for i, r := range formatted {
		if matched == len(prefix) {
			b.WriteString(formatted[i:])
			break
		}
		if r >= '0' && r <= '9' {
			if byte(r) != prefix[matched] {
				return "", false
			}
			matched++
			continue
		}
		b.WriteRune(r)
	}
	if matched < len(prefix) {
		return "", false
	}
	return strings.TrimLeft(b.String(), " -./"), true
}

func hasSeparator(formatted string) bool {
	return strings.ContainsFunc(formatted, func(r rune) bool {
		return r < '0' || r > '9'
	})
}

func sharedPrefix(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
