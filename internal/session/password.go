package session

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// PasswordSymbols are the characters that satisfy the symbol rule.
const PasswordSymbols = "!@#$%^&*"

// MinPasswordLength is the minimum number of characters in a password.
const MinPasswordLength = 8

// WeakPasswordMessage explains the password rules to the user.
const WeakPasswordMessage = "Password weak: 8+ chars, 1 number, 1 symbol required."

// IsStrongPassword reports whether p has at least MinPasswordLength characters,
// at least one digit and at least one of PasswordSymbols.
func IsStrongPassword(p string) bool {
	if utf8.RuneCountInString(p) < MinPasswordLength {
		return false
	}
	hasDigit := strings.IndexFunc(p, func(r rune) bool { return r <= unicode.MaxASCII && unicode.IsDigit(r) }) >= 0
	hasSymbol := strings.ContainsAny(p, PasswordSymbols)
	return hasDigit && hasSymbol
}
