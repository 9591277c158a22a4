// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

// Same shape browsers accept for <input type="email">.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// IsBlank reports whether s is empty once surrounding whitespace is removed.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ValidateEmail checks that email looks like local@domain
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}
