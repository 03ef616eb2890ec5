package tools

import (
	"regexp"
	"strings"
)

var (
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_.\-]{3,30}$`)
)

func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}

// ValidateUsername aceita 3 a 30 caracteres entre letras, dígitos, "_", "." e "-".
func ValidateUsername(username string) bool {
	return usernameRe.MatchString(strings.TrimSpace(username))
}
