package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// National id card pattern - 6 to 10 digits
	IDCardPattern = `^\d{6,10}$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email  *regexp.Regexp
	IDCard *regexp.Regexp
}{
	Email:  regexp.MustCompile(EmailPattern),
	IDCard: regexp.MustCompile(IDCardPattern),
}

// IsValidEmail reports whether the email matches the expected format.
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

// IsValidIDCard reports whether the id card matches the expected format.
func IsValidIDCard(idCard string) bool {
	return CompiledPatterns.IDCard.MatchString(idCard)
}
