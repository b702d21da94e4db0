package domain

import (
	"regexp"  // Username format
	"slices"  // Card whitelist lookup
	"strings" // Input trimming

	"github.com/shopspring/decimal" // Decimal amounts
)

// usernamePattern allows letters, digits, underscores and dashes
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_\-]{4,15}$`)

// acceptedCards stands in for a real card validity check.
var acceptedCards = []string{"4111111111111111", "4242424242424242"}

// IsValidUsername reports whether username is 4-15 letters, digits, '_' or '-'.
func IsValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

// IsValidCreditCard reports whether number is one of the accepted card numbers.
func IsValidCreditCard(number string) bool {
	return slices.Contains(acceptedCards, number)
}

// ParseAmount parses a decimal amount such as "5", "5.00" or "-2.5".
func ParseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}
