package usecase

import (
	"regexp"
	"strings"
)

// Order ids are 32 lowercase hex characters in the order schema.
var orderIDPattern = regexp.MustCompile(`(?i)\b[0-9a-f]{32}\b`)

// extractOrderID pulls an order id out of free text, or "" when none is
// present.
func extractOrderID(text string) string {
	return strings.ToLower(orderIDPattern.FindString(text))
}
