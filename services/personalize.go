// services/personalize.go
package services

import (
	"strings"

	"aquacare-backend/models"
)

// Placeholder tokens recognized in template content. Case-sensitive,
// replace-all; anything else is left verbatim.
const (
	TokenName       = "[NAME]"
	TokenPhone      = "[PHONE]"
	TokenFilterType = "[FILTER_TYPE]"
)

const defaultFilterType = "Standard"

// Personalize substitutes the recognized placeholder tokens in content with
// the customer's attributes.
func Personalize(content string, customer models.Customer) string {
	filterType := customer.FilterType
	if filterType == "" {
		filterType = defaultFilterType
	}
	out := strings.ReplaceAll(content, TokenName, customer.Name)
	out = strings.ReplaceAll(out, TokenPhone, customer.Phone)
	out = strings.ReplaceAll(out, TokenFilterType, filterType)
	return out
}
