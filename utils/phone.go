// utils/phone.go
package utils

import "strings"

// NormalizePhone strips every non-digit character and prepends the country
// code when the number does not already carry it. The result is the national
// format the WhatsApp Business API expects (digits only, no leading '+').
// Normalizing an already-normalized number is a no-op.
func NormalizePhone(phone, countryCode string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if strings.HasPrefix(cleaned, countryCode) {
		return cleaned
	}
	return countryCode + cleaned
}
