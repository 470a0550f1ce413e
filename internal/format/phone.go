package format

import (
	"fmt"
	"strings"
)

// Phone renders a raw phone string for display. Uzbek numbers (12 digits
// starting with 998) become "+998 90 123 45 67"; other numbers with at least
// ten digits get the same generic grouping; anything shorter is returned
// unchanged.
func Phone(raw string) string {
	digits := keepRunes(raw, "0123456789")

	if strings.HasPrefix(digits, "998") && len(digits) == 12 {
		return fmt.Sprintf("+%s %s %s %s %s",
			digits[0:3], digits[3:5], digits[5:8], digits[8:10], digits[10:12])
	}
	if len(digits) >= 10 {
		return strings.TrimSpace(fmt.Sprintf("+%s %s %s %s %s",
			digits[0:3], digits[3:5], digits[5:8], digits[8:10], digits[10:]))
	}
	return raw
}
