package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FormatPounds renders an amount the way the app displays money, with two
// decimals and the Egyptian pound suffix.
func FormatPounds(amount decimal.Decimal) string {
	return fmt.Sprintf("%s جنيه", amount.StringFixed(2))
}
