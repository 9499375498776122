package display

import (
	"fmt"
	"math"
	"strconv"
)

// FormatQuantity renders a stock or order quantity for humans.
//
// Weight-based products ("kg") use shop-counter conventions: the common
// fractions map to gram labels, whole kilograms keep the kg suffix, and
// everything else is truncated to whole grams. Any other unit type prints
// the bare number, without a trailing ".0" for whole values.
func FormatQuantity(quantity float64, unitType string) string {
	if unitType == "kg" {
		switch quantity {
		case 1.0:
			return "1 kg"
		case 0.75:
			return "750g"
		case 0.5:
			return "500g"
		case 0.25:
			return "250g"
		case 0.1:
			return "100g"
		}
		if quantity == math.Trunc(quantity) {
			return fmt.Sprintf("%d kg", int64(quantity))
		}
		return fmt.Sprintf("%dg", int64(math.Trunc(quantity*1000)))
	}

	if quantity == math.Trunc(quantity) {
		return strconv.FormatInt(int64(quantity), 10)
	}
	return strconv.FormatFloat(quantity, 'f', -1, 64)
}
