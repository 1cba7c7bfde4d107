package engine

import "strconv"

// OrdinalSuffix returns the English ordinal suffix of n: "th" unless the last
// digit is 1, 2 or 3 and the last two digits are not 11, 12 or 13.
func OrdinalSuffix(n int) string {
	if n < 0 {
		n = -n
	}
	switch last, lastTwo := n%10, n%100; {
	case last == 1 && lastTwo != 11:
		return "st"
	case last == 2 && lastTwo != 12:
		return "nd"
	case last == 3 && lastTwo != 13:
		return "rd"
	default:
		return "th"
	}
}

// Ordinal formats n with its suffix, e.g. 3 -> "3rd".
func Ordinal(n int) string {
	return strconv.Itoa(n) + OrdinalSuffix(n)
}
