package dashboard

import (
	"math"
	"strconv"
	"strings"
)

// FormatINR renders a rupee amount with Indian digit grouping, rounded to
// whole rupees: 2456789 -> "₹24,56,789", -737037 -> "-₹7,37,037".
func FormatINR(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + "₹" + groupIndian(strconv.FormatInt(int64(math.Round(amount)), 10))
}

// groupIndian inserts commas after the last three digits, then every two.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}

// FormatLakhs renders an amount given in lakhs ("₹24.6L").
func FormatLakhs(lakhs float64) string {
	return "₹" + strconv.FormatFloat(lakhs, 'f', 1, 64) + "L"
}

// FormatPercent renders a signed percentage change ("+8%", "-30%").
func FormatPercent(pct float64) string {
	s := strconv.FormatFloat(pct, 'f', -1, 64) + "%"
	if pct > 0 {
		return "+" + s
	}
	return s
}
