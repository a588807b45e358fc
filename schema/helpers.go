package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatPct formats a 0..1 share as a whole percentage, e.g. 0.417 -> "42%".
func FormatPct(v float64) string {
	return fmt.Sprintf("%.0f%%", math.Round(v*100))
}

// FormatThousands formats a dollar amount in thousands, e.g. 52340 -> "$52k".
func FormatThousands(v float64) string {
	return fmt.Sprintf("$%.0fk", math.Round(v/1000))
}

// FormatDollars formats a dollar amount with thousands separators, e.g. 312000 -> "$312,000".
func FormatDollars(v float64) string {
	neg := v < 0
	digits := strconv.FormatInt(int64(math.Abs(math.Round(v))), 10)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatChange formats a change as a signed whole percentage with an arrow, e.g. "▲ 12%".
func FormatChange(c *Change) string {
	if c == nil {
		return "-"
	}
	arrow := "▲"
	if c.Direction == Down {
		arrow = "▼"
	}
	return fmt.Sprintf("%s %.0f%%", arrow, math.Abs(c.Percent))
}

// RegionKey normalizes a region name for case-insensitive lookups.
func RegionKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
