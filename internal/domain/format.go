package domain

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatDistance renders metres the way the routing service does in metric units:
// "850 m", "12.3 km", "1,234 km".
// The km branch is chosen on the value rounded to tenths, so 99,950 m is "100 km".
func FormatDistance(meters int) string {
	if meters < 1000 {
		return printer.Sprintf("%d m", meters)
	}

	tenths := int(math.Round(float64(meters) / 100))
	if tenths < 1000 {
		return printer.Sprintf("%.1f km", float64(tenths)/10)
	}
	return printer.Sprintf("%d km", int(math.Round(float64(meters)/1000)))
}

// FormatDuration renders seconds rounded to whole minutes:
// "1 min", "18 mins", "1 hour 5 mins", "2 days 3 hours".
// Anything under a minute is shown as "1 min".
func FormatDuration(seconds int) string {
	mins := int(math.Round(float64(seconds) / 60))
	if mins < 1 {
		mins = 1
	}

	days := mins / (24 * 60)
	hours := (mins % (24 * 60)) / 60
	rest := mins % 60

	switch {
	case days > 0:
		if hours == 0 {
			return plural(days, "day")
		}
		return plural(days, "day") + " " + plural(hours, "hour")
	case hours > 0:
		if rest == 0 {
			return plural(hours, "hour")
		}
		return plural(hours, "hour") + " " + plural(rest, "min")
	default:
		return plural(rest, "min")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return printer.Sprintf("%d %ss", n, unit)
}
