package source

import (
	"regexp"
	"strconv"
	"strings"
)

var numberPattern = regexp.MustCompile(`[\d.]+`)

// ParsePrice extracts a numeric price from feed text like "$500,000",
// "$450K", or "$2.5M". Returns 0 when nothing numeric can be extracted.
func ParsePrice(text string) float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	multiplier := 1.0
	switch {
	case strings.ContainsAny(text, "Mm"):
		multiplier = 1e6
	case strings.ContainsAny(text, "Kk"):
		multiplier = 1e3
	}

	match := numberPattern.FindString(strings.ReplaceAll(text, ",", ""))
	if match == "" {
		return 0
	}

	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return value * multiplier
}

// SafeFloat coerces a decoded JSON value to a float, tolerating numeric
// strings with separators. Returns nil when the value has no numeric form.
func SafeFloat(v any) *float64 {
	switch value := v.(type) {
	case nil:
		return nil
	case float64:
		return &value
	case int:
		f := float64(value)
		return &f
	case string:
		cleaned := numberPattern.FindString(strings.ReplaceAll(value, ",", ""))
		if cleaned == "" {
			return nil
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}
