package validate

import "strings"

// FormatPhone reformats raw keyboard input the way the form does on each
// keystroke: non-digits are stripped, then "(", ") " and "-" are inserted
// once 3 and 6 digits are present. Fewer than 3 digits stay digits-only and
// anything past the tenth digit is dropped once the full shape is reached.
func FormatPhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	d := b.String()

	switch {
	case len(d) >= 10:
		return "(" + d[:3] + ") " + d[3:6] + "-" + d[6:10]
	case len(d) > 6:
		return "(" + d[:3] + ") " + d[3:6] + "-" + d[6:]
	case len(d) > 3:
		return "(" + d[:3] + ") " + d[3:]
	case len(d) == 3:
		return "(" + d + ") "
	default:
		return d
	}
}
