package utils

import "fmt"

// FormatTimestamp renders seconds as zero-padded HH:MM:SS, truncating any
// fractional part. No leap-second adjustment; hours may exceed two digits for
// very long media.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int64(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
