package textutils

import "strings"

var (
	debitMarkers  = []string{"debit", "dr", "withdrawal", "paid"}
	creditMarkers = []string{"credit", "cr", "deposit", "received"}
)

// IsOutgoing reports whether a line counts as spend. Only lines with a credit
// marker and no debit marker are excluded, so a line without any marker is
// treated as outgoing. Markers are plain substrings of the lower-cased line.
func IsOutgoing(line string) bool {
	lower := strings.ToLower(line)
	return ContainsAny(lower, debitMarkers) || !ContainsAny(lower, creditMarkers)
}

// ContainsAny reports whether s contains any of the substrings.
func ContainsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
