package textutils

import (
	"regexp"
	"strings"
)

const maxMerchantWords = 3

var wordRe = regexp.MustCompile(`[A-Za-z]+`)

var calendarWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "sept", "oct", "nov", "dec",
		"january", "february", "march", "april", "june", "july", "august", "september",
		"october", "november", "december",
		"mon", "tue", "tues", "wed", "thu", "thur", "thurs", "fri", "sat", "sun",
		"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
	} {
		calendarWords[w] = struct{}{}
	}
}

// MerchantName derives a short label from the first three alphabetic words
// of a line that are longer than two letters and not month or weekday names.
// ok is false when no word survives.
func MerchantName(line string) (name string, ok bool) {
	var words []string
	for _, w := range wordRe.FindAllString(line, -1) {
		if len(w) <= 2 {
			continue
		}
		if _, calendar := calendarWords[strings.ToLower(w)]; calendar {
			continue
		}
		words = append(words, w)
		if len(words) == maxMerchantWords {
			break
		}
	}
	if len(words) == 0 {
		return "", false
	}
	return strings.Join(words, " "), true
}
