package entities

import (
	"strings"
	"time"
)

// DocumentNumber builds a display key such as Q-20260301-1A2B3C from a prefix,
// the creation day and the first hex digits of the document id.
func DocumentNumber(prefix string, now time.Time, id string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if len(suffix) > 6 {
		suffix = suffix[:6]
	}
	return prefix + "-" + now.UTC().Format("20060102") + "-" + suffix
}
