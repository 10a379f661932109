package db

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// keySuffixSpace bounds the random suffix to six base36 digits.
const keySuffixSpace = 36 * 36 * 36 * 36 * 36 * 36

// GenerateProgressKey builds a short human-copyable key: the current unix
// millisecond timestamp in base36, a dash, and six random base36 digits,
// uppercased. Collisions are treated as negligible and not checked.
func GenerateProgressKey() string {
	prefix := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffix := strconv.FormatInt(rand.Int63n(keySuffixSpace), 36)
	for len(suffix) < 6 {
		suffix = "0" + suffix
	}
	return strings.ToUpper(prefix + "-" + suffix)
}

// NormalizeProgressKey maps user input onto the stored key form so lookup is
// case-insensitive.
func NormalizeProgressKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}
