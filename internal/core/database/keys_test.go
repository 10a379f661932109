package db

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var keyPattern = regexp.MustCompile(`^[0-9A-Z]+-[0-9A-Z]{6}$`)

func TestGenerateProgressKeyFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		key := GenerateProgressKey()
		assert.Regexp(t, keyPattern, key)
		assert.Equal(t, strings.ToUpper(key), key)
	}
}

func TestGenerateProgressKeysDiffer(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		key := GenerateProgressKey()
		assert.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true
	}
}

func TestNormalizeProgressKey(t *testing.T) {
	assert.Equal(t, "AB12CD-34EF56", NormalizeProgressKey("ab12cd-34ef56"))
	assert.Equal(t, "AB12CD-34EF56", NormalizeProgressKey("  Ab12Cd-34eF56 "))
	key := GenerateProgressKey()
	assert.Equal(t, key, NormalizeProgressKey(strings.ToLower(key)))
}
