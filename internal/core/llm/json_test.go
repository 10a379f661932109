package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONPassesPlainObjectThrough(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, CleanJSON(`{"a": 1}`))
}

func TestCleanJSONStripsFences(t *testing.T) {
	raw := "```json\n{\"a\": 1}\n```"
	assert.Equal(t, `{"a": 1}`, CleanJSON(raw))
}

func TestCleanJSONTrimsSurroundingProse(t *testing.T) {
	raw := `Here is the result: {"name": "Jane"} hope that helps!`
	assert.Equal(t, `{"name": "Jane"}`, CleanJSON(raw))
}

func TestCleanJSONHandlesNestedObjects(t *testing.T) {
	raw := `prefix {"outer": {"inner": 2}} suffix`
	assert.Equal(t, `{"outer": {"inner": 2}}`, CleanJSON(raw))
}

func TestCleanJSONHandlesBracesInsideStrings(t *testing.T) {
	raw := `{"text": "a } b { c"}`
	assert.Equal(t, raw, CleanJSON(raw))
}

func TestCleanJSONHandlesEscapedQuotes(t *testing.T) {
	raw := `{"text": "she said \"}\""}`
	assert.Equal(t, raw, CleanJSON(raw))
}

func TestCleanJSONReturnsTrimmedInputWhenNoObject(t *testing.T) {
	assert.Equal(t, "no json here", CleanJSON("  no json here\n"))
}

func TestCleanJSONArrayTrimsSurroundingProse(t *testing.T) {
	raw := "Sure:\n```json\n[\"a\", \"b\"]\n```"
	assert.Equal(t, `["a", "b"]`, CleanJSONArray(raw))
}

func TestCleanJSONArrayHandlesBracketsInsideStrings(t *testing.T) {
	raw := `["a ] b", "c"]`
	assert.Equal(t, raw, CleanJSONArray(raw))
}
