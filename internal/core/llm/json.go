package llm

import (
	"strings"
)

// CleanJSON prepares raw model output for json.Unmarshal: it drops markdown
// code fences and trims any text surrounding the first balanced JSON object.
// Models regularly wrap structured output in ```json fences even when told
// not to.
func CleanJSON(raw string) string {
	cleaned := stripCodeFences(strings.TrimSpace(raw))
	if block := extractJSONBlock(cleaned); block != "" {
		return block
	}
	return strings.TrimSpace(cleaned)
}

// CleanJSONArray is the array counterpart of CleanJSON: it isolates the
// first balanced [ ... ] block.
func CleanJSONArray(raw string) string {
	cleaned := stripCodeFences(strings.TrimSpace(raw))
	if block := balancedBlock(cleaned, '[', ']'); block != "" {
		return block
	}
	return strings.TrimSpace(cleaned)
}

// stripCodeFences removes ```json ... ``` or ``` ... ``` wrappers.
func stripCodeFences(s string) string {
	if !strings.Contains(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// extractJSONBlock finds the first balanced { ... } block in the text,
// honoring string literals and escapes.
func extractJSONBlock(s string) string {
	return balancedBlock(s, '{', '}')
}

func balancedBlock(s string, opener, closer byte) string {
	start := strings.IndexByte(s, opener)
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
