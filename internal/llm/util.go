// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
// LLMs often wrap JSON in ```json ... ``` blocks even when instructed not to,
// and sometimes add conversational preamble or trailing text around the
// payload. The first balanced JSON object or array found is returned.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	// Handle ```json ... ``` blocks
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return extractJSON(strings.TrimSpace(text))
	}

	// Handle generic ``` ... ``` blocks
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip potential language identifier on first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			// If first line looks like a language identifier (no spaces, short), skip it
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return extractJSON(strings.TrimSpace(text))
	}

	return extractJSON(text)
}

// extractJSON strips preamble and trailing prose around the first JSON object
// or array in text. If no balanced payload is found the text is returned
// unchanged.
func extractJSON(text string) string {
	objIdx := strings.IndexByte(text, '{')
	arrIdx := strings.IndexByte(text, '[')

	switch {
	case objIdx < 0 && arrIdx < 0:
		return text
	case arrIdx < 0 || (objIdx >= 0 && objIdx < arrIdx):
		if out := extractJSONObject(text[objIdx:]); out != "" {
			return out
		}
	default:
		if out := extractJSONArray(text[arrIdx:]); out != "" {
			return out
		}
	}
	return text
}

// extractJSONObject returns the balanced JSON object at the start of text, or
// "" if text does not begin with one.
func extractJSONObject(text string) string {
	return extractBalanced(text, '{', '}')
}

// extractJSONArray returns the balanced JSON array at the start of text, or
// "" if text does not begin with one.
func extractJSONArray(text string) string {
	return extractBalanced(text, '[', ']')
}

// extractBalanced scans for the matching close delimiter, skipping delimiters
// that appear inside string literals.
func extractBalanced(text string, open, close byte) string {
	if len(text) == 0 || text[0] != open {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// delimiters inside strings do not count
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return text[:i+1]
			}
		}
	}
	return ""
}
