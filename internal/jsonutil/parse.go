// Package jsonutil locates JSON objects embedded in free-form LLM replies
// that may be wrapped in markdown code fences or surrounded by prose.
package jsonutil

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSON is returned when no candidate span in the text is valid JSON.
var ErrNoJSON = errors.New("no JSON object found in reply")

// StripMarkdownFences removes ```json ... ``` or ``` ... ``` wrapping from text.
// Returns the original text if no fences are found.
func StripMarkdownFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	lines := strings.Split(text, "\n")
	if len(lines) < 3 {
		return text
	}

	endIdx := len(lines) - 1
	for i := len(lines) - 1; i > 0; i-- {
		if strings.TrimSpace(lines[i]) == "```" {
			endIdx = i
			break
		}
	}
	return strings.Join(lines[1:endIdx], "\n")
}

// BalancedObject returns the first brace-balanced {...} span in text. Braces inside
// JSON string literals are ignored. A span is returned only if it is valid JSON;
// otherwise scanning resumes at the next '{'.
func BalancedObject(text string) (string, bool) {
	for start := strings.IndexByte(text, '{'); start != -1; {
		if end := matchBrace(text, start); end != -1 {
			span := text[start : end+1]
			if json.Valid([]byte(span)) {
				return span, true
			}
		}
		next := strings.IndexByte(text[start+1:], '{')
		if next == -1 {
			break
		}
		start += next + 1
	}
	return "", false
}

// OuterBraces returns the span from the first '{' to the last '}'.
func OuterBraces(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start == -1 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// ExtractObject finds the JSON object in raw: a balanced span first, then the
// first-to-last brace span, then the whole reply.
func ExtractObject(raw string) (string, error) {
	text := StripMarkdownFences(raw)
	if span, ok := BalancedObject(text); ok {
		return span, nil
	}
	if span, ok := OuterBraces(text); ok && json.Valid([]byte(span)) {
		return span, nil
	}
	whole := strings.TrimSpace(raw)
	if whole != "" && json.Valid([]byte(whole)) {
		return whole, nil
	}
	return "", ErrNoJSON
}

// matchBrace returns the index of the '}' closing the '{' at start, or -1.
func matchBrace(text string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
