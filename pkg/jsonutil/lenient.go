package jsonutil

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Lenient structured-decode for generative-model output. Models wrap JSON in
// prose, markdown fences, or emit trailing commas and stray control
// characters. Decode never returns an error to the caller, it reports
// success or failure and the caller degrades to "no structured signal".

var trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)

// Decode tries to unmarshal the outermost JSON object found in raw into v,
// applying progressively more lenient cleanup. Returns false when no usable
// object can be recovered.
func Decode(raw string, v interface{}) bool {
	candidate, ok := ExtractObject(raw)
	if !ok {
		return false
	}

	// Pass 1: strict
	if json.Unmarshal([]byte(candidate), v) == nil {
		return true
	}

	// Pass 2: strip trailing commas
	cleaned := trailingCommaRe.ReplaceAllString(candidate, "$1")
	if json.Unmarshal([]byte(cleaned), v) == nil {
		return true
	}

	// Pass 3: drop raw control characters (keep \n and \t inside the text,
	// the JSON decoder rejects unescaped ones inside strings anyway)
	cleaned = stripControlChars(cleaned)
	return json.Unmarshal([]byte(cleaned), v) == nil
}

// ExtractObject returns the substring spanning the outermost balanced pair
// of curly braces, honoring string literals and escapes. Markdown code
// fences around the payload are irrelevant since scanning starts at the
// first '{'.
func ExtractObject(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return raw[start : i+1], true
				}
			}
		}
	}
	return "", false
}

func stripControlChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 && r != '\n' && r != '\t' && r != '\r' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
