package classify

import (
	"errors"
	"strings"
)

// ErrNoJSONObject is returned when no balanced object can be found.
var ErrNoJSONObject = errors.New("no balanced JSON object in response")

// StripFence removes a surrounding ```json / ``` code fence and trims space.
func StripFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = s[3:]
		// language tag up to the end of the first line
		if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
			s = s[4:]
		}
		s = strings.TrimLeft(s, " \t\r\n")
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimRight(s[:len(s)-3], " \t\r\n")
	}
	return strings.TrimSpace(s)
}

// ExtractFirstObject returns the first balanced {...} span of s.
// Braces inside JSON string literals, including escaped quotes, are ignored.
// Leading text such as "Here is the JSON:" is skipped. When the first
// object is unterminated the result is ErrNoJSONObject.
func ExtractFirstObject(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", ErrNoJSONObject
	}
	end, ok := scanObject(s, start)
	if !ok {
		return "", ErrNoJSONObject
	}
	return s[start : end+1], nil
}

// scanObject walks from the '{' at start and returns the index of the
// matching '}'.
func scanObject(s string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
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
				return i, true
			}
		}
	}
	return 0, false
}
