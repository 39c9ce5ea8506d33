package llm

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// ExtractJSON finds the first balanced JSON object or array inside free-form
// model output and unmarshals it into v. Models routinely wrap their answer
// in prose or markdown fences, so the raw text is scanned rather than
// decoded directly.
func ExtractJSON(text string, v any) error {
	raw, err := firstJSONBlock(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("parsing extracted JSON: %w", err)
	}
	return nil
}

// firstJSONBlock returns the first balanced {...} or [...] span. String
// literals are honored so braces inside values do not end the block early.
func firstJSONBlock(text string) (string, error) {
	start := -1
	var open, close byte
	for i := 0; i < len(text); i++ {
		if text[i] == '{' || text[i] == '[' {
			start = i
			open = text[i]
			if open == '{' {
				close = '}'
			} else {
				close = ']'
			}
			break
		}
	}
	if start < 0 {
		return "", fmt.Errorf("no JSON block in %q", truncate(text, 80))
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("unbalanced JSON block in %q", truncate(text, 80))
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
