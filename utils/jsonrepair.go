package utils

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RepairJSON recovers common defects in model-generated JSON and returns
// bytes guaranteed to parse:
//  1. strips Markdown code-fence wrapping,
//  2. collapses runs of 16+ identical digits to one digit (a known
//     runaway-output failure mode of the extraction model),
//  3. closes brackets/braces left open by truncation.
//
// If the text still does not parse after repair, the error is terminal and
// the caller must treat the extraction as failed.
func RepairJSON(raw string) ([]byte, error) {
	str := stripCodeFences(raw)
	str = collapseDigitRuns(str)

	if json.Valid([]byte(str)) {
		return []byte(str), nil
	}

	str += missingClosers(str)

	if !json.Valid([]byte(str)) {
		return nil, fmt.Errorf("json repair: text is not valid JSON after repair")
	}
	return []byte(str), nil
}

func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// collapseDigitRuns reduces any single digit repeated 16 or more times in a
// row to one occurrence. Runs of 15 or fewer pass through untouched.
func collapseDigitRuns(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	runStart := 0
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] == s[runStart] {
			continue
		}
		run := s[runStart:i]
		if len(run) >= 16 && run[0] >= '0' && run[0] <= '9' {
			b.WriteByte(run[0])
		} else {
			b.WriteString(run)
		}
		runStart = i
	}
	return b.String()
}

// missingClosers scans s tracking unclosed braces/brackets, skipping
// anything inside quoted strings (including escaped quotes), and returns the
// closing characters in the order they must be appended.
func missingClosers(s string) string {
	var stack []byte
	inString := false
	escape := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if escape {
			escape = false
			continue
		}
		if c == '\\' {
			escape = true
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
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) > 0 && stack[len(stack)-1] == c {
				stack = stack[:len(stack)-1]
			}
		}
	}

	// Innermost structures close first: pop order.
	var b strings.Builder
	for i := len(stack) - 1; i >= 0; i-- {
		b.WriteByte(stack[i])
	}
	return b.String()
}
