package table

import (
	"strconv"
	"strings"
)

// Cell value coercions. Everything here degrades to nil on input it
// cannot interpret; rows are never rejected over a bad cell.

var (
	truthyTokens = map[string]struct{}{
		"y": {}, "yes": {}, "true": {}, "1": {}, "vacant": {}, "open": {},
	}
	falsyTokens = map[string]struct{}{
		"n": {}, "no": {}, "false": {}, "0": {}, "filled": {}, "closed": {},
	}
)

// cleanCell trims a raw cell and drops spreadsheet null artifacts
// ("nan", "none") left behind by upstream tooling.
func cleanCell(value *string) *string {
	if value == nil {
		return nil
	}
	text := strings.TrimSpace(*value)
	if text == "" {
		return nil
	}
	switch strings.ToLower(text) {
	case "nan", "none":
		return nil
	}
	return &text
}

// String returns the cell value or "" when absent.
func String(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

// Bool interprets a vacancy-style flag cell. Unrecognized tokens are
// indeterminate and return nil.
func Bool(value *string) *bool {
	if value == nil {
		return nil
	}
	token := strings.ToLower(strings.TrimSpace(*value))
	if token == "" {
		return nil
	}
	if _, ok := truthyTokens[token]; ok {
		b := true
		return &b
	}
	if _, ok := falsyTokens[token]; ok {
		b := false
		return &b
	}
	return nil
}

// Int parses a numeric cell, accepting float renderings of whole
// numbers ("42.0").
func Int(value *string) *int {
	f := Float(value)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

// Float parses a numeric cell.
func Float(value *string) *float64 {
	if value == nil {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(*value), 64)
	if err != nil {
		return nil
	}
	return &f
}

// PostalCode normalizes a postal code cell, undoing the float
// rendering spreadsheets apply to numeric ZIPs ("30309.0" -> "30309").
func PostalCode(value *string) *string {
	if value == nil {
		return nil
	}
	cleaned := strings.ReplaceAll(strings.TrimSpace(*value), " ", "")
	if cleaned == "" {
		return nil
	}
	if head, tail, found := strings.Cut(cleaned, "."); found {
		zerosOnly := tail != "" && strings.Trim(tail, "0") == ""
		if zerosOnly && isDigits(head) {
			cleaned = head
		}
	}
	return &cleaned
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
