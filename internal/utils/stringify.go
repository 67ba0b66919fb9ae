package utils

import "fmt"

// StringifyValue renders an arbitrary field value the way the change ledger stores it.
// nil maps to the empty string so that a nil previous and nil new value compare equal,
// while the literal string "null" stays distinct from nil. Numbers and their string
// forms render identically (5 and "5" both become "5").
func StringifyValue(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
