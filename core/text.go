package core

import "strings"

// CleanString trims leading and trailing whitespace.
func CleanString(s string) string {
	return strings.TrimSpace(s)
}

// CleanLower trims s and lowers it. Used for emails, search terms and enum-like inputs.
func CleanLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SplitList splits a comma separated list and trims every item.
// Blank items are kept so that validation can report them.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	items := strings.Split(s, ",")
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}
	return items
}
