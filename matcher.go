package palisade

import "strings"

// matchGlob checks if a pattern matches a value with simple glob support.
// Supports trailing '*' (e.g., "review*" matches "review:submit").
func matchGlob(pattern, value string) bool {
	if pattern == "*" {
		return true
	}
	if pattern == value {
		return true
	}
	if strings.HasSuffix(pattern, "*") {
		prefix := strings.TrimSuffix(pattern, "*")
		return strings.HasPrefix(value, prefix)
	}
	return false
}

// matchAny reports whether any pattern in the list matches the value. An
// empty list matches nothing; policy filters treat an absent list as "match
// all" before calling this.
func matchAny(patterns []string, value string) bool {
	for _, p := range patterns {
		if matchGlob(p, value) {
			return true
		}
	}
	return false
}

// containsString reports whether list contains s.
func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// containsInt reports whether list contains n.
func containsInt(list []int, n int) bool {
	for _, item := range list {
		if item == n {
			return true
		}
	}
	return false
}
