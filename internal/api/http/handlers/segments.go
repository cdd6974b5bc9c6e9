package handlers

import "strings"

// isSafeSegment rejects path segment values that could be mistaken for
// traversal or hidden names when echoed into queries or URLs.
func isSafeSegment(segment string) bool {
	if segment == "" {
		return false
	}
	if strings.Contains(segment, "..") ||
		strings.ContainsAny(segment, `/\`) ||
		strings.HasPrefix(segment, ".") {
		return false
	}
	return true
}
