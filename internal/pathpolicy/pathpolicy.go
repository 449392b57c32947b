// Package pathpolicy implements path-component validation and the
// dotfile-exclusion filter shared by every traversal strategy.
package pathpolicy

import "strings"

// ValidComponent reports whether s is a legal single path component: not
// empty, not "." or "..", and free of "/" and NUL. Traversal strategies
// call this on a directory entry's name before it is ever joined into a
// relpath.
func ValidComponent(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, "/\x00")
}

// ExcludedByDotfiles reports whether component should trigger dotfile
// exclusion under the "-E/--exclude-dotfiles" flag, checked against the
// given exclusion set.
func ExcludedByDotfiles(component string, excluded []string) bool {
	for _, ex := range excluded {
		if component == ex {
			return true
		}
	}
	return false
}
