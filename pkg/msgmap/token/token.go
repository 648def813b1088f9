package token

import (
	"regexp"
	"strings"
)

// Prefix marks the start of a token in a template string.
const Prefix = "%"

// pattern matches %name where name is an identifier.
var pattern = regexp.MustCompile(`%([A-Za-z_][A-Za-z0-9_]*)`)

// Format returns the literal token text for name.
func Format(name string) string {
	return Prefix + name
}

// Scan returns the distinct token names found in s, in order of first appearance.
func Scan(s string) []string {
	matches := pattern.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		names = append(names, m[1])
	}
	return names
}

// Replace substitutes every occurrence of the token for name in s.
// An empty name matches nothing and s is returned unchanged.
func Replace(s, name, replacement string) string {
	if name == "" {
		return s
	}
	return strings.ReplaceAll(s, Format(name), replacement)
}
