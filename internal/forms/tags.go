package forms

import "strings"

// ParseTags splits a comma separated tag string into trimmed, distinct names in
// input order. ok is false when the input is empty or only whitespace, which
// callers treat as "no tags"; an input such as ", ," yields ok with no names.
func ParseTags(raw string) (names []string, ok bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, false
	}

	names = []string{}
	seen := make(map[string]struct{})
	for _, segment := range strings.Split(raw, ",") {
		name := strings.TrimSpace(segment)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, true
}
