package quiltwalk

import "strings"

// FindCommonPatchSuffix returns the most common filename suffix (everything
// from the first '.' onward) across names, ignoring "series", "00list",
// and any name starting with "README". ok is false when no name
// contributed a count (names is empty or every entry was ignored).
func FindCommonPatchSuffix(names []string) (suffix string, ok bool) {
	counts := make(map[string]int)
	var order []string

	for _, name := range names {
		if name == "series" || name == "00list" {
			continue
		}
		if strings.HasPrefix(name, "README") {
			continue
		}

		s := ""
		if idx := strings.Index(name, "."); idx >= 0 {
			s = name[idx:]
		}
		if _, seen := counts[s]; !seen {
			order = append(order, s)
		}
		counts[s]++
	}

	best, bestCount := "", 0
	for _, s := range order {
		if counts[s] > bestCount {
			best, bestCount = s, counts[s]
			ok = true
		}
	}
	return best, ok
}
