package table

import (
	"fmt"
	"strings"
)

// flattenHeader joins the header levels of every column with sep. Empty and
// "Unnamed" fragments are dropped, as are repeats produced by a rowspan.
func flattenHeader(rows [][]slot, width int, sep string) []string {
	names := make([]string, width)

	for c := 0; c < width; c++ {
		var parts []string

		for _, row := range rows {
			frag := strings.TrimSpace(row[c].text)
			if isPlaceholder(frag) {
				continue
			}
			if len(parts) > 0 && parts[len(parts)-1] == frag {
				continue
			}
			parts = append(parts, frag)
		}

		names[c] = strings.Join(parts, sep)
	}

	return names
}

func isPlaceholder(frag string) bool {
	return frag == "" || strings.HasPrefix(strings.ToLower(frag), "unnamed")
}

// fillNames gives unnamed columns a positional name.
func fillNames(names []string) []string {
	out := make([]string, len(names))

	for i, n := range names {
		if n == "" {
			n = fmt.Sprintf("column_%d", i)
		}
		out[i] = n
	}

	return out
}

// dedupe suffixes repeated names with ".1", ".2", ... in order of appearance.
func dedupe(names []string) []string {
	out := make([]string, len(names))
	taken := make(map[string]bool, len(names))
	seen := make(map[string]int, len(names))

	for _, n := range names {
		taken[n] = true
	}

	for i, n := range names {
		k := seen[n]
		seen[n]++

		if k == 0 {
			out[i] = n
			continue
		}

		candidate := fmt.Sprintf("%s.%d", n, k)
		for taken[candidate] {
			k++
			candidate = fmt.Sprintf("%s.%d", n, k)
		}

		taken[candidate] = true
		out[i] = candidate
	}

	return out
}
