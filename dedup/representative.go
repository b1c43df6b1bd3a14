package dedup

import (
	"sort"
	"strings"

	"github.com/citeparse/citeparse/citation"
)

// selectRepresentative implements spec §4.H's representative selection.
// members are global citation indices belonging to one equivalence class;
// it returns the chosen representative's index and the rest, both in
// ascending index order.
func selectRepresentative(members []int, citations []citation.Citation, sources []string, preferences []string) (repIdx int, dupIdx []int) {
	sorted := append([]int(nil), members...)
	sort.Ints(sorted)

	if len(preferences) > 0 && sources != nil {
		for _, pref := range preferences {
			for _, idx := range sorted {
				if sources[idx] == pref {
					return idx, without(sorted, idx)
				}
			}
		}
	}

	var withAbstract []int
	for _, idx := range sorted {
		if strings.TrimSpace(citations[idx].AbstractText) != "" {
			withAbstract = append(withAbstract, idx)
		}
	}
	if len(withAbstract) > 0 {
		for _, idx := range withAbstract {
			if citations[idx].DOI != "" {
				return idx, without(sorted, idx)
			}
		}
		return withAbstract[0], without(sorted, withAbstract[0])
	}

	return sorted[0], sorted[1:]
}

func without(sorted []int, exclude int) []int {
	out := make([]int, 0, len(sorted)-1)
	for _, idx := range sorted {
		if idx != exclude {
			out = append(out, idx)
		}
	}
	return out
}
