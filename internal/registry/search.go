package registry

import (
	"sort"
	"strings"
)

// SearchResult is one entry matched by Search.
type SearchResult struct {
	Category Category
	Entry    Entry
}

// Search matches entries by case-insensitive keywords over name, description
// and category. All query tokens must match (AND semantics).
func Search(idx *Index, query string, limit int) []SearchResult {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return []SearchResult{}
	}

	out := []SearchResult{}
	for _, c := range Categories {
		for _, e := range idx.Entries(c).All() {
			blob := strings.ToLower(strings.Join([]string{e.Name, e.Description, e.Category}, "\n"))
			ok := true
			for _, tok := range tokens {
				if !strings.Contains(blob, tok) {
					ok = false
					break
				}
			}
			if ok {
				out = append(out, SearchResult{Category: c, Entry: e})
			}
		}
	}

	SortResults(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SortResults orders results by category, then by entry name.
func SortResults(results []SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Category != results[j].Category {
			return results[i].Category < results[j].Category
		}
		return results[i].Entry.Name < results[j].Entry.Name
	})
}

func tokenize(q string) []string {
	parts := strings.Fields(q)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.ToLower(p))
	}
	return out
}
