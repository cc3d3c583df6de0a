package registry

import "strings"

// DanglingRef is an internal dependency that names no entry in the index.
type DanglingRef struct {
	Category Category
	Entry    string
	Ref      string
}

// ParseRef splits an internal dependency reference such as "utils/isBrowser".
func ParseRef(ref string) (Category, string, bool) {
	c, name, ok := strings.Cut(ref, "/")
	if !ok || name == "" {
		return "", "", false
	}
	cat := Category(c)
	if !cat.Valid() {
		return "", "", false
	}
	return cat, name, true
}

// Dangling lists internal dependency references that do not resolve.
// The renderer never calls this; references are rendered as written.
func Dangling(idx *Index) []DanglingRef {
	var out []DanglingRef
	for _, c := range Categories {
		for name, e := range idx.Entries(c).All() {
			for _, ref := range e.InternalDependencies {
				cat, target, ok := ParseRef(ref)
				if ok {
					if _, found := idx.Lookup(cat, target); found {
						continue
					}
				}
				out = append(out, DanglingRef{Category: c, Entry: name, Ref: ref})
			}
		}
	}
	return out
}

// Duplicates returns, per "<category>/<name>", the internal dependency
// references listed more than once.
func Duplicates(idx *Index) map[string][]string {
	out := map[string][]string{}
	for _, c := range Categories {
		for name, e := range idx.Entries(c).All() {
			seen := map[string]int{}
			for _, ref := range e.InternalDependencies {
				seen[ref]++
				if seen[ref] == 2 {
					key := string(c) + "/" + name
					out[key] = append(out[key], ref)
				}
			}
		}
	}
	return out
}
