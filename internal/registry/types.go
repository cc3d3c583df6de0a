package registry

// Kind is the type of a catalog item.
type Kind string

const (
	KindHook Kind = "hook"
	KindUtil Kind = "util"
)

// Category is one partition of the index document.
type Category string

const (
	CategoryHooks Category = "hooks"
	CategoryUtils Category = "utils"
)

// Categories lists the index partitions in processing order.
var Categories = []Category{CategoryHooks, CategoryUtils}

// Kind returns the item kind stored under c.
func (c Category) Kind() Kind {
	if c == CategoryHooks {
		return KindHook
	}
	return KindUtil
}

// Valid reports whether c is a known partition.
func (c Category) Valid() bool {
	return c == CategoryHooks || c == CategoryUtils
}

// Category returns the index partition holding items of kind k.
func (k Kind) Category() Category {
	if k == KindHook {
		return CategoryHooks
	}
	return CategoryUtils
}

// FileRef is one copy-manifest record. Path and Target are relative to the
// source root and use forward slashes.
type FileRef struct {
	Type   Kind   `json:"type"`
	Path   string `json:"path"`
	Target string `json:"target"`
}

// Entry is one catalog item as stored in the index document.
type Entry struct {
	Name                 string    `json:"name"`
	Description          string    `json:"description"`
	Category             string    `json:"category,omitempty"`
	Version              string    `json:"version"`
	Files                []FileRef `json:"files"`
	Dependencies         []string  `json:"dependencies"`
	InternalDependencies []string  `json:"internalDependencies"`
}

// PrimaryFile returns the first file whose type matches kind, falling back to
// the first listed file.
func (e Entry) PrimaryFile(kind Kind) (FileRef, bool) {
	for _, f := range e.Files {
		if f.Type == kind {
			return f, true
		}
	}
	if len(e.Files) > 0 {
		return e.Files[0], true
	}
	return FileRef{}, false
}

// Index is the document exchanged between the indexer and the doc renderer.
type Index struct {
	Schema string  `json:"$schema"`
	Hooks  Entries `json:"hooks"`
	Utils  Entries `json:"utils"`
}

// New returns an empty index carrying schemaRef.
func New(schemaRef string) *Index {
	return &Index{Schema: schemaRef}
}

// Entries returns the partition for c, or nil for an unknown category.
func (idx *Index) Entries(c Category) *Entries {
	switch c {
	case CategoryHooks:
		return &idx.Hooks
	case CategoryUtils:
		return &idx.Utils
	}
	return nil
}

// Lookup finds an entry by category and name.
func (idx *Index) Lookup(c Category, name string) (Entry, bool) {
	es := idx.Entries(c)
	if es == nil {
		return Entry{}, false
	}
	return es.Get(name)
}

// Len returns the total number of entries across both partitions.
func (idx *Index) Len() int {
	return idx.Hooks.Len() + idx.Utils.Len()
}
