package render

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kamusis/regdoc/internal/registry"
)

// SidebarFile is the navigation manifest written under the docs root.
const SidebarFile = "sidebar.json"

// NavItem is one navigation link; Text is the label shown by the site.
type NavItem struct {
	Text string `json:"text"`
	Link string `json:"link"`
}

// NavGroup is a titled list of links.
type NavGroup struct {
	Text  string    `json:"text"`
	Items []NavItem `json:"items"`
}

// Sidebar maps a route prefix such as "/hooks/" to its navigation groups.
type Sidebar map[string][]NavGroup

// Title returns the display name of a category, e.g. "Hooks".
func Title(c registry.Category) string {
	return cases.Title(language.English).String(string(c))
}

// RoutePrefix returns the route under which a category's pages live.
func RoutePrefix(c registry.Category) string {
	return "/" + string(c) + "/"
}

// EntryLink returns the route of one entry page.
func EntryLink(c registry.Category, name string) string {
	return "/" + string(c) + "/" + name
}

// WriteSidebar writes s to docsRoot/sidebar.json, replacing any previous manifest.
func WriteSidebar(docsRoot string, s Sidebar) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal sidebar: %w", err)
	}
	if err := os.MkdirAll(docsRoot, 0o755); err != nil {
		return fmt.Errorf("cannot create docs dir %s: %w", docsRoot, err)
	}
	p := filepath.Join(docsRoot, SidebarFile)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("cannot write sidebar %s: %w", p, err)
	}
	return nil
}

// LoadSidebar reads a navigation manifest, returning an empty one when the
// file is absent.
func LoadSidebar(docsRoot string) (Sidebar, error) {
	b, err := os.ReadFile(filepath.Join(docsRoot, SidebarFile))
	if err != nil {
		if os.IsNotExist(err) {
			return Sidebar{}, nil
		}
		return nil, fmt.Errorf("cannot read sidebar: %w", err)
	}
	var s Sidebar
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("invalid sidebar JSON: %w", err)
	}
	return s, nil
}
