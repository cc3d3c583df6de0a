package scan

import (
	"regexp"
	"strings"
)

const (
	blockStart = "/**"
	blockEnd   = "*/"
)

// importRe matches imports through the internal alias, e.g.
// import { isBrowser } from "@/utils/isBrowser".
var importRe = regexp.MustCompile(`(?:from|import)\s+["']@/(hooks|utils)/(\w+)["']`)

// ExtractDescription returns the first non-empty line of the leading block
// comment, with leading '*' markers stripped. ok is false when the file has no
// terminated block comment or the comment holds no text.
func ExtractDescription(content string) (string, bool) {
	start := strings.Index(content, blockStart)
	if start < 0 {
		return "", false
	}
	body := content[start+len(blockStart):]
	end := strings.Index(body, blockEnd)
	if end < 0 {
		return "", false
	}
	for _, ln := range strings.Split(body[:end], "\n") {
		ln = strings.TrimSpace(ln)
		ln = strings.TrimLeft(ln, "*")
		ln = strings.TrimSpace(ln)
		if ln != "" {
			return ln, true
		}
	}
	return "", false
}

// FindInternalDependencies collects "<hooks|utils>/<identifier>" for every
// aliased import in content, in discovery order. Duplicates are kept unless
// dedupe is set.
func FindInternalDependencies(content string, dedupe bool) []string {
	deps := []string{}
	seen := map[string]bool{}
	for _, m := range importRe.FindAllStringSubmatch(content, -1) {
		dep := m[1] + "/" + m[2]
		if dedupe {
			if seen[dep] {
				continue
			}
			seen[dep] = true
		}
		deps = append(deps, dep)
	}
	return deps
}
