// Package jsdoc parses the leading documentation block of a source file into
// a description, a parameter list and a return descriptor.
//
// Parsing is a line-oriented state machine:
//
//	Seeking --"/**"--> InDescription --"@tag"--> InTags
//	InDescription, InTags --"*/"--> Done
//
// Untagged lines seen while InTags are ignored.
package jsdoc

import (
	"strings"
	"unicode"
)

// Param is one @param annotation.
type Param struct {
	Name        string
	Type        string
	Description string
	// Optional is set when the name was written in brackets, e.g. [dep=[]].
	Optional bool
}

// Returns is the @returns annotation.
type Returns struct {
	Type        string
	Description string
}

// DocData is the render model extracted from a block comment.
type DocData struct {
	Description string
	Params      []Param
	Returns     *Returns
}

// State is a parser state.
type State int

const (
	Seeking State = iota
	InDescription
	InTags
	Done
)

func (s State) String() string {
	switch s {
	case Seeking:
		return "seeking"
	case InDescription:
		return "description"
	case InTags:
		return "tags"
	case Done:
		return "done"
	}
	return "unknown"
}

// Parser accumulates DocData one line at a time.
type Parser struct {
	state State
	desc  []string
	data  DocData
}

// State returns the current parser state.
func (p *Parser) State() State { return p.state }

// Feed consumes one raw source line.
func (p *Parser) Feed(line string) {
	switch p.state {
	case Seeking:
		i := strings.Index(line, "/**")
		if i < 0 {
			return
		}
		p.state = InDescription
		p.body(line[i+3:])
	case InDescription, InTags:
		p.body(line)
	}
}

// body handles comment content, stopping at the end marker.
func (p *Parser) body(line string) {
	if i := strings.Index(line, "*/"); i >= 0 {
		p.content(line[:i])
		p.state = Done
		return
	}
	p.content(line)
}

func (p *Parser) content(raw string) {
	line := cleanLine(raw)
	if strings.HasPrefix(line, "@") {
		p.state = InTags
		p.tag(line)
		return
	}
	if p.state == InDescription && line != "" {
		p.desc = append(p.desc, line)
	}
}

func (p *Parser) tag(line string) {
	name, rest := cutSpace(line)
	switch name {
	case "@param", "@arg", "@argument":
		if prm, ok := parseParam(rest); ok {
			p.data.Params = append(p.data.Params, prm)
		}
	case "@returns", "@return":
		// A return annotation without a {Type} is ignored.
		typ, desc := splitType(rest)
		if typ == "" {
			return
		}
		p.data.Returns = &Returns{Type: typ, Description: desc}
	}
}

// Result returns the data collected so far.
func (p *Parser) Result() DocData {
	d := p.data
	d.Description = strings.TrimSpace(strings.Join(p.desc, "\n"))
	return d
}

// Parse extracts DocData from the first block comment of content.
// ok is false when content has no block comment, or when the first one is
// never closed by "*/".
func Parse(content string) (DocData, bool) {
	var p Parser
	for _, line := range strings.Split(content, "\n") {
		p.Feed(line)
		if p.state == Done {
			break
		}
	}
	if p.state != Done {
		return DocData{}, false
	}
	return p.Result(), true
}

// cleanLine trims a comment line and strips its leading "*" marker plus one
// optional space.
func cleanLine(raw string) string {
	line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
	if strings.HasPrefix(line, "*") {
		line = strings.TrimPrefix(line[1:], " ")
	}
	return strings.TrimSpace(line)
}

// splitType splits "{Type} rest" into Type and rest. Braces may nest, as in
// {Record<string, {a: number}>}. Text without a leading brace has no type.
func splitType(s string) (string, string) {
	if !strings.HasPrefix(s, "{") {
		return "", strings.TrimSpace(s)
	}
	depth := 0
	for i, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return strings.TrimSpace(s[1:i]), strings.TrimSpace(s[i+1:])
			}
		}
	}
	// Unbalanced: treat everything after the brace as the type.
	return strings.TrimSpace(s[1:]), ""
}

func parseParam(s string) (Param, bool) {
	typ, rest := splitType(s)
	name, desc, optional := splitName(rest)
	if name == "" {
		return Param{}, false
	}
	desc = strings.TrimSpace(strings.TrimPrefix(desc, "- "))
	return Param{Name: name, Type: typ, Description: desc, Optional: optional}, true
}

// splitName takes the parameter name off the front of s. A bracketed name
// runs to its matching bracket so defaults like [dep=[]] stay intact.
func splitName(s string) (name, rest string, optional bool) {
	if strings.HasPrefix(s, "[") {
		depth := 0
		for i, r := range s {
			switch r {
			case '[':
				depth++
			case ']':
				depth--
				if depth == 0 {
					return s[:i+1], strings.TrimSpace(s[i+1:]), true
				}
			}
		}
		return s, "", true
	}
	name, rest = cutSpace(s)
	return name, rest, false
}

// cutSpace splits s at its first whitespace run.
func cutSpace(s string) (string, string) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}
