package adr

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Sections holds the markdown body broken out by its canonical headings.
// Prose sections keep their markdown source; list sections decode to one
// string per top-level bullet.
type Sections struct {
	Context      string
	Decision     string
	Rationale    string
	Alternatives []string
	Positive     []string
	Negative     []string
	Mitigation   []string
}

// ParseSections walks the markdown AST and assigns each block to the section
// introduced by the nearest preceding heading. Level-2 headings name the
// sections; level-3 headings under Consequences select the outcome lists.
// Heading matching is case-insensitive. Unrecognized sections are ignored.
func ParseSections(source []byte) Sections {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var secs Sections
	var section string // current level-2 section, lowercased
	var subsection string

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			name := strings.ToLower(strings.TrimSpace(nodeText(h, source)))
			switch {
			case h.Level <= 2:
				section = name
				subsection = ""
			case h.Level == 3 && section == "consequences":
				subsection = name
			}
			continue
		}

		switch section {
		case "context":
			secs.Context = appendBlock(secs.Context, blockText(n, source))
		case "decision":
			secs.Decision = appendBlock(secs.Decision, blockText(n, source))
		case "rationale":
			secs.Rationale = appendBlock(secs.Rationale, blockText(n, source))
		case "alternatives":
			if list, ok := n.(*ast.List); ok {
				secs.Alternatives = append(secs.Alternatives, listItems(list, source)...)
			}
		case "consequences":
			list, ok := n.(*ast.List)
			if !ok {
				continue
			}
			switch subsection {
			case "positive":
				secs.Positive = append(secs.Positive, listItems(list, source)...)
			case "negative":
				secs.Negative = append(secs.Negative, listItems(list, source)...)
			case "mitigation":
				secs.Mitigation = append(secs.Mitigation, listItems(list, source)...)
			}
		}
	}
	return secs
}

// SectionNames returns the level-2 heading names found in source, lowercased,
// in document order. Lint checks use it to verify required sections.
func SectionNames(source []byte) []string {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var names []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok && h.Level == 2 {
			names = append(names, strings.ToLower(strings.TrimSpace(nodeText(h, source))))
		}
	}
	return names
}

// nodeText collects the plain text of n and its descendants.
func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

// blockText returns the raw source lines of a block node.
func blockText(n ast.Node, source []byte) string {
	lines := n.Lines()
	if lines == nil || lines.Len() == 0 {
		// Container blocks (lists, quotes) carry no lines themselves.
		return strings.TrimSpace(nodeText(n, source))
	}
	var sb strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	return strings.TrimSpace(sb.String())
}

// listItems returns the text of each top-level item in list.
func listItems(list *ast.List, source []byte) []string {
	var items []string
	for li := list.FirstChild(); li != nil; li = li.NextSibling() {
		if txt := strings.TrimSpace(nodeText(li, source)); txt != "" {
			items = append(items, txt)
		}
	}
	return items
}

// appendBlock joins consecutive blocks of the same section with a blank line.
func appendBlock(existing, block string) string {
	if block == "" {
		return existing
	}
	if existing == "" {
		return block
	}
	return existing + "\n\n" + block
}
