// Package index renders the decisions index markdown from discovered
// records.
package index

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/grenas405/meta-documentation/internal/adr"
	"github.com/grenas405/meta-documentation/internal/workspace"
)

// FileName is the index file written when the directory has none yet.
const FileName = "README.md"

const marker = "<!-- generated: regenerate with metadoc index -->"

// Build renders the index markdown: records grouped by lifecycle status in
// lifecycle order, each group sorted by id. Records with unparsable statuses
// land in extra groups after the canonical ones.
func Build(decisions []workspace.DecisionInfo) string {
	groups := make(map[string][]workspace.DecisionInfo)
	var extras []string
	for _, d := range decisions {
		key := "UNKNOWN"
		if st, err := adr.ParseStatus(d.Status); err == nil {
			key = st.String()
		} else if trimmed := strings.ToUpper(strings.TrimSpace(d.Status)); trimmed != "" {
			key = trimmed
		}
		if _, seen := groups[key]; !seen && !adr.Status(key).Valid() {
			extras = append(extras, key)
		}
		groups[key] = append(groups[key], d)
	}
	sort.Strings(extras)

	var order []string
	for _, st := range adr.Statuses() {
		order = append(order, st.String())
	}
	order = append(order, extras...)

	var b strings.Builder
	b.WriteString("# Decision Log\n\n")
	b.WriteString(marker + "\n")

	for _, key := range order {
		group := groups[key]
		if len(group) == 0 {
			continue
		}
		sort.Slice(group, func(i, j int) bool { return group[i].ID < group[j].ID })
		fmt.Fprintf(&b, "\n## %s\n\n", key)
		for _, d := range group {
			b.WriteString("- " + entry(d) + "\n")
		}
	}
	return b.String()
}

func entry(d workspace.DecisionInfo) string {
	label := d.ID
	if d.Title != "" {
		label = fmt.Sprintf("%s: %s", d.ID, d.Title)
	}
	return fmt.Sprintf("[%s](%s)", label, filepath.Base(d.Path))
}

// Write renders the index into dir, reusing the existing index file name when
// one is already there, and returns the path written.
func Write(dir string, decisions []workspace.DecisionInfo) (string, error) {
	name := FileName
	for _, candidate := range []string{"README.md", "index.md"} {
		if _, err := os.Stat(filepath.Join(dir, candidate)); err == nil {
			name = candidate
			break
		}
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(Build(decisions)), 0644); err != nil {
		return "", fmt.Errorf("writing index: %w", err)
	}
	return path, nil
}
