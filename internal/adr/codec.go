package adr

import (
	"encoding"
	"errors"
	"fmt"
	"maps"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	_ encoding.TextMarshaler   = (*Doc)(nil)
	_ encoding.TextUnmarshaler = (*Doc)(nil)
)

// Frontmatter holds parsed YAML frontmatter from a decision file.
type Frontmatter struct {
	ID         string   `yaml:"id"`
	Title      string   `yaml:"title"`
	Status     string   `yaml:"status"`
	Date       string   `yaml:"date,omitempty"`
	ReviewDate string   `yaml:"review_date,omitempty"`
	Tags       []string `yaml:"tags,omitempty"`
	Related    []string `yaml:"related,omitempty"`
	Supersedes string   `yaml:"supersedes,omitempty"`
}

// Doc represents one decision record as stored on disk: the typed
// frontmatter, the raw frontmatter map and node (so unknown keys survive a
// round-trip), and the markdown body.
type Doc struct {
	Frontmatter     Frontmatter
	FrontmatterRaw  map[string]any
	FrontmatterNode *yaml.Node
	Body            string
	Path            string
	RawContent      string
}

// parseFrontmatter splits YAML frontmatter (delimited by ---) from body.
func parseFrontmatter(content string) (Frontmatter, map[string]any, *yaml.Node, string, error) {
	var fm Frontmatter

	if !strings.HasPrefix(content, "---") {
		// No frontmatter — return empty fields with the whole content as body.
		return fm, nil, nil, content, nil
	}

	// Find the closing ---
	rest := content[3:]
	if strings.HasPrefix(rest, "\r\n") {
		rest = rest[2:]
	} else if strings.HasPrefix(rest, "\n") {
		rest = rest[1:]
	}

	idx := strings.Index(rest, "\n---")
	if idx < 0 {
		return fm, nil, nil, content, errors.New("closing frontmatter delimiter not found")
	}

	yamlBlock := rest[:idx]
	body := rest[idx+4:] // skip \n---

	var rawFrontmatter map[string]any
	if err := yaml.Unmarshal([]byte(yamlBlock), &rawFrontmatter); err != nil {
		return fm, nil, nil, content, fmt.Errorf("unmarshalling frontmatter: %w", err)
	}
	if err := yaml.Unmarshal([]byte(yamlBlock), &fm); err != nil {
		return fm, nil, nil, content, fmt.Errorf("unmarshalling frontmatter: %w", err)
	}
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(yamlBlock), &node); err != nil {
		return fm, nil, nil, content, fmt.Errorf("unmarshalling frontmatter: %w", err)
	}

	return fm, rawFrontmatter, &node, body, nil
}

func (d *Doc) MarshalText() ([]byte, error) {
	var fmBytes []byte
	var err error
	if d.FrontmatterNode != nil {
		updateFrontmatterNode(d.FrontmatterNode, "id", d.Frontmatter.ID)
		updateFrontmatterNode(d.FrontmatterNode, "title", d.Frontmatter.Title)
		updateFrontmatterNode(d.FrontmatterNode, "status", d.Frontmatter.Status)
		if d.Frontmatter.Date != "" {
			updateFrontmatterNode(d.FrontmatterNode, "date", d.Frontmatter.Date)
		}
		if d.Frontmatter.ReviewDate != "" {
			updateFrontmatterNode(d.FrontmatterNode, "review_date", d.Frontmatter.ReviewDate)
		}
		if d.Frontmatter.Supersedes != "" {
			updateFrontmatterNode(d.FrontmatterNode, "supersedes", d.Frontmatter.Supersedes)
		}
		if len(d.Frontmatter.Related) > 0 {
			updateFrontmatterNodeList(d.FrontmatterNode, "related", d.Frontmatter.Related)
		}
		if len(d.Frontmatter.Tags) > 0 {
			updateFrontmatterNodeList(d.FrontmatterNode, "tags", d.Frontmatter.Tags)
		}
		fmBytes, err = yaml.Marshal(d.FrontmatterNode)
	} else {
		fmMap := make(map[string]any)
		if d.FrontmatterRaw != nil {
			maps.Copy(fmMap, d.FrontmatterRaw)
		}
		fmMap["id"] = d.Frontmatter.ID
		fmMap["title"] = d.Frontmatter.Title
		fmMap["status"] = d.Frontmatter.Status
		if d.Frontmatter.Date != "" {
			fmMap["date"] = d.Frontmatter.Date
		}
		if d.Frontmatter.ReviewDate != "" {
			fmMap["review_date"] = d.Frontmatter.ReviewDate
		}
		if d.Frontmatter.Supersedes != "" {
			fmMap["supersedes"] = d.Frontmatter.Supersedes
		}
		if len(d.Frontmatter.Related) > 0 {
			fmMap["related"] = d.Frontmatter.Related
		}
		if len(d.Frontmatter.Tags) > 0 {
			fmMap["tags"] = d.Frontmatter.Tags
		}
		fmBytes, err = yaml.Marshal(&fmMap)
	}
	if err != nil {
		return nil, fmt.Errorf("marshaling frontmatter: %w", err)
	}

	var buf strings.Builder
	buf.WriteString("---\n")
	buf.Write(fmBytes)
	buf.WriteString("---")
	buf.WriteString(d.Body)
	return []byte(buf.String()), nil
}

func (d *Doc) UnmarshalText(text []byte) error {
	raw := string(text)
	if strings.TrimSpace(raw) == "" {
		return errors.New("decision file is empty")
	}

	fm, rawFrontmatter, node, body, err := parseFrontmatter(raw)
	if err != nil {
		return fmt.Errorf("parsing frontmatter: %w", err)
	}

	d.Frontmatter = fm
	d.FrontmatterRaw = rawFrontmatter
	d.FrontmatterNode = node
	d.Body = body
	d.RawContent = raw
	return nil
}

// Record assembles the pure decision record from the frontmatter and the
// body sections. An unrecognized status value is carried through verbatim so
// that document checks can report it.
func (d *Doc) Record() ADR {
	rec := New(d.Frontmatter.ID, d.Frontmatter.Title)
	if st, err := ParseStatus(d.Frontmatter.Status); err == nil {
		rec.Status = st
	} else if d.Frontmatter.Status != "" {
		rec.Status = Status(d.Frontmatter.Status)
	}

	secs := ParseSections([]byte(d.Body))
	rec.Context = secs.Context
	rec.Decision = secs.Decision
	rec.Rationale = secs.Rationale
	if len(secs.Alternatives) > 0 {
		rec.Alternatives = secs.Alternatives
	}
	if len(secs.Positive) > 0 {
		rec.Consequences.Positive = secs.Positive
	}
	if len(secs.Negative) > 0 {
		rec.Consequences.Negative = secs.Negative
	}
	rec.Consequences.Mitigation = secs.Mitigation
	if len(d.Frontmatter.Related) > 0 {
		rec.Related = append([]string{}, d.Frontmatter.Related...)
	}
	rec.ReviewDate = d.Frontmatter.ReviewDate
	return rec
}

// Load reads and parses the decision file at path.
func Load(path string) (*Doc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading decision file: %w", err)
	}
	var d Doc
	if err := d.UnmarshalText(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	d.Path = path
	return &d, nil
}

func updateFrontmatterNode(node *yaml.Node, key, value string) {
	mapping := mappingNode(node)
	if mapping == nil {
		return
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content[i+1].Kind = yaml.ScalarNode
			mapping.Content[i+1].Tag = "!!str"
			mapping.Content[i+1].Value = value
			mapping.Content[i+1].Content = nil
			return
		}
	}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
	)
}

func updateFrontmatterNodeList(node *yaml.Node, key string, values []string) {
	mapping := mappingNode(node)
	if mapping == nil {
		return
	}
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, v := range values {
		seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v})
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content[i+1] = seq
			return
		}
	}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		seq,
	)
}

func mappingNode(node *yaml.Node) *yaml.Node {
	if node == nil {
		return nil
	}
	current := node
	if current.Kind == yaml.DocumentNode && len(current.Content) > 0 {
		current = current.Content[0]
	}
	if current.Kind != yaml.MappingNode {
		return nil
	}
	return current
}
