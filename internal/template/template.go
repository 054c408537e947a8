package template

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// Context holds all variables available for record template resolution.
type Context struct {
	// Frontmatter variables
	ID         string
	Title      string
	Status     string
	Date       string
	ReviewDate string
	Author     string
	Tags       []string
	Related    []string
	Supersedes string

	// Body variables (collected by the wizard, empty in template mode)
	Context      string
	Decision     string
	Rationale    string
	Alternatives []string
	Positive     []string
	Negative     []string
}

// RecordTemplateName is the filename looked up inside a custom templates
// directory.
const RecordTemplateName = "record.md.tmpl"

// DefaultRecord is the built-in decision record template. Free-text scalars
// go through yamlquote so titles with colons or quotes stay valid YAML.
const DefaultRecord = `---
id: {{ .ID }}
title: {{ yamlquote .Title }}
status: {{ .Status }}
date: {{ .Date }}
{{- if .ReviewDate }}
review_date: {{ .ReviewDate }}
{{- end }}
{{- if .Author }}
author: {{ yamlquote .Author }}
{{- end }}
{{- if .Tags }}
tags:
{{- range .Tags }}
  - {{ . }}
{{- end }}
{{- end }}
{{- if .Related }}
related:
{{- range .Related }}
  - {{ . }}
{{- end }}
{{- end }}
{{- if .Supersedes }}
supersedes: {{ .Supersedes }}
{{- end }}
---

# {{ .ID }}: {{ .Title }}

## Context

{{ if .Context }}{{ .Context }}{{ else }}Describe the forces at play and the problem this decision addresses.{{ end }}

## Decision

{{ if .Decision }}{{ .Decision }}{{ else }}State the decision in full sentences.{{ end }}

## Rationale

{{ if .Rationale }}{{ .Rationale }}{{ else }}Explain why this option won over the alternatives.{{ end }}

## Alternatives

{{ if .Alternatives }}{{- range .Alternatives }}
- {{ . }}
{{- end }}{{ else }}- List the options that were rejected, with a short reason each.{{ end }}

## Consequences

### Positive

{{ if .Positive }}{{- range .Positive }}
- {{ . }}
{{- end }}{{ else }}- Expected benefits.{{ end }}

### Negative

{{ if .Negative }}{{- range .Negative }}
- {{ . }}
{{- end }}{{ else }}- Known costs and risks.{{ end }}
`

var funcMap = template.FuncMap{
	"yamlquote": yamlQuote,
}

// Render resolves template expressions in the given string.
// Uses Go's text/template syntax: {{.ID}}, {{.Title}}, {{range .Tags}}.
// Returns the input unchanged if it contains no template delimiters.
func Render(tmpl string, ctx *Context) (string, error) {
	// Fast path: no template delimiters means no work to do.
	if !strings.Contains(tmpl, "{{") {
		return tmpl, nil
	}

	t, err := template.New("").Funcs(funcMap).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("template: parse: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("template: render: %w", err)
	}

	return buf.String(), nil
}

// LoadRecord returns the record template from dir, falling back to the
// built-in default when dir is empty or holds no record.md.tmpl.
func LoadRecord(dir string) (string, error) {
	if dir == "" {
		return DefaultRecord, nil
	}
	data, err := os.ReadFile(filepath.Join(dir, RecordTemplateName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultRecord, nil
		}
		return "", fmt.Errorf("template: read %s: %w", RecordTemplateName, err)
	}
	return string(data), nil
}

// yamlQuote wraps s in single quotes, doubling any embedded single quotes.
// Single-quoted YAML scalars have no escape sequences, so any title is safe.
func yamlQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
