// Package schemas embeds the published JSON Schemas for metadoc file formats.
package schemas

import _ "embed"

// ChecklistSchemaJSON is the JSON Schema for compliance checklist YAML files.
//
//go:embed checklist.schema.json
var ChecklistSchemaJSON string

// FrontmatterSchemaJSON is the JSON Schema for decision record frontmatter.
//
//go:embed adr-frontmatter.schema.json
var FrontmatterSchemaJSON string
