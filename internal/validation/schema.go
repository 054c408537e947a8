// Package validation checks metadoc YAML files against the embedded JSON
// Schemas published in the schemas package.
package validation

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/grenas405/meta-documentation/schemas"
)

// defaultPrinter is used to format schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

// checklistSchema is the compiled JSON Schema for compliance checklist files.
var checklistSchema *jsonschema.Schema

// frontmatterSchema is the compiled JSON Schema for decision frontmatter.
var frontmatterSchema *jsonschema.Schema

func init() {
	checklistSchema = mustCompileSchema(schemas.ChecklistSchemaJSON, "checklist.schema.json")
	frontmatterSchema = mustCompileSchema(schemas.FrontmatterSchemaJSON, "adr-frontmatter.schema.json")
}

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	var schemaDoc any
	if err := json.Unmarshal([]byte(raw), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// ValidateChecklistFile validates the checklist YAML file at path.
func ValidateChecklistFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading checklist file: %w", err)
	}
	return ValidateChecklistBytes(data), nil
}

// ValidateChecklistBytes validates raw YAML bytes against the checklist schema.
func ValidateChecklistBytes(data []byte) []string {
	var yamlDoc any
	if err := yaml.Unmarshal(data, &yamlDoc); err != nil {
		return []string{fmt.Sprintf("YAML parse error: %v", err)}
	}
	if yamlDoc == nil {
		// An empty file is an empty checklist.
		yamlDoc = map[string]any{}
	}
	return validateAgainstSchema(checklistSchema, convertToJSONCompatible(yamlDoc))
}

// ValidateFrontmatter validates an already-decoded frontmatter map against
// the decision record schema. A nil map reports the whole header as missing.
func ValidateFrontmatter(raw map[string]any) []string {
	if raw == nil {
		return []string{"/: frontmatter is missing"}
	}
	return validateAgainstSchema(frontmatterSchema, convertToJSONCompatible(raw))
}

func validateAgainstSchema(schema *jsonschema.Schema, instance any) []string {
	err := schema.Validate(instance)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectSchemaErrors(ve, &errs)
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}

// convertToJSONCompatible converts YAML-decoded values to JSON-compatible
// types. yaml.v3 resolves unquoted ISO dates to time.Time; the schemas
// expect date strings.
func convertToJSONCompatible(v any) any {
	switch val := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, v2 := range val {
			result[k] = convertToJSONCompatible(v2)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, v2 := range val {
			result[i] = convertToJSONCompatible(v2)
		}
		return result
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 {
			return val.Format("2006-01-02")
		}
		return val.Format(time.RFC3339)
	default:
		return val
	}
}
