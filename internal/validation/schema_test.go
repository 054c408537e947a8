package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const validChecklistYAML = `unixPhilosophy:
  singlePurpose: true
  composability: true
  explicitDataFlow: true
  minimalDependencies: true
security:
  explicitPermissions: true
  inputValidation: true
  parameterizedQueries: true
  multiTenantIsolation: true
  defenseInDepth: true
architecture:
  layeredBoundaries: true
  dependencyInjection: true
  statelessHandlers: true
  gracefulDegradation: true
`

const unknownCategoryYAML = `security:
  explicitPermissions: true
observability:
  tracing: true
`

const nonBooleanFlagYAML = `security:
  explicitPermissions: "yes please"
`

func TestValidateChecklistBytes_Valid(t *testing.T) {
	errs := ValidateChecklistBytes([]byte(validChecklistYAML))
	require.Empty(t, errs, "valid checklist should have no errors")
}

func TestValidateChecklistBytes_PartialIsValid(t *testing.T) {
	errs := ValidateChecklistBytes([]byte("security:\n  inputValidation: false\n"))
	require.Empty(t, errs, "partial checklists are schema-valid")
}

func TestValidateChecklistBytes_EmptyFileIsValid(t *testing.T) {
	require.Empty(t, ValidateChecklistBytes(nil))
	require.Empty(t, ValidateChecklistBytes([]byte("# comments only\n")))
}

func TestValidateChecklistBytes_UnknownCategory(t *testing.T) {
	errs := ValidateChecklistBytes([]byte(unknownCategoryYAML))
	require.NotEmpty(t, errs, "unknown category should fail")
	require.Contains(t, joinErrs(errs), "observability")
}

func TestValidateChecklistBytes_NonBooleanFlag(t *testing.T) {
	errs := ValidateChecklistBytes([]byte(nonBooleanFlagYAML))
	require.NotEmpty(t, errs, "non-boolean flag should fail")
	require.Contains(t, joinErrs(errs), "/security/explicitPermissions")
}

func TestValidateChecklistBytes_UnknownFlagInCategory(t *testing.T) {
	errs := ValidateChecklistBytes([]byte("security:\n  threatModeling: true\n"))
	require.NotEmpty(t, errs)
	require.Contains(t, joinErrs(errs), "threatModeling")
}

func TestValidateChecklistBytes_MalformedYAML(t *testing.T) {
	errs := ValidateChecklistBytes([]byte("security: [unclosed"))
	require.NotEmpty(t, errs)
	require.Contains(t, errs[0], "YAML parse error")
}

func TestValidateChecklistFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "compliance.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validChecklistYAML), 0644))

	errs, err := ValidateChecklistFile(path)
	require.NoError(t, err)
	require.Empty(t, errs)

	_, err = ValidateChecklistFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestValidateFrontmatter_Valid(t *testing.T) {
	errs := ValidateFrontmatter(map[string]any{
		"id":     "ADR-0001",
		"title":  "Use Go",
		"status": "PROPOSED",
		"date":   "2024-06-01",
		"tags":   []any{"language"},
	})
	require.Empty(t, errs)
}

func TestValidateFrontmatter_UnknownKeysAllowed(t *testing.T) {
	errs := ValidateFrontmatter(map[string]any{
		"id":     "ADR-0001",
		"title":  "Use Go",
		"status": "PROPOSED",
		"owner":  "platform-team",
	})
	require.Empty(t, errs, "unknown frontmatter keys are allowed")
}

func TestValidateFrontmatter_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		raw     map[string]any
		wantLoc string
	}{
		{
			name:    "missing required fields",
			raw:     map[string]any{"id": "ADR-0001"},
			wantLoc: "/",
		},
		{
			name:    "bad id shape",
			raw:     map[string]any{"id": "ADR-1", "title": "T", "status": "PROPOSED"},
			wantLoc: "/id",
		},
		{
			name:    "status outside enum",
			raw:     map[string]any{"id": "ADR-0001", "title": "T", "status": "DRAFT"},
			wantLoc: "/status",
		},
		{
			name:    "non-string related entry",
			raw:     map[string]any{"id": "ADR-0001", "title": "T", "status": "PROPOSED", "related": []any{7}},
			wantLoc: "/related/0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateFrontmatter(tt.raw)
			require.NotEmpty(t, errs)
			require.Contains(t, joinErrs(errs), tt.wantLoc)
		})
	}
}

func TestValidateFrontmatter_Nil(t *testing.T) {
	errs := ValidateFrontmatter(nil)
	require.NotEmpty(t, errs)
}

func joinErrs(errs []string) string {
	result := ""
	for _, e := range errs {
		result += e + "\n"
	}
	return result
}
