// Package checklist defines the compliance checklist model and its validator.
//
// A checklist groups boolean practice flags into three categories: Unix
// philosophy, security, and architecture. Categories are optional; a category
// that is absent counts as "not evaluated" and contributes no violations. A
// category that is present is judged flag by flag, and every false flag maps
// to one fixed, human-readable violation message.
package checklist

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnixPhilosophy holds the Unix-philosophy practice flags.
type UnixPhilosophy struct {
	SinglePurpose       bool `yaml:"singlePurpose" json:"singlePurpose"`
	Composability       bool `yaml:"composability" json:"composability"`
	ExplicitDataFlow    bool `yaml:"explicitDataFlow" json:"explicitDataFlow"`
	MinimalDependencies bool `yaml:"minimalDependencies" json:"minimalDependencies"`
}

// Security holds the security practice flags.
type Security struct {
	ExplicitPermissions  bool `yaml:"explicitPermissions" json:"explicitPermissions"`
	InputValidation      bool `yaml:"inputValidation" json:"inputValidation"`
	ParameterizedQueries bool `yaml:"parameterizedQueries" json:"parameterizedQueries"`
	MultiTenantIsolation bool `yaml:"multiTenantIsolation" json:"multiTenantIsolation"`
	DefenseInDepth       bool `yaml:"defenseInDepth" json:"defenseInDepth"`
}

// Architecture holds the architecture practice flags.
type Architecture struct {
	LayeredBoundaries   bool `yaml:"layeredBoundaries" json:"layeredBoundaries"`
	DependencyInjection bool `yaml:"dependencyInjection" json:"dependencyInjection"`
	StatelessHandlers   bool `yaml:"statelessHandlers" json:"statelessHandlers"`
	GracefulDegradation bool `yaml:"gracefulDegradation" json:"gracefulDegradation"`
}

// ComplianceChecklist is a partially-supplied set of practice categories.
// A nil category means the category was not evaluated.
type ComplianceChecklist struct {
	UnixPhilosophy *UnixPhilosophy `yaml:"unixPhilosophy,omitempty" json:"unixPhilosophy,omitempty"`
	Security       *Security       `yaml:"security,omitempty" json:"security,omitempty"`
	Architecture   *Architecture   `yaml:"architecture,omitempty" json:"architecture,omitempty"`
}

// ValidationResult reports the outcome of validating a checklist.
type ValidationResult struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations"`
}

// Violations returns the fixed message for every false flag, in declaration order.
func (u UnixPhilosophy) Violations() []string {
	var v []string
	if !u.SinglePurpose {
		v = append(v, "Component does not have a single purpose")
	}
	if !u.Composability {
		v = append(v, "Component is not composable")
	}
	if !u.ExplicitDataFlow {
		v = append(v, "Data flow is not explicit")
	}
	if !u.MinimalDependencies {
		v = append(v, "Dependencies are not minimal")
	}
	return v
}

// Violations returns the fixed message for every false flag, in declaration order.
func (s Security) Violations() []string {
	var v []string
	if !s.ExplicitPermissions {
		v = append(v, "Permissions are not explicit")
	}
	if !s.InputValidation {
		v = append(v, "Input is not validated")
	}
	if !s.ParameterizedQueries {
		v = append(v, "Queries are not parameterized")
	}
	if !s.MultiTenantIsolation {
		v = append(v, "Tenant isolation is not enforced")
	}
	if !s.DefenseInDepth {
		v = append(v, "Defense in depth is not applied")
	}
	return v
}

// Violations returns the fixed message for every false flag, in declaration order.
func (a Architecture) Violations() []string {
	var v []string
	if !a.LayeredBoundaries {
		v = append(v, "Layer boundaries are not respected")
	}
	if !a.DependencyInjection {
		v = append(v, "Dependencies are not injected")
	}
	if !a.StatelessHandlers {
		v = append(v, "Handlers are not stateless")
	}
	if !a.GracefulDegradation {
		v = append(v, "Degradation is not graceful")
	}
	return v
}

// Validate examines every supplied category and collects violation messages
// for flags that are false. Categories come first in the fixed order Unix
// philosophy, security, architecture; within a category, messages follow flag
// declaration order. An absent category contributes nothing. Valid is true
// exactly when no violation was collected.
func Validate(c ComplianceChecklist) ValidationResult {
	violations := []string{}
	if c.UnixPhilosophy != nil {
		violations = append(violations, c.UnixPhilosophy.Violations()...)
	}
	if c.Security != nil {
		violations = append(violations, c.Security.Violations()...)
	}
	if c.Architecture != nil {
		violations = append(violations, c.Architecture.Violations()...)
	}
	return ValidationResult{Valid: len(violations) == 0, Violations: violations}
}

// Parse decodes a checklist from YAML. Unknown keys are tolerated here; use
// the validation package to reject them against the published schema.
func Parse(data []byte) (ComplianceChecklist, error) {
	var c ComplianceChecklist
	if err := yaml.Unmarshal(data, &c); err != nil {
		return ComplianceChecklist{}, fmt.Errorf("unmarshalling checklist: %w", err)
	}
	return c, nil
}

// Full returns a checklist with every category present and every flag true.
// Scaffolding uses it to seed a new workspace's compliance file.
func Full() ComplianceChecklist {
	return ComplianceChecklist{
		UnixPhilosophy: &UnixPhilosophy{
			SinglePurpose:       true,
			Composability:       true,
			ExplicitDataFlow:    true,
			MinimalDependencies: true,
		},
		Security: &Security{
			ExplicitPermissions:  true,
			InputValidation:      true,
			ParameterizedQueries: true,
			MultiTenantIsolation: true,
			DefenseInDepth:       true,
		},
		Architecture: &Architecture{
			LayeredBoundaries:   true,
			DependencyInjection: true,
			StatelessHandlers:   true,
			GracefulDegradation: true,
		},
	}
}
