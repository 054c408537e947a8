package checks

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/grenas405/meta-documentation/internal/adr"
)

// requiredSections lists the body sections every decision record must carry.
var requiredSections = []string{"context", "decision", "consequences"}

// recommendedSections are optional but counted toward the optimal status.
var recommendedSections = []string{"rationale", "alternatives"}

// maxTitleRunes is the advisory upper bound for record titles.
const maxTitleRunes = 80

// FrontmatterChecker validates that a decision file has frontmatter with the
// required identification fields.
type FrontmatterChecker struct{}

var _ ComplianceChecker[adr.Doc] = (*FrontmatterChecker)(nil)

func (*FrontmatterChecker) Name() string { return "doc-frontmatter" }

func (*FrontmatterChecker) Check(d adr.Doc) (*CheckResult, error) {
	if d.FrontmatterRaw == nil {
		return &CheckResult{
			Name:    "doc-frontmatter",
			Passed:  false,
			Summary: "YAML frontmatter is missing",
			Data:    &CheckData{Status: StatusWarning},
		}, nil
	}
	var missing []string
	if strings.TrimSpace(d.Frontmatter.ID) == "" {
		missing = append(missing, "id")
	}
	if strings.TrimSpace(d.Frontmatter.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(d.Frontmatter.Status) == "" {
		missing = append(missing, "status")
	}
	if len(missing) > 0 {
		return &CheckResult{
			Name:    "doc-frontmatter",
			Passed:  false,
			Summary: fmt.Sprintf("Required frontmatter fields missing: %s", strings.Join(missing, ", ")),
			Data:    &CheckData{Status: StatusWarning},
		}, nil
	}
	return &CheckResult{
		Name:    "doc-frontmatter",
		Passed:  true,
		Summary: "Frontmatter has id, title, and status",
		Data:    &CheckData{Status: StatusOK},
	}, nil
}

// IDFormatChecker validates the identifier shape.
type IDFormatChecker struct{}

var _ ComplianceChecker[adr.Doc] = (*IDFormatChecker)(nil)

func (*IDFormatChecker) Name() string { return "doc-id-format" }

func (*IDFormatChecker) Check(d adr.Doc) (*CheckResult, error) {
	id := strings.TrimSpace(d.Frontmatter.ID)
	if id == "" {
		return &CheckResult{
			Name:    "doc-id-format",
			Passed:  true,
			Summary: "No id to validate (caught by doc-frontmatter)",
			Data:    &CheckData{Status: StatusOK},
		}, nil
	}
	if !adr.IDPattern.MatchString(id) {
		return &CheckResult{
			Name:    "doc-id-format",
			Passed:  false,
			Summary: fmt.Sprintf("ID %q does not match ADR-NNNN", id),
			Data:    &CheckData{Status: StatusWarning, Evidence: "identifiers are ADR- followed by four digits, e.g. ADR-0042"},
		}, nil
	}
	return &CheckResult{
		Name:    "doc-id-format",
		Passed:  true,
		Summary: "ID follows the ADR-NNNN convention",
		Data:    &CheckData{Status: StatusOK},
	}, nil
}

// StatusChecker validates the status field against the four-state enum.
type StatusChecker struct{}

var _ ComplianceChecker[adr.Doc] = (*StatusChecker)(nil)

func (*StatusChecker) Name() string { return "doc-status" }

func (*StatusChecker) Check(d adr.Doc) (*CheckResult, error) {
	raw := strings.TrimSpace(d.Frontmatter.Status)
	if raw == "" {
		return &CheckResult{
			Name:    "doc-status",
			Passed:  true,
			Summary: "No status to validate (caught by doc-frontmatter)",
			Data:    &CheckData{Status: StatusOK},
		}, nil
	}
	st, err := adr.ParseStatus(raw)
	if err != nil {
		return &CheckResult{
			Name:    "doc-status",
			Passed:  false,
			Summary: fmt.Sprintf("Unknown status %q", raw),
			Data:    &CheckData{Status: StatusWarning, Evidence: "status must be PROPOSED, ACCEPTED, DEPRECATED, or SUPERSEDED"},
		}, nil
	}
	if raw != st.String() {
		return &CheckResult{
			Name:    "doc-status",
			Passed:  true,
			Summary: fmt.Sprintf("Status %q should be written %s", raw, st),
			Data:    &CheckData{Status: StatusWarning},
		}, nil
	}
	return &CheckResult{
		Name:    "doc-status",
		Passed:  true,
		Summary: "Status is a valid lifecycle state",
		Data:    &CheckData{Status: StatusOK},
	}, nil
}

// FilenameChecker checks that the file name carries the record's id and slug.
type FilenameChecker struct{}

var _ ComplianceChecker[adr.Doc] = (*FilenameChecker)(nil)

func (*FilenameChecker) Name() string { return "doc-filename" }

func (*FilenameChecker) Check(d adr.Doc) (*CheckResult, error) {
	id := strings.TrimSpace(d.Frontmatter.ID)
	if d.Path == "" || id == "" {
		return &CheckResult{
			Name:    "doc-filename",
			Passed:  true,
			Summary: "Cannot validate (missing path or id)",
			Data:    &CheckData{Status: StatusOK},
		}, nil
	}
	base := filepath.Base(d.Path)
	if !strings.HasPrefix(base, id+"-") && base != id+".md" {
		return &CheckResult{
			Name:    "doc-filename",
			Passed:  false,
			Summary: fmt.Sprintf("File %q does not carry id %s", base, id),
			Data:    &CheckData{Status: StatusWarning, Evidence: "decision files are named <id>-<title-slug>.md"},
		}, nil
	}
	if expected := adr.Filename(id, d.Frontmatter.Title); base != expected {
		return &CheckResult{
			Name:    "doc-filename",
			Passed:  true,
			Summary: fmt.Sprintf("File name drifted from title (expected %q)", expected),
			Data:    &CheckData{Status: StatusWarning},
		}, nil
	}
	return &CheckResult{
		Name:    "doc-filename",
		Passed:  true,
		Summary: "File name matches id and title",
		Data:    &CheckData{Status: StatusOK},
	}, nil
}

// SectionsChecker verifies the body carries the required sections.
// Required overrides the default section list when non-empty.
type SectionsChecker struct {
	Required []string
}

var _ ComplianceChecker[adr.Doc] = (*SectionsChecker)(nil)

func (*SectionsChecker) Name() string { return "doc-sections" }

func (c *SectionsChecker) Check(d adr.Doc) (*CheckResult, error) {
	required := requiredSections
	if len(c.Required) > 0 {
		required = c.Required
	}
	present := map[string]bool{}
	for _, name := range adr.SectionNames([]byte(d.Body)) {
		present[name] = true
	}
	var missing []string
	for _, want := range required {
		if !present[want] {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 {
		return &CheckResult{
			Name:    "doc-sections",
			Passed:  false,
			Summary: fmt.Sprintf("Required sections missing: %s", strings.Join(missing, ", ")),
			Data:    &CheckData{Status: StatusWarning, Evidence: "every record needs Context, Decision, and Consequences sections"},
		}, nil
	}
	for _, want := range recommendedSections {
		if !present[want] {
			return &CheckResult{
				Name:    "doc-sections",
				Passed:  true,
				Summary: "Required sections present",
				Data:    &CheckData{Status: StatusOK},
			}, nil
		}
	}
	return &CheckResult{
		Name:    "doc-sections",
		Passed:  true,
		Summary: "Required and recommended sections present",
		Data:    &CheckData{Status: StatusOptimal},
	}, nil
}

// SupersedeChecker requires superseded records to reference a successor.
type SupersedeChecker struct{}

var _ ComplianceChecker[adr.Doc] = (*SupersedeChecker)(nil)

func (*SupersedeChecker) Name() string { return "doc-supersede" }

func (*SupersedeChecker) Check(d adr.Doc) (*CheckResult, error) {
	st, err := adr.ParseStatus(d.Frontmatter.Status)
	if err != nil || st != adr.StatusSuperseded {
		return &CheckResult{
			Name:    "doc-supersede",
			Passed:  true,
			Summary: "Not superseded",
			Data:    &CheckData{Status: StatusOK},
		}, nil
	}
	if len(d.Frontmatter.Related) == 0 {
		return &CheckResult{
			Name:    "doc-supersede",
			Passed:  false,
			Summary: "Superseded record does not reference its successor",
			Data:    &CheckData{Status: StatusWarning, Evidence: "add the superseding record's id to related"},
		}, nil
	}
	return &CheckResult{
		Name:    "doc-supersede",
		Passed:  true,
		Summary: "Successor referenced",
		Data:    &CheckData{Status: StatusOK},
	}, nil
}

// ReviewDateChecker recommends review dates on accepted records.
type ReviewDateChecker struct{}

var _ ComplianceChecker[adr.Doc] = (*ReviewDateChecker)(nil)

func (*ReviewDateChecker) Name() string { return "doc-review-date" }

func (*ReviewDateChecker) Check(d adr.Doc) (*CheckResult, error) {
	review := strings.TrimSpace(d.Frontmatter.ReviewDate)
	if review == "" {
		st, err := adr.ParseStatus(d.Frontmatter.Status)
		if err == nil && st == adr.StatusAccepted {
			return &CheckResult{
				Name:    "doc-review-date",
				Passed:  true,
				Summary: "No review date on an accepted record",
				Data:    &CheckData{Status: StatusWarning, Evidence: "best practice: set review_date so accepted decisions get revisited"},
			}, nil
		}
		return &CheckResult{
			Name:    "doc-review-date",
			Passed:  true,
			Summary: "No review date (optional)",
			Data:    &CheckData{Status: StatusOK},
		}, nil
	}
	if _, err := time.Parse("2006-01-02", review); err != nil {
		return &CheckResult{
			Name:    "doc-review-date",
			Passed:  true,
			Summary: fmt.Sprintf("Review date %q is not YYYY-MM-DD", review),
			Data:    &CheckData{Status: StatusWarning},
		}, nil
	}
	return &CheckResult{
		Name:    "doc-review-date",
		Passed:  true,
		Summary: "Review date set",
		Data:    &CheckData{Status: StatusOptimal},
	}, nil
}

// TitleLengthChecker warns about unwieldy titles. Max overrides the default
// limit when positive.
type TitleLengthChecker struct {
	Max int
}

var _ ComplianceChecker[adr.Doc] = (*TitleLengthChecker)(nil)

func (*TitleLengthChecker) Name() string { return "doc-title-length" }

func (c *TitleLengthChecker) Check(d adr.Doc) (*CheckResult, error) {
	maxRunes := maxTitleRunes
	if c.Max > 0 {
		maxRunes = c.Max
	}
	title := strings.TrimSpace(d.Frontmatter.Title)
	if title == "" {
		return &CheckResult{
			Name:    "doc-title-length",
			Passed:  true,
			Summary: "No title to measure (caught by doc-frontmatter)",
			Data:    &CheckData{Status: StatusOK},
		}, nil
	}
	if length := utf8.RuneCountInString(title); length > maxRunes {
		return &CheckResult{
			Name:    "doc-title-length",
			Passed:  true,
			Summary: fmt.Sprintf("Title is %d characters (aim for %d or fewer)", length, maxRunes),
			Data:    &CheckData{Status: StatusWarning},
		}, nil
	}
	return &CheckResult{
		Name:    "doc-title-length",
		Passed:  true,
		Summary: "Title length is reasonable",
		Data:    &CheckData{Status: StatusOK},
	}, nil
}

// DocumentCheckers returns all decision-document checkers in display order.
func DocumentCheckers() []ComplianceChecker[adr.Doc] {
	return []ComplianceChecker[adr.Doc]{
		&FrontmatterChecker{},
		&IDFormatChecker{},
		&StatusChecker{},
		&FilenameChecker{},
		&SectionsChecker{},
		&SupersedeChecker{},
		&ReviewDateChecker{},
		&TitleLengthChecker{},
	}
}
