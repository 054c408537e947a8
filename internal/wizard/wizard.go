package wizard

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/grenas405/meta-documentation/internal/scaffold"
	"github.com/grenas405/meta-documentation/internal/template"
	"golang.org/x/term"
)

// RecordSpec holds all fields collected during the interactive wizard.
type RecordSpec struct {
	Title        string
	Context      string
	Decision     string
	Rationale    string
	Alternatives []string
	Positive     []string
	Negative     []string
	Tags         []string
}

// RunRecordWizard runs an interactive huh form to collect the prose of a new
// decision record. If initialTitle is non-empty, it pre-populates the title.
func RunRecordWizard(in io.Reader, out io.Writer, initialTitle string) (*RecordSpec, error) {
	var (
		title           = initialTitle
		contextText     string
		decision        string
		rationale       string
		alternativesRaw string
		positiveRaw     string
		negativeRaw     string
		tagsRaw         string
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Description("A short imperative statement of the decision").
				Placeholder("Use PostgreSQL for persistent storage").
				Value(&title).
				Validate(func(s string) error {
					return scaffold.ValidateTitle(strings.TrimSpace(s))
				}),
			huh.NewInput().
				Title("Context").
				Description("The forces at play and the problem being solved").
				Placeholder("We need a relational store for ...").
				Value(&contextText),
			huh.NewInput().
				Title("Decision").
				Description("What was decided, in full sentences").
				Placeholder("We will use ...").
				Value(&decision),
			huh.NewInput().
				Title("Rationale").
				Description("Why this option won").
				Placeholder("Best fit because ...").
				Value(&rationale),
			huh.NewInput().
				Title("Alternatives").
				Description("Comma-separated options that were rejected").
				Placeholder("MySQL, SQLite").
				Value(&alternativesRaw),
			huh.NewInput().
				Title("Positive consequences").
				Description("Comma-separated expected benefits").
				Placeholder("mature tooling, strong community").
				Value(&positiveRaw),
			huh.NewInput().
				Title("Negative consequences").
				Description("Comma-separated costs and risks").
				Placeholder("operational overhead").
				Value(&negativeRaw),
			huh.NewInput().
				Title("Tags").
				Description("Comma-separated labels for the record").
				Placeholder("database, storage").
				Value(&tagsRaw),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	return &RecordSpec{
		Title:        strings.TrimSpace(title),
		Context:      strings.TrimSpace(contextText),
		Decision:     strings.TrimSpace(decision),
		Rationale:    strings.TrimSpace(rationale),
		Alternatives: splitAndTrim(alternativesRaw),
		Positive:     splitAndTrim(positiveRaw),
		Negative:     splitAndTrim(negativeRaw),
		Tags:         splitAndTrim(tagsRaw),
	}, nil
}

// Apply copies the collected prose onto a template context, leaving the
// caller-owned identity fields (ID, status, dates) untouched.
func (s *RecordSpec) Apply(ctx *template.Context) {
	ctx.Title = s.Title
	ctx.Context = s.Context
	ctx.Decision = s.Decision
	ctx.Rationale = s.Rationale
	ctx.Alternatives = s.Alternatives
	ctx.Positive = s.Positive
	ctx.Negative = s.Negative
	if len(s.Tags) > 0 {
		ctx.Tags = s.Tags
	}
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
