package adr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// IDPattern matches canonical decision identifiers such as ADR-0042.
var IDPattern = regexp.MustCompile(`^ADR-\d{4}$`)

// idNumber tolerates other digit widths so legacy logs still sequence.
var idNumber = regexp.MustCompile(`^ADR-(\d+)$`)

// Slug converts a title to the lowercase hyphenated form used in file names.
// Unicode letters and digits are kept, so non-Latin titles slug too; runs of
// anything else collapse to a single hyphen.
func Slug(title string) string {
	var sb strings.Builder
	pending := false
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			if pending && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			pending = false
			sb.WriteRune(r)
		default:
			pending = true
		}
	}
	return sb.String()
}

// Filename returns the canonical file name for a record.
func Filename(id, title string) string {
	if slug := Slug(title); slug != "" {
		return id + "-" + slug + ".md"
	}
	return id + ".md"
}

// FormatID renders a sequence number as a canonical identifier.
func FormatID(n int) string {
	return fmt.Sprintf("ADR-%04d", n)
}

// NextID returns the identifier one past the highest in existing. Gaps are
// not refilled. An empty slice yields ADR-0001; identifiers that do not
// match the ADR-N... shape are ignored.
func NextID(existing []string) string {
	highest := 0
	for _, id := range existing {
		m := idNumber.FindStringSubmatch(strings.TrimSpace(id))
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > highest {
			highest = n
		}
	}
	return FormatID(highest + 1)
}
