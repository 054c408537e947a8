// Package adr models architectural decision records: the pure record type,
// the four-valued status enum, and the markdown document codec used to read
// and write decision files.
package adr

import (
	"fmt"
	"strings"
)

// Status represents a decision record's lifecycle state.
type Status string

const (
	StatusProposed   Status = "PROPOSED"
	StatusAccepted   Status = "ACCEPTED"
	StatusDeprecated Status = "DEPRECATED"
	StatusSuperseded Status = "SUPERSEDED"
)

func (s Status) String() string {
	return string(s)
}

// Valid reports whether s is one of the four named states.
func (s Status) Valid() bool {
	switch s {
	case StatusProposed, StatusAccepted, StatusDeprecated, StatusSuperseded:
		return true
	}
	return false
}

// ParseStatus converts a string flag value to a Status.
func ParseStatus(s string) (Status, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PROPOSED":
		return StatusProposed, nil
	case "ACCEPTED":
		return StatusAccepted, nil
	case "DEPRECATED":
		return StatusDeprecated, nil
	case "SUPERSEDED":
		return StatusSuperseded, nil
	default:
		return "", fmt.Errorf("invalid status %q: must be proposed, accepted, deprecated, or superseded", s)
	}
}

// Statuses returns the four states in lifecycle order.
func Statuses() []Status {
	return []Status{StatusProposed, StatusAccepted, StatusDeprecated, StatusSuperseded}
}

// Consequences groups the outcome lists of a decision.
type Consequences struct {
	Positive   []string `json:"positive"`
	Negative   []string `json:"negative"`
	Mitigation []string `json:"mitigation,omitempty"`
}

// ADR is an architectural decision record. The type carries no behavior
// beyond construction; status transitions are performed by callers
// overwriting the field, never by this package.
type ADR struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Status       Status       `json:"status"`
	Context      string       `json:"context"`
	Decision     string       `json:"decision"`
	Rationale    string       `json:"rationale"`
	Alternatives []string     `json:"alternatives"`
	Consequences Consequences `json:"consequences"`
	Related      []string     `json:"related"`
	ReviewDate   string       `json:"reviewDate,omitempty"`
}

// New returns a blank record for id and title: status PROPOSED, text fields
// empty, sequences empty, review date unset. Neither argument is validated
// and no clock or external state is read, so calls with equal arguments
// yield deep-equal records.
func New(id, title string) ADR {
	return ADR{
		ID:           id,
		Title:        title,
		Status:       StatusProposed,
		Alternatives: []string{},
		Consequences: Consequences{
			Positive: []string{},
			Negative: []string{},
		},
		Related: []string{},
	}
}
