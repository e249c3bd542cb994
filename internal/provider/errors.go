package provider

import (
	"fmt"
	"strings"
)

// NotFoundError reports that a team identifier matched nothing in a league.
// It carries the roster the provider knows about so callers can render a
// "did you mean" list. Generic upstream failures (network, parse) are plain
// errors and must never be represented as NotFoundError by a provider.
type NotFoundError struct {
	TeamIdentifier string
	League         string // league short name
	AvailableTeams []TeamSummary

	// Cause is set when the resolver normalizes a terminal non-not-found
	// failure into not-found metadata after exhausting every feeder league.
	Cause error
}

// NewNotFoundError builds a NotFoundError for a league roster.
func NewNotFoundError(identifier string, league string, roster []TeamSummary) *NotFoundError {
	return &NotFoundError{
		TeamIdentifier: identifier,
		League:         league,
		AvailableTeams: roster,
	}
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("team not found: %q in %s", e.TeamIdentifier, strings.ToUpper(e.League))
	if len(e.AvailableTeams) > 0 {
		names := make([]string, 0, len(e.AvailableTeams))
		for _, t := range e.AvailableTeams {
			if label := t.Label(); label != "" {
				names = append(names, label)
			}
		}
		msg += ". Available teams: " + strings.Join(names, ", ")
	}
	return msg
}

func (e *NotFoundError) Unwrap() error { return e.Cause }

// TeamCount returns the number of roster entries attached to the error.
func (e *NotFoundError) TeamCount() int { return len(e.AvailableTeams) }
