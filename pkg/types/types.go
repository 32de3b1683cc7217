package types

import (
	"time"
)

type ServerID string

// User is a federation-wide unique identity. Replicated to every server;
// HomeServer names the single server with write authority over it.
type User struct {
	Name       string
	Password   string
	HomeServer ServerID
	Online     bool

	// Committed is false while a two-phase registration is in flight.
	Committed bool
}

// Event is a scheduled gathering. Replicated like User; the owning server is
// the author's home server, resolved fresh on each call rather than stored.
type Event struct {
	Name     string
	Location string
	Duration int // minutes
	Author   string

	// DateOptions keeps insertion order for deterministic tie-breaks.
	DateOptions []time.Time

	// Invited maps an invited user name to their voted subset of
	// DateOptions. An entry with an empty slice means invited, not voted.
	Invited map[string][]time.Time

	Finalized     bool
	FinalizedDate time.Time

	Committed bool
}

// IsInvited reports whether name has an invitation entry.
func (e *Event) IsInvited(name string) bool {
	_, ok := e.Invited[name]
	return ok
}

// EventSnapshot is the read-only view of an Event handed across the wire.
// Dates are RFC 3339 strings in UTC.
type EventSnapshot struct {
	Name          string              `json:"name"`
	Location      string              `json:"location"`
	Duration      int                 `json:"duration"`
	Author        string              `json:"author"`
	DateOptions   []string            `json:"date_options"`
	Votes         map[string][]string `json:"votes"`
	Finalized     bool                `json:"finalized"`
	FinalizedDate string              `json:"finalized_date,omitempty"`
}

// Snapshot captures the event's current state.
func (e *Event) Snapshot() *EventSnapshot {
	snap := &EventSnapshot{
		Name:        e.Name,
		Location:    e.Location,
		Duration:    e.Duration,
		Author:      e.Author,
		DateOptions: FormatDates(e.DateOptions),
		Votes:       make(map[string][]string, len(e.Invited)),
		Finalized:   e.Finalized,
	}
	for name, votes := range e.Invited {
		snap.Votes[name] = FormatDates(votes)
	}
	if e.Finalized {
		snap.FinalizedDate = e.FinalizedDate.UTC().Format(time.RFC3339)
	}
	return snap
}

// FormatDates renders dates as RFC 3339 strings, preserving order.
func FormatDates(dates []time.Time) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.UTC().Format(time.RFC3339))
	}
	return out
}

// ParseDates parses RFC 3339 strings, preserving order.
func ParseDates(values []string) ([]time.Time, error) {
	out := make([]time.Time, 0, len(values))
	for _, v := range values {
		d, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, err
		}
		out = append(out, d.UTC())
	}
	return out, nil
}
