package server

import (
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"confab/pkg/types"
)

// Event lifecycle state machine. Two states only: open and finalized. These
// functions run on the owning server, under the store lock (see
// Store.UpdateEvent), and enforce the author/invitee rules.

func addDate(e *types.Event, author string, date time.Time) (bool, error) {
	if e.Finalized {
		return false, types.ErrEventFinalized
	}
	if e.Author != author {
		return false, types.ErrUnauthorized
	}
	for _, d := range e.DateOptions {
		if d.Equal(date) {
			// Duplicate is a "not newly added" result, not an error.
			return false, nil
		}
	}
	e.DateOptions = append(e.DateOptions, date)
	return true, nil
}

// invite reports whether the invitation is newly added; a repeat invite is a
// no-op that keeps the existing vote.
func invite(e *types.Event, author, user string) (bool, error) {
	if e.Finalized {
		return false, types.ErrEventFinalized
	}
	if e.Author != author {
		return false, types.ErrUnauthorized
	}
	if user == author {
		return false, types.ErrUnauthorized
	}
	if _, already := e.Invited[user]; already {
		return false, nil
	}
	e.Invited[user] = []time.Time{}
	return true, nil
}

// vote records the intersection of the submitted dates with the current
// options, replacing any previous vote. A voter without an invitation gets
// false and the event is left untouched.
func vote(e *types.Event, user string, dates []time.Time) (bool, error) {
	if e.Finalized {
		return false, types.ErrEventFinalized
	}
	if !e.IsInvited(user) {
		return false, nil
	}

	submitted := mapset.NewSet(dates...)
	chosen := make([]time.Time, 0, len(dates))
	for _, opt := range e.DateOptions {
		if submitted.Contains(opt) {
			chosen = append(chosen, opt)
		}
	}
	e.Invited[user] = chosen
	return true, nil
}

// finalize picks the option with the most votes, breaking ties by earliest
// date, then by option insertion order, and moves the event to its terminal
// state.
func finalize(e *types.Event, author string) (time.Time, error) {
	if e.Finalized {
		return time.Time{}, types.ErrEventFinalized
	}
	if e.Author != author {
		return time.Time{}, types.ErrUnauthorized
	}
	if len(e.DateOptions) == 0 {
		return time.Time{}, types.ErrNoDateOptions
	}

	best := -1
	var winner time.Time
	for _, opt := range e.DateOptions {
		count := 0
		for _, votes := range e.Invited {
			for _, v := range votes {
				if v.Equal(opt) {
					count++
				}
			}
		}
		if count > best || (count == best && opt.Before(winner)) {
			best = count
			winner = opt
		}
	}

	e.Finalized = true
	e.FinalizedDate = winner
	return winner, nil
}
