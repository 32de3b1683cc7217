package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confab/pkg/types"
)

var (
	d1 = time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC)
	d2 = time.Date(2026, 9, 11, 18, 0, 0, 0, time.UTC)
	d3 = time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC)
)

func newTestEvent(author string) *types.Event {
	return &types.Event{
		Name:     "meetup",
		Location: "office",
		Duration: 60,
		Author:   author,
		Invited:  make(map[string][]time.Time),
	}
}

func TestAddDate(t *testing.T) {
	e := newTestEvent("alice")

	t.Run("NewDate", func(t *testing.T) {
		added, err := addDate(e, "alice", d1)
		require.NoError(t, err)
		assert.True(t, added)
		assert.Equal(t, []time.Time{d1}, e.DateOptions)
	})

	t.Run("DuplicateIsNotAnError", func(t *testing.T) {
		added, err := addDate(e, "alice", d1)
		require.NoError(t, err)
		assert.False(t, added)
		assert.Len(t, e.DateOptions, 1)
	})

	t.Run("OnlyAuthor", func(t *testing.T) {
		_, err := addDate(e, "bob", d2)
		assert.ErrorIs(t, err, types.ErrUnauthorized)
	})

	t.Run("FinalizedIsTerminal", func(t *testing.T) {
		e.Finalized = true
		_, err := addDate(e, "alice", d2)
		assert.ErrorIs(t, err, types.ErrEventFinalized)
	})
}

func TestInvite(t *testing.T) {
	e := newTestEvent("alice")

	t.Run("AddsEntry", func(t *testing.T) {
		added, err := invite(e, "alice", "bob")
		require.NoError(t, err)
		assert.True(t, added)
		assert.True(t, e.IsInvited("bob"))
	})

	t.Run("RepeatKeepsVotesAndIsNotNew", func(t *testing.T) {
		e.Invited["bob"] = []time.Time{d1}
		added, err := invite(e, "alice", "bob")
		require.NoError(t, err)
		assert.False(t, added)
		assert.Equal(t, []time.Time{d1}, e.Invited["bob"])
	})

	t.Run("SelfInvite", func(t *testing.T) {
		_, err := invite(e, "alice", "alice")
		assert.ErrorIs(t, err, types.ErrUnauthorized)
	})

	t.Run("OnlyAuthor", func(t *testing.T) {
		_, err := invite(e, "bob", "carol")
		assert.ErrorIs(t, err, types.ErrUnauthorized)
	})

	t.Run("FinalizedIsTerminal", func(t *testing.T) {
		e.Finalized = true
		_, err := invite(e, "alice", "carol")
		assert.ErrorIs(t, err, types.ErrEventFinalized)
	})
}

func TestVote(t *testing.T) {
	e := newTestEvent("alice")
	e.DateOptions = []time.Time{d1, d2}
	_, err := invite(e, "alice", "bob")
	require.NoError(t, err)

	t.Run("NotInvited", func(t *testing.T) {
		accepted, err := vote(e, "carol", []time.Time{d1})
		require.NoError(t, err)
		assert.False(t, accepted)
		assert.NotContains(t, e.Invited, "carol")
	})

	t.Run("IntersectsWithOptions", func(t *testing.T) {
		accepted, err := vote(e, "bob", []time.Time{d1, d3})
		require.NoError(t, err)
		assert.True(t, accepted)
		assert.Equal(t, []time.Time{d1}, e.Invited["bob"])
	})

	t.Run("ReplacesPreviousVote", func(t *testing.T) {
		accepted, err := vote(e, "bob", []time.Time{d2})
		require.NoError(t, err)
		assert.True(t, accepted)
		assert.Equal(t, []time.Time{d2}, e.Invited["bob"])
	})

	t.Run("EmptyVoteClears", func(t *testing.T) {
		accepted, err := vote(e, "bob", nil)
		require.NoError(t, err)
		assert.True(t, accepted)
		assert.Empty(t, e.Invited["bob"])
	})

	t.Run("FinalizedIsTerminal", func(t *testing.T) {
		e.Finalized = true
		_, err := vote(e, "bob", []time.Time{d1})
		assert.ErrorIs(t, err, types.ErrEventFinalized)
	})
}

func TestFinalize(t *testing.T) {
	t.Run("MostVotesWins", func(t *testing.T) {
		e := newTestEvent("alice")
		e.DateOptions = []time.Time{d1, d2}
		_, err := invite(e, "alice", "bob")
		require.NoError(t, err)
		_, err = invite(e, "alice", "carol")
		require.NoError(t, err)
		_, err = vote(e, "bob", []time.Time{d2})
		require.NoError(t, err)
		_, err = vote(e, "carol", []time.Time{d1, d2})
		require.NoError(t, err)

		date, err := finalize(e, "alice")
		require.NoError(t, err)
		assert.Equal(t, d2, date)
		assert.True(t, e.Finalized)
		assert.Equal(t, d2, e.FinalizedDate)
	})

	t.Run("TieBreaksOnEarliestDate", func(t *testing.T) {
		e := newTestEvent("alice")
		e.DateOptions = []time.Time{d2, d1} // deliberately out of order
		_, err := invite(e, "alice", "bob")
		require.NoError(t, err)
		_, err = vote(e, "bob", []time.Time{d1, d2})
		require.NoError(t, err)

		date, err := finalize(e, "alice")
		require.NoError(t, err)
		assert.Equal(t, d1, date)
	})

	t.Run("NoVotesStillPicksEarliest", func(t *testing.T) {
		e := newTestEvent("alice")
		e.DateOptions = []time.Time{d3, d1, d2}

		date, err := finalize(e, "alice")
		require.NoError(t, err)
		assert.Equal(t, d1, date)
	})

	t.Run("NoOptions", func(t *testing.T) {
		e := newTestEvent("alice")
		_, err := finalize(e, "alice")
		assert.ErrorIs(t, err, types.ErrNoDateOptions)
	})

	t.Run("OnlyAuthor", func(t *testing.T) {
		e := newTestEvent("alice")
		e.DateOptions = []time.Time{d1}
		_, err := finalize(e, "bob")
		assert.ErrorIs(t, err, types.ErrUnauthorized)
	})

	t.Run("SecondFinalizeFails", func(t *testing.T) {
		e := newTestEvent("alice")
		e.DateOptions = []time.Time{d1}
		_, err := finalize(e, "alice")
		require.NoError(t, err)
		_, err = finalize(e, "alice")
		assert.ErrorIs(t, err, types.ErrEventFinalized)
	})
}
