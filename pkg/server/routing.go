package server

import (
	"context"
	"time"

	"confab/pkg/protocol"
	"confab/pkg/types"
)

// Ownership routing: mutating or reading an existing event happens on its
// owning server. The receiver either short-circuits locally or forwards the
// call unchanged to the owner and returns its result verbatim.

func (s *Server) routeAddDate(ctx context.Context, event, author string, date time.Time) (bool, error) {
	owner, err := s.eventOwner(event)
	if err != nil {
		return false, err
	}
	if owner == s.id {
		return s.localAddDate(event, author, date)
	}

	peer, ok := s.disc.Peer(owner)
	if !ok {
		return false, types.ErrNetworkIncomplete
	}
	var resp *protocol.PeerAddDateResponse
	if err := s.peerCall(ctx, func(ctx context.Context) error {
		var err error
		resp, err = peer.Client.AddDate(ctx, &protocol.PeerAddDateRequest{
			Event:  event,
			Author: author,
			Date:   date.UTC().Format(time.RFC3339),
		})
		return err
	}); err != nil {
		return false, err
	}
	return resp.Added, nil
}

func (s *Server) routeInvite(ctx context.Context, event, author, user string) error {
	owner, err := s.eventOwner(event)
	if err != nil {
		return err
	}
	if owner == s.id {
		return s.localInvite(event, author, user)
	}

	peer, ok := s.disc.Peer(owner)
	if !ok {
		return types.ErrNetworkIncomplete
	}
	return s.peerCall(ctx, func(ctx context.Context) error {
		_, err := peer.Client.Invite(ctx, &protocol.PeerInviteRequest{
			Event:  event,
			User:   user,
			Author: author,
		})
		return err
	})
}

func (s *Server) routeVote(ctx context.Context, event, user string, dates []time.Time) (bool, error) {
	owner, err := s.eventOwner(event)
	if err != nil {
		return false, err
	}
	if owner == s.id {
		return s.localVote(event, user, dates)
	}

	peer, ok := s.disc.Peer(owner)
	if !ok {
		return false, types.ErrNetworkIncomplete
	}
	var resp *protocol.PeerVoteResponse
	if err := s.peerCall(ctx, func(ctx context.Context) error {
		var err error
		resp, err = peer.Client.Vote(ctx, &protocol.PeerVoteRequest{
			Event: event,
			User:  user,
			Dates: types.FormatDates(dates),
		})
		return err
	}); err != nil {
		return false, err
	}
	return resp.Accepted, nil
}

func (s *Server) routeFinalize(ctx context.Context, event, author string) (time.Time, error) {
	owner, err := s.eventOwner(event)
	if err != nil {
		return time.Time{}, err
	}
	if owner == s.id {
		return s.localFinalize(event, author)
	}

	peer, ok := s.disc.Peer(owner)
	if !ok {
		return time.Time{}, types.ErrNetworkIncomplete
	}
	var resp *protocol.PeerFinalizeResponse
	if err := s.peerCall(ctx, func(ctx context.Context) error {
		var err error
		resp, err = peer.Client.Finalize(ctx, &protocol.PeerFinalizeRequest{
			Event:  event,
			Author: author,
		})
		return err
	}); err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, resp.Date)
}

func (s *Server) routeGet(ctx context.Context, event string) (*types.EventSnapshot, error) {
	owner, err := s.eventOwner(event)
	if err != nil {
		return nil, err
	}
	if owner == s.id {
		return s.localGet(event)
	}

	peer, ok := s.disc.Peer(owner)
	if !ok {
		return nil, types.ErrNetworkIncomplete
	}
	var resp *protocol.PeerGetResponse
	if err := s.peerCall(ctx, func(ctx context.Context) error {
		var err error
		resp, err = peer.Client.Get(ctx, &protocol.PeerGetRequest{Event: event})
		return err
	}); err != nil {
		return nil, err
	}
	return resp.Snapshot, nil
}

// Local executions, run only on the owning server.

func (s *Server) localAddDate(event, author string, date time.Time) (bool, error) {
	var added bool
	err := s.store.UpdateEvent(event, func(e *types.Event) error {
		var err error
		added, err = addDate(e, author, date)
		return err
	})
	return added, err
}

func (s *Server) localInvite(event, author, user string) error {
	if _, ok := s.store.GetUser(user); !ok {
		return types.ErrNotFound
	}
	var added bool
	if err := s.store.UpdateEvent(event, func(e *types.Event) error {
		var err error
		added, err = invite(e, author, user)
		return err
	}); err != nil {
		return err
	}

	// Only a fresh invitation gets a push; re-invites stay silent.
	if added {
		go s.notifyInvitation(event, author, user)
	}
	return nil
}

func (s *Server) localVote(event, user string, dates []time.Time) (bool, error) {
	var accepted bool
	err := s.store.UpdateEvent(event, func(e *types.Event) error {
		var err error
		accepted, err = vote(e, user, dates)
		return err
	})
	return accepted, err
}

func (s *Server) localFinalize(event, author string) (time.Time, error) {
	var date time.Time
	var invited []string
	if err := s.store.UpdateEvent(event, func(e *types.Event) error {
		d, err := finalize(e, author)
		if err != nil {
			return err
		}
		date = d
		invited = make([]string, 0, len(e.Invited))
		for name := range e.Invited {
			invited = append(invited, name)
		}
		return nil
	}); err != nil {
		return time.Time{}, err
	}

	go s.fanOutFinalization(event, date, invited)
	return date, nil
}

func (s *Server) localGet(event string) (*types.EventSnapshot, error) {
	var snap *types.EventSnapshot
	err := s.store.ViewEvent(event, func(e *types.Event) error {
		snap = e.Snapshot()
		return nil
	})
	return snap, err
}
