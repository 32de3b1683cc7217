package server

import (
	"context"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"confab/pkg/protocol"
	"confab/pkg/types"
)

// Two-phase replicated registration. The server that receives the original
// request is the initiator: it inserts a tentative local entry (Phase 0),
// asks every peer in configured order to do the same (Phase 1), and commits
// or rolls back everywhere depending on unanimity (Phase 2). An unreachable
// peer counts as a rejecting vote. A peer unreachable during Phase 2 is left
// inconsistent; there is no durable log or retry.

// registerUser runs the protocol for a new user owned by this server.
func (s *Server) registerUser(ctx context.Context, name, password string) (bool, error) {
	if err := s.ensureNetworkComplete(); err != nil {
		return false, err
	}

	s.logger.Info("Registration requested", zap.String("user", name))

	tentative := &types.User{Name: name, Password: password, HomeServer: s.id}
	if !s.store.PutUserIfAbsent(tentative) {
		return false, nil
	}

	ok := true
	for _, peer := range s.disc.Peers() {
		var resp *protocol.BeginRegisterResponse
		err := s.peerCall(ctx, func(ctx context.Context) error {
			var err error
			resp, err = peer.Client.BeginRegister(ctx, &protocol.BeginRegisterRequest{
				User:       name,
				Password:   password,
				HomeServer: string(s.id),
			})
			return err
		})
		if err != nil {
			s.logger.Warn("Prepare failed, peer counts as rejecting",
				zap.String("peer", string(peer.ID)), zap.Error(err))
			ok = false
			continue
		}
		ok = ok && resp.Accepted
	}

	var delivery error
	for _, peer := range s.disc.Peers() {
		err := s.peerCall(ctx, func(ctx context.Context) error {
			var err error
			if ok {
				_, err = peer.Client.CommitRegister(ctx, &protocol.CommitRegisterRequest{User: name})
			} else {
				_, err = peer.Client.RollbackRegister(ctx, &protocol.RollbackRegisterRequest{User: name})
			}
			return err
		})
		delivery = multierr.Append(delivery, err)
	}
	if delivery != nil {
		// Known gap: an unreachable peer keeps its tentative entry.
		s.logger.Warn("Phase 2 delivery incomplete",
			zap.String("user", name), zap.Bool("committed", ok), zap.Error(delivery))
	}

	if ok {
		s.store.CommitUser(name)
	} else {
		s.store.RollbackUser(name)
	}
	return ok, nil
}

// createEvent runs the same protocol for a new event authored by a user of
// this server.
func (s *Server) createEvent(ctx context.Context, name, location string, duration int, author string) (bool, error) {
	if err := s.ensureNetworkComplete(); err != nil {
		return false, err
	}

	s.logger.Info("Event creation requested",
		zap.String("event", name), zap.String("author", author))

	tentative := &types.Event{Name: name, Location: location, Duration: duration, Author: author}
	if !s.store.PutEventIfAbsent(tentative) {
		return false, nil
	}

	ok := true
	for _, peer := range s.disc.Peers() {
		var resp *protocol.BeginCreateResponse
		err := s.peerCall(ctx, func(ctx context.Context) error {
			var err error
			resp, err = peer.Client.BeginCreate(ctx, &protocol.BeginCreateRequest{
				Event:    name,
				Location: location,
				Duration: duration,
				Author:   author,
			})
			return err
		})
		if err != nil {
			s.logger.Warn("Prepare failed, peer counts as rejecting",
				zap.String("peer", string(peer.ID)), zap.Error(err))
			ok = false
			continue
		}
		ok = ok && resp.Accepted
	}

	var delivery error
	for _, peer := range s.disc.Peers() {
		err := s.peerCall(ctx, func(ctx context.Context) error {
			var err error
			if ok {
				_, err = peer.Client.CommitCreate(ctx, &protocol.CommitCreateRequest{Event: name})
			} else {
				_, err = peer.Client.RollbackCreate(ctx, &protocol.RollbackCreateRequest{Event: name})
			}
			return err
		})
		delivery = multierr.Append(delivery, err)
	}
	if delivery != nil {
		s.logger.Warn("Phase 2 delivery incomplete",
			zap.String("event", name), zap.Bool("committed", ok), zap.Error(delivery))
	}

	if ok {
		s.store.CommitEvent(name)
	} else {
		s.store.RollbackEvent(name)
	}
	return ok, nil
}
