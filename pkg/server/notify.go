package server

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"confab/pkg/protocol"
)

// Notification fan-out. Exactly one delivery attempt per target; a user with
// no live session anywhere simply misses the push. Delivery goes to the
// session on the user's home server, directly when that is us, otherwise
// forwarded once to the owning peer.

func (s *Server) fanOutFinalization(event string, date time.Time, invited []string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.PeerCallTimeout())
	defer cancel()

	g := new(errgroup.Group)
	for _, user := range invited {
		user := user
		g.Go(func() error {
			s.notifyUser(ctx, &protocol.NotifyRequest{
				Kind:  protocol.NotifyFinalization,
				Event: event,
				User:  user,
				Date:  date.UTC().Format(time.RFC3339),
			})
			return nil
		})
	}
	g.Wait()
}

func (s *Server) notifyInvitation(event, author, user string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.PeerCallTimeout())
	defer cancel()

	s.notifyUser(ctx, &protocol.NotifyRequest{
		Kind:   protocol.NotifyInvitation,
		Event:  event,
		User:   user,
		Author: author,
	})
}

// notifyUser resolves where the target is homed and makes the single
// delivery attempt. Failures are logged, never retried.
func (s *Server) notifyUser(ctx context.Context, req *protocol.NotifyRequest) {
	u, ok := s.store.GetUser(req.User)
	if !ok {
		return
	}

	if u.HomeServer == s.id {
		s.deliverLocal(ctx, req)
		return
	}

	peer, ok := s.disc.Peer(u.HomeServer)
	if !ok {
		s.logger.Warn("No resolved peer for notification",
			zap.String("user", req.User), zap.String("home_server", string(u.HomeServer)))
		return
	}
	if _, err := peer.Client.Notify(ctx, req); err != nil {
		s.logger.Warn("Notification forwarding failed",
			zap.String("user", req.User), zap.String("peer", string(peer.ID)), zap.Error(err))
	}
}

// deliverLocal pushes to the user's session on this server. No session means
// the user is offline: a no-op, not an error.
func (s *Server) deliverLocal(ctx context.Context, req *protocol.NotifyRequest) bool {
	sess, ok := s.sessions.byUserGet(req.User)
	if !ok {
		return false
	}

	var err error
	switch req.Kind {
	case protocol.NotifyFinalization:
		_, err = sess.callback.OnFinalization(ctx, &protocol.OnFinalizationRequest{
			Event: req.Event,
			Date:  req.Date,
		})
	case protocol.NotifyInvitation:
		_, err = sess.callback.OnInvitation(ctx, &protocol.OnInvitationRequest{
			Event:  req.Event,
			Author: req.Author,
		})
	default:
		s.logger.Warn("Unknown notification kind", zap.String("kind", req.Kind))
		return false
	}

	if err != nil {
		s.logger.Warn("Callback delivery failed",
			zap.String("user", req.User), zap.String("kind", req.Kind), zap.Error(err))
		return false
	}
	return true
}
