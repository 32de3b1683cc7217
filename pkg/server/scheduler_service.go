package server

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"confab/pkg/protocol"
	"confab/pkg/types"
)

// Front-door service: every call starts at the readiness gate, then goes
// through session auth and ownership routing as needed.

func (s *Server) Register(ctx context.Context, req *protocol.RegisterRequest) (*protocol.RegisterResponse, error) {
	ok, err := s.registerUser(ctx, req.User, req.Password)
	if err != nil {
		return nil, protocol.StatusError(err)
	}
	return &protocol.RegisterResponse{OK: ok}, nil
}

// Login only succeeds on the user's home server: identities are
// authoritative in exactly one place, so a correct password presented
// elsewhere is still rejected.
func (s *Server) Login(ctx context.Context, req *protocol.LoginRequest) (*protocol.LoginResponse, error) {
	if err := s.ensureNetworkComplete(); err != nil {
		return nil, protocol.StatusError(err)
	}

	u, ok := s.store.GetUser(req.User)
	if !ok {
		return nil, protocol.StatusError(types.ErrNotFound)
	}
	if u.HomeServer != s.id {
		return nil, protocol.StatusError(types.ErrWrongServer)
	}
	if u.Password != req.Password {
		return nil, protocol.StatusError(types.ErrUnauthorized)
	}

	conn, err := protocol.Dial(req.CallbackAddress)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "bad callback address: %v", err)
	}

	sess := &session{
		token:        uuid.NewString(),
		user:         req.User,
		callbackAddr: req.CallbackAddress,
		conn:         conn,
		callback:     protocol.NewCallbackClient(conn),
	}
	if err := s.sessions.add(sess); err != nil {
		conn.Close()
		return nil, protocol.StatusError(err)
	}
	s.store.SetUserOnline(req.User, true)

	s.logger.Info("User logged in", zap.String("user", req.User))
	return &protocol.LoginResponse{Token: sess.token}, nil
}

func (s *Server) Logout(ctx context.Context, req *protocol.LogoutRequest) (*protocol.LogoutResponse, error) {
	sess := s.sessions.remove(req.Token)
	if sess == nil {
		return nil, protocol.StatusError(types.ErrNotLoggedIn)
	}
	s.store.SetUserOnline(sess.user, false)
	if sess.conn != nil {
		sess.conn.Close()
	}

	s.logger.Info("User logged out", zap.String("user", sess.user))
	return &protocol.LogoutResponse{}, nil
}

func (s *Server) Create(ctx context.Context, req *protocol.CreateRequest) (*protocol.CreateResponse, error) {
	sess, err := s.authed(req.Token)
	if err != nil {
		return nil, protocol.StatusError(err)
	}

	ok, err := s.createEvent(ctx, req.Event, req.Location, req.Duration, sess.user)
	if err != nil {
		return nil, protocol.StatusError(err)
	}
	return &protocol.CreateResponse{OK: ok}, nil
}

func (s *Server) AddDate(ctx context.Context, req *protocol.AddDateRequest) (*protocol.AddDateResponse, error) {
	if err := s.ensureNetworkComplete(); err != nil {
		return nil, protocol.StatusError(err)
	}
	sess, err := s.authed(req.Token)
	if err != nil {
		return nil, protocol.StatusError(err)
	}
	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "bad date %q: %v", req.Date, err)
	}

	added, err := s.routeAddDate(ctx, req.Event, sess.user, date.UTC())
	if err != nil {
		return nil, protocol.StatusError(err)
	}
	return &protocol.AddDateResponse{Added: added}, nil
}

func (s *Server) Invite(ctx context.Context, req *protocol.InviteRequest) (*protocol.InviteResponse, error) {
	if err := s.ensureNetworkComplete(); err != nil {
		return nil, protocol.StatusError(err)
	}
	sess, err := s.authed(req.Token)
	if err != nil {
		return nil, protocol.StatusError(err)
	}

	if err := s.routeInvite(ctx, req.Event, sess.user, req.User); err != nil {
		return nil, protocol.StatusError(err)
	}
	return &protocol.InviteResponse{}, nil
}

func (s *Server) Vote(ctx context.Context, req *protocol.VoteRequest) (*protocol.VoteResponse, error) {
	if err := s.ensureNetworkComplete(); err != nil {
		return nil, protocol.StatusError(err)
	}
	sess, err := s.authed(req.Token)
	if err != nil {
		return nil, protocol.StatusError(err)
	}
	dates, err := types.ParseDates(req.Dates)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "bad dates: %v", err)
	}

	accepted, err := s.routeVote(ctx, req.Event, sess.user, dates)
	if err != nil {
		return nil, protocol.StatusError(err)
	}
	return &protocol.VoteResponse{Accepted: accepted}, nil
}

func (s *Server) Finalize(ctx context.Context, req *protocol.FinalizeRequest) (*protocol.FinalizeResponse, error) {
	if err := s.ensureNetworkComplete(); err != nil {
		return nil, protocol.StatusError(err)
	}
	sess, err := s.authed(req.Token)
	if err != nil {
		return nil, protocol.StatusError(err)
	}

	date, err := s.routeFinalize(ctx, req.Event, sess.user)
	if err != nil {
		return nil, protocol.StatusError(err)
	}
	return &protocol.FinalizeResponse{Date: date.UTC().Format(time.RFC3339)}, nil
}

func (s *Server) Get(ctx context.Context, req *protocol.GetRequest) (*protocol.GetResponse, error) {
	if err := s.ensureNetworkComplete(); err != nil {
		return nil, protocol.StatusError(err)
	}
	if _, err := s.authed(req.Token); err != nil {
		return nil, protocol.StatusError(err)
	}

	snap, err := s.routeGet(ctx, req.Event)
	if err != nil {
		return nil, protocol.StatusError(err)
	}
	return &protocol.GetResponse{Snapshot: snap}, nil
}
