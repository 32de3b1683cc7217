// Package server implements one member of the scheduling federation: the
// replicated user/event directory, the two-phase registration protocol,
// ownership-based routing, the event lifecycle and notification fan-out.
package server

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"confab/pkg/config"
	"confab/pkg/discovery"
	"confab/pkg/protocol"
	"confab/pkg/registry"
	"confab/pkg/types"
)

const bindRetryWindow = 30 * time.Second

type Server struct {
	id      types.ServerID
	address string
	cfg     *config.Config
	logger  *zap.Logger

	store    *Store
	sessions *sessionTable

	reg  *registry.Client
	disc *discovery.Loop

	grpcServer *grpc.Server
	listener   net.Listener

	ctx    context.Context
	cancel context.CancelFunc
}

func New(cfg *config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		id:       types.ServerID(cfg.MemberID),
		address:  cfg.Address,
		cfg:      cfg,
		logger:   logger.With(zap.String("member_id", cfg.MemberID)),
		store:    NewStore(),
		sessions: newSessionTable(),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start binds this server's name in the naming directory, launches peer
// discovery and serves the peer and front-door endpoints until Stop.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.address, err)
	}
	s.listener = listener

	reg, err := registry.Connect(s.cfg.Registry.Address)
	if err != nil {
		listener.Close()
		return err
	}
	s.reg = reg

	if err := reg.BindRetry(s.ctx, string(s.id), s.address, bindRetryWindow); err != nil {
		listener.Close()
		return fmt.Errorf("failed to bind %q in naming directory: %w", s.id, err)
	}

	s.disc = discovery.NewLoop(s.cfg.Peers, reg, s.cfg.LookupInterval(), s.cfg.PeerCallTimeout(), clockwork.NewRealClock(), s.logger)
	s.disc.Start()

	s.grpcServer = grpc.NewServer()
	protocol.RegisterPeerServer(s.grpcServer, &peerService{srv: s})
	protocol.RegisterSchedulerServer(s.grpcServer, s)

	s.logger.Info("Server starting",
		zap.String("address", s.address),
		zap.Strings("peers", s.cfg.Peers))

	return s.grpcServer.Serve(listener)
}

func (s *Server) Stop() {
	s.cancel()

	if s.disc != nil {
		s.disc.Stop()
	}

	// Logged-in users go offline with the process; sessions are ephemeral.
	for _, sess := range s.sessions.drain() {
		s.store.SetUserOnline(sess.user, false)
		if sess.conn != nil {
			sess.conn.Close()
		}
	}

	if s.reg != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		if err := s.reg.Unbind(ctx, string(s.id)); err != nil {
			s.logger.Warn("Failed to unbind from naming directory", zap.Error(err))
		}
		cancel()
		s.reg.Close()
	}

	if s.grpcServer != nil {
		s.grpcServer.GracefulStop()
	}
}

// ensureNetworkComplete is the readiness gate: every client-facing operation
// fails fast while peers are still unresolved, leaving retry to the caller.
func (s *Server) ensureNetworkComplete() error {
	if !s.disc.Complete() {
		return types.ErrNetworkIncomplete
	}
	return nil
}

// authed resolves a session token.
func (s *Server) authed(token string) (*session, error) {
	sess, ok := s.sessions.byTokenGet(token)
	if !ok {
		return nil, types.ErrNotLoggedIn
	}
	return sess, nil
}

// peerCall bounds an outbound peer RPC; an expired deadline surfaces like an
// unreachable peer.
func (s *Server) peerCall(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.PeerCallTimeout())
	defer cancel()
	return fn(ctx)
}

// eventOwner resolves the server with write authority over the event: the
// author's home server, looked up fresh on every call.
func (s *Server) eventOwner(event string) (types.ServerID, error) {
	var author string
	if err := s.store.ViewEvent(event, func(e *types.Event) error {
		author = e.Author
		return nil
	}); err != nil {
		return "", err
	}

	u, ok := s.store.GetUser(author)
	if !ok {
		return "", types.ErrNotFound
	}
	return u.HomeServer, nil
}
