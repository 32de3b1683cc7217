// Package registry implements the naming directory: a flat name-to-address
// binding service that every federation process either hosts or joins.
package registry

import (
	"context"
	"fmt"
	"net"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"confab/pkg/protocol"
)

type Server struct {
	logger *zap.Logger

	mu       sync.RWMutex
	bindings map[string]string

	grpcServer *grpc.Server
	listener   net.Listener
}

func NewServer(logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		logger:   logger,
		bindings: make(map[string]string),
	}
}

// Start listens on address and serves until Stop is called.
func (s *Server) Start(address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	s.listener = listener

	s.grpcServer = grpc.NewServer()
	protocol.RegisterNamingServer(s.grpcServer, s)

	s.logger.Info("Naming directory starting", zap.String("address", address))
	return s.grpcServer.Serve(listener)
}

func (s *Server) Stop() {
	if s.grpcServer != nil {
		s.grpcServer.GracefulStop()
	}
}

func (s *Server) Bind(ctx context.Context, req *protocol.BindRequest) (*protocol.BindResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.bindings[req.Name]; taken {
		return nil, status.Errorf(codes.AlreadyExists, "name %q is already bound", req.Name)
	}
	s.bindings[req.Name] = req.Address

	s.logger.Info("Bound name", zap.String("name", req.Name), zap.String("address", req.Address))
	return &protocol.BindResponse{}, nil
}

func (s *Server) Lookup(ctx context.Context, req *protocol.LookupRequest) (*protocol.LookupResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	address, ok := s.bindings[req.Name]
	if !ok {
		return nil, status.Errorf(codes.NotFound, "name %q is not bound", req.Name)
	}
	return &protocol.LookupResponse{Address: address}, nil
}

func (s *Server) Unbind(ctx context.Context, req *protocol.UnbindRequest) (*protocol.UnbindResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bindings[req.Name]; !ok {
		return nil, status.Errorf(codes.NotFound, "name %q is not bound", req.Name)
	}
	delete(s.bindings, req.Name)

	s.logger.Info("Unbound name", zap.String("name", req.Name))
	return &protocol.UnbindResponse{}, nil
}
