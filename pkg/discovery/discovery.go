// Package discovery resolves the fixed set of configured peer names into live
// peer connections by polling the naming directory.
package discovery

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"confab/pkg/protocol"
	"confab/pkg/registry"
	"confab/pkg/types"
)

// Peer is a resolved reference to another server's coordination endpoint.
// Once stored it is never replaced; the peer set is fixed at startup.
type Peer struct {
	ID      types.ServerID
	Address string
	Conn    *grpc.ClientConn
	Client  protocol.PeerClient
}

// Loop polls the naming directory on a fixed period until every configured
// peer name has been resolved. Lookups of names that are simply not bound yet
// are retried silently; any other directory failure is fatal to the process,
// since a broken naming directory leaves the federation unable to ever
// complete.
type Loop struct {
	names    []types.ServerID
	reg      *registry.Client
	interval time.Duration
	timeout  time.Duration
	clock    clockwork.Clock
	logger   *zap.Logger

	mu    sync.RWMutex
	peers map[types.ServerID]*Peer

	stopCh   chan struct{}
	stopOnce sync.Once

	// fatal is swapped out in tests; the default exits the process.
	fatal func(msg string, fields ...zap.Field)
}

func NewLoop(peerNames []string, reg *registry.Client, interval, timeout time.Duration, clock clockwork.Clock, logger *zap.Logger) *Loop {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	names := make([]types.ServerID, 0, len(peerNames))
	for _, n := range peerNames {
		names = append(names, types.ServerID(n))
	}

	return &Loop{
		names:    names,
		reg:      reg,
		interval: interval,
		timeout:  timeout,
		clock:    clock,
		logger:   logger,
		peers:    make(map[types.ServerID]*Peer),
		stopCh:   make(chan struct{}),
		fatal:    logger.Fatal,
	}
}

func (l *Loop) Start() {
	go l.run()
}

func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopCh)
	})

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, p := range l.peers {
		if p.Conn != nil {
			p.Conn.Close()
		}
	}
}

func (l *Loop) run() {
	ticker := l.clock.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		l.resolveMissing()

		select {
		case <-ticker.Chan():
		case <-l.stopCh:
			return
		}
	}
}

func (l *Loop) resolveMissing() {
	for _, name := range l.names {
		if _, ok := l.Peer(name); ok {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
		address, err := l.reg.Lookup(ctx, string(name))
		cancel()

		if err != nil {
			if errors.Is(err, registry.ErrNotBound) {
				// Peer has not started yet; try again next tick.
				continue
			}
			l.fatal("Naming directory lookup failed", zap.String("peer", string(name)), zap.Error(err))
			return
		}

		conn, err := protocol.Dial(address)
		if err != nil {
			l.fatal("Failed to dial peer", zap.String("peer", string(name)), zap.Error(err))
			return
		}

		l.mu.Lock()
		l.peers[name] = &Peer{
			ID:      name,
			Address: address,
			Conn:    conn,
			Client:  protocol.NewPeerClient(conn),
		}
		l.mu.Unlock()

		l.logger.Info("Resolved peer", zap.String("peer", string(name)), zap.String("address", address))
	}
}

// Complete reports whether every configured peer has been resolved. Callers
// consult it synchronously and fail fast; nothing blocks waiting for it.
func (l *Loop) Complete() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.peers) == len(l.names)
}

func (l *Loop) Peer(id types.ServerID) (*Peer, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.peers[id]
	return p, ok
}

// Peers returns the resolved peers in configured order, which fixes the
// iteration order of the two-phase registration protocol.
func (l *Loop) Peers() []*Peer {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*Peer, 0, len(l.peers))
	for _, name := range l.names {
		if p, ok := l.peers[name]; ok {
			out = append(out, p)
		}
	}
	return out
}
