package discovery

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"confab/pkg/registry"
	"confab/pkg/types"
)

func startTestRegistry(t *testing.T, address string) (*registry.Server, *registry.Client) {
	t.Helper()

	srv := registry.NewServer(nil)
	go func() {
		if err := srv.Start(address); err != nil {
			t.Logf("Registry start error: %v", err)
		}
	}()
	t.Cleanup(srv.Stop)
	time.Sleep(100 * time.Millisecond)

	c, err := registry.Connect(address)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return srv, c
}

func TestResolveMissing(t *testing.T) {
	_, reg := startTestRegistry(t, "localhost:18120")
	ctx := context.Background()

	require.NoError(t, reg.Bind(ctx, "a", "localhost:18121"))

	l := NewLoop([]string{"a", "b"}, reg, 50*time.Millisecond, time.Second, clockwork.NewFakeClock(), zap.NewNop())
	t.Cleanup(l.Stop)

	l.resolveMissing()
	assert.False(t, l.Complete())

	p, ok := l.Peer("a")
	require.True(t, ok)
	assert.Equal(t, types.ServerID("a"), p.ID)
	assert.Equal(t, "localhost:18121", p.Address)

	// The late peer shows up on the next pass.
	require.NoError(t, reg.Bind(ctx, "b", "localhost:18122"))
	l.resolveMissing()
	assert.True(t, l.Complete())

	// Configured order, not resolution order.
	peers := l.Peers()
	require.Len(t, peers, 2)
	assert.Equal(t, types.ServerID("a"), peers[0].ID)
	assert.Equal(t, types.ServerID("b"), peers[1].ID)
}

func TestLoopResolvesOnTick(t *testing.T) {
	_, reg := startTestRegistry(t, "localhost:18123")
	ctx := context.Background()

	clock := clockwork.NewFakeClock()
	l := NewLoop([]string{"a"}, reg, 500*time.Millisecond, time.Second, clock, zap.NewNop())
	t.Cleanup(l.Stop)

	l.Start()
	clock.BlockUntil(1)
	assert.False(t, l.Complete())

	require.NoError(t, reg.Bind(ctx, "a", "localhost:18124"))
	clock.Advance(500 * time.Millisecond)

	require.Eventually(t, l.Complete, 2*time.Second, 10*time.Millisecond)
}

func TestDirectoryFailureIsFatal(t *testing.T) {
	srv, reg := startTestRegistry(t, "localhost:18125")

	// A dead directory is not "name not bound yet": the loop must give up.
	srv.Stop()
	time.Sleep(50 * time.Millisecond)

	l := NewLoop([]string{"a"}, reg, 50*time.Millisecond, 200*time.Millisecond, clockwork.NewFakeClock(), zap.NewNop())
	t.Cleanup(l.Stop)

	fatalCalled := false
	l.fatal = func(msg string, fields ...zap.Field) { fatalCalled = true }

	l.resolveMissing()
	assert.True(t, fatalCalled)
	assert.False(t, l.Complete())
}
