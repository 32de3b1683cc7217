package server

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"confab/pkg/client"
	"confab/pkg/config"
	"confab/pkg/registry"
)

// startMember starts one federation member against the shared naming
// directory and returns it running in the background.
func startMember(t *testing.T, memberID, address, registryAddress string, peers []string) *Server {
	t.Helper()

	logger, _ := zap.NewDevelopment()
	srv := New(&config.Config{
		MemberID:          memberID,
		Address:           address,
		Registry:          config.RegistryConfig{Address: registryAddress},
		Peers:             peers,
		LookupIntervalMs:  50,
		PeerCallTimeoutMs: 2000,
	}, logger)

	go func() {
		if err := srv.Start(); err != nil {
			t.Logf("Server %s start error: %v", memberID, err)
		}
	}()
	return srv
}

// startFederation brings up a registry and two members on basePort,
// basePort+1 and basePort+2, and blocks until both members are ready.
func startFederation(t *testing.T, basePort int) (s1, s2 *Server, addr1, addr2 string) {
	t.Helper()

	registryAddr := fmt.Sprintf("localhost:%d", basePort)
	addr1 = fmt.Sprintf("localhost:%d", basePort+1)
	addr2 = fmt.Sprintf("localhost:%d", basePort+2)

	reg := registry.NewServer(nil)
	go func() {
		if err := reg.Start(registryAddr); err != nil {
			t.Logf("Registry start error: %v", err)
		}
	}()
	t.Cleanup(reg.Stop)
	time.Sleep(100 * time.Millisecond)

	s1 = startMember(t, "s1", addr1, registryAddr, []string{"s2"})
	s2 = startMember(t, "s2", addr2, registryAddr, []string{"s1"})
	t.Cleanup(s1.Stop)
	t.Cleanup(s2.Stop)

	// Ready means the gate stops failing: an unauthenticated call gets past
	// FailedPrecondition to Unauthenticated.
	for _, address := range []string{addr1, addr2} {
		probe, err := client.New(address, client.Handlers{}, nil)
		require.NoError(t, err)
		require.Eventually(t, func() bool {
			_, err := probe.Get(context.Background(), "probe")
			return status.Code(err) == codes.Unauthenticated
		}, 5*time.Second, 50*time.Millisecond, "federation never completed")
		probe.Close()
	}

	return s1, s2, addr1, addr2
}

func TestFederationScenario(t *testing.T) {
	_, _, addr1, addr2 := startFederation(t, 18100)
	ctx := context.Background()

	d1 := time.Date(2026, 10, 1, 19, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 10, 2, 19, 0, 0, 0, time.UTC)
	d3 := time.Date(2026, 10, 3, 19, 0, 0, 0, time.UTC)

	finalized := make(chan time.Time, 4)
	invited := make(chan string, 4)

	alice, err := client.New(addr1, client.Handlers{}, nil)
	require.NoError(t, err)
	defer alice.Close()

	bob, err := client.New(addr2, client.Handlers{
		OnFinalization: func(event string, date time.Time) { finalized <- date },
		OnInvitation:   func(event, author string) { invited <- author },
	}, nil)
	require.NoError(t, err)
	defer bob.Close()

	t.Run("RegisterIsReplicated", func(t *testing.T) {
		ok, err := alice.Register(ctx, "alice", "secret")
		require.NoError(t, err)
		assert.True(t, ok)

		// Same name on the other server loses federation-wide.
		ok, err = bob.Register(ctx, "alice", "other")
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = bob.Register(ctx, "bob", "hunter2")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("LoginOnlyAtHomeServer", func(t *testing.T) {
		stray, err := client.New(addr2, client.Handlers{}, nil)
		require.NoError(t, err)
		defer stray.Close()

		err = stray.Login(ctx, "alice", "secret")
		assert.Equal(t, codes.PermissionDenied, status.Code(err))
	})

	t.Run("LoginRejectsBadPassword", func(t *testing.T) {
		err := alice.Login(ctx, "alice", "wrong")
		assert.Equal(t, codes.PermissionDenied, status.Code(err))
	})

	require.NoError(t, alice.Login(ctx, "alice", "secret"))
	require.NoError(t, bob.Login(ctx, "bob", "hunter2"))

	t.Run("SecondLoginRejected", func(t *testing.T) {
		dup, err := client.New(addr1, client.Handlers{}, nil)
		require.NoError(t, err)
		defer dup.Close()

		err = dup.Login(ctx, "alice", "secret")
		assert.Equal(t, codes.FailedPrecondition, status.Code(err))
	})

	t.Run("CreateIsReplicated", func(t *testing.T) {
		ok, err := alice.Create(ctx, "meetup", "office", 90)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = bob.Create(ctx, "meetup", "elsewhere", 30)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("AddDate", func(t *testing.T) {
		added, err := alice.AddDate(ctx, "meetup", d1)
		require.NoError(t, err)
		assert.True(t, added)

		added, err = alice.AddDate(ctx, "meetup", d2)
		require.NoError(t, err)
		assert.True(t, added)

		added, err = alice.AddDate(ctx, "meetup", d1)
		require.NoError(t, err)
		assert.False(t, added)

		// Routed to the owner, rejected there: bob is not the author.
		_, err = bob.AddDate(ctx, "meetup", d3)
		assert.Equal(t, codes.PermissionDenied, status.Code(err))
	})

	t.Run("Invite", func(t *testing.T) {
		require.NoError(t, alice.Invite(ctx, "meetup", "bob"))

		select {
		case author := <-invited:
			assert.Equal(t, "alice", author)
		case <-time.After(3 * time.Second):
			t.Fatal("bob never received the invitation push")
		}

		// Re-invite is an idempotent no-op and must not push again.
		require.NoError(t, alice.Invite(ctx, "meetup", "bob"))
		select {
		case <-invited:
			t.Fatal("re-invite pushed a duplicate notification")
		case <-time.After(300 * time.Millisecond):
		}

		err := alice.Invite(ctx, "meetup", "nobody")
		assert.Equal(t, codes.NotFound, status.Code(err))

		err = alice.Invite(ctx, "meetup", "alice")
		assert.Equal(t, codes.PermissionDenied, status.Code(err))
	})

	t.Run("GetIsRoutedToOwner", func(t *testing.T) {
		snap, err := bob.Get(ctx, "meetup")
		require.NoError(t, err)
		assert.Equal(t, "meetup", snap.Name)
		assert.Equal(t, "alice", snap.Author)
		assert.Len(t, snap.DateOptions, 2)
		assert.Contains(t, snap.Votes, "bob")
		assert.False(t, snap.Finalized)
	})

	t.Run("Vote", func(t *testing.T) {
		// d3 was never proposed and is dropped from the vote.
		accepted, err := bob.Vote(ctx, "meetup", []time.Time{d1, d3})
		require.NoError(t, err)
		assert.True(t, accepted)

		snap, err := bob.Get(ctx, "meetup")
		require.NoError(t, err)
		assert.Equal(t, []string{d1.Format(time.RFC3339)}, snap.Votes["bob"])

		// The author has no invitation entry and cannot vote.
		accepted, err = alice.Vote(ctx, "meetup", []time.Time{d1})
		require.NoError(t, err)
		assert.False(t, accepted)
	})

	t.Run("FinalizeNotifiesInvitees", func(t *testing.T) {
		_, err := bob.Finalize(ctx, "meetup")
		assert.Equal(t, codes.PermissionDenied, status.Code(err))

		date, err := alice.Finalize(ctx, "meetup")
		require.NoError(t, err)
		assert.True(t, d1.Equal(date))

		select {
		case pushed := <-finalized:
			assert.True(t, d1.Equal(pushed))
		case <-time.After(3 * time.Second):
			t.Fatal("bob never received the finalization push")
		}

		// Exactly one delivery per invitee.
		select {
		case <-finalized:
			t.Fatal("finalization pushed more than once")
		case <-time.After(300 * time.Millisecond):
		}
	})

	t.Run("FinalizedIsTerminal", func(t *testing.T) {
		_, err := alice.AddDate(ctx, "meetup", d3)
		assert.Equal(t, codes.FailedPrecondition, status.Code(err))

		_, err = alice.Finalize(ctx, "meetup")
		assert.Equal(t, codes.FailedPrecondition, status.Code(err))

		snap, err := bob.Get(ctx, "meetup")
		require.NoError(t, err)
		assert.True(t, snap.Finalized)
		assert.Equal(t, d1.Format(time.RFC3339), snap.FinalizedDate)
	})

	t.Run("LogoutInvalidatesToken", func(t *testing.T) {
		require.NoError(t, bob.Logout(ctx))
		_, err := bob.Get(ctx, "meetup")
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	require.NoError(t, alice.Logout(ctx))
}

// TestConcurrentRegisterUniqueness races the same name through the two-phase
// protocol from both ends of the federation. At most one side may win; both
// replicas must settle on the same outcome. Zero winners is a legitimate
// result of the prepare votes rejecting each other's tentative entries.
func TestConcurrentRegisterUniqueness(t *testing.T) {
	s1, s2, addr1, addr2 := startFederation(t, 18140)
	ctx := context.Background()

	c1, err := client.New(addr1, client.Handlers{}, nil)
	require.NoError(t, err)
	defer c1.Close()

	c2, err := client.New(addr2, client.Handlers{}, nil)
	require.NoError(t, err)
	defer c2.Close()

	for round := 0; round < 20; round++ {
		name := fmt.Sprintf("carol-%d", round)

		results := make(chan bool, 2)
		var wg sync.WaitGroup
		for _, c := range []*client.Client{c1, c2} {
			wg.Add(1)
			go func(c *client.Client) {
				defer wg.Done()
				ok, err := c.Register(ctx, name, "pw")
				assert.NoError(t, err)
				results <- ok
			}(c)
		}
		wg.Wait()
		close(results)

		winners := 0
		for won := range results {
			if won {
				winners++
			}
		}
		assert.LessOrEqual(t, winners, 1, "round %d: name registered twice", round)

		u1, ok1 := s1.store.GetUser(name)
		u2, ok2 := s2.store.GetUser(name)
		assert.Equal(t, ok1, ok2, "round %d: replicas disagree on existence", round)
		if ok1 && ok2 {
			assert.Equal(t, u1.HomeServer, u2.HomeServer, "round %d", round)
			assert.True(t, u1.Committed, "round %d", round)
			assert.True(t, u2.Committed, "round %d", round)
		}
		if winners == 1 {
			assert.True(t, ok1, "round %d: winner left no committed entry", round)
		}
	}
}

func TestIncompleteNetworkFailsFast(t *testing.T) {
	reg := registry.NewServer(nil)
	go func() {
		if err := reg.Start("localhost:18110"); err != nil {
			t.Logf("Registry start error: %v", err)
		}
	}()
	t.Cleanup(reg.Stop)
	time.Sleep(100 * time.Millisecond)

	// "ghost" never binds, so the member never becomes ready.
	srv := startMember(t, "s3", "localhost:18111", "localhost:18110", []string{"ghost"})
	t.Cleanup(srv.Stop)
	time.Sleep(200 * time.Millisecond)

	c, err := client.New("localhost:18111", client.Handlers{}, nil)
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	_, err = c.Register(ctx, "carol", "pw")
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	err = c.Login(ctx, "carol", "pw")
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	// Logout is pure local teardown and skips the gate: an unknown token is
	// reported as such even while peers are unresolved.
	err = c.Logout(ctx)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}
