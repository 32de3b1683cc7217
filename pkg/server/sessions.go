package server

import (
	"sync"

	"google.golang.org/grpc"

	"confab/pkg/protocol"
	"confab/pkg/types"
)

// session is the per-logged-in-user record holding the callback handle used
// for push notifications. Created by login, destroyed by logout or shutdown.
type session struct {
	token        string
	user         string
	callbackAddr string
	conn         *grpc.ClientConn
	callback     protocol.CallbackClient
}

type sessionTable struct {
	mu      sync.RWMutex
	byToken map[string]*session
	byUser  map[string]*session
}

func newSessionTable() *sessionTable {
	return &sessionTable{
		byToken: make(map[string]*session),
		byUser:  make(map[string]*session),
	}
}

// add stores the session unless the user already has one.
func (t *sessionTable) add(sess *session) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, online := t.byUser[sess.user]; online {
		return types.ErrAlreadyLoggedIn
	}
	t.byToken[sess.token] = sess
	t.byUser[sess.user] = sess
	return nil
}

func (t *sessionTable) byTokenGet(token string) (*session, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	sess, ok := t.byToken[token]
	return sess, ok
}

func (t *sessionTable) byUserGet(user string) (*session, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	sess, ok := t.byUser[user]
	return sess, ok
}

// remove destroys the session and returns it, or nil for an unknown token.
func (t *sessionTable) remove(token string) *session {
	t.mu.Lock()
	defer t.mu.Unlock()

	sess, ok := t.byToken[token]
	if !ok {
		return nil
	}
	delete(t.byToken, token)
	delete(t.byUser, sess.user)
	return sess
}

// drain empties the table for shutdown and returns all live sessions.
func (t *sessionTable) drain() []*session {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]*session, 0, len(t.byToken))
	for _, sess := range t.byToken {
		out = append(out, sess)
	}
	t.byToken = make(map[string]*session)
	t.byUser = make(map[string]*session)
	return out
}
