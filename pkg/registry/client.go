package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"confab/pkg/protocol"
)

var (
	// ErrNotBound marks a lookup of a name nobody has bound yet. Callers
	// poll for it; any other lookup failure is a real directory problem.
	ErrNotBound = errors.New("name is not bound")

	ErrAlreadyBound = errors.New("name is already bound")
)

// Client wraps a connection to the naming directory with the bind, lookup and
// unbind primitives.
type Client struct {
	conn   *grpc.ClientConn
	naming protocol.NamingClient
}

// Connect dials the naming directory. The connection is lazy; the first RPC
// establishes it.
func Connect(address string) (*Client, error) {
	conn, err := protocol.Dial(address)
	if err != nil {
		return nil, fmt.Errorf("failed to dial naming directory at %s: %w", address, err)
	}
	return &Client{conn: conn, naming: protocol.NewNamingClient(conn)}, nil
}

func (c *Client) Bind(ctx context.Context, name, address string) error {
	_, err := c.naming.Bind(ctx, &protocol.BindRequest{Name: name, Address: address})
	if status.Code(err) == codes.AlreadyExists {
		return fmt.Errorf("%w: %s", ErrAlreadyBound, name)
	}
	return err
}

// BindRetry binds with exponential backoff, for process startup racing the
// directory process. An already-bound name is permanent and fails at once.
func (c *Client) BindRetry(ctx context.Context, name, address string, maxElapsed time.Duration) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = maxElapsed

	return backoff.Retry(func() error {
		err := c.Bind(ctx, name, address)
		if errors.Is(err, ErrAlreadyBound) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(bo, ctx))
}

func (c *Client) Lookup(ctx context.Context, name string) (string, error) {
	resp, err := c.naming.Lookup(ctx, &protocol.LookupRequest{Name: name})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", fmt.Errorf("%w: %s", ErrNotBound, name)
		}
		return "", err
	}
	return resp.Address, nil
}

func (c *Client) Unbind(ctx context.Context, name string) error {
	_, err := c.naming.Unbind(ctx, &protocol.UnbindRequest{Name: name})
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%w: %s", ErrNotBound, name)
	}
	return err
}

func (c *Client) Close() error {
	return c.conn.Close()
}
