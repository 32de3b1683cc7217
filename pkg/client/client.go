// Package client is the library a scheduling client uses to talk to its home
// server: front-door calls, the session token, and the callback endpoint the
// server pushes notifications to.
package client

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"confab/pkg/protocol"
	"confab/pkg/types"
)

// Handlers receives pushed notifications. Nil funcs are ignored.
type Handlers struct {
	OnFinalization func(event string, date time.Time)
	OnInvitation   func(event, author string)
}

// Client binds to exactly one server. Login starts the callback endpoint and
// hands its address to the server; the token authenticates every later call.
type Client struct {
	logger    *zap.Logger
	conn      *grpc.ClientConn
	scheduler protocol.SchedulerClient

	handlers Handlers

	token          string
	callbackServer *grpc.Server
	callbackAddr   string
}

func New(serverAddress string, handlers Handlers, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	conn, err := protocol.Dial(serverAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to dial server at %s: %w", serverAddress, err)
	}

	return &Client{
		logger:    logger,
		conn:      conn,
		scheduler: protocol.NewSchedulerClient(conn),
		handlers:  handlers,
	}, nil
}

func (c *Client) Register(ctx context.Context, user, password string) (bool, error) {
	resp, err := c.scheduler.Register(ctx, &protocol.RegisterRequest{User: user, Password: password})
	if err != nil {
		return false, err
	}
	return resp.OK, nil
}

// Login starts the callback endpoint on an ephemeral loopback port and
// authenticates against the server.
func (c *Client) Login(ctx context.Context, user, password string) error {
	if c.callbackServer == nil {
		if err := c.startCallbackServer(); err != nil {
			return err
		}
	}

	resp, err := c.scheduler.Login(ctx, &protocol.LoginRequest{
		User:            user,
		Password:        password,
		CallbackAddress: c.callbackAddr,
	})
	if err != nil {
		return err
	}
	c.token = resp.Token

	c.logger.Info("Logged in", zap.String("user", user))
	return nil
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := c.scheduler.Logout(ctx, &protocol.LogoutRequest{Token: c.token})
	if err != nil {
		return err
	}
	c.token = ""
	return nil
}

func (c *Client) Create(ctx context.Context, event, location string, duration int) (bool, error) {
	resp, err := c.scheduler.Create(ctx, &protocol.CreateRequest{
		Token:    c.token,
		Event:    event,
		Location: location,
		Duration: duration,
	})
	if err != nil {
		return false, err
	}
	return resp.OK, nil
}

func (c *Client) AddDate(ctx context.Context, event string, date time.Time) (bool, error) {
	resp, err := c.scheduler.AddDate(ctx, &protocol.AddDateRequest{
		Token: c.token,
		Event: event,
		Date:  date.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return false, err
	}
	return resp.Added, nil
}

func (c *Client) Invite(ctx context.Context, event, user string) error {
	_, err := c.scheduler.Invite(ctx, &protocol.InviteRequest{
		Token: c.token,
		Event: event,
		User:  user,
	})
	return err
}

func (c *Client) Vote(ctx context.Context, event string, dates []time.Time) (bool, error) {
	resp, err := c.scheduler.Vote(ctx, &protocol.VoteRequest{
		Token: c.token,
		Event: event,
		Dates: types.FormatDates(dates),
	})
	if err != nil {
		return false, err
	}
	return resp.Accepted, nil
}

func (c *Client) Finalize(ctx context.Context, event string) (time.Time, error) {
	resp, err := c.scheduler.Finalize(ctx, &protocol.FinalizeRequest{
		Token: c.token,
		Event: event,
	})
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, resp.Date)
}

func (c *Client) Get(ctx context.Context, event string) (*types.EventSnapshot, error) {
	resp, err := c.scheduler.Get(ctx, &protocol.GetRequest{Token: c.token, Event: event})
	if err != nil {
		return nil, err
	}
	return resp.Snapshot, nil
}

func (c *Client) Close() {
	if c.callbackServer != nil {
		c.callbackServer.GracefulStop()
	}
	c.conn.Close()
}

func (c *Client) startCallbackServer() error {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("failed to listen for callbacks: %w", err)
	}

	c.callbackServer = grpc.NewServer()
	c.callbackAddr = listener.Addr().String()
	protocol.RegisterCallbackServer(c.callbackServer, &callbackHandler{client: c})

	go func() {
		if err := c.callbackServer.Serve(listener); err != nil {
			c.logger.Warn("Callback server stopped", zap.Error(err))
		}
	}()

	c.logger.Debug("Callback endpoint listening", zap.String("address", c.callbackAddr))
	return nil
}

type callbackHandler struct {
	client *Client
}

func (h *callbackHandler) OnFinalization(ctx context.Context, req *protocol.OnFinalizationRequest) (*protocol.OnFinalizationResponse, error) {
	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		h.client.logger.Warn("Bad date in finalization push", zap.String("date", req.Date))
		return &protocol.OnFinalizationResponse{}, nil
	}
	if h.client.handlers.OnFinalization != nil {
		h.client.handlers.OnFinalization(req.Event, date)
	}
	return &protocol.OnFinalizationResponse{}, nil
}

func (h *callbackHandler) OnInvitation(ctx context.Context, req *protocol.OnInvitationRequest) (*protocol.OnInvitationResponse, error) {
	if h.client.handlers.OnInvitation != nil {
		h.client.handlers.OnInvitation(req.Event, req.Author)
	}
	return &protocol.OnInvitationResponse{}, nil
}
