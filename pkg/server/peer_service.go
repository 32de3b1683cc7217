package server

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"confab/pkg/protocol"
	"confab/pkg/types"
)

// peerService is what this server exposes to the other federation members.
// Begin/Commit/Rollback are the remote half of the two-phase registration
// protocol; AddDate through Get execute owner-routed operations locally;
// Notify delivers a forwarded push to a session living here.
type peerService struct {
	srv *Server
}

func (p *peerService) BeginRegister(ctx context.Context, req *protocol.BeginRegisterRequest) (*protocol.BeginRegisterResponse, error) {
	accepted := p.srv.store.PutUserIfAbsent(&types.User{
		Name:       req.User,
		Password:   req.Password,
		HomeServer: types.ServerID(req.HomeServer),
	})

	p.srv.logger.Debug("BeginRegister",
		zap.String("user", req.User), zap.String("from", req.HomeServer), zap.Bool("accepted", accepted))
	return &protocol.BeginRegisterResponse{Accepted: accepted}, nil
}

func (p *peerService) CommitRegister(ctx context.Context, req *protocol.CommitRegisterRequest) (*protocol.CommitRegisterResponse, error) {
	p.srv.store.CommitUser(req.User)
	return &protocol.CommitRegisterResponse{}, nil
}

func (p *peerService) RollbackRegister(ctx context.Context, req *protocol.RollbackRegisterRequest) (*protocol.RollbackRegisterResponse, error) {
	p.srv.store.RollbackUser(req.User)
	return &protocol.RollbackRegisterResponse{}, nil
}

func (p *peerService) BeginCreate(ctx context.Context, req *protocol.BeginCreateRequest) (*protocol.BeginCreateResponse, error) {
	accepted := p.srv.store.PutEventIfAbsent(&types.Event{
		Name:     req.Event,
		Location: req.Location,
		Duration: req.Duration,
		Author:   req.Author,
	})

	p.srv.logger.Debug("BeginCreate",
		zap.String("event", req.Event), zap.String("author", req.Author), zap.Bool("accepted", accepted))
	return &protocol.BeginCreateResponse{Accepted: accepted}, nil
}

func (p *peerService) CommitCreate(ctx context.Context, req *protocol.CommitCreateRequest) (*protocol.CommitCreateResponse, error) {
	p.srv.store.CommitEvent(req.Event)
	return &protocol.CommitCreateResponse{}, nil
}

func (p *peerService) RollbackCreate(ctx context.Context, req *protocol.RollbackCreateRequest) (*protocol.RollbackCreateResponse, error) {
	p.srv.store.RollbackEvent(req.Event)
	return &protocol.RollbackCreateResponse{}, nil
}

func (p *peerService) AddDate(ctx context.Context, req *protocol.PeerAddDateRequest) (*protocol.PeerAddDateResponse, error) {
	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "bad date %q: %v", req.Date, err)
	}

	added, err := p.srv.localAddDate(req.Event, req.Author, date.UTC())
	if err != nil {
		return nil, protocol.StatusError(err)
	}
	return &protocol.PeerAddDateResponse{Added: added}, nil
}

func (p *peerService) Invite(ctx context.Context, req *protocol.PeerInviteRequest) (*protocol.PeerInviteResponse, error) {
	if err := p.srv.localInvite(req.Event, req.Author, req.User); err != nil {
		return nil, protocol.StatusError(err)
	}
	return &protocol.PeerInviteResponse{}, nil
}

func (p *peerService) Vote(ctx context.Context, req *protocol.PeerVoteRequest) (*protocol.PeerVoteResponse, error) {
	dates, err := types.ParseDates(req.Dates)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "bad dates: %v", err)
	}

	accepted, err := p.srv.localVote(req.Event, req.User, dates)
	if err != nil {
		return nil, protocol.StatusError(err)
	}
	return &protocol.PeerVoteResponse{Accepted: accepted}, nil
}

func (p *peerService) Finalize(ctx context.Context, req *protocol.PeerFinalizeRequest) (*protocol.PeerFinalizeResponse, error) {
	date, err := p.srv.localFinalize(req.Event, req.Author)
	if err != nil {
		return nil, protocol.StatusError(err)
	}
	return &protocol.PeerFinalizeResponse{Date: date.UTC().Format(time.RFC3339)}, nil
}

func (p *peerService) Get(ctx context.Context, req *protocol.PeerGetRequest) (*protocol.PeerGetResponse, error) {
	snap, err := p.srv.localGet(req.Event)
	if err != nil {
		return nil, protocol.StatusError(err)
	}
	return &protocol.PeerGetResponse{Snapshot: snap}, nil
}

// Notify delivers a forwarded notification to the target's session on this
// server. Delivery to an offline user is a no-op.
func (p *peerService) Notify(ctx context.Context, req *protocol.NotifyRequest) (*protocol.NotifyResponse, error) {
	delivered := p.srv.deliverLocal(ctx, req)
	return &protocol.NotifyResponse{Delivered: delivered}, nil
}
