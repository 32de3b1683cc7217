package protocol

import "confab/pkg/types"

// Naming service messages.

type BindRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type BindResponse struct{}

type LookupRequest struct {
	Name string `json:"name"`
}

type LookupResponse struct {
	Address string `json:"address"`
}

type UnbindRequest struct {
	Name string `json:"name"`
}

type UnbindResponse struct{}

// Peer service messages. Dates travel as RFC 3339 strings.

type BeginRegisterRequest struct {
	User       string `json:"user"`
	Password   string `json:"password"`
	HomeServer string `json:"home_server"`
}

type BeginRegisterResponse struct {
	Accepted bool `json:"accepted"`
}

type CommitRegisterRequest struct {
	User string `json:"user"`
}

type CommitRegisterResponse struct{}

type RollbackRegisterRequest struct {
	User string `json:"user"`
}

type RollbackRegisterResponse struct{}

type BeginCreateRequest struct {
	Event    string `json:"event"`
	Location string `json:"location"`
	Duration int    `json:"duration"`
	Author   string `json:"author"`
}

type BeginCreateResponse struct {
	Accepted bool `json:"accepted"`
}

type CommitCreateRequest struct {
	Event string `json:"event"`
}

type CommitCreateResponse struct{}

type RollbackCreateRequest struct {
	Event string `json:"event"`
}

type RollbackCreateResponse struct{}

type PeerAddDateRequest struct {
	Event  string `json:"event"`
	Author string `json:"author"`
	Date   string `json:"date"`
}

type PeerAddDateResponse struct {
	Added bool `json:"added"`
}

type PeerInviteRequest struct {
	Event  string `json:"event"`
	User   string `json:"user"`
	Author string `json:"author"`
}

type PeerInviteResponse struct{}

type PeerVoteRequest struct {
	Event string   `json:"event"`
	User  string   `json:"user"`
	Dates []string `json:"dates"`
}

type PeerVoteResponse struct {
	Accepted bool `json:"accepted"`
}

type PeerFinalizeRequest struct {
	Event  string `json:"event"`
	Author string `json:"author"`
}

type PeerFinalizeResponse struct {
	Date string `json:"date"`
}

type PeerGetRequest struct {
	Event string `json:"event"`
}

type PeerGetResponse struct {
	Snapshot *types.EventSnapshot `json:"snapshot"`
}

// Notification kinds carried by NotifyRequest.
const (
	NotifyFinalization = "finalization"
	NotifyInvitation   = "invitation"
)

type NotifyRequest struct {
	Kind   string `json:"kind"`
	Event  string `json:"event"`
	User   string `json:"user"`
	Date   string `json:"date,omitempty"`
	Author string `json:"author,omitempty"`
}

type NotifyResponse struct {
	Delivered bool `json:"delivered"`
}

// Scheduler (front door) messages.

type RegisterRequest struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	OK bool `json:"ok"`
}

type LoginRequest struct {
	User            string `json:"user"`
	Password        string `json:"password"`
	CallbackAddress string `json:"callback_address"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type LogoutRequest struct {
	Token string `json:"token"`
}

type LogoutResponse struct{}

type CreateRequest struct {
	Token    string `json:"token"`
	Event    string `json:"event"`
	Location string `json:"location"`
	Duration int    `json:"duration"`
}

type CreateResponse struct {
	OK bool `json:"ok"`
}

type AddDateRequest struct {
	Token string `json:"token"`
	Event string `json:"event"`
	Date  string `json:"date"`
}

type AddDateResponse struct {
	Added bool `json:"added"`
}

type InviteRequest struct {
	Token string `json:"token"`
	Event string `json:"event"`
	User  string `json:"user"`
}

type InviteResponse struct{}

type VoteRequest struct {
	Token string   `json:"token"`
	Event string   `json:"event"`
	Dates []string `json:"dates"`
}

type VoteResponse struct {
	Accepted bool `json:"accepted"`
}

type FinalizeRequest struct {
	Token string `json:"token"`
	Event string `json:"event"`
}

type FinalizeResponse struct {
	Date string `json:"date"`
}

type GetRequest struct {
	Token string `json:"token"`
	Event string `json:"event"`
}

type GetResponse struct {
	Snapshot *types.EventSnapshot `json:"snapshot"`
}

// Callback messages, served by the client.

type OnFinalizationRequest struct {
	Event string `json:"event"`
	Date  string `json:"date"`
}

type OnFinalizationResponse struct{}

type OnInvitationRequest struct {
	Event  string `json:"event"`
	Author string `json:"author"`
}

type OnInvitationResponse struct{}
