// Package protocol defines the wire contract between registry, servers and
// clients: message types, grpc service descriptors and a JSON message codec.
// Service descriptors are registered by hand; the transport, call shape and
// status-code semantics are plain grpc unary RPC.
package protocol

import (
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/encoding"
)

// CodecName is the grpc content-subtype all confab endpoints speak.
const CodecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}

// Dial opens a client connection with the confab codec selected. All
// federation traffic is loopback or LAN between trusted processes, so
// transport security is not negotiated.
func Dial(target string) (*grpc.ClientConn, error) {
	return grpc.Dial(target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CodecName)),
	)
}
