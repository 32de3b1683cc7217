package protocol

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"confab/pkg/types"
)

func TestStatusError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code codes.Code
	}{
		{"NotFound", types.ErrNotFound, codes.NotFound},
		{"NetworkIncomplete", types.ErrNetworkIncomplete, codes.FailedPrecondition},
		{"WrongServer", types.ErrWrongServer, codes.PermissionDenied},
		{"Unauthorized", types.ErrUnauthorized, codes.PermissionDenied},
		{"NotLoggedIn", types.ErrNotLoggedIn, codes.Unauthenticated},
		{"AlreadyLoggedIn", types.ErrAlreadyLoggedIn, codes.FailedPrecondition},
		{"EventFinalized", types.ErrEventFinalized, codes.FailedPrecondition},
		{"Wrapped", fmt.Errorf("finalize meetup: %w", types.ErrEventFinalized), codes.FailedPrecondition},
		{"Unknown", errors.New("broken pipe"), codes.Unavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, status.Code(StatusError(tc.err)))
		})
	}
}

func TestStatusErrorPassthrough(t *testing.T) {
	assert.NoError(t, StatusError(nil))

	// A status from a routed peer call is returned verbatim.
	in := status.Error(codes.InvalidArgument, "bad date")
	assert.Equal(t, in, StatusError(in))
}
