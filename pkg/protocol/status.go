package protocol

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"confab/pkg/types"
)

// StatusError translates a domain error into a grpc status error at the
// service boundary. Errors that already carry a status pass through so that
// routed calls return the owner's result verbatim.
func StatusError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(interface{ GRPCStatus() *status.Status }); ok {
		return err
	}
	switch {
	case errors.Is(err, types.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, types.ErrNetworkIncomplete):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, types.ErrWrongServer), errors.Is(err, types.ErrUnauthorized):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, types.ErrNotLoggedIn):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, types.ErrAlreadyLoggedIn), errors.Is(err, types.ErrEventFinalized):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Unavailable, err.Error())
	}
}
