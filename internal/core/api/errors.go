package api

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/AkkiPaul2000/Screening-Ontology/internal/types"
)

// errBadRequest marks requests that could not be decoded or are missing
// required fields.
var errBadRequest = errors.New("bad request")

// toStatus maps domain errors onto gRPC status codes. Validation and decode
// failures are InvalidArgument, missing records NotFound, root deletion
// FailedPrecondition and everything else (store failures) Unavailable.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	code := codes.Unavailable
	switch {
	case errors.Is(err, types.ErrOntologyNotFound):
		code = codes.NotFound
	case errors.Is(err, types.ErrRootNotDeletable):
		code = codes.FailedPrecondition
	case errors.Is(err, errBadRequest),
		errors.Is(err, types.ErrUnknownNodeType),
		errors.Is(err, types.ErrInvalidStructure),
		errors.Is(err, types.ErrInvalidRecord),
		errors.Is(err, types.ErrRoleTypeRequired),
		errors.Is(err, types.ErrStructureTooLarge),
		errors.Is(err, types.ErrStructureTooDeep):
		code = codes.InvalidArgument
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	}
	return status.Error(code, err.Error())
}
