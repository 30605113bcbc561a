package api

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/AkkiPaul2000/Screening-Ontology/internal/types"
)

func TestToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"not found", fmt.Errorf("%w: x", types.ErrOntologyNotFound), codes.NotFound},
		{"root", types.ErrRootNotDeletable, codes.FailedPrecondition},
		{"invalid structure", fmt.Errorf("%w: Name for layer cannot be empty.", types.ErrInvalidStructure), codes.InvalidArgument},
		{"role type", types.ErrRoleTypeRequired, codes.InvalidArgument},
		{"record", types.ErrInvalidRecord, codes.InvalidArgument},
		{"too large", types.ErrStructureTooLarge, codes.InvalidArgument},
		{"too deep", types.ErrStructureTooDeep, codes.InvalidArgument},
		{"bad request", errBadRequest, codes.InvalidArgument},
		{"deadline", context.DeadlineExceeded, codes.DeadlineExceeded},
		{"canceled", context.Canceled, codes.Canceled},
		{"store", errors.New("database is locked"), codes.Unavailable},
		{"already a status", status.Error(codes.PermissionDenied, "revoked"), codes.PermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := status.Code(toStatus(tt.err)); got != tt.want {
				t.Errorf("toStatus(%v) code = %v, want %v", tt.err, got, tt.want)
			}
		})
	}

	if toStatus(nil) != nil {
		t.Error("toStatus(nil) != nil")
	}
}
