// Package api provides the gRPC ontology service: validation and edits of
// unsaved structures plus the keyed record operations.
package api

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/AkkiPaul2000/Screening-Ontology/internal/core/auth"
	"github.com/AkkiPaul2000/Screening-Ontology/internal/core/db"
	"github.com/AkkiPaul2000/Screening-Ontology/internal/metrics"
	"github.com/AkkiPaul2000/Screening-Ontology/internal/rules"
	"github.com/AkkiPaul2000/Screening-Ontology/internal/types"
)

// OntologyService implements OntologyServiceServer.
// Thin orchestration layer delegating to rules, tree and db packages.
type OntologyService struct {
	store  *db.Ontologies
	engine *rules.Engine
	logger *zap.Logger
}

// NewOntologyService creates service instance with dependencies.
func NewOntologyService(store *db.Ontologies, engine *rules.Engine, logger *zap.Logger) (*OntologyService, error) {
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if engine == nil {
		return nil, fmt.Errorf("engine cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OntologyService{store: store, engine: engine, logger: logger}, nil
}

var _ OntologyServiceServer = (*OntologyService)(nil)

// Validate validates a structure without storing it.
func (s *OntologyService) Validate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req ValidateRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, toStatus(err)
	}
	if err := s.engine.CheckLimits(req.Structure); err != nil {
		return nil, toStatus(err)
	}
	return s.reply(s.engine.Validate(req.Structure))
}

// Edit applies one mutation and returns the new structure, the node to
// select next and its validation.
func (s *OntologyService) Edit(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req EditRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, toStatus(err)
	}
	if err := s.engine.CheckLimits(req.Structure); err != nil {
		metrics.EditsApplied.WithLabelValues(editLabel(req.Op), "rejected").Inc()
		return nil, toStatus(err)
	}

	structure, selection, err := applyEdit(req)
	if err != nil {
		metrics.EditsApplied.WithLabelValues(editLabel(req.Op), "rejected").Inc()
		return nil, toStatus(err)
	}
	metrics.EditsApplied.WithLabelValues(editLabel(req.Op), "ok").Inc()

	return s.reply(EditResponse{
		Structure:   structure,
		SelectionID: selection,
		Validation:  s.engine.Validate(structure),
	})
}

// SaveOntology normalises, validates and stores a record. A record without
// an author is attributed to the calling key's owner.
func (s *OntologyService) SaveOntology(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req OntologyRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, toStatus(err)
	}
	o := req.Ontology
	if strings.TrimSpace(o.CreatedBy) == "" {
		o.CreatedBy = auth.OwnerFromContext(ctx)
	}

	result, err := s.engine.Prepare(&o)
	if err != nil {
		s.logger.Info("ontology rejected",
			zap.String("ontology_id", o.ID),
			zap.String("role_type", o.RoleType),
			zap.Error(err))
		return nil, toStatus(err)
	}
	if err := s.store.Save(ctx, &o); err != nil {
		if errors.Is(err, types.ErrInvalidRecord) {
			metrics.OntologiesRejected.WithLabelValues("record").Inc()
		}
		return nil, toStatus(err)
	}
	metrics.OntologiesSaved.Inc()
	s.logger.Info("ontology saved",
		zap.String("ontology_id", o.ID),
		zap.String("role_type", o.RoleType))

	return s.reply(OntologyResponse{Ontology: o, Validation: &result})
}

// GetOntology loads one record.
func (s *OntologyService) GetOntology(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id, err := decodeID(in)
	if err != nil {
		return nil, toStatus(err)
	}
	o, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, toStatus(err)
	}
	return s.reply(OntologyResponse{Ontology: *o})
}

// ListOntologies returns records filtered by role type and sorted.
func (s *OntologyService) ListOntologies(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req ListRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, toStatus(err)
	}
	if req.SortBy != "" && req.SortBy != db.SortByCreatedOn && req.SortBy != db.SortByRoleType {
		return nil, toStatus(fmt.Errorf("%w: unknown sort key %q", errBadRequest, req.SortBy))
	}
	list, err := s.store.List(ctx, db.ListOptions{
		Search:     req.Search,
		SortBy:     req.SortBy,
		Descending: req.Descending,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	if list == nil {
		list = []types.Ontology{}
	}
	return s.reply(ListResponse{Ontologies: list})
}

// DeleteOntology removes one record.
func (s *OntologyService) DeleteOntology(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id, err := decodeID(in)
	if err != nil {
		return nil, toStatus(err)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return nil, toStatus(err)
	}
	metrics.OntologiesDeleted.Inc()
	s.logger.Info("ontology deleted", zap.String("ontology_id", id))
	return &structpb.Struct{Fields: map[string]*structpb.Value{}}, nil
}

// DuplicateOntology copies a record under a fresh id and an unused role
// type, attributed to the calling key's owner.
func (s *OntologyService) DuplicateOntology(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id, err := decodeID(in)
	if err != nil {
		return nil, toStatus(err)
	}
	o, err := s.store.Duplicate(ctx, id, auth.OwnerFromContext(ctx))
	if err != nil {
		return nil, toStatus(err)
	}
	metrics.OntologiesSaved.Inc()
	s.logger.Info("ontology duplicated",
		zap.String("source_id", id),
		zap.String("ontology_id", o.ID),
		zap.String("role_type", o.RoleType))
	return s.reply(OntologyResponse{Ontology: *o})
}

func (s *OntologyService) reply(v interface{}) (*structpb.Struct, error) {
	out, err := toStruct(v)
	if err != nil {
		s.logger.Error("encode response", zap.Error(err))
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func decodeID(in *structpb.Struct) (string, error) {
	var req IDRequest
	if err := fromStruct(in, &req); err != nil {
		return "", err
	}
	if strings.TrimSpace(req.ID) == "" {
		return "", fmt.Errorf("%w: id is required", errBadRequest)
	}
	return req.ID, nil
}

// editLabel bounds the op label to known operations.
func editLabel(op string) string {
	switch op {
	case OpAddLayer, OpAddCriteria, OpRenameNode, OpDeleteNode,
		OpAddRuleTree, OpUpdateRuleTree, OpDeleteRuleTree:
		return op
	}
	return "unknown"
}
