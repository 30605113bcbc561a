// internal/rules/engine.go
package rules

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/AkkiPaul2000/Screening-Ontology/internal/metrics"
	"github.com/AkkiPaul2000/Screening-Ontology/internal/tree"
	"github.com/AkkiPaul2000/Screening-Ontology/internal/types"
)

/*
 * Engine is the validation entry point shared by the gRPC service and the CLI.
 *
 * It adds the concerns the pure validators leave out: size limits for
 * untrusted input, metrics and logging. The validators themselves stay free
 * functions so the tree helpers and tests can call them directly.
 */

// Engine validates structures and prepares records for storage.
type Engine struct {
	logger   *zap.Logger
	maxNodes int
	maxDepth int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLimits overrides the node and depth limits. Non-positive values disable
// the corresponding check.
func WithLimits(maxNodes, maxDepth int) Option {
	return func(e *Engine) {
		e.maxNodes = maxNodes
		e.maxDepth = maxDepth
	}
}

// NewEngine creates an engine. A nil logger discards output.
func NewEngine(logger *zap.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		logger:   logger,
		maxNodes: types.MaxStructureNodes,
		maxDepth: types.MaxStructureDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CheckLimits rejects structures beyond the configured size or depth.
func (e *Engine) CheckLimits(s types.Structure) error {
	return tree.CheckLimits(s, e.maxNodes, e.maxDepth)
}

// Validate runs ValidateStructure and records the outcome.
func (e *Engine) Validate(s types.Structure) ValidationResult {
	start := time.Now()
	r := ValidateStructure(s)
	metrics.StructureValidationDuration.Observe(float64(time.Since(start).Microseconds()))

	nodes, _ := tree.Measure(s)
	metrics.StructureNodes.Observe(float64(nodes))
	metrics.StructureValidationErrors.Add(float64(len(r.Errors)))
	if r.IsValid {
		metrics.StructureValidations.WithLabelValues("valid").Inc()
	} else {
		metrics.StructureValidations.WithLabelValues("invalid").Inc()
		e.logger.Debug("structure invalid",
			zap.Int("nodes", nodes),
			zap.Int("errors", len(r.Errors)),
			zap.Strings("invalid_node_ids", r.InvalidNodeIDs))
	}
	return r
}

// Prepare normalises o for storage and reports whether it may be saved.
//
// An empty structure becomes a single root layer named after the role type
// (or DefaultRootName). When a root layer exists its name becomes the role
// type. A blank role type fails with types.ErrRoleTypeRequired and an
// invalid structure with types.ErrInvalidStructure; the returned result
// carries the individual problems either way.
func (e *Engine) Prepare(o *types.Ontology) (ValidationResult, error) {
	if err := e.CheckLimits(o.Structure); err != nil {
		metrics.OntologiesRejected.WithLabelValues("limits").Inc()
		return ValidationResult{}, err
	}

	if len(o.Structure) == 0 {
		o.Structure = tree.NewStructure()
		if name := strings.TrimSpace(o.RoleType); name != "" {
			o.Structure[0].(*types.Layer).Name = name
		}
	}
	if root, _ := tree.Find(o.Structure, types.RootLayerID); root != nil {
		o.RoleType = root.NodeName()
	}

	r := e.Validate(o.Structure)
	if isBlank(o.RoleType) {
		metrics.OntologiesRejected.WithLabelValues("role_type").Inc()
		return r, types.ErrRoleTypeRequired
	}
	if !r.IsValid {
		metrics.OntologiesRejected.WithLabelValues("invalid").Inc()
		return r, fmt.Errorf("%w: %s", types.ErrInvalidStructure, strings.Join(r.Errors, "; "))
	}
	return r, nil
}
