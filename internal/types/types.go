// Package types provides the screening ontology domain model shared across
// packages: rule statements, AND/OR rule groups, criteria, layers and the
// keyed ontology record.
//
// The forest of layers and criteria is modelled as a closed sum type
// (TreeNode over *Layer and *Criteria) so traversals can switch exhaustively
// instead of inspecting a string tag. The JSON and YAML encodings still carry
// the "type" discriminator used by the record store.
//
// No behaviour lives here beyond encoding; validation is in internal/rules and
// forest edits are in internal/tree.
package types

// Well-known node identity of the single root layer every ontology carries.
const (
	// RootLayerID identifies the root layer. Mutation helpers refuse to delete it.
	RootLayerID = "root-layer"

	// DefaultRootName is the name given to the root layer of a fresh structure.
	DefaultRootName = "Root Layer"
)

// Resource limits enforced at the service and import boundaries. The core
// validator does not check them; callers holding untrusted input must.
const (
	// MaxStructureNodes caps layers plus criteria in one ontology.
	// Screening configurations are hand-authored; 10k nodes is far beyond any
	// real tree and bounds the cost of a full re-validation.
	MaxStructureNodes = 10000

	// MaxStructureDepth caps layer nesting so recursive walks stay shallow.
	MaxStructureDepth = 64
)
