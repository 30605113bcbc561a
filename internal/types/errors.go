package types

import "errors"

// Sentinel errors for ontology operations.
var (
	// ErrRootNotDeletable indicates an attempt to delete the root layer.
	ErrRootNotDeletable = errors.New("root layer cannot be deleted")

	// ErrUnknownNodeType indicates a tree node with a missing or unknown "type".
	ErrUnknownNodeType = errors.New("unknown tree node type")

	// ErrOntologyNotFound indicates no record exists for the requested id.
	ErrOntologyNotFound = errors.New("ontology not found")

	// ErrInvalidStructure indicates a structure failed validation and cannot be saved.
	ErrInvalidStructure = errors.New("ontology structure is invalid")

	// ErrStructureTooLarge indicates a structure exceeds MaxStructureNodes.
	ErrStructureTooLarge = errors.New("structure exceeds maximum node count")

	// ErrStructureTooDeep indicates a structure exceeds MaxStructureDepth.
	ErrStructureTooDeep = errors.New("structure exceeds maximum depth")

	// ErrRoleTypeRequired indicates a blank role type on save.
	ErrRoleTypeRequired = errors.New("role type is required")

	// ErrInvalidRecord indicates record fields failed validation.
	ErrInvalidRecord = errors.New("ontology record is invalid")
)
