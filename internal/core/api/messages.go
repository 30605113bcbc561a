package api

import (
	"github.com/AkkiPaul2000/Screening-Ontology/internal/rules"
	"github.com/AkkiPaul2000/Screening-Ontology/internal/types"
)

// ValidateRequest asks for a validation of an unsaved structure.
type ValidateRequest struct {
	Structure types.Structure `json:"structure"`
}

// OntologyRequest carries a record to save.
type OntologyRequest struct {
	Ontology types.Ontology `json:"ontology"`
}

// OntologyResponse returns one record. Validation is set by SaveOntology.
type OntologyResponse struct {
	Ontology   types.Ontology          `json:"ontology"`
	Validation *rules.ValidationResult `json:"validation,omitempty"`
}

// IDRequest addresses one record.
type IDRequest struct {
	ID string `json:"id"`
}

// ListRequest filters and orders ListOntologies.
type ListRequest struct {
	Search     string `json:"search,omitempty"`
	SortBy     string `json:"sortBy,omitempty"`
	Descending bool   `json:"descending,omitempty"`
}

// ListResponse holds the matching records.
type ListResponse struct {
	Ontologies []types.Ontology `json:"ontologies"`
}
