package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/AkkiPaul2000/Screening-Ontology/internal/rules"
	"github.com/AkkiPaul2000/Screening-Ontology/internal/types"
)

// Client calls the ontology service over an established connection.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) call(ctx context.Context, method string, in, out interface{}, opts ...grpc.CallOption) error {
	req, err := toStruct(in)
	if err != nil {
		return err
	}
	resp := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), req, resp, opts...); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return fromStruct(resp, out)
}

// Validate validates s without storing it.
func (c *Client) Validate(ctx context.Context, s types.Structure, opts ...grpc.CallOption) (*rules.ValidationResult, error) {
	var out rules.ValidationResult
	if err := c.call(ctx, MethodValidate, ValidateRequest{Structure: s}, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

// Edit applies one mutation to req.Structure.
func (c *Client) Edit(ctx context.Context, req EditRequest, opts ...grpc.CallOption) (*EditResponse, error) {
	var out EditResponse
	if err := c.call(ctx, MethodEdit, req, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveOntology validates and stores o.
func (c *Client) SaveOntology(ctx context.Context, o types.Ontology, opts ...grpc.CallOption) (*OntologyResponse, error) {
	var out OntologyResponse
	if err := c.call(ctx, MethodSaveOntology, OntologyRequest{Ontology: o}, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetOntology loads one record.
func (c *Client) GetOntology(ctx context.Context, id string, opts ...grpc.CallOption) (*types.Ontology, error) {
	var out OntologyResponse
	if err := c.call(ctx, MethodGetOntology, IDRequest{ID: id}, &out, opts...); err != nil {
		return nil, err
	}
	return &out.Ontology, nil
}

// ListOntologies returns the records matching req.
func (c *Client) ListOntologies(ctx context.Context, req ListRequest, opts ...grpc.CallOption) ([]types.Ontology, error) {
	var out ListResponse
	if err := c.call(ctx, MethodListOntologies, req, &out, opts...); err != nil {
		return nil, err
	}
	return out.Ontologies, nil
}

// DeleteOntology removes one record.
func (c *Client) DeleteOntology(ctx context.Context, id string, opts ...grpc.CallOption) error {
	return c.call(ctx, MethodDeleteOntology, IDRequest{ID: id}, nil, opts...)
}

// DuplicateOntology copies a record under a fresh id and role type.
func (c *Client) DuplicateOntology(ctx context.Context, id string, opts ...grpc.CallOption) (*types.Ontology, error) {
	var out OntologyResponse
	if err := c.call(ctx, MethodDuplicateOntology, IDRequest{ID: id}, &out, opts...); err != nil {
		return nil, err
	}
	return &out.Ontology, nil
}
