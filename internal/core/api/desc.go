package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "screening.ontology.v1.OntologyService"

// RPC method names.
const (
	MethodValidate          = "Validate"
	MethodEdit              = "Edit"
	MethodSaveOntology      = "SaveOntology"
	MethodGetOntology       = "GetOntology"
	MethodListOntologies    = "ListOntologies"
	MethodDeleteOntology    = "DeleteOntology"
	MethodDuplicateOntology = "DuplicateOntology"
)

// FullMethod returns the "/service/method" path for method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// OntologyServiceServer is the server side of the ontology service.
type OntologyServiceServer interface {
	Validate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Edit(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SaveOntology(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetOntology(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListOntologies(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteOntology(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DuplicateOntology(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(OntologyServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryMethod(name string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(OntologyServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(OntologyServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// OntologyServiceDesc describes the service for grpc.Server registration.
var OntologyServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*OntologyServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(MethodValidate, OntologyServiceServer.Validate),
		unaryMethod(MethodEdit, OntologyServiceServer.Edit),
		unaryMethod(MethodSaveOntology, OntologyServiceServer.SaveOntology),
		unaryMethod(MethodGetOntology, OntologyServiceServer.GetOntology),
		unaryMethod(MethodListOntologies, OntologyServiceServer.ListOntologies),
		unaryMethod(MethodDeleteOntology, OntologyServiceServer.DeleteOntology),
		unaryMethod(MethodDuplicateOntology, OntologyServiceServer.DuplicateOntology),
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterOntologyServiceServer registers srv on s.
func RegisterOntologyServiceServer(s grpc.ServiceRegistrar, srv OntologyServiceServer) {
	s.RegisterService(&OntologyServiceDesc, srv)
}
