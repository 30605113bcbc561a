package server_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/AkkiPaul2000/Screening-Ontology/internal/core/api"
	"github.com/AkkiPaul2000/Screening-Ontology/internal/core/auth"
	"github.com/AkkiPaul2000/Screening-Ontology/internal/core/config"
	"github.com/AkkiPaul2000/Screening-Ontology/internal/core/db"
	"github.com/AkkiPaul2000/Screening-Ontology/internal/core/db/dbtest"
	"github.com/AkkiPaul2000/Screening-Ontology/internal/core/server"
	"github.com/AkkiPaul2000/Screening-Ontology/internal/rules"
	"github.com/AkkiPaul2000/Screening-Ontology/internal/types"
)

const secretID = "0123456789abcdef0123456789abcdef"

func TestNewGRPCServer_NilDeps(t *testing.T) {
	_, err := server.NewGRPCServer(nil, &api.OntologyService{}, &auth.Authenticator{}, nil)
	require.Error(t, err)
	_, err = server.NewGRPCServer(config.DefaultServerConfig(), nil, &auth.Authenticator{}, nil)
	require.Error(t, err)
	_, err = server.NewGRPCServer(config.DefaultServerConfig(), &api.OntologyService{}, nil, nil)
	require.Error(t, err)
}

func TestGRPCServer_AuthAndHealth(t *testing.T) {
	ctx := context.Background()
	_, q := dbtest.Open(t)

	authn := auth.NewAuthenticator(map[string][]byte{secretID: []byte("0123456789abcdef0123456789abcdef-secret")}, q, nil)
	_, key, err := authn.Create(ctx, "Liza Fisher", secretID)
	require.NoError(t, err)

	svc, err := api.NewOntologyService(db.NewOntologies(q), rules.NewEngine(nil), nil)
	require.NoError(t, err)

	cfg := config.DefaultServerConfig()
	cfg.MetricsAddr = ""
	srv, err := server.NewGRPCServer(cfg, svc, authn, nil)
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	go srv.Serve(lis)
	t.Cleanup(func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	})

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	hc, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: api.ServiceName})
	require.NoError(t, err)
	require.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, hc.Status)

	client := api.NewClient(conn)

	_, err = client.Validate(ctx, nil)
	require.Equal(t, codes.Unauthenticated, status.Code(err))

	bad := metadata.AppendToOutgoingContext(ctx, auth.MetadataKey, "so-v1-nope")
	_, err = client.Validate(bad, nil)
	require.Equal(t, codes.Unauthenticated, status.Code(err))

	authed := metadata.AppendToOutgoingContext(ctx, auth.MetadataKey, key)
	saved, err := client.SaveOntology(authed, types.Ontology{RoleType: "Backend Engineer"})
	require.NoError(t, err)
	require.Equal(t, "Liza Fisher", saved.Ontology.CreatedBy)
}

func TestTimeoutInterceptor(t *testing.T) {
	info := &grpc.UnaryServerInfo{FullMethod: api.FullMethod(api.MethodValidate)}

	var deadline bool
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		_, deadline = ctx.Deadline()
		return nil, nil
	}

	_, err := server.TimeoutInterceptor(time.Second)(context.Background(), nil, info, handler)
	require.NoError(t, err)
	require.True(t, deadline)

	_, err = server.TimeoutInterceptor(0)(context.Background(), nil, info, handler)
	require.NoError(t, err)
	require.False(t, deadline)
}
