package router

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	grpcctx "github.com/dtroode/blog-auth-server/internal/api/grpc/context"
	"github.com/dtroode/blog-auth-server/internal/api/grpc/handler"
	"github.com/dtroode/blog-auth-server/internal/model"
	"github.com/dtroode/blog-auth-server/internal/service"
	"github.com/dtroode/blog-auth-server/internal/testutil"
	"github.com/dtroode/blog-auth-server/internal/token"
)

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, model.TokenEvent) {}

type nopMetrics struct{}

func (nopMetrics) TokenIssued()                            {}
func (nopMetrics) TokenRotated()                           {}
func (nopMetrics) TokenRevoked()                           {}
func (nopMetrics) RotationFailed(model.InvalidTokenReason) {}

type mapStore struct {
	records map[uuid.UUID]model.AuthToken
}

func (m *mapStore) Save(_ context.Context, t model.AuthToken) (model.AuthToken, error) {
	m.records[t.PrincipalID()] = t
	return t, nil
}

func (m *mapStore) FindByPrincipal(_ context.Context, id uuid.UUID) (model.AuthToken, bool, error) {
	t, ok := m.records[id]
	return t, ok, nil
}

func (m *mapStore) DeleteByPrincipal(_ context.Context, id uuid.UUID) error {
	delete(m.records, id)
	return nil
}

func (m *mapStore) ReplaceIfCurrent(_ context.Context, expected string, next model.AuthToken) (bool, error) {
	cur, ok := m.records[next.PrincipalID()]
	if !ok || !cur.MatchesValue(expected) {
		return false, nil
	}
	m.records[next.PrincipalID()] = next
	return true, nil
}

func (m *mapStore) Ping(context.Context) error { return nil }

func dial(t *testing.T, s *grpc.Server) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestRouter_TokenLifecycle(t *testing.T) {
	svc := service.NewTokenService(
		token.NewJWT("secret", time.Minute, time.Hour),
		&mapStore{records: map[uuid.UUID]model.AuthToken{}},
		nopPublisher{},
		nopMetrics{},
		testutil.MakeNoopLogger(),
	)
	conn := dial(t, New(svc, grpcctx.NewManager(), "issuer", testutil.MakeNoopLogger()).Register())
	principal := uuid.New()

	// Issue without the issuer key is refused.
	pair := &structpb.Struct{}
	err := conn.Invoke(context.Background(), handler.TokenService_Issue_FullMethodName, wrapperspb.String(principal.String()), pair)
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	issuerCtx := metadata.AppendToOutgoingContext(context.Background(), "x-issuer-key", "issuer")
	require.NoError(t, conn.Invoke(issuerCtx, handler.TokenService_Issue_FullMethodName, wrapperspb.String(principal.String()), pair))
	first := pair.GetFields()["refresh_token"].GetStringValue()
	require.NotEmpty(t, first)

	rotated := &structpb.Struct{}
	rotateCtx := metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+first)
	require.NoError(t, conn.Invoke(rotateCtx, handler.TokenService_Rotate_FullMethodName, &emptypb.Empty{}, rotated))
	access := rotated.GetFields()["access_token"].GetStringValue()

	// Replaying the first refresh token is theft and ends the session.
	err = conn.Invoke(rotateCtx, handler.TokenService_Rotate_FullMethodName, &emptypb.Empty{}, &structpb.Struct{})
	st := status.Convert(err)
	assert.Equal(t, codes.Unauthenticated, st.Code())
	assert.Equal(t, handler.MsgAuthFailed, st.Message())

	// Revoke needs an access token, not a refresh token.
	err = conn.Invoke(rotateCtx, handler.TokenService_Revoke_FullMethodName, &emptypb.Empty{}, &emptypb.Empty{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	revokeCtx := metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+access)
	require.NoError(t, conn.Invoke(revokeCtx, handler.TokenService_Revoke_FullMethodName, &emptypb.Empty{}, &emptypb.Empty{}))
	require.NoError(t, conn.Invoke(revokeCtx, handler.TokenService_Revoke_FullMethodName, &emptypb.Empty{}, &emptypb.Empty{}))
}
