package middleware

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/blog-auth-server/internal/mocks"
	"github.com/dtroode/blog-auth-server/internal/model"
	"github.com/dtroode/blog-auth-server/internal/testutil"
)

func TestAuthenticate_AuthFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		mdAuthHeader   string
		svcPrincipalID uuid.UUID
		svcErr         error
		wantErr        bool
		expectSetCtx   bool
	}{
		{
			name:         "missing authorization header",
			mdAuthHeader: "",
			wantErr:      true,
		},
		{
			name:         "invalid token",
			mdAuthHeader: "Bearer invalid",
			svcErr:       model.NewInvalidToken(model.ReasonMalformed),
			wantErr:      true,
		},
		{
			name:           "nil principal from token",
			mdAuthHeader:   "Bearer token",
			svcPrincipalID: uuid.Nil,
			wantErr:        true,
		},
		{
			name:           "valid token",
			mdAuthHeader:   "Bearer token",
			svcPrincipalID: uuid.New(),
			expectSetCtx:   true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cm := mocks.NewContextManager(t)
			if tt.expectSetCtx {
				cm.On("SetPrincipalIDToContext", mock.Anything, tt.svcPrincipalID).Return(context.Background()).Once()
			}

			svc := mocks.NewTokenService(t)
			if tt.mdAuthHeader != "" {
				svc.On("PrincipalFromAccessToken", mock.Anything, "token").Return(tt.svcPrincipalID, tt.svcErr).Maybe()
				svc.On("PrincipalFromAccessToken", mock.Anything, "invalid").Return(uuid.Nil, tt.svcErr).Maybe()
			}
			m := NewAuthenticate(svc, cm, testutil.MakeNoopLogger())

			ctx := context.Background()
			if tt.mdAuthHeader != "" {
				ctx = metadata.NewIncomingContext(ctx, metadata.Pairs("authorization", tt.mdAuthHeader))
			}

			newCtx, err := m.AuthFunc(ctx)

			if tt.wantErr {
				assert.Error(t, err)
				st, ok := status.FromError(err)
				assert.True(t, ok)
				assert.Equal(t, codes.Unauthenticated, st.Code())
				assert.Nil(t, newCtx)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, newCtx)
			}
		})
	}
}

func TestIssuerKey_AuthFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		key     string
		header  string
		wantErr bool
	}{
		{name: "matching key", key: "k1", header: "k1"},
		{name: "wrong key", key: "k1", header: "k2", wantErr: true},
		{name: "missing header", key: "k1", wantErr: true},
		{name: "empty configured key", key: "", header: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := NewIssuerKey(tt.key, testutil.MakeNoopLogger())
			ctx := context.Background()
			if tt.header != "" {
				ctx = metadata.NewIncomingContext(ctx, metadata.Pairs(IssuerKeyHeader, tt.header))
			}

			got, err := m.AuthFunc(ctx)
			if tt.wantErr {
				assert.Equal(t, codes.PermissionDenied, status.Code(err))
				assert.Nil(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, ctx, got)
		})
	}
}
