package context

import (
	stdctx "context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/metadata"
)

func TestManager_SetAndGetPrincipalID(t *testing.T) {
	m := NewManager()
	id := uuid.New()
	ctx := m.SetPrincipalIDToContext(stdctx.Background(), id)

	got, ok := m.GetPrincipalIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

func TestManager_GetPrincipalID_NotFound(t *testing.T) {
	m := NewManager()
	_, ok := m.GetPrincipalIDFromContext(stdctx.Background())
	assert.False(t, ok)

	ctx := metadata.NewIncomingContext(stdctx.Background(), metadata.New(map[string]string{"x-trace-id": "t"}))
	_, ok = m.GetPrincipalIDFromContext(ctx)
	assert.False(t, ok)
}

func TestManager_SetPrincipalID_OverridesClientValue(t *testing.T) {
	m := NewManager()
	id := uuid.New()
	baseMD := metadata.New(map[string]string{
		"x-trace-id":     "t",
		"x-principal-id": uuid.NewString(),
	})
	base := metadata.NewIncomingContext(stdctx.Background(), baseMD)

	ctx := m.SetPrincipalIDToContext(base, id)

	got, ok := m.GetPrincipalIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, id, got)

	md, _ := metadata.FromIncomingContext(ctx)
	assert.Equal(t, []string{"t"}, md.Get("x-trace-id"))
	assert.NotEqual(t, id.String(), baseMD.Get("x-principal-id")[0])
}

func TestManager_GetPrincipalID_InvalidUUID(t *testing.T) {
	m := NewManager()
	md := metadata.New(map[string]string{"x-principal-id": "not-a-uuid"})
	ctx := metadata.NewIncomingContext(stdctx.Background(), md)
	_, ok := m.GetPrincipalIDFromContext(ctx)
	assert.False(t, ok)
}
