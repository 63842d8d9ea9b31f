package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/blog-auth-server/internal/model"
)

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *uuid.UUID:
			*p = r.values[i].(uuid.UUID)
		case *string:
			*p = r.values[i].(string)
		case *time.Time:
			*p = r.values[i].(time.Time)
		default:
			return errors.New("unexpected scan target")
		}
	}
	return nil
}

type fakeDB struct {
	execTag  string
	execErr  error
	row      fakeRow
	pingErr  error
	lastSQL  string
	lastArgs []any
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.lastSQL, f.lastArgs = sql, args
	return pgconn.NewCommandTag(f.execTag), f.execErr
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.lastSQL, f.lastArgs = sql, args
	return f.row
}

func (f *fakeDB) Ping(context.Context) error { return f.pingErr }

func TestNewAuthTokenRepository(t *testing.T) {
	db := &Connection{}
	repo := NewAuthTokenRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestAuthTokenRepository_Save(t *testing.T) {
	tok := model.IssueAuthToken(uuid.New(), "v", 60, time.Now())

	t.Run("upserts by principal", func(t *testing.T) {
		db := &fakeDB{execTag: "INSERT 0 1"}
		repo := &AuthTokenRepository{db: db}

		saved, err := repo.Save(context.Background(), tok)
		require.NoError(t, err)
		assert.Equal(t, tok.ID(), saved.ID())
		assert.Contains(t, db.lastSQL, "ON CONFLICT (principal_id) DO UPDATE")
		assert.Equal(t, tok.PrincipalID(), db.lastArgs[0])
		assert.Equal(t, "v", db.lastArgs[2])
	})

	t.Run("propagates errors", func(t *testing.T) {
		repo := &AuthTokenRepository{db: &fakeDB{execErr: assert.AnError}}

		_, err := repo.Save(context.Background(), tok)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestAuthTokenRepository_FindByPrincipal(t *testing.T) {
	id, principal := uuid.New(), uuid.New()
	now := time.Now().UTC()

	tests := []struct {
		name    string
		row     fakeRow
		wantOK  bool
		wantErr bool
	}{
		{
			name:   "found",
			row:    fakeRow{values: []any{id, principal, "v", now.Add(time.Hour), now, now}},
			wantOK: true,
		},
		{
			name: "absent",
			row:  fakeRow{err: pgx.ErrNoRows},
		},
		{
			name:    "database error",
			row:     fakeRow{err: assert.AnError},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &AuthTokenRepository{db: &fakeDB{row: tt.row}}

			got, ok, err := repo.FindByPrincipal(context.Background(), principal)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, id, got.ID())
				assert.Equal(t, principal, got.PrincipalID())
				assert.Equal(t, "v", got.TokenValue())
			}
		})
	}
}

func TestAuthTokenRepository_ReplaceIfCurrent(t *testing.T) {
	next := model.IssueAuthToken(uuid.New(), "new", 60, time.Now())

	tests := []struct {
		name     string
		tag      string
		err      error
		wantSwap bool
		wantErr  bool
	}{
		{name: "one row updated", tag: "UPDATE 1", wantSwap: true},
		{name: "no row matched", tag: "UPDATE 0", wantSwap: false},
		{name: "error", err: assert.AnError, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &fakeDB{execTag: tt.tag, execErr: tt.err}
			repo := &AuthTokenRepository{db: db}

			swapped, err := repo.ReplaceIfCurrent(context.Background(), "old", next)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSwap, swapped)
			assert.Equal(t, "old", db.lastArgs[1])
			assert.Contains(t, db.lastSQL, "token_value = $2")
		})
	}
}

func TestAuthTokenRepository_DeleteByPrincipal(t *testing.T) {
	db := &fakeDB{execTag: "DELETE 0"}
	repo := &AuthTokenRepository{db: db}

	require.NoError(t, repo.DeleteByPrincipal(context.Background(), uuid.New()))

	db.execErr = assert.AnError
	assert.Error(t, repo.DeleteByPrincipal(context.Background(), uuid.New()))
}

func TestAuthTokenRepository_DeleteExpired(t *testing.T) {
	db := &fakeDB{execTag: "DELETE 3"}
	repo := &AuthTokenRepository{db: db}
	cutoff := time.Now()

	n, err := repo.DeleteExpired(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, cutoff, db.lastArgs[0])
}

func TestAuthTokenRepository_Ping(t *testing.T) {
	repo := &AuthTokenRepository{db: &fakeDB{pingErr: assert.AnError}}
	assert.ErrorIs(t, repo.Ping(context.Background()), assert.AnError)
}

func TestConnection_PingWithoutPool(t *testing.T) {
	c := &Connection{}
	assert.Error(t, c.Ping(context.Background()))
	assert.NoError(t, c.Close())
}
