package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dtroode/blog-auth-server/internal/model"
)

const (
	fieldID          = "id"
	fieldPrincipalID = "principal_id"
	fieldTokenValue  = "token_value"
	fieldExpiresAt   = "expires_at"
	fieldCreatedAt   = "created_at"
	fieldUpdatedAt   = "updated_at"
)

// ARGV[1] expected token value, ARGV[2] ttl in ms, ARGV[3..] field/value pairs.
const replaceIfCurrentScript = `
local current = redis.call("HGET", KEYS[1], "token_value")
if current ~= ARGV[1] then
  return 0
end
redis.call("DEL", KEYS[1])
redis.call("HSET", KEYS[1], unpack(ARGV, 3))
redis.call("PEXPIRE", KEYS[1], ARGV[2])
return 1
`

var replaceIfCurrentLua = goredis.NewScript(replaceIfCurrentScript)

var _ model.TokenStore = (*AuthTokenRepository)(nil)

// AuthTokenRepository stores one hash per principal. Redis expires the key
// at the token's expiry, so stale records disappear without a sweeper.
type AuthTokenRepository struct {
	client goredis.UniversalClient
	prefix string
	now    func() time.Time
}

func NewAuthTokenRepository(client goredis.UniversalClient, prefix string) *AuthTokenRepository {
	return &AuthTokenRepository{client: client, prefix: prefix, now: time.Now}
}

func (r *AuthTokenRepository) key(principalID uuid.UUID) string {
	return r.prefix + ":" + principalID.String()
}

// ttl never returns less than a millisecond: PEXPIRE 0 would delete the key
// before the write is observable, while the record itself still reports expiry.
func (r *AuthTokenRepository) ttl(token model.AuthToken) time.Duration {
	ttl := token.ExpiresAt().Sub(r.now())
	if ttl < time.Millisecond {
		return time.Millisecond
	}
	return ttl
}

func (r *AuthTokenRepository) Save(ctx context.Context, token model.AuthToken) (model.AuthToken, error) {
	key := r.key(token.PrincipalID())

	_, err := r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, encode(token)...)
		pipe.PExpire(ctx, key, r.ttl(token))
		return nil
	})
	if err != nil {
		return model.AuthToken{}, fmt.Errorf("failed to save auth token: %w", err)
	}
	return token, nil
}

func (r *AuthTokenRepository) FindByPrincipal(ctx context.Context, principalID uuid.UUID) (model.AuthToken, bool, error) {
	fields, err := r.client.HGetAll(ctx, r.key(principalID)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return model.AuthToken{}, false, nil
		}
		return model.AuthToken{}, false, fmt.Errorf("failed to get auth token: %w", err)
	}
	if len(fields) == 0 {
		return model.AuthToken{}, false, nil
	}

	token, err := decode(fields)
	if err != nil {
		return model.AuthToken{}, false, fmt.Errorf("failed to decode auth token: %w", err)
	}
	return token, true, nil
}

func (r *AuthTokenRepository) DeleteByPrincipal(ctx context.Context, principalID uuid.UUID) error {
	if err := r.client.Del(ctx, r.key(principalID)).Err(); err != nil {
		return fmt.Errorf("failed to delete auth token: %w", err)
	}
	return nil
}

func (r *AuthTokenRepository) ReplaceIfCurrent(ctx context.Context, expectedValue string, next model.AuthToken) (bool, error) {
	args := make([]interface{}, 0, 2+len(encode(next)))
	args = append(args, expectedValue, r.ttl(next).Milliseconds())
	args = append(args, encode(next)...)

	res, err := replaceIfCurrentLua.Run(ctx, r.client, []string{r.key(next.PrincipalID())}, args...).Int()
	if err != nil {
		return false, fmt.Errorf("failed to replace auth token: %w", err)
	}
	return res == 1, nil
}

func (r *AuthTokenRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func encode(token model.AuthToken) []interface{} {
	return []interface{}{
		fieldID, token.ID().String(),
		fieldPrincipalID, token.PrincipalID().String(),
		fieldTokenValue, token.TokenValue(),
		fieldExpiresAt, token.ExpiresAt().UTC().Format(time.RFC3339Nano),
		fieldCreatedAt, token.CreatedAt().UTC().Format(time.RFC3339Nano),
		fieldUpdatedAt, token.UpdatedAt().UTC().Format(time.RFC3339Nano),
	}
}

func decode(fields map[string]string) (model.AuthToken, error) {
	id, err := uuid.Parse(fields[fieldID])
	if err != nil {
		return model.AuthToken{}, fmt.Errorf("id: %w", err)
	}
	principalID, err := uuid.Parse(fields[fieldPrincipalID])
	if err != nil {
		return model.AuthToken{}, fmt.Errorf("principal_id: %w", err)
	}

	var times [3]time.Time
	for i, f := range []string{fieldExpiresAt, fieldCreatedAt, fieldUpdatedAt} {
		times[i], err = time.Parse(time.RFC3339Nano, fields[f])
		if err != nil {
			return model.AuthToken{}, fmt.Errorf("%s: %w", f, err)
		}
	}

	return model.RehydrateAuthToken(id, principalID, fields[fieldTokenValue], times[0], times[1], times[2]), nil
}
