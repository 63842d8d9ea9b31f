package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/blog-auth-server/internal/logger"
	"github.com/dtroode/blog-auth-server/internal/model"
)

// Metrics receives counters for the token lifecycle.
type Metrics interface {
	TokenIssued()
	TokenRotated()
	TokenRevoked()
	RotationFailed(reason model.InvalidTokenReason)
}

// TokenService issues, rotates and revokes refresh tokens. A principal has at
// most one live refresh token; presenting any other one is treated as theft.
type TokenService struct {
	codec     model.TokenCodec
	store     model.TokenStore
	publisher model.EventPublisher
	metrics   Metrics
	logger    *logger.Logger
	locks     *principalLocks
	now       func() time.Time
}

func NewTokenService(
	codec model.TokenCodec,
	store model.TokenStore,
	publisher model.EventPublisher,
	metrics Metrics,
	logger *logger.Logger,
) *TokenService {
	return &TokenService{
		codec:     codec,
		store:     store,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		locks:     newPrincipalLocks(),
		now:       time.Now,
	}
}

// Issue mints a fresh pair for principalID and replaces whatever refresh
// token was stored for it. Called after the principal has been authenticated.
func (s *TokenService) Issue(ctx context.Context, principalID uuid.UUID) (model.TokenPair, error) {
	s.logger.Debug("Token service: issuing tokens", "principal_id", principalID)

	unlock := s.locks.lock(principalID)
	defer unlock()

	if err := s.store.DeleteByPrincipal(ctx, principalID); err != nil {
		s.logger.Error("Token service: failed to clear previous token",
			"principal_id", principalID,
			"error", err.Error())
		return model.TokenPair{}, fmt.Errorf("failed to clear previous token: %w", err)
	}

	pair, record, err := s.mintPair(principalID)
	if err != nil {
		return model.TokenPair{}, err
	}

	if _, err := s.store.Save(ctx, record); err != nil {
		s.logger.Error("Token service: failed to save refresh token",
			"principal_id", principalID,
			"error", err.Error())
		return model.TokenPair{}, fmt.Errorf("failed to save refresh token: %w", err)
	}

	s.metrics.TokenIssued()
	s.publish(ctx, model.EventTokenIssued, principalID, record.ID(), "")

	s.logger.Info("Token service: tokens issued",
		"principal_id", principalID,
		"token_id", record.ID())

	return pair, nil
}

// Rotate exchanges the live refresh token for a new pair. Every rejection is
// an *model.InvalidTokenError; storage failures are returned wrapped.
func (s *TokenService) Rotate(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	if !s.codec.Verify(refreshToken) {
		return model.TokenPair{}, s.reject(ctx, uuid.Nil, model.ReasonMalformed)
	}
	if !s.codec.VerifyKind(refreshToken, model.TokenKindRefresh) {
		return model.TokenPair{}, s.reject(ctx, uuid.Nil, model.ReasonWrongKind)
	}

	principalID, err := s.codec.SubjectOf(refreshToken)
	if err != nil || principalID == uuid.Nil {
		return model.TokenPair{}, s.reject(ctx, uuid.Nil, model.ReasonMalformed)
	}

	unlock := s.locks.lock(principalID)
	defer unlock()

	stored, ok, err := s.store.FindByPrincipal(ctx, principalID)
	if err != nil {
		s.logger.Error("Token service: failed to load refresh token",
			"principal_id", principalID,
			"error", err.Error())
		return model.TokenPair{}, fmt.Errorf("failed to load refresh token: %w", err)
	}
	if !ok {
		return model.TokenPair{}, s.reject(ctx, principalID, model.ReasonUnknownPrincipal)
	}

	switch verdict := stored.ValidateRotation(refreshToken, s.now()); verdict {
	case model.RotationTheftDetected:
		return model.TokenPair{}, s.revokeOnFailure(ctx, stored, model.EventTokenReuseDetected, model.ReasonReuseDetected)
	case model.RotationExpired:
		return model.TokenPair{}, s.revokeOnFailure(ctx, stored, model.EventTokenExpired, model.ReasonExpired)
	case model.RotationValid:
	default:
		return model.TokenPair{}, fmt.Errorf("unexpected rotation verdict %s", verdict)
	}

	pair, next, err := s.mintPair(principalID)
	if err != nil {
		return model.TokenPair{}, err
	}

	swapped, err := s.store.ReplaceIfCurrent(ctx, refreshToken, next)
	if err != nil {
		s.logger.Error("Token service: failed to replace refresh token",
			"principal_id", principalID,
			"error", err.Error())
		return model.TokenPair{}, fmt.Errorf("failed to replace refresh token: %w", err)
	}
	if !swapped {
		return model.TokenPair{}, s.reject(ctx, principalID, model.ReasonRotationConflict)
	}

	s.metrics.TokenRotated()
	s.publish(ctx, model.EventTokenRotated, principalID, next.ID(), "")

	s.logger.Info("Token service: tokens rotated",
		"principal_id", principalID,
		"previous_token_id", stored.ID(),
		"token_id", next.ID())

	return pair, nil
}

// Revoke deletes the principal's refresh token. Succeeds when nothing is stored.
func (s *TokenService) Revoke(ctx context.Context, principalID uuid.UUID) error {
	unlock := s.locks.lock(principalID)
	defer unlock()

	if err := s.store.DeleteByPrincipal(ctx, principalID); err != nil {
		s.logger.Error("Token service: failed to revoke refresh token",
			"principal_id", principalID,
			"error", err.Error())
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	s.metrics.TokenRevoked()
	s.publish(ctx, model.EventTokenRevoked, principalID, uuid.Nil, "")

	s.logger.Info("Token service: refresh token revoked", "principal_id", principalID)

	return nil
}

// PrincipalFromAccessToken resolves the principal of a valid access token.
func (s *TokenService) PrincipalFromAccessToken(_ context.Context, token string) (uuid.UUID, error) {
	if !s.codec.VerifyKind(token, model.TokenKindAccess) {
		return uuid.Nil, model.NewInvalidToken(model.ReasonMalformed)
	}

	principalID, err := s.codec.SubjectOf(token)
	if err != nil || principalID == uuid.Nil {
		return uuid.Nil, model.NewInvalidToken(model.ReasonMalformed)
	}
	return principalID, nil
}

func (s *TokenService) mintPair(principalID uuid.UUID) (model.TokenPair, model.AuthToken, error) {
	access, err := s.codec.MintAccessToken(principalID)
	if err != nil {
		return model.TokenPair{}, model.AuthToken{}, fmt.Errorf("failed to mint access token: %w", err)
	}
	refresh, err := s.codec.MintRefreshToken(principalID)
	if err != nil {
		return model.TokenPair{}, model.AuthToken{}, fmt.Errorf("failed to mint refresh token: %w", err)
	}

	accessLeft, err := s.codec.SecondsUntilExpiry(access)
	if err != nil {
		return model.TokenPair{}, model.AuthToken{}, fmt.Errorf("failed to read access token expiry: %w", err)
	}
	refreshLeft, err := s.codec.SecondsUntilExpiry(refresh)
	if err != nil {
		return model.TokenPair{}, model.AuthToken{}, fmt.Errorf("failed to read refresh token expiry: %w", err)
	}

	pair := model.TokenPair{
		AccessToken:           access,
		RefreshToken:          refresh,
		AccessTokenExpiresIn:  accessLeft,
		RefreshTokenExpiresIn: refreshLeft,
	}
	return pair, model.IssueAuthToken(principalID, refresh, refreshLeft, s.now()), nil
}

// revokeOnFailure drops the stored record after a failed rotation so the
// principal has to authenticate again.
func (s *TokenService) revokeOnFailure(
	ctx context.Context,
	stored model.AuthToken,
	eventType model.EventType,
	reason model.InvalidTokenReason,
) error {
	principalID := stored.PrincipalID()

	if err := s.store.DeleteByPrincipal(ctx, principalID); err != nil {
		s.logger.Error("Token service: failed to delete refresh token after rejected rotation",
			"principal_id", principalID,
			"reason", string(reason),
			"error", err.Error())
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}

	if reason == model.ReasonReuseDetected {
		s.logger.Warn("Token service: refresh token reuse detected, session revoked",
			"principal_id", principalID,
			"token_id", stored.ID())
	}
	s.publish(ctx, eventType, principalID, stored.ID(), string(reason))

	return s.reject(ctx, principalID, reason)
}

func (s *TokenService) reject(_ context.Context, principalID uuid.UUID, reason model.InvalidTokenReason) error {
	s.metrics.RotationFailed(reason)
	s.logger.Info("Token service: rotation rejected",
		"principal_id", principalID,
		"reason", string(reason))
	return model.NewInvalidToken(reason)
}

func (s *TokenService) publish(ctx context.Context, eventType model.EventType, principalID, tokenID uuid.UUID, reason string) {
	s.publisher.Publish(ctx, model.TokenEvent{
		ID:          uuid.New(),
		Type:        eventType,
		PrincipalID: principalID,
		TokenID:     tokenID,
		Reason:      reason,
		OccurredAt:  s.now().UTC(),
	})
}
