// Package postlogin composes the session store, token issuer, channel
// lookup, and external verifier into the two postlogin protocols: session
// initialization and token renewal. All lower-layer failures are
// reclassified here before crossing the service boundary.
package postlogin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-postlogin-service/channels"
	"github.com/jrsteele09/go-postlogin-service/internal/apperror"
	"github.com/jrsteele09/go-postlogin-service/sessions"
	"github.com/jrsteele09/go-postlogin-service/token"
	"github.com/jrsteele09/go-postlogin-service/verifier"
)

// Repos holds all repository dependencies for the Service
type Repos struct {
	Sessions sessions.Repo // Durable session records
	Channels channels.Repo // Channel id -> business unit lookup
}

// InitSessionParams carries the inputs of a session initialization.
type InitSessionParams struct {
	CIF               string
	BasicCustomerInfo map[string]any
	TokenKey          string
	Payload           map[string]any // Must contain a non-empty channelId
	RequestIDHeader   string         // Optional correlation id
}

// TokenResponse is the result of both protocols.
type TokenResponse struct {
	Token        string
	RefreshToken string
	Message      string
}

// Service orchestrates postlogin session initialization and token renewal.
type Service struct {
	repos      Repos
	issuer     *token.Issuer
	verifier   verifier.Verifier
	sessionTTL time.Duration
	nowFunc    func() time.Time
	logger     zerolog.Logger
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowFunc sets the now time function (primarily for testing)
func WithNowFunc(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowFunc = now
	}
}

// NewService initializes a new Service with required dependencies.
func NewService(repos Repos, issuer *token.Issuer, tokenVerifier verifier.Verifier, sessionTTL time.Duration, logger zerolog.Logger, options ...ServiceOption) (*Service, error) {
	if repos.Sessions == nil {
		return nil, errors.New("[NewService] Sessions repo is required")
	}
	if repos.Channels == nil {
		return nil, errors.New("[NewService] Channels repo is required")
	}
	if issuer == nil {
		return nil, errors.New("[NewService] issuer is required")
	}
	if tokenVerifier == nil {
		return nil, errors.New("[NewService] verifier is required")
	}

	service := &Service{
		repos:      repos,
		issuer:     issuer,
		verifier:   tokenVerifier,
		sessionTTL: sessionTTL,
		nowFunc:    time.Now,
		logger:     logger,
	}

	for _, opt := range options {
		opt(service)
	}

	return service, nil
}

// InitSession creates a new session for an externally authenticated user
// and mints its first token pair.
func (s *Service) InitSession(ctx context.Context, params InitSessionParams) (*TokenResponse, error) {
	channelID, _ := params.Payload["channelId"].(string)
	if channelID == "" {
		return nil, apperror.New(apperror.KindClient, "Invalid channel id")
	}

	channel, err := s.repos.Channels.Resolve(channelID)
	if err != nil {
		return nil, apperror.Newf(apperror.KindNotFound, "Cannot find channel with id %s", channelID)
	}
	if channel.PostLoginBU == "" {
		return nil, apperror.Newf(apperror.KindNotFound, "Missing BU in channel with id %s", channelID)
	}

	bu := strings.ToUpper(channel.PostLoginBU)
	chatUsername := sessions.ChatUsername(bu, params.CIF)

	// The caller did nothing wrong if the store is down; fail before any
	// token is minted.
	if err := s.repos.Sessions.Ping(ctx); err != nil {
		s.logger.Error().Err(err).Msg("session store not available")
		return nil, apperror.Wrap(err, apperror.KindInternal, "session store unreachable")
	}

	now := s.nowMillis()
	record := &sessions.SessionData{
		CIF:               params.CIF,
		ChatUsername:      chatUsername,
		BasicCustomerInfo: params.BasicCustomerInfo,
		TokenKey:          params.TokenKey,
		BU:                bu,
		CreatedAt:         now,
		UpdatedAt:         now,
		RequestIDHeader:   params.RequestIDHeader,
		Payload:           params.Payload,
	}

	accessToken, refreshToken, err := s.mintPair(record)
	if err != nil {
		s.logger.Error().Err(err).Msg("error in InitSession")
		return nil, apperror.Wrap(err, apperror.KindInternal, "minting token pair")
	}

	if err := s.repos.Sessions.Put(ctx, record, s.sessionTTL); err != nil {
		s.logger.Error().Err(err).Msg("error in InitSession")
		return nil, apperror.Wrap(err, apperror.KindInternal, "persisting session")
	}

	return &TokenResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		Message:      fmt.Sprintf("%s session initialized successfully", bu),
	}, nil
}

// RenewToken re-verifies the underlying credential of a session and, on
// success, re-mints the token pair and refreshes the session TTL. The
// stored record is never touched before verification succeeds.
func (s *Service) RenewToken(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	if refreshToken == "" {
		return nil, apperror.New(apperror.KindClient, "Refresh token is required")
	}

	// The decode failure reason is deliberately not distinguished to the
	// caller.
	claims, err := s.issuer.Decode(refreshToken)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.KindClient, "Invalid refresh token")
	}
	if claims.ChatUsername == "" || claims.BU == "" {
		return nil, apperror.New(apperror.KindClient, "Invalid refresh token")
	}

	record, err := s.repos.Sessions.Get(ctx, claims.ChatUsername)
	switch {
	case errors.Is(err, sessions.ErrNotFound):
		return nil, apperror.New(apperror.KindNotFound, "Session not found")
	case errors.Is(err, sessions.ErrCorruptRecord):
		s.logger.Error().Err(err).Str("chatUsername", claims.ChatUsername).Msg("stored session undecodable")
		return nil, apperror.Wrap(err, apperror.KindInternal, "Invalid session data")
	case err != nil:
		s.logger.Error().Err(err).Msg("error loading session")
		return nil, apperror.Wrap(err, apperror.KindInternal, "loading session")
	}

	if record.TokenKey == "" {
		return nil, apperror.New(apperror.KindClient, "Invalid tokenKey")
	}

	valid, err := s.verifier.Verify(ctx, claims.BU, record.TokenKey, record.CIF, record.RequestIDHeader)
	if err != nil {
		// Verifier errors carry their own classification (unknown BU,
		// missing configuration).
		return nil, err
	}
	if !valid {
		return nil, apperror.Newf(apperror.KindAuth, "Verify %s token failed", claims.BU)
	}

	s.logger.Debug().
		Str("redisKey", sessions.Key(claims.ChatUsername)).
		Str("bu", claims.BU).
		Msg("renewing session token")

	record.UpdatedAt = s.nowMillis()

	accessToken, newRefreshToken, err := s.mintPair(record)
	if err != nil {
		s.logger.Error().Err(err).Msg("error in RenewToken")
		return nil, apperror.Wrap(err, apperror.KindInternal, "minting token pair")
	}

	if err := s.repos.Sessions.Put(ctx, record, s.sessionTTL); err != nil {
		s.logger.Error().Err(err).Msg("error in RenewToken")
		return nil, apperror.Wrap(err, apperror.KindInternal, "persisting session")
	}

	return &TokenResponse{
		Token:        accessToken,
		RefreshToken: newRefreshToken,
		Message:      fmt.Sprintf("%s token renewed successfully", claims.BU),
	}, nil
}

// HealthStatus is the fixed liveness payload.
func (s *Service) HealthStatus() map[string]string {
	return map[string]string{
		"status":  "healthy",
		"service": "postlogin",
	}
}

func (s *Service) mintPair(record *sessions.SessionData) (accessToken, refreshToken string, err error) {
	return s.issuer.MintPair(token.Claims{
		ChatUsername: record.ChatUsername,
		BU:           record.BU,
		CIF:          record.CIF,
		TokenKey:     record.TokenKey,
	})
}

func (s *Service) nowMillis() int64 {
	return s.nowFunc().UnixMilli()
}
