package verifier

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-postlogin-service/internal/apperror"
	"github.com/jrsteele09/go-postlogin-service/internal/config"
)

// ValidateSessionPath is the authority's session-validation endpoint,
// relative to the configured base URL.
const ValidateSessionPath = "/corporate/relationship-management/marketing/v1/customer/validate-session"

const defaultRequestTimeout = 10 * time.Second

// validateSessionResponse is the authority's response body. IsExpire
// defaults to expired when the field is absent.
type validateSessionResponse struct {
	Status string `json:"status"`
	Data   *struct {
		IsExpire     *bool  `json:"isExpire"`
		UserID       string `json:"userId"`
		SessionToken string `json:"sessionToken"`
		ValidatedAt  string `json:"validatedAt"`
	} `json:"data"`
	Message string `json:"message"`
}

// SMEClient verifies SME credentials against the external validate-session
// endpoint. Other business units have no verification path and fail fast.
type SMEClient struct {
	config     config.VerifierConfig
	httpClient *http.Client
	logger     zerolog.Logger
}

var _ Verifier = (*SMEClient)(nil)

type SMEClientOption func(*SMEClient)

// WithHTTPClient overrides the outbound HTTP client (primarily for testing)
func WithHTTPClient(client *http.Client) SMEClientOption {
	return func(c *SMEClient) {
		c.httpClient = client
	}
}

func NewSMEClient(cfg config.VerifierConfig, logger zerolog.Logger, options ...SMEClientOption) *SMEClient {
	client := &SMEClient{
		config:     cfg,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		logger:     logger,
	}
	for _, opt := range options {
		opt(client)
	}
	return client
}

// Verify dispatches on business unit. Only SME is supported; anything else
// is rejected rather than silently defaulted.
func (c *SMEClient) Verify(ctx context.Context, bu, tokenKey, userID, requestID string) (bool, error) {
	if bu != "SME" {
		return false, apperror.New(apperror.KindClient, "Missing BU")
	}
	if userID == "" {
		return false, apperror.New(apperror.KindClient, "Missing userId")
	}
	return c.verifySMEToken(ctx, tokenKey, userID, requestID)
}

func (c *SMEClient) verifySMEToken(ctx context.Context, tokenKey, userID, requestID string) (bool, error) {
	baseURL := c.config.GetSMEVerifyBaseURL()
	if baseURL == "" {
		return false, apperror.New(apperror.KindConfiguration, "SME_VERIFY_BASE_URL is not defined")
	}
	apiKey := c.config.GetSMEVerifyTokenKey()
	if apiKey == "" {
		return false, apperror.New(apperror.KindConfiguration, "SME_VERIFY_TOKEN_KEY is not defined")
	}

	url := strings.TrimRight(baseURL, "/") + ValidateSessionPath

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader([]byte("{}")))
	if err != nil {
		c.logger.Error().Err(err).Msg("error building verify request")
		return false, nil
	}

	req.Header.Set("Apikey", apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-request-id", fallbackRequestID(requestID, userID))
	req.Header.Set("x-session-token", tokenKey)
	req.Header.Set("x-user-id", userID)

	c.logger.Info().
		Str("url", url).
		Str("x-request-id", req.Header.Get("x-request-id")).
		Str("x-user-id", userID).
		Msg("verifying tokenKey")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Msg("error verify tokenKey")
		return false, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Info().Int("status", resp.StatusCode).Msg("error verify tokenKey")
		return false, nil
	}

	var body validateSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.logger.Error().Err(err).Msg("error decoding verify response")
		return false, nil
	}

	// Absent isExpire counts as expired.
	isExpired := true
	if body.Data != nil && body.Data.IsExpire != nil {
		isExpired = *body.Data.IsExpire
	}

	c.logger.Info().Bool("isExpire", isExpired).Msg("verify tokenKey result")
	return !isExpired, nil
}

// fallbackRequestID picks one correlation id policy for every flow: the
// supplied id, then the user id, then a fresh uuid.
func fallbackRequestID(requestID, userID string) string {
	if requestID != "" {
		return requestID
	}
	if userID != "" {
		return userID
	}
	return uuid.New().String()
}
