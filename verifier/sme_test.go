package verifier_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-postlogin-service/internal/apperror"
	"github.com/jrsteele09/go-postlogin-service/verifier"
)

type fakeVerifierConfig struct {
	baseURL  string
	tokenKey string
}

func (c fakeVerifierConfig) GetSMEVerifyBaseURL() string  { return c.baseURL }
func (c fakeVerifierConfig) GetSMEVerifyTokenKey() string { return c.tokenKey }

func newTestClient(baseURL string) *verifier.SMEClient {
	return verifier.NewSMEClient(fakeVerifierConfig{baseURL: baseURL, tokenKey: "api-key-1"}, zerolog.Nop())
}

func TestSMEClient_Verify_Valid(t *testing.T) {
	var gotHeaders http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, verifier.ValidateSessionPath, r.URL.Path)
		gotHeaders = r.Header.Clone()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","data":{"isExpire":false,"userId":"user-1"},"message":"ok"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	valid, err := client.Verify(context.Background(), "SME", "token-key-1", "user-1", "req-1")
	require.NoError(t, err)
	require.True(t, valid)

	require.Equal(t, "api-key-1", gotHeaders.Get("Apikey"))
	require.Equal(t, "req-1", gotHeaders.Get("x-request-id"))
	require.Equal(t, "token-key-1", gotHeaders.Get("x-session-token"))
	require.Equal(t, "user-1", gotHeaders.Get("x-user-id"))
}

func TestSMEClient_Verify_Expired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","data":{"isExpire":true},"message":"ok"}`))
	}))
	defer srv.Close()

	valid, err := newTestClient(srv.URL).Verify(context.Background(), "SME", "token-key-1", "user-1", "")
	require.NoError(t, err)
	require.False(t, valid)
}

func TestSMEClient_Verify_MissingIsExpire(t *testing.T) {
	// Absent isExpire counts as expired.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","data":{},"message":"ok"}`))
	}))
	defer srv.Close()

	valid, err := newTestClient(srv.URL).Verify(context.Background(), "SME", "token-key-1", "user-1", "")
	require.NoError(t, err)
	require.False(t, valid)
}

func TestSMEClient_Verify_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	valid, err := newTestClient(srv.URL).Verify(context.Background(), "SME", "token-key-1", "user-1", "")
	require.NoError(t, err)
	require.False(t, valid)
}

func TestSMEClient_Verify_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Connection refused from here on.

	valid, err := newTestClient(srv.URL).Verify(context.Background(), "SME", "token-key-1", "user-1", "")
	require.NoError(t, err)
	require.False(t, valid)
}

func TestSMEClient_Verify_RequestIDFallback(t *testing.T) {
	var gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("x-request-id")
		_, _ = w.Write([]byte(`{"data":{"isExpire":false}}`))
	}))
	defer srv.Close()

	// No correlation id supplied: the user id is used.
	_, err := newTestClient(srv.URL).Verify(context.Background(), "SME", "token-key-1", "user-1", "")
	require.NoError(t, err)
	require.Equal(t, "user-1", gotRequestID)
}

func TestSMEClient_Verify_UnsupportedBU(t *testing.T) {
	client := newTestClient("http://localhost:1")

	_, err := client.Verify(context.Background(), "RETAIL", "token-key-1", "user-1", "")
	require.Error(t, err)
	require.Equal(t, apperror.KindClient, apperror.KindOf(err))
	require.Equal(t, "Missing BU", apperror.MessageOf(err))
}

func TestSMEClient_Verify_MissingUserID(t *testing.T) {
	client := newTestClient("http://localhost:1")

	_, err := client.Verify(context.Background(), "SME", "token-key-1", "", "")
	require.Error(t, err)
	require.Equal(t, apperror.KindClient, apperror.KindOf(err))
	require.Equal(t, "Missing userId", apperror.MessageOf(err))
}

func TestSMEClient_Verify_MissingConfiguration(t *testing.T) {
	t.Run("missing base URL", func(t *testing.T) {
		client := verifier.NewSMEClient(fakeVerifierConfig{tokenKey: "api-key-1"}, zerolog.Nop())
		_, err := client.Verify(context.Background(), "SME", "token-key-1", "user-1", "")
		require.Error(t, err)
		require.Equal(t, apperror.KindConfiguration, apperror.KindOf(err))
		require.Equal(t, "SME_VERIFY_BASE_URL is not defined", apperror.MessageOf(err))
	})

	t.Run("missing api key", func(t *testing.T) {
		client := verifier.NewSMEClient(fakeVerifierConfig{baseURL: "http://localhost:1"}, zerolog.Nop())
		_, err := client.Verify(context.Background(), "SME", "token-key-1", "user-1", "")
		require.Error(t, err)
		require.Equal(t, apperror.KindConfiguration, apperror.KindOf(err))
		require.Equal(t, "SME_VERIFY_TOKEN_KEY is not defined", apperror.MessageOf(err))
	})
}
