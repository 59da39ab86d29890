package server

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xavierhuang/ScheduleShare/internal/database"
	"github.com/Xavierhuang/ScheduleShare/internal/extractor"
	"github.com/Xavierhuang/ScheduleShare/internal/gcal"
	"github.com/Xavierhuang/ScheduleShare/internal/geo"
	"github.com/Xavierhuang/ScheduleShare/internal/planner"
)

const testCredentialsJSON = `{
	"installed": {
		"client_id": "test-client-id",
		"client_secret": "test-secret",
		"redirect_uris": ["http://localhost"],
		"auth_uri": "https://accounts.google.com/o/oauth2/auth",
		"token_uri": "https://oauth2.googleapis.com/token"
	}
}`

func newTestServerWithGCal(t *testing.T) *Server {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	dir := t.TempDir()
	credFile := filepath.Join(dir, "credentials.json")
	require.NoError(t, os.WriteFile(credFile, []byte(testCredentialsJSON), 0600))

	gcalClient, err := gcal.NewClient(credFile, filepath.Join(dir, "token.json"))
	require.NoError(t, err)

	resolver := geo.NewStaticResolver()
	return New(Config{
		DB:         database.NewTestDB(t),
		Extractor:  extractor.New(nil, loc, 0),
		Planner:    planner.New(nil, resolver, loc, 0),
		GCalClient: gcalClient,
		Location:   loc,
		Port:       0,
	})
}

func TestAuthURLEndpoint(t *testing.T) {
	t.Run("returns the consent URL", func(t *testing.T) {
		srv := newTestServerWithGCal(t)

		rec := doRequest(t, srv, http.MethodGet, "/api/auth/google/url", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody[map[string]string](t, rec)
		assert.Contains(t, body["auth_url"], "test-client-id")
		assert.Contains(t, body["auth_url"], "accounts.google.com")
	})

	t.Run("without calendar configured is 503", func(t *testing.T) {
		srv := newTestServer(t, nil)

		rec := doRequest(t, srv, http.MethodGet, "/api/auth/google/url", nil)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestAuthCallbackEndpoint(t *testing.T) {
	t.Run("missing code is rejected", func(t *testing.T) {
		srv := newTestServerWithGCal(t)

		rec := doRequest(t, srv, http.MethodPost, "/api/auth/google/callback", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("without calendar configured is 503", func(t *testing.T) {
		srv := newTestServer(t, nil)

		rec := doRequest(t, srv, http.MethodPost, "/api/auth/google/callback",
			map[string]string{"code": "abc"})
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
