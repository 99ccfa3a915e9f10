package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miriamsimone/video-generation-pipeline/pkg/adapters/memory"
	"github.com/miriamsimone/video-generation-pipeline/pkg/domain"
	"github.com/miriamsimone/video-generation-pipeline/pkg/ports"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, memory.Seed(store, []string{
		"neutral_to_happy_soft__center",
		"neutral_to_blink__center",
	}, 3))
	srv := httptest.NewServer(NewHandler(store))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Contract(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient(srv.URL)

	ports.RunSequenceStoreContract(t, client, "neutral_to_happy_soft__center")
}

func TestHandler_TimelineNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/timeline/no_such_expr_to_nothing__center")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_FrameContentType(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/frames/neutral_to_blink__center/000.png")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
}

func TestClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.GetSequence(context.Background(), "neutral_to_blink__center")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSequenceNotFound)
}

func TestClient_MalformedManifest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.GetSequence(context.Background(), "neutral_to_blink__center")
	assert.ErrorIs(t, err, domain.ErrMalformedSequence)
}
