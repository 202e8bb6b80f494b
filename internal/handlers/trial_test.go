package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/nyxlicense/backend/internal/models"
	"github.com/nyxlicense/backend/internal/tokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrialStartThenRepeatRejected(t *testing.T) {
	st := newFakeStore()
	app := newTestApp(testConfig(), tokens.NewMemoryStore(0), st)

	first, err := app.Test(jsonRequest(t, http.MethodPost, "/api/trial/start", map[string]string{
		"hwid": "machine-guid-1",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, first.StatusCode)

	body := decodeBody(t, first)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(300), body["trial_seconds"])

	expiresAt, err := time.Parse(time.RFC3339, body["expires_at"].(string))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC().Add(300*time.Second), expiresAt, 5*time.Second)

	// Second request for the same hwid is rejected, never refreshed.
	second, err := app.Test(jsonRequest(t, http.MethodPost, "/api/trial/start", map[string]string{
		"hwid": "machine-guid-1",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
	assert.Equal(t, CodeTrialUnavailable, decodeBody(t, second)["code"])
}

func TestTrialStartRejectedEvenAfterWindowLapsed(t *testing.T) {
	st := newFakeStore()
	st.trials["machine-guid-1"] = &models.TrialGrant{
		Hwid:      "machine-guid-1",
		ExpiresAt: time.Now().UTC().Add(-24 * time.Hour),
	}
	app := newTestApp(testConfig(), tokens.NewMemoryStore(0), st)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/trial/start", map[string]string{
		"hwid": "machine-guid-1",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestTrialStartMissingHwid(t *testing.T) {
	app := newTestApp(testConfig(), tokens.NewMemoryStore(0), newFakeStore())

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/trial/start", map[string]string{}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, CodeTrialUnavailable, decodeBody(t, resp)["code"])
}

func TestTrialStartInsertRaceReportsUnavailable(t *testing.T) {
	// Simulates losing the check-then-insert race: the lookup misses but
	// the insert hits the unique constraint.
	st := &racingStore{fakeStore: newFakeStore()}
	app := newTestApp(testConfig(), tokens.NewMemoryStore(0), st)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/trial/start", map[string]string{
		"hwid": "machine-guid-1",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, CodeTrialUnavailable, decodeBody(t, resp)["code"])
}

type racingStore struct {
	*fakeStore
}

func (r *racingStore) FindTrialByHwid(hwid string) (*models.TrialGrant, error) {
	// The concurrent winner inserts between our check and our insert.
	grant, err := r.fakeStore.FindTrialByHwid(hwid)
	r.fakeStore.trials[hwid] = &models.TrialGrant{Hwid: hwid, ExpiresAt: time.Now().UTC()}
	return grant, err
}
