package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nyxlicense/backend/internal/config"
	"github.com/nyxlicense/backend/internal/middleware"
	"github.com/nyxlicense/backend/internal/models"
	"github.com/nyxlicense/backend/internal/store"
	"github.com/nyxlicense/backend/internal/tokens"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory store.Store used by handler tests. failWith
// forces every call to return that error, standing in for a broken
// database.
type fakeStore struct {
	accounts map[string]*models.Account
	trials   map[string]*models.TrialGrant
	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts: make(map[string]*models.Account),
		trials:   make(map[string]*models.TrialGrant),
	}
}

func (f *fakeStore) FindAccountByUsername(username string) (*models.Account, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	account, ok := f.accounts[username]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *account
	return &copied, nil
}

func (f *fakeStore) ListAccounts() ([]models.Account, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	names := make([]string, 0, len(f.accounts))
	for name := range f.accounts {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]models.Account, 0, len(names))
	for _, name := range names {
		out = append(out, *f.accounts[name])
	}
	return out, nil
}

func (f *fakeStore) InsertAccount(account *models.Account) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.accounts[account.Username]; ok {
		return store.ErrDuplicate
	}
	copied := *account
	f.accounts[account.Username] = &copied
	return nil
}

func (f *fakeStore) UpdateAccountExpiry(username string, expiresAt time.Time) error {
	if f.failWith != nil {
		return f.failWith
	}
	account, ok := f.accounts[username]
	if !ok {
		return store.ErrNotFound
	}
	account.ExpiresAt = &expiresAt
	return nil
}

func (f *fakeStore) DeleteAccount(username string) error {
	if f.failWith != nil {
		return f.failWith
	}
	delete(f.accounts, username)
	return nil
}

func (f *fakeStore) FindTrialByHwid(hwid string) (*models.TrialGrant, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	grant, ok := f.trials[hwid]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *grant
	return &copied, nil
}

func (f *fakeStore) ListTrials() ([]models.TrialGrant, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]models.TrialGrant, 0, len(f.trials))
	for _, grant := range f.trials {
		out = append(out, *grant)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpiresAt.After(out[j].ExpiresAt) })
	return out, nil
}

func (f *fakeStore) InsertTrial(grant *models.TrialGrant) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.trials[grant.Hwid]; ok {
		return store.ErrDuplicate
	}
	copied := *grant
	f.trials[grant.Hwid] = &copied
	return nil
}

// newTestApp wires the routes the way cmd/api does.
func newTestApp(cfg *config.Config, tokenStore tokens.Store, st store.Store) *fiber.App {
	app := fiber.New()

	authenticateHandler := NewAuthenticateHandler(st)
	trialHandler := NewTrialHandler(st, cfg.TrialSeconds)
	adminHandler := NewAdminHandler(cfg, tokenStore, st)

	api := app.Group("/api")
	api.Post("/authenticate", authenticateHandler.Authenticate)
	api.Post("/trial/start", trialHandler.Start)
	api.Post("/admin/login", adminHandler.Login)

	admin := api.Group("/admin", middleware.AdminRequired(tokenStore))
	admin.Get("/accounts", adminHandler.ListAccounts)
	admin.Post("/accounts", adminHandler.CreateAccount)
	admin.Put("/accounts", adminHandler.ExtendAccount)
	admin.Delete("/accounts", adminHandler.DeleteAccount)
	admin.Get("/trials", adminHandler.ListTrials)

	return app
}

func testConfig() *config.Config {
	return &config.Config{
		AdminUser:     "root",
		AdminPass:     "hunter2",
		TokenTTLHours: 8,
		TrialSeconds:  300,
	}
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func formRequest(t *testing.T, target, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func dateptr(t time.Time) *time.Time {
	return &t
}

var errStoreDown = errors.New("connection refused")
