package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/landing/internal/contact"
	"github.com/balkashynov/landing/internal/site"
	"github.com/balkashynov/landing/internal/theme"
)

type memStore map[string]string

func (m memStore) Get(key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m memStore) Set(key, value string) error {
	m[key] = value
	return nil
}

func newTestServer(t *testing.T, store memStore, relayBody string) (*Server, *int32) {
	t.Helper()

	var requests int32
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		_, _ = w.Write([]byte(relayBody))
	}))
	t.Cleanup(relay.Close)

	pref := theme.Load(store, nil)
	factory := func(n contact.Notifier) *contact.Flow {
		return contact.NewFlow(contact.Config{Endpoint: relay.URL, AccessKey: "k"}, n,
			contact.WithHTTPClient(relay.Client()))
	}

	return NewServer(pref, factory, nil), &requests
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIndex_RendersStoredTheme(t *testing.T) {
	s, _ := newTestServer(t, memStore{theme.StorageKey: "dark"}, `{"success":true}`)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `data-theme="dark"`)
	assert.Contains(t, body, site.ContactTitle)
	assert.Contains(t, body, "Light mode")
	assert.Contains(t, body, theme.DarkPalette.Background)
}

func TestIndex_DefaultsToLight(t *testing.T) {
	s, _ := newTestServer(t, memStore{}, `{"success":true}`)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Contains(t, rec.Body.String(), `data-theme="light"`)
}

func TestThemeToggle_PersistsAndRedirects(t *testing.T) {
	store := memStore{}
	s, _ := newTestServer(t, store, `{"success":true}`)

	rec := postForm(t, s.Handler(), "/theme", url.Values{})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "dark", store[theme.StorageKey])
}

func TestContact_SuccessClearsForm(t *testing.T) {
	s, requests := newTestServer(t, memStore{}, `{"success":true}`)

	rec := postForm(t, s.Handler(), "/contact", url.Values{
		"name":    {"Ada"},
		"email":   {"ada@example.com"},
		"message": {"Hello there"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, atomic.LoadInt32(requests))
	body := rec.Body.String()
	assert.Contains(t, body, "toast-success")
	assert.Contains(t, body, contact.DefaultSuccessMessage)
	assert.NotContains(t, body, "Hello there")
	assert.NotContains(t, body, `value="Ada"`)
}

func TestContact_RejectionKeepsForm(t *testing.T) {
	s, _ := newTestServer(t, memStore{}, `{"success":false,"message":"Invalid key"}`)

	rec := postForm(t, s.Handler(), "/contact", url.Values{
		"name":    {"Ada"},
		"email":   {"ada@example.com"},
		"message": {"Hello there"},
	})

	body := rec.Body.String()
	assert.Contains(t, body, "toast-error")
	assert.Contains(t, body, "Invalid key")
	assert.Contains(t, body, `value="Ada"`)
	assert.Contains(t, body, "Hello there")
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t, memStore{}, `{"success":true}`)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
