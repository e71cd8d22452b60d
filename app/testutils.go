package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sushihentaime/folio/internal/adminservice"
	"github.com/sushihentaime/folio/internal/analyticsservice"
	"github.com/sushihentaime/folio/internal/newsletterservice"
	"github.com/sushihentaime/folio/internal/postservice"
)

const testAdminSecret = "correct horse battery staple"

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

// convertKitFake answers subscribe calls with a canned status and body.
type convertKitFake struct {
	mu     sync.Mutex
	status int
	body   string
	emails []string
}

func (f *convertKitFake) respond(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status, f.body = status, body
}

func (f *convertKitFake) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.emails = append(f.emails, req.Email)
	w.WriteHeader(f.status)
	w.Write([]byte(f.body))
}

type testApp struct {
	*application
	store      *postservice.MemoryStore
	events     *analyticsservice.RecordingTracker
	convertKit *convertKitFake
}

// newTestApplication wires the application to in-process fakes: the sample posts in a
// MemoryStore, a recording tracker and a ConvertKit stand-in. No broker is attached.
func newTestApplication(t *testing.T) *testApp {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &Config{
		Environment:        "testing",
		Version:            "1.0.0",
		Store:              "memory",
		TrustedOrigins:     []string{"http://localhost:3000"},
		SubscribeRateLimit: 1000,
		SubscribeRateBurst: 1000,
	}

	gate, err := adminservice.NewGate(testAdminSecret, adminservice.DefaultSessionTTL)
	require.NoError(t, err)

	ck := &convertKitFake{status: http.StatusOK, body: `{"subscription":{"id":1}}`}
	ckServer := httptest.NewServer(ck)
	t.Cleanup(ckServer.Close)

	store := postservice.NewMemoryStore(postservice.SamplePosts()...)
	tracker := &analyticsservice.RecordingTracker{}

	app := &application{
		config:      cfg,
		logger:      logger,
		postService: postservice.NewPostService(store),
		gate:        gate,
		newsletter:  newsletterservice.NewNewsletterService(ckServer.URL, "test-key", "8313706", nil, logger),
		tracker:     tracker,
	}

	return &testApp{application: app, store: store, events: tracker, convertKit: ck}
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, envelope) {
	t.Helper()
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var env envelope
	err = json.Unmarshal(responseBody, &env)
	require.NoError(t, err, "body: %s", responseBody)

	return res.StatusCode, res.Header, env
}

func (ts *testServer) do(t *testing.T, method, path, token string, payload any) (int, http.Header, envelope) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		var raw []byte
		switch p := payload.(type) {
		case string:
			raw = []byte(p)
		default:
			var err error
			raw, err = json.Marshal(payload)
			require.NoError(t, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	require.NoError(t, err)

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.Client().Do(req)
	require.NoError(t, err)

	return readResponse(t, res)
}

func (ts *testServer) get(t *testing.T, path, token string) (int, http.Header, envelope) {
	return ts.do(t, http.MethodGet, path, token, nil)
}

func (ts *testServer) post(t *testing.T, path, token string, payload any) (int, http.Header, envelope) {
	return ts.do(t, http.MethodPost, path, token, payload)
}

func (ts *testServer) patch(t *testing.T, path, token string, payload any) (int, http.Header, envelope) {
	return ts.do(t, http.MethodPatch, path, token, payload)
}

func (ts *testServer) delete(t *testing.T, path, token string) (int, http.Header, envelope) {
	return ts.do(t, http.MethodDelete, path, token, nil)
}

// login opens an admin session and returns its token.
func (ts *testServer) login(t *testing.T) string {
	t.Helper()

	status, _, body := ts.post(t, "/v1/admin/login", "", map[string]string{"password": testAdminSecret})
	require.Equal(t, http.StatusOK, status)

	session, ok := body["session"].(map[string]any)
	require.True(t, ok)

	return session["token"].(string)
}
