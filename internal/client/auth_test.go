package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// fakeStrapi is a minimal stand-in for the CMS upstream. It counts login
// exchanges, hands out sequential tokens, and lets tests script the
// responses of one content endpoint.
type fakeStrapi struct {
	t *testing.T

	mu          sync.Mutex
	loginCalls  int
	loginStatus []int // per-call status override; 200 once exhausted
	retryAfter  string
	tokens      []string // tokens handed out in order; last one repeats

	entryCalls  int
	entryHandle func(w http.ResponseWriter, r *http.Request)

	server *httptest.Server
}

func newFakeStrapi(t *testing.T) *fakeStrapi {
	t.Helper()
	f := &fakeStrapi{t: t, tokens: []string{"tok-1", "tok-2", "tok-3"}}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /admin/login", f.handleLogin)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.entryCalls++
		handle := f.entryHandle
		f.mu.Unlock()
		if handle == nil {
			http.NotFound(w, r)
			return
		}
		handle(w, r)
	})
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeStrapi) handleLogin(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	call := f.loginCalls
	f.loginCalls++
	status := http.StatusOK
	if call < len(f.loginStatus) {
		status = f.loginStatus[call]
	}
	token := f.tokens[len(f.tokens)-1]
	if call < len(f.tokens) {
		token = f.tokens[call]
	}
	retryAfter := f.retryAfter
	f.mu.Unlock()

	if status != http.StatusOK {
		if status == http.StatusTooManyRequests && retryAfter != "" {
			w.Header().Set("Retry-After", retryAfter)
		}
		w.WriteHeader(status)
		fmt.Fprintf(w, `{"error":{"status":%d}}`, status)
		return
	}
	fmt.Fprintf(w, `{"data":{"token":%q}}`, token)
}

func (f *fakeStrapi) logins() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loginCalls
}

func (f *fakeStrapi) entryHits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entryCalls
}

// newTestClient builds a client against the fake with both credentials
// configured, an instant sleep that records requested delays, and debug
// logging discarded.
func newTestClient(t *testing.T, f *fakeStrapi) (*Client, *[]time.Duration) {
	t.Helper()
	c := New(Options{
		BaseURL:       f.server.URL,
		APIToken:      "static-token",
		AdminEmail:    "admin@example.com",
		AdminPassword: "secret",
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	var slept []time.Duration
	var mu sync.Mutex
	c.sleep = func(ctx context.Context, d time.Duration) error {
		mu.Lock()
		slept = append(slept, d)
		mu.Unlock()
		return nil
	}
	return c, &slept
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestLoginIdempotent(t *testing.T) {
	f := newFakeStrapi(t)
	c, _ := newTestClient(t, f)

	ctx := context.Background()
	if err := c.Login(ctx); err != nil {
		t.Fatalf("first Login: %v", err)
	}
	if err := c.Login(ctx); err != nil {
		t.Fatalf("second Login: %v", err)
	}

	if got := f.logins(); got != 1 {
		t.Errorf("login exchanges: got %d, want 1", got)
	}
	if got := c.Session().Token(); got != "tok-1" {
		t.Errorf("token: got %q, want %q", got, "tok-1")
	}
}

func TestLoginSingleFlight(t *testing.T) {
	f := newFakeStrapi(t)
	c, _ := newTestClient(t, f)

	const callers = 8
	var wg sync.WaitGroup
	var failures atomic.Int32
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.Login(context.Background()); err != nil {
				failures.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := failures.Load(); got != 0 {
		t.Errorf("failed callers: got %d, want 0", got)
	}
	if got := f.logins(); got != 1 {
		t.Errorf("login exchanges: got %d, want 1", got)
	}
}

func TestLoginMinIntervalSpacing(t *testing.T) {
	f := newFakeStrapi(t)
	c, slept := newTestClient(t, f)
	c.minLoginInterval = 5 * time.Second

	base := time.Now()
	c.now = func() time.Time { return base }

	ctx := context.Background()
	if err := c.Login(ctx); err != nil {
		t.Fatalf("first Login: %v", err)
	}
	c.ClearToken()
	if err := c.Login(ctx); err != nil {
		t.Fatalf("second Login: %v", err)
	}

	// The second exchange starts at the same instant as the first, so the
	// full interval must be waited out.
	if len(*slept) != 1 {
		t.Fatalf("sleep calls: got %d, want 1 (%v)", len(*slept), *slept)
	}
	if got := (*slept)[0]; got != 5*time.Second {
		t.Errorf("spacing sleep: got %v, want %v", got, 5*time.Second)
	}
}

func TestLoginRateLimitBoundedRetry(t *testing.T) {
	f := newFakeStrapi(t)
	f.loginStatus = []int{429, 429, 429, 429, 429, 429}
	c, slept := newTestClient(t, f)

	err := c.Login(context.Background())
	if !errors.Is(err, ErrLoginRateLimited) {
		t.Fatalf("error: got %v, want ErrLoginRateLimited", err)
	}
	if got := f.logins(); got != 3 {
		t.Errorf("login exchanges: got %d, want 3", got)
	}
	// Two backoff sleeps, exponentially doubling from the base.
	if len(*slept) != 2 {
		t.Fatalf("backoff sleeps: got %d, want 2 (%v)", len(*slept), *slept)
	}
	if (*slept)[0] != time.Second || (*slept)[1] != 2*time.Second {
		t.Errorf("backoff delays: got %v, want [1s 2s]", *slept)
	}
}

func TestLoginHonorsRetryAfterHint(t *testing.T) {
	f := newFakeStrapi(t)
	f.loginStatus = []int{429}
	f.retryAfter = "7"
	c, slept := newTestClient(t, f)

	if err := c.Login(context.Background()); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got := f.logins(); got != 2 {
		t.Errorf("login exchanges: got %d, want 2", got)
	}
	if len(*slept) != 1 || (*slept)[0] != 7*time.Second {
		t.Errorf("sleep: got %v, want [7s]", *slept)
	}
	if got := c.Session().Token(); got != "tok-2" {
		t.Errorf("token: got %q, want %q", got, "tok-2")
	}
}

func TestLoginBadCredentialsNotRetried(t *testing.T) {
	f := newFakeStrapi(t)
	f.loginStatus = []int{400}
	c, _ := newTestClient(t, f)

	err := c.Login(context.Background())
	if !errors.Is(err, ErrLoginFailed) {
		t.Fatalf("error: got %v, want ErrLoginFailed", err)
	}
	if got := f.logins(); got != 1 {
		t.Errorf("login exchanges: got %d, want 1", got)
	}
}

func TestLoginMissingCredentials(t *testing.T) {
	f := newFakeStrapi(t)
	c := New(Options{
		BaseURL:  f.server.URL,
		APIToken: "static-token",
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	err := c.Login(context.Background())
	if !errors.Is(err, ErrAdminCredentialsMissing) {
		t.Fatalf("error: got %v, want ErrAdminCredentialsMissing", err)
	}
	if got := f.logins(); got != 0 {
		t.Errorf("login exchanges: got %d, want 0", got)
	}
}

func TestLoginExampleScenario(t *testing.T) {
	// 429 once, then 200 with a token; two concurrent callers observe one
	// POST and the same outcome.
	f := newFakeStrapi(t)
	f.loginStatus = []int{429}
	f.tokens = []string{"ignored", "abc"}
	c, _ := newTestClient(t, f)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = c.Login(context.Background())
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("caller %d: %v", i, err)
		}
	}
	// One leader performed both the 429 attempt and the successful retry.
	if got := f.logins(); got != 2 {
		t.Errorf("login exchanges: got %d, want 2", got)
	}
	if got := c.Session().Token(); got != "abc" {
		t.Errorf("token: got %q, want %q", got, "abc")
	}
}

// ---------------------------------------------------------------------------
// Token expiry peek
// ---------------------------------------------------------------------------

func signedJWT(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(expiresAt)}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return token
}

func TestTokenExpired(t *testing.T) {
	f := newFakeStrapi(t)
	c, _ := newTestClient(t, f)

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"opaque token", "not-a-jwt", false},
		{"future expiry", signedJWT(t, time.Now().Add(time.Hour)), false},
		{"past expiry", signedJWT(t, time.Now().Add(-time.Hour)), true},
		{"inside skew window", signedJWT(t, time.Now().Add(10*time.Second)), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.tokenExpired(tc.token); got != tc.want {
				t.Errorf("tokenExpired: got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestExpiredTokenTriggersRelogin(t *testing.T) {
	f := newFakeStrapi(t)
	c, _ := newTestClient(t, f)
	c.session.SetToken(signedJWT(t, time.Now().Add(-time.Minute)), time.Now())

	if err := c.Login(context.Background()); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got := f.logins(); got != 1 {
		t.Errorf("login exchanges: got %d, want 1", got)
	}
	if got := c.Session().Token(); got != "tok-1" {
		t.Errorf("token: got %q, want %q", got, "tok-1")
	}
}

// ---------------------------------------------------------------------------
// Dispatcher: stale-token recovery
// ---------------------------------------------------------------------------

func TestStaleTokenSelfHeal(t *testing.T) {
	f := newFakeStrapi(t)
	f.entryHandle = func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"ok":true}`)
	}
	c, _ := newTestClient(t, f)
	c.session.SetToken("stale-token", time.Now())

	raw, err := c.AdminRequest(context.Background(), http.MethodGet, "/content-manager/collection-types/api::article.article", nil, nil)
	if err != nil {
		t.Fatalf("AdminRequest: %v", err)
	}
	var parsed struct {
		OK bool `json:"ok"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil || !parsed.OK {
		t.Errorf("response: got %s, want {\"ok\":true}", raw)
	}

	if got := f.logins(); got != 1 {
		t.Errorf("re-logins: got %d, want 1", got)
	}
	if got := f.entryHits(); got != 2 {
		t.Errorf("endpoint calls: got %d, want 2 (original + one retry)", got)
	}
}

func TestNoDoubleRetry(t *testing.T) {
	f := newFakeStrapi(t)
	f.entryHandle = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}
	c, _ := newTestClient(t, f)
	c.session.SetToken("stale-token", time.Now())

	_, err := c.AdminRequest(context.Background(), http.MethodGet, "/content-manager/collection-types/api::article.article", nil, nil)
	if !IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("error: got %v, want 401 APIError", err)
	}
	if got := f.entryHits(); got != 2 {
		t.Errorf("endpoint calls: got %d, want exactly 2", got)
	}
	if got := f.logins(); got != 1 {
		t.Errorf("re-logins: got %d, want 1", got)
	}
}

func TestAdminRequestLoginFailureSkipsCall(t *testing.T) {
	f := newFakeStrapi(t)
	f.loginStatus = []int{400}
	f.entryHandle = func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}
	c, _ := newTestClient(t, f)

	_, err := c.AdminRequest(context.Background(), http.MethodGet, "/content-manager/collection-types/api::article.article", nil, nil)
	if !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("error: got %v, want ErrAuthRequired", err)
	}
	if got := f.entryHits(); got != 0 {
		t.Errorf("endpoint calls: got %d, want 0", got)
	}
}

func TestClearIfKeepsFreshToken(t *testing.T) {
	s := NewSession()
	s.SetToken("old", time.Now())
	s.SetToken("new", time.Now())

	if cleared := s.ClearIf("old"); cleared {
		t.Error("ClearIf(old): cleared a fresh token")
	}
	if got := s.Token(); got != "new" {
		t.Errorf("token: got %q, want %q", got, "new")
	}
	if cleared := s.ClearIf("new"); !cleared {
		t.Error("ClearIf(new): expected clear")
	}
	if got := s.Token(); got != "" {
		t.Errorf("token after clear: got %q, want empty", got)
	}
}

// ---------------------------------------------------------------------------
// Surface selection
// ---------------------------------------------------------------------------

func TestSurfaceFallback(t *testing.T) {
	f := newFakeStrapi(t)
	f.entryHandle = func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/content-manager/collection-types/api::article.article" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if r.URL.Path == "/api/articles" {
			fmt.Fprint(w, `{"data":[{"id":1}],"meta":{"pagination":{"page":1,"pageSize":25,"pageCount":1,"total":1}}}`)
			return
		}
		http.NotFound(w, r)
	}
	c, _ := newTestClient(t, f)

	list, err := c.ListEntries(context.Background(), "api::article.article", QueryOptions{})
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(list.Entries) != 1 {
		t.Fatalf("entries: got %d, want 1", len(list.Entries))
	}
	if list.Pagination.Total != 1 {
		t.Errorf("total: got %d, want 1", list.Pagination.Total)
	}
	// Admin surface tried and failed, public surface answered.
	if got := f.entryHits(); got != 2 {
		t.Errorf("endpoint calls: got %d, want 2", got)
	}
}

func TestSurfaceFallbackReportsBothFailures(t *testing.T) {
	f := newFakeStrapi(t)
	f.entryHandle = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}
	c, _ := newTestClient(t, f)

	_, err := c.ListEntries(context.Background(), "api::article.article", QueryOptions{})
	if err == nil {
		t.Fatal("expected error when every surface fails")
	}
	if !IsStatus(err, http.StatusForbidden) {
		t.Errorf("error should carry the upstream status: %v", err)
	}
}

func TestPrivilegeGate(t *testing.T) {
	f := newFakeStrapi(t)
	c := New(Options{
		BaseURL:  f.server.URL,
		APIToken: "static-token",
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	_, err := c.ListContentTypes(context.Background(), true)
	if !errors.Is(err, ErrPrivilegedRequired) {
		t.Fatalf("error: got %v, want ErrPrivilegedRequired", err)
	}
	if got := f.logins() + f.entryHits(); got != 0 {
		t.Errorf("network calls: got %d, want 0", got)
	}
}

func TestTokenOnlyUsesPublicSurface(t *testing.T) {
	f := newFakeStrapi(t)
	var mu sync.Mutex
	var sawAdminPath, sawAuth bool
	f.entryHandle = func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		if r.URL.Path == "/content-manager/collection-types/api::article.article" {
			sawAdminPath = true
		}
		if r.Header.Get("Authorization") == "Bearer static-token" {
			sawAuth = true
		}
		mu.Unlock()
		fmt.Fprint(w, `{"data":[],"meta":{"pagination":{}}}`)
	}
	c := New(Options{
		BaseURL:  f.server.URL,
		APIToken: "static-token",
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	if _, err := c.ListEntries(context.Background(), "api::article.article", QueryOptions{}); err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if sawAdminPath {
		t.Error("token-only client must not touch the admin surface")
	}
	if !sawAuth {
		t.Error("public call missing the static bearer token")
	}
	if got := f.logins(); got != 0 {
		t.Errorf("login exchanges: got %d, want 0", got)
	}
}
