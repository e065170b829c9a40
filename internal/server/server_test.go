package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-portfolio/pkg/contact"
	"github.com/goliatone/go-portfolio/pkg/delivery"
	"github.com/goliatone/go-portfolio/pkg/site"
)

var csrfPattern = regexp.MustCompile(`name="_csrf" value="([^"]+)"`)

type harness struct {
	t       *testing.T
	server  *httptest.Server
	client  *http.Client
	deliver *delivery.Memory

	mu       sync.Mutex
	attempts []string
}

func newHarness(t *testing.T, options ...Option) *harness {
	t.Helper()
	h := &harness{t: t, deliver: delivery.NewMemory()}
	// Every delivery attempt is recorded by ID, including those the memory
	// target fails.
	recorder := contact.DelivererFunc(func(_ context.Context, submission contact.Submission) error {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.attempts = append(h.attempts, submission.ID)
		return nil
	})
	portfolio, err := site.New(
		site.WithAssetPrefix(AssetPrefix),
		site.WithContactOptions(contact.WithDeliverer(delivery.Multi{recorder, h.deliver})),
	)
	require.NoError(t, err)

	options = append([]Option{
		WithSessionSecret("test-secret"),
		WithSessionDir(filepath.Join(t.TempDir(), "sessions")),
		WithVersion("v-test"),
	}, options...)
	srv, err := New(portfolio, options...)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	h.server = ts
	h.client = &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return h
}

func (h *harness) attemptIDs() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.attempts...)
}

func (h *harness) get(path string, header http.Header) (*http.Response, string) {
	h.t.Helper()
	req, err := http.NewRequest(http.MethodGet, h.server.URL+path, nil)
	require.NoError(h.t, err)
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	resp, err := h.client.Do(req)
	require.NoError(h.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(h.t, err)
	return resp, string(body)
}

// token loads the page and returns the CSRF token embedded in the form.
func (h *harness) token() string {
	h.t.Helper()
	_, body := h.get("/", nil)
	match := csrfPattern.FindStringSubmatch(body)
	require.Len(h.t, match, 2, "csrf token not found in page")
	return match[1]
}

func (h *harness) postForm(form url.Values) *http.Response {
	h.t.Helper()
	resp, err := h.client.PostForm(h.server.URL+ContactAction, form)
	require.NoError(h.t, err)
	resp.Body.Close()
	return resp
}

func (h *harness) postJSON(token string, payload any) (*http.Response, ContactResponse) {
	h.t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(h.t, err)
	req, err := http.NewRequest(http.MethodPost, h.server.URL+ContactAPI, bytes.NewReader(data))
	require.NoError(h.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(CSRFHeader, token)
	}
	resp, err := h.client.Do(req)
	require.NoError(h.t, err)
	defer resp.Body.Close()

	var decoded ContactResponse
	require.NoError(h.t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestNew_RequiresSite(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrSiteRequired)
}

func TestNew_RejectsMissingStaticDir(t *testing.T) {
	portfolio, err := site.New()
	require.NoError(t, err)

	_, err = New(portfolio, WithStaticDir(filepath.Join(t.TempDir(), "missing")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server: static dir")
}

func TestPage_RendersHTMLWithToken(t *testing.T) {
	h := newHarness(t)

	resp, body := h.get("/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, body, "RS 3D Renders")
	assert.Contains(t, body, `action="/contact"`)
	assert.Contains(t, body, `data-endpoint="/api/contact"`)
	assert.Contains(t, body, `href="/assets/portfolio.css"`)
	assert.Regexp(t, csrfPattern, body)

	// The token is stable for the session.
	first := csrfPattern.FindStringSubmatch(body)[1]
	assert.Equal(t, first, h.token())
}

func TestPage_FormatsAndThemes(t *testing.T) {
	h := newHarness(t)

	resp, body := h.get("/?format=text", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, body, "SEND A MESSAGE")

	resp, _ = h.get("/", http.Header{"Accept": {"text/plain"}})
	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))

	resp, _ = h.get("/?format=pdf", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = h.get("/?theme=unknown", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = h.get("/?variant=dark", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `data-theme-variant="dark"`)
}

func TestContactForm_RejectedKeepsValues(t *testing.T) {
	h := newHarness(t)
	token := h.token()

	resp := h.postForm(url.Values{
		"_csrf": {token},
		"name":  {"Ann"},
	})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/#contact", resp.Header.Get("Location"))
	assert.Empty(t, h.deliver.Submissions())

	_, body := h.get("/", nil)
	assert.Contains(t, body, `value="Ann"`)
	assert.Contains(t, body, "is required")
	assert.Contains(t, body, `aria-invalid="true"`)

	// Errors are shown once; values stay for the session.
	_, body = h.get("/", nil)
	assert.NotContains(t, body, "is required")
	assert.Contains(t, body, `value="Ann"`)
}

func TestContactForm_RejectedKeepsLongMessage(t *testing.T) {
	h := newHarness(t)
	token := h.token()
	message := strings.Repeat("a long message ", 4096/15+1)

	resp := h.postForm(url.Values{
		"_csrf":   {token},
		"name":    {"Ann"},
		"message": {message},
	})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/#contact", resp.Header.Get("Location"))

	_, body := h.get("/", nil)
	assert.Contains(t, body, message)
	assert.Contains(t, body, "Email is required")
}

func TestContactForm_AcknowledgedResetsForm(t *testing.T) {
	h := newHarness(t)
	token := h.token()

	resp := h.postForm(url.Values{
		"_csrf":   {token},
		"name":    {"Ann"},
		"email":   {"a@x.com"},
		"message": {"Hi"},
	})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	submissions := h.deliver.Submissions()
	require.Len(t, submissions, 1)
	assert.Equal(t, "Ann", submissions[0].Name)
	assert.Equal(t, "a@x.com", submissions[0].Email)
	assert.Equal(t, "Hi", submissions[0].Message)

	_, body := h.get("/", nil)
	assert.Contains(t, body, "Thank you for your message!")
	assert.NotContains(t, body, `value="Ann"`)

	_, body = h.get("/", nil)
	assert.NotContains(t, body, "Thank you for your message!")
}

func TestContactForm_RequiresCSRF(t *testing.T) {
	h := newHarness(t)
	h.token()

	resp := h.postForm(url.Values{
		"_csrf":   {"forged"},
		"name":    {"Ann"},
		"email":   {"a@x.com"},
		"message": {"Hi"},
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Empty(t, h.deliver.Submissions())
}

func TestContactAPI_Outcomes(t *testing.T) {
	h := newHarness(t)
	token := h.token()

	resp, decoded := h.postJSON(token, map[string]string{"name": "Ann", "email": "", "message": "Hi"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "rejected", decoded.Status)
	assert.Contains(t, decoded.Errors, "email")
	assert.NotContains(t, decoded.Errors, "name")

	h.deliver.FailWith(errors.New("smtp down"))
	resp, decoded = h.postJSON(token, map[string]string{"name": "Ann", "email": "a@x.com", "message": "Hi"})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "failed", decoded.Status)
	assert.Equal(t, []string{contact.DefaultFailureMessage}, decoded.FormErrors)

	h.deliver.FailWith(nil)
	resp, decoded = h.postJSON(token, map[string]string{"name": "Ann", "email": "a@x.com", "message": "Hi"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "acknowledged", decoded.Status)
	assert.Equal(t, contact.DefaultAcknowledgment, decoded.Message)
	assert.Empty(t, decoded.Errors)
	require.Len(t, h.deliver.Submissions(), 1)
}

func TestContactAPI_RetryReusesSubmissionID(t *testing.T) {
	h := newHarness(t)
	token := h.token()
	payload := map[string]string{"name": "Ann", "email": "a@x.com", "message": "Hi"}

	h.deliver.FailWith(errors.New("smtp down"))
	resp, _ := h.postJSON(token, payload)
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)

	h.deliver.FailWith(nil)
	resp, _ = h.postJSON(token, payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = h.postJSON(token, payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	attempts := h.attemptIDs()
	require.Len(t, attempts, 3)
	assert.Equal(t, attempts[0], attempts[1], "retry after failure should keep the submission id")
	assert.NotEqual(t, attempts[1], attempts[2], "a new message after acknowledgment gets a new id")
}

func TestContactForm_EditAfterFailureGetsNewID(t *testing.T) {
	h := newHarness(t)
	token := h.token()

	h.deliver.FailWith(errors.New("smtp down"))
	h.postForm(url.Values{"_csrf": {token}, "name": {"Ann"}, "email": {"a@x.com"}, "message": {"Hi"}})
	h.deliver.FailWith(nil)
	resp := h.postForm(url.Values{"_csrf": {token}, "name": {"Ann"}, "email": {"a@x.com"}, "message": {"Hi, again"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	attempts := h.attemptIDs()
	require.Len(t, attempts, 2)
	assert.NotEqual(t, attempts[0], attempts[1])
	require.Len(t, h.deliver.Submissions(), 1)
	assert.Equal(t, "Hi, again", h.deliver.Submissions()[0].Message)
}

func TestContactAPI_RejectsBadRequests(t *testing.T) {
	h := newHarness(t)
	token := h.token()

	resp, decoded := h.postJSON("", map[string]string{"name": "Ann", "email": "a@x.com", "message": "Hi"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "error", decoded.Status)

	req, err := http.NewRequest(http.MethodPost, h.server.URL+ContactAPI, strings.NewReader("{"))
	require.NoError(t, err)
	req.Header.Set(CSRFHeader, token)
	raw, err := h.client.Do(req)
	require.NoError(t, err)
	raw.Body.Close()
	assert.Equal(t, http.StatusBadRequest, raw.StatusCode)
	assert.Empty(t, h.deliver.Submissions())
}

func TestStaticRoutes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "loft.jpg"), []byte("jpeg-bytes"), 0o600))
	h := newHarness(t, WithStaticDir(dir))

	resp, body := h.get("/assets/portfolio.css", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/css")
	assert.NotEmpty(t, body)

	resp, body = h.get("/renders/loft.jpg", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "jpeg-bytes", body)

	resp, _ = h.get("/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	h := newHarness(t)

	resp, body := h.get("/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","version":"v-test"}`, body)
}

func TestRun_StopsWhenContextEnds(t *testing.T) {
	portfolio, err := site.New()
	require.NoError(t, err)
	srv, err := New(portfolio, WithAddr("127.0.0.1:0"), WithSessionSecret("test-secret"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	cancel()

	assert.NoError(t, <-done)
}
