package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/prasantparajuli/climate-solutions/internal/auth"
	"github.com/prasantparajuli/climate-solutions/internal/auth/storefake"
	"github.com/prasantparajuli/climate-solutions/internal/handler"
	"github.com/prasantparajuli/climate-solutions/internal/middleware"
	"github.com/prasantparajuli/climate-solutions/internal/queue"
	"github.com/prasantparajuli/climate-solutions/internal/view"
)

// eventRecorder captures published audit events instead of dialing a
// broker.
type eventRecorder struct {
	mu     sync.Mutex
	events []queue.LoginRecordedEvent
}

func (r *eventRecorder) publish(_ context.Context, ev queue.LoginRecordedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *eventRecorder) waitForEvent(t *testing.T) queue.LoginRecordedEvent {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		r.mu.Lock()
		if len(r.events) > 0 {
			ev := r.events[0]
			r.mu.Unlock()
			return ev
		}
		r.mu.Unlock()
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("no login event published")
	return queue.LoginRecordedEvent{}
}

type testApp struct {
	e        *echo.Echo
	store    *storefake.FakeStore
	binder   *auth.Binder
	recorder *eventRecorder
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	store := storefake.NewFakeStore()
	svc := auth.NewService(store, bcrypt.MinCost)
	binder := auth.NewBinder(auth.SessionConfig{
		CookieName:       "session",
		Secret:           "test_secret_key",
		AbsoluteLifetime: 2 * time.Minute,
		IdleLifetime:     time.Minute,
	})
	renderer, err := view.NewRenderer()
	require.NoError(t, err)

	recorder := new(eventRecorder)
	h := handler.NewAuthHandler(svc, binder)
	h.Publish = recorder.publish

	e := echo.New()
	e.Renderer = renderer
	e.HTTPErrorHandler = handler.HTTPErrorHandler
	e.Use(middleware.LoadSession(binder))

	noLimit := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	e.GET("/login", h.LoginForm)
	e.POST("/login", h.Login, noLimit)
	e.GET("/register", h.RegisterForm)
	e.POST("/register", h.Register, noLimit)
	e.GET("/logout", h.Logout)
	e.GET("/userHistory", h.UserHistory, middleware.RequireLogin())

	return &testApp{e: e, store: store, binder: binder, recorder: recorder}
}

func (a *testApp) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.Header.Set("User-Agent", "test-agent")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func registerForm(userName string) url.Values {
	return url.Values{
		"userName":  {userName},
		"email":     {userName + "@x.com"},
		"password":  {"p1"},
		"password2": {"p1"},
	}
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session" && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestRegisterFlow(t *testing.T) {
	app := newTestApp(t)

	rec := app.postForm("/register", registerForm("alice"))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "User created")
	require.Equal(t, 1, app.store.Len())

	// Same user name again fails and creates nothing.
	rec = app.postForm("/register", registerForm("alice"))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "already exists")
	require.Equal(t, 1, app.store.Len())
}

func TestRegisterPasswordMismatchRerendersForm(t *testing.T) {
	app := newTestApp(t)

	form := registerForm("alice")
	form.Set("password2", "p2")
	rec := app.postForm("/register", form)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "passwords do not match")
	// The submitted user name is echoed back into the form.
	require.Contains(t, rec.Body.String(), `value="alice"`)
	require.Equal(t, 0, app.store.Len())
}

func TestLoginFailureSetsNoCookie(t *testing.T) {
	app := newTestApp(t)
	app.postForm("/register", registerForm("alice"))

	for _, form := range []url.Values{
		{"userName": {"alice"}, "password": {"wrong"}},
		{"userName": {"nobody"}, "password": {"p1"}},
	} {
		rec := app.postForm("/login", form)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid user name or password")
		for _, c := range rec.Result().Cookies() {
			require.NotEqual(t, "session", c.Name)
		}
	}
}

func TestLoginSuccessAndHistoryPage(t *testing.T) {
	app := newTestApp(t)
	app.postForm("/register", registerForm("alice"))

	rec := app.postForm("/login", url.Values{"userName": {"alice"}, "password": {"p1"}})
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/solutions/projects", rec.Header().Get(echo.HeaderLocation))
	cookie := sessionCookie(t, rec)

	ev := app.recorder.waitForEvent(t)
	require.Equal(t, "alice", ev.UserName)
	require.Equal(t, "test-agent", ev.UserAgent)

	hist := app.get("/userHistory", cookie)
	require.Equal(t, http.StatusOK, hist.Code)
	require.Contains(t, hist.Body.String(), "alice")
	require.Contains(t, hist.Body.String(), "test-agent")

	// Activity renews the session cookie on the way out.
	sessionCookie(t, hist)
}

func TestGuardRedirectsAnonymous(t *testing.T) {
	app := newTestApp(t)

	rec := app.get("/userHistory")
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))

	// A tampered token is treated the same as no token.
	rec = app.get("/userHistory", &http.Cookie{Name: "session", Value: "garbage"})
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func TestLogoutClearsSession(t *testing.T) {
	app := newTestApp(t)
	app.postForm("/register", registerForm("alice"))
	login := app.postForm("/login", url.Values{"userName": {"alice"}, "password": {"p1"}})
	cookie := sessionCookie(t, login)

	out := app.get("/logout", cookie)
	require.Equal(t, http.StatusFound, out.Code)
	require.Equal(t, "/", out.Header().Get(echo.HeaderLocation))

	var cleared bool
	for _, c := range out.Result().Cookies() {
		if c.Name == "session" && c.MaxAge < 0 {
			cleared = true
		}
	}
	require.True(t, cleared, "logout must expire the session cookie")
}
