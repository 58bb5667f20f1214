package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/prasantparajuli/climate-solutions/internal/auth"
	"github.com/prasantparajuli/climate-solutions/internal/model"
)

// testClock is a settable clock shared between the binder under test
// and the assertions.
type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }
func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestBinder(t *testing.T) (*auth.Binder, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Date(2025, 8, 7, 12, 0, 0, 0, time.UTC)}
	b := auth.NewBinder(auth.SessionConfig{
		CookieName:       "session",
		Secret:           "test_secret_key",
		AbsoluteLifetime: 2 * time.Minute,
		IdleLifetime:     time.Minute,
	}, auth.BinderWithNowTime(clock.Now))
	return b, clock
}

func testIdentity() model.Identity {
	return model.Identity{
		UserName: "alice",
		Email:    "a@x.com",
		LoginHistory: []model.LoginAttempt{
			{AttemptedAt: time.Date(2025, 8, 7, 12, 0, 0, 0, time.UTC), UserAgent: "test-agent"},
		},
	}
}

func TestIssueAndValidate(t *testing.T) {
	b, _ := newTestBinder(t)
	token, err := b.Issue(testIdentity())
	require.NoError(t, err)
	require.True(t, b.IsAuthenticated(token))

	sess, err := b.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "alice", sess.Identity.UserName)
	require.Equal(t, "a@x.com", sess.Identity.Email)
	require.Len(t, sess.Identity.LoginHistory, 1)
	require.Equal(t, "test-agent", sess.Identity.LoginHistory[0].UserAgent)
	require.Equal(t, sess.IssuedAt, sess.LastActivityAt)
}

func TestIdleExpiry(t *testing.T) {
	b, clock := newTestBinder(t)
	token, err := b.Issue(testIdentity())
	require.NoError(t, err)

	clock.Advance(59 * time.Second)
	require.True(t, b.IsAuthenticated(token))

	clock.Advance(2 * time.Second) // past the 1m idle window
	require.False(t, b.IsAuthenticated(token))
}

func TestRenewalSlidesIdleWindow(t *testing.T) {
	b, clock := newTestBinder(t)
	token, err := b.Issue(testIdentity())
	require.NoError(t, err)

	clock.Advance(45 * time.Second)
	sess, err := b.Validate(token)
	require.NoError(t, err)
	renewed, err := b.Renew(sess)
	require.NoError(t, err)

	// 90s after issue: the original token idled out at 60s, the
	// renewed one is still inside its window.
	clock.Advance(45 * time.Second)
	require.False(t, b.IsAuthenticated(token))
	require.True(t, b.IsAuthenticated(renewed))

	// Renewal keeps the issue time and bound identity untouched.
	renewedSess, err := b.Validate(renewed)
	require.NoError(t, err)
	require.Equal(t, sess.IssuedAt, renewedSess.IssuedAt)
	require.Equal(t, sess.Identity, renewedSess.Identity)
}

func TestAbsoluteLifetimeCapsRenewal(t *testing.T) {
	b, clock := newTestBinder(t)
	token, err := b.Issue(testIdentity())
	require.NoError(t, err)

	// Renew every 30s so the session never idles out.
	for i := 0; i < 3; i++ {
		clock.Advance(30 * time.Second)
		sess, err := b.Validate(token)
		require.NoError(t, err)
		token, err = b.Renew(sess)
		require.NoError(t, err)
	}

	// Past the 2m absolute lifetime no amount of activity keeps the
	// session alive.
	clock.Advance(31 * time.Second)
	_, err = b.Validate(token)
	require.ErrorIs(t, err, auth.ErrSessionInvalid)
}

func TestValidateRejectsGarbage(t *testing.T) {
	b, _ := newTestBinder(t)
	for _, tok := range []string{"", "not-a-token", "aaaa.bbbb.cccc"} {
		require.False(t, b.IsAuthenticated(tok))
	}
}

func TestValidateRejectsForeignSignature(t *testing.T) {
	b, _ := newTestBinder(t)
	other := auth.NewBinder(auth.SessionConfig{
		CookieName:       "session",
		Secret:           "a_different_secret",
		AbsoluteLifetime: 2 * time.Minute,
		IdleLifetime:     time.Minute,
	})
	token, err := other.Issue(testIdentity())
	require.NoError(t, err)
	require.False(t, b.IsAuthenticated(token))
}

func TestCookies(t *testing.T) {
	b, _ := newTestBinder(t)
	token, err := b.Issue(testIdentity())
	require.NoError(t, err)

	c := b.Cookie(token)
	require.Equal(t, "session", c.Name)
	require.Equal(t, token, c.Value)
	require.True(t, c.HttpOnly)
	require.Equal(t, 120, c.MaxAge)

	// Logout: the expired cookie drops the session client-side.
	expired := b.ExpiredCookie()
	require.Equal(t, "session", expired.Name)
	require.Empty(t, expired.Value)
	require.Negative(t, expired.MaxAge)
}
