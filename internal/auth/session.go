package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/prasantparajuli/climate-solutions/internal/model"
)

// SessionConfig collects the session cookie parameters. It is an
// explicit value passed into NewBinder; there is no process-wide
// session state.
//
//  CookieName       – name of the cookie the token travels in.
//  Secret           – HMAC key used to sign tokens.
//  AbsoluteLifetime – hard cap on a session's age, renewals included.
//  IdleLifetime     – a session dies this long after its last request.
type SessionConfig struct {
	CookieName       string
	Secret           string
	AbsoluteLifetime time.Duration
	IdleLifetime     time.Duration
}

// Session is a validated, decoded session token. The identity snapshot
// is fixed at login time; only LastActivityAt changes across renewals.
type Session struct {
	Identity       model.Identity
	IssuedAt       time.Time
	LastActivityAt time.Time
}

// sessionClaims is the wire form of a Session inside the signed token.
// iat/exp carry issue time and absolute expiry; the idle deadline is
// derived from lastActivity at validation time.
type sessionClaims struct {
	Identity     model.Identity `json:"identity"`
	LastActivity int64          `json:"lastActivity"`
	jwt.RegisteredClaims
}

// Binder maps an authenticated identity onto a signed, renewable
// session token and exposes the trust predicate route guards consult.
// All state lives in the token itself; the binder never touches
// storage, so validation cannot block on it.
type Binder struct {
	cfg     SessionConfig
	nowTime func() time.Time
}

// BinderOption modifies a Binder during construction.
type BinderOption func(*Binder)

// BinderWithNowTime sets the clock function, primarily for testing.
func BinderWithNowTime(now func() time.Time) BinderOption {
	return func(b *Binder) { b.nowTime = now }
}

func NewBinder(cfg SessionConfig, opts ...BinderOption) *Binder {
	b := &Binder{cfg: cfg, nowTime: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// CookieName returns the configured session cookie name.
func (b *Binder) CookieName() string { return b.cfg.CookieName }

// Issue signs a fresh token binding the identity snapshot. The token
// expires absolutely at now+AbsoluteLifetime and idles out at
// now+IdleLifetime unless renewed first.
func (b *Binder) Issue(id model.Identity) (string, error) {
	now := b.nowTime().UTC()
	return b.sign(id, now, now)
}

// Validate parses and checks a token: signature, absolute expiry, then
// idle window. It returns the decoded session on success and
// ErrSessionInvalid on any failure.
func (b *Binder) Validate(token string) (*Session, error) {
	claims := new(sessionClaims)
	tok, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(b.cfg.Secret), nil
	}, jwt.WithTimeFunc(b.nowTime))
	if err != nil || !tok.Valid {
		return nil, ErrSessionInvalid
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil || claims.LastActivity == 0 {
		return nil, ErrSessionInvalid
	}

	lastActivity := time.Unix(claims.LastActivity, 0).UTC()
	if b.nowTime().UTC().After(lastActivity.Add(b.cfg.IdleLifetime)) {
		return nil, ErrSessionInvalid
	}
	return &Session{
		Identity:       claims.Identity,
		IssuedAt:       claims.IssuedAt.Time.UTC(),
		LastActivityAt: lastActivity,
	}, nil
}

// Renew re-signs a validated session with the idle deadline pushed out
// to now+IdleLifetime. Issue time, absolute expiry and the bound
// identity are untouched, so renewal never extends a session past its
// absolute lifetime.
func (b *Binder) Renew(s *Session) (string, error) {
	return b.sign(s.Identity, s.IssuedAt, b.nowTime().UTC())
}

// IsAuthenticated is the trust predicate consulted by route guards:
// true only for a token that is validly signed, within its absolute
// lifetime, and not idled out.
func (b *Binder) IsAuthenticated(token string) bool {
	_, err := b.Validate(token)
	return err == nil
}

func (b *Binder) sign(id model.Identity, issuedAt, lastActivity time.Time) (string, error) {
	claims := sessionClaims{
		Identity:     id,
		LastActivity: lastActivity.Unix(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(b.cfg.AbsoluteLifetime)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(b.cfg.Secret))
}

// Cookie wraps a token in the session cookie handed to the transport
// layer. HttpOnly keeps it away from page scripts.
func (b *Binder) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     b.cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(b.cfg.AbsoluteLifetime / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredCookie returns a cookie that instructs the client to drop the
// session immediately; used on logout and on invalid tokens.
func (b *Binder) ExpiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     b.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
