package config

import (
	"time"

	"github.com/prasantparajuli/climate-solutions/internal/auth"
)

// LoadSessionConfig builds the session cookie configuration from
// environment variables. Only the signing secret is mandatory; the
// defaults match the application's historical behavior: a cookie named
// "session" that lives at most 2 minutes and idles out after 1 minute
// without activity.
func LoadSessionConfig() auth.SessionConfig {
	return auth.SessionConfig{
		CookieName:       envStr("SESSION_COOKIE_NAME", "session"),
		Secret:           must("SESSION_SECRET"),
		AbsoluteLifetime: envDur("SESSION_DURATION", 2*time.Minute),
		IdleLifetime:     envDur("SESSION_ACTIVE_DURATION", time.Minute),
	}
}
