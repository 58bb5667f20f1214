package model

import "time"

// User represents an application user record as stored in the
// `users` table together with its login history loaded from the
// `login_attempts` table.  The history is append-only: attempts are
// inserted one row at a time and read back in insertion order, so
// slice order is chronological order.
//
// Fields:
//  ID           – primary key identifier of the user.
//  UserName     – unique login name, immutable after creation.
//  Email        – email address as submitted (uniqueness not enforced).
//  PasswordHash – bcrypt hashed password; never leaves the auth boundary.
//  CreatedAt    – timestamp of registration.
//  LoginHistory – every successful login, oldest first.
type User struct {
	ID           uint64         // users.id
	UserName     string         // users.user_name
	Email        string         // users.email
	PasswordHash string         // users.password_hash
	CreatedAt    time.Time      // users.created_at
	LoginHistory []LoginAttempt // login_attempts rows for this user
}

// LoginAttempt records a single successful login.  AttemptedAt is set
// server-side at verification time; UserAgent is copied verbatim from
// the request's User-Agent header and may be empty.
type LoginAttempt struct {
	AttemptedAt time.Time `json:"attemptedAt"` // login_attempts.attempted_at
	UserAgent   string    `json:"userAgent"`   // login_attempts.user_agent
}

// Identity is the sanitized snapshot handed out after a successful
// authentication.  It deliberately omits the password hash; this is
// the only user shape that crosses into sessions and views.
type Identity struct {
	UserName     string         `json:"userName"`
	Email        string         `json:"email"`
	LoginHistory []LoginAttempt `json:"loginHistory"`
}
