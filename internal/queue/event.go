// Package queue defines message payloads exchanged over the message broker.
package queue

// LoginRecordedEvent is published after every successful login. It
// carries enough for downstream consumers to build an audit trail
// without querying the primary database.
type LoginRecordedEvent struct {
	UserName    string `json:"user_name"`
	Email       string `json:"email"`
	UserAgent   string `json:"user_agent"`
	AttemptedAt string `json:"attempted_at"`
}
