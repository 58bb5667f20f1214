// Package repository contains data access logic separated from HTTP
// handlers.  This file defines sentinel error values shared across the
// repositories so that higher layers can distinguish failure scenarios
// with errors.Is instead of string matching.
package repository

import "errors"

// ErrUserNotFound is returned when a user lookup or an append against
// a nonexistent user matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrUserNameExists is returned when an insert violates the unique
// constraint on users.user_name.
var ErrUserNameExists = errors.New("user name already exists")

// ErrProjectNotFound is returned when a project cannot be found.
var ErrProjectNotFound = errors.New("project not found")
