package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/prasantparajuli/climate-solutions/internal/model"
)

// UserRepo persists user records and their append-only login history.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a new user and populates its ID. The caller supplies
// an already-hashed password; plaintext never reaches this layer.
// A duplicate user_name maps to ErrUserNameExists.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.UserName = strings.TrimSpace(u.UserName)
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (user_name, email, password_hash) VALUES (?,?,?)",
		u.UserName, u.Email, u.PasswordHash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrUserNameExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

// GetByUserName fetches a user by exact user name, including the full
// login history ordered oldest first.
func (r *UserRepo) GetByUserName(ctx context.Context, userName string) (*model.User, error) {
	userName = strings.TrimSpace(userName)
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,user_name,email,password_hash,created_at FROM users WHERE user_name=? LIMIT 1",
		userName).Scan(&u.ID, &u.UserName, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx,
		"SELECT attempted_at,user_agent FROM login_attempts WHERE user_id=? ORDER BY id",
		u.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var a model.LoginAttempt
		if err := rows.Scan(&a.AttemptedAt, &a.UserAgent); err != nil {
			return nil, err
		}
		u.LoginHistory = append(u.LoginHistory, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &u, nil
}

// AppendLoginAttempt records one successful login for the named user.
// The insert is a single statement, so concurrent appends for the same
// or different users cannot lose updates; AUTO_INCREMENT ids keep the
// history in call order.
func (r *UserRepo) AppendLoginAttempt(ctx context.Context, userName string, a model.LoginAttempt) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO login_attempts (user_id, attempted_at, user_agent) SELECT id,?,? FROM users WHERE user_name=?",
		a.AttemptedAt, a.UserAgent, strings.TrimSpace(userName))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}
