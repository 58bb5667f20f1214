package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/prasantparajuli/climate-solutions/internal/auth"
	"github.com/prasantparajuli/climate-solutions/internal/queue"
	"github.com/prasantparajuli/climate-solutions/internal/repository"
	queue_publisher "github.com/prasantparajuli/climate-solutions/internal/service"
)

// AuthHandler serves the login and registration forms and the
// session-related pages. Publish sends the post-login audit event and
// is injectable so tests do not need a broker.
type AuthHandler struct {
	Auth    *auth.Service
	Binder  *auth.Binder
	Publish func(ctx context.Context, ev queue.LoginRecordedEvent) error
}

func NewAuthHandler(svc *auth.Service, b *auth.Binder) *AuthHandler {
	return &AuthHandler{Auth: svc, Binder: b, Publish: queue_publisher.PublishLoginRecorded}
}

// LoginForm renders an empty login form.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", pageData(c, "/login", "Log In", echo.Map{
		"ErrorMessage": "",
		"UserName":     "",
	}))
}

// Login verifies the submitted credentials. On success it binds the
// identity snapshot into a fresh session cookie and redirects to the
// project list; on failure the form is re-rendered with the message.
// Unknown-user and wrong-password failures share one message.
func (h *AuthHandler) Login(c echo.Context) error {
	userName := c.FormValue("userName")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	identity, err := h.Auth.Authenticate(ctx, auth.Credentials{
		UserName:  userName,
		Password:  c.FormValue("password"),
		UserAgent: c.Request().UserAgent(),
	})
	if err != nil {
		msg := "Unable to sign in, please try again."
		if errors.Is(err, auth.ErrInvalidCredentials) {
			msg = err.Error()
		} else {
			log.Printf("login failed for %q: %v", userName, err)
		}
		return c.Render(http.StatusOK, "login.html", pageData(c, "/login", "Log In", echo.Map{
			"ErrorMessage": msg,
			"UserName":     userName,
		}))
	}

	token, err := h.Binder.Issue(*identity)
	if err != nil {
		log.Printf("issue session for %q: %v", identity.UserName, err)
		return c.Render(http.StatusOK, "login.html", pageData(c, "/login", "Log In", echo.Map{
			"ErrorMessage": "Unable to sign in, please try again.",
			"UserName":     userName,
		}))
	}
	c.SetCookie(h.Binder.Cookie(token))

	// Audit trail is best-effort; never holds up the login response.
	if h.Publish != nil {
		attempt := identity.LoginHistory[len(identity.LoginHistory)-1]
		ev := queue.LoginRecordedEvent{
			UserName:    identity.UserName,
			Email:       identity.Email,
			UserAgent:   attempt.UserAgent,
			AttemptedAt: attempt.AttemptedAt.Format(time.RFC3339),
		}
		go func() {
			pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer pubCancel()
			_ = h.Publish(pubCtx, ev)
		}()
	}

	return c.Redirect(http.StatusFound, "/solutions/projects")
}

// RegisterForm renders an empty registration form.
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", pageData(c, "/register", "Register", echo.Map{
		"SuccessMessage": "",
		"ErrorMessage":   "",
		"UserName":       "",
	}))
}

// Register creates a new account. Validation failures and duplicate
// user names re-render the form with a message; success re-renders it
// with a confirmation instead of logging the user in.
func (h *AuthHandler) Register(c echo.Context) error {
	in := auth.RegisterInput{
		UserName:        c.FormValue("userName"),
		Email:           c.FormValue("email"),
		Password:        c.FormValue("password"),
		PasswordConfirm: c.FormValue("password2"),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Auth.Register(ctx, in); err != nil {
		msg := "Unable to create user, please try again."
		switch {
		case errors.Is(err, auth.ErrPasswordMismatch),
			errors.Is(err, auth.ErrMissingFields),
			errors.Is(err, repository.ErrUserNameExists):
			msg = err.Error()
		default:
			log.Printf("register failed for %q: %v", in.UserName, err)
		}
		return c.Render(http.StatusOK, "register.html", pageData(c, "/register", "Register", echo.Map{
			"SuccessMessage": "",
			"ErrorMessage":   msg,
			"UserName":       in.UserName,
		}))
	}

	return c.Render(http.StatusOK, "register.html", pageData(c, "/register", "Register", echo.Map{
		"SuccessMessage": "User created",
		"ErrorMessage":   "",
		"UserName":       "",
	}))
}

// Logout destroys the session cookie and returns to the home page.
// The token is stateless, so clearing the cookie is the whole job.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.Binder.ExpiredCookie())
	return c.Redirect(http.StatusFound, "/")
}

// UserHistory shows the login history bound into the current session.
func (h *AuthHandler) UserHistory(c echo.Context) error {
	return c.Render(http.StatusOK, "userHistory.html", pageData(c, "/userHistory", "Login History", nil))
}
