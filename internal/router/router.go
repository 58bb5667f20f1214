// Package router defines how HTTP routes are registered for the
// application.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/prasantparajuli/climate-solutions/internal/handler"
	"github.com/prasantparajuli/climate-solutions/internal/middleware"
)

// RegisterRoutes registers the public site pages and the health check
// on the provided Echo instance.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/", handler.Home)
	e.GET("/about", handler.About)
}

// RegisterAuth registers the login/registration flow. The limiter is
// applied only to the credential-submitting POST endpoints; the GET
// forms stay cheap and uncounted. /userHistory sits behind the login
// guard.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limiter echo.MiddlewareFunc) {
	e.GET("/login", a.LoginForm)
	e.POST("/login", a.Login, limiter)
	e.GET("/register", a.RegisterForm)
	e.POST("/register", a.Register, limiter)
	e.GET("/logout", a.Logout)

	e.GET("/userHistory", a.UserHistory, middleware.RequireLogin())
}

// RegisterProjects registers the project catalog. Browsing is public;
// every mutating action lives in a group guarded by RequireLogin, so
// an anonymous request is redirected to /login before any handler
// runs.
func RegisterProjects(e *echo.Echo, p *handler.ProjectHandler) {
	e.GET("/solutions/projects", p.List)
	e.GET("/solutions/projects/:id", p.Detail)

	g := e.Group("/solutions")
	g.Use(middleware.RequireLogin())
	g.GET("/addProject", p.AddForm)
	g.POST("/addProject", p.Add)
	g.GET("/editProject/:id", p.EditForm)
	g.POST("/editProject", p.Edit)
	g.GET("/deleteProject/:id", p.Delete)
}
