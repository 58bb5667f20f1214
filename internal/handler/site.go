package handler

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prasantparajuli/climate-solutions/internal/middleware"
)

// pageData assembles the fields every template expects (active page,
// title, session for the navbar) merged with page-specific extras.
func pageData(c echo.Context, page, title string, extra echo.Map) echo.Map {
	data := echo.Map{
		"Page":    page,
		"Title":   title,
		"Session": middleware.SessionFrom(c),
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

// Home renders the landing page.
func Home(c echo.Context) error {
	return c.Render(http.StatusOK, "home.html", pageData(c, "/", "Home", nil))
}

// About renders the about page.
func About(c echo.Context) error {
	return c.Render(http.StatusOK, "about.html", pageData(c, "/about", "About", nil))
}

// HTTPErrorHandler renders the 404 page for unknown routes and a
// generic error page for everything else Echo reports.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
	}
	if code == http.StatusNotFound {
		renderErr := c.Render(code, "404.html", pageData(c, "", "Not Found", echo.Map{"Message": "Page not found."}))
		if renderErr != nil {
			log.Printf("render 404 page: %v", renderErr)
		}
		return
	}
	log.Printf("request failed: %v", err)
	if renderErr := c.Render(code, "500.html", pageData(c, "", "Error", echo.Map{"Message": "An unexpected error occurred."})); renderErr != nil {
		log.Printf("render error page: %v", renderErr)
	}
}
