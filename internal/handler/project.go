package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/prasantparajuli/climate-solutions/internal/model"
	"github.com/prasantparajuli/climate-solutions/internal/repository"
)

// ProjectHandler serves the project catalog pages and the protected
// add/edit/delete actions. It is thin glue over ProjectRepo; the
// interesting gating happens in the session middleware.
type ProjectHandler struct {
	Projects *repository.ProjectRepo
}

func NewProjectHandler(p *repository.ProjectRepo) *ProjectHandler {
	return &ProjectHandler{Projects: p}
}

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

func (h *ProjectHandler) render404(c echo.Context, message string) error {
	return c.Render(http.StatusNotFound, "404.html", pageData(c, "", "Not Found", echo.Map{"Message": message}))
}

func (h *ProjectHandler) render500(c echo.Context, message string) error {
	return c.Render(http.StatusInternalServerError, "500.html", pageData(c, "", "Error", echo.Map{"Message": message}))
}

// List shows all projects, optionally filtered by ?sector=. A filter
// that matches nothing renders the 404 page, matching the behavior of
// the rest of the catalog.
func (h *ProjectHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	sector := strings.TrimSpace(c.QueryParam("sector"))
	var (
		projects []*model.Project
		err      error
	)
	if sector != "" {
		projects, err = h.Projects.GetBySector(ctx, sector)
	} else {
		projects, err = h.Projects.GetAll(ctx)
	}
	if err != nil {
		return h.render500(c, "Error retrieving projects.")
	}
	if len(projects) == 0 && sector != "" {
		return h.render404(c, fmt.Sprintf("No projects found for sector: %s", sector))
	}
	return c.Render(http.StatusOK, "projects.html", pageData(c, "/solutions/projects", "Projects", echo.Map{
		"Projects": projects,
		"Sector":   sector,
	}))
}

// Detail shows a single project.
func (h *ProjectHandler) Detail(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return h.render404(c, fmt.Sprintf("No project found with ID: %s", c.Param("id")))
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	project, err := h.Projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return h.render404(c, fmt.Sprintf("No project found with ID: %d", id))
		}
		return h.render500(c, "Error retrieving project.")
	}
	return c.Render(http.StatusOK, "project.html", pageData(c, "", project.Title, echo.Map{
		"Project": project,
	}))
}

// AddForm renders the creation form with the sector dropdown.
func (h *ProjectHandler) AddForm(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	sectors, err := h.Projects.GetAllSectors(ctx)
	if err != nil {
		return h.render500(c, "Unable to load sectors for form.")
	}
	return c.Render(http.StatusOK, "addProject.html", pageData(c, "", "Add Project", echo.Map{
		"Sectors": sectors,
	}))
}

func projectFromForm(c echo.Context) (*model.Project, error) {
	sectorID, err := strconv.ParseUint(c.FormValue("sectorId"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid sector: %w", err)
	}
	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return nil, errors.New("title is required")
	}
	return &model.Project{
		Title:             title,
		FeatureImgURL:     strings.TrimSpace(c.FormValue("featureImgUrl")),
		SummaryShort:      strings.TrimSpace(c.FormValue("summaryShort")),
		IntroShort:        strings.TrimSpace(c.FormValue("introShort")),
		Impact:            strings.TrimSpace(c.FormValue("impact")),
		OriginalSourceURL: strings.TrimSpace(c.FormValue("originalSourceUrl")),
		SectorID:          sectorID,
	}, nil
}

// Add creates a project and returns to the list.
func (h *ProjectHandler) Add(c echo.Context) error {
	project, err := projectFromForm(c)
	if err != nil {
		return h.render500(c, fmt.Sprintf("Error adding project: %v", err))
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Projects.Create(ctx, project); err != nil {
		return h.render500(c, fmt.Sprintf("Error adding project: %v", err))
	}
	return c.Redirect(http.StatusFound, "/solutions/projects")
}

// EditForm renders the edit form pre-filled with the project.
func (h *ProjectHandler) EditForm(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return h.render404(c, "Project not found")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	project, err := h.Projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return h.render404(c, "Project not found")
		}
		return h.render500(c, "Error retrieving project.")
	}
	sectors, err := h.Projects.GetAllSectors(ctx)
	if err != nil {
		return h.render500(c, "Unable to load sectors for form.")
	}
	return c.Render(http.StatusOK, "editProject.html", pageData(c, "", "Edit Project", echo.Map{
		"Project": project,
		"Sectors": sectors,
	}))
}

// Edit updates a project from the posted form and returns to the list.
func (h *ProjectHandler) Edit(c echo.Context) error {
	id, err := strconv.ParseUint(c.FormValue("id"), 10, 64)
	if err != nil {
		return h.render500(c, "Error editing project: invalid id")
	}
	project, err := projectFromForm(c)
	if err != nil {
		return h.render500(c, fmt.Sprintf("Error editing project: %v", err))
	}
	project.ID = id

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Projects.Update(ctx, project); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return h.render404(c, "Project not found")
		}
		return h.render500(c, fmt.Sprintf("Error editing project: %v", err))
	}
	return c.Redirect(http.StatusFound, "/solutions/projects")
}

// Delete removes a project and returns to the list.
func (h *ProjectHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.String(http.StatusInternalServerError, "Unable to Remove Project / Project not found")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Projects.Delete(ctx, id); err != nil {
		return c.String(http.StatusInternalServerError, "Unable to Remove Project / Project not found")
	}
	return c.Redirect(http.StatusFound, "/solutions/projects")
}
