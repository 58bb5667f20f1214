package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/prasantparajuli/climate-solutions/internal/model"
)

// ProjectRepo encapsulates all database queries related to projects
// and their sectors.  It depends on a sql.DB connection configured at
// startup.
type ProjectRepo struct{ DB *sql.DB }

func NewProjectRepo(db *sql.DB) *ProjectRepo { return &ProjectRepo{DB: db} }

const projectColumns = `p.id, p.title, p.feature_img_url, p.summary_short,
	p.intro_short, p.impact, p.original_source_url, p.sector_id, s.sector_name`

func scanProject(row interface{ Scan(...any) error }, p *model.Project) error {
	return row.Scan(&p.ID, &p.Title, &p.FeatureImgURL, &p.SummaryShort,
		&p.IntroShort, &p.Impact, &p.OriginalSourceURL, &p.SectorID, &p.SectorName)
}

// GetAll returns every project joined with its sector name, ordered by id.
func (r *ProjectRepo) GetAll(ctx context.Context) ([]*model.Project, error) {
	const q = "SELECT " + projectColumns + ` FROM projects p
		JOIN sectors s ON s.id = p.sector_id ORDER BY p.id`
	return r.queryProjects(ctx, q)
}

// GetBySector returns projects whose sector name contains the given
// filter, case-insensitively. An empty result is not an error; the
// handler decides how to present it.
func (r *ProjectRepo) GetBySector(ctx context.Context, sector string) ([]*model.Project, error) {
	const q = "SELECT " + projectColumns + ` FROM projects p
		JOIN sectors s ON s.id = p.sector_id
		WHERE LOWER(s.sector_name) LIKE ? ORDER BY p.id`
	return r.queryProjects(ctx, q, "%"+strings.ToLower(strings.TrimSpace(sector))+"%")
}

func (r *ProjectRepo) queryProjects(ctx context.Context, q string, args ...any) ([]*model.Project, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Project
	for rows.Next() {
		p := new(model.Project)
		if err := scanProject(rows, p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single project. Returns ErrProjectNotFound when no
// row matches.
func (r *ProjectRepo) GetByID(ctx context.Context, id uint64) (*model.Project, error) {
	const q = "SELECT " + projectColumns + ` FROM projects p
		JOIN sectors s ON s.id = p.sector_id WHERE p.id = ?`
	p := new(model.Project)
	if err := scanProject(r.DB.QueryRowContext(ctx, q, id), p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return p, nil
}

// Create inserts a new project and populates its ID.
func (r *ProjectRepo) Create(ctx context.Context, p *model.Project) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO projects (title, feature_img_url, summary_short, intro_short,
			impact, original_source_url, sector_id) VALUES (?,?,?,?,?,?,?)`,
		p.Title, p.FeatureImgURL, p.SummaryShort, p.IntroShort,
		p.Impact, p.OriginalSourceURL, p.SectorID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// Update rewrites all editable columns of an existing project.
// Returns ErrProjectNotFound when no row is affected.
func (r *ProjectRepo) Update(ctx context.Context, p *model.Project) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE projects SET title=?, feature_img_url=?, summary_short=?,
			intro_short=?, impact=?, original_source_url=?, sector_id=? WHERE id=?`,
		p.Title, p.FeatureImgURL, p.SummaryShort, p.IntroShort,
		p.Impact, p.OriginalSourceURL, p.SectorID, p.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// Delete removes a project by id. Returns ErrProjectNotFound when no
// row is affected.
func (r *ProjectRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM projects WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// GetAllSectors lists every sector ordered by name, for the add/edit
// form dropdowns.
func (r *ProjectRepo) GetAllSectors(ctx context.Context) ([]*model.Sector, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, sector_name FROM sectors ORDER BY sector_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Sector
	for rows.Next() {
		s := new(model.Sector)
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
