// Package catalog serves project queries from an in-memory sqlite database
// loaded from the site content at startup. Nothing is written to disk.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/Zachkp/folio/internal/content"
)

// ErrNotFound is returned when a project uid is unknown.
var ErrNotFound = errors.New("project not found")

// Item list names stored in project_items.
const (
	listObjectives  = "objective"
	listKeyFeatures = "feature"
	listChallenges  = "challenge"
)

const schema = `
CREATE TABLE projects (
	uid TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	title TEXT NOT NULL,
	year TEXT,
	kind TEXT NOT NULL,
	description TEXT,
	long_description TEXT,
	architecture TEXT,
	methodology TEXT,
	duration TEXT,
	role TEXT
);
CREATE TABLE project_images (
	uid TEXT NOT NULL REFERENCES projects(uid),
	position INTEGER NOT NULL,
	ref TEXT NOT NULL,
	PRIMARY KEY (uid, position)
);
CREATE TABLE project_tech (
	uid TEXT NOT NULL REFERENCES projects(uid),
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	icon TEXT,
	color TEXT,
	PRIMARY KEY (uid, position)
);
CREATE TABLE project_items (
	uid TEXT NOT NULL REFERENCES projects(uid),
	list TEXT NOT NULL,
	position INTEGER NOT NULL,
	text TEXT NOT NULL,
	PRIMARY KEY (uid, list, position)
);
CREATE INDEX projects_kind ON projects(kind, position);
`

// Catalog is a read-only view of the site's projects.
type Catalog struct {
	db *sql.DB
}

// Open creates the in-memory database and loads every project of site.
func Open(ctx context.Context, site *content.Site) (*Catalog, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	// Each connection to :memory: is its own database.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create catalog schema: %w", err)
	}

	c := &Catalog{db: db}
	if err := c.load(ctx, site.Projects); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Catalog) load(ctx context.Context, projects []content.Project) (err error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin catalog load: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for pos, p := range projects {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO projects (uid, position, title, year, kind, description, long_description, architecture, methodology, duration, role)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, p.UID, pos, p.Title, p.Year, p.Kind, p.Description, p.LongDescription, p.Architecture, p.Methodology, p.Duration, p.Role)
		if err != nil {
			return fmt.Errorf("insert project %q: %w", p.UID, err)
		}

		for i, ref := range p.Images {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO project_images (uid, position, ref) VALUES (?, ?, ?)`,
				p.UID, i, ref); err != nil {
				return fmt.Errorf("insert image for %q: %w", p.UID, err)
			}
		}

		for i, tech := range p.TechStack {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO project_tech (uid, position, name, icon, color) VALUES (?, ?, ?, ?, ?)`,
				p.UID, i, tech.Name, tech.Icon, tech.Color); err != nil {
				return fmt.Errorf("insert tech for %q: %w", p.UID, err)
			}
		}

		lists := map[string][]string{
			listObjectives:  p.Objectives,
			listKeyFeatures: p.KeyFeatures,
			listChallenges:  p.Challenges,
		}
		for list, items := range lists {
			for i, text := range items {
				if _, err = tx.ExecContext(ctx,
					`INSERT INTO project_items (uid, list, position, text) VALUES (?, ?, ?, ?)`,
					p.UID, list, i, text); err != nil {
					return fmt.Errorf("insert %s for %q: %w", list, p.UID, err)
				}
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit catalog load: %w", err)
	}
	return nil
}

// List returns projects in content order. An empty kind lists everything.
func (c *Catalog) List(ctx context.Context, kind string) ([]content.Project, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT uid FROM projects
		WHERE ? = '' OR kind = ?
		ORDER BY position
	`, kind, kind)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	var uids []string
	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan project: %w", err)
		}
		uids = append(uids, uid)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	projects := make([]content.Project, 0, len(uids))
	for _, uid := range uids {
		p, err := c.Get(ctx, uid)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// Get returns the project with the given uid, or ErrNotFound.
func (c *Catalog) Get(ctx context.Context, uid string) (content.Project, error) {
	var p content.Project
	err := c.db.QueryRowContext(ctx, `
		SELECT uid, title, year, kind, description, long_description, architecture, methodology, duration, role
		FROM projects WHERE uid = ?
	`, uid).Scan(&p.UID, &p.Title, &p.Year, &p.Kind, &p.Description, &p.LongDescription,
		&p.Architecture, &p.Methodology, &p.Duration, &p.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return content.Project{}, fmt.Errorf("%w: %s", ErrNotFound, uid)
	}
	if err != nil {
		return content.Project{}, fmt.Errorf("get project %q: %w", uid, err)
	}

	if p.Images, err = c.Images(ctx, uid); err != nil {
		return content.Project{}, err
	}
	if p.TechStack, err = c.techStack(ctx, uid); err != nil {
		return content.Project{}, err
	}
	if p.Objectives, err = c.items(ctx, uid, listObjectives); err != nil {
		return content.Project{}, err
	}
	if p.KeyFeatures, err = c.items(ctx, uid, listKeyFeatures); err != nil {
		return content.Project{}, err
	}
	if p.Challenges, err = c.items(ctx, uid, listChallenges); err != nil {
		return content.Project{}, err
	}
	return p, nil
}

// Images returns the ordered image sequence of a project.
func (c *Catalog) Images(ctx context.Context, uid string) ([]string, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT ref FROM project_images WHERE uid = ? ORDER BY position`, uid)
	if err != nil {
		return nil, fmt.Errorf("images for %q: %w", uid, err)
	}
	defer rows.Close()

	var refs []string
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (c *Catalog) techStack(ctx context.Context, uid string) ([]content.Technology, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT name, icon, color FROM project_tech WHERE uid = ? ORDER BY position`, uid)
	if err != nil {
		return nil, fmt.Errorf("tech stack for %q: %w", uid, err)
	}
	defer rows.Close()

	var stack []content.Technology
	for rows.Next() {
		var t content.Technology
		if err := rows.Scan(&t.Name, &t.Icon, &t.Color); err != nil {
			return nil, fmt.Errorf("scan tech: %w", err)
		}
		stack = append(stack, t)
	}
	return stack, rows.Err()
}

func (c *Catalog) items(ctx context.Context, uid, list string) ([]string, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT text FROM project_items WHERE uid = ? AND list = ? ORDER BY position`, uid, list)
	if err != nil {
		return nil, fmt.Errorf("%s items for %q: %w", list, uid, err)
	}
	defer rows.Close()

	var items []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("scan %s: %w", list, err)
		}
		items = append(items, text)
	}
	return items, rows.Err()
}

// Count returns the number of projects, optionally filtered by kind.
func (c *Catalog) Count(ctx context.Context, kind string) (int, error) {
	var n int
	err := c.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM projects WHERE ? = '' OR kind = ?`, kind, kind).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return n, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}
