package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tour-manager/internal/models"
)

const (
	clientColumns = `id, name, contact_info, tg_alias, black_list, created_at`
	guideColumns  = `id, name, email, phone, tg_alias, contact_info, total_tours, total_earnings, is_active, created_at`
	tourColumns   = `id, name, description, date, venue, group_size, duration, client_id, price, status, assigned_guide_id, created_at`
)

// insert runs an INSERT ... RETURNING id and yields the generated id.
func (db *DB) insert(ctx context.Context, query string, args ...interface{}) (int64, error) {
	var id int64
	if err := db.QueryRowxContext(ctx, db.Rebind(query+` RETURNING id`), args...).Scan(&id); err != nil {
		return 0, classify(err)
	}
	return id, nil
}

// execOne runs a statement that must touch exactly one row.
func (db *DB) execOne(ctx context.Context, query string, args ...interface{}) error {
	res, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Client operations
func (db *DB) CreateClient(ctx context.Context, c *models.Client) (*models.Client, error) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now()
	}

	id, err := db.insert(ctx, `
		INSERT INTO clients (name, contact_info, tg_alias, black_list, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		c.Name, c.ContactInfo, c.TgAlias, c.BlackList, c.CreatedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return db.GetClient(ctx, id)
}

func (db *DB) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	var client models.Client
	err := db.GetContext(ctx, &client, db.Rebind(`SELECT `+clientColumns+` FROM clients WHERE id = ?`), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get client %d: %w", id, classify(err))
	}
	return &client, nil
}

func (db *DB) ListClients(ctx context.Context) ([]models.Client, error) {
	clients := []models.Client{}
	if err := db.SelectContext(ctx, &clients, `SELECT `+clientColumns+` FROM clients ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

func (db *DB) SetClientBlacklist(ctx context.Context, id int64, blacklisted bool) (*models.Client, error) {
	if err := db.execOne(ctx, `UPDATE clients SET black_list = ? WHERE id = ?`, blacklisted, id); err != nil {
		return nil, fmt.Errorf("failed to update client %d: %w", id, err)
	}
	return db.GetClient(ctx, id)
}

func (db *DB) DeleteClient(ctx context.Context, id int64) error {
	if err := db.execOne(ctx, `DELETE FROM clients WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete client %d: %w", id, err)
	}
	return nil
}

func (db *DB) CountClients(ctx context.Context) (int, error) {
	var n int
	if err := db.GetContext(ctx, &n, `SELECT COUNT(*) FROM clients`); err != nil {
		return 0, fmt.Errorf("failed to count clients: %w", err)
	}
	return n, nil
}

// Guide operations
func (db *DB) CreateGuide(ctx context.Context, g *models.Guide) (*models.Guide, error) {
	if g.CreatedAt.IsZero() {
		g.CreatedAt = now()
	}

	id, err := db.insert(ctx, `
		INSERT INTO guides (name, email, phone, tg_alias, contact_info, total_tours, total_earnings, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.Name, g.Email, g.Phone, g.TgAlias, g.ContactInfo,
		g.TotalTours, g.TotalEarnings, g.IsActive, g.CreatedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create guide: %w", err)
	}

	return db.GetGuide(ctx, id)
}

func (db *DB) GetGuide(ctx context.Context, id int64) (*models.Guide, error) {
	var guide models.Guide
	err := db.GetContext(ctx, &guide, db.Rebind(`SELECT `+guideColumns+` FROM guides WHERE id = ?`), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get guide %d: %w", id, classify(err))
	}
	return &guide, nil
}

func (db *DB) ListGuides(ctx context.Context, filter models.GuideFilter) ([]models.Guide, error) {
	query := `SELECT ` + guideColumns + ` FROM guides`
	var args []interface{}
	if filter.ActiveOnly {
		query += ` WHERE is_active = ?`
		args = append(args, true)
	}
	query += ` ORDER BY name, id`

	guides := []models.Guide{}
	if err := db.SelectContext(ctx, &guides, db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list guides: %w", err)
	}
	return guides, nil
}

// UpdateGuide writes the staff-editable fields. Counters are left alone.
func (db *DB) UpdateGuide(ctx context.Context, g *models.Guide) (*models.Guide, error) {
	err := db.execOne(ctx, `
		UPDATE guides
		SET name = ?, email = ?, phone = ?, tg_alias = ?, contact_info = ?, is_active = ?
		WHERE id = ?`,
		g.Name, g.Email, g.Phone, g.TgAlias, g.ContactInfo, g.IsActive, g.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update guide %d: %w", g.ID, err)
	}
	return db.GetGuide(ctx, g.ID)
}

func (db *DB) DeleteGuide(ctx context.Context, id int64) error {
	if err := db.execOne(ctx, `DELETE FROM guides WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete guide %d: %w", id, err)
	}
	return nil
}

func (db *DB) CountGuides(ctx context.Context) (int, error) {
	var n int
	if err := db.GetContext(ctx, &n, `SELECT COUNT(*) FROM guides`); err != nil {
		return 0, fmt.Errorf("failed to count guides: %w", err)
	}
	return n, nil
}

// Tour operations
func (db *DB) CreateTour(ctx context.Context, t *models.Tour) (*models.Tour, error) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now()
	}

	id, err := db.insert(ctx, `
		INSERT INTO tours (name, description, date, venue, group_size, duration, client_id, price, status, assigned_guide_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Name, t.Description, t.Date.UTC(), t.Venue, t.GroupSize, t.Duration,
		t.ClientID, t.Price, t.Status, t.AssignedGuideID, t.CreatedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tour: %w", err)
	}

	return db.GetTour(ctx, id)
}

func (db *DB) GetTour(ctx context.Context, id int64) (*models.Tour, error) {
	var tour models.Tour
	err := db.GetContext(ctx, &tour, db.Rebind(`SELECT `+tourColumns+` FROM tours WHERE id = ?`), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get tour %d: %w", id, classify(err))
	}
	return &tour, nil
}

func (db *DB) ListTours(ctx context.Context, filter models.TourFilter) ([]models.Tour, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.Status != "" {
		conds = append(conds, `status = ?`)
		args = append(args, filter.Status)
	}
	if filter.ClientID != 0 {
		conds = append(conds, `client_id = ?`)
		args = append(args, filter.ClientID)
	}
	if filter.GuideID != 0 {
		conds = append(conds, `assigned_guide_id = ?`)
		args = append(args, filter.GuideID)
	}

	query := `SELECT ` + tourColumns + ` FROM tours`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY date, id`

	tours := []models.Tour{}
	if err := db.SelectContext(ctx, &tours, db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list tours: %w", err)
	}
	return tours, nil
}

// UpdateTourDetails writes the staff-editable columns only. Status and
// assignment are left to AssignTourGuide.
func (db *DB) UpdateTourDetails(ctx context.Context, t *models.Tour) (*models.Tour, error) {
	err := db.execOne(ctx, `
		UPDATE tours
		SET name = ?, description = ?, date = ?, venue = ?, group_size = ?, duration = ?,
		    client_id = ?, price = ?
		WHERE id = ?`,
		t.Name, t.Description, t.Date.UTC(), t.Venue, t.GroupSize, t.Duration,
		t.ClientID, t.Price, t.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update tour %d: %w", t.ID, err)
	}
	return db.GetTour(ctx, t.ID)
}

// AssignTourGuide confirms the tour for guideID in a single statement.
func (db *DB) AssignTourGuide(ctx context.Context, id, guideID int64) (*models.Tour, error) {
	err := db.execOne(ctx, `UPDATE tours SET status = ?, assigned_guide_id = ? WHERE id = ?`,
		models.TourStatusConfirmed, guideID, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to assign guide to tour %d: %w", id, err)
	}
	return db.GetTour(ctx, id)
}

func (db *DB) DeleteTour(ctx context.Context, id int64) error {
	if err := db.execOne(ctx, `DELETE FROM tours WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete tour %d: %w", id, err)
	}
	return nil
}
