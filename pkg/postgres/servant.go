package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/escalas/pkg/core/model"
	"github.com/jakechorley/escalas/pkg/db"
)

// GetServants retrieves servants ordered by name, optionally only active ones
func (d *DB) GetServants(ctx context.Context, activeOnly bool) ([]model.Servant, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, phone, email, active
		FROM servant
		WHERE active OR NOT $1
		ORDER BY name, id
	`, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to query servants: %w", err)
	}
	defer rows.Close()

	var servants []model.Servant
	for rows.Next() {
		s, err := scanServant(rows)
		if err != nil {
			return nil, err
		}
		servants = append(servants, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating servants: %w", err)
	}

	return servants, nil
}

// GetServant retrieves a servant by id, returning db.ErrNotFound if absent
func (d *DB) GetServant(ctx context.Context, id string) (*model.Servant, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT id, name, phone, email, active
		FROM servant
		WHERE id = $1
	`, id)

	s, err := scanServant(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	return s, err
}

// InsertServant inserts a new servant record
func (d *DB) InsertServant(ctx context.Context, servant *model.Servant) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO servant (id, name, phone, email, active)
		VALUES ($1, $2, $3, $4, $5)
	`, servant.ID, servant.Name, nullable(servant.Phone), nullable(servant.Email), servant.IsActive())
	if err != nil {
		return fmt.Errorf("failed to insert servant: %w", err)
	}
	return nil
}

// UpdateServant overwrites a servant's contact details and status
func (d *DB) UpdateServant(ctx context.Context, servant *model.Servant) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE servant SET name = $2, phone = $3, email = $4, active = $5
		WHERE id = $1
	`, servant.ID, servant.Name, nullable(servant.Phone), nullable(servant.Email), servant.IsActive())
	if err != nil {
		return fmt.Errorf("failed to update servant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// DeleteServant removes a servant record
func (d *DB) DeleteServant(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM servant WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete servant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// CountServantAssignments counts the assignments referencing a servant, across all weeks
func (d *DB) CountServantAssignments(ctx context.Context, servantID string) (int, error) {
	var count int
	err := d.pool.QueryRow(ctx, `SELECT COUNT(*) FROM assignment WHERE servant_id = $1`, servantID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count servant assignments: %w", err)
	}
	return count, nil
}

func scanServant(row pgx.Row) (*model.Servant, error) {
	var s model.Servant
	var phone, email *string
	var active bool
	if err := row.Scan(&s.ID, &s.Name, &phone, &email, &active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan servant: %w", err)
	}

	s.Phone = fromNullable(phone)
	s.Email = fromNullable(email)
	s.Status = model.StatusInactive
	if active {
		s.Status = model.StatusActive
	}
	return &s, nil
}
