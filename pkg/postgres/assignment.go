package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/escalas/pkg/core/model"
	"github.com/jakechorley/escalas/pkg/db"
)

const assignmentColumns = `id, week_start, area, day, function, servant_id, locked, position, created_by`

// GetAssignmentsByWeek retrieves the assignments of a roster week in insertion order
func (d *DB) GetAssignmentsByWeek(ctx context.Context, weekStart string) ([]model.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+assignmentColumns+`
		FROM assignment
		WHERE week_start = $1
		ORDER BY created_at, id
	`, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []model.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

// GetAssignment retrieves an assignment by id, returning db.ErrNotFound if absent
func (d *DB) GetAssignment(ctx context.Context, id string) (*model.Assignment, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+assignmentColumns+` FROM assignment WHERE id = $1`, id)

	a, err := scanAssignment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	return a, err
}

// InsertAssignment inserts a new assignment record
func (d *DB) InsertAssignment(ctx context.Context, a *model.Assignment) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO assignment (`+assignmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, a.ID, a.WeekStart, a.Area, string(a.Day), nullable(a.Function), a.ServantID, a.Locked, a.Position, a.CreatedBy)
	if err != nil {
		if isDayConflict(err) {
			return db.ErrDuplicateDayAssignment
		}
		return fmt.Errorf("failed to insert assignment: %w", err)
	}
	return nil
}

// UpdateAssignment writes the slot and position of an assignment in one statement
func (d *DB) UpdateAssignment(ctx context.Context, a *model.Assignment) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE assignment
		SET area = $2, day = $3, function = $4, position = $5
		WHERE id = $1
	`, a.ID, a.Area, string(a.Day), nullable(a.Function), a.Position)
	if err != nil {
		if isDayConflict(err) {
			return db.ErrDuplicateDayAssignment
		}
		return fmt.Errorf("failed to update assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// SetAssignmentLocked sets the lock flag without touching the slot
func (d *DB) SetAssignmentLocked(ctx context.Context, id string, locked bool) error {
	tag, err := d.pool.Exec(ctx, `UPDATE assignment SET locked = $2 WHERE id = $1`, id, locked)
	if err != nil {
		return fmt.Errorf("failed to set assignment lock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// DeleteAssignment removes an assignment record
func (d *DB) DeleteAssignment(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM assignment WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func scanAssignment(row pgx.Row) (*model.Assignment, error) {
	var a model.Assignment
	var weekStart time.Time
	var day string
	var function *string
	err := row.Scan(&a.ID, &weekStart, &a.Area, &day, &function, &a.ServantID, &a.Locked, &a.Position, &a.CreatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan assignment: %w", err)
	}

	a.WeekStart = weekStart.Format("2006-01-02")
	a.Day = model.Day(day)
	a.Function = fromNullable(function)
	return &a, nil
}
