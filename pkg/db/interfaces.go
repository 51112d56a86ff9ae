package db

import (
	"context"
	"errors"

	"github.com/jakechorley/escalas/pkg/core/model"
)

// ErrNotFound is returned by stores when a record with the given id does not exist
var ErrNotFound = errors.New("record not found")

// ErrDuplicateDayAssignment is returned by stores that enforce the
// one-assignment-per-servant-per-day rule themselves, when a concurrent
// writer got there first
var ErrDuplicateDayAssignment = errors.New("servant already has an assignment on this day")

// ServantReader defines read access to the servant directory
type ServantReader interface {
	GetServants(ctx context.Context, activeOnly bool) ([]model.Servant, error)
}

// ServantStore defines the interface for servant database operations
type ServantStore interface {
	ServantReader
	GetServant(ctx context.Context, id string) (*model.Servant, error)
	InsertServant(ctx context.Context, servant *model.Servant) error
	UpdateServant(ctx context.Context, servant *model.Servant) error
	DeleteServant(ctx context.Context, id string) error
	CountServantAssignments(ctx context.Context, servantID string) (int, error)
}

// AssignmentReader defines read access to the roster
type AssignmentReader interface {
	GetAssignmentsByWeek(ctx context.Context, weekStart string) ([]model.Assignment, error)
}

// AssignmentStore defines the interface for roster database operations
type AssignmentStore interface {
	AssignmentReader
	GetAssignment(ctx context.Context, id string) (*model.Assignment, error)
	InsertAssignment(ctx context.Context, assignment *model.Assignment) error
	// UpdateAssignment persists area, day, function and position together; the lock flag is left alone
	UpdateAssignment(ctx context.Context, assignment *model.Assignment) error
	// SetAssignmentLocked writes only the lock flag
	SetAssignmentLocked(ctx context.Context, id string, locked bool) error
	DeleteAssignment(ctx context.Context, id string) error
}

// RosterReader is the read-only view used by the public roster.
// It exposes no mutation, so it can be backed by a read-only credential.
type RosterReader interface {
	ServantReader
	AssignmentReader
}

// Database defines the interface for all database operations
type Database interface {
	ServantStore
	AssignmentStore
}
