package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/escalas/pkg/core/catalog"
	"github.com/jakechorley/escalas/pkg/core/model"
	"github.com/jakechorley/escalas/pkg/core/roster"
	"github.com/jakechorley/escalas/pkg/db"
)

// CreateAssignmentInput describes a new placement on the roster
type CreateAssignmentInput struct {
	WeekStart string
	Area      string
	Day       model.Day
	Function  string
	ServantID string
	CreatedBy string
}

// MutationResult is returned by every roster mutation. Week is the full
// snapshot of the week re-fetched after the write, so later validations and
// renders observe the stored state.
type MutationResult struct {
	Assignment *model.Assignment // nil after a delete
	Week       []model.Assignment
	Changed    bool // false when the operation was a no-op
}

// CreateAssignment validates a new placement against the current week and inserts it.
// Rejections are returned unchanged and nothing is written.
func CreateAssignment(ctx context.Context, database db.Database, logger *zap.Logger, input CreateAssignmentInput) (*MutationResult, error) {
	if _, err := roster.ParseWeekStart(input.WeekStart); err != nil {
		return nil, err
	}

	logger.Debug("Creating assignment",
		zap.String("week_start", input.WeekStart),
		zap.String("area", input.Area),
		zap.String("day", string(input.Day)),
		zap.String("function", input.Function),
		zap.String("servant_id", input.ServantID))

	snapshot, err := database.GetAssignmentsByWeek(ctx, input.WeekStart)
	if err != nil {
		return nil, roster.StorageError("fetch week assignments", err)
	}

	proposal := roster.Proposal{
		WeekStart: input.WeekStart,
		Day:       input.Day,
		Area:      input.Area,
		Function:  input.Function,
		ServantID: input.ServantID,
	}
	if err := roster.Validate(proposal, snapshot); err != nil {
		logger.Info("Assignment rejected", zap.String("reason", roster.Reason(err)), zap.Error(err))
		return nil, err
	}

	if err := requireActiveServant(ctx, database, input.ServantID); err != nil {
		logger.Info("Assignment rejected", zap.String("reason", roster.Reason(err)), zap.Error(err))
		return nil, err
	}

	assignment := &model.Assignment{
		ID:        uuid.New().String(),
		WeekStart: input.WeekStart,
		Area:      input.Area,
		Day:       input.Day,
		Function:  input.Function,
		ServantID: input.ServantID,
		Position:  roster.NextPosition(snapshot),
		CreatedBy: input.CreatedBy,
	}

	if err := database.InsertAssignment(ctx, assignment); err != nil {
		if errors.Is(err, db.ErrDuplicateDayAssignment) {
			return nil, fmt.Errorf("%w: servant %s on %s %s",
				roster.ErrServantAlreadyScheduledThisDay, input.ServantID, input.WeekStart, input.Day)
		}
		return nil, roster.StorageError("insert assignment", err)
	}

	logger.Info("Assignment created",
		zap.String("assignment_id", assignment.ID),
		zap.String("week_start", assignment.WeekStart),
		zap.String("slot", catalog.Slot{Area: assignment.Area, Day: assignment.Day, Function: assignment.Function}.String()))

	return concludeMutation(ctx, database, assignment, true)
}

// MoveAssignment moves an assignment to another area/day/function slot.
//
// Moving to the slot the assignment already occupies is a no-op. Locked
// assignments cannot be moved. The target is validated with the assignment's
// own current placement excluded from the per-day conflict check, and the
// area, day and function are written together.
func MoveAssignment(ctx context.Context, database db.AssignmentStore, logger *zap.Logger, assignmentID string, target catalog.Slot) (*MutationResult, error) {
	assignment, err := getAssignment(ctx, database, assignmentID)
	if err != nil {
		return nil, err
	}

	logger.Debug("Moving assignment",
		zap.String("assignment_id", assignmentID),
		zap.String("from", catalog.Slot{Area: assignment.Area, Day: assignment.Day, Function: assignment.Function}.String()),
		zap.String("to", target.String()))

	if assignment.SameSlot(target.Area, target.Day, target.Function) {
		logger.Debug("Move target equals current slot, nothing to do", zap.String("assignment_id", assignmentID))
		return concludeMutation(ctx, database, assignment, false)
	}

	if assignment.Locked {
		logger.Info("Move rejected, assignment is locked", zap.String("assignment_id", assignmentID))
		return nil, fmt.Errorf("%w: %s", roster.ErrAssignmentLocked, assignmentID)
	}

	snapshot, err := database.GetAssignmentsByWeek(ctx, assignment.WeekStart)
	if err != nil {
		return nil, roster.StorageError("fetch week assignments", err)
	}

	proposal := roster.Proposal{
		AssignmentID: assignment.ID,
		WeekStart:    assignment.WeekStart,
		Day:          target.Day,
		Area:         target.Area,
		Function:     target.Function,
		ServantID:    assignment.ServantID,
	}
	if err := roster.Validate(proposal, snapshot); err != nil {
		logger.Info("Move rejected", zap.String("reason", roster.Reason(err)), zap.Error(err))
		return nil, err
	}

	moved := *assignment
	moved.Area = target.Area
	moved.Day = target.Day
	moved.Function = target.Function
	moved.Position = roster.NextPosition(snapshot)

	if err := database.UpdateAssignment(ctx, &moved); err != nil {
		if errors.Is(err, db.ErrDuplicateDayAssignment) {
			return nil, fmt.Errorf("%w: servant %s on %s %s",
				roster.ErrServantAlreadyScheduledThisDay, moved.ServantID, moved.WeekStart, moved.Day)
		}
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", roster.ErrAssignmentNotFound, assignmentID)
		}
		return nil, roster.StorageError("update assignment", err)
	}

	logger.Info("Assignment moved", zap.String("assignment_id", moved.ID), zap.String("slot", target.String()))

	return concludeMutation(ctx, database, &moved, true)
}

// LockAssignment freezes an assignment so it cannot be moved or deleted
func LockAssignment(ctx context.Context, database db.AssignmentStore, logger *zap.Logger, assignmentID string) (*MutationResult, error) {
	assignment, err := getAssignment(ctx, database, assignmentID)
	if err != nil {
		return nil, err
	}
	return setLocked(ctx, database, logger, assignment, true)
}

// UnlockAssignment releases a locked assignment
func UnlockAssignment(ctx context.Context, database db.AssignmentStore, logger *zap.Logger, assignmentID string) (*MutationResult, error) {
	assignment, err := getAssignment(ctx, database, assignmentID)
	if err != nil {
		return nil, err
	}
	return setLocked(ctx, database, logger, assignment, false)
}

// ToggleAssignmentLock flips the lock state of an assignment
func ToggleAssignmentLock(ctx context.Context, database db.AssignmentStore, logger *zap.Logger, assignmentID string) (*MutationResult, error) {
	assignment, err := getAssignment(ctx, database, assignmentID)
	if err != nil {
		return nil, err
	}
	return setLocked(ctx, database, logger, assignment, !assignment.Locked)
}

// setLocked writes the lock flag unconditionally; no validation is involved.
// Only the flag is written, so a move committed since the read is kept.
func setLocked(ctx context.Context, database db.AssignmentStore, logger *zap.Logger, assignment *model.Assignment, locked bool) (*MutationResult, error) {
	changed := assignment.Locked != locked
	assignment.Locked = locked
	if err := database.SetAssignmentLocked(ctx, assignment.ID, locked); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", roster.ErrAssignmentNotFound, assignment.ID)
		}
		return nil, roster.StorageError("update assignment lock", err)
	}

	logger.Info("Assignment lock set", zap.String("assignment_id", assignment.ID), zap.Bool("locked", locked))

	result, err := concludeMutation(ctx, database, assignment, changed)
	if err != nil {
		return nil, err
	}
	// Report the stored slot, which may differ from the earlier read
	for i := range result.Week {
		if result.Week[i].ID == assignment.ID {
			current := result.Week[i]
			result.Assignment = &current
			break
		}
	}
	return result, nil
}

// DeleteAssignment removes an unlocked assignment from the roster
func DeleteAssignment(ctx context.Context, database db.AssignmentStore, logger *zap.Logger, assignmentID string) (*MutationResult, error) {
	assignment, err := getAssignment(ctx, database, assignmentID)
	if err != nil {
		return nil, err
	}

	if assignment.Locked {
		logger.Info("Delete rejected, assignment is locked", zap.String("assignment_id", assignmentID))
		return nil, fmt.Errorf("%w: %s", roster.ErrAssignmentLocked, assignmentID)
	}

	if err := database.DeleteAssignment(ctx, assignmentID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", roster.ErrAssignmentNotFound, assignmentID)
		}
		return nil, roster.StorageError("delete assignment", err)
	}

	logger.Info("Assignment deleted",
		zap.String("assignment_id", assignmentID),
		zap.String("week_start", assignment.WeekStart))

	result, err := concludeMutation(ctx, database, assignment, true)
	if err != nil {
		return nil, err
	}
	result.Assignment = nil
	return result, nil
}

func getAssignment(ctx context.Context, database db.AssignmentStore, assignmentID string) (*model.Assignment, error) {
	assignment, err := database.GetAssignment(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", roster.ErrAssignmentNotFound, assignmentID)
		}
		return nil, roster.StorageError("fetch assignment", err)
	}
	return assignment, nil
}

// concludeMutation re-fetches the whole week after a write
func concludeMutation(ctx context.Context, database db.AssignmentReader, assignment *model.Assignment, changed bool) (*MutationResult, error) {
	week, err := database.GetAssignmentsByWeek(ctx, assignment.WeekStart)
	if err != nil {
		return nil, roster.StorageError("re-fetch week assignments", err)
	}

	return &MutationResult{
		Assignment: assignment,
		Week:       week,
		Changed:    changed,
	}, nil
}

func requireActiveServant(ctx context.Context, store db.ServantStore, servantID string) error {
	servant, err := store.GetServant(ctx, servantID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: %s", roster.ErrServantInactiveOrMissing, servantID)
		}
		return roster.StorageError("fetch servant", err)
	}
	if !servant.IsActive() {
		return fmt.Errorf("%w: %s", roster.ErrServantInactiveOrMissing, servantID)
	}
	return nil
}
