package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/escalas/pkg/core/model"
	"github.com/jakechorley/escalas/pkg/core/roster"
	"github.com/jakechorley/escalas/pkg/db"
)

var validate = validator.New()

// ServantInput holds the editable fields of a servant
type ServantInput struct {
	Name  string `validate:"required,max=120"`
	Phone string `validate:"omitempty,max=40"`
	Email string `validate:"omitempty,email"`
}

func (in ServantInput) normalized() ServantInput {
	return ServantInput{
		Name:  strings.TrimSpace(in.Name),
		Phone: strings.TrimSpace(in.Phone),
		Email: strings.TrimSpace(in.Email),
	}
}

// RemovalOutcome reports what RemoveServant did
type RemovalOutcome string

const (
	RemovalDeleted     RemovalOutcome = "deleted"
	RemovalDeactivated RemovalOutcome = "deactivated"
)

// ListServants returns the servant directory ordered by name
func ListServants(ctx context.Context, store db.ServantReader, logger *zap.Logger, activeOnly bool) ([]model.Servant, error) {
	servants, err := store.GetServants(ctx, activeOnly)
	if err != nil {
		return nil, roster.StorageError("fetch servants", err)
	}
	logger.Debug("Fetched servants", zap.Int("count", len(servants)), zap.Bool("active_only", activeOnly))
	return servants, nil
}

// CreateServant validates the input and adds an active servant to the directory
func CreateServant(ctx context.Context, store db.ServantStore, logger *zap.Logger, input ServantInput) (*model.Servant, error) {
	input = input.normalized()
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %w", roster.ErrInvalidServantInput, err)
	}

	servant := &model.Servant{
		ID:     uuid.New().String(),
		Name:   input.Name,
		Phone:  input.Phone,
		Email:  input.Email,
		Status: model.StatusActive,
	}

	if err := store.InsertServant(ctx, servant); err != nil {
		return nil, roster.StorageError("insert servant", err)
	}

	logger.Info("Servant created", zap.String("servant_id", servant.ID), zap.String("name", servant.Name))
	return servant, nil
}

// UpdateServant overwrites a servant's name and contact details, keeping its status
func UpdateServant(ctx context.Context, store db.ServantStore, logger *zap.Logger, servantID string, input ServantInput) (*model.Servant, error) {
	input = input.normalized()
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %w", roster.ErrInvalidServantInput, err)
	}

	servant, err := getServant(ctx, store, servantID)
	if err != nil {
		return nil, err
	}

	servant.Name = input.Name
	servant.Phone = input.Phone
	servant.Email = input.Email
	if err := saveServant(ctx, store, servant); err != nil {
		return nil, err
	}

	logger.Info("Servant updated", zap.String("servant_id", servant.ID))
	return servant, nil
}

// DeactivateServant marks a servant inactive. The id is kept so existing
// assignments still resolve to it.
func DeactivateServant(ctx context.Context, store db.ServantStore, logger *zap.Logger, servantID string) (*model.Servant, error) {
	return setServantStatus(ctx, store, logger, servantID, model.StatusInactive)
}

// ActivateServant makes an inactive servant available for new assignments again
func ActivateServant(ctx context.Context, store db.ServantStore, logger *zap.Logger, servantID string) (*model.Servant, error) {
	return setServantStatus(ctx, store, logger, servantID, model.StatusActive)
}

func setServantStatus(ctx context.Context, store db.ServantStore, logger *zap.Logger, servantID string, status model.ServantStatus) (*model.Servant, error) {
	servant, err := getServant(ctx, store, servantID)
	if err != nil {
		return nil, err
	}

	servant.Status = status
	if err := saveServant(ctx, store, servant); err != nil {
		return nil, err
	}

	logger.Info("Servant status changed", zap.String("servant_id", servantID), zap.String("status", string(status)))
	return servant, nil
}

// IsServantReferenced reports whether any assignment, in any week, references the servant
func IsServantReferenced(ctx context.Context, store db.ServantStore, servantID string) (bool, error) {
	count, err := store.CountServantAssignments(ctx, servantID)
	if err != nil {
		return false, roster.StorageError("count servant assignments", err)
	}
	return count > 0, nil
}

// RemoveServant deletes a servant that was never assigned, and deactivates
// one that is referenced by any assignment
func RemoveServant(ctx context.Context, store db.ServantStore, logger *zap.Logger, servantID string) (RemovalOutcome, error) {
	if _, err := getServant(ctx, store, servantID); err != nil {
		return "", err
	}

	referenced, err := IsServantReferenced(ctx, store, servantID)
	if err != nil {
		return "", err
	}

	if referenced {
		logger.Debug("Servant is referenced by assignments, deactivating instead of deleting", zap.String("servant_id", servantID))
		if _, err := DeactivateServant(ctx, store, logger, servantID); err != nil {
			return "", err
		}
		return RemovalDeactivated, nil
	}

	if err := store.DeleteServant(ctx, servantID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", roster.ErrServantNotFound, servantID)
		}
		return "", roster.StorageError("delete servant", err)
	}

	logger.Info("Servant deleted", zap.String("servant_id", servantID))
	return RemovalDeleted, nil
}

func getServant(ctx context.Context, store db.ServantStore, servantID string) (*model.Servant, error) {
	servant, err := store.GetServant(ctx, servantID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", roster.ErrServantNotFound, servantID)
		}
		return nil, roster.StorageError("fetch servant", err)
	}
	return servant, nil
}

func saveServant(ctx context.Context, store db.ServantStore, servant *model.Servant) error {
	if err := store.UpdateServant(ctx, servant); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: %s", roster.ErrServantNotFound, servant.ID)
		}
		return roster.StorageError("update servant", err)
	}
	return nil
}

// ServantSource lists servants kept outside the directory, such as a spreadsheet
type ServantSource interface {
	ListServants(ctx context.Context) ([]ServantInput, error)
}

// ImportResult summarises an ImportServants run
type ImportResult struct {
	Created []model.Servant
	Skipped []string          // Names already in the directory
	Invalid map[string]string // Name to validation message
}

// ImportServants adds every servant of the source whose name is not yet in
// the directory. Names are compared case-insensitively against active and
// inactive servants, so an import never revives or duplicates anyone.
// Invalid rows are reported and skipped; a storage failure stops the import.
func ImportServants(ctx context.Context, store db.ServantStore, source ServantSource, logger *zap.Logger) (*ImportResult, error) {
	incoming, err := source.ListServants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list servants to import: %w", err)
	}

	existing, err := store.GetServants(ctx, false)
	if err != nil {
		return nil, roster.StorageError("fetch servants", err)
	}

	known := make(map[string]bool, len(existing))
	for _, s := range existing {
		known[strings.ToLower(s.Name)] = true
	}

	result := &ImportResult{Invalid: make(map[string]string)}
	for _, input := range incoming {
		key := strings.ToLower(input.normalized().Name)
		if known[key] {
			result.Skipped = append(result.Skipped, input.Name)
			continue
		}

		servant, err := CreateServant(ctx, store, logger, input)
		if err != nil {
			if errors.Is(err, roster.ErrInvalidServantInput) {
				result.Invalid[input.Name] = err.Error()
				continue
			}
			return result, err
		}

		known[key] = true
		result.Created = append(result.Created, *servant)
	}

	logger.Info("Servant import finished",
		zap.Int("created", len(result.Created)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("invalid", len(result.Invalid)))

	return result, nil
}
