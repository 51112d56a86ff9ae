package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/escalas/internal/config"
	"github.com/jakechorley/escalas/pkg/clients/sheetsclient"
	"github.com/jakechorley/escalas/pkg/db"
	"github.com/jakechorley/escalas/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Postgres *postgres.DB
	Database db.Database
	// PublicReader serves the public roster; it may use a read-only credential
	PublicReader db.RosterReader
	Logger       *zap.Logger
	Ctx          context.Context
}

// SheetsClient builds a Google Sheets client from the configured service account.
// It is created on demand since only publishing and imports need it.
func (app *AppContext) SheetsClient() (*sheetsclient.Client, error) {
	if app.Cfg.GoogleCredentialsFile == "" {
		return nil, fmt.Errorf("googleCredentialsFile is not configured")
	}

	app.Logger.Debug("Initializing sheets client")
	client, err := sheetsclient.NewClient(app.Ctx, app.Cfg.GoogleCredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	return client, nil
}
