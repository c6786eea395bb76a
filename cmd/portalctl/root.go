package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/srisoftware/portal-api/internal/models"
	"github.com/srisoftware/portal-api/internal/repository"
	"github.com/srisoftware/portal-api/migrations"
	"github.com/srisoftware/portal-api/pkg/config"
	"github.com/srisoftware/portal-api/pkg/database"
	"github.com/srisoftware/portal-api/pkg/logger"
	"github.com/srisoftware/portal-api/pkg/migrate"
)

type migrator interface {
	Up(ctx context.Context) (int, error)
	Down(ctx context.Context) error
	Steps(ctx context.Context, n int) (int, error)
	Status(ctx context.Context) ([]migrate.Status, error)
}

type adminStore interface {
	Upsert(ctx context.Context, admin *models.AdminUser) error
}

type passwordStore interface {
	UpdatePassword(ctx context.Context, studentID, passwordHash string) error
}

// env opens the resources a command needs. Each opener returns a release func.
type env struct {
	config        func() (*config.Config, error)
	openMigrator  func(ctx context.Context, cfg *config.Config, log *zap.Logger) (migrator, func(), error)
	openAdmins    func(cfg *config.Config) (adminStore, func(), error)
	openPasswords func(cfg *config.Config) (passwordStore, func(), error)
	logger        func(cfg *config.Config) (*zap.Logger, error)
}

func defaultEnv() *env {
	return &env{
		config: config.Load,
		logger: logger.New,
		openMigrator: func(ctx context.Context, cfg *config.Config, log *zap.Logger) (migrator, func(), error) {
			conn, err := migrate.Connect(ctx, cfg.Database.URL())
			if err != nil {
				return nil, nil, err
			}
			release := func() { _ = conn.Close(context.Background()) }
			m, err := migrate.New(conn, migrations.FS, cfg.Migrations.Table, log)
			if err != nil {
				release()
				return nil, nil, err
			}
			return m, release, nil
		},
		openAdmins: func(cfg *config.Config) (adminStore, func(), error) {
			db, err := database.NewPostgres(cfg.Database)
			if err != nil {
				return nil, nil, err
			}
			return repository.NewAdminRepository(db), func() { _ = db.Close() }, nil
		},
		openPasswords: func(cfg *config.Config) (passwordStore, func(), error) {
			db, err := database.NewPostgres(cfg.Database)
			if err != nil {
				return nil, nil, err
			}
			return repository.NewStudentRepository(db), func() { _ = db.Close() }, nil
		},
	}
}

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:           "portalctl",
		Short:         "Operate the training portal database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd(e), newAdminCmd(e), newStudentCmd(e))
	return root
}

func (e *env) load() (*config.Config, *zap.Logger, error) {
	cfg, err := e.config()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := e.logger(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}
