package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"sharayeh/internal/infrastructure/config"
	"sharayeh/internal/infrastructure/database"
	"sharayeh/internal/infrastructure/migration"
	"sharayeh/internal/shared/logger"
)

var (
	env   string
	steps int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, rolling back, and checking status.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations to bring the database schema up to date.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version and status of the database.`,
		RunE:  runStatus,
	}
}

func initEnv() (*migration.Manager, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, env); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	scriptsPath, err := filepath.Abs("./internal/infrastructure/migration/scripts")
	if err != nil {
		return nil, fmt.Errorf("failed to resolve scripts path: %w", err)
	}

	return migration.NewManager(scriptsPath), nil
}

func runUp(cmd *cobra.Command, args []string) error {
	manager, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	if err := manager.Up(database.Get()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, err := manager.Version(database.Get())
	if err != nil {
		logger.Warn("failed to read migration version", "error", err)
		return nil
	}

	logger.Info("database is up to date", "version", version)
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	manager, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	if err := manager.Down(database.Get(), steps); err != nil {
		return fmt.Errorf("failed to rollback migrations: %w", err)
	}

	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	manager, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	return manager.Status(database.Get())
}
