package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/learnpath/backend/internal/cache"
	"github.com/learnpath/backend/internal/database"
	"github.com/learnpath/backend/internal/repositories"
	"github.com/learnpath/backend/internal/services"
	"github.com/learnpath/backend/libs/auth/service"
	"github.com/learnpath/backend/libs/config"
	"github.com/learnpath/backend/libs/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds what the commands need from the environment
type app struct {
	loadConfig func() (*config.Config, error)
	connectDB  func(dsn string) (*sql.DB, error)
	out        io.Writer
}

func defaultApp() *app {
	return &app{
		loadConfig: config.Load,
		connectDB:  database.Connect,
		out:        os.Stdout,
	}
}

// open loads the configuration, initializes the logger and connects to the database
func (a *app) open() (*config.Config, *sql.DB, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(cfg.Logging.Level); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	db, err := a.connectDB(cfg.DSN())
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "learnctl",
		Short:         "Operator tools for the learning path backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(a.out)
	root.AddCommand(newMigrateCmd(a), newReconcileCmd(a), newTokenCmd(a))
	return root
}

func newMigrateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back schema migrations",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := a.open()
			if err != nil {
				return err
			}
			defer db.Close()
			defer logger.Sync()

			if err := database.MigrateUp(db); err != nil {
				return err
			}
			return printVersion(cmd.OutOrStdout(), db)
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 0 {
				return fmt.Errorf("--steps must not be negative")
			}
			_, db, err := a.open()
			if err != nil {
				return err
			}
			defer db.Close()
			defer logger.Sync()

			if err := database.MigrateDown(db, steps); err != nil {
				return err
			}
			return printVersion(cmd.OutOrStdout(), db)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back, 0 rolls back everything")

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the applied migration version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := a.open()
			if err != nil {
				return err
			}
			defer db.Close()
			return printVersion(cmd.OutOrStdout(), db)
		},
	}

	cmd.AddCommand(up, down, version)
	return cmd
}

func printVersion(out io.Writer, db *sql.DB) error {
	version, dirty, err := database.Version(db)
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	fmt.Fprintf(out, "schema version %d (dirty: %t)\n", version, dirty)
	return nil
}

func newReconcileCmd(a *app) *cobra.Command {
	var userID int
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Re-derive course completion from lesson responses",
		Long: "Recomputes the completion of every (user, course) pair that has lesson responses and\n" +
			"corrects the stored course responses that disagree. Running it twice changes nothing the second time.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var only *int
			if cmd.Flags().Changed("user") {
				if userID <= 0 {
					return fmt.Errorf("--user must be a positive user ID")
				}
				only = &userID
			}

			cfg, db, err := a.open()
			if err != nil {
				return err
			}
			defer db.Close()
			defer logger.Sync()

			rdb := redis.NewClient(&redis.Options{
				Addr:     cfg.RedisAddr(),
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			defer rdb.Close()

			lessonResponseRepo := repositories.NewLessonResponseRepository(db)
			svc := services.NewReconcileService(
				lessonResponseRepo,
				repositories.NewLessonRepository(db),
				lessonResponseRepo,
				repositories.NewCourseResponseRepository(db),
				cache.New(cfg.Cache.Driver, rdb, cfg.Cache.TTL),
				logger.Logger,
			)

			report, err := svc.Reconcile(cmd.Context(), only)
			if err != nil {
				return err
			}
			logger.Logger.Info("Reconciliation finished", zap.Int("updated", report.Updated))

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}
	cmd.Flags().IntVar(&userID, "user", 0, "only reconcile this user")
	return cmd
}

// newTokenCmd issues access tokens for local testing against the API
func newTokenCmd(a *app) *cobra.Command {
	var (
		userID int
		role   int
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token signed with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID <= 0 {
				return fmt.Errorf("--user must be a positive user ID")
			}
			if role < service.RoleStudent || role > service.RoleAdmin {
				return fmt.Errorf("--role must be between %d and %d", service.RoleStudent, service.RoleAdmin)
			}
			cfg, err := a.loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			token, err := service.NewTokenValidator(cfg.JWT.Secret).GenerateAccessToken(userID, role, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().IntVar(&userID, "user", 0, "user ID carried by the token")
	cmd.Flags().IntVar(&role, "role", service.RoleStudent, "role carried by the token (1 student, 2 tutor, 3 admin)")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
