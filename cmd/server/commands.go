package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/diewo77/gf-server/internal/config"
	"github.com/diewo77/gf-server/internal/db"
	"github.com/diewo77/gf-server/internal/logging"
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const envFileFlag = "env-file"

const shutdownTimeout = 10 * time.Second

func newEnvFlags() map[string]cobraflags.Flag {
	return map[string]cobraflags.Flag{
		envFileFlag: &cobraflags.StringFlag{
			Name:  envFileFlag,
			Value: "",
			Usage: "Path to a .env file (defaults to ./.env when present)",
		},
	}
}

func newRootCommand() *cobra.Command {
	flags := newEnvFlags()
	root := &cobra.Command{
		Use:          "gf-server",
		Short:        "Supplier line intake API and mobile browsing UI",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), flags[envFileFlag].GetString())
		},
	}
	cobraflags.RegisterMap(root, flags)
	root.AddCommand(newServeCommand(), newMigrateCommand(), newSeedCommand())
	return root
}

func newServeCommand() *cobra.Command {
	flags := newEnvFlags()
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Migrate, seed and serve HTTP (default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), flags[envFileFlag].GetString())
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func newMigrateCommand() *cobra.Command {
	flags := newEnvFlags()
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := bootstrap(flags[envFileFlag].GetString())
			if err != nil {
				return err
			}
			defer env.close()
			if err := db.Migrate(env.db, env.target, env.cfg.Migrations); err != nil {
				return err
			}
			env.log.Info("migrations completed", zap.Bool("sql", env.cfg.Migrations))
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func newSeedCommand() *cobra.Command {
	flags := newEnvFlags()
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the configured tenant if missing and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := bootstrap(flags[envFileFlag].GetString())
			if err != nil {
				return err
			}
			defer env.close()
			return seed(env)
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

// environment is what every command needs: configuration, a logger and an
// open database.
type environment struct {
	cfg    *config.Config
	log    *zap.Logger
	db     *gorm.DB
	target db.Target
}

func bootstrap(envFile string) (*environment, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(logging.ForEnv(cfg.Env, cfg.LogLevel))
	if err != nil {
		return nil, err
	}
	target, err := db.ResolveTarget(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		return nil, err
	}
	log.Info("connecting to database", zap.String("driver", string(target.Driver)), zap.String("dsn", target.Masked()))
	gdb, err := db.Open(target, cfg.DBDebug)
	if err != nil {
		log.Error("database unavailable", zap.Error(err))
		return nil, err
	}
	return &environment{cfg: cfg, log: log, db: gdb, target: target}, nil
}

func (e *environment) close() {
	if sqlDB, err := e.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = e.log.Sync()
}

func seed(env *environment) error {
	created, err := db.Seed(env.db, db.SeedClient{
		ID:     env.cfg.SeedClientID,
		Name:   env.cfg.SeedClientName,
		APIKey: env.cfg.SeedAPIKey,
	})
	if err != nil {
		return err
	}
	env.log.Info("seed client", zap.String("client_id", env.cfg.SeedClientID), zap.Bool("created", created))
	return nil
}

// runServe prepares the schema once, then serves until SIGINT/SIGTERM.
func runServe(ctx context.Context, envFile string) error {
	env, err := bootstrap(envFile)
	if err != nil {
		return err
	}
	defer env.close()

	if err := db.Migrate(env.db, env.target, env.cfg.Migrations); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := seed(env); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         env.cfg.Addr(),
		Handler:      NewApp(env.db, env.cfg, env.log),
		ReadTimeout:  env.cfg.ReadTimeout,
		WriteTimeout: env.cfg.WriteTimeout,
		IdleTimeout:  env.cfg.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		env.log.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", env.cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	env.log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	env.log.Info("server stopped gracefully")
	return nil
}
