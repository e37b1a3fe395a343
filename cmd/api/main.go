// @title       Staffline API
// @description Employee registration and email verification.
// @BasePath    /
package main

import (
	"Staffline/docs"
	"Staffline/internal/config"
	"Staffline/internal/database"
	"Staffline/internal/logging"
	"Staffline/internal/metrics"
	"Staffline/internal/retry"
	"Staffline/internal/server"
	"Staffline/internal/setup"
	"Staffline/utils"
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/The127/ioc"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func main() {
	var configFile string
	var environment string

	root := &cobra.Command{
		Use:           "staffline",
		Short:         "Employee registration and email verification service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.SetEnvironment(environment)
			config.Init(configFile)
			logging.Init()
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "path to a yaml config file")
	root.PersistentFlags().StringVar(&environment, "environment", envOr("STAFFLINE_ENVIRONMENT", "production"), "development or production")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply postgres migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrate(cmd.Context(), config.C.Database.Postgres)
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := root.ExecuteContext(ctx)
	logging.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(ctx context.Context) error {
	configureSwaggerFromConfig()
	metrics.Init()

	if config.C.Database.Mode == config.DatabaseModePostgres {
		err := migrate(ctx, config.C.Database.Postgres)
		if err != nil {
			return err
		}
	}

	dc := ioc.NewDependencyCollection()

	err := setup.Services(dc, config.C)
	if err != nil {
		return fmt.Errorf("setting up services: %w", err)
	}

	err = setup.Repositories(dc, config.C.Database)
	if err != nil {
		return fmt.Errorf("setting up repositories: %w", err)
	}

	setup.Mediator(dc)
	dp := dc.BuildProvider()
	defer utils.PanicOnError(dp.Close, "failed to close dependencies")

	srv := server.New(dp, config.C.Server)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Serve(ctx, srv, config.C.Server)
	})

	return g.Wait()
}

func migrate(ctx context.Context, pc config.PostgresConfig) error {
	return retry.FiveTimes(ctx, func() error {
		db, err := database.ConnectToDatabase(pc)
		if err != nil {
			return err
		}
		defer func(db *sql.DB) {
			_ = db.Close()
		}(db)

		return database.Migrate(ctx, db)
	}, "failed to migrate database")
}

func configureSwaggerFromConfig() {
	if u, err := url.Parse(config.C.Server.ExternalUrl); err == nil {
		if u.Host != "" {
			docs.SwaggerInfo.Host = u.Host
		}

		if u.Scheme != "" {
			docs.SwaggerInfo.Schemes = []string{u.Scheme}
		}
	}

	if docs.SwaggerInfo.Host == "" {
		docs.SwaggerInfo.Host = fmt.Sprintf("%s:%d", config.C.Server.Host, config.C.Server.Port)
	}

	if len(docs.SwaggerInfo.Schemes) == 0 {
		docs.SwaggerInfo.Schemes = []string{"http"}
	}

	docs.SwaggerInfo.BasePath = "/"
}

func envOr(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
