package server

import (
	"Staffline/internal/config"
	"Staffline/internal/handlers"
	"Staffline/internal/logging"
	"Staffline/internal/middlewares"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/The127/ioc"
	gh "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "Staffline/docs"
)

func Router(dp *ioc.DependencyProvider, serverConfig config.ServerConfig) *mux.Router {
	r := mux.NewRouter()

	r.Use(middlewares.RecoverMiddleware())
	r.Use(middlewares.LoggingMiddleware())
	r.Use(middlewares.ScopeMiddleware(dp))

	r.HandleFunc("/health", handlers.ApplicationHealth).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/metrics", handlers.PrometheusMetrics).Methods(http.MethodGet, http.MethodOptions)

	employeesRouter := r.PathPrefix(serverConfig.MountPath).Subrouter()

	employeesRouter.Use(gh.CORS(
		gh.AllowedOrigins(serverConfig.AllowedOrigins),
		gh.AllowedMethods([]string{"POST"}),
		gh.AllowedHeaders([]string{"Content-Type"}),
		gh.MaxAge(3600),
	))

	employeesRouter.HandleFunc("/register", handlers.RegisterEmployee).Methods(http.MethodPost, http.MethodOptions)
	employeesRouter.HandleFunc("/verify-code", handlers.VerifyEmployeeCode).Methods(http.MethodPost, http.MethodOptions)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	return r
}

func New(dp *ioc.DependencyProvider, serverConfig config.ServerConfig) *http.Server {
	return &http.Server{
		Handler: Router(dp, serverConfig),
		Addr:    fmt.Sprintf("%s:%d", serverConfig.Host, serverConfig.Port),
	}
}

// Serve runs srv until ctx is cancelled and then shuts it down, giving
// in-flight requests serverConfig.ShutdownGrace to finish.
func Serve(ctx context.Context, srv *http.Server, serverConfig config.ServerConfig) error {
	errs := make(chan error, 1)
	go func() {
		logging.Logger.Infof("running server at %s", srv.Addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return fmt.Errorf("error while running server: %w", err)

	case <-ctx.Done():
	}

	logging.Logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverConfig.ShutdownGrace)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	err = <-errs
	if !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("error while running server: %w", err)
	}

	return nil
}
