package server // import "github.com/bookdenapp/bookden/server"

import (
	"context"
	"fmt"
	"net/http"
	"time"

	v1 "github.com/bookdenapp/bookden/api/v1"
	"github.com/bookdenapp/bookden/config"
	"github.com/bookdenapp/bookden/log"
	"github.com/bookdenapp/bookden/middleware"
	"github.com/bookdenapp/bookden/store"
	"github.com/bookdenapp/bookden/version"
	"github.com/bookdenapp/bookden/worker"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// StartServer starts the HTTP server.
func StartServer(ctx context.Context, store *store.Store, pool worker.WorkPool) (*http.Server, error) {
	handler, err := setupHandler(store, pool)
	if err != nil {
		return nil, err
	}

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", config.Opts.Host, config.Opts.Port),
		Handler: handler,
	}

	startHTTPServer(server)

	return server, nil
}

func startHTTPServer(server *http.Server) {
	go func() {
		log.Info("Starting HTTP server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()
}

func setupHandler(store *store.Store, pool worker.WorkPool) (http.Handler, error) {
	router := mux.NewRouter()

	limiter := middleware.NewRateLimiter(
		config.Opts.RateLimitPerMinute,
		time.Minute,
		config.Opts.RateLimitBurst,
	)

	apiHandler := v1.NewHandler(store, pool)
	if err := v1.Server(router, apiHandler, limiter); err != nil {
		return nil, err
	}

	router.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(); err != nil {
			http.Error(w, "Database Connection Error", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}).Name("healthcheck")

	router.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(version.GetCurrentVersion()))
	}).Name("version")

	return router, nil
}
