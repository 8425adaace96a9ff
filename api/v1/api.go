package v1 // import "github.com/bookdenapp/bookden/api/v1"

import (
	"net/http"

	"github.com/bookdenapp/bookden/log"
	"github.com/bookdenapp/bookden/middleware"
	"github.com/bookdenapp/bookden/recommend"
	"github.com/bookdenapp/bookden/store"
	"github.com/bookdenapp/bookden/worker"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	store        *store.Store
	engine       *recommend.Engine
	progressPool worker.WorkPool
	router       *mux.Router
}

func NewHandler(store *store.Store, pool worker.WorkPool) *Handler {
	return &Handler{
		store:        store,
		engine:       recommend.NewEngine(store),
		progressPool: pool,
	}
}

func Server(router *mux.Router, handler *Handler, limiter *middleware.KeyedRateLimiter) error {
	handler.router = router

	sr := router.PathPrefix("/api/v1").Subrouter()
	m := middleware.NewMiddleware(handler.store)
	sr.Use(m.HandleCORS)
	sr.Use(m.LoggingRequest)
	if limiter != nil {
		sr.Use(m.RateLimit(limiter))
	}

	sSetting, err := handler.store.GetOrUpsetSystemSecuritySetting()
	if err != nil {
		log.Error("Error getting security setting", zap.Error(err))
		return err
	}
	// Add authentication middleware
	sr.Use(NewAuthInterceptor(handler.store, sSetting.JWTSecret).AuthenticationInterceptor)
	sr.Methods(http.MethodOptions)

	sr.HandleFunc("/auth/register", handler.register).Methods(http.MethodPost)
	sr.HandleFunc("/auth/login", handler.login).Methods(http.MethodPost)

	sr.HandleFunc("/books/all", handler.listBooks).Methods(http.MethodGet)
	sr.HandleFunc("/books/add", handler.addBook).Methods(http.MethodPost)
	sr.HandleFunc("/books/personalized/{userId}", handler.personalized).Methods(http.MethodGet)
	sr.HandleFunc("/books/{id}", handler.getBook).Methods(http.MethodGet)
	sr.HandleFunc("/books/{id}", handler.updateBook).Methods(http.MethodPut)
	sr.HandleFunc("/books/{id}", handler.deleteBook).Methods(http.MethodDelete)
	sr.HandleFunc("/books/{id}/review", handler.addReview).Methods(http.MethodPost)
	sr.HandleFunc("/books/{id}/reviews", handler.listBookReviews).Methods(http.MethodGet)

	sr.HandleFunc("/admin/reviews/pending", handler.listPendingReviews).Methods(http.MethodGet)
	sr.HandleFunc("/admin/reviews/moderate", handler.moderateReview).Methods(http.MethodPatch)
	sr.HandleFunc("/admin/users", handler.listUsers).Methods(http.MethodGet)
	sr.HandleFunc("/admin/users/{id}/role", handler.updateUserRole).Methods(http.MethodPut)
	sr.HandleFunc("/admin/stats", handler.dashboardStats).Methods(http.MethodGet)

	sr.HandleFunc("/genres", handler.listGenres).Methods(http.MethodGet)
	sr.HandleFunc("/genres", handler.createGenre).Methods(http.MethodPost)
	sr.HandleFunc("/genres/{id}", handler.renameGenre).Methods(http.MethodPut)
	sr.HandleFunc("/genres/{id}", handler.deleteGenre).Methods(http.MethodDelete)

	sr.HandleFunc("/tutorials", handler.listTutorials).Methods(http.MethodGet)
	sr.HandleFunc("/tutorials/add", handler.addTutorial).Methods(http.MethodPost)
	sr.HandleFunc("/tutorials/{id}", handler.deleteTutorial).Methods(http.MethodDelete)

	sr.HandleFunc("/stats/update-goal", handler.updateGoal).Methods(http.MethodPatch)
	sr.HandleFunc("/stats/{email}", handler.getUserStats).Methods(http.MethodGet)

	// Shelf state is owned by the client, the server keeps a sync copy
	sr.HandleFunc("/shelf/{userId}", handler.listShelf).Methods(http.MethodGet)
	sr.HandleFunc("/shelf/{userId}/{bookId}", handler.upsertShelfEntry).Methods(http.MethodPost, http.MethodPut)
	sr.HandleFunc("/shelf/{userId}/{bookId}", handler.deleteShelfEntry).Methods(http.MethodDelete)
	sr.HandleFunc("/shelf/{userId}/{bookId}/advance", handler.advancePage).Methods(http.MethodPost)

	return nil
}
