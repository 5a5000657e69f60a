package query

import (
	"github.com/go-chi/chi/v5"

	"github.com/dbglance/dbglance/internal/ui/features/common"
)

// SetupRoutes registers the query feature routes.
func SetupRoutes(router chi.Router, deps common.Deps) {
	handlers := NewHandlers(deps)

	router.Get("/query", handlers.QueryPage)
	router.Post("/query/run", handlers.RunQuerySSE)
}
