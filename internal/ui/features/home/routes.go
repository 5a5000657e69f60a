package home

import (
	"github.com/go-chi/chi/v5"

	"github.com/dbglance/dbglance/internal/ui/features/common"
)

// SetupRoutes registers the home feature routes.
func SetupRoutes(router chi.Router, deps common.Deps) {
	handlers := NewHandlers(deps)

	router.Get("/", handlers.HomePage)
	router.Get("/tables/{name}", handlers.TableDetailSSE)
}
