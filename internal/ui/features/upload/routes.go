package upload

import (
	"github.com/go-chi/chi/v5"

	"github.com/dbglance/dbglance/internal/ui/features/common"
)

// SetupRoutes registers the upload feature routes.
func SetupRoutes(router chi.Router, deps common.Deps) {
	handlers := NewHandlers(deps)

	router.Get("/upload", handlers.UploadPage)
	router.Post("/upload", handlers.Upload)
}
