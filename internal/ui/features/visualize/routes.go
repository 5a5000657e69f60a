package visualize

import (
	"github.com/go-chi/chi/v5"

	"github.com/dbglance/dbglance/internal/ui/features/common"
)

// SetupRoutes registers the visualization feature routes.
func SetupRoutes(router chi.Router, deps common.Deps) {
	handlers := NewHandlers(deps)

	router.Get("/visualize", handlers.VisualizePage)
	router.Post("/visualize", handlers.BuildChart)
	router.Get("/visualize/chart", handlers.ChartFrame)
}
