// Package router sets up HTTP routes for the UI server.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dbglance/dbglance/internal/ui/features/common"
	homeFeature "github.com/dbglance/dbglance/internal/ui/features/home"
	queryFeature "github.com/dbglance/dbglance/internal/ui/features/query"
	uploadFeature "github.com/dbglance/dbglance/internal/ui/features/upload"
	visualizeFeature "github.com/dbglance/dbglance/internal/ui/features/visualize"
	"github.com/dbglance/dbglance/internal/ui/resources"
)

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(router chi.Router, deps common.Deps) {
	// Static assets
	router.Handle("/static/*", resources.Handler())

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Feature routes
	homeFeature.SetupRoutes(router, deps)
	uploadFeature.SetupRoutes(router, deps)
	queryFeature.SetupRoutes(router, deps)
	visualizeFeature.SetupRoutes(router, deps)
}
