// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	assignmentsfeature "github.com/dalemusser/domainhub/internal/app/features/assignments"
	domainsfeature "github.com/dalemusser/domainhub/internal/app/features/domains"
	healthfeature "github.com/dalemusser/domainhub/internal/app/features/health"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. DomainHub mounts three feature routers:
// the health check, the domain hierarchy, and the contact assignments.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Domain hierarchy: tree, picker, pricing, lifecycle
	domainsHandler := domainsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/domains", domainsfeature.Routes(domainsHandler))

	// Contact↔domain assignments and their status lifecycle
	assignmentsHandler := assignmentsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/assignments", assignmentsfeature.Routes(assignmentsHandler))

	return r, nil
}
