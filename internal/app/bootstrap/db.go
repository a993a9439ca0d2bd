// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/domainhub/internal/app/system/indexes"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// EnsureSchema creates the collection indexes. Index creation is idempotent,
// so this runs unconditionally on every startup.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("index creation failed", zap.Error(err))
		return err
	}
	logger.Info("indexes ensured")
	return nil
}
