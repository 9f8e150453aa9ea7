package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"report-system/internal/controllers"
	"report-system/internal/repositories"
	"report-system/internal/services"
	"report-system/pkg/config"
	"report-system/pkg/reporter"
)

// InitRouter собирает репозитории, сервисы и контроллеры отчётов.
// redisClient может быть nil, тогда лимит выгрузок отключён.
func InitRouter(
	e *echo.Echo,
	modelRepo repositories.ModelRepositoryInterface,
	redisClient *redis.Client,
	registry *reporter.Registry,
	logger *zap.Logger,
	cfg *config.Config,
) {
	logger.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")

	var cacheRepo repositories.CacheRepositoryInterface
	if redisClient != nil {
		cacheRepo = repositories.NewRedisCacheRepository(redisClient)
	}

	reportService := services.NewReportService(registry, modelRepo, cfg.Export.Delimiter, logger)
	exportLimiter := services.NewExportLimiter(cacheRepo, cfg.Export.RateLimit, cfg.Export.RateWindow, logger)
	reportController := controllers.NewReportController(reportService, exportLimiter, cfg.Export.Timeout, logger)

	runReportRouter(api, reportController)

	logger.Info("INIT_ROUTER: Создание маршрутов завершено")
}
