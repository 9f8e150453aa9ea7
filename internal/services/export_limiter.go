package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"report-system/internal/repositories"
	apperrors "report-system/pkg/errors"
)

type ExportLimiterInterface interface {
	Allow(ctx context.Context, client string) error
}

// ExportLimiter - фиксированное окно выгрузок на клиента поверх кеша.
// Без кеша или при limit <= 0 ограничения нет.
type ExportLimiter struct {
	cacheRepo repositories.CacheRepositoryInterface
	limit     int
	window    time.Duration
	logger    *zap.Logger
}

func NewExportLimiter(cacheRepo repositories.CacheRepositoryInterface, limit int, window time.Duration, logger *zap.Logger) ExportLimiterInterface {
	return &ExportLimiter{cacheRepo: cacheRepo, limit: limit, window: window, logger: logger}
}

func (l *ExportLimiter) Allow(ctx context.Context, client string) error {
	if l.cacheRepo == nil || l.limit <= 0 {
		return nil
	}
	key := fmt.Sprintf("export_limit:%s", client)

	count, err := l.cacheRepo.Incr(ctx, key)
	if err != nil {
		// кеш недоступен - выгрузку не блокируем
		l.logger.Warn("Не удалось обновить счётчик выгрузок", zap.String("key", key), zap.Error(err))
		return nil
	}
	if count == 1 {
		if _, err := l.cacheRepo.Expire(ctx, key, l.window); err != nil {
			l.logger.Warn("Не удалось задать TTL счётчика выгрузок", zap.String("key", key), zap.Error(err))
		}
	}
	if count > int64(l.limit) {
		l.logger.Warn("Превышен лимит выгрузок", zap.String("client", client), zap.Int64("count", count))
		return apperrors.ErrTooManyRequests
	}
	return nil
}
