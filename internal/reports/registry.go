package reports

import (
	"errors"
	"io/fs"

	"go.uber.org/zap"

	"report-system/internal/entities"
	"report-system/pkg/reporter"
)

// Models - модели, на которые можно ссылаться из YAML-описаний отчётов.
func Models() map[string]any {
	return map[string]any{
		"contact":    entities.Contact{},
		"department": entities.Department{},
	}
}

// NewRegistry регистрирует встроенные отчёты и добавляет описанные в definitionsFile.
// Отсутствие файла не ошибка.
func NewRegistry(definitionsFile string, logger *zap.Logger) (*reporter.Registry, error) {
	reg := reporter.NewRegistry()
	if err := reg.Register("contacts", "Contacts", ContactReporter{}); err != nil {
		return nil, err
	}
	if err := reg.Register("departments", "Departments", DepartmentReporter{}); err != nil {
		return nil, err
	}

	if definitionsFile == "" {
		return reg, nil
	}
	names, err := reporter.LoadDefinitionsFile(definitionsFile, Models(), reg)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("Файл описаний отчётов не найден", zap.String("path", definitionsFile))
		return reg, nil
	}
	if err != nil {
		return nil, err
	}
	logger.Info("Загружены описания отчётов",
		zap.String("path", definitionsFile),
		zap.Strings("reports", names),
	)
	return reg, nil
}
