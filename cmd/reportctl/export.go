package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"report-system/internal/dto"
	"report-system/internal/reports"
	"report-system/internal/services"
	"report-system/pkg/config"
	"report-system/pkg/types"
	"report-system/pkg/utils"
	"report-system/pkg/validation"
)

// NewExportCmd creates the export command.
func NewExportCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [report]",
		Short: "Выгрузить отчёт",
		Long: `Выгружает отчёт в stdout или в файл.

Examples:
  # Все контакты в CSV
  reportctl export contacts

  # Только имя и email, без заголовка, в файл
  reportctl export contacts --fields first_name,email --no-header -o contacts.csv

  # Отдел 1 в Excel
  reportctl export contacts --filter department_id=1 --format xlsx -o contacts.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExportCmd(cmd, args[0], cfg)
		},
	}

	cmd.Flags().StringP("format", "f", "csv", "Формат: csv, xlsx или md")
	cmd.Flags().String("fields", "", "Видимые поля через запятую, по умолчанию все объявленные")
	cmd.Flags().Bool("no-header", false, "Не выводить строку заголовка")
	cmd.Flags().StringP("output", "o", "", "Файл для записи, по умолчанию stdout")
	cmd.Flags().StringArray("filter", nil, "Фильтр колонка=значение, можно повторять")
	cmd.Flags().String("search", "", "Поиск по строковым колонкам")
	cmd.Flags().String("sort", "", "Сортировка через запятую, -колонка по убыванию")
	cmd.Flags().Int("limit", 0, "Максимум строк, 0 - без ограничения")
	cmd.Flags().Int("offset", 0, "Пропустить строк")
	cmd.Flags().String("delimiter", string(cfg.Export.Delimiter), "Разделитель CSV")

	return cmd
}

func exportQueryFromFlags(cmd *cobra.Command) (dto.ExportQueryDTO, error) {
	format, _ := cmd.Flags().GetString("format")
	fields, _ := cmd.Flags().GetString("fields")
	noHeader, _ := cmd.Flags().GetBool("no-header")
	filters, _ := cmd.Flags().GetStringArray("filter")
	search, _ := cmd.Flags().GetString("search")
	sort, _ := cmd.Flags().GetString("sort")
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")

	filter := types.Filter{
		Search: strings.TrimSpace(search),
		Sort:   utils.SplitList(sort),
		Filter: make(map[string]interface{}),
		Limit:  limit,
		Offset: offset,
	}
	for _, f := range filters {
		key, value, ok := strings.Cut(f, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return dto.ExportQueryDTO{}, fmt.Errorf("фильтр %q: ожидается колонка=значение", f)
		}
		items := utils.SplitList(value)
		if len(items) == 1 {
			filter.Filter[strings.TrimSpace(key)] = items[0]
		} else {
			filter.Filter[strings.TrimSpace(key)] = items
		}
	}

	return dto.ExportQueryDTO{
		Format: format,
		Fields: utils.SplitList(fields),
		Header: !noHeader,
		Filter: filter,
	}, nil
}

func runExportCmd(cmd *cobra.Command, name string, cfg *config.Config) error {
	logger := cmdLogger(cmd)
	defer logger.Sync() //nolint:errcheck

	query, err := exportQueryFromFlags(cmd)
	if err != nil {
		return err
	}
	if err := validation.New().Validate(&query); err != nil {
		return fmt.Errorf("неверные параметры выгрузки: %w", err)
	}

	delimiter, _ := cmd.Flags().GetString("delimiter")
	sep := []rune(delimiter)
	if delimiter == `\t` {
		sep = []rune{'\t'}
	}
	if len(sep) != 1 {
		return fmt.Errorf("разделитель должен быть одним символом, получено %q", delimiter)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Export.Timeout)
	defer cancel()

	definitions, _ := cmd.Flags().GetString("reports")
	registry, err := reports.NewRegistry(definitions, logger)
	if err != nil {
		return err
	}

	src, err := openSource(ctx, cmd, logger)
	if err != nil {
		return err
	}
	defer src.close()

	var w io.Writer = cmd.OutOrStdout()
	output, _ := cmd.Flags().GetString("output")
	if output != "" && output != "-" {
		f, err := os.Create(output) //nolint:gosec // путь указывает пользователь
		if err != nil {
			return fmt.Errorf("не удалось создать %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}

	svc := services.NewReportService(registry, src.modelRepo, sep[0], logger)
	if err := svc.Export(ctx, name, query, w); err != nil {
		return err
	}
	if output != "" && output != "-" {
		logger.Info("Отчёт записан", zap.String("report", name), zap.String("output", output))
	}
	return nil
}
