package services

import (
	"context"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"report-system/internal/dto"
	"report-system/internal/repositories"
	"report-system/pkg/reporter"
	"report-system/pkg/utils"
)

type ReportServiceInterface interface {
	ListReports() ([]dto.ReportInfoDTO, error)
	Prepare(ctx context.Context, name string, query dto.ExportQueryDTO) (*PreparedExport, error)
	Export(ctx context.Context, name string, query dto.ExportQueryDTO, w io.Writer) error
}

// PreparedExport - собранный отчёт и ленивая выборка под него. Данные читаются
// из базы только в Write.
type PreparedExport struct {
	Entry    reporter.Entry
	Reporter *reporter.Reporter
	QuerySet reporter.QuerySet
	Format   reporter.Format
	Header   bool

	delimiter rune
}

func (p *PreparedExport) Delimiter() rune { return p.delimiter }

// FileName - имя файла для Content-Disposition: contacts_2025-03-01.csv
func (p *PreparedExport) FileName(now time.Time) string {
	base := utils.Slug(p.Entry.Name)
	if base == "" {
		base = "report"
	}
	return base + "_" + now.Format("2006-01-02") + p.Format.Extension()
}

func (p *PreparedExport) Write(ctx context.Context, w io.Writer) error {
	return p.Reporter.Render(ctx, p.Format, w, p.QuerySet,
		reporter.WithHeader(p.Header),
		reporter.WithDelimiter(p.delimiter),
		reporter.WithTitle(p.Entry.Title),
		reporter.WithSheetName(sheetName(p.Entry.Title)),
	)
}

// Excel ограничивает имя листа 31 символом и запрещает : \ / ? * [ ]
func sheetName(title string) string {
	if title == "" || utf8.RuneCountInString(title) > 31 {
		return "Sheet1"
	}
	for _, r := range title {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return "Sheet1"
		}
	}
	return title
}

type reportService struct {
	registry  *reporter.Registry
	modelRepo repositories.ModelRepositoryInterface
	delimiter rune
	logger    *zap.Logger
}

func NewReportService(
	registry *reporter.Registry,
	modelRepo repositories.ModelRepositoryInterface,
	delimiter rune,
	logger *zap.Logger,
) ReportServiceInterface {
	if delimiter == 0 {
		delimiter = ','
	}
	return &reportService{
		registry:  registry,
		modelRepo: modelRepo,
		delimiter: delimiter,
		logger:    logger,
	}
}

func (s *reportService) ListReports() ([]dto.ReportInfoDTO, error) {
	entries := s.registry.Entries()
	out := make([]dto.ReportInfoDTO, 0, len(entries))
	for _, e := range entries {
		r, err := reporter.New(e.Declarer)
		if err != nil {
			return nil, fmt.Errorf("отчёт %q: %w", e.Name, err)
		}
		out = append(out, dto.ReportInfoDTO{
			Name:    e.Name,
			Title:   e.Title,
			Fields:  r.Fields(),
			Headers: r.Header(),
		})
	}
	return out, nil
}

func (s *reportService) Prepare(ctx context.Context, name string, query dto.ExportQueryDTO) (*PreparedExport, error) {
	entry, err := s.registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	format, err := reporter.ParseFormat(query.Format)
	if err != nil {
		return nil, err
	}
	r, err := reporter.New(entry.Declarer, query.Fields...)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Подготовлена выгрузка",
		zap.String("report", name),
		zap.String("format", string(format)),
		zap.Strings("fields", r.Fields()),
		zap.Any("filter", query.Filter),
	)

	return &PreparedExport{
		Entry:     entry,
		Reporter:  r,
		QuerySet:  s.modelRepo.QuerySet(r.Model(), query.Filter),
		Format:    format,
		Header:    query.Header,
		delimiter: s.delimiter,
	}, nil
}

func (s *reportService) Export(ctx context.Context, name string, query dto.ExportQueryDTO, w io.Writer) error {
	prepared, err := s.Prepare(ctx, name, query)
	if err != nil {
		return err
	}
	start := time.Now()
	if err := prepared.Write(ctx, w); err != nil {
		return fmt.Errorf("выгрузка %q: %w", name, err)
	}
	s.logger.Info("Отчёт выгружен",
		zap.String("report", name),
		zap.String("format", string(prepared.Format)),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}
