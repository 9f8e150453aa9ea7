package controllers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"report-system/pkg/api"
	"report-system/pkg/middleware"
	"report-system/pkg/reporter"
)

// CSVView отдаёт выборку модели как CSV. QuerySet и Reporter вызываются на
// каждый запрос, поэтому могут зависеть от его параметров.
type CSVView struct {
	QuerySet   func(c echo.Context) (reporter.QuerySet, error)
	Reporter   func(c echo.Context) (*reporter.Reporter, error)
	FileName   string
	WithHeader bool
	Delimiter  rune
	Logger     *zap.Logger
}

func (v *CSVView) resolve(c echo.Context) (*reporter.Reporter, reporter.QuerySet, error) {
	r, err := v.Reporter(c)
	if err != nil {
		return nil, nil, err
	}
	qs, err := v.QuerySet(c)
	if err != nil {
		return nil, nil, err
	}
	return r, qs, nil
}

func (v *CSVView) options() []reporter.Option {
	opts := []reporter.Option{reporter.WithHeader(v.WithHeader)}
	if v.Delimiter != 0 {
		opts = append(opts, reporter.WithDelimiter(v.Delimiter))
	}
	return opts
}

// WriteCSV пишет CSV в переданный поток, например в файл или буфер.
func (v *CSVView) WriteCSV(c echo.Context, w io.Writer) error {
	r, qs, err := v.resolve(c)
	if err != nil {
		return err
	}
	return r.WriteCSV(c.Request().Context(), w, qs, v.options()...)
}

// Serve - обработчик echo: CSV уходит в ответ по мере чтения выборки.
// Ошибка после начала ответа только логируется, статус уже отправлен.
func (v *CSVView) Serve(c echo.Context) error {
	logger := middleware.Logger(c, v.Logger)

	r, qs, err := v.resolve(c)
	if err != nil {
		return api.ErrorResponse(c, err, logger)
	}

	fileName := v.FileName
	if fileName == "" {
		fileName = "export.csv"
	}
	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, reporter.FormatCSV.ContentType())
	resp.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
	resp.WriteHeader(http.StatusOK)

	if err := r.WriteCSV(c.Request().Context(), resp, qs, v.options()...); err != nil {
		logger.Error("Ошибка выгрузки CSV после начала ответа",
			zap.String("file", fileName),
			zap.Error(err),
		)
	}
	return nil
}
