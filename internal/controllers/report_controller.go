package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"report-system/internal/dto"
	"report-system/internal/services"
	"report-system/pkg/api"
	apperrors "report-system/pkg/errors"
	"report-system/pkg/middleware"
	"report-system/pkg/reporter"
	"report-system/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	limiter       services.ExportLimiterInterface
	timeout       time.Duration
	logger        *zap.Logger
}

func NewReportController(
	reportService services.ReportServiceInterface,
	limiter services.ExportLimiterInterface,
	timeout time.Duration,
	logger *zap.Logger,
) *ReportController {
	return &ReportController{
		reportService: reportService,
		limiter:       limiter,
		timeout:       timeout,
		logger:        logger,
	}
}

// GetReports - GET /api/reports
func (ctrl *ReportController) GetReports(c echo.Context) error {
	list, err := ctrl.reportService.ListReports()
	if err != nil {
		return api.ErrorResponse(c, err, middleware.Logger(c, ctrl.logger))
	}
	return api.SuccessList(c, "Список отчётов", list)
}

// ExportReport - GET /api/reports/:name?format=csv&fields=a,b&header=false&filter[col]=v
func (ctrl *ReportController) ExportReport(c echo.Context) error {
	logger := middleware.Logger(c, ctrl.logger)
	name := c.Param("name")

	query, err := parseExportQuery(c)
	if err != nil {
		return api.ErrorResponse(c, err, logger)
	}
	if err := c.Validate(&query); err != nil {
		return api.ErrorResponse(c, err, logger)
	}
	if err := ctrl.limiter.Allow(c.Request().Context(), c.RealIP()); err != nil {
		return api.ErrorResponse(c, err, logger)
	}

	if ctrl.timeout > 0 {
		ctx, cancel := context.WithTimeout(c.Request().Context(), ctrl.timeout)
		defer cancel()
		c.SetRequest(c.Request().WithContext(ctx))
	}

	prepared, err := ctrl.reportService.Prepare(c.Request().Context(), name, query)
	if err != nil {
		return api.ErrorResponse(c, err, logger)
	}
	logger.Info("Выгрузка отчёта",
		zap.String("report", name),
		zap.String("format", string(prepared.Format)),
		zap.Strings("fields", prepared.Reporter.Fields()),
	)

	fileName := prepared.FileName(time.Now())
	if prepared.Format == reporter.FormatCSV {
		view := &CSVView{
			QuerySet:   func(echo.Context) (reporter.QuerySet, error) { return prepared.QuerySet, nil },
			Reporter:   func(echo.Context) (*reporter.Reporter, error) { return prepared.Reporter, nil },
			FileName:   fileName,
			WithHeader: prepared.Header,
			Delimiter:  prepared.Delimiter(),
			Logger:     logger,
		}
		return view.Serve(c)
	}

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, prepared.Format.ContentType())
	resp.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
	resp.WriteHeader(http.StatusOK)
	if err := prepared.Write(c.Request().Context(), resp); err != nil {
		logger.Error("Ошибка выгрузки после начала ответа", zap.String("file", fileName), zap.Error(err))
	}
	return nil
}

func parseExportQuery(c echo.Context) (dto.ExportQueryDTO, error) {
	query := dto.ExportQueryDTO{
		Format: c.QueryParam("format"),
		Fields: utils.SplitList(c.QueryParam("fields")),
		Header: true,
		Filter: utils.ParseFilter(c.QueryParams()),
	}
	if raw := c.QueryParam("header"); raw != "" {
		header, err := strconv.ParseBool(raw)
		if err != nil {
			return query, apperrors.NewInvalidInputError("параметр header должен быть true или false, получено %q", raw)
		}
		query.Header = header
	}
	return query, nil
}
