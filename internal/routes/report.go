package routes

import (
	"github.com/labstack/echo/v4"

	"report-system/internal/controllers"
)

func runReportRouter(api *echo.Group, reportController *controllers.ReportController) {
	reports := api.Group("/reports")
	reports.GET("", reportController.GetReports)
	reports.GET("/:name", reportController.ExportReport)
}
