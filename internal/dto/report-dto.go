package dto

import "report-system/pkg/types"

// ReportInfoDTO - отчёт в списке GET /api/reports.
type ReportInfoDTO struct {
	Name    string   `json:"name"`
	Title   string   `json:"title"`
	Fields  []string `json:"fields"`
	Headers []string `json:"headers"`
}

// ExportQueryDTO - параметры выгрузки отчёта.
type ExportQueryDTO struct {
	Format string       `json:"format" validate:"omitempty,report_format"`
	Fields []string     `json:"fields" validate:"omitempty,unique,dive,field_name"`
	Header bool         `json:"header"`
	Filter types.Filter `json:"filter"`
}
