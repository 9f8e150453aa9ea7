package reporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatCSV      Format = "csv"
	FormatXLSX     Format = "xlsx"
	FormatMarkdown Format = "md"
)

// ParseFormat разбирает формат из запроса. Пустая строка означает CSV.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return FormatCSV, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	}
	return "text/csv; charset=utf-8"
}

func (f Format) Extension() string { return "." + string(f) }

type renderOptions struct {
	header    bool
	delimiter rune
	sheet     string
	title     string
}

type Option func(*renderOptions)

// WithHeader включает или отключает строку заголовков (по умолчанию включена).
func WithHeader(on bool) Option { return func(o *renderOptions) { o.header = on } }

func WithDelimiter(r rune) Option { return func(o *renderOptions) { o.delimiter = r } }

func WithSheetName(name string) Option { return func(o *renderOptions) { o.sheet = name } }

// WithTitle задаёт заголовок документа для markdown.
func WithTitle(title string) Option { return func(o *renderOptions) { o.title = title } }

func buildOptions(opts []Option) renderOptions {
	o := renderOptions{header: true, delimiter: ',', sheet: "Sheet1"}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Render выгружает выборку в указанном формате.
func (r *Reporter) Render(ctx context.Context, f Format, w io.Writer, qs QuerySet, opts ...Option) error {
	switch f {
	case FormatCSV:
		return r.WriteCSV(ctx, w, qs, opts...)
	case FormatXLSX:
		return r.WriteXLSX(ctx, w, qs, opts...)
	case FormatMarkdown:
		return r.WriteMarkdown(ctx, w, qs, opts...)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// WriteCSV пишет заголовок (если включён) и строки выборки в w.
func (r *Reporter) WriteCSV(ctx context.Context, w io.Writer, qs QuerySet, opts ...Option) error {
	o := buildOptions(opts)
	cw := csv.NewWriter(w)
	cw.Comma = o.delimiter

	if o.header {
		if err := cw.Write(r.Header()); err != nil {
			return err
		}
	}
	err := r.Each(ctx, qs, func(row []string) error {
		return cw.Write(row)
	})
	if err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX пишет выборку одним листом через потоковый writer excelize.
func (r *Reporter) WriteXLSX(ctx context.Context, w io.Writer, qs QuerySet, opts ...Option) error {
	o := buildOptions(opts)
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	if o.sheet != "" && o.sheet != sheet {
		if err := f.SetSheetName(sheet, o.sheet); err != nil {
			return fmt.Errorf("переименование листа: %w", err)
		}
		sheet = o.sheet
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("создание stream writer: %w", err)
	}
	header := r.Header()
	if len(header) > 0 {
		if err := sw.SetColWidth(1, len(header), 20); err != nil {
			return err
		}
	}

	rowIdx := 1
	if o.header {
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return err
		}
		cells := make([]interface{}, len(header))
		for i, h := range header {
			cells[i] = excelize.Cell{StyleID: bold, Value: h}
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowIdx)
		if err := sw.SetRow(cell, cells); err != nil {
			return err
		}
		rowIdx++
	}

	err = r.Each(ctx, qs, func(row []string) error {
		cells := make([]interface{}, len(row))
		for i, v := range row {
			cells[i] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return err
		}
		rowIdx++
		return sw.SetRow(cell, cells)
	})
	if err != nil {
		return err
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.Write(w)
}

// WriteMarkdown собирает таблицу markdown. Заголовок таблицы выводится всегда.
func (r *Reporter) WriteMarkdown(ctx context.Context, w io.Writer, qs QuerySet, opts ...Option) error {
	o := buildOptions(opts)
	var rows [][]string
	err := r.Each(ctx, qs, func(row []string) error {
		for i := range row {
			row[i] = escapeMarkdownCell(row[i])
		}
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return err
	}

	md := markdown.NewMarkdown(w)
	if o.title != "" {
		md.H2(o.title)
		md.PlainText("")
	}
	md.Table(markdown.TableSet{
		Header: r.Header(),
		Rows:   rows,
	})
	return md.Build()
}

func escapeMarkdownCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
