package export

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/failtrack/internal/domain"
	apperrors "github.com/spec-kit/failtrack/pkg/util"
)

const (
	// ContentType is the MIME type of rendered workbooks.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	timestampLayout = "2006-01-02 15:04:05"
	timestampFormat = "yyyy-mm-dd hh:mm:ss"
	// Columns G and H hold the creation and resolution timestamps.
	firstTimestampCol = 7
	lastTimestampCol  = 8
	headerFill      = "0099CC"
	minColumnWidth  = 10
	maxColumnWidth  = 80
)

// XLSXRenderer writes period exports as single-sheet workbooks.
type XLSXRenderer struct {
	location *time.Location
}

// NewXLSXRenderer returns a renderer formatting timestamps in loc.
func NewXLSXRenderer(loc *time.Location) *XLSXRenderer {
	if loc == nil {
		loc = time.UTC
	}
	return &XLSXRenderer{location: loc}
}

// Render produces the workbook bytes. An export without rows is rejected
// so callers never ship an empty artifact.
func (r *XLSXRenderer) Render(exp *domain.Export) ([]byte, error) {
	if exp == nil || len(exp.Rows) == 0 {
		year, month := 0, 0
		if exp != nil {
			year, month = exp.Year, exp.Month
		}
		return nil, apperrors.NewExportEmpty(year, month)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := exp.SheetName
	if sheet == "" {
		sheet = "Reporte"
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, apperrors.NewExportRenderFailed(err)
	}

	widths := make([]int, len(exp.Headers))
	header := make([]interface{}, len(exp.Headers))
	for i, h := range exp.Headers {
		header[i] = h
		widths[i] = utf8.RuneCountInString(h)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, apperrors.NewExportRenderFailed(err)
	}

	for i, row := range exp.Rows {
		values := r.rowValues(row)
		for col, v := range values {
			if n := utf8.RuneCountInString(displayText(v)); n > widths[col] {
				widths[col] = n
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, apperrors.NewExportRenderFailed(err)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, apperrors.NewExportRenderFailed(err)
		}
	}

	if err := r.styleHeader(f, sheet, len(exp.Headers)); err != nil {
		return nil, apperrors.NewExportRenderFailed(err)
	}
	if err := r.styleTimestamps(f, sheet, len(exp.Rows)+1); err != nil {
		return nil, apperrors.NewExportRenderFailed(err)
	}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, apperrors.NewExportRenderFailed(err)
		}
		if err := f.SetColWidth(sheet, col, col, columnWidth(w)); err != nil {
			return nil, apperrors.NewExportRenderFailed(err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, apperrors.NewExportRenderFailed(err)
	}
	return buf.Bytes(), nil
}

// rowValues returns timestamps as time.Time in the report location so they land
// as date serials; excelize keeps the wall clock of the given location.
func (r *XLSXRenderer) rowValues(row domain.ExportRow) []interface{} {
	var resolved interface{}
	if row.ResolvedAt != nil {
		resolved = row.ResolvedAt.In(r.location)
	}
	return []interface{}{
		row.ID,
		row.ApplicantName,
		row.LineName,
		row.MachineName,
		row.Description,
		row.StatusName,
		row.CreatedAt.In(r.location),
		resolved,
	}
}

func (r *XLSXRenderer) styleHeader(f *excelize.File, sheet string, columns int) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func (r *XLSXRenderer) styleTimestamps(f *excelize.File, sheet string, lastRow int) error {
	format := timestampFormat
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &format})
	if err != nil {
		return err
	}
	from, err := excelize.CoordinatesToCellName(firstTimestampCol, 2)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(lastTimestampCol, lastRow)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, from, to, style)
}

func displayText(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format(timestampLayout)
	default:
		return fmt.Sprint(v)
	}
}

func columnWidth(chars int) float64 {
	w := chars + 2
	if w < minColumnWidth {
		w = minColumnWidth
	}
	if w > maxColumnWidth {
		w = maxColumnWidth
	}
	return float64(w)
}
