package domain

import (
	"fmt"
	"time"
)

// ReportBucket counts tickets created in one calendar month.
type ReportBucket struct {
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	MonthName   string `json:"monthName"`
	RecordCount int    `json:"recordCount"`
}

// ExportRow is one fixed-column line of a period export.
type ExportRow struct {
	ID            int64
	ApplicantName string
	LineName      string
	MachineName   string
	Description   string
	StatusName    string
	CreatedAt     time.Time
	ResolvedAt    *time.Time
}

// Export is a fully resolved period export ready for rendering.
type Export struct {
	Category  Category
	Year      int
	Month     int
	Title     string
	SheetName string
	Headers   [8]string
	Rows      []ExportRow
}

// FileName is the download name of the rendered workbook.
func (e Export) FileName() string {
	return fmt.Sprintf("Reporte_%s_%d_%02d.xlsx", e.Title, e.Year, e.Month)
}
