// Package xlsxreport encodes a lease extraction into a downloadable XLSX
// audit report.
package xlsxreport

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"redline/internal/domain"
)

// SheetName is the single worksheet holding the audit row.
const SheetName = "Redline Analysis"

// ContentType is the MIME type for generated workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// placeholder substitutes missing string fields so encoding never fails.
const placeholder = "N/A"

var headers = []string{"Tenant", "Rent", "Deposit", "Risk Score", "Risk Summary"}

var columnWidths = map[string]float64{
	"A": 30,
	"B": 50,
	"C": 50,
	"D": 15,
	"E": 100,
}

// Build encodes an extraction into workbook bytes: one styled header row and
// one data row. Missing fields become placeholders; list-valued risk flags
// are flattened to a comma-joined summary. Output depends only on the input.
func Build(ex *domain.LeaseExtraction) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return nil, fmt.Errorf("writing header: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"8B0000"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "E1", headerStyle); err != nil {
		return nil, fmt.Errorf("styling header: %w", err)
	}

	for col, width := range columnWidths {
		_ = f.SetColWidth(SheetName, col, col, width)
	}

	row := []interface{}{
		orPlaceholder(ex.TenantName),
		orPlaceholder(ex.MonthlyRent),
		orPlaceholder(ex.SecurityDeposit),
		int(ex.RiskScore),
		orPlaceholder(ex.RiskFlags.Summary()),
	}
	for i, v := range row {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		if err := f.SetCellValue(SheetName, cell, v); err != nil {
			return nil, fmt.Errorf("writing data row: %w", err)
		}
	}

	wrapStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err == nil {
		_ = f.SetCellStyle(SheetName, "A2", "E2", wrapStyle)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encoding workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a source document name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	name = strings.TrimSuffix(name, ".pdf")
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns the report filename for a source document.
// Format: AUDIT_{sanitized_source_name}.xlsx
func BuildFilename(sourceName string) string {
	sanitized := SanitizeFilename(sourceName)
	if sanitized == "" {
		sanitized = "lease"
	}
	return fmt.Sprintf("AUDIT_%s.xlsx", sanitized)
}
