package xlsxreport_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"redline/internal/domain"
	"redline/internal/xlsxreport"
)

func openWorkbook(t *testing.T, content []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestBuild_FullExtraction(t *testing.T) {
	ex := &domain.LeaseExtraction{
		TenantName:      "Acme Corp",
		MonthlyRent:     "$12,500",
		SecurityDeposit: "$25,000",
		RiskScore:       7,
		RiskFlags:       domain.RiskFlags{"Gross-Up clause", "Transferred deposit"},
	}

	content, err := xlsxreport.Build(ex)
	require.NoError(t, err)

	f := openWorkbook(t, content)

	for i, want := range []string{"Tenant", "Rent", "Deposit", "Risk Score", "Risk Summary"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		got, err := f.GetCellValue(xlsxreport.SheetName, cell)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}

	a2, _ := f.GetCellValue(xlsxreport.SheetName, "A2")
	assert.Equal(t, "Acme Corp", a2)
	d2, _ := f.GetCellValue(xlsxreport.SheetName, "D2")
	assert.Equal(t, "7", d2)
	e2, _ := f.GetCellValue(xlsxreport.SheetName, "E2")
	assert.Equal(t, "Gross-Up clause, Transferred deposit", e2)
}

func TestBuild_EmptyExtractionUsesPlaceholders(t *testing.T) {
	content, err := xlsxreport.Build(&domain.LeaseExtraction{})
	require.NoError(t, err)

	f := openWorkbook(t, content)

	for _, cell := range []string{"A2", "B2", "C2", "E2"} {
		got, err := f.GetCellValue(xlsxreport.SheetName, cell)
		assert.NoError(t, err)
		assert.Equal(t, "N/A", got, "cell %s", cell)
	}
	d2, _ := f.GetCellValue(xlsxreport.SheetName, "D2")
	assert.Equal(t, "0", d2)
}

func TestBuild_Deterministic(t *testing.T) {
	ex := &domain.LeaseExtraction{TenantName: "Acme Corp", RiskScore: 3}

	a, err := xlsxreport.Build(ex)
	require.NoError(t, err)
	b, err := xlsxreport.Build(ex)
	require.NoError(t, err)

	fa := openWorkbook(t, a)
	fb := openWorkbook(t, b)
	rowsA, err := fa.GetRows(xlsxreport.SheetName)
	require.NoError(t, err)
	rowsB, err := fb.GetRows(xlsxreport.SheetName)
	require.NoError(t, err)
	assert.Equal(t, rowsA, rowsB)
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "lease", "lease"},
		{"strips pdf suffix", "lease.pdf", "lease"},
		{"replaces specials", "my lease (final).pdf", "my_lease_final"},
		{"collapses underscores", "a___b", "a_b"},
		{"keeps hyphen and underscore", "q3-2026_lease.pdf", "q3-2026_lease"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, xlsxreport.SanitizeFilename(tc.in))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	assert.Equal(t, "AUDIT_lease.xlsx", xlsxreport.BuildFilename("lease.pdf"))
	assert.Equal(t, "AUDIT_my_lease.xlsx", xlsxreport.BuildFilename("my lease.pdf"))
	assert.Equal(t, "AUDIT_lease.xlsx", xlsxreport.BuildFilename(".pdf"))
	assert.Equal(t, "AUDIT_lease.xlsx", xlsxreport.BuildFilename(""))
}
