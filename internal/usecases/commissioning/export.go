package commissioning

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/uniqverse/marketplace-api/internal/domain"
	"github.com/uniqverse/marketplace-api/pkg/apiErrors"
	"github.com/uniqverse/marketplace-api/pkg/metrics"
	"github.com/uniqverse/marketplace-api/pkg/utils"
	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatXLSX, nil
	case FormatXLSX, FormatPDF:
		return f, nil
	}
	return "", NewCommissionError(ErrUnsupportedFormat, apiErrors.ErrInvalidFormat, 0, s)
}

func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// ExportFile is a rendered commission statement.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

func (s *Service) Export(ctx context.Context, days int, currency string, format Format) (file *ExportFile, err error) {
	defer func() { metrics.IncExport(string(format), err) }()

	statement, err := s.Statement(ctx, days, currency)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch format {
	case FormatPDF:
		data, err = BuildStatementPDF(statement)
	case FormatXLSX:
		data, err = BuildStatementXLSX(statement)
	default:
		return nil, NewCommissionError(ErrUnsupportedFormat, apiErrors.ErrInvalidFormat, 0, string(format))
	}
	if err != nil {
		return nil, fmt.Errorf("render %s statement: %w", format, err)
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	return &ExportFile{
		Name:        fmt.Sprintf("commission-statement-%s-%s.%s", statement.GeneratedAt.Format("20060102"), id, format),
		ContentType: format.ContentType(),
		Data:        data,
	}, nil
}

func money(d decimal.Decimal, currency domain.Currency) string {
	return d.StringFixedBank(currency.MinorUnits())
}

func period(stmt *domain.CommissionStatement) string {
	return fmt.Sprintf("%s to %s", stmt.StartDate.Format(utils.DateLayout), stmt.EndDate.Format(utils.DateLayout))
}

// BuildStatementXLSX renders the statement as a workbook with a summary and a lines sheet.
func BuildStatementXLSX(stmt *domain.CommissionStatement) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	summarySheet := "summary"
	linesSheet := "commissions"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(linesSheet); err != nil {
		return nil, err
	}

	o := stmt.Overview
	summary := [][]any{
		{"Commission Statement"},
		{},
		{"Period", period(stmt)},
		{"Currency", string(stmt.Currency)},
		{"Generated", stmt.GeneratedAt.Format(time.RFC3339)},
		{"Total Sales", o.TotalSales.InexactFloat64()},
		{"Vendor Earnings", o.TotalVendorEarnings.InexactFloat64()},
		{"Platform Earnings", o.TotalPlatformEarnings.InexactFloat64()},
		{"Transactions", o.TotalTransactions},
		{"Pending Payouts", o.PendingPayouts.InexactFloat64()},
		{"Paid Payouts", o.PaidPayouts.InexactFloat64()},
		{"Average Commission Rate (%)", o.AverageCommissionRate.InexactFloat64()},
		{"Sales Growth (%)", o.SalesGrowth.InexactFloat64()},
	}
	for i, row := range summary {
		if len(row) == 0 {
			continue
		}
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return nil, err
		}
	}

	header := []any{"Date", "Order", "Vendor", "Product", "Sale", "Rate", "Vendor Earnings", "Fee", "Bonus", "Platform Earnings", "Status"}
	if err := f.SetSheetRow(linesSheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, line := range stmt.Lines {
		row := []any{
			line.CreatedAt.Format(utils.DateLayout),
			line.OrderNumber,
			line.VendorName,
			line.ProductName,
			line.SaleAmount.InexactFloat64(),
			line.CommissionRate.InexactFloat64(),
			line.CommissionAmount.InexactFloat64(),
			line.TransactionFee.InexactFloat64(),
			line.PerformanceBonus.InexactFloat64(),
			line.PlatformEarnings.InexactFloat64(),
			string(line.Status),
		}
		if err := f.SetSheetRow(linesSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildStatementPDF renders the statement as a landscape A4 document.
func BuildStatementPDF(stmt *domain.CommissionStatement) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()

	pdf.Cell(0, 8, "Commission Statement")
	pdf.Ln(10)

	o := stmt.Overview
	pdf.SetFont("Arial", "", 10)
	for _, line := range []string{
		fmt.Sprintf("Period: %s", period(stmt)),
		fmt.Sprintf("Currency: %s", stmt.Currency),
		fmt.Sprintf("Generated: %s", stmt.GeneratedAt.Format(time.RFC3339)),
		fmt.Sprintf("Total Sales: %s", money(o.TotalSales, stmt.Currency)),
		fmt.Sprintf("Vendor Earnings: %s", money(o.TotalVendorEarnings, stmt.Currency)),
		fmt.Sprintf("Platform Earnings: %s", money(o.TotalPlatformEarnings, stmt.Currency)),
		fmt.Sprintf("Transactions: %d", o.TotalTransactions),
		fmt.Sprintf("Pending / Paid Payouts: %s / %s", money(o.PendingPayouts, stmt.Currency), money(o.PaidPayouts, stmt.Currency)),
	} {
		pdf.Cell(0, 6, line)
		pdf.Ln(5)
	}
	pdf.Ln(4)

	columns := []struct {
		title string
		width float64
		align string
	}{
		{"Date", 24, "C"},
		{"Order", 34, "L"},
		{"Vendor", 44, "L"},
		{"Product", 50, "L"},
		{"Sale", 26, "R"},
		{"Vendor Earnings", 30, "R"},
		{"Platform Earnings", 32, "R"},
		{"Status", 24, "C"},
	}

	pdf.SetFont("Arial", "B", 9)
	for _, c := range columns {
		pdf.CellFormat(c.width, 6, c.title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, line := range stmt.Lines {
		values := []string{
			line.CreatedAt.Format(utils.DateLayout),
			line.OrderNumber,
			line.VendorName,
			line.ProductName,
			money(line.SaleAmount, stmt.Currency),
			money(line.CommissionAmount, stmt.Currency),
			money(line.PlatformEarnings, stmt.Currency),
			string(line.Status),
		}
		for i, c := range columns {
			pdf.CellFormat(c.width, 6, values[i], "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
