package commissioning

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uniqverse/marketplace-api/internal/domain"
	"github.com/uniqverse/marketplace-api/internal/usecases/converting"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
)

func testStatement() *domain.CommissionStatement {
	c := commission(1, now, "100", "0.1", "10", domain.CommissionStatusPending)
	c.OrderNumber = "ORD-ABC"
	c.ProductName = "Desk Lamp"

	return &domain.CommissionStatement{
		Currency:    domain.CurrencyUSD,
		StartDate:   currentStart,
		EndDate:     currentEnd.AddDate(0, 0, -1),
		GeneratedAt: now,
		Overview:    buildOverview([]*domain.Commission{c}, nil),
		Lines:       transactions([]*domain.Commission{c}),
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in       string
		expected Format
		wantErr  bool
	}{
		{"", FormatXLSX, false},
		{"xlsx", FormatXLSX, false},
		{" PDF ", FormatPDF, false},
		{"csv", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			format, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestBuildStatementXLSX(t *testing.T) {
	data, err := BuildStatementXLSX(testStatement())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Commission Statement", title)

	order, err := f.GetCellValue("commissions", "B2")
	require.NoError(t, err)
	assert.Equal(t, "ORD-ABC", order)

	status, err := f.GetCellValue("commissions", "K2")
	require.NoError(t, err)
	assert.Equal(t, "PENDING", status)
}

func TestBuildStatementPDF(t *testing.T) {
	data, err := BuildStatementPDF(testStatement())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestService_Export(t *testing.T) {
	f := newFixture(t)
	f.commissionRepo.EXPECT().ListByPeriod(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	f.converter.EXPECT().ForCurrency(gomock.Any(), "USD").Return(converting.Identity(domain.CurrencyUSD), nil)

	file, err := f.service.Export(context.Background(), 30, "USD", FormatPDF)
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(file.Name, "commission-statement-"+now.Format("20060102")+"-"))
	assert.True(t, strings.HasSuffix(file.Name, ".pdf"))
	assert.NotEmpty(t, file.Data)
}

