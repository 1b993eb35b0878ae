package gateway

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"wallet-dashboard/internal/domain"
)

func exportTable() *domain.TransactionTable {
	return &domain.TransactionTable{
		Dataset: domain.DatasetTransactionInception,
		Columns: []string{"transaction_type", "transaction_status", "bill_amt", "note"},
		Records: []domain.TransactionRecord{
			{
				Type:     "wcredit",
				Status:   "Approved",
				Raw:      map[string]string{"transaction_type": "wcredit", "transaction_status": "Approved", "bill_amt": "100.50", "note": "first, with comma"},
				Amount:   nullDecimal("100.50"),
				Currency: domain.CurrencyIQD,
			},
			{
				Type:   "purchase",
				Status: "Declined",
				Raw:    map[string]string{"transaction_type": "purchase", "transaction_status": "Declined", "bill_amt": "", "note": ""},
			},
		},
	}
}

func TestExportColumns(t *testing.T) {
	table := exportTable()
	assert.Equal(t, []string{"transaction_type", "transaction_status", "bill_amt", "note", "amount", "currency"}, ExportColumns(table))

	table.Columns = append(table.Columns, "amount", "currency")
	assert.Equal(t, table.Columns, ExportColumns(table))
}

func TestExportRow(t *testing.T) {
	table := exportTable()
	columns := ExportColumns(table)

	assert.Equal(t, []string{"wcredit", "Approved", "100.50", "first, with comma", "100.5", "IQD"}, ExportRow(table.Records[0], columns))
	assert.Equal(t, []string{"purchase", "Declined", "", "", "", ""}, ExportRow(table.Records[1], columns))
}

func TestWriteTransactionsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransactionsCSV(&buf, exportTable()))

	want := strings.Join([]string{
		"transaction_type,transaction_status,bill_amt,note,amount,currency",
		`wcredit,Approved,100.50,"first, with comma",100.5,IQD`,
		"purchase,Declined,,,,",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteTransactionsCSV_Empty(t *testing.T) {
	table := exportTable()
	table.Records = nil

	var buf bytes.Buffer
	require.NoError(t, WriteTransactionsCSV(&buf, table))
	assert.Equal(t, "transaction_type,transaction_status,bill_amt,note,amount,currency\n", buf.String())
}

func TestWriteTransactionsXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransactionsXLSX(&buf, exportTable()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{XLSXSheetName}, f.GetSheetList())

	header, err := f.GetCellValue(XLSXSheetName, "F1")
	require.NoError(t, err)
	assert.Equal(t, "currency", header)

	amount, err := f.GetCellValue(XLSXSheetName, "E2")
	require.NoError(t, err)
	assert.Equal(t, "100.5", amount)

	note, err := f.GetCellValue(XLSXSheetName, "D2")
	require.NoError(t, err)
	assert.Equal(t, "first, with comma", note)

	status, err := f.GetCellValue(XLSXSheetName, "B3")
	require.NoError(t, err)
	assert.Equal(t, "Declined", status)
}
