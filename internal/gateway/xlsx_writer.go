package gateway

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"wallet-dashboard/internal/domain"
)

// XLSXSheetName is the worksheet holding exported transactions.
const XLSXSheetName = "Transactions"

// WriteTransactionsXLSX writes the table as a single-sheet workbook. The
// derived amount column is written as a number, everything else as text.
func WriteTransactionsXLSX(w io.Writer, table *domain.TransactionTable) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", XLSXSheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	columns := ExportColumns(table)
	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(XLSXSheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write xlsx header: %w", err)
	}

	for n, rec := range table.Records {
		row := make([]interface{}, len(columns))
		for i, c := range columns {
			if c == domain.ColumnAmount && rec.Amount.Valid {
				if _, sourced := rec.Raw[c]; !sourced {
					row[i] = rec.Amount.Decimal.InexactFloat64()
					continue
				}
			}
			row[i] = exportValue(rec, c)
		}
		cell, err := excelize.CoordinatesToCellName(1, n+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(XLSXSheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write xlsx line %d: %w", rec.Line, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
