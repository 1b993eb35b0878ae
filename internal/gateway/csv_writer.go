package gateway

import (
	"encoding/csv"
	"fmt"
	"io"

	"wallet-dashboard/internal/domain"
)

// ExportColumns is the column set of an exported table: the source columns
// followed by the derived amount and currency columns when the source lacks them.
func ExportColumns(table *domain.TransactionTable) []string {
	columns := append([]string(nil), table.Columns...)
	for _, derived := range []string{domain.ColumnAmount, domain.ColumnCurrency} {
		if !table.HasColumn(derived) {
			columns = append(columns, derived)
		}
	}
	return columns
}

// ExportRow renders one record as text in the order of columns.
func ExportRow(rec domain.TransactionRecord, columns []string) []string {
	row := make([]string, len(columns))
	for i, c := range columns {
		row[i] = exportValue(rec, c)
	}
	return row
}

func exportValue(rec domain.TransactionRecord, column string) string {
	if v, ok := rec.Raw[column]; ok {
		return v
	}
	v, _ := rec.Field(column)
	return v
}

// WriteTransactionsCSV writes the table as UTF-8 CSV with a header row.
func WriteTransactionsCSV(w io.Writer, table *domain.TransactionTable) error {
	columns := ExportColumns(table)
	writer := csv.NewWriter(w)
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, rec := range table.Records {
		if err := writer.Write(ExportRow(rec, columns)); err != nil {
			return fmt.Errorf("failed to write csv line %d: %w", rec.Line, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
