package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"wallet-dashboard/internal/domain"
	"wallet-dashboard/internal/gateway"
)

var (
	exportType     string
	exportStatus   string
	exportCurrency string
	exportFrom     string
	exportTo       string
	exportFormat   string
	exportOutput   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export filtered inception transactions as CSV or Excel",
	Long: `Export the inception transactions matching every given filter.

Dates use the YYYY-MM-DD layout and both bounds are inclusive.
The output defaults to filtered_transactions.csv or filtered_transactions.xlsx; use -o - for stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		write, ext, err := exportWriter(exportFormat)
		if err != nil {
			return err
		}
		p, err := exportPredicates()
		if err != nil {
			return err
		}

		result, err := newDashboard().Filter(cmd.Context(), p)
		if err != nil {
			return err
		}

		path := exportOutput
		if path == "" {
			path = "filtered_transactions." + ext
		}
		if err := writeExport(path, cmd.OutOrStdout(), write, result.Table); err != nil {
			return err
		}
		log.Info().
			Str("output", path).
			Int("rows", len(result.Table.Records)).
			Msg("transactions exported")
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportType, "type", "", "transaction type")
	exportCmd.Flags().StringVar(&exportStatus, "status", "", "transaction status")
	exportCmd.Flags().StringVar(&exportCurrency, "currency", "", "currency symbol, e.g. IQD")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "first day (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "last day (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "csv or xlsx")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file")
}

// writeExport writes table to path, or to stdout when path is "-".
func writeExport(path string, stdout io.Writer, write func(io.Writer, *domain.TransactionTable) error, table *domain.TransactionTable) (err error) {
	if path == "-" {
		return write(stdout, table)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	return write(f, table)
}

func exportWriter(format string) (func(io.Writer, *domain.TransactionTable) error, string, error) {
	switch format {
	case "csv":
		return gateway.WriteTransactionsCSV, "csv", nil
	case "xlsx":
		return gateway.WriteTransactionsXLSX, "xlsx", nil
	default:
		return nil, "", fmt.Errorf("invalid format %q: must be csv or xlsx", format)
	}
}

func exportPredicates() (domain.Predicates, error) {
	p := domain.Predicates{
		TransactionType: domain.TransactionType(exportType),
		Status:          exportStatus,
		Currency:        domain.Currency(exportCurrency),
	}
	for _, bound := range []struct {
		value  string
		target **time.Time
	}{
		{exportFrom, &p.StartDate},
		{exportTo, &p.EndDate},
	} {
		if bound.value == "" {
			continue
		}
		t, err := time.Parse(time.DateOnly, bound.value)
		if err != nil {
			return p, fmt.Errorf("%w: %q must be YYYY-MM-DD", domain.ErrInvalidPredicates, bound.value)
		}
		*bound.target = &t
	}
	return p, nil
}
