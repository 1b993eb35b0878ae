package gateway

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"wallet-dashboard/internal/domain"
)

// dateLayouts are tried in order when parsing the date column.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	time.DateTime,
	"2006-01-02T15:04:05",
	time.DateOnly,
	"2006/01/02",
	"01/02/2006",
}

// maxCurrencyCode bounds ISO 4217 numeric codes.
var maxCurrencyCode = decimal.NewFromInt(9999)

var maxCount = decimal.NewFromInt(math.MaxInt64)

// CSVRecordRepository reads dataset snapshots from CSV files in a single directory.
type CSVRecordRepository struct {
	dir string
}

// NewCSVRecordRepository creates a repository rooted at dir.
func NewCSVRecordRepository(dir string) *CSVRecordRepository {
	return &CSVRecordRepository{dir: dir}
}

// Path returns the file backing a dataset.
func (r *CSVRecordRepository) Path(dataset domain.Dataset) string {
	return filepath.Join(r.dir, dataset.FileName())
}

// csvFile is a fully read CSV snapshot with its header indexed by column name.
type csvFile struct {
	header  []string
	index   map[string]int
	records [][]string
	lines   []int
	asOf    time.Time
}

func (f *csvFile) value(record []string, column string) (string, bool) {
	i, ok := f.index[column]
	if !ok || i >= len(record) {
		return "", false
	}
	return strings.TrimSpace(record[i]), true
}

func (r *CSVRecordRepository) readFile(ctx context.Context, dataset domain.Dataset) (*csvFile, error) {
	path := r.Path(dataset)
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %v", domain.ErrDataUnavailable, path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to stat %s: %v", domain.ErrDataUnavailable, path, err)
	}

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read header from %s: %v", domain.ErrDataUnavailable, path, err)
	}

	f := &csvFile{
		header: make([]string, len(header)),
		index:  make(map[string]int, len(header)),
		asOf:   info.ModTime(),
	}
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		f.header[i] = name
		f.index[name] = i
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: error reading record from %s: %v", domain.ErrDataUnavailable, path, err)
		}
		line, _ := reader.FieldPos(0)
		f.records = append(f.records, record)
		f.lines = append(f.lines, line)
	}
	return f, nil
}

func requireColumns(dataset domain.Dataset, f *csvFile, columns ...string) error {
	for _, c := range columns {
		if _, ok := f.index[c]; !ok {
			return &domain.RecordError{Dataset: dataset, Field: c, Err: errors.New("missing column")}
		}
	}
	return nil
}

// GetTransactions reads and parses a transaction snapshot.
func (r *CSVRecordRepository) GetTransactions(ctx context.Context, dataset domain.Dataset) (*domain.TransactionTable, error) {
	f, err := r.readFile(ctx, dataset)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(dataset, f, domain.ColumnTransactionType, domain.ColumnTransactionStatus); err != nil {
		return nil, err
	}

	table := &domain.TransactionTable{
		Dataset: dataset,
		Columns: f.header,
		Records: make([]domain.TransactionRecord, 0, len(f.records)),
		AsOf:    f.asOf,
	}

	for i, record := range f.records {
		line := f.lines[i]
		raw := make(map[string]string, len(f.header))
		for j, name := range f.header {
			if j < len(record) {
				raw[name] = record[j]
			}
		}

		tx := domain.TransactionRecord{Line: line, Raw: raw}
		txType, _ := f.value(record, domain.ColumnTransactionType)
		tx.Type = domain.TransactionType(txType)
		tx.Status, _ = f.value(record, domain.ColumnTransactionStatus)
		tx.NetworkName, _ = f.value(record, domain.ColumnNetworkName)
		tx.POSEntryMode, _ = f.value(record, domain.ColumnPOSEntryMode)
		tx.CardPresent, _ = f.value(record, domain.ColumnCardPresent)
		tx.ECI, _ = f.value(record, domain.ColumnECI)

		if tx.BillAmount, err = parseAmount(dataset, f, record, line, domain.ColumnBillAmount); err != nil {
			return nil, err
		}
		if tx.TxnAmount, err = parseAmount(dataset, f, record, line, domain.ColumnTxnAmount); err != nil {
			return nil, err
		}
		if tx.BillCurrency, err = parseCurrencyCode(dataset, f, record, line, domain.ColumnBillCurrency); err != nil {
			return nil, err
		}
		if tx.TxnCurrency, err = parseCurrencyCode(dataset, f, record, line, domain.ColumnTxnCurrency); err != nil {
			return nil, err
		}

		if v, ok := f.value(record, domain.ColumnDate); ok {
			if d, parsed := parseDate(v); parsed {
				tx.Date, tx.DateValid = d, true
			} else {
				table.Issues = append(table.Issues, domain.RowIssue{
					Line: line,
					Err:  fmt.Errorf("%w: line %d: %q", domain.ErrUnparseableDate, line, v),
				})
			}
		}

		table.Records = append(table.Records, tx)
	}
	return table, nil
}

// GetStatusCounts reads a cardholder or card inception snapshot.
func (r *CSVRecordRepository) GetStatusCounts(ctx context.Context, dataset domain.Dataset) (*domain.StatusTable, error) {
	f, err := r.readFile(ctx, dataset)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(dataset, f, domain.ColumnStatus, domain.ColumnCount); err != nil {
		return nil, err
	}

	table := &domain.StatusTable{Dataset: dataset, AsOf: f.asOf, Rows: make([]domain.StatusCount, 0, len(f.records))}
	for i, record := range f.records {
		count, err := parseCount(dataset, f, record, f.lines[i])
		if err != nil {
			return nil, err
		}
		status, _ := f.value(record, domain.ColumnStatus)
		table.Rows = append(table.Rows, domain.StatusCount{Status: status, Count: count})
	}
	return table, nil
}

// GetLifecycleEvents reads a cardholder or card yesterday snapshot.
func (r *CSVRecordRepository) GetLifecycleEvents(ctx context.Context, dataset domain.Dataset) (*domain.LifecycleTable, error) {
	f, err := r.readFile(ctx, dataset)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(dataset, f, domain.ColumnOperation, domain.ColumnCount); err != nil {
		return nil, err
	}

	table := &domain.LifecycleTable{Dataset: dataset, AsOf: f.asOf, Events: make([]domain.LifecycleEvent, 0, len(f.records))}
	for i, record := range f.records {
		count, err := parseCount(dataset, f, record, f.lines[i])
		if err != nil {
			return nil, err
		}
		ev := domain.LifecycleEvent{Count: count}
		ev.Operation, _ = f.value(record, domain.ColumnOperation)
		if v, ok := f.value(record, domain.ColumnNewState); ok && !isNull(v) {
			ev.NewState, ev.HasNewState = v, true
		}
		table.Events = append(table.Events, ev)
	}
	return table, nil
}

// isNull matches the spellings pandas uses for missing values.
func isNull(v string) bool {
	switch strings.ToLower(v) {
	case "", "nan", "null", "none", "<na>", "nat":
		return true
	}
	return false
}

func parseAmount(dataset domain.Dataset, f *csvFile, record []string, line int, column string) (decimal.NullDecimal, error) {
	v, ok := f.value(record, column)
	if !ok || isNull(v) {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.NullDecimal{}, &domain.RecordError{Dataset: dataset, Line: line, Field: column, Value: v, Err: err}
	}
	return decimal.NewNullDecimal(d), nil
}

func parseCurrencyCode(dataset domain.Dataset, f *csvFile, record []string, line int, column string) (domain.CurrencyCode, error) {
	v, ok := f.value(record, column)
	if !ok || isNull(v) {
		return domain.CurrencyCode{}, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return domain.CurrencyCode{}, &domain.RecordError{Dataset: dataset, Line: line, Field: column, Value: v, Err: err}
	}
	if !d.IsInteger() {
		return domain.CurrencyCode{}, &domain.RecordError{Dataset: dataset, Line: line, Field: column, Value: v, Err: errors.New("currency code is not an integer")}
	}
	if d.IsNegative() || d.GreaterThan(maxCurrencyCode) {
		return domain.CurrencyCode{}, &domain.RecordError{Dataset: dataset, Line: line, Field: column, Value: v, Err: errors.New("currency code out of range")}
	}
	return domain.CurrencyCode{Code: int(d.IntPart()), Valid: true}, nil
}

func parseCount(dataset domain.Dataset, f *csvFile, record []string, line int) (int64, error) {
	v, _ := f.value(record, domain.ColumnCount)
	if isNull(v) {
		return 0, &domain.RecordError{Dataset: dataset, Line: line, Field: domain.ColumnCount, Value: v, Err: errors.New("missing count")}
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return 0, &domain.RecordError{Dataset: dataset, Line: line, Field: domain.ColumnCount, Value: v, Err: err}
	}
	if !d.IsInteger() || d.IsNegative() {
		return 0, &domain.RecordError{Dataset: dataset, Line: line, Field: domain.ColumnCount, Value: v, Err: errors.New("count must be a non-negative integer")}
	}
	if d.GreaterThan(maxCount) {
		return 0, &domain.RecordError{Dataset: dataset, Line: line, Field: domain.ColumnCount, Value: v, Err: errors.New("count out of range")}
	}
	return d.IntPart(), nil
}

func parseDate(v string) (time.Time, bool) {
	if isNull(v) {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
