package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"card-fraud-pipeline/internal/domain/transaction"
)

// Column names recognized in batch input.
const (
	ColCardNumber = "CardNumber"
	ColAmount     = "Amount"
	ColTimestamp  = "Timestamp"
)

// Timestamp layouts accepted in batch input, tried in order.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// Dataset is one in-memory batch of transactions plus the shape of the
// table it came from. Absent columns disable their dependent rules
// downstream; they are never zero-filled.
type Dataset struct {
	Transactions []*transaction.Transaction

	HasCardNumber bool
	HasAmount     bool
	HasTimestamp  bool
}

// Load reads a CSV transaction dataset. Duplicate rows and rows with a
// missing value in any recognized column are dropped before
// normalization, mirroring the preprocessing the scoring pipeline
// expects. All failures reading or normalizing the source are reported
// as ErrUnreadableSource; the caller decides how to surface them.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses a CSV dataset from r. See Load.
func Read(r io.Reader) (*Dataset, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}

	header := rows[0]
	cardIdx := columnIndex(header, ColCardNumber)
	amountIdx := columnIndex(header, ColAmount)
	tsIdx := columnIndex(header, ColTimestamp)

	ds := &Dataset{
		HasCardNumber: cardIdx >= 0,
		HasAmount:     amountIdx >= 0,
		HasTimestamp:  tsIdx >= 0,
	}

	seen := make(map[string]bool)
	for line, row := range rows[1:] {
		key := strings.Join(row, "\x1f")
		if seen[key] {
			continue
		}
		seen[key] = true

		if incomplete(row, cardIdx, amountIdx, tsIdx) {
			continue
		}

		tx := transaction.New("", decimal.Zero)

		if cardIdx >= 0 {
			tx.CardNumber = row[cardIdx]
		}
		if amountIdx >= 0 {
			amount, err := decimal.NewFromString(strings.TrimSpace(row[amountIdx]))
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: bad amount %q", ErrUnreadableSource, line+2, row[amountIdx])
			}
			tx.Amount = amount
		}
		if tsIdx >= 0 {
			ts, err := parseTimestamp(row[tsIdx])
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: bad timestamp %q", ErrUnreadableSource, line+2, row[tsIdx])
			}
			tx.Timestamp = &ts
		}

		ds.Transactions = append(ds.Transactions, tx)
	}

	return ds, nil
}

// Write emits the dataset as CSV, augmented with every derived column.
// Undefined values (the first record's time gap, unscored anomaly
// labels) are written as empty cells.
func Write(w io.Writer, ds *Dataset) error {
	cw := csv.NewWriter(w)

	header := []string{}
	if ds.HasCardNumber {
		header = append(header, ColCardNumber)
	}
	if ds.HasAmount {
		header = append(header, ColAmount)
	}
	if ds.HasTimestamp {
		header = append(header, ColTimestamp)
	}
	header = append(header, "LuhnValid", "HighAmount", "TimeGap", "SuspiciousTime", "Fraudulent", "Anomaly")
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, tx := range ds.Transactions {
		row := []string{}
		if ds.HasCardNumber {
			row = append(row, tx.CardNumber)
		}
		if ds.HasAmount {
			row = append(row, tx.Amount.String())
		}
		if ds.HasTimestamp {
			row = append(row, tx.Timestamp.Format(time.RFC3339))
		}
		row = append(row,
			strconv.FormatBool(tx.LuhnValid),
			strconv.FormatBool(tx.HighAmount),
			formatGap(tx.TimeGapSeconds),
			formatFlag(tx.SuspiciousTime),
			strconv.FormatBool(tx.Fraudulent),
			formatFlag(tx.Anomaly),
		)
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

func incomplete(row []string, indexes ...int) bool {
	for _, idx := range indexes {
		if idx < 0 {
			continue
		}
		if idx >= len(row) || strings.TrimSpace(row[idx]) == "" {
			return true
		}
	}
	return false
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range timestampLayouts {
		ts, err := time.Parse(layout, s)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func formatGap(gap *float64) string {
	if gap == nil {
		return ""
	}
	return strconv.FormatFloat(*gap, 'f', -1, 64)
}

func formatFlag(flag *bool) string {
	if flag == nil {
		return ""
	}
	return strconv.FormatBool(*flag)
}
