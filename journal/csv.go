// journal/csv.go
package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CSVLedger is a ledger kept in a comma-separated file with a header line.
// Nothing is cached between calls; every operation goes to the file.
type CSVLedger struct {
	Path string
}

func NewCSV(path string) *CSVLedger {
	return &CSVLedger{Path: path}
}

// Init creates the parent directories and an empty ledger holding only the
// header. An existing file is left untouched, whatever it contains.
func (j *CSVLedger) Init() error {
	if dir := filepath.Dir(j.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create ledger dir: %w", err)
		}
	}

	f, err := os.OpenFile(j.Path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("create ledger: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(Header()); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	return f.Close()
}

// Append writes rec as one new row at the end of the ledger, creating the
// ledger first if needed.
func (j *CSVLedger) Append(rec TradeRecord) error {
	if err := j.Init(); err != nil {
		return err
	}

	f, err := os.OpenFile(j.Path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(rec.Row()); err != nil {
		f.Close()
		return fmt.Errorf("write record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write record: %w", err)
	}
	return f.Close()
}

// Records reads every row in file order. Columns are matched by header name,
// so hand-edited files with reordered, missing or extra columns still load;
// absent values read as "".
func (j *CSVLedger) Records() ([]TradeRecord, error) {
	f, err := os.Open(j.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, j.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := columnIndex(header)

	var out []TradeRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record %d: %w", len(out)+1, err)
		}

		var rec TradeRecord
		for _, fld := range Fields() {
			i, ok := cols[fld]
			if ok && i < len(row) {
				rec.Set(fld, row[i])
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// columnIndex maps each known field to its position in header.
func columnIndex(header []string) map[Field]int {
	cols := make(map[Field]int, numFields)
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		for _, fld := range Fields() {
			if _, seen := cols[fld]; !seen && name == fld.String() {
				cols[fld] = i
			}
		}
	}
	return cols
}
