// journal/journal.go
package journal

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when reading a ledger that does not exist yet.
var ErrNotFound = errors.New("ledger not found")

// Field is one column of the ledger, in persisted order.
type Field int

const (
	FieldTS Field = iota
	FieldPair
	FieldSide
	FieldSetup
	FieldSizeUSDT
	FieldEntry
	FieldStop
	FieldTarget
	FieldResultUSDT
	FieldNotes

	numFields
)

var fieldNames = [numFields]string{
	"ts",
	"pair",
	"side",
	"setup",
	"size_usdt",
	"entry",
	"stop",
	"target",
	"result_usdt",
	"notes",
}

func (f Field) String() string {
	if f < 0 || f >= numFields {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// Fields returns every ledger field in persisted order.
func Fields() []Field {
	out := make([]Field, numFields)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

// Header returns the column names written as the first line of a CSV ledger.
func Header() []string {
	return append([]string(nil), fieldNames[:]...)
}

// TradeRecord is one ledger row. All values are kept as text, exactly as
// the caller supplied them.
type TradeRecord struct {
	TS         string
	Pair       string
	Side       string
	Setup      string
	SizeUSDT   string
	Entry      string
	Stop       string
	Target     string
	ResultUSDT string
	Notes      string
}

// Get returns the value stored for f.
func (r TradeRecord) Get(f Field) string {
	switch f {
	case FieldTS:
		return r.TS
	case FieldPair:
		return r.Pair
	case FieldSide:
		return r.Side
	case FieldSetup:
		return r.Setup
	case FieldSizeUSDT:
		return r.SizeUSDT
	case FieldEntry:
		return r.Entry
	case FieldStop:
		return r.Stop
	case FieldTarget:
		return r.Target
	case FieldResultUSDT:
		return r.ResultUSDT
	case FieldNotes:
		return r.Notes
	}
	return ""
}

// Set stores v under f. Unknown fields are ignored.
func (r *TradeRecord) Set(f Field, v string) {
	switch f {
	case FieldTS:
		r.TS = v
	case FieldPair:
		r.Pair = v
	case FieldSide:
		r.Side = v
	case FieldSetup:
		r.Setup = v
	case FieldSizeUSDT:
		r.SizeUSDT = v
	case FieldEntry:
		r.Entry = v
	case FieldStop:
		r.Stop = v
	case FieldTarget:
		r.Target = v
	case FieldResultUSDT:
		r.ResultUSDT = v
	case FieldNotes:
		r.Notes = v
	}
}

// Row encodes the record in persisted field order.
func (r TradeRecord) Row() []string {
	row := make([]string, numFields)
	for _, f := range Fields() {
		row[f] = r.Get(f)
	}
	return row
}

// Validate reports missing mandatory fields. The ledger itself does not call
// it; callers that take user input should.
func (r TradeRecord) Validate() error {
	var missing []string
	for _, f := range []Field{FieldTS, FieldPair, FieldSide, FieldResultUSDT} {
		if strings.TrimSpace(r.Get(f)) == "" {
			missing = append(missing, f.String())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required field(s): %s", strings.Join(missing, ", "))
	}
	return nil
}

// Ledger is an append-only store of trade records.
type Ledger interface {
	Init() error
	Append(TradeRecord) error
	Records() ([]TradeRecord, error)
}

const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// Open returns the ledger at path. An empty backend picks one from the file
// extension: .db, .sqlite and .sqlite3 are SQLite, anything else is CSV.
func Open(path, backend string) (Ledger, error) {
	if backend == "" {
		backend = BackendFor(path)
	}
	switch backend {
	case BackendCSV:
		return NewCSV(path), nil
	case BackendSQLite:
		return NewSQLite(path), nil
	}
	return nil, fmt.Errorf("unknown ledger backend %q (want csv or sqlite)", backend)
}

// BackendFor guesses the backend from the file extension.
func BackendFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return BackendSQLite
	}
	return BackendCSV
}
