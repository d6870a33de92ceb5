// journal/sqlite.go
package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rustyeddy/tradebook/pkg/id"
)

// SQLiteLedger keeps the ledger in a single SQLite table. Rows are read
// back in insertion order.
type SQLiteLedger struct {
	Path string
}

func NewSQLite(path string) *SQLiteLedger {
	return &SQLiteLedger{Path: path}
}

func (j *SQLiteLedger) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", j.Path)
	if err != nil {
		return nil, fmt.Errorf("open ledger db: %w", err)
	}
	return db, nil
}

// Init creates the parent directories and the ledger table if missing.
func (j *SQLiteLedger) Init() error {
	if dir := filepath.Dir(j.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create ledger dir: %w", err)
		}
	}

	db, err := j.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (j *SQLiteLedger) Append(rec TradeRecord) error {
	if err := j.Init(); err != nil {
		return err
	}

	db, err := j.open()
	if err != nil {
		return err
	}
	defer db.Close()

	args := []any{id.New()}
	for _, v := range rec.Row() {
		args = append(args, v)
	}

	_, err = db.Exec(`
		INSERT INTO ledger
		(row_id, `+strings.Join(Header(), ", ")+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (j *SQLiteLedger) Records() ([]TradeRecord, error) {
	// sql.Open would create the file, so look first.
	if _, err := os.Stat(j.Path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, j.Path)
	}

	db, err := j.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	// An existing but empty file reads as an empty ledger, as with CSV.
	if _, err := db.Exec(Schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	rows, err := db.Query(`
		SELECT ` + strings.Join(Header(), ", ") + `
		FROM ledger
		ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("query ledger: %w", err)
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		vals := make([]string, numFields)
		dest := make([]any, numFields)
		for i := range vals {
			dest[i] = &vals[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		var rec TradeRecord
		for _, f := range Fields() {
			rec.Set(f, vals[f])
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
