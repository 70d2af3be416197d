package internal

import (
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultRecorderTable is the table the recorder's SQLite dump stores samples in
const DefaultRecorderTable = "data"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// OpenRecorderDatabase opens a recorder SQLite dump in read-only mode
func OpenRecorderDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return db, nil
}

// ListTables returns the user tables of a database, sorted by name
func ListTables(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`
		SELECT name FROM sqlite_master
		WHERE type='table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// ReadRawTableFromDB reads every row of a table into a raw session table.
// Column names become the header, as with a CSV export.
func ReadRawTableFromDB(db *sql.DB, table string) (*Table, error) {
	if table == "" {
		table = DefaultRecorderTable
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	rows, err := db.Query("SELECT * FROM " + table)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns failed: %w", err)
	}

	var records [][]string
	for rows.Next() {
		values := make([]any, len(header))
		ptrs := make([]any, len(header))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		rec := make([]string, len(header))
		for i, v := range values {
			rec[i] = sqlCell(v)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return tableFromRecords(header, records, false), nil
}

// ImportDatabase imports one table of a recorder SQLite dump
func (s *Store) ImportDatabase(path, table string) (string, bool, error) {
	db, err := OpenRecorderDatabase(path)
	if err != nil {
		return "", false, &StorageError{Path: path, Op: "open", Err: err}
	}
	defer db.Close()

	raw, err := ReadRawTableFromDB(db, table)
	if err != nil {
		return "", false, &ParseError{Source: "sqlite", Key: path, Err: err}
	}
	return s.Import(raw)
}

func sqlCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []byte:
		return string(x)
	case string:
		return x
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	case bool:
		if x {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprint(x)
	}
}
