package datarecording

import (
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"strings"

	// Registers the sqlite3 driver.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
)

type sqliteSink struct {
	db *sql.DB
}

// New creates a DataRecorder that writes into the SQLite file
// path + ".sqlite3". The file must not exist. An empty path picks a unique
// name.
func New(path string) DataRecorder {
	return newSQLite(path, DefaultBatchSize)
}

func newSQLite(path string, batchSize int) *bufferedRecorder {
	if path == "" {
		path = "turnover_recording_" + xid.New().String()
	}

	filename := path + ".sqlite3"
	if _, err := os.Stat(filename); err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	fmt.Fprintf(os.Stderr, "Recording into %s\n", filename)

	return newRecorder(&sqliteSink{db: db}, batchSize)
}

// NewWithDB creates a DataRecorder that writes into an open SQLite database.
func NewWithDB(db *sql.DB) DataRecorder {
	return newRecorder(&sqliteSink{db: db}, DefaultBatchSize)
}

func (s *sqliteSink) createTable(name string, columns []column) error {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = c.name + " " + sqliteType(c.kind)
	}

	_, err := s.db.Exec("CREATE TABLE " + name + " (\n\t" +
		strings.Join(defs, ",\n\t") + "\n)")

	return err
}

func (s *sqliteSink) insert(
	name string,
	columns []column,
	entries []any,
) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	marks := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")

	stmt, err := tx.Prepare("INSERT INTO " + name + " VALUES (" + marks + ")")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, entry := range entries {
		if _, err := stmt.Exec(rowValues(entry)...); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (s *sqliteSink) close() error {
	return s.db.Close()
}

func sqliteType(kind reflect.Kind) string {
	switch kind {
	case reflect.Bool:
		return "BOOLEAN"
	case reflect.Float32, reflect.Float64:
		return "REAL"
	case reflect.String:
		return "TEXT"
	default:
		return "INTEGER"
	}
}
