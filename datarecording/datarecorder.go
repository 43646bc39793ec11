// Package datarecording writes simulation records into databases. Every
// table stores rows of one flat struct type.
package datarecording

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/tebeka/atexit"
)

// DefaultBatchSize is the number of buffered entries that triggers a flush.
const DefaultBatchSize = 100000

// DataRecorder is a backend that can record and store data. It is safe for
// concurrent use.
type DataRecorder interface {
	// CreateTable creates a new table with the fields of sampleEntry as
	// columns.
	CreateTable(tableName string, sampleEntry any)

	// InsertData buffers an entry for a table that already exists.
	InsertData(tableName string, entry any)

	// ListTables returns the names of all the tables, sorted.
	ListTables() []string

	// Flush writes all the buffered entries into the database.
	Flush()

	// Close flushes and releases the database.
	Close() error
}

// A sink is the database behind a recorder. The recorder serializes calls.
type sink interface {
	createTable(name string, columns []column) error
	insert(name string, columns []column, entries []any) error
	close() error
}

type table struct {
	structType reflect.Type
	columns    []column
	entries    []any
}

// bufferedRecorder buffers entries per table and hands full batches to its
// sink.
// Database failures panic, since a recording with holes is useless.
type bufferedRecorder struct {
	sink sink

	lock      sync.Mutex
	tables    map[string]*table
	batchSize int
	buffered  int
}

func newRecorder(s sink, batchSize int) *bufferedRecorder {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	r := &bufferedRecorder{
		sink:      s,
		tables:    make(map[string]*table),
		batchSize: batchSize,
	}

	atexit.Register(r.Flush)

	return r
}

func (r *bufferedRecorder) CreateTable(tableName string, sampleEntry any) {
	columns, err := columnsOf(sampleEntry)
	if err != nil {
		panic(err)
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if _, exists := r.tables[tableName]; exists {
		panic(fmt.Sprintf("table %s already exists", tableName))
	}

	if err := r.sink.createTable(tableName, columns); err != nil {
		panic(fmt.Errorf("create table %s: %w", tableName, err))
	}

	r.tables[tableName] = &table{
		structType: reflect.TypeOf(sampleEntry),
		columns:    columns,
	}
}

func (r *bufferedRecorder) InsertData(tableName string, entry any) {
	r.lock.Lock()
	defer r.lock.Unlock()

	t, exists := r.tables[tableName]
	if !exists {
		panic(fmt.Sprintf("table %s does not exist", tableName))
	}

	if reflect.TypeOf(entry) != t.structType {
		panic(fmt.Sprintf("table %s stores %s, got %T",
			tableName, t.structType, entry))
	}

	t.entries = append(t.entries, entry)

	r.buffered++
	if r.buffered >= r.batchSize {
		r.flush()
	}
}

func (r *bufferedRecorder) ListTables() []string {
	r.lock.Lock()
	defer r.lock.Unlock()

	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func (r *bufferedRecorder) Flush() {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.flush()
}

func (r *bufferedRecorder) flush() {
	if r.buffered == 0 {
		return
	}

	for name, t := range r.tables {
		if len(t.entries) == 0 {
			continue
		}

		if err := r.sink.insert(name, t.columns, t.entries); err != nil {
			panic(fmt.Errorf("write %d entries into %s: %w",
				len(t.entries), name, err))
		}

		t.entries = t.entries[:0]
	}

	r.buffered = 0
}

func (r *bufferedRecorder) Close() error {
	r.Flush()

	return r.sink.close()
}
