package datarecording

import (
	"fmt"
	"reflect"

	"github.com/fatih/structs"
)

type column struct {
	name string
	kind reflect.Kind
}

// columnsOf lists the columns of a table whose rows look like sample. Only
// flat structs with scalar fields can be recorded.
func columnsOf(sample any) ([]column, error) {
	t := reflect.TypeOf(sample)
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("entry must be a struct, got %T", sample)
	}

	names := structs.Names(sample)
	columns := make([]column, 0, len(names))

	for _, name := range names {
		field, _ := t.FieldByName(name)

		kind := field.Type.Kind()
		if !isAllowedKind(kind) {
			return nil, fmt.Errorf("field %s of %T has unsupported kind %s",
				name, sample, kind)
		}

		columns = append(columns, column{name: name, kind: kind})
	}

	if len(columns) == 0 {
		return nil, fmt.Errorf("entry %T has no exported fields", sample)
	}

	return columns, nil
}

func isAllowedKind(kind reflect.Kind) bool {
	switch kind {
	case
		reflect.Bool,
		reflect.Int,
		reflect.Int8,
		reflect.Int16,
		reflect.Int32,
		reflect.Int64,
		reflect.Uint,
		reflect.Uint8,
		reflect.Uint16,
		reflect.Uint32,
		reflect.Uint64,
		reflect.Float32,
		reflect.Float64,
		reflect.String:
		return true
	default:
		return false
	}
}

// rowValues converts the fields of entry to the plain Go types that database
// drivers accept, in column order.
func rowValues(entry any) []any {
	values := structs.Values(entry)

	for i, v := range values {
		rv := reflect.ValueOf(v)

		switch rv.Kind() {
		case reflect.Bool:
			values[i] = rv.Bool()
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
			reflect.Int64:
			values[i] = rv.Int()
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
			reflect.Uint64:
			values[i] = rv.Uint()
		case reflect.Float32, reflect.Float64:
			values[i] = rv.Float()
		case reflect.String:
			values[i] = rv.String()
		}
	}

	return values
}
