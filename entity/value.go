package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Value wraps a field value and provides type conversion helpers.
type Value struct {
	Raw any
}

// String returns the value as a string.
func (v Value) String() string {
	if v.Raw == nil {
		return ""
	}
	return fmt.Sprintf("%v", v.Raw)
}

// Int returns the value as an int.
func (v Value) Int() (int, error) {
	switch i := v.Raw.(type) {
	case int:
		return i, nil
	case int8:
		return int(i), nil
	case int16:
		return int(i), nil
	case int32:
		return int(i), nil
	case int64:
		return int(i), nil
	case uint8:
		return int(i), nil
	case uint16:
		return int(i), nil
	case uint32:
		return int(i), nil
	case uint64:
		return int(i), nil
	}
	return 0, errors.Errorf("value is not an int: %T", v.Raw)
}

// Float returns the value as a float64, widening ints.
func (v Value) Float() (float64, error) {
	switch f := v.Raw.(type) {
	case float64:
		return f, nil
	case float32:
		return float64(f), nil
	}

	i, err := v.Int()
	if err != nil {
		return 0, errors.Errorf("value is not a number: %T", v.Raw)
	}
	return float64(i), nil
}

// Bool returns the value as a bool.
func (v Value) Bool() (bool, error) {
	b, ok := v.Raw.(bool)
	if !ok {
		return false, errors.Errorf("value is not a bool: %T", v.Raw)
	}
	return b, nil
}

// Time returns the value as a time.Time.
func (v Value) Time() (time.Time, error) {
	t, ok := v.Raw.(time.Time)
	if !ok {
		return time.Time{}, errors.Errorf("value is not a time.Time: %T", v.Raw)
	}
	return t, nil
}

// Compare orders two values: nil first, then numbers, times and bools by
// their natural order, falling back to numeric strings and finally a
// case-insensitive string comparison.
func (v Value) Compare(other Value) int {

	switch {
	case v.Raw == nil && other.Raw == nil:
		return 0
	case v.Raw == nil:
		return -1
	case other.Raw == nil:
		return 1
	}

	a, errA := v.Float()
	b, errB := other.Float()
	if errA == nil && errB == nil {
		return compareFloat(a, b)
	}

	ta, errA := v.Time()
	tb, errB := other.Time()
	if errA == nil && errB == nil {
		return ta.Compare(tb)
	}

	ba, errA := v.Bool()
	bb, errB := other.Bool()
	if errA == nil && errB == nil {
		switch {
		case ba == bb:
			return 0
		case !ba:
			return -1
		}
		return 1
	}

	sa, sb := v.String(), other.String()
	fa, errA := strconv.ParseFloat(sa, 64)
	fb, errB := strconv.ParseFloat(sb, 64)
	if errA == nil && errB == nil {
		return compareFloat(fa, fb)
	}

	return strings.Compare(strings.ToLower(sa), strings.ToLower(sb))
}

// Row is one record shown as a grid line.
// Id is unique within the row sequence it is delivered in.
type Row struct {
	Id     string
	Values map[string]Value
}

// Get returns the value for a field, zero Value when absent.
func (row Row) Get(field string) Value {
	return row.Values[field]
}

// Map returns the raw values keyed by field, id included.
func (row Row) Map() map[string]any {

	data := make(map[string]any, len(row.Values)+1)
	for field, val := range row.Values {
		data[field] = val.Raw
	}
	data["id"] = row.Id

	return data
}

// unexported

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
