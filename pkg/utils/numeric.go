package utils

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
)

// ErrNegative is returned when a count value is below zero.
var ErrNegative = errors.New("negative value")

// ToUint64 converts a scanned column value into a non-negative count.
//
// Drivers disagree on how aggregated integers come back: ClickHouse hands out
// typed (and possibly nullable) Go values, MySQL and PostgreSQL return SUM()
// as DECIMAL/NUMERIC text, SQLite returns int64. NULL is treated as zero.
func ToUint64(v any) (uint64, error) {
	switch t := v.(type) {
	case nil:
		return 0, nil
	case *big.Int:
		if t == nil {
			return 0, nil
		}
		return bigToUint64(t)
	case big.Int:
		return bigToUint64(&t)
	case []byte:
		return parseUint(string(t))
	case string:
		return parseUint(t)
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return 0, nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		if n < 0 {
			return 0, fmt.Errorf("%w: %d", ErrNegative, n)
		}
		return uint64(n), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return floatToUint64(rv.Float())
	case reflect.String:
		return parseUint(rv.String())
	}

	// Unwrapped pointers to big.Int and friends land here.
	if rv.CanInterface() {
		inner := rv.Interface()
		if b, ok := inner.(big.Int); ok {
			return bigToUint64(&b)
		}
		if s, ok := inner.(fmt.Stringer); ok {
			return parseUint(s.String())
		}
	}
	if rv.CanAddr() {
		if s, ok := rv.Addr().Interface().(fmt.Stringer); ok {
			return parseUint(s.String())
		}
	}

	return 0, fmt.Errorf("unsupported numeric type %T", v)
}

func parseUint(raw string) (uint64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return n, nil
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return 0, fmt.Errorf("invalid numeric value %q", raw)
	}
	if !r.IsInt() {
		return 0, fmt.Errorf("non-integral value %q", raw)
	}
	return bigToUint64(r.Num())
}

func floatToUint64(f float64) (uint64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid numeric value %v", f)
	}
	if f < 0 {
		return 0, fmt.Errorf("%w: %v", ErrNegative, f)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("non-integral value %v", f)
	}
	if f >= math.MaxUint64 {
		return 0, fmt.Errorf("value %v overflows uint64", f)
	}
	return uint64(f), nil
}

func bigToUint64(b *big.Int) (uint64, error) {
	if b.Sign() < 0 {
		return 0, fmt.Errorf("%w: %s", ErrNegative, b.String())
	}
	if !b.IsUint64() {
		return 0, fmt.Errorf("value %s overflows uint64", b.String())
	}
	return b.Uint64(), nil
}
