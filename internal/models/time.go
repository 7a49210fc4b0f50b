package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// dateTimeLayout matches the "YYYY-MM-DDTHH:MM:SS" form produced by the
// device firmware once the date/time separator space is normalized.
const dateTimeLayout = "2006-01-02T15:04:05"

// ResolveInstant normalizes the heterogeneous time encodings emitted by
// device firmware into a single comparable instant in milliseconds
// since epoch. Resolution order:
//
//  1. A textual date_time label, parsed as a local calendar date-time
//     after replacing the separating space with "T".
//  2. A numeric or stringified Unix timestamp; values of 10 or fewer
//     decimal digits are seconds, longer values already milliseconds.
//  3. The sentinel 0 ("unknown = oldest").
//
// It never fails: an unresolvable timestamp degrades to the sentinel so
// downstream sorts stay well-defined.
func ResolveInstant(dateTime string, timestamp interface{}) int64 {
	if dateTime != "" && dateTime != "-" {
		normalized := strings.Replace(dateTime, " ", "T", 1)
		if t, err := time.ParseInLocation(dateTimeLayout, normalized, time.Local); err == nil {
			return t.UnixMilli()
		}
	}

	if ts, ok := toInt64(timestamp); ok && ts != 0 {
		if digitCount(ts) <= 10 {
			return ts * 1000
		}
		return ts
	}

	return 0
}

// digitCount returns the number of decimal digits in n, ignoring sign.
func digitCount(n int64) int {
	if n < 0 {
		n = -n
	}
	return len(strconv.FormatInt(n, 10))
}

// toNumber coerces a loosely-typed raw field to a float64, defaulting
// to 0 for absent or non-numeric values.
func toNumber(v interface{}) float64 {
	f, _ := toFloat64(v)
	return f
}

func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func toInt64(v interface{}) (int64, bool) {
	f, ok := toFloat64(v)
	if !ok {
		return 0, false
	}
	return int64(f), true
}
