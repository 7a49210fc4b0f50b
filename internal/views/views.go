// Package views derives every presentation-facing projection from the
// record store: the filtered view, the per-device chart series and the
// recent-records table. All functions are pure over a snapshot of the
// store and are recomputed on every store or filter change.
package views

import (
	"sort"
	"time"

	"github.com/penyiramanotomatis99/dasboard-penyiraman/internal/models"
)

const (
	// seriesWindow bounds how many points a chart series carries.
	seriesWindow = 20
	// tableLimit bounds the recent-records table.
	tableLimit = 10
)

// Filter holds the active filter criteria. DeviceID is models.DeviceAll
// or one device identity; a zero Start or End means that bound is open.
// Start and End are calendar dates: the range covers the whole start
// day through the whole end day, inclusive.
type Filter struct {
	DeviceID string
	Start    time.Time
	End      time.Time
}

// Apply returns the subset of records matching the filter, preserving
// the input order. The date predicate compares the record's resolved
// instant against [start-of-start-day, end-of-end-day]; the device
// predicate matches on identity. Both must hold.
func Apply(records []models.Record, f Filter) []models.Record {
	startMs := int64(-1 << 62)
	if !f.Start.IsZero() {
		y, m, d := f.Start.Date()
		startMs = time.Date(y, m, d, 0, 0, 0, 0, f.Start.Location()).UnixMilli()
	}

	endMs := int64(1<<62 - 1)
	if !f.End.IsZero() {
		y, m, d := f.End.Date()
		endMs = time.Date(y, m, d, 23, 59, 59, 999000000, f.End.Location()).UnixMilli()
	}

	result := []models.Record{}
	for _, r := range records {
		if r.TimeMs < startMs || r.TimeMs > endMs {
			continue
		}
		if f.DeviceID != "" && f.DeviceID != models.DeviceAll && r.DeviceID != f.DeviceID {
			continue
		}
		result = append(result, r)
	}
	return result
}

// ChartSeries derives the bounded plotting series for one device from a
// filtered view: the device's records in view order, capped at the
// window size, then reversed so the series ascends chronologically.
//
// The view is deliberately not re-sorted by time first; which records
// fall inside the window depends on store order. This mirrors the
// dashboard's long-standing behavior and changing it would change
// which points get charted.
func ChartSeries(view []models.Record, deviceID string) []models.Record {
	series := []models.Record{}
	for _, r := range view {
		if r.DeviceID == deviceID {
			series = append(series, r)
		}
		if len(series) == seriesWindow {
			break
		}
	}

	for i, j := 0, len(series)-1; i < j; i, j = i+1, j-1 {
		series[i], series[j] = series[j], series[i]
	}
	return series
}

// Metric selects which value field a chart series plots.
type Metric string

const (
	MetricMoisture Metric = "moisture"
	MetricVolume   Metric = "volume"
)

// Valid reports whether the metric is one of the supported selectors.
func (m Metric) Valid() bool {
	return m == MetricMoisture || m == MetricVolume
}

// ValueOf returns the record field the metric plots.
func (m Metric) ValueOf(r models.Record) float64 {
	if m == MetricVolume {
		return r.WaterVolumeMl
	}
	return r.SoilMoisture
}

// TableRows derives the recent-records table from a filtered view: the
// globally most recent records across all devices, newest first.
func TableRows(view []models.Record) []models.Record {
	rows := make([]models.Record, len(view))
	copy(rows, view)

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TimeMs > rows[j].TimeMs
	})

	if len(rows) > tableLimit {
		rows = rows[:tableLimit]
	}
	return rows
}
