package models

import (
	"testing"
	"time"
)

func TestResolveInstant_DateTimeText(t *testing.T) {
	got := ResolveInstant("2024-01-05 10:30:00", nil)

	want := time.Date(2024, 1, 5, 10, 30, 0, 0, time.Local).UnixMilli()
	if got != want {
		t.Errorf("Expected %d for textual date_time, got %d", want, got)
	}
}

func TestResolveInstant_SecondsTimestamp(t *testing.T) {
	// 10 decimal digits means seconds since epoch
	got := ResolveInstant("", float64(1700000000))

	if got != 1700000000000 {
		t.Errorf("Expected 1700000000000, got %d", got)
	}
}

func TestResolveInstant_MillisecondsTimestamp(t *testing.T) {
	// 13 decimal digits means already milliseconds
	got := ResolveInstant("", float64(1700000000000))

	if got != 1700000000000 {
		t.Errorf("Expected 1700000000000, got %d", got)
	}
}

func TestResolveInstant_StringTimestamp(t *testing.T) {
	got := ResolveInstant("", "1700000000")

	if got != 1700000000000 {
		t.Errorf("Expected stringified timestamp to coerce, got %d", got)
	}
}

func TestResolveInstant_DateTimeWinsOverTimestamp(t *testing.T) {
	got := ResolveInstant("2024-01-05 10:30:00", float64(1700000000))

	want := time.Date(2024, 1, 5, 10, 30, 0, 0, time.Local).UnixMilli()
	if got != want {
		t.Errorf("Expected date_time to take priority, got %d want %d", got, want)
	}
}

func TestResolveInstant_UnresolvableReturnsSentinel(t *testing.T) {
	cases := []struct {
		name      string
		dateTime  string
		timestamp interface{}
	}{
		{"both absent", "", nil},
		{"dash placeholder", "-", nil},
		{"garbage text no timestamp", "not a date", nil},
		{"garbage text garbage timestamp", "not a date", "abc"},
		{"zero timestamp", "", float64(0)},
	}

	for _, tc := range cases {
		if got := ResolveInstant(tc.dateTime, tc.timestamp); got != 0 {
			t.Errorf("%s: expected sentinel 0, got %d", tc.name, got)
		}
	}
}

func TestResolveInstant_GarbageTextFallsBackToTimestamp(t *testing.T) {
	got := ResolveInstant("not a date", float64(1700000000))

	if got != 1700000000000 {
		t.Errorf("Expected fallback to timestamp field, got %d", got)
	}
}

func TestNewRecord_AppliesDefaults(t *testing.T) {
	device := Device{ID: "dev-1", Name: "Sprinkler Irrigation"}

	record := NewRecord("k1", device, RawFields{})

	if record.ID != "k1" {
		t.Errorf("Expected raw key as ID, got %q", record.ID)
	}
	if record.DeviceID != "dev-1" || record.DeviceName != "Sprinkler Irrigation" {
		t.Errorf("Expected device identity to be denormalized, got %q/%q", record.DeviceID, record.DeviceName)
	}
	if record.DateTime != "-" {
		t.Errorf("Expected date_time default \"-\", got %q", record.DateTime)
	}
	if record.PumpState != "-" {
		t.Errorf("Expected pump_state default \"-\", got %q", record.PumpState)
	}
	if record.SoilMoisture != 0 || record.PumpDurationSec != 0 || record.WaterVolumeMl != 0 {
		t.Error("Expected numeric fields to default to 0")
	}
	if record.TimeMs != 0 {
		t.Errorf("Expected epoch sentinel for missing time fields, got %d", record.TimeMs)
	}
}

func TestNewRecord_CoercesStringNumerics(t *testing.T) {
	device := Device{ID: "dev-1", Name: "Sprinkler Irrigation"}

	record := NewRecord("k1", device, RawFields{
		DateTime:        "2024-01-05 10:30:00",
		SoilMoisture:    "55.5",
		PumpState:       "ON",
		PumpDurationSec: float64(12),
		WaterVolumeMl:   "250",
	})

	if record.SoilMoisture != 55.5 {
		t.Errorf("Expected soil_moisture 55.5, got %v", record.SoilMoisture)
	}
	if record.PumpDurationSec != 12 {
		t.Errorf("Expected pump_duration_sec 12, got %v", record.PumpDurationSec)
	}
	if record.WaterVolumeMl != 250 {
		t.Errorf("Expected water_volume_ml 250, got %v", record.WaterVolumeMl)
	}
	if record.TimeMs <= 0 {
		t.Errorf("Expected resolved instant to be positive, got %d", record.TimeMs)
	}
}

func TestNewRecord_NonNumericFieldsDefaultToZero(t *testing.T) {
	device := Device{ID: "dev-1", Name: "Sprinkler Irrigation"}

	record := NewRecord("k1", device, RawFields{
		SoilMoisture:  "wet",
		WaterVolumeMl: map[string]interface{}{"oops": true},
	})

	if record.SoilMoisture != 0 {
		t.Errorf("Expected non-numeric soil_moisture to default to 0, got %v", record.SoilMoisture)
	}
	if record.WaterVolumeMl != 0 {
		t.Errorf("Expected non-numeric water_volume_ml to default to 0, got %v", record.WaterVolumeMl)
	}
}
