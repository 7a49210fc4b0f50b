package models

// Device identifies one field irrigation unit. The set of known devices
// is static configuration supplied at startup, not derived from data.
type Device struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DeviceAll is the selector value matching every configured device.
const DeviceAll = "ALL"

// Record is one normalized telemetry observation for a single device.
// Every field has a defined default so a Record can always be built
// from arbitrarily malformed raw input.
type Record struct {
	ID              string  `json:"id"`
	DeviceID        string  `json:"device_id"`
	DeviceName      string  `json:"device_name"`
	DateTime        string  `json:"date_time"`
	SoilMoisture    float64 `json:"soil_moisture"`
	PumpState       string  `json:"pump_state"`
	PumpDurationSec float64 `json:"pump_duration_sec"`
	WaterVolumeMl   float64 `json:"water_volume_ml"`
	TimeMs          int64   `json:"time_ms"`
}

// RawFields is the shape of one entry in a device snapshot as delivered
// by the subscription source. Firmware revisions disagree on whether
// numeric fields arrive as JSON numbers or strings, so the ambiguous
// ones are kept loose and coerced in NewRecord.
type RawFields struct {
	DateTime        string      `json:"date_time"`
	Timestamp       interface{} `json:"timestamp"`
	SoilMoisture    interface{} `json:"soil_moisture"`
	PumpState       string      `json:"pump_state"`
	PumpDurationSec interface{} `json:"pump_duration_sec"`
	WaterVolumeMl   interface{} `json:"water_volume_ml"`
}

// Snapshot is the full current set of raw records for one device,
// keyed by the raw record key.
type Snapshot map[string]RawFields

// NewRecord builds a normalized Record from one raw snapshot entry.
// Missing or malformed fields never fail: text fields default to "-",
// numeric fields to 0 and the resolved instant to the epoch sentinel.
func NewRecord(rawKey string, device Device, raw RawFields) Record {
	dateTime := raw.DateTime
	if dateTime == "" {
		dateTime = "-"
	}
	pumpState := raw.PumpState
	if pumpState == "" {
		pumpState = "-"
	}

	return Record{
		ID:              rawKey,
		DeviceID:        device.ID,
		DeviceName:      device.Name,
		DateTime:        dateTime,
		SoilMoisture:    toNumber(raw.SoilMoisture),
		PumpState:       pumpState,
		PumpDurationSec: toNumber(raw.PumpDurationSec),
		WaterVolumeMl:   toNumber(raw.WaterVolumeMl),
		TimeMs:          ResolveInstant(raw.DateTime, raw.Timestamp),
	}
}
