package services

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/penyiramanotomatis99/dasboard-penyiraman/internal/models"
	"github.com/penyiramanotomatis99/dasboard-penyiraman/internal/store"
)

// SnapshotMerger reconciles raw per-device snapshots into the record
// store. It is the sole writer of the store: each delivered snapshot is
// normalized, ordered and swapped in as that device's full history.
type SnapshotMerger struct {
	store *store.Store
}

// NewSnapshotMerger creates a merger writing into the given store.
func NewSnapshotMerger(dataStore *store.Store) *SnapshotMerger {
	return &SnapshotMerger{store: dataStore}
}

// Merge converts one device's raw snapshot into normalized records,
// sorts them newest-first and replaces the device's slice in the store.
// A nil or empty snapshot means "no data yet" and leaves prior state
// untouched. Returns the device's latest record after the merge.
func (m *SnapshotMerger) Merge(device models.Device, snapshot models.Snapshot) (models.Record, bool) {
	if len(snapshot) == 0 {
		return models.Record{}, false
	}

	records := make([]models.Record, 0, len(snapshot))
	for rawKey, raw := range snapshot {
		records = append(records, models.NewRecord(rawKey, device, raw))
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].TimeMs > records[j].TimeMs
	})

	m.store.ReplaceDeviceRecords(device.ID, records)
	return records[0], true
}

// MergeJSON decodes a raw snapshot payload and merges it. An empty
// payload or JSON null is treated as "nothing yet", not an error; only
// a payload that fails to decode at all is reported.
func (m *SnapshotMerger) MergeJSON(device models.Device, payload []byte) (models.Record, bool, error) {
	if len(payload) == 0 {
		return models.Record{}, false, nil
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return models.Record{}, false, fmt.Errorf("failed to decode snapshot for device %s: %w", device.ID, err)
	}

	latest, merged := m.Merge(device, snapshot)
	return latest, merged, nil
}
