package store

import (
	"sync"

	"github.com/penyiramanotomatis99/dasboard-penyiraman/internal/models"
)

// Store holds every telemetry record known for the current session
// across all devices, plus the latest record per device. Each device's
// raw snapshot is authoritative for that device's full history, so
// mutation happens exclusively through ReplaceDeviceRecords: the whole
// per-device slice is swapped in one step, which keeps duplicate or
// stale records from surviving a snapshot update.
type Store struct {
	mu             sync.RWMutex
	records        []models.Record
	latestByDevice map[string]models.Record
}

// NewStore creates a new empty in-memory store.
func NewStore() *Store {
	return &Store{
		records:        []models.Record{},
		latestByDevice: make(map[string]models.Record),
	}
}

// ReplaceDeviceRecords swaps in the full record set for one device,
// leaving every other device's records untouched. The slice must be
// ordered newest-first; the first element becomes the device's latest
// reading. An empty slice is a no-op so that an empty snapshot never
// erases previously known state.
func (s *Store) ReplaceDeviceRecords(deviceID string, records []models.Record) {
	if len(records) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]models.Record, 0, len(s.records)+len(records))
	for _, r := range s.records {
		if r.DeviceID != deviceID {
			kept = append(kept, r)
		}
	}
	s.records = append(kept, records...)
	s.latestByDevice[deviceID] = records[0]
}

// Records returns a copy of all known records in store order.
func (s *Store) Records() []models.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]models.Record, len(s.records))
	copy(records, s.records)
	return records
}

// LatestForDevice returns the most recent record for a specific device.
func (s *Store) LatestForDevice(deviceID string) (models.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.latestByDevice[deviceID]
	return record, exists
}

// AllLatest returns the latest record for each device that has
// reported at least once.
func (s *Store) AllLatest() map[string]models.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]models.Record, len(s.latestByDevice))
	for deviceID, record := range s.latestByDevice {
		result[deviceID] = record
	}
	return result
}

// RecordCount returns the total number of stored records.
func (s *Store) RecordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

// CountByDevice returns the number of stored records per device.
func (s *Store) CountByDevice() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, r := range s.records {
		counts[r.DeviceID]++
	}
	return counts
}
