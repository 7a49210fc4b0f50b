package mqtt

import (
	"testing"

	"github.com/penyiramanotomatis99/dasboard-penyiraman/internal/models"
	"github.com/penyiramanotomatis99/dasboard-penyiraman/internal/services"
	"github.com/penyiramanotomatis99/dasboard-penyiraman/internal/store"
)

func newTestClient(devices []models.Device, dataStore *store.Store) *Client {
	return NewClient(DefaultConfig(), devices, services.NewSnapshotMerger(dataStore))
}

func TestSnapshotTopic(t *testing.T) {
	client := newTestClient(nil, store.NewStore())

	got := client.SnapshotTopic("dev-1")
	if got != "irrigation/dev-1/snapshot" {
		t.Errorf("Unexpected snapshot topic: %q", got)
	}
}

func TestHandleSnapshot_MergesAndNotifies(t *testing.T) {
	device := models.Device{ID: "dev-1", Name: "Sprinkler Irrigation"}
	dataStore := store.NewStore()
	client := newTestClient([]models.Device{device}, dataStore)

	var notified models.Record
	client.SetUpdateHandler(func(d models.Device, latest models.Record) {
		if d.ID != device.ID {
			t.Errorf("Expected update for %q, got %q", device.ID, d.ID)
		}
		notified = latest
	})

	client.handleSnapshot(device, []byte(`{
		"k1": {"date_time": "2024-01-05 10:30:00", "soil_moisture": 48},
		"k2": {"date_time": "2024-01-05 09:30:00", "soil_moisture": 52}
	}`))

	if dataStore.RecordCount() != 2 {
		t.Fatalf("Expected 2 records merged, got %d", dataStore.RecordCount())
	}
	if notified.ID != "k1" {
		t.Errorf("Expected notification with latest record 'k1', got %q", notified.ID)
	}
}

func TestHandleSnapshot_EmptyPayloadKeepsState(t *testing.T) {
	device := models.Device{ID: "dev-1", Name: "Sprinkler Irrigation"}
	dataStore := store.NewStore()
	client := newTestClient([]models.Device{device}, dataStore)

	client.handleSnapshot(device, []byte(`{"k1": {"date_time": "2024-01-05 10:30:00"}}`))

	notifications := 0
	client.SetUpdateHandler(func(models.Device, models.Record) { notifications++ })

	client.handleSnapshot(device, nil)
	client.handleSnapshot(device, []byte("null"))

	if notifications != 0 {
		t.Errorf("Expected no update notifications for empty payloads, got %d", notifications)
	}
	if dataStore.RecordCount() != 1 {
		t.Errorf("Expected prior state untouched, got %d records", dataStore.RecordCount())
	}
}

func TestHandleSnapshot_MalformedPayloadReportsError(t *testing.T) {
	device := models.Device{ID: "dev-1", Name: "Sprinkler Irrigation"}
	dataStore := store.NewStore()
	client := newTestClient([]models.Device{device}, dataStore)

	var reported error
	client.SetErrorHandler(func(err error) { reported = err })

	client.handleSnapshot(device, []byte("{not json"))

	if reported == nil {
		t.Error("Expected decode failure to reach the error handler")
	}
	if dataStore.RecordCount() != 0 {
		t.Errorf("Expected nothing stored for malformed payload, got %d", dataStore.RecordCount())
	}
}
