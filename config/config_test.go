package config

import "testing"

func TestParseDevices_EmptyFallsBackToDefaults(t *testing.T) {
	devices := parseDevices("")

	if len(devices) != 2 {
		t.Fatalf("Expected 2 default devices, got %d", len(devices))
	}
	if devices[0].Name != "Sprinkler Irrigation" || devices[1].Name != "Subsurface Drip Irrigation" {
		t.Errorf("Unexpected default registry: %v", devices)
	}
}

func TestParseDevices_ParsesPairs(t *testing.T) {
	devices := parseDevices("dev-1=Plot North, dev-2=Plot South")

	if len(devices) != 2 {
		t.Fatalf("Expected 2 devices, got %d", len(devices))
	}
	if devices[0].ID != "dev-1" || devices[0].Name != "Plot North" {
		t.Errorf("Unexpected first device: %+v", devices[0])
	}
	if devices[1].ID != "dev-2" || devices[1].Name != "Plot South" {
		t.Errorf("Unexpected second device: %+v", devices[1])
	}
}

func TestParseDevices_SkipsMalformedPairs(t *testing.T) {
	devices := parseDevices("dev-1=Plot North,no-separator,=nameless")

	if len(devices) != 1 {
		t.Fatalf("Expected the single well-formed pair, got %d", len(devices))
	}
	if devices[0].ID != "dev-1" {
		t.Errorf("Unexpected device: %+v", devices[0])
	}
}

func TestParseDevices_FullyMalformedFallsBack(t *testing.T) {
	devices := parseDevices("garbage,more garbage")

	if len(devices) != 2 || devices[0].Name != "Sprinkler Irrigation" {
		t.Errorf("Expected fallback to defaults, got %v", devices)
	}
}
