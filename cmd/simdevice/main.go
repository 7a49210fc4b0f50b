package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/joho/godotenv"
	"github.com/penyiramanotomatis99/dasboard-penyiraman/config"
	"github.com/penyiramanotomatis99/dasboard-penyiraman/internal/models"
	"github.com/penyiramanotomatis99/dasboard-penyiraman/internal/mqtt"
	"github.com/penyiramanotomatis99/dasboard-penyiraman/internal/services"
	"github.com/penyiramanotomatis99/dasboard-penyiraman/internal/store"
)

// simdevice publishes synthetic retained device snapshots so the
// dashboard backend can be exercised without field hardware. Each tick
// grows the device's snapshot by one reading and republishes the whole
// thing, the same way the real firmware re-delivers its full history.
func main() {
	var (
		deviceID = flag.String("device", "", "Device ID to simulate (default: first configured device)")
		count    = flag.Int("count", 10, "Number of readings to publish")
		interval = flag.Duration("interval", 2*time.Second, "Delay between snapshot publishes")
	)
	flag.Parse()

	log.Println("🚰 Penyiraman Device Simulator")
	log.Println("==============================")

	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found: %v", err)
	}
	cfg := config.Load()

	device := cfg.Devices[0]
	if *deviceID != "" {
		found := false
		for _, d := range cfg.Devices {
			if d.ID == *deviceID {
				device = d
				found = true
				break
			}
		}
		if !found {
			device = models.Device{ID: *deviceID, Name: *deviceID}
		}
	}

	client := mqtt.NewClient(&mqtt.Config{
		BrokerURL:   cfg.MQTT.BrokerURL,
		ClientID:    cfg.MQTT.ClientID + "_sim",
		Username:    cfg.MQTT.Username,
		Password:    cfg.MQTT.Password,
		KeepAlive:   cfg.MQTT.KeepAlive,
		PingTimeout: cfg.MQTT.PingTimeout,
		TopicPrefix: cfg.MQTT.TopicPrefix,
	}, nil, services.NewSnapshotMerger(store.NewStore()))

	if err := client.Connect(); err != nil {
		log.Fatalf("❌ Failed to connect to MQTT broker: %v", err)
	}
	defer client.Disconnect()

	log.Printf("✅ Connected to broker %s, simulating %s (%s)",
		cfg.MQTT.BrokerURL, device.Name, device.ID)

	snapshot := models.Snapshot{}
	for i := 0; i < *count; i++ {
		now := time.Now()
		pumpOn := rand.Intn(3) == 0

		raw := models.RawFields{
			DateTime:     now.Format("2006-01-02 15:04:05"),
			Timestamp:    now.Unix(),
			SoilMoisture: 30 + rand.Float64()*50,
			PumpState:    "OFF",
		}
		if pumpOn {
			raw.PumpState = "ON"
			raw.PumpDurationSec = float64(5 + rand.Intn(25))
			raw.WaterVolumeMl = float64(100 + rand.Intn(400))
		}
		snapshot[fmt.Sprintf("reading-%d", now.UnixMilli())] = raw

		payload, err := json.Marshal(snapshot)
		if err != nil {
			log.Fatalf("❌ Failed to encode snapshot: %v", err)
		}
		if err := client.PublishSnapshot(device.ID, payload); err != nil {
			log.Fatalf("❌ Failed to publish snapshot: %v", err)
		}

		log.Printf("📤 Snapshot %d/%d published (%d readings, pump %s)",
			i+1, *count, len(snapshot), raw.PumpState)
		time.Sleep(*interval)
	}

	log.Println("✅ Simulation complete")
}
