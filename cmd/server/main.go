package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/penyiramanotomatis99/dasboard-penyiraman/config"
	httphandlers "github.com/penyiramanotomatis99/dasboard-penyiraman/internal/http"
	"github.com/penyiramanotomatis99/dasboard-penyiraman/internal/models"
	"github.com/penyiramanotomatis99/dasboard-penyiraman/internal/mqtt"
	"github.com/penyiramanotomatis99/dasboard-penyiraman/internal/services"
	"github.com/penyiramanotomatis99/dasboard-penyiraman/internal/store"
	"github.com/penyiramanotomatis99/dasboard-penyiraman/internal/ws"
)

func main() {
	log.Println("🌱 Starting Penyiraman Irrigation Dashboard Backend...")

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found: %v", err)
	}

	// Load configuration
	cfg := config.Load()
	log.Printf("📋 Loaded configuration: Server port=%s, %d configured devices",
		cfg.Server.Port, len(cfg.Devices))
	for _, device := range cfg.Devices {
		log.Printf("   Device: %s (%s)", device.Name, device.ID)
	}

	// Initialize in-memory record store; state lives for the session
	dataStore := store.NewStore()
	merger := services.NewSnapshotMerger(dataStore)

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	go wsHub.Run()
	log.Println("🔌 Started WebSocket hub")

	// Initialize MQTT snapshot subscriptions (skip if no broker configured)
	var mqttClient *mqtt.Client
	if cfg.MQTT.BrokerURL != "" {
		client := mqtt.NewClient(&mqtt.Config{
			BrokerURL:   cfg.MQTT.BrokerURL,
			ClientID:    cfg.MQTT.ClientID,
			Username:    cfg.MQTT.Username,
			Password:    cfg.MQTT.Password,
			KeepAlive:   cfg.MQTT.KeepAlive,
			PingTimeout: cfg.MQTT.PingTimeout,
			TopicPrefix: cfg.MQTT.TopicPrefix,
		}, cfg.Devices, merger)

		client.SetUpdateHandler(func(device models.Device, latest models.Record) {
			wsHub.BroadcastDeviceUpdate(device, latest)
		})
		client.SetErrorHandler(func(err error) {
			wsHub.BroadcastError(err.Error())
		})

		if err := client.Connect(); err != nil {
			log.Printf("⚠️  Warning: Failed to connect to MQTT broker: %v", err)
			log.Println("📡 Continuing without live device snapshots")
		} else {
			if err := client.SubscribeToSnapshots(); err != nil {
				log.Printf("⚠️  Warning: Snapshot subscription failed: %v", err)
			}
			mqttClient = client
			defer mqttClient.Disconnect()
			log.Printf("📡 MQTT client connected - Broker: %s", cfg.MQTT.BrokerURL)
		}
	} else {
		log.Println("📡 MQTT broker not configured, skipping subscriptions")
	}

	// Setup HTTP routes
	router := httphandlers.SetupRoutes(dataStore, cfg.Devices, wsHub)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Printf("🚀 Starting HTTP server on port %s", cfg.Server.Port)
		log.Println("📡 API endpoints available:")
		log.Println("  GET /api/v1/stats - Record totals")
		log.Println("  GET /api/v1/devices - Configured device registry")
		log.Println("  GET /api/v1/records - Filtered records (device, start, end)")
		log.Println("  GET /api/v1/records/latest - Latest record per device")
		log.Println("  GET /api/v1/records/table - Most recent records, newest first")
		log.Println("  GET /api/v1/records/series - Per-device chart series (metric)")
		log.Println("  GET /api/v1/export/records.csv - CSV export of filtered records")
		log.Println("  GET /api/v1/export/records.xlsx - Excel export of filtered records")
		log.Println("  WS /ws - WebSocket for live updates")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ HTTP server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server shutdown complete")
}
