package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/penyiramanotomatis99/dasboard-penyiraman/internal/models"
	"github.com/penyiramanotomatis99/dasboard-penyiraman/internal/store"
	"github.com/penyiramanotomatis99/dasboard-penyiraman/internal/ws"
)

// SetupRoutes configures all HTTP routes for the irrigation dashboard API.
func SetupRoutes(dataStore *store.Store, devices []models.Device, wsHub *ws.Hub) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"}, // In production, specify allowed origins
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	handlers := NewHandlers(dataStore, devices)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// System stats
		r.Get("/stats", handlers.GetSystemStats)

		// Configured device registry
		r.Get("/devices", handlers.GetDevices)

		// Telemetry record views
		r.Route("/records", func(r chi.Router) {
			// Filtered view (device selector + date range)
			r.Get("/", handlers.GetRecords)

			// Latest record per device for the status panel
			r.Get("/latest", handlers.GetLatestReadings)

			// Most recent records across devices, newest first
			r.Get("/table", handlers.GetTableRows)

			// Bounded per-device chart series
			r.Get("/series", handlers.GetChartSeries)
		})

		// Downloads of the filtered view
		r.Route("/export", func(r chi.Router) {
			r.Get("/records.csv", handlers.ExportRecordsCSV)
			r.Get("/records.xlsx", handlers.ExportRecordsExcel)
		})
	})

	// WebSocket endpoint for live dashboard updates
	if wsHub != nil {
		r.Get("/ws", wsHub.HandleWebSocket)
	}

	return r
}
