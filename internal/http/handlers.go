package http

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/penyiramanotomatis99/dasboard-penyiraman/internal/export"
	"github.com/penyiramanotomatis99/dasboard-penyiraman/internal/models"
	"github.com/penyiramanotomatis99/dasboard-penyiraman/internal/store"
	"github.com/penyiramanotomatis99/dasboard-penyiraman/internal/views"
)

// dateLayout is the calendar-date form the filter controls submit.
const dateLayout = "2006-01-02"

// Handlers contains all HTTP request handlers.
type Handlers struct {
	store         *store.Store
	devices       []models.Device
	exportService *export.Service
}

// NewHandlers creates a new handlers instance.
func NewHandlers(dataStore *store.Store, devices []models.Device) *Handlers {
	return &Handlers{
		store:         dataStore,
		devices:       devices,
		exportService: export.NewService(),
	}
}

// APIResponse represents a standard API response.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// SeriesPoint is one chart point: the display label and the value of
// the selected metric.
type SeriesPoint struct {
	DateTime string  `json:"date_time"`
	Value    float64 `json:"value"`
	TimeMs   int64   `json:"time_ms"`
}

// GetDevices returns the configured device registry.
func (h *Handlers) GetDevices(w http.ResponseWriter, r *http.Request) {
	h.sendJSONResponse(w, APIResponse{Success: true, Data: h.devices})
}

// GetLatestReadings returns the latest record per device for the
// realtime status panel. Devices that have not reported yet are absent.
func (h *Handlers) GetLatestReadings(w http.ResponseWriter, r *http.Request) {
	h.sendJSONResponse(w, APIResponse{Success: true, Data: h.store.AllLatest()})
}

// GetRecords returns the filtered view: all records matching the
// current device and date criteria, in store order.
func (h *Handlers) GetRecords(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		h.sendErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	view := views.Apply(h.store.Records(), filter)
	h.sendJSONResponse(w, APIResponse{Success: true, Data: view})
}

// GetTableRows returns the most recent records across all devices from
// the filtered view, newest first.
func (h *Handlers) GetTableRows(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		h.sendErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	view := views.Apply(h.store.Records(), filter)
	h.sendJSONResponse(w, APIResponse{Success: true, Data: views.TableRows(view)})
}

// GetChartSeries returns the bounded plotting series for one device
// with the selected metric applied.
func (h *Handlers) GetChartSeries(w http.ResponseWriter, r *http.Request) {
	deviceID := r.URL.Query().Get("device")
	if deviceID == "" || deviceID == models.DeviceAll {
		h.sendErrorResponse(w, "Query parameter 'device' must name one device", http.StatusBadRequest)
		return
	}

	metric := views.Metric(r.URL.Query().Get("metric"))
	if metric == "" {
		metric = views.MetricMoisture
	}
	if !metric.Valid() {
		h.sendErrorResponse(w, "Invalid metric. Use 'moisture' or 'volume'", http.StatusBadRequest)
		return
	}

	filter, err := h.parseFilter(r)
	if err != nil {
		h.sendErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	view := views.Apply(h.store.Records(), filter)
	series := views.ChartSeries(view, deviceID)

	points := make([]SeriesPoint, 0, len(series))
	for _, record := range series {
		points = append(points, SeriesPoint{
			DateTime: record.DateTime,
			Value:    metric.ValueOf(record),
			TimeMs:   record.TimeMs,
		})
	}

	h.sendJSONResponse(w, APIResponse{Success: true, Data: map[string]interface{}{
		"device": deviceID,
		"metric": metric,
		"points": points,
	}})
}

// ExportRecordsCSV streams the filtered view as the dashboard's CSV
// download. The export reflects the filter, not the table truncation.
func (h *Handlers) ExportRecordsCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		h.sendErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	view := views.Apply(h.store.Records(), filter)
	payload := h.exportService.GenerateCSV(view)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.CSVFilename))
	if _, err := w.Write([]byte(payload)); err != nil {
		log.Printf("Failed to write CSV response: %v", err)
	}
}

// ExportRecordsExcel streams the filtered view as an XLSX workbook.
func (h *Handlers) ExportRecordsExcel(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		h.sendErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	view := views.Apply(h.store.Records(), filter)
	excelFile, err := h.exportService.GenerateExcel(view)
	if err != nil {
		h.sendErrorResponse(w, "Failed to generate Excel file", http.StatusInternalServerError)
		return
	}
	defer excelFile.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.XLSXFilename))
	if err := excelFile.Write(w); err != nil {
		log.Printf("Failed to write Excel response: %v", err)
	}
}

// GetSystemStats returns record totals for monitoring.
func (h *Handlers) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	h.sendJSONResponse(w, APIResponse{Success: true, Data: map[string]interface{}{
		"total_records":     h.store.RecordCount(),
		"records_by_device": h.store.CountByDevice(),
		"devices":           len(h.devices),
	}})
}

// parseFilter builds the filter criteria from query parameters. The
// device selector defaults to ALL, start and end to open bounds.
func (h *Handlers) parseFilter(r *http.Request) (views.Filter, error) {
	filter := views.Filter{DeviceID: models.DeviceAll}

	if device := r.URL.Query().Get("device"); device != "" {
		filter.DeviceID = device
	}

	if startStr := r.URL.Query().Get("start"); startStr != "" {
		start, err := time.ParseInLocation(dateLayout, startStr, time.Local)
		if err != nil {
			return views.Filter{}, fmt.Errorf("invalid start date %q, use YYYY-MM-DD", startStr)
		}
		filter.Start = start
	}

	if endStr := r.URL.Query().Get("end"); endStr != "" {
		end, err := time.ParseInLocation(dateLayout, endStr, time.Local)
		if err != nil {
			return views.Filter{}, fmt.Errorf("invalid end date %q, use YYYY-MM-DD", endStr)
		}
		filter.End = end
	}

	return filter, nil
}

func (h *Handlers) sendJSONResponse(w http.ResponseWriter, response APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func (h *Handlers) sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(APIResponse{
		Success: false,
		Error:   message,
	})
}
