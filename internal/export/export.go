package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/penyiramanotomatis99/dasboard-penyiraman/internal/models"
	"github.com/xuri/excelize/v2"
)

// CSVFilename is the fixed download name the dashboard expects.
const CSVFilename = "irrigation_data.csv"

// XLSXFilename is the download name for the Excel variant.
const XLSXFilename = "irrigation_data.xlsx"

// csvHeader is fixed; existing compatibility tooling splits on it.
const csvHeader = "Device,Date Time,Moisture (%),Pump State,Pump Duration (sec),Water Volume (ml)"

// Service serializes filtered record sets for download.
type Service struct{}

// NewService creates a new export service instance.
func NewService() *Service {
	return &Service{}
}

// GenerateCSV renders the records as comma-delimited text: the fixed
// header row followed by one line per record in the order given, using
// the display fields. Fields are joined as-is; values containing the
// delimiter are not escaped, which is a known limitation kept for
// byte-for-byte compatibility with the existing dashboard export.
func (s *Service) GenerateCSV(records []models.Record) string {
	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')

	for _, r := range records {
		b.WriteString(r.DeviceName)
		b.WriteByte(',')
		b.WriteString(r.DateTime)
		b.WriteByte(',')
		b.WriteString(formatNumber(r.SoilMoisture))
		b.WriteByte(',')
		b.WriteString(r.PumpState)
		b.WriteByte(',')
		b.WriteString(formatNumber(r.PumpDurationSec))
		b.WriteByte(',')
		b.WriteString(formatNumber(r.WaterVolumeMl))
		b.WriteByte('\n')
	}
	return b.String()
}

// formatNumber renders a numeric display field without a trailing
// fractional part for whole values.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// GenerateExcel renders the records as a styled XLSX workbook with one
// telemetry sheet. The caller owns closing the returned file.
func (s *Service) GenerateExcel(records []models.Record) (*excelize.File, error) {
	f := excelize.NewFile()

	sheetName := "Telemetry"
	f.SetSheetName("Sheet1", sheetName)

	headers := strings.Split(csvHeader, ",")
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to place header %q: %w", header, err)
		}
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"70AD47"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build header style: %w", err)
	}
	f.SetCellStyle(sheetName, "A1", "F1", headerStyle)

	for i, r := range records {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.DeviceName)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.DateTime)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.SoilMoisture)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.PumpState)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), r.PumpDurationSec)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), r.WaterVolumeMl)
	}

	f.SetColWidth(sheetName, "A", "B", 24)
	f.SetColWidth(sheetName, "C", "F", 16)

	f.SetDocProps(&excelize.DocProperties{
		Creator:     "Penyiraman Dashboard",
		Title:       "Irrigation Telemetry Export",
		Subject:     "Irrigation telemetry records",
		Created:     time.Now().Format(time.RFC3339),
		Description: "Filtered irrigation telemetry record export",
	})

	return f, nil
}
