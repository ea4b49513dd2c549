package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/agrierp/pkg/application/dto"
	"github.com/vsinha/agrierp/pkg/domain/entities"
)

func sampleReport() *dto.MaintenanceReport {
	return &dto.MaintenanceReport{
		Summary: dto.ReportSummary{Total: 3, Overdue: 1, OK: 1, Untracked: 1},
		Plans: []dto.PlanStatus{
			{PlanID: "PL-tyre", EquipmentID: "EQ-2", EquipmentName: "Truck", Title: "Tyre rotation", TriggerUnit: "kilometers",
				Due: true, Remaining: entities.RemainingUsage{Value: 500, Unit: "km", Overdue: true}, State: dto.StateOverdue},
			{PlanID: "PL-oil", EquipmentID: "EQ-1", EquipmentName: "Tractor", Title: "Engine oil", TriggerUnit: "hours",
				Remaining: entities.RemainingUsage{Value: 19.96, Unit: "h"}, State: dto.StateOK},
			{PlanID: "PL-insp", EquipmentID: "EQ-2", EquipmentName: "Truck", Title: "Inspection", TriggerUnit: "none",
				State: dto.StateUntracked},
		},
	}
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		name     string
		in       entities.RemainingUsage
		expected string
	}{
		{"hours", entities.RemainingUsage{Value: 20, Unit: "h"}, "20.0 h"},
		{"rounded", entities.RemainingUsage{Value: 19.96, Unit: "h"}, "20.0 h"},
		{"kilometers", entities.RemainingUsage{Value: 512.34, Unit: "km", Overdue: true}, "512.3 km"},
		{"untracked", entities.RemainingUsage{}, "-"},
		{"nan", entities.RemainingUsage{Value: math.NaN(), Unit: "h"}, "n/a h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatRemaining(tt.in))
		})
	}
}

func TestGenerate_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(sampleReport(), Config{Format: "text", Writer: &buf}))

	out := buf.String()
	assert.Contains(t, out, "Plans: 3  Overdue: 1")
	assert.Contains(t, out, "OVERDUE")
	assert.Contains(t, out, "500.0 km over")
	assert.Contains(t, out, "20.0 h")
	assert.Contains(t, out, "UNTRACKED")
}

func TestGenerate_TextOnlyDue(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(sampleReport(), Config{Format: "text", OnlyDue: true, Writer: &buf}))

	out := buf.String()
	assert.Contains(t, out, "PL-tyre")
	assert.NotContains(t, out, "PL-oil")
	assert.NotContains(t, out, "PL-insp")
}

func TestGenerate_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(sampleReport(), Config{Format: "json", Writer: &buf}))

	var decoded dto.MaintenanceReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Plans, 3)
	assert.Equal(t, entities.RemainingKilometers, decoded.Plans[0].Remaining.Unit)
	assert.True(t, decoded.Plans[0].Remaining.Overdue)
}

func TestGenerate_CSV(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Generate(sampleReport(), Config{Format: "csv", OutputDir: dir, Writer: &bytes.Buffer{}}))

	file, err := os.Open(filepath.Join(dir, csvFileName))
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "plan_id", records[0][0])
	assert.Equal(t, []string{"PL-tyre", "EQ-2", "Tyre rotation", "kilometers", "overdue", "true", "true", "500", "km"}, records[1])
}

func TestGenerate_Errors(t *testing.T) {
	err := Generate(sampleReport(), Config{Format: "csv", Writer: &bytes.Buffer{}})
	assert.EqualError(t, err, "output directory required for CSV format")

	err = Generate(sampleReport(), Config{Format: "pdf", Writer: &bytes.Buffer{}})
	assert.True(t, strings.HasPrefix(err.Error(), "unsupported output format"))
}
