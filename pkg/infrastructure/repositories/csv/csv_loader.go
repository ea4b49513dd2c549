package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/agrierp/pkg/domain/entities"
)

var (
	equipmentHeader = []string{"id", "name", "serial_number", "category", "current_hours", "current_kilometers"}
	plansHeader     = []string{"id", "equipment_id", "title", "description", "trigger_unit", "hours_threshold", "kilometers_threshold", "active"}
	readingsHeader  = []string{"equipment_id", "hours", "kilometers", "recorded_at"}
)

// Loader handles loading maintenance data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadEquipment loads equipment and their usage counters from a CSV file
func (l *Loader) LoadEquipment(filename string) ([]*entities.Equipment, error) {
	records, err := readRecords(filename, "equipment", equipmentHeader, false)
	if err != nil {
		return nil, err
	}

	var equipment []*entities.Equipment
	for i, record := range records {
		eq, err := parseEquipment(record)
		if err != nil {
			return nil, fmt.Errorf("equipment CSV row %d: %w", i+2, err)
		}
		equipment = append(equipment, eq)
	}

	return equipment, nil
}

// LoadPlans loads maintenance plans from a CSV file.
// Unknown trigger units are rejected here so they never reach evaluation.
func (l *Loader) LoadPlans(filename string) ([]*entities.MaintenancePlan, error) {
	records, err := readRecords(filename, "plans", plansHeader, false)
	if err != nil {
		return nil, err
	}

	var plans []*entities.MaintenancePlan
	for i, record := range records {
		plan, err := parsePlan(record)
		if err != nil {
			return nil, fmt.Errorf("plans CSV row %d: %w", i+2, err)
		}
		plans = append(plans, plan)
	}

	return plans, nil
}

// LoadReadings loads usage readings from a CSV file. A header-only file
// yields no readings.
func (l *Loader) LoadReadings(filename string) ([]*entities.UsageReading, error) {
	records, err := readRecords(filename, "readings", readingsHeader, true)
	if err != nil {
		return nil, err
	}

	var readings []*entities.UsageReading
	for i, record := range records {
		reading, err := parseReading(record)
		if err != nil {
			return nil, fmt.Errorf("readings CSV row %d: %w", i+2, err)
		}
		readings = append(readings, reading)
	}

	return readings, nil
}

// readRecords opens a CSV file, validates its header and returns the data rows.
// allowEmpty accepts a file holding only the header.
func readRecords(filename, kind string, expectedHeader []string, allowEmpty bool) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%s CSV must have a header", kind)
	}
	if len(records) < 2 && !allowEmpty {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", kind)
	}

	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", kind, expectedHeader, header)
	}

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s CSV row %d: expected %d columns, got %d", kind, i+2, len(expectedHeader), len(record))
		}
	}

	return records[1:], nil
}

// Helper functions for parsing CSV records

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

// parseCounter reads a usage counter or threshold. Empty cells default to zero.
func parseCounter(name, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", name, raw)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%s cannot be negative, got %s", name, raw)
	}

	return d.InexactFloat64(), nil
}

func parseEquipment(record []string) (*entities.Equipment, error) {
	hours, err := parseCounter("current_hours", record[4])
	if err != nil {
		return nil, err
	}
	kilometers, err := parseCounter("current_kilometers", record[5])
	if err != nil {
		return nil, err
	}

	return entities.NewEquipment(
		entities.EquipmentID(strings.TrimSpace(record[0])),
		strings.TrimSpace(record[1]),
		strings.TrimSpace(record[2]),
		strings.TrimSpace(record[3]),
		hours,
		kilometers,
	)
}

func parsePlan(record []string) (*entities.MaintenancePlan, error) {
	unit, err := entities.ParseTriggerUnit(record[4])
	if err != nil {
		return nil, err
	}
	hoursThreshold, err := parseCounter("hours_threshold", record[5])
	if err != nil {
		return nil, err
	}
	kilometersThreshold, err := parseCounter("kilometers_threshold", record[6])
	if err != nil {
		return nil, err
	}
	trigger, err := entities.NewMaintenanceTrigger(unit, hoursThreshold, kilometersThreshold)
	if err != nil {
		return nil, err
	}

	active := true
	if raw := strings.TrimSpace(record[7]); raw != "" {
		active, err = strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid active flag: %s", raw)
		}
	}

	return entities.NewMaintenancePlan(
		entities.PlanID(strings.TrimSpace(record[0])),
		entities.EquipmentID(strings.TrimSpace(record[1])),
		strings.TrimSpace(record[2]),
		strings.TrimSpace(record[3]),
		*trigger,
		active,
	)
}

func parseReading(record []string) (*entities.UsageReading, error) {
	hours, err := parseCounter("hours", record[1])
	if err != nil {
		return nil, err
	}
	kilometers, err := parseCounter("kilometers", record[2])
	if err != nil {
		return nil, err
	}
	recordedAt, err := parseTimestamp(record[3])
	if err != nil {
		return nil, err
	}

	return entities.NewUsageReading(entities.EquipmentID(strings.TrimSpace(record[0])), hours, kilometers, recordedAt)
}

func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid recorded_at format: %s (expected RFC3339 or YYYY-MM-DD)", raw)
	}
	return t, nil
}
