package entities

import (
	"fmt"
	"time"
)

// EquipmentUsageSnapshot holds an equipment's cumulative usage counters at
// evaluation time. Counters never decrease over the equipment's lifetime.
type EquipmentUsageSnapshot struct {
	CurrentHours      float64 `json:"current_hours"`
	CurrentKilometers float64 `json:"current_kilometers"`
}

// NewUsageSnapshot creates a validated EquipmentUsageSnapshot
func NewUsageSnapshot(currentHours, currentKilometers float64) (*EquipmentUsageSnapshot, error) {
	if err := checkCounter("current hours", currentHours); err != nil {
		return nil, err
	}
	if err := checkCounter("current kilometers", currentKilometers); err != nil {
		return nil, err
	}

	return &EquipmentUsageSnapshot{
		CurrentHours:      currentHours,
		CurrentKilometers: currentKilometers,
	}, nil
}

// Covers reports whether every counter in s is at least the matching counter in prev
func (s EquipmentUsageSnapshot) Covers(prev EquipmentUsageSnapshot) bool {
	return s.CurrentHours >= prev.CurrentHours && s.CurrentKilometers >= prev.CurrentKilometers
}

// UsageReading is an operational data entry that moves an equipment's counters forward
type UsageReading struct {
	EquipmentID EquipmentID
	Hours       float64
	Kilometers  float64
	RecordedAt  time.Time
}

// NewUsageReading creates a validated UsageReading
func NewUsageReading(equipmentID EquipmentID, hours, kilometers float64, recordedAt time.Time) (*UsageReading, error) {
	if string(equipmentID) == "" {
		return nil, fmt.Errorf("equipment ID cannot be empty")
	}
	if err := checkCounter("hours", hours); err != nil {
		return nil, err
	}
	if err := checkCounter("kilometers", kilometers); err != nil {
		return nil, err
	}

	return &UsageReading{
		EquipmentID: equipmentID,
		Hours:       hours,
		Kilometers:  kilometers,
		RecordedAt:  recordedAt,
	}, nil
}

// Snapshot returns the counters carried by the reading
func (r UsageReading) Snapshot() EquipmentUsageSnapshot {
	return EquipmentUsageSnapshot{CurrentHours: r.Hours, CurrentKilometers: r.Kilometers}
}
