package entities

import "fmt"

// EquipmentID identifies a piece of equipment (tractor, harvester, sprayer...)
type EquipmentID string

// Equipment represents a tracked machine and its cumulative usage counters
type Equipment struct {
	ID                EquipmentID
	Name              string
	SerialNumber      string
	Category          string
	CurrentHours      float64
	CurrentKilometers float64
}

// NewEquipment creates a validated Equipment
func NewEquipment(id EquipmentID, name, serialNumber, category string, currentHours, currentKilometers float64) (*Equipment, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("equipment ID cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("equipment name cannot be empty")
	}
	if err := checkCounter("current hours", currentHours); err != nil {
		return nil, err
	}
	if err := checkCounter("current kilometers", currentKilometers); err != nil {
		return nil, err
	}

	return &Equipment{
		ID:                id,
		Name:              name,
		SerialNumber:      serialNumber,
		Category:          category,
		CurrentHours:      currentHours,
		CurrentKilometers: currentKilometers,
	}, nil
}

// Usage returns the equipment's counters as a snapshot
func (e *Equipment) Usage() EquipmentUsageSnapshot {
	return EquipmentUsageSnapshot{
		CurrentHours:      e.CurrentHours,
		CurrentKilometers: e.CurrentKilometers,
	}
}
