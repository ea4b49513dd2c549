package entities

import (
	"fmt"
	"math"
	"strings"
)

// TriggerUnit is the usage dimension that makes a maintenance plan due
type TriggerUnit int

const (
	TriggerNone TriggerUnit = iota
	TriggerHours
	TriggerKilometers
)

// String method for TriggerUnit enum
func (u TriggerUnit) String() string {
	switch u {
	case TriggerNone:
		return "none"
	case TriggerHours:
		return "hours"
	case TriggerKilometers:
		return "kilometers"
	default:
		return "unknown"
	}
}

// Valid reports whether u is one of the enumerated trigger units
func (u TriggerUnit) Valid() bool {
	return u >= TriggerNone && u <= TriggerKilometers
}

// ParseTriggerUnit converts a stored unit name into a TriggerUnit.
// An empty string is read as "none"; anything unrecognised is rejected.
func ParseTriggerUnit(s string) (TriggerUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return TriggerNone, nil
	case "hours":
		return TriggerHours, nil
	case "kilometers":
		return TriggerKilometers, nil
	default:
		return TriggerNone, fmt.Errorf("unknown trigger unit: %q", s)
	}
}

// MaintenanceTrigger is the usage condition under which a plan becomes due.
// Thresholds are ignored when Unit is TriggerNone.
type MaintenanceTrigger struct {
	Unit                TriggerUnit
	HoursThreshold      float64
	KilometersThreshold float64
}

// NewMaintenanceTrigger creates a validated MaintenanceTrigger
func NewMaintenanceTrigger(unit TriggerUnit, hoursThreshold, kilometersThreshold float64) (*MaintenanceTrigger, error) {
	if !unit.Valid() {
		return nil, fmt.Errorf("invalid trigger unit: %d", unit)
	}
	if err := checkCounter("hours threshold", hoursThreshold); err != nil {
		return nil, err
	}
	if err := checkCounter("kilometers threshold", kilometersThreshold); err != nil {
		return nil, err
	}

	return &MaintenanceTrigger{
		Unit:                unit,
		HoursThreshold:      hoursThreshold,
		KilometersThreshold: kilometersThreshold,
	}, nil
}

// checkCounter rejects values that cannot be a cumulative counter or threshold
func checkCounter(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be finite, got %v", name, v)
	}
	if v < 0 {
		return fmt.Errorf("%s cannot be negative, got %v", name, v)
	}
	return nil
}
