package entities

import "fmt"

// PlanID identifies a maintenance plan
type PlanID string

// MaintenancePlan is a recurring maintenance task attached to one equipment
type MaintenancePlan struct {
	ID          PlanID
	EquipmentID EquipmentID
	Title       string
	Description string
	Trigger     MaintenanceTrigger
	Active      bool
}

// NewMaintenancePlan creates a validated MaintenancePlan
func NewMaintenancePlan(id PlanID, equipmentID EquipmentID, title, description string, trigger MaintenanceTrigger, active bool) (*MaintenancePlan, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("plan ID cannot be empty")
	}
	if string(equipmentID) == "" {
		return nil, fmt.Errorf("equipment ID cannot be empty")
	}
	if title == "" {
		return nil, fmt.Errorf("plan title cannot be empty")
	}
	if !trigger.Unit.Valid() {
		return nil, fmt.Errorf("invalid trigger unit: %d", trigger.Unit)
	}

	return &MaintenancePlan{
		ID:          id,
		EquipmentID: equipmentID,
		Title:       title,
		Description: description,
		Trigger:     trigger,
		Active:      active,
	}, nil
}

// UsageTracked reports whether the plan can become due through usage counters
func (p *MaintenancePlan) UsageTracked() bool {
	return p.Trigger.Unit == TriggerHours || p.Trigger.Unit == TriggerKilometers
}
