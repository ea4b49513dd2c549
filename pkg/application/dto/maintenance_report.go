package dto

import (
	"time"

	"github.com/vsinha/agrierp/pkg/domain/entities"
)

// PlanState is the report label derived from an evaluation
type PlanState string

const (
	// StateOverdue means usage is strictly past the threshold
	StateOverdue PlanState = "overdue"
	// StateDue means usage sits exactly on the threshold
	StateDue       PlanState = "due"
	StateOK        PlanState = "ok"
	StateUntracked PlanState = "untracked"
	StateInactive  PlanState = "inactive"
)

// Rank orders states from most to least urgent
func (s PlanState) Rank() int {
	switch s {
	case StateOverdue:
		return 0
	case StateDue:
		return 1
	case StateOK:
		return 2
	case StateUntracked:
		return 3
	default:
		return 4
	}
}

// PlanStatus is the evaluated state of one maintenance plan
type PlanStatus struct {
	PlanID        entities.PlanID                 `json:"plan_id"`
	EquipmentID   entities.EquipmentID            `json:"equipment_id"`
	EquipmentName string                          `json:"equipment_name"`
	Title         string                          `json:"title"`
	TriggerUnit   string                          `json:"trigger_unit"`
	Usage         entities.EquipmentUsageSnapshot `json:"usage"`
	Due           bool                            `json:"due"`
	Remaining     entities.RemainingUsage         `json:"remaining"`
	State         PlanState                       `json:"state"`
}

// ReportSummary counts plans per state
type ReportSummary struct {
	Total     int `json:"total"`
	Overdue   int `json:"overdue"`
	Due       int `json:"due"`
	OK        int `json:"ok"`
	Untracked int `json:"untracked"`
	Inactive  int `json:"inactive"`
}

// Add counts one status
func (s *ReportSummary) Add(state PlanState) {
	s.Total++
	switch state {
	case StateOverdue:
		s.Overdue++
	case StateDue:
		s.Due++
	case StateOK:
		s.OK++
	case StateUntracked:
		s.Untracked++
	case StateInactive:
		s.Inactive++
	}
}

// MaintenanceReport is the result of an evaluation run
type MaintenanceReport struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Duration    time.Duration `json:"duration_ns"`
	Summary     ReportSummary `json:"summary"`
	Plans       []PlanStatus  `json:"plans"`
}

// UsageUpdate describes the effect of recording a usage reading
type UsageUpdate struct {
	EquipmentID entities.EquipmentID            `json:"equipment_id"`
	Previous    entities.EquipmentUsageSnapshot `json:"previous"`
	Current     entities.EquipmentUsageSnapshot `json:"current"`
	// Escalated lists plans whose state became more urgent
	Escalated []PlanStatus `json:"escalated"`
}
