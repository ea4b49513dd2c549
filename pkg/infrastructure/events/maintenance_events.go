package events

import (
	"time"

	"github.com/vsinha/agrierp/pkg/domain/entities"
)

const (
	UsageRecordedEvent = "usage.recorded"

	MaintenanceDueEvent     = "maintenance.due"
	MaintenanceOverdueEvent = "maintenance.overdue"
)

// EquipmentStream returns the stream ID used for an equipment's events
func EquipmentStream(id entities.EquipmentID) string {
	return "equipment-" + string(id)
}

type UsageRecorded struct {
	EquipmentID entities.EquipmentID            `json:"equipment_id"`
	Previous    entities.EquipmentUsageSnapshot `json:"previous"`
	Current     entities.EquipmentUsageSnapshot `json:"current"`
	RecordedAt  time.Time                       `json:"recorded_at"`
}

// MaintenanceStatusChanged is the payload of due and overdue events
type MaintenanceStatusChanged struct {
	PlanID      entities.PlanID         `json:"plan_id"`
	EquipmentID entities.EquipmentID    `json:"equipment_id"`
	Title       string                  `json:"title"`
	Remaining   entities.RemainingUsage `json:"remaining"`
}
