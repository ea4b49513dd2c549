package repositories

import "github.com/vsinha/agrierp/pkg/domain/entities"

// EquipmentRepository provides access to equipment master data and usage counters
type EquipmentRepository interface {
	GetEquipment(id entities.EquipmentID) (*entities.Equipment, error)
	GetAllEquipment() ([]*entities.Equipment, error)
	LoadEquipment(equipment []*entities.Equipment) error

	// UpdateUsage replaces the stored counters of an equipment.
	// Monotonicity is checked by the caller.
	UpdateUsage(id entities.EquipmentID, usage entities.EquipmentUsageSnapshot) error
}
