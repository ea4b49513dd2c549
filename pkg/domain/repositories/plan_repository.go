package repositories

import "github.com/vsinha/agrierp/pkg/domain/entities"

// MaintenancePlanRepository supplies maintenance plan definitions
type MaintenancePlanRepository interface {
	GetPlan(id entities.PlanID) (*entities.MaintenancePlan, error)
	GetPlansForEquipment(equipmentID entities.EquipmentID) ([]*entities.MaintenancePlan, error)
	GetAllPlans() ([]*entities.MaintenancePlan, error)
	LoadPlans(plans []*entities.MaintenancePlan) error
}
