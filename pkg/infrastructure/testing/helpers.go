package testing

import (
	"github.com/vsinha/agrierp/pkg/domain/entities"
	"github.com/vsinha/agrierp/pkg/infrastructure/repositories/memory"
)

// mustCreateEquipment is a helper for tests - panics on validation error
func mustCreateEquipment(id, name, category string, hours, kilometers float64) *entities.Equipment {
	eq, err := entities.NewEquipment(entities.EquipmentID(id), name, "", category, hours, kilometers)
	if err != nil {
		panic(err)
	}
	return eq
}

// mustCreatePlan is a helper for tests - panics on validation error
func mustCreatePlan(id, equipmentID, title string, unit entities.TriggerUnit, hours, kilometers float64, active bool) *entities.MaintenancePlan {
	trigger, err := entities.NewMaintenanceTrigger(unit, hours, kilometers)
	if err != nil {
		panic(err)
	}
	plan, err := entities.NewMaintenancePlan(entities.PlanID(id), entities.EquipmentID(equipmentID), title, "", *trigger, active)
	if err != nil {
		panic(err)
	}
	return plan
}

// BuildFarmTestData builds a small fleet covering every plan state:
//
//	EQ-1 Tractor 480h:   PL-oil 500h (20h left), PL-hyd 480h (exactly due)
//	EQ-2 Truck 10500km:  PL-tyre 10000km (500km over), PL-insp none
//	EQ-3 Sprayer 90h:    PL-noz 100h (10h left), PL-old inactive
func BuildFarmTestData() (*memory.EquipmentRepository, *memory.PlanRepository) {
	equipmentRepo := memory.NewEquipmentRepository(3)
	planRepo := memory.NewPlanRepository(6)

	equipment := []*entities.Equipment{
		mustCreateEquipment("EQ-1", "Tractor", "tractor", 480, 0),
		mustCreateEquipment("EQ-2", "Truck", "truck", 0, 10500),
		mustCreateEquipment("EQ-3", "Sprayer", "sprayer", 90, 0),
	}

	plans := []*entities.MaintenancePlan{
		mustCreatePlan("PL-oil", "EQ-1", "Engine oil", entities.TriggerHours, 500, 0, true),
		mustCreatePlan("PL-hyd", "EQ-1", "Hydraulic filter", entities.TriggerHours, 480, 0, true),
		mustCreatePlan("PL-tyre", "EQ-2", "Tyre rotation", entities.TriggerKilometers, 0, 10000, true),
		mustCreatePlan("PL-insp", "EQ-2", "Annual inspection", entities.TriggerNone, 1, 0, true),
		mustCreatePlan("PL-noz", "EQ-3", "Nozzle check", entities.TriggerHours, 100, 0, true),
		mustCreatePlan("PL-old", "EQ-3", "Retired plan", entities.TriggerHours, 10, 0, false),
	}

	if err := equipmentRepo.LoadEquipment(equipment); err != nil {
		panic(err)
	}
	if err := planRepo.LoadPlans(plans); err != nil {
		panic(err)
	}

	return equipmentRepo, planRepo
}
