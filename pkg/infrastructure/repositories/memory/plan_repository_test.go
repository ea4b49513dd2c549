package memory

import (
	"errors"
	"testing"

	"github.com/vsinha/agrierp/pkg/domain/entities"
	"github.com/vsinha/agrierp/pkg/domain/repositories"
)

func testPlans() []*entities.MaintenancePlan {
	return []*entities.MaintenancePlan{
		{
			ID:          "PL-1",
			EquipmentID: "EQ-1",
			Title:       "Engine oil change",
			Trigger:     entities.MaintenanceTrigger{Unit: entities.TriggerHours, HoursThreshold: 500},
			Active:      true,
		},
		{
			ID:          "PL-2",
			EquipmentID: "EQ-2",
			Title:       "Tyre rotation",
			Trigger:     entities.MaintenanceTrigger{Unit: entities.TriggerKilometers, KilometersThreshold: 10000},
			Active:      true,
		},
		{
			ID:          "PL-3",
			EquipmentID: "EQ-1",
			Title:       "Hydraulic filter",
			Trigger:     entities.MaintenanceTrigger{Unit: entities.TriggerHours, HoursThreshold: 1000},
			Active:      false,
		},
	}
}

func TestPlanRepository_LoadAndGet(t *testing.T) {
	repo := NewPlanRepository(3)
	if err := repo.LoadPlans(testPlans()); err != nil {
		t.Fatalf("Failed to load plans: %v", err)
	}

	plan, err := repo.GetPlan("PL-2")
	if err != nil {
		t.Fatalf("Failed to get plan: %v", err)
	}
	if plan.Trigger.Unit != entities.TriggerKilometers {
		t.Errorf("Expected kilometers trigger, got %v", plan.Trigger.Unit)
	}

	all, _ := repo.GetAllPlans()
	if len(all) != 3 {
		t.Errorf("Expected 3 plans, got %d", len(all))
	}
}

func TestPlanRepository_GetPlansForEquipment(t *testing.T) {
	repo := NewPlanRepository(3)
	_ = repo.LoadPlans(testPlans())

	plans, err := repo.GetPlansForEquipment("EQ-1")
	if err != nil {
		t.Fatalf("Failed to get plans for equipment: %v", err)
	}
	if len(plans) != 2 {
		t.Fatalf("Expected 2 plans for EQ-1, got %d", len(plans))
	}
	if plans[0].ID != "PL-1" || plans[1].ID != "PL-3" {
		t.Errorf("Expected PL-1, PL-3, got %s, %s", plans[0].ID, plans[1].ID)
	}

	none, err := repo.GetPlansForEquipment("EQ-9")
	if err != nil {
		t.Fatalf("Expected no error for equipment without plans, got %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Expected no plans, got %d", len(none))
	}
}

func TestPlanRepository_Errors(t *testing.T) {
	repo := NewPlanRepository(1)
	_ = repo.LoadPlans(testPlans())

	if _, err := repo.GetPlan("PL-404"); !errors.Is(err, repositories.ErrPlanNotFound) {
		t.Errorf("Expected ErrPlanNotFound, got %v", err)
	}

	err := repo.AddPlan(*testPlans()[0])
	if !errors.Is(err, repositories.ErrDuplicateID) {
		t.Errorf("Expected ErrDuplicateID, got %v", err)
	}
}
