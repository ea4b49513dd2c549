package memory

import (
	"fmt"
	"sync"

	"github.com/vsinha/agrierp/pkg/domain/entities"
	"github.com/vsinha/agrierp/pkg/domain/repositories"
)

// PlanRepository provides in-memory maintenance plan storage
type PlanRepository struct {
	mu          sync.RWMutex
	plans       []entities.MaintenancePlan
	plansMap    map[entities.PlanID]int
	byEquipment map[entities.EquipmentID][]int
}

// NewPlanRepository creates a new in-memory plan repository
func NewPlanRepository(expectedPlans int) *PlanRepository {
	return &PlanRepository{
		plans:       make([]entities.MaintenancePlan, 0, expectedPlans),
		plansMap:    make(map[entities.PlanID]int, expectedPlans),
		byEquipment: make(map[entities.EquipmentID][]int),
	}
}

// Verify interface compliance
var _ repositories.MaintenancePlanRepository = (*PlanRepository)(nil)

// LoadPlans loads plans into the repository
func (r *PlanRepository) LoadPlans(plans []*entities.MaintenancePlan) error {
	for _, plan := range plans {
		if err := r.AddPlan(*plan); err != nil {
			return err
		}
	}
	return nil
}

// AddPlan adds one plan, rejecting duplicate IDs
func (r *PlanRepository) AddPlan(plan entities.MaintenancePlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plansMap[plan.ID]; exists {
		return fmt.Errorf("%w: plan %s", repositories.ErrDuplicateID, plan.ID)
	}
	index := len(r.plans)
	r.plansMap[plan.ID] = index
	r.byEquipment[plan.EquipmentID] = append(r.byEquipment[plan.EquipmentID], index)
	r.plans = append(r.plans, plan)
	return nil
}

// GetPlan returns a copy of the plan
func (r *PlanRepository) GetPlan(id entities.PlanID) (*entities.MaintenancePlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.plansMap[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", repositories.ErrPlanNotFound, id)
	}
	plan := r.plans[index]
	return &plan, nil
}

// GetPlansForEquipment returns the plans attached to an equipment.
// An equipment without plans yields an empty slice, not an error.
func (r *PlanRepository) GetPlansForEquipment(equipmentID entities.EquipmentID) ([]*entities.MaintenancePlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	indexes := r.byEquipment[equipmentID]
	plans := make([]*entities.MaintenancePlan, 0, len(indexes))
	for _, index := range indexes {
		plan := r.plans[index]
		plans = append(plans, &plan)
	}
	return plans, nil
}

// GetAllPlans returns copies of all plans in load order
func (r *PlanRepository) GetAllPlans() ([]*entities.MaintenancePlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plans := make([]*entities.MaintenancePlan, 0, len(r.plans))
	for i := range r.plans {
		plan := r.plans[i]
		plans = append(plans, &plan)
	}
	return plans, nil
}
