package memory

import (
	"fmt"
	"sync"

	"github.com/vsinha/agrierp/pkg/domain/entities"
	"github.com/vsinha/agrierp/pkg/domain/repositories"
)

// EquipmentRepository provides in-memory equipment storage
type EquipmentRepository struct {
	mu           sync.RWMutex
	equipment    []entities.Equipment
	equipmentMap map[entities.EquipmentID]int
}

// NewEquipmentRepository creates a new in-memory equipment repository
func NewEquipmentRepository(expectedEquipment int) *EquipmentRepository {
	return &EquipmentRepository{
		equipment:    make([]entities.Equipment, 0, expectedEquipment),
		equipmentMap: make(map[entities.EquipmentID]int, expectedEquipment),
	}
}

// Verify interface compliance
var _ repositories.EquipmentRepository = (*EquipmentRepository)(nil)

// LoadEquipment loads equipment into the repository
func (r *EquipmentRepository) LoadEquipment(equipment []*entities.Equipment) error {
	for _, eq := range equipment {
		if err := r.AddEquipment(*eq); err != nil {
			return err
		}
	}
	return nil
}

// AddEquipment adds one equipment, rejecting duplicate IDs
func (r *EquipmentRepository) AddEquipment(eq entities.Equipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.equipmentMap[eq.ID]; exists {
		return fmt.Errorf("%w: equipment %s", repositories.ErrDuplicateID, eq.ID)
	}
	r.equipmentMap[eq.ID] = len(r.equipment)
	r.equipment = append(r.equipment, eq)
	return nil
}

// GetEquipment returns a copy of the equipment record
func (r *EquipmentRepository) GetEquipment(id entities.EquipmentID) (*entities.Equipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.equipmentMap[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", repositories.ErrEquipmentNotFound, id)
	}
	eq := r.equipment[index]
	return &eq, nil
}

// GetAllEquipment returns copies of all equipment in load order
func (r *EquipmentRepository) GetAllEquipment() ([]*entities.Equipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*entities.Equipment, 0, len(r.equipment))
	for i := range r.equipment {
		eq := r.equipment[i]
		all = append(all, &eq)
	}
	return all, nil
}

// UpdateUsage overwrites the usage counters of an equipment
func (r *EquipmentRepository) UpdateUsage(id entities.EquipmentID, usage entities.EquipmentUsageSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	index, exists := r.equipmentMap[id]
	if !exists {
		return fmt.Errorf("%w: %s", repositories.ErrEquipmentNotFound, id)
	}
	r.equipment[index].CurrentHours = usage.CurrentHours
	r.equipment[index].CurrentKilometers = usage.CurrentKilometers
	return nil
}
