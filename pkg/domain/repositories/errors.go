package repositories

import "errors"

// Sentinel errors returned (wrapped) by repository implementations
var (
	ErrEquipmentNotFound = errors.New("equipment not found")
	ErrPlanNotFound      = errors.New("maintenance plan not found")
	ErrDuplicateID       = errors.New("duplicate ID")
)
