package services

import (
	"math"

	"github.com/vsinha/agrierp/pkg/domain/entities"
)

// Evaluation combines due status and remaining usage for one plan
type Evaluation struct {
	Due       bool                    `json:"due"`
	Remaining entities.RemainingUsage `json:"remaining"`
}

// ThresholdEvaluator decides whether a usage-triggered maintenance plan is due.
// It holds no state and is safe for concurrent use.
type ThresholdEvaluator struct{}

// NewThresholdEvaluator creates a new threshold evaluator
func NewThresholdEvaluator() *ThresholdEvaluator {
	return &ThresholdEvaluator{}
}

// IsDue reports whether usage has reached the trigger threshold.
// Triggers with unit none, or an unrecognised unit, are never due.
func (e *ThresholdEvaluator) IsDue(trigger entities.MaintenanceTrigger, usage entities.EquipmentUsageSnapshot) bool {
	current, threshold, _, ok := selectCurrentAndThreshold(trigger, usage)
	if !ok {
		return false
	}
	return current >= threshold
}

// Remaining returns how much usage is left before the threshold, or how far
// past it the equipment is. At exactly the threshold the result is overdue
// with a zero value.
func (e *ThresholdEvaluator) Remaining(trigger entities.MaintenanceTrigger, usage entities.EquipmentUsageSnapshot) entities.RemainingUsage {
	current, threshold, unit, ok := selectCurrentAndThreshold(trigger, usage)
	if !ok {
		return entities.RemainingUsage{Value: 0, Unit: entities.RemainingNone, Overdue: false}
	}

	delta := threshold - current
	return entities.RemainingUsage{
		Value:   math.Abs(delta),
		Unit:    unit,
		Overdue: delta <= 0,
	}
}

// Evaluate returns both IsDue and Remaining for the same inputs
func (e *ThresholdEvaluator) Evaluate(trigger entities.MaintenanceTrigger, usage entities.EquipmentUsageSnapshot) Evaluation {
	return Evaluation{
		Due:       e.IsDue(trigger, usage),
		Remaining: e.Remaining(trigger, usage),
	}
}

// selectCurrentAndThreshold picks the counter and threshold matching the trigger unit
func selectCurrentAndThreshold(trigger entities.MaintenanceTrigger, usage entities.EquipmentUsageSnapshot) (float64, float64, entities.RemainingUnit, bool) {
	switch trigger.Unit {
	case entities.TriggerHours:
		return usage.CurrentHours, trigger.HoursThreshold, entities.RemainingHours, true
	case entities.TriggerKilometers:
		return usage.CurrentKilometers, trigger.KilometersThreshold, entities.RemainingKilometers, true
	default:
		return 0, 0, entities.RemainingNone, false
	}
}
