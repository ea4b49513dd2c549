package entities

// RemainingUnit is the short unit label attached to a remaining value
type RemainingUnit string

const (
	RemainingNone       RemainingUnit = ""
	RemainingHours      RemainingUnit = "h"
	RemainingKilometers RemainingUnit = "km"
)

// RemainingUsage is the unsigned distance between current usage and a
// trigger threshold. Overdue tells which side of the threshold Value is on.
type RemainingUsage struct {
	Value   float64       `json:"value"`
	Unit    RemainingUnit `json:"unit"`
	Overdue bool          `json:"overdue"`
}
