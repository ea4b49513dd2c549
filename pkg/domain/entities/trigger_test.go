package entities

import (
	"math"
	"testing"
)

func TestParseTriggerUnit(t *testing.T) {
	testCases := []struct {
		input    string
		expected TriggerUnit
	}{
		{"none", TriggerNone},
		{"", TriggerNone},
		{"hours", TriggerHours},
		{"HOURS", TriggerHours},
		{" kilometers ", TriggerKilometers},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			unit, err := ParseTriggerUnit(tc.input)
			if err != nil {
				t.Fatalf("Expected %q to parse, got error: %v", tc.input, err)
			}
			if unit != tc.expected {
				t.Errorf("Expected %v, got %v", tc.expected, unit)
			}
		})
	}
}

func TestParseTriggerUnit_Unknown(t *testing.T) {
	for _, input := range []string{"miles", "h", "km", "date"} {
		_, err := ParseTriggerUnit(input)
		if err == nil {
			t.Errorf("Expected error for unit %q, got none", input)
		}
	}
}

func TestTriggerUnit_String(t *testing.T) {
	if TriggerNone.String() != "none" {
		t.Errorf("Expected none, got %s", TriggerNone.String())
	}
	if TriggerHours.String() != "hours" {
		t.Errorf("Expected hours, got %s", TriggerHours.String())
	}
	if TriggerKilometers.String() != "kilometers" {
		t.Errorf("Expected kilometers, got %s", TriggerKilometers.String())
	}
	if TriggerUnit(42).String() != "unknown" {
		t.Errorf("Expected unknown, got %s", TriggerUnit(42).String())
	}
}

func TestMaintenanceTrigger_Validation(t *testing.T) {
	valid, err := NewMaintenanceTrigger(TriggerHours, 250, 0)
	if err != nil {
		t.Fatalf("Expected valid trigger creation to succeed: %v", err)
	}
	if valid.HoursThreshold != 250 {
		t.Errorf("Expected hours threshold 250, got %v", valid.HoursThreshold)
	}

	testCases := []struct {
		name        string
		unit        TriggerUnit
		hours       float64
		km          float64
		expectError string
	}{
		{"unknown unit", TriggerUnit(7), 1, 1, "invalid trigger unit: 7"},
		{"negative hours", TriggerHours, -1, 0, "hours threshold cannot be negative, got -1"},
		{"negative km", TriggerKilometers, 0, -5, "kilometers threshold cannot be negative, got -5"},
		{"NaN hours", TriggerHours, math.NaN(), 0, "hours threshold must be finite, got NaN"},
		{"infinite km", TriggerKilometers, 0, math.Inf(1), "kilometers threshold must be finite, got +Inf"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewMaintenanceTrigger(tc.unit, tc.hours, tc.km)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}
