package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/vsinha/agrierp/pkg/application/dto"
	"github.com/vsinha/agrierp/pkg/domain/entities"
)

const (
	jsonFileName = "maintenance_report.json"
	csvFileName  = "maintenance_status.csv"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	overdueBadge = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	dueBadge     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	okBadge      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimBadge     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	// OnlyDue drops plans that are not due or overdue
	OnlyDue bool
	Verbose bool
	Writer  io.Writer
}

// Generate renders the report in the configured format
func Generate(report *dto.MaintenanceReport, config Config) error {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}

	plans := report.Plans
	if config.OnlyDue {
		plans = filterDue(plans)
	}

	switch config.Format {
	case "", "text":
		return generateTextOutput(report, plans, config)
	case "json":
		return generateJSONOutput(report, plans, config)
	case "csv":
		return generateCSVOutput(plans, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func filterDue(plans []dto.PlanStatus) []dto.PlanStatus {
	var due []dto.PlanStatus
	for _, p := range plans {
		if p.State == dto.StateOverdue || p.State == dto.StateDue {
			due = append(due, p)
		}
	}
	return due
}

// FormatRemaining renders a remaining value rounded to one decimal place,
// e.g. "20.0 h" or "500.0 km". Untracked plans render as "-".
func FormatRemaining(r entities.RemainingUsage) string {
	if r.Unit == entities.RemainingNone {
		return "-"
	}
	if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
		return "n/a " + string(r.Unit)
	}
	return decimal.NewFromFloat(r.Value).Round(1).StringFixed(1) + " " + string(r.Unit)
}

func badge(state dto.PlanState) string {
	label := fmt.Sprintf("%-9s", stateLabel(state))
	switch state {
	case dto.StateOverdue:
		return overdueBadge.Render(label)
	case dto.StateDue:
		return dueBadge.Render(label)
	case dto.StateOK:
		return okBadge.Render(label)
	default:
		return dimBadge.Render(label)
	}
}

func stateLabel(state dto.PlanState) string {
	switch state {
	case dto.StateOverdue:
		return "OVERDUE"
	case dto.StateDue:
		return "DUE"
	case dto.StateOK:
		return "OK"
	case dto.StateUntracked:
		return "UNTRACKED"
	default:
		return "INACTIVE"
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(report *dto.MaintenanceReport, plans []dto.PlanStatus, config Config) error {
	w := config.Writer
	s := report.Summary

	fmt.Fprintln(w, titleStyle.Render("Maintenance Status"))
	fmt.Fprintf(w, "==================\n\n")
	fmt.Fprintf(w, "Plans: %d  Overdue: %d  Due: %d  OK: %d  Untracked: %d  Inactive: %d\n",
		s.Total, s.Overdue, s.Due, s.OK, s.Untracked, s.Inactive)
	if config.Verbose {
		fmt.Fprintf(w, "Evaluated at %s in %v\n", report.GeneratedAt.Format("2006-01-02 15:04:05"), report.Duration)
	}
	fmt.Fprintln(w)

	if len(plans) == 0 {
		fmt.Fprintln(w, "No plans to report.")
		return nil
	}

	fmt.Fprintf(w, "%-9s %-12s %-20s %-12s %-28s %-14s\n",
		"State", "Plan", "Equipment", "Trigger", "Title", "Remaining")
	fmt.Fprintf(w, "%-9s %-12s %-20s %-12s %-28s %-14s\n",
		"---------", "------------", "--------------------", "------------", "----------------------------", "--------------")

	for _, p := range plans {
		remaining := FormatRemaining(p.Remaining)
		if p.State == dto.StateOverdue {
			remaining += " over"
		}
		fmt.Fprintf(w, "%s %-12s %-20s %-12s %-28s %-14s\n",
			badge(p.State),
			p.PlanID,
			p.EquipmentName,
			p.TriggerUnit,
			p.Title,
			remaining)
	}

	return nil
}

// generateJSONOutput creates JSON output
func generateJSONOutput(report *dto.MaintenanceReport, plans []dto.PlanStatus, config Config) error {
	filtered := *report
	filtered.Plans = plans

	jsonData, err := json.MarshalIndent(filtered, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		_, err = fmt.Fprintln(config.Writer, string(jsonData))
		return err
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, jsonFileName)
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.Writer, "JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput writes one row per plan status
func generateCSVOutput(plans []dto.PlanStatus, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, csvFileName)
	if err := writeStatusCSV(plans, filename); err != nil {
		return fmt.Errorf("failed to write status CSV: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.Writer, "CSV results saved to: %s\n", filename)
	}
	return nil
}

func writeStatusCSV(plans []dto.PlanStatus, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"plan_id", "equipment_id", "title", "trigger_unit", "state", "due", "overdue", "remaining", "remaining_unit"}); err != nil {
		return err
	}

	for _, p := range plans {
		record := []string{
			string(p.PlanID),
			string(p.EquipmentID),
			p.Title,
			p.TriggerUnit,
			string(p.State),
			strconv.FormatBool(p.Due),
			strconv.FormatBool(p.Remaining.Overdue),
			strconv.FormatFloat(p.Remaining.Value, 'f', -1, 64),
			string(p.Remaining.Unit),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
