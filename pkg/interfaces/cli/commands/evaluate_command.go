package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/sirupsen/logrus"

	"github.com/vsinha/agrierp/pkg/application/services/maintenance"
	"github.com/vsinha/agrierp/pkg/config"
	"github.com/vsinha/agrierp/pkg/domain/entities"
	"github.com/vsinha/agrierp/pkg/infrastructure/events"
	"github.com/vsinha/agrierp/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/agrierp/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/agrierp/pkg/interfaces/cli/output"
	"github.com/vsinha/agrierp/pkg/logger"
	"github.com/vsinha/agrierp/pkg/metrics"
)

// EvaluateCommand loads equipment and plans, applies readings and reports due plans
type EvaluateCommand struct {
	config  config.Config
	onlyDue bool
	verbose bool
	out     io.Writer
	logOut  io.Writer
	log     *logrus.Logger
}

// NewEvaluateCommand creates a new evaluate command with the given configuration.
// The report goes to out; logs and the verbose metrics dump go to logOut.
func NewEvaluateCommand(cfg config.Config, onlyDue, verbose bool, out, logOut io.Writer) *EvaluateCommand {
	return &EvaluateCommand{
		config:  cfg,
		onlyDue: onlyDue,
		verbose: verbose,
		out:     out,
		logOut:  logOut,
	}
}

// Execute runs the evaluate command
func (c *EvaluateCommand) Execute(ctx context.Context) error {
	if err := c.config.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if err := c.config.ResolveFiles(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	c.resolveReadingsFile()

	level := c.config.LogLevel
	if c.verbose {
		level = "debug"
	}
	log, err := logger.New(level, c.config.LogFormat, c.logOut)
	if err != nil {
		return err
	}
	c.log = log

	c.log.WithFields(logrus.Fields{
		"equipment": c.config.EquipmentFile,
		"plans":     c.config.PlansFile,
		"readings":  c.config.ReadingsFile,
	}).Debug("loading data from CSV files")

	loader := csv.NewLoader()

	equipment, err := loader.LoadEquipment(c.config.EquipmentFile)
	if err != nil {
		return fmt.Errorf("error loading equipment: %w", err)
	}
	plans, err := loader.LoadPlans(c.config.PlansFile)
	if err != nil {
		return fmt.Errorf("error loading plans: %w", err)
	}
	var readings []*entities.UsageReading
	if c.config.ReadingsFile != "" {
		readings, err = loader.LoadReadings(c.config.ReadingsFile)
		if err != nil {
			return fmt.Errorf("error loading readings: %w", err)
		}
	}

	c.log.WithFields(logrus.Fields{
		"equipment": len(equipment),
		"plans":     len(plans),
		"readings":  len(readings),
	}).Info("data loaded")

	equipmentRepo := memory.NewEquipmentRepository(len(equipment))
	if err := equipmentRepo.LoadEquipment(equipment); err != nil {
		return fmt.Errorf("failed to load equipment into repository: %w", err)
	}
	planRepo := memory.NewPlanRepository(len(plans))
	if err := planRepo.LoadPlans(plans); err != nil {
		return fmt.Errorf("failed to load plans into repository: %w", err)
	}

	registry := prometheus.NewRegistry()
	service := maintenance.NewMaintenanceService(
		maintenance.ServiceConfig{Workers: c.config.EvaluationWorkers},
		equipmentRepo,
		planRepo,
		events.NewInMemoryEventStore(c.log),
		metrics.NewRecorder(metrics.WithRegistry(registry)),
		c.log,
	)

	if err := c.applyReadings(ctx, service, readings); err != nil {
		return err
	}

	report, err := service.EvaluateAll(ctx)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	if err := output.Generate(report, output.Config{
		Format:    c.config.OutputFormat,
		OutputDir: c.config.OutputDir,
		OnlyDue:   c.onlyDue,
		Verbose:   c.verbose,
		Writer:    c.out,
	}); err != nil {
		return err
	}

	if c.verbose {
		c.dumpMetrics(registry)
	}
	return nil
}

// dumpMetrics writes the run's metrics in Prometheus text format to the log output
func (c *EvaluateCommand) dumpMetrics(gatherer prometheus.Gatherer) {
	families, err := gatherer.Gather()
	if err != nil {
		c.log.WithError(err).Warn("failed to gather metrics")
		return
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(c.log.Out, family); err != nil {
			c.log.WithError(err).WithField("metric", family.GetName()).Warn("failed to write metric")
		}
	}
}

// applyReadings records readings oldest first. Readings that would lower a
// counter are skipped with a warning; any other failure aborts.
func (c *EvaluateCommand) applyReadings(ctx context.Context, service *maintenance.MaintenanceService, readings []*entities.UsageReading) error {
	sort.SliceStable(readings, func(i, j int) bool {
		return readings[i].RecordedAt.Before(readings[j].RecordedAt)
	})

	for _, reading := range readings {
		_, err := service.RecordUsage(ctx, *reading)
		if errors.Is(err, maintenance.ErrUsageDecrease) {
			c.log.WithError(err).WithField("equipment_id", reading.EquipmentID).Warn("skipping usage reading")
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to record usage for %s: %w", reading.EquipmentID, err)
		}
	}
	return nil
}

// resolveReadingsFile picks up readings.csv from the data directory when present
func (c *EvaluateCommand) resolveReadingsFile() {
	if c.config.ReadingsFile != "" || c.config.DataDir == "" {
		return
	}
	candidate := filepath.Join(c.config.DataDir, "readings.csv")
	if _, err := os.Stat(candidate); err == nil {
		c.config.ReadingsFile = candidate
	}
}
