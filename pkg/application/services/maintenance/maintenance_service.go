package maintenance

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vsinha/agrierp/pkg/application/dto"
	"github.com/vsinha/agrierp/pkg/domain/entities"
	"github.com/vsinha/agrierp/pkg/domain/repositories"
	domainservices "github.com/vsinha/agrierp/pkg/domain/services"
	"github.com/vsinha/agrierp/pkg/infrastructure/events"
	"github.com/vsinha/agrierp/pkg/metrics"
)

// ServiceConfig holds tuning for the maintenance service
type ServiceConfig struct {
	// Workers bounds how many equipment are evaluated concurrently
	Workers int
}

// MaintenanceService re-evaluates maintenance plans against equipment usage
type MaintenanceService struct {
	config        ServiceConfig
	equipmentRepo repositories.EquipmentRepository
	planRepo      repositories.MaintenancePlanRepository
	evaluator     *domainservices.ThresholdEvaluator
	eventStore    events.EventStore
	metrics       *metrics.Recorder
	log           logrus.FieldLogger

	// serialises RecordUsage so read-compare-update is atomic per service
	usageMu sync.Mutex
	now     func() time.Time
}

// NewMaintenanceService creates a maintenance service. eventStore and recorder may be nil.
func NewMaintenanceService(
	config ServiceConfig,
	equipmentRepo repositories.EquipmentRepository,
	planRepo repositories.MaintenancePlanRepository,
	eventStore events.EventStore,
	recorder *metrics.Recorder,
	log logrus.FieldLogger,
) *MaintenanceService {
	if config.Workers < 1 {
		config.Workers = 1
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &MaintenanceService{
		config:        config,
		equipmentRepo: equipmentRepo,
		planRepo:      planRepo,
		evaluator:     domainservices.NewThresholdEvaluator(),
		eventStore:    eventStore,
		metrics:       recorder,
		log:           log.WithField("component", "maintenance_service"),
		now:           time.Now,
	}
}

// EvaluateAll evaluates every plan against its equipment's current usage
func (s *MaintenanceService) EvaluateAll(ctx context.Context) (*dto.MaintenanceReport, error) {
	start := s.now()

	equipment, err := s.equipmentRepo.GetAllEquipment()
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	plans, err := s.planRepo.GetAllPlans()
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	known := make(map[entities.EquipmentID]bool, len(equipment))
	for _, eq := range equipment {
		known[eq.ID] = true
	}
	plansByEquipment := make(map[entities.EquipmentID][]*entities.MaintenancePlan)
	for _, plan := range plans {
		if !known[plan.EquipmentID] {
			return nil, fmt.Errorf("plan %s: %w: %s", plan.ID, repositories.ErrEquipmentNotFound, plan.EquipmentID)
		}
		plansByEquipment[plan.EquipmentID] = append(plansByEquipment[plan.EquipmentID], plan)
	}

	results := make([][]dto.PlanStatus, len(equipment))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i, eq := range equipment {
		eqPlans := plansByEquipment[eq.ID]
		if len(eqPlans) == 0 {
			continue
		}
		i, eq := i, eq
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.evaluatePlans(eq, eqPlans)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("evaluation aborted: %w", err)
	}

	report := &dto.MaintenanceReport{GeneratedAt: start}
	for _, statuses := range results {
		report.Plans = append(report.Plans, statuses...)
	}
	sortStatuses(report.Plans)
	for _, status := range report.Plans {
		report.Summary.Add(status.State)
		s.metrics.RecordEvaluation(outcome(status.State))
	}

	report.Duration = s.now().Sub(start)
	s.metrics.ObserveRun(report.Duration, report.Summary.Due+report.Summary.Overdue)

	s.log.WithFields(logrus.Fields{
		"plans":   report.Summary.Total,
		"due":     report.Summary.Due,
		"overdue": report.Summary.Overdue,
	}).Info("maintenance evaluation complete")

	return report, nil
}

// EvaluateEquipment evaluates the plans attached to one equipment
func (s *MaintenanceService) EvaluateEquipment(ctx context.Context, id entities.EquipmentID) ([]dto.PlanStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	eq, err := s.equipmentRepo.GetEquipment(id)
	if err != nil {
		return nil, err
	}
	plans, err := s.planRepo.GetPlansForEquipment(id)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans for %s: %w", id, err)
	}

	statuses := s.evaluatePlans(eq, plans)
	sortStatuses(statuses)
	return statuses, nil
}

// RecordUsage applies a usage reading to its equipment. Counters that are not
// finite and non-negative are rejected; readings that lower either counter are
// rejected with ErrUsageDecrease. A due or overdue event is
// published for every plan whose state escalates.
func (s *MaintenanceService) RecordUsage(ctx context.Context, reading entities.UsageReading) (*dto.UsageUpdate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.usageMu.Lock()
	defer s.usageMu.Unlock()

	eq, err := s.equipmentRepo.GetEquipment(reading.EquipmentID)
	if err != nil {
		return nil, err
	}

	snapshot, err := entities.NewUsageSnapshot(reading.Hours, reading.Kilometers)
	if err != nil {
		s.metrics.RecordUsageReading(false)
		return nil, fmt.Errorf("invalid usage reading for %s: %w", reading.EquipmentID, err)
	}

	previous := eq.Usage()
	current := *snapshot
	if !current.Covers(previous) {
		s.metrics.RecordUsageReading(false)
		return nil, fmt.Errorf("%w: equipment %s from %vh/%vkm to %vh/%vkm",
			ErrUsageDecrease, eq.ID,
			previous.CurrentHours, previous.CurrentKilometers,
			current.CurrentHours, current.CurrentKilometers)
	}

	plans, err := s.planRepo.GetPlansForEquipment(eq.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans for %s: %w", eq.ID, err)
	}

	before := s.evaluatePlans(eq, plans)

	if err := s.equipmentRepo.UpdateUsage(eq.ID, current); err != nil {
		return nil, fmt.Errorf("failed to store usage for %s: %w", eq.ID, err)
	}
	s.metrics.RecordUsageReading(true)

	eq.CurrentHours = current.CurrentHours
	eq.CurrentKilometers = current.CurrentKilometers
	after := s.evaluatePlans(eq, plans)

	update := &dto.UsageUpdate{
		EquipmentID: eq.ID,
		Previous:    previous,
		Current:     current,
	}
	for i := range after {
		if after[i].State.Rank() < before[i].State.Rank() {
			update.Escalated = append(update.Escalated, after[i])
		}
	}
	sortStatuses(update.Escalated)

	recordedAt := reading.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = s.now()
	}
	s.publish(events.UsageRecordedEvent, eq.ID, events.UsageRecorded{
		EquipmentID: eq.ID,
		Previous:    previous,
		Current:     current,
		RecordedAt:  recordedAt,
	})
	for _, status := range update.Escalated {
		eventType := events.MaintenanceDueEvent
		if status.State == dto.StateOverdue {
			eventType = events.MaintenanceOverdueEvent
		}
		s.publish(eventType, eq.ID, events.MaintenanceStatusChanged{
			PlanID:      status.PlanID,
			EquipmentID: status.EquipmentID,
			Title:       status.Title,
			Remaining:   status.Remaining,
		})
		s.log.WithFields(logrus.Fields{
			"equipment_id": eq.ID,
			"plan_id":      status.PlanID,
			"state":        status.State,
			"remaining":    status.Remaining.Value,
			"unit":         status.Remaining.Unit,
		}).Warn("maintenance plan escalated")
	}

	return update, nil
}

// evaluatePlans evaluates plans in input order against one equipment's usage
func (s *MaintenanceService) evaluatePlans(eq *entities.Equipment, plans []*entities.MaintenancePlan) []dto.PlanStatus {
	usage := eq.Usage()
	statuses := make([]dto.PlanStatus, 0, len(plans))

	for _, plan := range plans {
		status := dto.PlanStatus{
			PlanID:        plan.ID,
			EquipmentID:   eq.ID,
			EquipmentName: eq.Name,
			Title:         plan.Title,
			TriggerUnit:   plan.Trigger.Unit.String(),
			Usage:         usage,
		}

		switch {
		case !plan.Active:
			status.State = dto.StateInactive
		case !plan.UsageTracked():
			status.State = dto.StateUntracked
		default:
			result := s.evaluator.Evaluate(plan.Trigger, usage)
			status.Due = result.Due
			status.Remaining = result.Remaining
			status.State = stateOf(result)
		}

		s.log.WithFields(logrus.Fields{
			"equipment_id": eq.ID,
			"plan_id":      plan.ID,
			"state":        status.State,
		}).Debug("plan evaluated")

		statuses = append(statuses, status)
	}

	return statuses
}

func (s *MaintenanceService) publish(eventType string, id entities.EquipmentID, data interface{}) {
	if s.eventStore == nil {
		return
	}
	stream := events.EquipmentStream(id)
	if err := s.eventStore.AppendEvent(stream, events.NewEvent(eventType, stream, data)); err != nil {
		s.log.WithError(err).WithField("event_type", eventType).Error("failed to publish event")
	}
}

// stateOf labels an evaluation. The evaluator reports exactly-at-threshold as
// both due and overdue with zero remaining; the report calls that "due" and
// keeps "overdue" for usage strictly past the threshold.
func stateOf(result domainservices.Evaluation) dto.PlanState {
	switch {
	case result.Remaining.Overdue && result.Remaining.Value > 0:
		return dto.StateOverdue
	case result.Due:
		return dto.StateDue
	default:
		return dto.StateOK
	}
}

func outcome(state dto.PlanState) string {
	switch state {
	case dto.StateOverdue:
		return metrics.OutcomeOverdue
	case dto.StateDue:
		return metrics.OutcomeDue
	case dto.StateUntracked:
		return metrics.OutcomeUntracked
	case dto.StateInactive:
		return metrics.OutcomeInactive
	default:
		return metrics.OutcomeNotDue
	}
}

// sortStatuses orders by urgency: overdue (furthest past first), due, ok
// (closest to threshold first), untracked, inactive; ties by plan ID.
func sortStatuses(statuses []dto.PlanStatus) {
	sort.SliceStable(statuses, func(i, j int) bool {
		a, b := statuses[i], statuses[j]
		if a.State.Rank() != b.State.Rank() {
			return a.State.Rank() < b.State.Rank()
		}
		switch a.State {
		case dto.StateOverdue:
			if a.Remaining.Value != b.Remaining.Value {
				return a.Remaining.Value > b.Remaining.Value
			}
		case dto.StateOK:
			if a.Remaining.Value != b.Remaining.Value {
				return a.Remaining.Value < b.Remaining.Value
			}
		}
		return a.PlanID < b.PlanID
	})
}
