package events

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryEventStore_AppendAndRead(t *testing.T) {
	store := NewInMemoryEventStore(nil)

	require.NoError(t, store.AppendEvent("equipment-EQ-1", NewEvent(UsageRecordedEvent, "equipment-EQ-1", UsageRecorded{EquipmentID: "EQ-1"})))
	require.NoError(t, store.AppendEvent("equipment-EQ-1", NewEvent(MaintenanceDueEvent, "equipment-EQ-1", MaintenanceStatusChanged{PlanID: "PL-1"})))
	require.NoError(t, store.AppendEvent("equipment-EQ-2", NewEvent(UsageRecordedEvent, "equipment-EQ-2", nil)))

	stream, err := store.ReadEvents("equipment-EQ-1", 0)
	require.NoError(t, err)
	require.Len(t, stream, 2)
	assert.Equal(t, 1, stream[0].Version())
	assert.Equal(t, 2, stream[1].Version())
	assert.NotEmpty(t, stream[0].ID())
	assert.NotEqual(t, stream[0].ID(), stream[1].ID())

	tail, err := store.ReadEvents("equipment-EQ-1", 2)
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, MaintenanceDueEvent, tail[0].Type())

	all, err := store.ReadAllEvents(1)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "equipment-EQ-1", all[0].StreamID())
	assert.Equal(t, "equipment-EQ-2", all[1].StreamID())

	everything, err := store.ReadAllEvents(-1)
	require.NoError(t, err)
	assert.Len(t, everything, 3)

	past, err := store.ReadAllEvents(3)
	require.NoError(t, err)
	assert.Empty(t, past)

	empty, err := store.ReadEvents("equipment-EQ-9", 1)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestInMemoryEventStore_Subscribe(t *testing.T) {
	store := NewInMemoryEventStore(nil)

	received := make(chan Event, 1)
	handler := &HandlerFunc{
		Types: []string{MaintenanceOverdueEvent},
		Fn: func(e Event) error {
			received <- e
			return nil
		},
	}
	require.NoError(t, store.Subscribe([]string{MaintenanceOverdueEvent}, handler))

	require.NoError(t, store.AppendEvent("s", NewEvent(MaintenanceDueEvent, "s", nil)))
	require.NoError(t, store.AppendEvent("s", NewEvent(MaintenanceOverdueEvent, "s", nil)))

	select {
	case e := <-received:
		assert.Equal(t, MaintenanceOverdueEvent, e.Type())
		assert.Equal(t, 2, e.Version())
	case <-time.After(2 * time.Second):
		t.Fatal("handler was not notified")
	}

	require.NoError(t, store.Unsubscribe(handler))
	require.NoError(t, store.AppendEvent("s", NewEvent(MaintenanceOverdueEvent, "s", nil)))

	select {
	case e := <-received:
		t.Fatalf("unsubscribed handler received %s", e.Type())
	case <-time.After(100 * time.Millisecond):
	}
}

func TestInMemoryEventStore_HandlerErrorIsLogged(t *testing.T) {
	logger, hook := test.NewNullLogger()
	store := NewInMemoryEventStore(logger)

	handler := &HandlerFunc{
		Types: []string{MaintenanceDueEvent},
		Fn:    func(Event) error { return assert.AnError },
	}
	require.NoError(t, store.Subscribe([]string{MaintenanceDueEvent}, handler))
	require.NoError(t, store.AppendEvent("s", NewEvent(MaintenanceDueEvent, "s", nil)))

	assert.Eventually(t, func() bool {
		entry := hook.LastEntry()
		return entry != nil && entry.Level == logrus.ErrorLevel
	}, 2*time.Second, 10*time.Millisecond)
}
