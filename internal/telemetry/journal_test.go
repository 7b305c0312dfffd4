package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/philippauer/ha-wartungsplaner/internal/model"
	"github.com/philippauer/ha-wartungsplaner/internal/status"
)

func entry(typ, taskID string) status.Event {
	return status.Event{
		Type:     typ,
		TaskID:   taskID,
		TaskName: "Task " + taskID,
		Category: model.CategoryOther,
		Priority: model.PriorityMedium,
		NextDue:  "2024-03-15",
	}
}

func TestJournalRecordAndFilter(t *testing.T) {
	j := NewJournal()
	t0 := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

	j.Record(entry(status.EventTaskDue, "a"), t0)
	j.Record(entry(status.EventTaskOverdue, "b"), t0.Add(time.Hour))
	j.Record(entry(status.EventTaskDue, "c"), t0.Add(2*time.Hour))

	all := j.Events(time.Time{}, nil)
	assert.Len(t, all, 3)
	assert.Equal(t, 1, all[0].ID)
	assert.Equal(t, 3, all[2].ID)

	overdueOnly := j.Events(time.Time{}, []string{status.EventTaskOverdue})
	assert.Len(t, overdueOnly, 1)
	assert.Equal(t, "b", overdueOnly[0].Event.TaskID)

	recent := j.Events(t0.Add(time.Hour), nil)
	assert.Len(t, recent, 2)

	counts := j.CountsByType()
	assert.Equal(t, 2, counts[status.EventTaskDue])
	assert.Equal(t, 1, counts[status.EventTaskOverdue])

	j.Clear()
	assert.Empty(t, j.Events(time.Time{}, nil))
}

func TestJournalCapsRetention(t *testing.T) {
	j := NewJournal()
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	for i := 0; i < maxEntries+10; i++ {
		j.Record(entry(status.EventTaskDue, "x"), now)
	}

	all := j.Events(time.Time{}, nil)
	assert.Len(t, all, maxEntries)
	// ids keep growing even when old entries are dropped
	assert.Equal(t, 11, all[0].ID)
}
