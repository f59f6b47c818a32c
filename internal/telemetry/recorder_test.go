package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecorderAccumulates(t *testing.T) {
	r := NewRecorder()
	r.Record(EventTypeRolled, "entrance", "combat")
	r.Record(EventTemplateSelected, "entrance", "tpl_gang")
	r.Record(EventParcelRolled, "entrance", "")
	r.Record(EventEmptyFallback, "puzzle", "")

	assert.Len(t, r.Events(), 4)

	stats := r.Stats()
	assert.Equal(t, 1, stats.EventCounts[EventTypeRolled])
	assert.Equal(t, 1, stats.EmptyFallbacks)
	assert.Equal(t, 1, stats.ParcelsRolled)
}

func TestNilRecorderIsSafe(t *testing.T) {
	var r *Recorder
	r.Record(EventTypeRolled, "entrance", "combat")

	assert.Nil(t, r.Events())
	assert.Equal(t, 0, r.Stats().ParcelsRolled)
	assert.NotNil(t, r.Stats().EventCounts)
}
