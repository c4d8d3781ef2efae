package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordedEvent struct {
	BaseDomainEvent
}

func TestBaseAggregateRoot_Events(t *testing.T) {
	root := NewBaseAggregateRoot()
	created := &recordedEvent{NewBaseDomainEvent("Created", "Thing", 0)}
	moved := &recordedEvent{NewBaseDomainEvent("Moved", "Thing", 3)}

	root.AddDomainEvent(created)
	root.AddDomainEvent(moved)
	root.AssignEventAggregateID(7)

	events := root.GetDomainEvents()
	assert.Len(t, events, 2)
	assert.Equal(t, int64(7), events[0].AggregateID())
	assert.Equal(t, int64(3), events[1].AggregateID(), "ids already set are kept")
	assert.Equal(t, "Thing", events[0].AggregateType())
	assert.NotEqual(t, events[0].EventID(), events[1].EventID())

	root.ClearDomainEvents()
	assert.Empty(t, root.GetDomainEvents())
}
