package borrowing

import (
	"testing"
	"time"

	"github.com/borrowtrack/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestLedger(t *testing.T) {
	first := Borrowing{Transaction: *newTransaction(1, 1, 1, "2024-06-01")}
	second := Borrowing{Transaction: *newTransaction(2, 2, 1, "2024-06-30")}

	l := NewLedger(first)
	l.Append(second)
	assert.Equal(t, 2, l.Len())

	all := l.All()
	all[0].ItemName = "mutated"
	assert.Empty(t, l.All()[0].ItemName, "All returns a copy")

	now := shared.MustParseDate("2024-06-28").Time(time.UTC)
	d := l.Dashboard(now)
	assert.Equal(t, []int64{1}, ids(d.Overdue))
	assert.Equal(t, []int64{2}, ids(d.DueSoon))
	assert.Equal(t, []int64{2, 1}, ids(d.Recent))

	l.Clear()
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.Dashboard(now).Recent)

	l.Replace([]Borrowing{second})
	assert.Equal(t, []int64{2}, ids(l.All()))
}
