package services

import (
	"artfolio/internal/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func thread(id, counterparty string, date time.Time) models.MessageThread {
	return models.MessageThread{ID: models.ID(id), Artist: models.User{ID: models.ID(counterparty)}, Date: date}
}

func day(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestDeduplicateThreads_KeepsLatest(t *testing.T) {
	t1 := thread("T1", "5", day("2023-01-01"))
	t2 := thread("T2", "5", day("2023-06-01"))

	out := DeduplicateThreads([]models.MessageThread{t1, t2})
	require.Len(t, out, 1)
	assert.Equal(t, t2.ID, out[0].ID)

	out = DeduplicateThreads([]models.MessageThread{t2, t1})
	require.Len(t, out, 1)
	assert.Equal(t, t2.ID, out[0].ID)
}

func TestDeduplicateThreads_TieBreaksOnLowestID(t *testing.T) {
	d := day("2023-03-01")
	a := thread("b", "5", d)
	b := thread("a", "5", d)

	assert.Equal(t, models.ID("a"), DeduplicateThreads([]models.MessageThread{a, b})[0].ID)
	assert.Equal(t, models.ID("a"), DeduplicateThreads([]models.MessageThread{b, a})[0].ID)
}

func TestDeduplicateThreads_Idempotent(t *testing.T) {
	in := []models.MessageThread{
		thread("1", "5", day("2023-01-01")),
		thread("2", "6", day("2023-02-01")),
		thread("3", "5", day("2023-03-01")),
		thread("4", " 6", day("2023-01-15")),
		thread("5", "7", day("2023-02-01")),
	}

	once := DeduplicateThreads(in)
	twice := DeduplicateThreads(once)
	assert.Equal(t, once, twice)

	ids := make([]models.ID, len(once))
	for i, th := range once {
		ids[i] = th.ID
	}
	assert.Equal(t, []models.ID{"3", "2", "5"}, ids)
}

func TestDeduplicateThreads_OnePerCounterpartyWithMaxDate(t *testing.T) {
	in := []models.MessageThread{
		thread("1", "a", day("2023-05-01")),
		thread("2", "b", day("2023-01-01")),
		thread("3", "a", day("2023-01-01")),
		thread("4", "b", day("2023-07-01")),
		thread("5", "c", day("2022-01-01")),
	}
	out := DeduplicateThreads(in)

	latest := map[models.ID]time.Time{}
	for _, th := range in {
		if th.Date.After(latest[th.CounterpartyID()]) {
			latest[th.CounterpartyID()] = th.Date
		}
	}
	require.Len(t, out, len(latest))
	seen := map[models.ID]bool{}
	for _, th := range out {
		cp := th.CounterpartyID()
		assert.False(t, seen[cp])
		seen[cp] = true
		assert.True(t, latest[cp].Equal(th.Date))
	}
}

func TestDeduplicateThreads_DoesNotAliasInput(t *testing.T) {
	in := []models.MessageThread{thread("1", "5", day("2023-01-01"))}
	in[0].Messages = []models.Message{{ID: "m1"}}

	out := DeduplicateThreads(in)
	out[0].Messages[0].Content = "changed"
	assert.Empty(t, in[0].Messages[0].Content)
}

func TestDeduplicateThreads_Empty(t *testing.T) {
	assert.Empty(t, DeduplicateThreads(nil))
}

func TestSeedThreads_ReadStateMatchesLastSender(t *testing.T) {
	for _, th := range seedThreads() {
		last := th.Messages[len(th.Messages)-1]
		fromCounterparty := last.SenderID == th.CounterpartyID()
		if th.Unread {
			assert.True(t, fromCounterparty, th.ID)
			assert.False(t, last.IsRead, th.ID)
		}
		assert.Equal(t, last.Content, th.LastMessage, th.ID)
		assert.True(t, last.Timestamp.Equal(th.Date), th.ID)
	}
	assert.Len(t, DeduplicateThreads(seedThreads()), len(seedThreads()))
}
