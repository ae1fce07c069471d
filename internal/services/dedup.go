package services

import (
	"artfolio/internal/models"
	"slices"
	"strings"
)

// DeduplicateThreads keeps one thread per counterparty: the one with the
// latest date, or the lowest thread id when dates are equal. The result is
// ordered by date descending, then id ascending, and the input is not
// modified.
func DeduplicateThreads(threads []models.MessageThread) []models.MessageThread {
	best := make(map[models.ID]int, len(threads))
	for i := range threads {
		cp := threads[i].CounterpartyID()
		j, seen := best[cp]
		if !seen || threadLess(&threads[i], &threads[j]) {
			best[cp] = i
		}
	}

	out := make([]models.MessageThread, 0, len(best))
	for _, i := range best {
		out = append(out, *threads[i].Clone())
	}
	sortThreads(out)
	return out
}

func sortThreads(threads []models.MessageThread) {
	slices.SortFunc(threads, func(a, b models.MessageThread) int {
		if threadLess(&a, &b) {
			return -1
		}
		if threadLess(&b, &a) {
			return 1
		}
		return 0
	})
}

// threadLess orders newer threads first.
func threadLess(a, b *models.MessageThread) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.After(b.Date)
	}
	return strings.Compare(string(a.ID), string(b.ID)) < 0
}
