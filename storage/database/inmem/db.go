package inmemdb

import (
	"sort"
	"sync"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/course"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/enrollment"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/livesession"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/notification"
	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core/user"
)

type (
	// DB holds every table in memory. Each table has its own lock and primary key counter.
	DB struct {
		course       *table[course.Course]
		user         *table[user.User]
		enrollment   *table[enrollment.Enrollment]
		liveSession  *table[livesession.LiveSession]
		notification *table[notification.Notification]
	}

	table[T any] struct {
		rows  map[int]*T
		pk    int
		mutex sync.RWMutex
	}
)

func Open() *DB {
	return &DB{
		course:       newTable[course.Course](),
		user:         newTable[user.User](),
		enrollment:   newTable[enrollment.Enrollment](),
		liveSession:  newTable[livesession.LiveSession](),
		notification: newTable[notification.Notification](),
	}
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int]*T)}
}

// nextPK must be called with the write lock held.
func (t *table[T]) nextPK() int {
	t.pk++
	return t.pk
}

// filter returns copies of the rows matching keep, ordered by primary key.
// It must be called with a lock held.
func (t *table[T]) filter(keep func(*T) bool) []T {
	ids := make([]int, 0, len(t.rows))
	for id, row := range t.rows {
		if keep == nil || keep(row) {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, *t.rows[id])
	}
	return out
}

func idSet(ids []int) map[int]struct{} {
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
