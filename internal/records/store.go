// Package records keeps lists of timestamped records in a storage namespace
// and answers date queries over them.
package records

import (
	"cmp"
	"slices"

	"github.com/julianstephens/wellnest/internal/models"
	"github.com/julianstephens/wellnest/internal/storage"
)

// Store is the list of one record kind stored under a single key.
// Writes run inside the namespace guard; reads see the last completed write.
type Store[T models.Record] struct {
	ns  *storage.Namespace
	key string
}

func NewStore[T models.Record](ns *storage.Namespace, key string) *Store[T] {
	return &Store[T]{ns: ns, key: key}
}

// GetAll returns every record in storage order.
func (s *Store[T]) GetAll() []T {
	return storage.GetList[T](s.ns, s.key)
}

// Get returns the record with id.
func (s *Store[T]) Get(id string) (T, bool) {
	for _, r := range s.GetAll() {
		if r.GetID() == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// Save replaces the record with the same id in place, or appends it.
// The list is never re-sorted.
func (s *Store[T]) Save(record T) error {
	return s.ns.Update(func() error {
		all := s.GetAll()
		idx := slices.IndexFunc(all, func(r T) bool { return r.GetID() == record.GetID() })
		if idx >= 0 {
			all[idx] = record
		} else {
			all = append(all, record)
		}
		return storage.PutList(s.ns, s.key, all)
	})
}

// Delete removes the record with id. Deleting an absent id is a no-op.
func (s *Store[T]) Delete(id string) error {
	_, err := s.DeleteWhere(func(r T) bool { return r.GetID() == id })
	return err
}

// DeleteWhere removes every record matching pred and reports how many went.
func (s *Store[T]) DeleteWhere(pred func(T) bool) (int, error) {
	removed := 0
	err := s.ns.Update(func() error {
		all := s.GetAll()
		kept := slices.DeleteFunc(all, pred)
		removed = len(all) - len(kept)
		if removed == 0 {
			return nil
		}
		return storage.PutList(s.ns, s.key, kept)
	})
	return removed, err
}

// Mutate runs fn over the whole list inside the namespace guard and stores
// what it returns.
func (s *Store[T]) Mutate(fn func([]T) ([]T, error)) error {
	return s.ns.Update(func() error {
		next, err := fn(s.GetAll())
		if err != nil {
			return err
		}
		return storage.PutList(s.ns, s.key, next)
	})
}

// Clear removes every record.
func (s *Store[T]) Clear() error {
	return s.ns.Update(func() error {
		return storage.PutList(s.ns, s.key, []T{})
	})
}

// GetForDate returns the records dated date ordered by time of day.
func (s *Store[T]) GetForDate(date string) []T {
	out := slices.DeleteFunc(s.GetAll(), func(r T) bool { return r.GetDate() != date })
	slices.SortStableFunc(out, byTime[T])
	return out
}

// GetForDateRange returns records with start <= date <= end, compared as
// YYYY-MM-DD strings, in chronological order.
func (s *Store[T]) GetForDateRange(start, end string) []T {
	out := slices.DeleteFunc(s.GetAll(), func(r T) bool {
		return r.GetDate() < start || r.GetDate() > end
	})
	slices.SortStableFunc(out, func(a, b T) int {
		if c := cmp.Compare(a.GetDate(), b.GetDate()); c != 0 {
			return c
		}
		return byTime(a, b)
	})
	return out
}

func byTime[T models.Record](a, b T) int {
	if c := cmp.Compare(a.GetTime(), b.GetTime()); c != 0 {
		return c
	}
	return cmp.Compare(a.GetTimestamp(), b.GetTimestamp())
}
