// Package daybound keeps a running daily total and archives it into a
// per-weekday ring when the calendar date changes.
package daybound

import (
	"fmt"
	"time"

	"github.com/julianstephens/wellnest/internal/constants"
	"github.com/julianstephens/wellnest/internal/logger"
	"github.com/julianstephens/wellnest/internal/models"
	"github.com/julianstephens/wellnest/internal/storage"
)

// RolloverResult describes what CheckAndRollover did.
type RolloverResult struct {
	Occurred      bool
	ArchivedDate  string // empty when nothing was archived
	ArchivedValue int
}

// Tracker stores one DailyCounter and its weekly ring under a key prefix.
// Rollover is detected lazily: callers invoke CheckAndRollover on every
// access path, and days with no access leave no archive entry.
type Tracker struct {
	ns     *storage.Namespace
	prefix string
}

func New(ns *storage.Namespace, prefix string) *Tracker {
	return &Tracker{ns: ns, prefix: prefix}
}

func (t *Tracker) key(name string) string {
	return t.prefix + "_" + name
}

// CheckAndRollover compares today with the stored date marker. On a later
// date the running total is archived under the previous date's weekday,
// the total and baseline are reset and the marker moves to today. A date
// earlier than the marker is ignored so a clock stepping backwards cannot
// overwrite a newer day.
func (t *Tracker) CheckAndRollover(today string) (RolloverResult, error) {
	if _, err := time.Parse(constants.DateFormat, today); err != nil {
		return RolloverResult{}, fmt.Errorf("invalid date %q: %w", today, err)
	}

	var res RolloverResult
	err := t.ns.Update(func() error {
		last := t.LastDate()
		switch {
		case last == today:
			return nil
		case last != "" && today < last:
			logger.Warn("Ignoring date earlier than the day marker", "counter", t.prefix, "today", today, "marker", last)
			return nil
		}

		if last != "" {
			total := t.Total()
			if err := t.archive(last, total); err != nil {
				return err
			}
			res.ArchivedDate = last
			res.ArchivedValue = total
		}
		if err := t.ns.PutInt(t.key("running_total"), 0); err != nil {
			return err
		}
		if err := t.ns.PutInt64(t.key("baseline"), models.BaselineUnset); err != nil {
			return err
		}
		if err := t.ns.PutString(t.key("last_date"), today); err != nil {
			return err
		}
		res.Occurred = true
		logger.Debug("Day rollover", "counter", t.prefix, "from", last, "to", today, "archived", res.ArchivedValue)
		return nil
	})
	return res, err
}

func (t *Tracker) archive(date string, value int) error {
	d, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		// A corrupt marker has no weekday to archive under.
		logger.Warn("Dropping total for unparsable day marker", "counter", t.prefix, "marker", date)
		return nil
	}
	ring := t.Weekly()
	ring[d.Weekday()] = value
	return storage.PutList(t.ns, t.key("weekly"), ring[:])
}

func (t *Tracker) LastDate() string {
	return t.ns.GetString(t.key("last_date"), "")
}

func (t *Tracker) Total() int {
	return t.ns.GetInt(t.key("running_total"), 0)
}

// SetTotal stores the running total. Callers hold the namespace guard via
// Update when the value depends on a prior read.
func (t *Tracker) SetTotal(total int) error {
	return t.ns.PutInt(t.key("running_total"), total)
}

// Add increments the running total and returns the new value.
func (t *Tracker) Add(n int) (int, error) {
	var total int
	err := t.ns.Update(func() error {
		total = t.Total() + n
		return t.SetTotal(total)
	})
	return total, err
}

func (t *Tracker) Baseline() int64 {
	return t.ns.GetInt64(t.key("baseline"), models.BaselineUnset)
}

func (t *Tracker) SetBaseline(b int64) error {
	return t.ns.PutInt64(t.key("baseline"), b)
}

// Update runs fn under the counter's namespace guard.
func (t *Tracker) Update(fn func() error) error {
	return t.ns.Update(fn)
}

func (t *Tracker) Counter() models.DailyCounter {
	return models.DailyCounter{
		Date:         t.LastDate(),
		RunningTotal: t.Total(),
		Baseline:     t.Baseline(),
	}
}

// Weekly returns the archived ring. Slots never written read as 0.
func (t *Tracker) Weekly() models.WeeklyRing {
	var ring models.WeeklyRing
	stored := storage.GetList[int](t.ns, t.key("weekly"))
	copy(ring[:], stored)
	return ring
}

// WeeklyWithToday overlays the live running total on today's slot.
func (t *Tracker) WeeklyWithToday(today string) models.WeeklyRing {
	ring := t.Weekly()
	if d, err := time.Parse(constants.DateFormat, today); err == nil && t.LastDate() == today {
		ring[d.Weekday()] = t.Total()
	}
	return ring
}
