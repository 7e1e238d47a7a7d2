package records

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/wellnest/internal/models"
)

// Interval is a half-open [StartHour, EndHour) slice of the day.
type Interval struct {
	Label     string
	StartHour int
	EndHour   int
}

func (i Interval) Contains(hour int) bool {
	return hour >= i.StartHour && hour < i.EndHour
}

// DayParts are the default buckets for interval aggregation. Records before
// 06:00 fall in none of them.
var DayParts = []Interval{
	{Label: "Morning", StartHour: 6, EndHour: 12},
	{Label: "Afternoon", StartHour: 12, EndHour: 18},
	{Label: "Evening", StartHour: 18, EndHour: 24},
}

// FullDay covers every hour, including the night bucket.
var FullDay = []Interval{
	{Label: "Night", StartHour: 0, EndHour: 6},
	{Label: "Morning", StartHour: 6, EndHour: 12},
	{Label: "Afternoon", StartHour: 12, EndHour: 18},
	{Label: "Evening", StartHour: 18, EndHour: 24},
}

// Bucket is one non-empty interval of an aggregation.
type Bucket struct {
	Label   string
	Count   int
	Average float64
}

// Average is the arithmetic mean of field over records, 0 for no records.
func Average[T any](records []T, field func(T) float64) float64 {
	if len(records) == 0 {
		return 0
	}
	return Sum(records, field) / float64(len(records))
}

func Sum[T any](records []T, field func(T) float64) float64 {
	var sum float64
	for _, r := range records {
		sum += field(r)
	}
	return sum
}

// GroupByInterval partitions records by the hour of their time field.
// Every interval gets an entry, possibly empty.
func GroupByInterval[T models.Record](records []T, intervals []Interval) map[string][]T {
	groups := make(map[string][]T, len(intervals))
	for _, iv := range intervals {
		groups[iv.Label] = []T{}
	}
	for _, r := range records {
		hour := HourOf(r.GetTime())
		for _, iv := range intervals {
			if iv.Contains(hour) {
				groups[iv.Label] = append(groups[iv.Label], r)
				break
			}
		}
	}
	return groups
}

// AggregateByInterval averages field per interval, in interval order.
// Intervals with no records are omitted.
func AggregateByInterval[T models.Record](records []T, intervals []Interval, field func(T) float64) []Bucket {
	groups := GroupByInterval(records, intervals)
	var buckets []Bucket
	for _, iv := range intervals {
		members := groups[iv.Label]
		if len(members) == 0 {
			continue
		}
		buckets = append(buckets, Bucket{
			Label:   iv.Label,
			Count:   len(members),
			Average: Average(members, field),
		})
	}
	return buckets
}

// HourOf parses the hour of an HH:MM string. Malformed input counts as hour 0.
func HourOf(hhmm string) int {
	h, _, _ := strings.Cut(hhmm, ":")
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0
	}
	return hour
}

// ShortDate renders YYYY-MM-DD as MM-DD for compact labels.
func ShortDate(date string) string {
	if len(date) == 10 {
		return date[5:]
	}
	return date
}

// Label joins a date and a bucket label, e.g. "03-10 Morning".
func Label(date string, b Bucket) string {
	return fmt.Sprintf("%s %s", ShortDate(date), b.Label)
}
