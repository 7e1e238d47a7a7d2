package validation

import (
	"errors"
	"testing"

	"github.com/julianstephens/wellnest/internal/models"
)

func TestGoal(t *testing.T) {
	tests := []struct {
		name    string
		metric  models.Metric
		value   int
		wantErr bool
	}{
		{"steps zero", models.MetricSteps, 0, true},
		{"steps minimum", models.MetricSteps, 1, false},
		{"steps maximum", models.MetricSteps, 100000, false},
		{"steps above maximum", models.MetricSteps, 100001, true},
		{"hydration default", models.MetricHydration, 2500, false},
		{"hydration above maximum", models.MetricHydration, 10001, true},
		{"unknown metric", models.Metric("sleep"), 8, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Goal(tt.metric, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("Goal(%s, %d) error = %v, wantErr %v", tt.metric, tt.value, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("error %v does not wrap ErrInvalidInput", err)
			}
		})
	}
}

func TestParsePositiveInt(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"250", 250, false},
		{" 42 ", 42, false},
		{"abc", 0, true},
		{"12.5", 0, true},
		{"0", 0, true},
		{"-3", 0, true},
	}
	for _, tt := range tests {
		got, err := ParsePositiveInt("amount", tt.input)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParsePositiveInt(%q) = %d, %v", tt.input, got, err)
		}
	}

	_, err := ParsePositiveInt("amount", "lots")
	var inputErr *InputError
	if !errors.As(err, &inputErr) || inputErr.UserMessage() != "Please enter a valid number" {
		t.Errorf("unexpected user message: %v", err)
	}
}

func TestBounds(t *testing.T) {
	checks := []struct {
		name string
		err  error
		want bool
	}{
		{"water min", WaterAmount(1), false},
		{"water max", WaterAmount(5000), false},
		{"water over", WaterAmount(5001), true},
		{"manual steps max", ManualSteps(50000), false},
		{"manual steps over", ManualSteps(50001), true},
		{"mood low", MoodLevel(0), true},
		{"mood ok", MoodLevel(5), false},
		{"interval zero", ReminderInterval(0), true},
		{"interval ok", ReminderInterval(2), false},
		{"snooze zero", SnoozeMinutes(0), true},
		{"snooze ok", SnoozeMinutes(30), false},
		{"stride short", StepLength(10), true},
		{"stride ok", StepLength(75), false},
		{"time ok", TimeOfDay("start", "08:00"), false},
		{"time bad", TimeOfDay("start", "8am"), true},
		{"date ok", Date("2024-03-10"), false},
		{"date bad", Date("2024-13-40"), true},
		{"blank name", NonEmpty("name", "  "), true},
	}
	for _, c := range checks {
		if (c.err != nil) != c.want {
			t.Errorf("%s: error = %v, wantErr %v", c.name, c.err, c.want)
		}
	}
}
