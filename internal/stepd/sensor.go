package stepd

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
)

// Sensor delivers raw lifetime step counts. The channel is closed when the
// sensor stops or ctx is cancelled.
type Sensor interface {
	Name() string
	Subscribe(ctx context.Context) (<-chan int64, error)
}

// ChannelSensor is fed in-process, for example from stdin or tests.
type ChannelSensor struct {
	readings chan int64

	once sync.Once
}

func NewChannelSensor(buffer int) *ChannelSensor {
	return &ChannelSensor{readings: make(chan int64, buffer)}
}

func (s *ChannelSensor) Name() string { return "channel" }

func (s *ChannelSensor) Subscribe(ctx context.Context) (<-chan int64, error) {
	return s.readings, nil
}

// Push queues a reading. It blocks when the buffer is full until ctx ends.
func (s *ChannelSensor) Push(ctx context.Context, raw int64) error {
	select {
	case s.readings <- raw:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close ends the feed. Push must not be called afterwards.
func (s *ChannelSensor) Close() {
	s.once.Do(func() { close(s.readings) })
}

// ParseReading accepts a bare integer or a JSON object carrying the count
// under "steps", "count" or "value".
func ParseReading(payload []byte) (int64, error) {
	text := strings.TrimSpace(string(payload))
	if text == "" {
		return 0, fmt.Errorf("empty step reading")
	}
	if strings.HasPrefix(text, "{") {
		var obj map[string]json.Number
		dec := json.NewDecoder(strings.NewReader(text))
		dec.UseNumber()
		if err := dec.Decode(&obj); err != nil {
			return 0, fmt.Errorf("invalid step reading: %w", err)
		}
		for _, key := range []string{"steps", "count", "value"} {
			if n, ok := obj[key]; ok {
				return toCount(n.String())
			}
		}
		return 0, fmt.Errorf("step reading has no steps field")
	}
	return toCount(text)
}

func toCount(s string) (int64, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative step reading %d", n)
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || math.IsNaN(f) || f >= math.MaxInt64 {
		return 0, fmt.Errorf("invalid step reading %q", s)
	}
	return int64(f), nil
}
