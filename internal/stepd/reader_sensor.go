package stepd

import (
	"bufio"
	"context"
	"io"

	"github.com/julianstephens/wellnest/internal/logger"
)

// ReaderSensor reads one reading per line, for example from a pipe on
// stdin. The feed ends at EOF.
type ReaderSensor struct {
	name string
	r    io.Reader
}

func NewReaderSensor(name string, r io.Reader) *ReaderSensor {
	return &ReaderSensor{name: name, r: r}
}

func (s *ReaderSensor) Name() string { return s.name }

func (s *ReaderSensor) Subscribe(ctx context.Context) (<-chan int64, error) {
	out := make(chan int64)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(s.r)
		for scanner.Scan() {
			raw, err := ParseReading(scanner.Bytes())
			if err != nil {
				logger.Debug("Skipping step reading", "sensor", s.name, "error", err)
				continue
			}
			select {
			case out <- raw:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			logger.Warn("Step sensor read failed", "sensor", s.name, "error", err)
		}
	}()
	return out, nil
}
