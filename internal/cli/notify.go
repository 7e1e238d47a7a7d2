package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/wellnest/internal/logger"
	"github.com/julianstephens/wellnest/internal/notifier"
)

// consoleNotifier prints reminders to the terminal running the command.
type consoleNotifier struct {
	w io.Writer
}

func (n consoleNotifier) Notify(title, text string) error {
	w := n.w
	if w == nil {
		w = os.Stdout
	}
	_, err := fmt.Fprintf(w, "🔔 %s: %s\n", title, text)
	return err
}

// fallbackNotifier prefers the tray app and falls back when it is not
// running.
type fallbackNotifier struct {
	primary interface {
		Notify(title, text string) error
	}
	fallback interface {
		Notify(title, text string) error
	}
}

func (n fallbackNotifier) Notify(title, text string) error {
	err := n.primary.Notify(title, text)
	if err == nil {
		return nil
	}
	if !errors.Is(err, notifier.ErrTrayNotRunning) {
		logger.Warn("Tray notification failed", "error", err)
	}
	return n.fallback.Notify(title, text)
}
