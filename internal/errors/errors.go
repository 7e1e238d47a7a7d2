package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/wellnest/internal/logger"
)

// Exit is swapped in tests.
var Exit = os.Exit

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// UserMessage returns the message shown to a user for err. Errors that
// carry their own presentation (validation failures) are shown verbatim.
func UserMessage(err error) string {
	var p interface{ UserMessage() string }
	if errors.As(err, &p) {
		return p.UserMessage()
	}
	return Format(err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", UserMessage(err))
		Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	Exit(1)
}
