package server

import (
	"fmt"
	"time"

	"github.com/df07/go-lensmaker/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	TrainID   string    `json:"trainId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by sending messages to a console channel
type WebLogger struct {
	trainID     string
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a new web logger for a specific training run
func NewWebLogger(trainID string, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{
		trainID:     trainID,
		consoleChan: consoleChan,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	// Also write to stdout for server logs
	fmt.Printf("[%s] %s", wl.trainID, message)

	if wl.consoleChan == nil {
		return
	}
	select {
	case wl.consoleChan <- ConsoleMessage{
		TrainID:   wl.trainID,
		Message:   message,
		Timestamp: time.Now(),
		Level:     "info",
	}:
	default:
		// Channel full, skip (don't block)
	}
}
