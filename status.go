package grasp

import "go.uber.org/zap"

// LogStatus is a StatusDisplay that forwards messages to a zap logger at
// info level. Use it when the host has no on-screen text surface.
type LogStatus struct {
	log *zap.Logger
}

// NewLogStatus wraps a zap logger as a StatusDisplay. A nil logger yields
// a display that discards everything.
func NewLogStatus(log *zap.Logger) *LogStatus {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogStatus{log: log}
}

// SetStatus implements StatusDisplay.
func (l *LogStatus) SetStatus(msg string) {
	l.log.Info("status", zap.String("text", msg))
}

// MemoryStatus is a StatusDisplay that records every message in order.
// Intended for tests and scripted sessions.
type MemoryStatus struct {
	Messages []string
}

// SetStatus implements StatusDisplay.
func (m *MemoryStatus) SetStatus(msg string) {
	m.Messages = append(m.Messages, msg)
}

// Last returns the most recent message, or "" when none was written.
func (m *MemoryStatus) Last() string {
	if len(m.Messages) == 0 {
		return ""
	}
	return m.Messages[len(m.Messages)-1]
}
