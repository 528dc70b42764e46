package audit

import (
	"encoding/json"
	"log"
	"os"
	"sync"
	"time"
)

// Entry is a structured audit record for one engine call. It carries
// finding categories and counts but never raw matched values: the audit
// trail must not become a second copy of the sensitive content.
type Entry struct {
	Timestamp    time.Time     `json:"timestamp"`
	RequestID    string        `json:"request_id"`
	Action       string        `json:"action"` // "analyze", "filter", "check", "suggest"
	RiskLevel    string        `json:"risk_level,omitempty"`
	Categories   []string      `json:"categories,omitempty"`
	FindingCount int           `json:"finding_count"`
	FilterUsed   bool          `json:"filter_used"`
	GateDecision string        `json:"gate_decision,omitempty"`
	GateReason   string        `json:"gate_reason,omitempty"`
	Degraded     bool          `json:"degraded,omitempty"` // analysis failed closed
	Latency      time.Duration `json:"latency_ns"`
}

// Logger handles structured audit logging as one JSON object per line.
type Logger struct {
	mu       sync.Mutex
	file     *os.File
	encoder  *json.Encoder
	fallback *log.Logger
}

// NewLogger creates a new audit logger.
// If filePath is empty, entries go to stdout.
func NewLogger(filePath string) (*Logger, error) {
	var file *os.File
	var err error

	if filePath != "" {
		file, err = os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
	} else {
		file = os.Stdout
	}

	return &Logger{
		file:     file,
		encoder:  json.NewEncoder(file),
		fallback: log.New(os.Stderr, "[AUDIT] ", log.LstdFlags),
	}, nil
}

// Log writes an audit entry.
func (l *Logger) Log(entry Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	if err := l.encoder.Encode(entry); err != nil {
		l.fallback.Printf("Failed to write audit entry: %v, entry: %+v", err, entry)
	}
}

// Close closes the audit log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil && l.file != os.Stdout {
		return l.file.Close()
	}
	return nil
}
