package session

import "time"

// Status is the lifecycle phase of a session.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusScanning Status = "scanning"
	StatusComplete Status = "complete"
	StatusError    Status = "error"
)

func (s Status) String() string {
	return string(s)
}

// Generation identifies one submission. Ticks and results carrying an older
// generation are ignored.
type Generation uint64

// State is a snapshot of the session. Progress is 0 in Idle and Error and 100
// in Complete; CurrentStep is set only while scanning and Error only in Error.
type State struct {
	Status      Status `json:"status"`
	Progress    int    `json:"progress"`
	CurrentStep string `json:"current_step,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Result is a completed analysis.
type Result struct {
	Markdown  string    `json:"markdown"`
	URL       string    `json:"url"`
	ScannedAt time.Time `json:"scanned_at"`
}
