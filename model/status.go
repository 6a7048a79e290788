package model

import "time"

// AttemptSummary describes a completed boot attempt.
type AttemptSummary struct {
	Started       time.Time         `json:"started"`
	Duration      time.Duration     `json:"duration"`
	Configuration BootConfiguration `json:"configuration"`
	// Set when the attempt ran the full sequence (not in debug mode)
	Booted  bool   `json:"booted"`
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Stage   string `json:"stage"`
	Error   string `json:"error,omitempty"`
}

// BootedEvent is published once per completed boot attempt,
// after all lines have been released.
type BootedEvent struct {
	AttemptSummary
}

// Status of the control surface.
type Status struct {
	Configuration BootConfiguration `json:"configuration"`
	// Set while a boot attempt is running
	Running bool `json:"running"`
	// Number of acknowledged boot requests that have not started yet
	Pending int `json:"pending"`
	// Number of completed attempts
	Attempts int             `json:"attempts"`
	Last     *AttemptSummary `json:"last,omitempty"`
}
