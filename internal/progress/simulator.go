package progress

import (
	"fmt"
	"time"
)

const (
	DefaultInterval  = 800 * time.Millisecond
	DefaultIncrement = 5
	DefaultCap       = 90

	// InitialProgress is where every scan starts.
	InitialProgress = 10
	InitialLabel    = "Initializing connection..."
)

// Threshold switches the status label once progress passes Above.
type Threshold struct {
	Above int
	Label string
}

// Thresholds are ordered by Above; a later match wins.
var Thresholds = []Threshold{
	{Above: 20, Label: "Crawling site structure..."},
	{Above: 50, Label: "Extracting metadata & assets..."},
	{Above: 75, Label: "Synthesizing final report..."},
}

// Tick is one simulator step.
type Tick struct {
	Progress int
	Label    string
}

// Simulator produces a cosmetic progress estimate. It never reaches 100;
// only a completed analysis does.
type Simulator struct {
	Interval  time.Duration
	Increment int
	Cap       int
}

// Default returns the simulator used when nothing is configured.
func Default() Simulator {
	return Simulator{
		Interval:  DefaultInterval,
		Increment: DefaultIncrement,
		Cap:       DefaultCap,
	}
}

// Validate checks the simulator parameters
func (s Simulator) Validate() error {
	if s.Interval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", s.Interval)
	}
	if s.Increment <= 0 {
		return fmt.Errorf("increment must be positive, got %d", s.Increment)
	}
	if s.Cap <= InitialProgress || s.Cap >= 100 {
		return fmt.Errorf("cap must be between %d and 99, got %d", InitialProgress+1, s.Cap)
	}
	return nil
}

// Next advances from the current progress and label. Progress is clamped to
// Cap and the label only changes when a threshold is crossed.
func (s Simulator) Next(current int, label string) Tick {
	next := current + s.Increment
	if next > s.Cap {
		next = s.Cap
	}
	if next < current {
		next = current
	}
	return Tick{Progress: next, Label: LabelFor(next, label)}
}

// LabelFor returns the label for progress, keeping fallback below the first
// threshold.
func LabelFor(progress int, fallback string) string {
	label := fallback
	for _, t := range Thresholds {
		if progress > t.Above {
			label = t.Label
		}
	}
	return label
}
