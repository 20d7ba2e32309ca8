package progress

import "time"

// StageInterval is how long each stage stays highlighted in the step strip.
const StageInterval = 1500 * time.Millisecond

// Stages rotate independently of the progress value.
var Stages = []string{
	"Resolving Host...",
	"Crawling Site Structure...",
	"Extracting Metadata...",
	"Synthesizing Report...",
}

// StageAt returns the index of the highlighted stage after elapsed.
func StageAt(elapsed time.Duration) int {
	if elapsed < 0 {
		return 0
	}
	return int(elapsed/StageInterval) % len(Stages)
}

// NextStage returns the stage following i.
func NextStage(i int) int {
	return (i + 1) % len(Stages)
}
