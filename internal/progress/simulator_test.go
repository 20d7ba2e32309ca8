package progress

import (
	"testing"
	"time"
)

func TestSimulator_Next(t *testing.T) {
	sim := Default()

	tests := []struct {
		name      string
		current   int
		label     string
		wantValue int
		wantLabel string
	}{
		{"first tick keeps initial label", 10, InitialLabel, 15, InitialLabel},
		{"exactly 20 keeps label", 15, InitialLabel, 20, InitialLabel},
		{"crossing 20", 20, InitialLabel, 25, "Crawling site structure..."},
		{"crossing 50", 50, "Crawling site structure...", 55, "Extracting metadata & assets..."},
		{"crossing 75", 75, "Extracting metadata & assets...", 80, "Synthesizing final report..."},
		{"clamped at cap", 88, "Synthesizing final report...", 90, "Synthesizing final report..."},
		{"stays at cap", 90, "Synthesizing final report...", 90, "Synthesizing final report..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sim.Next(tt.current, tt.label)
			if got.Progress != tt.wantValue || got.Label != tt.wantLabel {
				t.Errorf("Next(%d) = %+v, want {%d %s}", tt.current, got, tt.wantValue, tt.wantLabel)
			}
		})
	}
}

func TestSimulator_NeverExceedsCapAndLabelsMonotonic(t *testing.T) {
	sim := Default()
	rank := map[string]int{InitialLabel: 0}
	for i, th := range Thresholds {
		rank[th.Label] = i + 1
	}

	tick := Tick{Progress: InitialProgress, Label: InitialLabel}
	for i := 0; i < 100; i++ {
		next := sim.Next(tick.Progress, tick.Label)
		if next.Progress > DefaultCap {
			t.Fatalf("tick %d: progress %d exceeds cap", i, next.Progress)
		}
		if next.Progress < tick.Progress {
			t.Fatalf("tick %d: progress went backwards %d -> %d", i, tick.Progress, next.Progress)
		}
		if rank[next.Label] < rank[tick.Label] {
			t.Fatalf("tick %d: label regressed %q -> %q", i, tick.Label, next.Label)
		}
		tick = next
	}

	if tick.Progress != DefaultCap {
		t.Errorf("expected to settle at %d, got %d", DefaultCap, tick.Progress)
	}
}

func TestSimulator_ReachesCapAfterSixteenTicks(t *testing.T) {
	sim := Default()
	tick := Tick{Progress: InitialProgress, Label: InitialLabel}
	for i := 0; i < 16; i++ {
		tick = sim.Next(tick.Progress, tick.Label)
	}
	if tick.Progress != 90 || tick.Label != "Synthesizing final report..." {
		t.Errorf("after 16 ticks got %+v", tick)
	}
}

func TestSimulator_Validate(t *testing.T) {
	tests := []struct {
		name    string
		sim     Simulator
		wantErr bool
	}{
		{"default", Default(), false},
		{"zero interval", Simulator{Increment: 5, Cap: 90}, true},
		{"zero increment", Simulator{Interval: time.Second, Cap: 90}, true},
		{"cap of 100", Simulator{Interval: time.Second, Increment: 5, Cap: 100}, true},
		{"cap below start", Simulator{Interval: time.Second, Increment: 5, Cap: 10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.sim.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStageAt(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 0},
		{1499 * time.Millisecond, 0},
		{1500 * time.Millisecond, 1},
		{4500 * time.Millisecond, 3},
		{6 * time.Second, 0},
		{-time.Second, 0},
	}

	for _, tt := range tests {
		if got := StageAt(tt.elapsed); got != tt.want {
			t.Errorf("StageAt(%s) = %d, want %d", tt.elapsed, got, tt.want)
		}
	}

	if NextStage(len(Stages)-1) != 0 {
		t.Error("NextStage should wrap around")
	}
}
