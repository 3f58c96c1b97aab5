// Package progress simulates generation progress while a request is in
// flight. The simulation is cosmetic and knows nothing about the real
// request; the caller owns the Task and must end it with Stop or Complete.
package progress

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Update is one progress report.
type Update struct {
	Percent int
	Stage   string
}

// StageAt switches the stage label once After has elapsed since Start.
type StageAt struct {
	After time.Duration
	Stage string
}

// Schedule drives the simulation: Percent grows by Increment every Step until
// it reaches Cap, and the stage label follows Stages.
type Schedule struct {
	Step         time.Duration
	Increment    int
	Cap          int
	InitialStage string
	Stages       []StageAt
	FinalStage   string
}

// DefaultSchedule is the schedule shown during a generation request.
func DefaultSchedule() Schedule {
	return Schedule{
		Step:         300 * time.Millisecond,
		Increment:    10,
		Cap:          90,
		InitialStage: "Generating UI...",
		Stages: []StageAt{
			{After: 1000 * time.Millisecond, Stage: "Analyzing description..."},
			{After: 2000 * time.Millisecond, Stage: "Creating HTML structure..."},
			{After: 2500 * time.Millisecond, Stage: "Styling components..."},
			{After: 3000 * time.Millisecond, Stage: "Adding interactions..."},
		},
		FinalStage: "Complete!",
	}
}

// Task is a running simulation.
type Task struct {
	schedule Schedule
	report   func(Update)
	cancel   context.CancelFunc
	done     chan struct{}

	mu      sync.Mutex
	stopped bool
}

// Start reports the initial state synchronously and then keeps reporting from
// a background goroutine until Stop or Complete is called.
func Start(s Schedule, report func(Update)) *Task {
	ctx, cancel := context.WithCancel(context.Background())
	t := &Task{
		schedule: s,
		report:   report,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	report(Update{Percent: 0, Stage: s.InitialStage})
	go t.run(ctx)
	return t
}

// Stop releases the timers. Once it returns no further update is delivered.
// It reports whether this call stopped the task.
func (t *Task) Stop() bool {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		<-t.done
		return false
	}
	t.stopped = true
	t.mu.Unlock()

	t.cancel()
	<-t.done
	return true
}

// Complete stops the task and reports 100% with the final stage. It does
// nothing if the task was already stopped.
func (t *Task) Complete() {
	if t.Stop() {
		t.report(Update{Percent: 100, Stage: t.schedule.FinalStage})
	}
}

func (t *Task) run(ctx context.Context) {
	defer close(t.done)

	s := t.schedule
	stages := make([]StageAt, len(s.Stages))
	copy(stages, s.Stages)
	sort.SliceStable(stages, func(i, j int) bool { return stages[i].After < stages[j].After })

	start := time.Now()
	percent := 0
	stage := s.InitialStage

	var tickC <-chan time.Time
	if s.Step > 0 && s.Increment > 0 && percent < s.Cap {
		ticker := time.NewTicker(s.Step)
		defer ticker.Stop()
		tickC = ticker.C
	}

	next := 0
	var stageTimer *time.Timer
	var stageC <-chan time.Time
	arm := func() {
		stageC = nil
		if next >= len(stages) {
			return
		}
		d := stages[next].After - time.Since(start)
		if d < 0 {
			d = 0
		}
		stageTimer = time.NewTimer(d)
		stageC = stageTimer.C
	}
	arm()
	defer func() {
		if stageTimer != nil {
			stageTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tickC:
			percent += s.Increment
			if percent >= s.Cap {
				percent = s.Cap
				tickC = nil
			}
			t.emit(ctx, Update{Percent: percent, Stage: stage})
		case <-stageC:
			stage = stages[next].Stage
			next++
			arm()
			t.emit(ctx, Update{Percent: percent, Stage: stage})
		}
	}
}

// emit drops updates that race with cancellation.
func (t *Task) emit(ctx context.Context, u Update) {
	if ctx.Err() != nil {
		return
	}
	t.report(u)
}
