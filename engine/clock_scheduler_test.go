package engine

import (
	"testing"
	"time"

	"github.com/lixenwraith/arsenal/status"
)

func TestClockSchedulerFixedSteps(t *testing.T) {
	cs := NewClockScheduler(20*time.Millisecond, nil)

	var fixed, variable int
	var lastFrame time.Duration
	cs.EveryFixed(0, func(dt time.Duration) Step {
		if dt != 20*time.Millisecond {
			t.Errorf("Expected fixed dt 20ms, got %v", dt)
		}
		fixed++
		return Continue
	})
	cs.EveryFrame(0, func(dt time.Duration) Step {
		variable++
		lastFrame = dt
		return Continue
	})

	cs.Advance(50 * time.Millisecond)
	if fixed != 2 {
		t.Errorf("Expected 2 fixed steps, got %d", fixed)
	}
	if variable != 1 || lastFrame != 50*time.Millisecond {
		t.Errorf("Expected one variable tick of 50ms, got %d of %v", variable, lastFrame)
	}

	// 10ms carried over plus 10ms completes a step
	cs.Advance(10 * time.Millisecond)
	if fixed != 3 {
		t.Errorf("Expected accumulator carry to produce a third step, got %d", fixed)
	}
	if cs.Frame() != 2 || cs.FixedTicks() != 3 || cs.Elapsed() != 60*time.Millisecond {
		t.Errorf("Unexpected counters: frame=%d ticks=%d elapsed=%v", cs.Frame(), cs.FixedTicks(), cs.Elapsed())
	}
}

func TestClockSchedulerPriorityOrder(t *testing.T) {
	cs := NewClockScheduler(10*time.Millisecond, nil)

	var order []string
	add := func(name string, prio int) {
		cs.EveryFixed(prio, func(time.Duration) Step {
			order = append(order, name)
			return Continue
		})
	}
	add("late", 30)
	add("early", 10)
	add("mid-a", 20)
	add("mid-b", 20)

	cs.StepFixed()
	want := []string{"early", "mid-a", "mid-b", "late"}
	if len(order) != len(want) {
		t.Fatalf("Expected %d calls, got %v", len(want), order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, order)
			break
		}
	}
}

func TestClockSchedulerStopAndDispose(t *testing.T) {
	cs := NewClockScheduler(10*time.Millisecond, nil)

	runs := 0
	cs.EveryFrame(0, func(time.Duration) Step {
		runs++
		if runs == 2 {
			return Stop
		}
		return Continue
	})
	disposedRuns := 0
	sub := cs.EveryFrame(0, func(time.Duration) Step {
		disposedRuns++
		return Continue
	})

	cs.Advance(0)
	sub.Dispose()
	sub.Dispose()
	cs.Advance(0)
	cs.Advance(0)

	if runs != 2 {
		t.Errorf("Expected task to stop after 2 runs, got %d", runs)
	}
	if disposedRuns != 1 {
		t.Errorf("Expected disposed task to run once, got %d", disposedRuns)
	}
	if n := cs.Len(PhaseVariable); n != 0 {
		t.Errorf("Expected no live variable tasks, got %d", n)
	}
}

func TestClockSchedulerTasksAddedDuringPassStartNextPass(t *testing.T) {
	cs := NewClockScheduler(10*time.Millisecond, nil)

	inner := 0
	cs.EveryFrame(0, func(time.Duration) Step {
		cs.EveryFrame(0, func(time.Duration) Step {
			inner++
			return Continue
		})
		return Stop
	})

	cs.Advance(0)
	if inner != 0 {
		t.Errorf("Expected task added mid-pass to wait, ran %d times", inner)
	}
	if cs.Len(PhaseVariable) != 1 {
		t.Errorf("Expected 1 pending task, got %d", cs.Len(PhaseVariable))
	}
	cs.Advance(0)
	if inner != 1 {
		t.Errorf("Expected task to run on the next pass, ran %d times", inner)
	}
}

func TestClockSchedulerAfter(t *testing.T) {
	cs := NewClockScheduler(10*time.Millisecond, nil)

	fired := 0
	cs.After(45*time.Millisecond, func() { fired++ })

	for range 4 {
		cs.Advance(10 * time.Millisecond)
	}
	if fired != 0 {
		t.Errorf("Expected timer pending at 40ms, fired %d", fired)
	}
	cs.Advance(10 * time.Millisecond)
	cs.Advance(10 * time.Millisecond)
	if fired != 1 {
		t.Errorf("Expected timer to fire exactly once, fired %d", fired)
	}

	cancelled := false
	sub := cs.After(0, func() { cancelled = true })
	sub.Dispose()
	cs.Advance(10 * time.Millisecond)
	if cancelled {
		t.Error("Expected disposed timer not to fire")
	}
}

func TestClockSchedulerBacklogCap(t *testing.T) {
	cs := NewClockScheduler(time.Millisecond, nil)
	steps := 0
	cs.EveryFixed(0, func(time.Duration) Step {
		steps++
		return Continue
	})

	cs.Advance(time.Hour)
	if steps == 0 || steps > 250 {
		t.Errorf("Expected capped catch-up, got %d steps", steps)
	}
	cs.Advance(0)
	if steps > 250 {
		t.Errorf("Expected dropped backlog, got %d steps", steps)
	}
}

func TestClockSchedulerMetricsAndClear(t *testing.T) {
	reg := status.NewRegistry()
	cs := NewClockScheduler(0, reg)
	if cs.FixedStep() <= 0 {
		t.Fatalf("Expected default fixed step, got %v", cs.FixedStep())
	}

	cs.EveryFixed(0, func(time.Duration) Step { return Continue })
	cs.EveryFrame(0, func(time.Duration) Step { return Continue })
	if got := reg.Ints.Get("engine.tasks").Load(); got != 2 {
		t.Errorf("Expected 2 tasks in metrics, got %d", got)
	}

	cs.Advance(cs.FixedStep())
	if reg.Ints.Get("engine.frames").Load() != 1 || reg.Ints.Get("engine.ticks").Load() != 1 {
		t.Error("Expected frame and tick counters to advance")
	}

	cs.Clear()
	if got := reg.Ints.Get("engine.tasks").Load(); got != 0 {
		t.Errorf("Expected 0 tasks after Clear, got %d", got)
	}
	if cs.Every(Phase(9), 0, func(time.Duration) Step { return Continue }) != NopSubscription {
		t.Error("Expected invalid phase to register nothing")
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseFixed.String() != "fixed" || PhaseVariable.String() != "variable" || Phase(7).String() != "unknown" {
		t.Error("Unexpected phase names")
	}
}
