package explosion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lixenwraith/arsenal/engine"
	"github.com/lixenwraith/arsenal/explosion/mocks"
	"github.com/lixenwraith/arsenal/physics"
	"github.com/lixenwraith/arsenal/status"
	"github.com/lixenwraith/arsenal/tag"
	"github.com/lixenwraith/arsenal/vmath"
)

const frame = 16 * time.Millisecond

func newBody() *physics.Body {
	return physics.NewBody(1, tag.Projectile, vmath.Vec3F{X: 0.1, Y: 0.1, Z: 0.1})
}

// expectCompletion wires OnExploded so the test can fire the process completion
func expectCompletion(p *mocks.MockProcess) *func() {
	var fire func()
	p.EXPECT().OnExploded(gomock.Any()).DoAndReturn(func(fn func()) engine.Subscription {
		fire = fn
		return engine.NewSubscription(func() { fire = nil })
	})
	return &fire
}

func TestSessionWaitsForSettle(t *testing.T) {
	ctrl := gomock.NewController(t)
	proc := mocks.NewMockProcess(ctrl)
	sched := engine.NewClockScheduler(20*time.Millisecond, nil)
	reg := status.NewRegistry()

	body := newBody()
	body.Velocity = vmath.Vec3F{X: 3}

	fire := expectCompletion(proc)
	s := NewSession(body, proc, sched, false, Options{Registry: reg})

	completions := 0
	s.Arm(func() { completions++ })
	assert.Equal(t, StateWaitingToSettle, s.State())

	// Still moving: no detonation
	for i := 0; i < 10; i++ {
		sched.Advance(frame)
	}
	assert.Equal(t, StateWaitingToSettle, s.State())

	proc.EXPECT().Explode().Times(1)
	body.Velocity = vmath.Vec3F{X: 0.1}
	sched.Advance(frame)
	assert.Equal(t, StateDetonated, s.State())
	assert.Equal(t, 0, sched.Len(engine.PhaseVariable))
	assert.Equal(t, int64(1), reg.Ints.Get("explosion.detonations").Load())

	require.NotNil(t, *fire)
	(*fire)()
	assert.Equal(t, 1, completions)
	assert.True(t, s.Completed())

	proc.EXPECT().Dispose().Times(1)
	s.Dispose()
	s.Dispose()
	assert.Equal(t, StateDisposed, s.State())
	assert.Equal(t, 1, completions)
}

func TestSessionInstantDetonatesOnArm(t *testing.T) {
	ctrl := gomock.NewController(t)
	proc := mocks.NewMockProcess(ctrl)
	sched := engine.NewClockScheduler(20*time.Millisecond, nil)

	body := newBody()
	body.Velocity = vmath.Vec3F{X: 30}

	fire := expectCompletion(proc)
	proc.EXPECT().Explode().Do(func() { (*fire)() })

	s := NewSession(body, proc, sched, true, Options{})
	completions := 0
	s.Arm(func() { completions++ })

	assert.Equal(t, StateDetonated, s.State())
	assert.Equal(t, 1, completions)
	assert.Equal(t, 0, sched.Len(engine.PhaseVariable))
}

func TestSessionCompletionFiresOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	proc := mocks.NewMockProcess(ctrl)
	sched := engine.NewClockScheduler(20*time.Millisecond, nil)

	var handler func()
	proc.EXPECT().OnExploded(gomock.Any()).DoAndReturn(func(fn func()) engine.Subscription {
		handler = fn
		return engine.NopSubscription
	})
	proc.EXPECT().Explode()

	s := NewSession(newBody(), proc, sched, true, Options{})
	completions := 0
	s.Arm(func() { completions++ })

	handler()
	handler()
	assert.Equal(t, 1, completions)
}

func TestSessionDestroyedBodyCancelsPoll(t *testing.T) {
	ctrl := gomock.NewController(t)
	proc := mocks.NewMockProcess(ctrl)
	sched := engine.NewClockScheduler(20*time.Millisecond, nil)
	scene := physics.NewDefaultScene(nil)

	body := scene.Add(newBody())
	body.Velocity = vmath.Vec3F{X: 5}

	expectCompletion(proc)
	s := NewSession(body, proc, sched, false, Options{})
	s.Arm(func() { t.Fatal("completion must not fire") })

	scene.Destroy(body)
	sched.Advance(frame)

	assert.Equal(t, 0, sched.Len(engine.PhaseVariable))
	assert.Equal(t, StateWaitingToSettle, s.State())
}

func TestSessionDisposeBeforeDetonation(t *testing.T) {
	ctrl := gomock.NewController(t)
	proc := mocks.NewMockProcess(ctrl)
	sched := engine.NewClockScheduler(20*time.Millisecond, nil)

	body := newBody()
	body.Velocity = vmath.Vec3F{X: 5}

	expectCompletion(proc)
	proc.EXPECT().Dispose().Times(1)

	s := NewSession(body, proc, sched, false, Options{})
	s.Arm(func() {})
	s.Dispose()

	body.Velocity = vmath.Vec3F{}
	sched.Advance(frame)
	assert.Equal(t, StateDisposed, s.State())

	// Arm after dispose is ignored
	s.Arm(func() {})
	assert.Equal(t, StateDisposed, s.State())
}

func TestSessionCustomSettleSpeed(t *testing.T) {
	ctrl := gomock.NewController(t)
	proc := mocks.NewMockProcess(ctrl)
	sched := engine.NewClockScheduler(20*time.Millisecond, nil)

	body := newBody()
	body.Velocity = vmath.Vec3F{X: 0.5}

	expectCompletion(proc)
	proc.EXPECT().Explode()

	s := NewSession(body, proc, sched, false, Options{SettleSpeed: 1})
	s.Arm(nil)
	sched.Advance(frame)
	assert.Equal(t, StateDetonated, s.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "waiting_to_settle", StateWaitingToSettle.String())
	assert.Equal(t, "unknown", State(42).String())
}
