// Package focus implements the focus/break countdown timer. The timer is
// wall-clock based: a running timer stores its end time, so remaining time
// survives process restarts.
package focus

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/dmitrijs2005/pocketkeeper/internal/appstate"
	"github.com/dmitrijs2005/pocketkeeper/internal/logging"
)

type Mode string

const (
	ModeFocus Mode = "FOCUS"
	ModeBreak Mode = "BREAK"
)

// Length is the full duration of a session in mode m.
func (m Mode) Length() time.Duration {
	if m == ModeBreak {
		return 5 * time.Minute
	}
	return 25 * time.Minute
}

func (m Mode) next() Mode {
	if m == ModeFocus {
		return ModeBreak
	}
	return ModeFocus
}

// State is the persisted timer. TimeLeft is in seconds; EndTime is
// milliseconds since epoch and only set while running.
type State struct {
	TimeLeft  int    `json:"timeLeft"`
	Mode      Mode   `json:"mode"`
	IsRunning bool   `json:"isRunning"`
	EndTime   *int64 `json:"endTime"`
}

func initialState() State {
	return State{TimeLeft: int(ModeFocus.Length().Seconds()), Mode: ModeFocus}
}

type Timer struct {
	repo   appstate.Repository
	now    func() time.Time
	logger logging.Logger
}

func NewTimer(repo appstate.Repository, logger logging.Logger) *Timer {
	return &Timer{repo: repo, now: time.Now, logger: logger}
}

// Status loads the timer and brings a running timer up to date. A session
// that ran out while nobody was looking completes and switches mode.
func (t *Timer) Status(ctx context.Context) (State, error) {
	st, err := t.load(ctx)
	if err != nil {
		return State{}, err
	}
	if !st.IsRunning || st.EndTime == nil {
		return st, nil
	}

	remaining := remainingSeconds(*st.EndTime, t.now())
	if remaining > 0 {
		st.TimeLeft = remaining
		return st, nil
	}

	done := st.Mode
	st = switchTo(done.next())
	t.logger.Info(ctx, "focus session complete", "mode", done)
	return st, t.save(ctx, st)
}

// Start runs the timer from its current remaining time.
func (t *Timer) Start(ctx context.Context) (State, error) {
	st, err := t.Status(ctx)
	if err != nil {
		return State{}, err
	}
	if st.IsRunning {
		return st, nil
	}
	if st.TimeLeft <= 0 {
		st.TimeLeft = int(st.Mode.Length().Seconds())
	}
	end := t.now().Add(time.Duration(st.TimeLeft) * time.Second).UnixMilli()
	st.IsRunning = true
	st.EndTime = &end
	return st, t.save(ctx, st)
}

// Pause stops the timer keeping the remaining time.
func (t *Timer) Pause(ctx context.Context) (State, error) {
	st, err := t.Status(ctx)
	if err != nil {
		return State{}, err
	}
	st.IsRunning = false
	st.EndTime = nil
	return st, t.save(ctx, st)
}

// Reset stops the timer and refills the current mode.
func (t *Timer) Reset(ctx context.Context) (State, error) {
	st, err := t.load(ctx)
	if err != nil {
		return State{}, err
	}
	st = switchTo(st.Mode)
	return st, t.save(ctx, st)
}

// Switch stops the timer and selects mode m with a full session.
func (t *Timer) Switch(ctx context.Context, m Mode) (State, error) {
	if m != ModeFocus && m != ModeBreak {
		return State{}, fmt.Errorf("unknown timer mode %q", m)
	}
	st := switchTo(m)
	return st, t.save(ctx, st)
}

func switchTo(m Mode) State {
	return State{TimeLeft: int(m.Length().Seconds()), Mode: m}
}

// remainingSeconds is max(0, ceil((end-now)/1s)).
func remainingSeconds(endMillis int64, now time.Time) int {
	left := float64(endMillis-now.UnixMilli()) / 1000
	return int(max(0, math.Ceil(left)))
}

func (t *Timer) load(ctx context.Context) (State, error) {
	data, err := t.repo.Get(ctx, appstate.KeyTimer)
	if err != nil {
		return State{}, err
	}
	if data == nil {
		return initialState(), nil
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		t.logger.Warn(ctx, "timer state unreadable, starting fresh", "error", err)
		return initialState(), nil
	}
	if st.Mode != ModeFocus && st.Mode != ModeBreak {
		st.Mode = ModeFocus
	}
	return st, nil
}

func (t *Timer) save(ctx context.Context, st State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode timer state: %w", err)
	}
	return t.repo.Set(ctx, appstate.KeyTimer, data)
}
