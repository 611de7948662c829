package focus

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/pocketkeeper/internal/appstate"
	"github.com/dmitrijs2005/pocketkeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTimer(t *testing.T) (*Timer, *clock, string) {
	t.Helper()
	dir := t.TempDir()
	c := &clock{t: time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)}
	tm := NewTimer(appstate.NewFileRepository(dir), logging.NewNop())
	tm.now = c.now
	return tm, c, dir
}

func TestStatus_DefaultsToFullFocusSession(t *testing.T) {
	tm, _, _ := newTimer(t)

	st, err := tm.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, State{TimeLeft: 25 * 60, Mode: ModeFocus}, st)
}

func TestStartPauseResume(t *testing.T) {
	tm, c, dir := newTimer(t)
	ctx := context.Background()

	st, err := tm.Start(ctx)
	require.NoError(t, err)
	require.True(t, st.IsRunning)
	require.NotNil(t, st.EndTime)
	assert.Equal(t, c.t.Add(25*time.Minute).UnixMilli(), *st.EndTime)

	c.t = c.t.Add(10*time.Minute + 500*time.Millisecond)
	st, err = tm.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 15*60, st.TimeLeft, "remaining rounds up")

	st, err = tm.Pause(ctx)
	require.NoError(t, err)
	assert.False(t, st.IsRunning)
	assert.Nil(t, st.EndTime)
	assert.Equal(t, 15*60, st.TimeLeft)

	c.t = c.t.Add(time.Hour)
	st, err = tm.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 15*60, st.TimeLeft, "paused timer does not move")

	data, err := os.ReadFile(filepath.Join(dir, appstate.KeyTimer))
	require.NoError(t, err)
	assert.JSONEq(t, `{"timeLeft":900,"mode":"FOCUS","isRunning":false,"endTime":null}`, string(data))
}

func TestStatus_ExpiredSessionSwitchesMode(t *testing.T) {
	tm, c, _ := newTimer(t)
	ctx := context.Background()

	_, err := tm.Start(ctx)
	require.NoError(t, err)

	c.t = c.t.Add(26 * time.Minute)
	st, err := tm.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, State{TimeLeft: 5 * 60, Mode: ModeBreak}, st)

	_, err = tm.Start(ctx)
	require.NoError(t, err)
	c.t = c.t.Add(5 * time.Minute)
	st, err = tm.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, ModeFocus, st.Mode)
}

func TestResetAndSwitch(t *testing.T) {
	tm, c, _ := newTimer(t)
	ctx := context.Background()

	_, err := tm.Start(ctx)
	require.NoError(t, err)
	c.t = c.t.Add(time.Minute)

	st, err := tm.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, State{TimeLeft: 25 * 60, Mode: ModeFocus}, st)

	st, err = tm.Switch(ctx, ModeBreak)
	require.NoError(t, err)
	assert.Equal(t, State{TimeLeft: 5 * 60, Mode: ModeBreak}, st)

	_, err = tm.Switch(ctx, "NAP")
	require.Error(t, err)
}

func TestLoad_CorruptStateStartsFresh(t *testing.T) {
	tm, _, dir := newTimer(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, appstate.KeyTimer), []byte("{nope"), 0o600))

	st, err := tm.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ModeFocus, st.Mode)
}

func TestRemainingSeconds(t *testing.T) {
	now := time.UnixMilli(10_000)
	assert.Equal(t, 0, remainingSeconds(9_000, now))
	assert.Equal(t, 1, remainingSeconds(10_001, now))
	assert.Equal(t, 2, remainingSeconds(12_000, now))
}
