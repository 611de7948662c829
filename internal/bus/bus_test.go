package bus

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmit_ReachesListenerUntilRemoved(t *testing.T) {
	b := New()
	calls := 0

	sub := b.AddListener(EventTransactionUpdated, func(any) { calls++ })
	b.Emit(EventTransactionUpdated, nil)
	require.Equal(t, 1, calls)

	sub.Remove()
	b.Emit(EventTransactionUpdated, nil)
	assert.Equal(t, 1, calls)
}

func TestEmit_NoListenersIsNoop(t *testing.T) {
	b := New()
	assert.NotPanics(t, func() { b.Emit("nobody", 42) })
}

func TestEmit_OrderAndPayload(t *testing.T) {
	b := New()
	var got []string

	b.AddListener("e", func(p any) { got = append(got, "a:"+p.(string)) })
	b.AddListener("e", func(p any) { got = append(got, "b:"+p.(string)) })
	b.AddListener("other", func(p any) { got = append(got, "other") })

	b.Emit("e", "x")
	assert.Equal(t, []string{"a:x", "b:x"}, got)
}

func TestSubscription_RemoveIsIdempotent(t *testing.T) {
	b := New()
	first := 0
	second := 0

	s1 := b.AddListener("e", func(any) { first++ })
	b.AddListener("e", func(any) { second++ })

	s1.Remove()
	s1.Remove()

	b.Emit("e", nil)
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
	assert.Equal(t, 1, b.ListenerCount("e"))

	var nilSub *Subscription
	assert.NotPanics(t, nilSub.Remove)
}

func TestRemoveDuringEmit(t *testing.T) {
	b := New()
	calls := 0

	var sub *Subscription
	sub = b.AddListener("e", func(any) {
		calls++
		sub.Remove()
	})
	b.AddListener("e", func(any) { calls++ })

	b.Emit("e", nil)
	assert.Equal(t, 2, calls)

	b.Emit("e", nil)
	assert.Equal(t, 3, calls)
}

func TestScoped(t *testing.T) {
	b := New()
	calls := 0

	b.Scoped("e", func(any) { calls++ }, func() {
		b.Emit("e", nil)
	})
	b.Emit("e", nil)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, b.ListenerCount("e"))
}

func TestOn_FiltersPayloadType(t *testing.T) {
	b := New()
	var names []string

	On(b, EventCollectionChanged, func(name string) { names = append(names, name) })
	Publish(b, EventCollectionChanged, "notes")
	Publish(b, EventCollectionChanged, 7)

	assert.Equal(t, []string{"notes"}, names)
}

func TestConcurrentEmitAndSubscribe(t *testing.T) {
	b := New()
	var mu sync.Mutex
	total := 0

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub := b.AddListener("e", func(any) {
				mu.Lock()
				total++
				mu.Unlock()
			})
			b.Emit("e", nil)
			sub.Remove()
		}()
	}
	wg.Wait()

	assert.Positive(t, total)
	assert.Equal(t, 0, b.ListenerCount("e"))
}
