package history_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/valence/pkg/command"
	"github.com/aretw0/valence/pkg/domain"
	"github.com/aretw0/valence/pkg/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// register is a tiny external store the test commands mutate.
type register struct {
	values []string
}

// push returns a command appending v to the register.
func (r *register) push(v string) command.Command {
	return command.NewFunc("push "+v,
		func() { r.values = append(r.values, v) },
		func() { r.values = r.values[:len(r.values)-1] },
	)
}

func (r *register) snapshot() []string {
	return append([]string(nil), r.values...)
}

type state struct{ canUndo, canRedo bool }

func TestHistory_InitialState(t *testing.T) {
	h := history.New()

	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
	assert.False(t, h.Undo())
	assert.False(t, h.Redo())

	_, ok := h.UndoDescription()
	assert.False(t, ok)
	_, ok = h.RedoDescription()
	assert.False(t, ok)

	stats := h.Stats()
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, -1, stats.Index)
	assert.Equal(t, 100, stats.MaxSize)
	assert.Empty(t, stats.Descriptions)
}

func TestHistory_ExecuteUndoRedo(t *testing.T) {
	r := &register{}
	h := history.New()

	h.Execute(r.push("a"))
	h.Execute(r.push("b"))
	assert.Equal(t, []string{"a", "b"}, r.values)

	desc, ok := h.UndoDescription()
	require.True(t, ok)
	assert.Equal(t, "push b", desc)

	require.True(t, h.Undo())
	assert.Equal(t, []string{"a"}, r.values)
	assert.True(t, h.CanUndo())
	assert.True(t, h.CanRedo())

	desc, ok = h.RedoDescription()
	require.True(t, ok)
	assert.Equal(t, "push b", desc)

	require.True(t, h.Redo())
	assert.Equal(t, []string{"a", "b"}, r.values)
	assert.False(t, h.Redo(), "nothing left to redo")
}

func TestHistory_RoundTrip(t *testing.T) {
	for _, n := range []int{1, 3, 10} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			r := &register{}
			h := history.New()

			for i := 0; i < n; i++ {
				h.Execute(r.push(fmt.Sprint(i)))
			}
			afterExecute := r.snapshot()

			for i := 0; i < n; i++ {
				require.True(t, h.Undo())
			}
			assert.Empty(t, r.values)
			assert.False(t, h.Undo())

			for i := 0; i < n; i++ {
				require.True(t, h.Redo())
			}
			assert.Equal(t, afterExecute, r.values)
		})
	}
}

func TestHistory_BranchTruncation(t *testing.T) {
	r := &register{}
	h := history.New()

	h.Execute(r.push("A"))
	h.Execute(r.push("B"))
	require.True(t, h.Undo())
	h.Execute(r.push("C"))

	assert.False(t, h.CanRedo())
	assert.False(t, h.Redo())
	assert.Equal(t, []string{"push A", "push C"}, h.Stats().Descriptions)
	assert.Equal(t, []string{"A", "C"}, r.values)
}

func TestHistory_BoundedEviction(t *testing.T) {
	r := &register{}
	h := history.New(history.WithMaxSize(2))

	h.Execute(r.push("A"))
	h.Execute(r.push("B"))
	h.Execute(r.push("C"))

	stats := h.Stats()
	assert.Equal(t, []string{"push B", "push C"}, stats.Descriptions)
	assert.Equal(t, 1, stats.Index)

	require.True(t, h.Undo())
	require.True(t, h.Undo())
	assert.False(t, h.Undo(), "A was evicted")
	assert.Equal(t, []string{"A"}, r.values, "state before B, not before A")
}

func TestHistory_EvictionAfterUndo(t *testing.T) {
	r := &register{}
	h := history.New(history.WithMaxSize(2))

	h.Execute(r.push("A"))
	h.Execute(r.push("B"))
	require.True(t, h.Undo())
	h.Execute(r.push("C")) // truncates B, no eviction
	h.Execute(r.push("D")) // evicts A

	stats := h.Stats()
	assert.Equal(t, []string{"push C", "push D"}, stats.Descriptions)
	assert.Equal(t, 1, stats.Index)
}

func TestHistory_WithMaxSizeIgnoresInvalid(t *testing.T) {
	assert.Equal(t, 100, history.New(history.WithMaxSize(0)).Stats().MaxSize)
	assert.Equal(t, 100, history.New(history.WithMaxSize(-3)).Stats().MaxSize)
	assert.Equal(t, 1, history.New(history.WithMaxSize(1)).Stats().MaxSize)
}

func TestHistory_MaxSizeOne(t *testing.T) {
	r := &register{}
	h := history.New(history.WithMaxSize(1))

	h.Execute(r.push("A"))
	h.Execute(r.push("B"))

	assert.Equal(t, 0, h.Stats().Index)
	require.True(t, h.Undo())
	assert.False(t, h.Undo())
	assert.Equal(t, []string{"A"}, r.values)
}

func TestHistory_RecordDoesNotExecute(t *testing.T) {
	r := &register{}
	h := history.New()

	// The caller already performed the mutation.
	r.values = append(r.values, "typed")
	h.Record(r.push("typed"))
	assert.Equal(t, []string{"typed"}, r.values)

	require.True(t, h.Undo())
	assert.Empty(t, r.values)

	require.True(t, h.Redo())
	assert.Equal(t, []string{"typed"}, r.values)
}

func TestHistory_Clear(t *testing.T) {
	r := &register{}
	h := history.New()
	h.Execute(r.push("A"))
	h.Execute(r.push("B"))
	h.Undo()

	h.Clear()

	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
	assert.Equal(t, -1, h.Stats().Index)
	assert.Equal(t, []string{"A"}, r.values, "clear does not touch external state")
}

func TestHistory_NilCommandIgnored(t *testing.T) {
	h := history.New()
	var calls int
	h.Subscribe(func(bool, bool) { calls++ })

	h.Execute(nil)
	h.Record(nil)

	assert.Equal(t, 1, calls, "only the replay on subscribe")
	assert.Equal(t, 0, h.Stats().Total)
}

func TestHistory_SubscriberReplay(t *testing.T) {
	r := &register{}
	h := history.New()
	h.Execute(r.push("A"))
	h.Execute(r.push("B"))
	h.Execute(r.push("C"))

	var got []state
	h.Subscribe(func(canUndo, canRedo bool) {
		got = append(got, state{canUndo, canRedo})
	})

	assert.Equal(t, []state{{true, false}}, got)
}

func TestHistory_SubscriberNotifications(t *testing.T) {
	r := &register{}
	h := history.New()

	var got []state
	unsubscribe := h.Subscribe(func(canUndo, canRedo bool) {
		got = append(got, state{canUndo, canRedo})
	})

	h.Execute(r.push("A"))
	h.Record(r.push("B"))
	h.Undo()
	h.Redo()
	h.Undo()
	h.Undo()
	h.Undo() // no-op, no notification
	h.Redo()
	h.Clear()

	want := []state{
		{false, false}, // replay
		{true, false},  // execute
		{true, false},  // record
		{true, true},   // undo
		{true, false},  // redo
		{true, true},   // undo
		{false, true},  // undo
		{true, true},   // redo
		{false, false}, // clear
	}
	assert.Equal(t, want, got)

	unsubscribe()
	unsubscribe()
	h.Execute(r.push("C"))
	assert.Len(t, got, len(want), "no notifications after unsubscribe")
}

func TestHistory_SubscribersInOrder(t *testing.T) {
	h := history.New()
	var order []string
	h.Subscribe(func(bool, bool) { order = append(order, "first") })
	unsub := h.Subscribe(func(bool, bool) { order = append(order, "second") })
	h.Subscribe(func(bool, bool) { order = append(order, "third") })
	unsub()

	order = nil
	h.Clear()
	assert.Equal(t, []string{"first", "third"}, order)
}

// within fails the test if fn does not return in time.
func within(t *testing.T, d time.Duration, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-time.After(d):
		t.Fatal("history call did not return; a callback is blocked on the history lock")
	}
}

func TestHistory_SubscriberReadsHistory(t *testing.T) {
	h := history.New()
	var labels []string
	h.Subscribe(func(canUndo, canRedo bool) {
		label, _ := h.UndoDescription()
		labels = append(labels, label)
		assert.Equal(t, canUndo, h.CanUndo())
		assert.Equal(t, canRedo, h.CanRedo())
		h.Stats()
	})

	within(t, 2*time.Second, func() {
		h.Execute(command.NewFunc("Move node", nil, nil))
		h.Record(command.NewFunc("Update node", nil, nil))
		h.Undo()
		h.Redo()
		h.Clear()
	})

	assert.Equal(t, []string{"", "Move node", "Update node", "Move node", "Update node", ""}, labels)
}

func TestHistory_HookReadsHistory(t *testing.T) {
	var totals []int
	var h *history.History
	h = history.New(
		history.WithMaxSize(1),
		history.WithHooks(domain.HistoryHooks{
			OnChange: func(*domain.HistoryEvent) { totals = append(totals, h.Stats().Total) },
			OnEvict:  func(*domain.HistoryEvent) { h.RedoDescription() },
		}),
	)

	within(t, 2*time.Second, func() {
		h.Execute(command.NewFunc("a", nil, nil))
		h.Execute(command.NewFunc("b", nil, nil))
	})
	assert.Equal(t, []int{1, 1}, totals)
}

func TestHistory_SubscriberMayExecute(t *testing.T) {
	h := history.New()
	follow := true
	h.Subscribe(func(canUndo, _ bool) {
		if canUndo && follow {
			follow = false
			h.Execute(command.NewFunc("follow-up", nil, nil))
		}
	})

	within(t, 2*time.Second, func() {
		h.Execute(command.NewFunc("first", nil, nil))
	})
	assert.Equal(t, []string{"first", "follow-up"}, h.Stats().Descriptions)
}

func TestHistory_ExecuteWith(t *testing.T) {
	r := &register{}
	h := history.New()
	var changes int
	h.Subscribe(func(bool, bool) { changes++ })

	cmd, err := h.ExecuteWith(func() (command.Command, error) { return r.push("a"), nil })
	require.NoError(t, err)
	require.NotNil(t, cmd)
	assert.Equal(t, []string{"a"}, r.snapshot())

	cmd, err = h.ExecuteWith(func() (command.Command, error) { return nil, nil })
	require.NoError(t, err)
	assert.Nil(t, cmd)

	_, err = h.ExecuteWith(func() (command.Command, error) { return nil, domain.ErrNodeNotFound })
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)

	assert.Equal(t, 1, h.Stats().Total)
	assert.Equal(t, 2, changes, "initial replay plus one execute")
}

func TestHistory_ExecuteWithSerializesBuild(t *testing.T) {
	var (
		mu      sync.Mutex
		counter int
	)
	h := history.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = h.ExecuteWith(func() (command.Command, error) {
				mu.Lock()
				before := counter
				mu.Unlock()
				set := func(v int) func() {
					return func() { mu.Lock(); counter = v; mu.Unlock() }
				}
				return command.NewFunc("inc", set(before+1), set(before)), nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter)

	for h.Undo() {
	}
	assert.Equal(t, 0, counter)
}

func TestHistory_Hooks(t *testing.T) {
	r := &register{}
	var changes, evictions, truncations []domain.HistoryEvent

	h := history.New(
		history.WithMaxSize(2),
		history.WithHooks(domain.HistoryHooks{
			OnChange:   func(e *domain.HistoryEvent) { changes = append(changes, *e) },
			OnEvict:    func(e *domain.HistoryEvent) { evictions = append(evictions, *e) },
			OnTruncate: func(e *domain.HistoryEvent) { truncations = append(truncations, *e) },
		}),
	)

	h.Execute(r.push("A"))
	h.Execute(r.push("B"))
	h.Execute(r.push("C"))
	h.Undo()
	h.Undo()
	h.Execute(r.push("D"))

	require.Len(t, changes, 6)
	assert.Equal(t, domain.ReasonExecute, changes[0].Reason)
	assert.Equal(t, domain.ReasonUndo, changes[3].Reason)
	assert.Equal(t, "push B", changes[4].Description)

	require.Len(t, evictions, 1)
	assert.Equal(t, "push C", evictions[0].Description)
	assert.Equal(t, 1, evictions[0].Evicted)
	assert.Equal(t, 2, evictions[0].Total)

	require.Len(t, truncations, 1)
	assert.Equal(t, 2, truncations[0].Truncated)
	assert.Equal(t, "push D", truncations[0].Description)
	assert.Equal(t, 0, truncations[0].Index)
}

func TestHistory_IndexInvariant(t *testing.T) {
	r := &register{}
	h := history.New(history.WithMaxSize(3))

	ops := []func(){
		func() { h.Execute(r.push("x")) },
		func() { h.Undo() },
		func() { h.Redo() },
		func() { h.Record(command.NewFunc("noop", nil, nil)) },
	}
	for i := 0; i < 200; i++ {
		ops[(i*7+i/3)%len(ops)]()
		s := h.Stats()
		require.GreaterOrEqual(t, s.Index, -1)
		require.Less(t, s.Index, s.Total)
		require.LessOrEqual(t, s.Total, 3)
		if s.Total == 0 {
			require.Equal(t, -1, s.Index)
		}
	}
}

func TestHistory_ConcurrentUse(t *testing.T) {
	var mu sync.Mutex
	counter := 0
	inc := command.NewFunc("inc",
		func() { mu.Lock(); counter++; mu.Unlock() },
		func() { mu.Lock(); counter--; mu.Unlock() },
	)

	h := history.New(history.WithMaxSize(1000))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				h.Execute(inc)
				h.CanUndo()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 400, counter)
	assert.Equal(t, 400, h.Stats().Total)

	for h.Undo() {
	}
	assert.Equal(t, 0, counter)
}
