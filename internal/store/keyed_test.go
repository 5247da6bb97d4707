package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treasury_go/internal/domain"
)

type item struct {
	id  string
	val int
}

func (i item) Key() string { return i.id }

type recorder struct {
	name  string
	log   *[]string
	kinds []EventKind
}

func (r *recorder) OnEvent(ev Event[item]) {
	r.kinds = append(r.kinds, ev.Kind)
	*r.log = append(*r.log, fmt.Sprintf("%s:%s=%d", r.name, ev.Value.id, ev.Value.val))
}

func TestStore_ReplaceSemantics(t *testing.T) {
	s := New[item]("items")
	var log []string
	first := &recorder{name: "first", log: &log}
	second := &recorder{name: "second", log: &log}
	s.AddListener(first)
	s.AddListener(second)

	s.Upsert("k", item{id: "k", val: 1})
	s.Upsert("k", item{id: "k", val: 2})

	got, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, 2, got.val)
	assert.Equal(t, 1, s.Len())

	assert.Equal(t, []string{"first:k=1", "second:k=1", "first:k=2", "second:k=2"}, log)
	assert.Equal(t, []EventKind{Added, Added}, first.kinds)
	assert.Equal(t, []EventKind{Added, Added}, second.kinds)
}

func TestStore_GetMissing(t *testing.T) {
	s := New[item]("items")

	_, err := s.Get("nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrKeyNotFound))
	assert.Contains(t, err.Error(), "items store")

	_, ok := s.Lookup("nope")
	assert.False(t, ok)
}

func TestStore_PublishUsesKey(t *testing.T) {
	s := New[item]("items")
	s.Publish(item{id: "b", val: 2})
	s.Publish(item{id: "a", val: 1})

	assert.Equal(t, []string{"a", "b"}, s.Keys())
	vals := s.Values()
	require.Len(t, vals, 2)
	assert.Equal(t, 1, vals[0].val)
	assert.Equal(t, 2, vals[1].val)
}

func TestStore_ReentrantPublish(t *testing.T) {
	src := New[item]("src")
	dst := New[item]("dst")

	// Listener on src publishes into dst and back into src once.
	src.AddListener(OnAdd(func(v item) {
		dst.Publish(item{id: v.id, val: v.val * 10})
		if v.val < 3 {
			src.Publish(item{id: v.id, val: v.val + 1})
		}
	}))

	var seen []int
	dst.AddListener(OnAdd(func(v item) { seen = append(seen, v.val) }))

	src.Publish(item{id: "x", val: 1})

	got, err := src.Get("x")
	require.NoError(t, err)
	assert.Equal(t, 3, got.val)
	assert.Equal(t, []int{10, 20, 30}, seen)
}

func TestStore_ListenerAddedDuringFanOut(t *testing.T) {
	s := New[item]("items")
	calls := 0
	late := OnAdd(func(item) { calls++ })

	added := false
	s.AddListener(OnAdd(func(item) {
		if !added {
			added = true
			s.AddListener(late)
		}
	}))

	s.Publish(item{id: "a"})
	assert.Equal(t, 0, calls, "listener added mid fan-out sees only later publishes")

	s.Publish(item{id: "a"})
	assert.Equal(t, 1, calls)
}

func TestStore_ReplaceIsSilent(t *testing.T) {
	s := New[item]("test")
	calls := 0
	s.AddListener(OnAdd(func(item) { calls++ }))

	s.Publish(item{id: "a", val: 1})
	s.Replace("a", item{id: "a", val: 2})

	got, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 2, got.val)
	assert.Equal(t, 1, calls)
}

func TestOnAdd_IgnoresReservedKinds(t *testing.T) {
	calls := 0
	l := OnAdd(func(item) { calls++ })

	l.OnEvent(Event[item]{Kind: Removed})
	l.OnEvent(Event[item]{Kind: Updated})
	l.OnEvent(Event[item]{Kind: Added})

	assert.Equal(t, 1, calls)
	assert.Equal(t, "ADDED", Added.String())
	assert.Equal(t, "REMOVED", Removed.String())
}

func BenchmarkStore_Upsert(b *testing.B) {
	s := New[item]("bench")
	s.AddListener(OnAdd(func(item) {}))
	keys := []string{"91282CFX4", "91282CGA3", "91282CFZ9", "91282CFY2", "91282CFV8", "912810TM0", "912810TL2"}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		k := keys[i%len(keys)]
		s.Upsert(k, item{id: k, val: i})
	}
}
