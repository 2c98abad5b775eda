package persist_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"statekeep/internal/persist"
	"statekeep/internal/store"
)

type sample struct {
	N    int      `json:"n"`
	Tags []string `json:"tags"`
}

func cloneSample(s sample) sample {
	s.Tags = append([]string(nil), s.Tags...)
	return s
}

// countingStore records writes and can be told to fail.
type countingStore struct {
	*store.MemoryStore
	writes  int
	readErr error
	failErr error
}

func newCountingStore() *countingStore {
	return &countingStore{MemoryStore: store.NewMemoryStore()}
}

func (s *countingStore) Read(key string) ([]byte, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	return s.MemoryStore.Read(key)
}

func (s *countingStore) Write(key string, data []byte) error {
	s.writes++
	if s.failErr != nil {
		return s.failErr
	}
	return s.MemoryStore.Write(key, data)
}

func newSample(kv *countingStore, log *zap.Logger) *persist.Container[sample] {
	return persist.New(persist.Options[sample]{
		Key:      "sample",
		Default:  sample{N: 7},
		Store:    kv,
		Logger:   log,
		Validate: func(s sample) bool { return s.N >= 0 },
		Clone:    cloneSample,
	})
}

func TestContainer_FreshStart_UsesDefault(t *testing.T) {
	kv := newCountingStore()
	c := newSample(kv, nil)

	require.True(t, c.HasHydrated())
	require.Equal(t, sample{N: 7}, c.State())
	require.Zero(t, kv.writes, "hydration must not write")
}

func TestContainer_Set_WritesThroughOnce(t *testing.T) {
	kv := newCountingStore()
	c := newSample(kv, nil)

	c.Set(func(s sample) sample { s.N++; return s })

	require.Equal(t, 8, c.State().N)
	require.Equal(t, 1, kv.writes)

	b, err := kv.MemoryStore.Read("sample")
	require.NoError(t, err)
	require.JSONEq(t, `{"n":8,"tags":null}`, string(b))
}

func TestContainer_RestoresAcrossInstances(t *testing.T) {
	kv := newCountingStore()
	newSample(kv, nil).Replace(sample{N: 3, Tags: []string{"a"}})

	got := newSample(kv, nil).State()
	if diff := cmp.Diff(sample{N: 3, Tags: []string{"a"}}, got); diff != "" {
		t.Fatalf("restored state mismatch (-want +got):\n%s", diff)
	}
}

func TestContainer_PartialStoredData_KeepsDefaults(t *testing.T) {
	kv := newCountingStore()
	require.NoError(t, kv.MemoryStore.Write("sample", []byte(`{"tags":["x"]}`)))

	got := newSample(kv, nil).State()
	require.Equal(t, 7, got.N)
	require.Equal(t, []string{"x"}, got.Tags)
}

func TestContainer_BadStoredData_FallsBack(t *testing.T) {
	cases := map[string]string{
		"not json":      `{"n":`,
		"wrong type":    `{"n":"seven"}`,
		"fails check":   `{"n":-1}`,
		"json but list": `[1,2]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			kv := newCountingStore()
			require.NoError(t, kv.MemoryStore.Write("sample", []byte(raw)))

			core, logs := observer.New(zapcore.WarnLevel)
			c := newSample(kv, zap.New(core))

			require.Equal(t, sample{N: 7}, c.State())
			require.Equal(t, 1, logs.Len())
			require.Equal(t, "sample", logs.All()[0].ContextMap()["key"])
		})
	}
}

func TestContainer_ReadError_FallsBack(t *testing.T) {
	kv := newCountingStore()
	kv.readErr = errors.New("disk on fire")

	c := newSample(kv, nil)
	require.Equal(t, sample{N: 7}, c.State())
}

func TestContainer_WriteFailure_KeepsState(t *testing.T) {
	kv := newCountingStore()
	kv.failErr = errors.New("read-only")

	core, logs := observer.New(zapcore.ErrorLevel)
	c := newSample(kv, zap.New(core))

	c.Set(func(s sample) sample { s.N = 100; return s })

	require.Equal(t, 100, c.State().N)
	require.Equal(t, 1, logs.FilterMessage("persist state").Len())
}

func TestContainer_SnapshotsAreIsolated(t *testing.T) {
	c := newSample(newCountingStore(), nil)
	c.Replace(sample{N: 1, Tags: []string{"a"}})

	snap := c.State()
	snap.Tags[0] = "mutated"

	require.Equal(t, []string{"a"}, c.State().Tags)
}

func TestContainer_Subscribe(t *testing.T) {
	c := newSample(newCountingStore(), nil)

	var order []string
	var seen [][2]int
	unsubA := c.Subscribe(func(next, prev sample) {
		order = append(order, "a")
		seen = append(seen, [2]int{prev.N, next.N})
	})
	unsubB := c.Subscribe(func(next, prev sample) { order = append(order, "b") })

	c.Set(func(s sample) sample { s.N = 10; return s })
	require.Equal(t, []string{"a", "b"}, order)
	require.Equal(t, [][2]int{{7, 10}}, seen)

	unsubA()
	unsubA() // idempotent
	c.Set(func(s sample) sample { s.N = 11; return s })
	require.Equal(t, []string{"a", "b", "b"}, order)

	unsubB()
	c.Set(func(s sample) sample { s.N = 12; return s })
	require.Len(t, order, 3)
}

func TestContainer_Rehydrate(t *testing.T) {
	kv := newCountingStore()
	c := newSample(kv, nil)

	// Another writer replaces the stored snapshot.
	require.NoError(t, kv.MemoryStore.Write("sample", []byte(`{"n":40}`)))

	var notified int
	c.Subscribe(func(next, prev sample) {
		notified++
		require.Equal(t, 7, prev.N)
		require.Equal(t, 40, next.N)
	})

	require.NoError(t, c.Rehydrate())
	require.Equal(t, 40, c.State().N)
	require.Equal(t, 1, notified)
	require.Zero(t, kv.writes, "rehydrate must not write back")
}

func TestContainer_Rehydrate_Rejected(t *testing.T) {
	kv := newCountingStore()
	c := newSample(kv, nil)
	c.Replace(sample{N: 5})

	require.NoError(t, kv.MemoryStore.Write("sample", []byte(`{"n":-3}`)))
	err := c.Rehydrate()
	require.ErrorIs(t, err, persist.ErrInvalidState)
	require.Equal(t, 7, c.State().N)
}

func TestContainer_ClearStorage(t *testing.T) {
	kv := newCountingStore()
	c := newSample(kv, nil)
	c.Replace(sample{N: 9})

	require.NoError(t, c.ClearStorage())
	require.Equal(t, 9, c.State().N, "in-memory state survives clearing storage")

	b, err := kv.MemoryStore.Read("sample")
	require.NoError(t, err)
	require.Nil(t, b)
	require.Equal(t, 7, newSample(kv, nil).State().N)
}
