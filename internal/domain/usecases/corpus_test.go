package usecases

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xcro3dile/faqbot-go/internal/domain/entities"
	"github.com/0xcro3dile/faqbot-go/internal/domain/matching"
	"github.com/0xcro3dile/faqbot-go/internal/domain/ports"
)

// mockSource implements ports.CorpusSource for testing
type mockSource struct {
	mu    sync.Mutex
	ds    *entities.Dataset
	err   error
	loads int
}

func (m *mockSource) Load(ctx context.Context) (*entities.Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if m.err != nil {
		return nil, m.err
	}
	return m.ds, nil
}

func (m *mockSource) Describe() string { return "mock" }

func (m *mockSource) set(ds *entities.Dataset, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ds, m.err = ds, err
}

func (m *mockSource) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads
}

// mockWatcher implements ports.FileWatcher for testing
type mockWatcher struct {
	events chan ports.FileEvent
	dir    string
}

func (m *mockWatcher) Watch(ctx context.Context, dir string) (<-chan ports.FileEvent, error) {
	m.dir = dir
	return m.events, nil
}

func (m *mockWatcher) Stop() error { return nil }

func dataset(pairs ...string) *entities.Dataset {
	records := make([]entities.RawRecord, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		q, a := pairs[i], pairs[i+1]
		records = append(records, entities.RawRecord{Question: &q, Answer: &a})
	}
	return entities.Collect("mock", records)
}

func TestCorpusUseCase_ServesEmptyBeforeLoad(t *testing.T) {
	uc := NewCorpusUseCase(&mockSource{}, zerolog.Nop())

	require.NotNil(t, uc.Current())
	assert.False(t, uc.Current().Ready())
	assert.Equal(t, matching.NotReadyReply, uc.Current().Answer("hello"))
}

func TestCorpusUseCase_Load(t *testing.T) {
	src := &mockSource{ds: dataset("what is your name", "I am a bot", "how are you", "I am fine")}
	uc := NewCorpusUseCase(src, zerolog.Nop())

	eng := uc.Load(context.Background())
	assert.Same(t, eng, uc.Current())
	assert.Equal(t, 2, eng.Size())
	assert.Equal(t, "I am a bot", eng.Answer("What is your name?"))
}

func TestCorpusUseCase_LoadFailureServesEmpty(t *testing.T) {
	src := &mockSource{err: ports.ErrDatasetUnavailable}
	uc := NewCorpusUseCase(src, zerolog.Nop())

	eng := uc.Load(context.Background())
	assert.False(t, eng.Ready())
	assert.Equal(t, matching.NotReadyReply, uc.Current().Answer("anything"))
}

func TestCorpusUseCase_AppliesOptions(t *testing.T) {
	src := &mockSource{ds: dataset("what is your name", "I am a bot")}
	uc := NewCorpusUseCase(src, zerolog.Nop(), matching.WithThreshold(0.99))

	assert.Equal(t, 0.99, uc.Load(context.Background()).Threshold())
}

func TestCorpusUseCase_ReloadSwapsEngine(t *testing.T) {
	src := &mockSource{ds: dataset("what is your name", "I am a bot")}
	uc := NewCorpusUseCase(src, zerolog.Nop())
	first := uc.Load(context.Background())

	src.set(dataset("what is your name", "I am a new bot"), nil)
	require.NoError(t, uc.Reload(context.Background()))

	assert.NotSame(t, first, uc.Current())
	assert.NotEqual(t, first.Generation(), uc.Current().Generation())
	assert.Equal(t, "I am a new bot", uc.Current().Answer("what is your name"))
	assert.Equal(t, "I am a bot", first.Answer("what is your name"))
}

func TestCorpusUseCase_FailedReloadKeepsPrevious(t *testing.T) {
	src := &mockSource{ds: dataset("what is your name", "I am a bot")}
	uc := NewCorpusUseCase(src, zerolog.Nop())
	first := uc.Load(context.Background())

	src.set(nil, errors.New("boom"))
	err := uc.Reload(context.Background())

	assert.Error(t, err)
	assert.Same(t, first, uc.Current())
}

func TestCorpusUseCase_WatchDebouncesReloads(t *testing.T) {
	src := &mockSource{ds: dataset("what is your name", "I am a bot")}
	uc := NewCorpusUseCase(src, zerolog.Nop())
	uc.Load(context.Background())
	require.Equal(t, 1, src.count())

	watcher := &mockWatcher{events: make(chan ports.FileEvent, 10)}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- uc.Watch(ctx, watcher, "/data/qa_dataset.json", 50*time.Millisecond)
	}()

	src.set(dataset("what is your name", "reloaded"), nil)
	for i := 0; i < 5; i++ {
		watcher.events <- ports.FileEvent{Path: "/data/qa_dataset.json", Operation: ports.FileModified}
	}

	assert.Eventually(t, func() bool {
		return uc.Current().Answer("what is your name") == "reloaded"
	}, 2*time.Second, 10*time.Millisecond)

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, 2, src.count())
	assert.Equal(t, "/data", watcher.dir)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not return after cancel")
	}
}

func TestCorpusUseCase_WatchReturnsWhenEventsClose(t *testing.T) {
	uc := NewCorpusUseCase(&mockSource{ds: dataset()}, zerolog.Nop())
	watcher := &mockWatcher{events: make(chan ports.FileEvent)}
	close(watcher.events)

	assert.NoError(t, uc.Watch(context.Background(), watcher, "qa_dataset.json", time.Millisecond))
	assert.Equal(t, ".", watcher.dir)
}
