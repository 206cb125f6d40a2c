package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/call-screener/internal/entity"
)

type fakeLister struct {
	mu     sync.Mutex
	calls  int
	roster []*entity.Caller
	err    error
}

func (f *fakeLister) List(context.Context) ([]*entity.Caller, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.roster, f.err
}

func (f *fakeLister) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeStore struct {
	mu     sync.Mutex
	stored [][]*entity.Caller
	err    error
}

func (f *fakeStore) Store(_ context.Context, roster []*entity.Caller) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stored = append(f.stored, roster)
	return f.err
}

func TestRosterPollerRefresh(t *testing.T) {
	lister := &fakeLister{roster: []*entity.Caller{{ID: "c-1"}}}
	store := &fakeStore{}
	p := NewRosterPoller(lister, store, time.Second, nil)

	assert.True(t, p.Refresh(context.Background()))
	assert.Len(t, store.stored, 1)
	assert.Equal(t, "c-1", store.stored[0][0].ID)
}

func TestRosterPollerRefreshFailures(t *testing.T) {
	p := NewRosterPoller(&fakeLister{err: errors.New("store down")}, &fakeStore{}, time.Second, nil)
	assert.False(t, p.Refresh(context.Background()))

	store := &fakeStore{err: errors.New("redis down")}
	p = NewRosterPoller(&fakeLister{}, store, time.Second, nil)
	assert.False(t, p.Refresh(context.Background()))
	assert.Len(t, store.stored, 1)
}

func TestRosterPollerStartStopsOnCancel(t *testing.T) {
	lister := &fakeLister{}
	p := NewRosterPoller(lister, &fakeStore{}, 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return lister.Calls() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop")
	}
}
