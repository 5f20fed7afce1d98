package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buzzdavidson/ozwcommander/internal/driver"
)

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.True(t, q.Post(NodeReady{NodeID: i}))
	}
	assert.Equal(t, 5, q.Len())

	for i := 1; i <= 5; i++ {
		e, err := q.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, NodeReady{NodeID: i}, e)
	}
	assert.Zero(t, q.Len())
}

func TestQueue_PostNeverBlocks(t *testing.T) {
	q := NewQueue()
	done := make(chan struct{})

	go func() {
		for i := 0; i < 10000; i++ {
			q.Post(ValueChanged{NodeID: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Post blocked without a consumer")
	}
	assert.Equal(t, 10000, q.Len())
}

func TestQueue_PerProducerOrderIsPreserved(t *testing.T) {
	q := NewQueue()
	const producers, perProducer = 4, 200

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Post(ValueChanged{NodeID: p, Payload: i})
			}
		}(p)
	}

	last := make(map[int]int)
	for p := 0; p < producers; p++ {
		last[p] = -1
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for n := 0; n < producers*perProducer; n++ {
		e, err := q.Next(ctx)
		require.NoError(t, err)
		vc := e.(ValueChanged)
		seq := vc.Payload.(int)
		assert.Equal(t, last[vc.NodeID]+1, seq, "producer %d out of order", vc.NodeID)
		last[vc.NodeID] = seq
	}
	wg.Wait()
}

func TestQueue_NextBlocksUntilPost(t *testing.T) {
	q := NewQueue()
	got := make(chan Event, 1)

	go func() {
		e, err := q.Next(context.Background())
		if err == nil {
			got <- e
		}
	}()

	select {
	case <-got:
		t.Fatal("Next returned before anything was posted")
	case <-time.After(20 * time.Millisecond):
	}

	q.Post(SystemReady{})
	select {
	case e := <-got:
		assert.Equal(t, SystemReady{}, e)
	case <-time.After(time.Second):
		t.Fatal("Next did not wake up")
	}
}

func TestQueue_NextHonoursContext(t *testing.T) {
	q := NewQueue()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := q.Next(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestQueue_Close(t *testing.T) {
	q := NewQueue()
	q.Post(InitCheck{})
	q.Close()
	q.Close()

	assert.False(t, q.Post(SystemReady{}), "posts after close are dropped")

	e, err := q.Next(context.Background())
	require.NoError(t, err, "queued events survive close")
	assert.Equal(t, InitCheck{}, e)

	_, err = q.Next(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestQueue_CloseWakesWaiter(t *testing.T) {
	q := NewQueue()
	errc := make(chan error, 1)
	go func() {
		_, err := q.Next(context.Background())
		errc <- err
	}()

	time.Sleep(10 * time.Millisecond)
	q.Close()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, ErrClosed)
	case <-time.After(time.Second):
		t.Fatal("Close did not wake the waiter")
	}
}

func TestFromNotification(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name string
		in   driver.Notification
		want Event
	}{
		{"driver ready", driver.Notification{Kind: driver.KindDriverReady, HomeID: 0x3d8522, NodeCount: 7}, DriverReady{HomeID: 0x3d8522, NodeCount: 7}},
		{"system ready", driver.Notification{Kind: driver.KindSystemReady}, SystemReady{}},
		{"node added", driver.Notification{Kind: driver.KindNodeAdded, NodeID: 3}, NodeAdded{NodeID: 3}},
		{"node ready", driver.Notification{Kind: driver.KindNodeReady, NodeID: 3}, NodeReady{NodeID: 3}},
		{"node removed", driver.Notification{Kind: driver.KindNodeRemoved, NodeID: 3}, NodeRemoved{NodeID: 3}},
		{"value changed", driver.Notification{Kind: driver.KindValueChanged, NodeID: 2, Payload: "on"}, ValueChanged{NodeID: 2, Payload: "on"}},
		{"driver failed", driver.Notification{Kind: driver.KindDriverFailed, Err: boom}, DriverFailed{Err: boom}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromNotification(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := FromNotification(driver.Notification{Kind: driver.Kind(99)})
	assert.False(t, ok)
}

func TestDispatcher_NotifyPostsOneEventEach(t *testing.T) {
	d := New(NewQueue())

	d.Notify(driver.Notification{Kind: driver.KindDriverReady, NodeCount: 2})
	d.Notify(driver.Notification{Kind: driver.Kind(0)})
	d.Notify(driver.Notification{Kind: driver.KindNodeReady, NodeID: 1})

	assert.Equal(t, 2, d.Queue().Len())
}

func TestDispatcher_WaitDeliversEventsAsMessages(t *testing.T) {
	d := New(NewQueue())
	ctx := context.Background()
	d.Post(AlertExpired{Generation: 4})

	msg := d.Wait(ctx)()
	assert.Equal(t, AlertExpired{Generation: 4}, msg)

	d.Queue().Close()
	msg = d.Wait(ctx)()
	stopped, ok := msg.(Stopped)
	require.True(t, ok)
	assert.ErrorIs(t, stopped.Err, ErrClosed)
	assert.False(t, d.Post(InitCheck{}))
}

func TestDispatcher_ImplementsNotifier(t *testing.T) {
	var _ driver.Notifier = New(NewQueue())
}
