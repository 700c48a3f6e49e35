package utils

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOpsQueue(t *testing.T) {
	t.Run("runs ops in order", func(t *testing.T) {
		oq := NewOpsQueue(OpsQueueParams{Name: "test", MinSize: 4})
		oq.Start()

		var mu sync.Mutex
		var got []int
		done := make(chan struct{})
		for i := 0; i < 100; i++ {
			i := i
			oq.Enqueue(func() {
				mu.Lock()
				got = append(got, i)
				mu.Unlock()
				if i == 99 {
					close(done)
				}
			})
		}

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("ops did not run")
		}
		<-oq.Stop()

		mu.Lock()
		defer mu.Unlock()
		require.Len(t, got, 100)
		for i, v := range got {
			require.Equal(t, i, v)
		}
	})

	t.Run("flush on stop", func(t *testing.T) {
		oq := NewOpsQueue(OpsQueueParams{Name: "test", FlushOnStop: true})
		count := 0
		for i := 0; i < 10; i++ {
			oq.Enqueue(func() { count++ })
		}
		oq.Start()
		<-oq.Stop()
		require.Equal(t, 10, count)

		require.False(t, oq.Enqueue(func() { count++ }))
		require.Equal(t, 10, count)
	})

	t.Run("min size is a count of ops", func(t *testing.T) {
		for minSize, capacity := range map[uint]int{0: 16, 4: 16, 16: 16, 32: 32, 100: 128} {
			oq := NewOpsQueue(OpsQueueParams{Name: "test", MinSize: minSize})
			require.Zero(t, oq.ops.Cap())
			require.True(t, oq.Enqueue(func() {}))
			require.Equal(t, capacity, oq.ops.Cap(), "min size %d", minSize)
			<-oq.Stop()
		}
	})

	t.Run("stop before start", func(t *testing.T) {
		oq := NewOpsQueue(OpsQueueParams{Name: "test"})
		select {
		case <-oq.Stop():
		case <-time.After(time.Second):
			t.Fatal("stop did not complete")
		}
		// idempotent
		<-oq.Stop()
	})
}
