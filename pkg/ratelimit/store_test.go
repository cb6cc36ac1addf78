package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStore(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("EmptyKey", func(t *testing.T) {
		s := NewMemoryStore(0)
		assert.Empty(t, s.Get("example.myshopify.com"))
		assert.True(t, s.Get("example.myshopify.com").Last().IsZero())
	})

	t.Run("KeepsNewestWithinLimit", func(t *testing.T) {
		s := NewMemoryStore(2)
		for i := 0; i < 3; i++ {
			s.Push("shop", base.Add(time.Duration(i)*time.Second))
		}

		got := s.Get("shop")
		assert.Equal(t, Snapshot{base.Add(time.Second), base.Add(2 * time.Second)}, got)
		assert.Equal(t, base.Add(2*time.Second), got.Last())
	})

	t.Run("KeysAreIsolated", func(t *testing.T) {
		s := NewMemoryStore(2)
		s.Push("a", base)
		assert.Len(t, s.Get("a"), 1)
		assert.Empty(t, s.Get("b"))
	})

	t.Run("SnapshotIsACopy", func(t *testing.T) {
		s := NewMemoryStore(2)
		s.Push("shop", base)
		snap := s.Get("shop")
		snap[0] = time.Time{}
		assert.Equal(t, base, s.Get("shop")[0])
	})

	t.Run("Reset", func(t *testing.T) {
		s := NewMemoryStore(2)
		s.Push("shop", base)
		s.Reset("shop")
		assert.Empty(t, s.Get("shop"))
	})
}

func TestMemoryStoreConcurrent(t *testing.T) {
	s := NewMemoryStore(5)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Push("shop", time.Now())
			_ = s.Get("shop")
		}()
	}
	wg.Wait()
	assert.Len(t, s.Get("shop"), 5)
}
