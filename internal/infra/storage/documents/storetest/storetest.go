// Package storetest общий набор проверок для реализаций documents.Store
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/consultation-booking/internal/infra/storage/documents"
)

// Run прогоняет проверки. Ключи уникальны для каждого подтеста,
// поэтому newStore может возвращать общее хранилище.
func Run(t *testing.T, newStore func(t *testing.T) documents.Store) {
	t.Helper()

	t.Run("read missing", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Read(context.Background(), uniqueKey(t))
		assert.ErrorIs(t, err, documents.ErrNotFound)
	})

	t.Run("write and read", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		key := uniqueKey(t)

		doc, err := s.Write(ctx, key, []byte(`{"a":1}`), documents.AnyVersion)
		require.NoError(t, err)
		assert.Equal(t, int64(1), doc.Version)

		doc, err = s.Write(ctx, key, []byte(`{"a":2}`), documents.AnyVersion)
		require.NoError(t, err)
		assert.Equal(t, int64(2), doc.Version)

		got, err := s.Read(ctx, key)
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":2}`, string(got.Body))
		assert.Equal(t, int64(2), got.Version)
	})

	t.Run("compare and swap", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		key := uniqueKey(t)

		_, err := s.Write(ctx, key, []byte(`[]`), 0)
		require.NoError(t, err)

		_, err = s.Write(ctx, key, []byte(`[1]`), 0)
		assert.ErrorIs(t, err, documents.ErrVersionConflict, "create-only write must fail on existing document")

		_, err = s.Write(ctx, key, []byte(`[1]`), 5)
		assert.ErrorIs(t, err, documents.ErrVersionConflict)

		doc, err := s.Write(ctx, key, []byte(`[1]`), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(2), doc.Version)
	})

	t.Run("concurrent cas admits one winner per version", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		key := uniqueKey(t)

		_, err := s.Write(ctx, key, []byte(`0`), 0)
		require.NoError(t, err)

		const writers = 8
		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			wins int
		)
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				if _, err := s.Write(ctx, key, []byte(fmt.Sprintf("%d", i+1)), 1); err == nil {
					mu.Lock()
					wins++
					mu.Unlock()
				}
			}(i)
		}
		wg.Wait()
		assert.Equal(t, 1, wins)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		key := uniqueKey(t)

		assert.ErrorIs(t, s.Delete(ctx, key, documents.AnyVersion), documents.ErrNotFound)

		_, err := s.Write(ctx, key, []byte(`{}`), documents.AnyVersion)
		require.NoError(t, err)

		assert.ErrorIs(t, s.Delete(ctx, key, 7), documents.ErrVersionConflict)
		require.NoError(t, s.Delete(ctx, key, 1))

		_, err = s.Read(ctx, key)
		assert.ErrorIs(t, err, documents.ErrNotFound)
	})

	t.Run("subscribe receives writes", func(t *testing.T) {
		s := newStore(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		key := uniqueKey(t)

		ch, err := s.Subscribe(ctx, key)
		require.NoError(t, err)

		// Подписка в Postgres и Redis устанавливается асинхронно
		time.Sleep(200 * time.Millisecond)

		_, err = s.Write(context.Background(), key, []byte(`{"v":1}`), documents.AnyVersion)
		require.NoError(t, err)

		select {
		case doc := <-ch:
			assert.Equal(t, key, doc.Key)
			assert.JSONEq(t, `{"v":1}`, string(doc.Body))
		case <-time.After(5 * time.Second):
			t.Fatal("no notification received")
		}

		cancel()
		assert.Eventually(t, func() bool {
			for {
				select {
				case _, ok := <-ch:
					if !ok {
						return true
					}
				default:
					return false
				}
			}
		}, 5*time.Second, 20*time.Millisecond)
	})
}

func uniqueKey(t *testing.T) string {
	return fmt.Sprintf("test:%s:%d", t.Name(), time.Now().UnixNano())
}
