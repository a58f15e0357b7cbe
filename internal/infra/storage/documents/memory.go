package documents

import (
	"context"
	"sync"
	"time"
)

// MemoryStore хранилище в памяти процесса (для локального запуска и тестов)
type MemoryStore struct {
	mu          sync.RWMutex
	docs        map[string]Document
	subscribers map[string][]chan Document
	now         func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:        make(map[string]Document),
		subscribers: make(map[string][]chan Document),
		now:         time.Now,
	}
}

func (s *MemoryStore) Read(_ context.Context, key string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneDocument(doc), nil
}

func (s *MemoryStore) Write(_ context.Context, key string, body []byte, expectedVersion int64) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.docs[key]
	if expectedVersion != AnyVersion && current.Version != expectedVersion {
		return nil, ErrVersionConflict
	}

	doc := Document{
		Key:       key,
		Body:      append([]byte(nil), body...),
		Version:   current.Version + 1,
		UpdatedAt: s.now(),
	}
	s.docs[key] = doc
	s.notify(doc)

	return cloneDocument(doc), nil
}

func (s *MemoryStore) Delete(_ context.Context, key string, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.docs[key]
	if !ok {
		return ErrNotFound
	}
	if expectedVersion != AnyVersion && current.Version != expectedVersion {
		return ErrVersionConflict
	}
	delete(s.docs, key)
	return nil
}

func (s *MemoryStore) Subscribe(ctx context.Context, key string) (<-chan Document, error) {
	ch := make(chan Document, 1)

	s.mu.Lock()
	s.subscribers[key] = append(s.subscribers[key], ch)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()

		subs := s.subscribers[key]
		for i, c := range subs {
			if c == ch {
				s.subscribers[key] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
		close(ch)
	}()

	return ch, nil
}

// notify вызывается под s.mu. Медленный подписчик получает только последнюю версию.
func (s *MemoryStore) notify(doc Document) {
	for _, ch := range s.subscribers[doc.Key] {
		select {
		case ch <- *cloneDocument(doc):
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- *cloneDocument(doc):
			default:
			}
		}
	}
}

func cloneDocument(doc Document) *Document {
	doc.Body = append([]byte(nil), doc.Body...)
	return &doc
}
