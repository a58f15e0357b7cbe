package documents

import (
	"context"
	"errors"
	"time"
)

// InstrumentedStore декоратор, снимающий метрики с любого Store
type InstrumentedStore struct {
	next    Store
	metrics MetricsCollector
}

func NewInstrumentedStore(next Store, metrics MetricsCollector) *InstrumentedStore {
	return &InstrumentedStore{next: next, metrics: metrics}
}

func (s *InstrumentedStore) Read(ctx context.Context, key string) (*Document, error) {
	start := time.Now()
	doc, err := s.next.Read(ctx, key)
	s.metrics.ObserveStoreOp("read", time.Since(start), ignoreExpected(err))
	return doc, err
}

func (s *InstrumentedStore) Write(ctx context.Context, key string, body []byte, expectedVersion int64) (*Document, error) {
	start := time.Now()
	doc, err := s.next.Write(ctx, key, body, expectedVersion)
	s.metrics.ObserveStoreOp("write", time.Since(start), ignoreExpected(err))
	return doc, err
}

func (s *InstrumentedStore) Delete(ctx context.Context, key string, expectedVersion int64) error {
	start := time.Now()
	err := s.next.Delete(ctx, key, expectedVersion)
	s.metrics.ObserveStoreOp("delete", time.Since(start), ignoreExpected(err))
	return err
}

func (s *InstrumentedStore) Subscribe(ctx context.Context, key string) (<-chan Document, error) {
	start := time.Now()
	ch, err := s.next.Subscribe(ctx, key)
	s.metrics.ObserveStoreOp("subscribe", time.Since(start), err)
	return ch, err
}

// ErrNotFound и ErrVersionConflict штатные исходы, ошибками хранилища не считаются
func ignoreExpected(err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrVersionConflict) {
		return nil
	}
	return err
}
