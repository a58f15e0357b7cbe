package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/m04kA/consultation-booking/internal/infra/storage/documents"
)

const (
	fieldBody      = "body"
	fieldVersion   = "version"
	fieldUpdatedAt = "updated_at"

	// сколько раз повторять запись без проверки версии при гонке WATCH
	maxBlindWriteAttempts = 5
)

var (
	// ErrExecCommand возвращается при ошибке выполнения команды Redis
	ErrExecCommand = errors.New("redis.store: failed to execute command")

	// ErrCorruptDocument возвращается, если hash документа поврежден
	ErrCorruptDocument = errors.New("redis.store: corrupt document")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Store хранилище документов в Redis
// Документ хранится как hash {body, version, updated_at}; CAS через WATCH/MULTI,
// уведомления через Pub/Sub канал <prefix>changes
type Store struct {
	client *redis.Client
	prefix string
	logger Logger
}

func NewStore(client *redis.Client, prefix string, logger Logger) *Store {
	return &Store{client: client, prefix: prefix, logger: logger}
}

func (s *Store) docKey(key string) string {
	return s.prefix + "doc:" + key
}

func (s *Store) channel() string {
	return s.prefix + "changes"
}

func (s *Store) Read(ctx context.Context, key string) (*documents.Document, error) {
	fields, err := s.client.HGetAll(ctx, s.docKey(key)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: Read - HGETALL %s: %v", ErrExecCommand, key, err)
	}
	return decodeDocument(key, fields)
}

func (s *Store) Write(ctx context.Context, key string, body []byte, expectedVersion int64) (*documents.Document, error) {
	attempts := 1
	if expectedVersion == documents.AnyVersion {
		attempts = maxBlindWriteAttempts
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		doc, err := s.writeOnce(ctx, key, body, expectedVersion)
		if err == nil {
			return doc, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return nil, err
		}
		lastErr = err
	}

	if expectedVersion != documents.AnyVersion {
		return nil, documents.ErrVersionConflict
	}
	return nil, fmt.Errorf("%w: Write %s: %v", ErrExecCommand, key, lastErr)
}

func (s *Store) writeOnce(ctx context.Context, key string, body []byte, expectedVersion int64) (*documents.Document, error) {
	rk := s.docKey(key)
	var doc *documents.Document

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := currentVersion(ctx, tx, rk)
		if err != nil {
			return err
		}
		if expectedVersion != documents.AnyVersion && current != expectedVersion {
			return documents.ErrVersionConflict
		}

		now := time.Now().UTC()
		next := current + 1
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, rk, fieldBody, body, fieldVersion, next, fieldUpdatedAt, now.UnixMilli())
			pipe.Publish(ctx, s.channel(), key)
			return nil
		})
		if err != nil {
			return err
		}

		doc = &documents.Document{Key: key, Body: append([]byte(nil), body...), Version: next, UpdatedAt: now}
		return nil
	}, rk)

	switch {
	case err == nil:
		return doc, nil
	case errors.Is(err, documents.ErrVersionConflict), errors.Is(err, redis.TxFailedErr):
		return nil, err
	default:
		return nil, fmt.Errorf("%w: Write - %s: %v", ErrExecCommand, key, err)
	}
}

func (s *Store) Delete(ctx context.Context, key string, expectedVersion int64) error {
	rk := s.docKey(key)

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := currentVersion(ctx, tx, rk)
		if err != nil {
			return err
		}
		if current == 0 {
			return documents.ErrNotFound
		}
		if expectedVersion != documents.AnyVersion && current != expectedVersion {
			return documents.ErrVersionConflict
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, rk)
			return nil
		})
		return err
	}, rk)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, documents.ErrNotFound), errors.Is(err, documents.ErrVersionConflict):
		return err
	case errors.Is(err, redis.TxFailedErr):
		return documents.ErrVersionConflict
	default:
		return fmt.Errorf("%w: Delete - %s: %v", ErrExecCommand, key, err)
	}
}

func (s *Store) Subscribe(ctx context.Context, key string) (<-chan documents.Document, error) {
	pubsub := s.client.Subscribe(ctx, s.channel())
	// Receive дожидается подтверждения подписки
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("%w: SUBSCRIBE %s: %v", documents.ErrSubscribe, s.channel(), err)
	}

	out := make(chan documents.Document, 1)
	go func() {
		defer close(out)
		defer pubsub.Close()

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				if msg.Payload != key {
					continue
				}
				doc, err := s.Read(ctx, key)
				if err != nil {
					if !errors.Is(err, documents.ErrNotFound) && ctx.Err() == nil {
						s.logger.Warn("redis.Store: reload key=%s after publish failed: %v", key, err)
					}
					continue
				}
				select {
				case out <- *doc:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

func currentVersion(ctx context.Context, tx *redis.Tx, rk string) (int64, error) {
	v, err := tx.HGet(ctx, rk, fieldVersion).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func decodeDocument(key string, fields map[string]string) (*documents.Document, error) {
	if len(fields) == 0 {
		return nil, documents.ErrNotFound
	}

	version, err := strconv.ParseInt(fields[fieldVersion], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: version %q", ErrCorruptDocument, key, fields[fieldVersion])
	}
	updatedMs, err := strconv.ParseInt(fields[fieldUpdatedAt], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: updated_at %q", ErrCorruptDocument, key, fields[fieldUpdatedAt])
	}

	return &documents.Document{
		Key:       key,
		Body:      []byte(fields[fieldBody]),
		Version:   version,
		UpdatedAt: time.UnixMilli(updatedMs).UTC(),
	}, nil
}
