package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/consultation-booking/internal/infra/storage/documents"
	"github.com/m04kA/consultation-booking/pkg/psqlbuilder"
)

const (
	tableDocuments = "documents"
	notifyChannel  = "document_changes"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS documents (
    key        TEXT PRIMARY KEY,
    body       JSONB       NOT NULL,
    version    BIGINT      NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Store хранилище документов в PostgreSQL
// Подписка реализована через LISTEN/NOTIFY, поэтому нужен DSN для отдельного соединения
type Store struct {
	db     DBExecutor
	dsn    string
	logger Logger
}

func NewStore(db DBExecutor, dsn string, logger Logger) *Store {
	return &Store{db: db, dsn: dsn, logger: logger}
}

// EnsureSchema создает таблицу документов, если ее нет
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("%w: EnsureSchema: %v", ErrExecQuery, err)
	}
	return nil
}

// Read получает документ по ключу
func (s *Store) Read(ctx context.Context, key string) (*documents.Document, error) {
	query, args, err := buildSelectQuery(key)
	if err != nil {
		return nil, fmt.Errorf("%w: Read - build select query: %v", ErrBuildQuery, err)
	}

	doc := &documents.Document{Key: key}
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&doc.Body, &doc.Version, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, documents.ErrNotFound
		}
		return nil, fmt.Errorf("%w: Read - scan document: %v", ErrScanRow, err)
	}
	return doc, nil
}

// Write записывает документ с учетом ожидаемой версии
func (s *Store) Write(ctx context.Context, key string, body []byte, expectedVersion int64) (*documents.Document, error) {
	query, args, err := buildWriteQuery(key, body, expectedVersion)
	if err != nil {
		return nil, fmt.Errorf("%w: Write - build query: %v", ErrBuildQuery, err)
	}

	doc := &documents.Document{Key: key, Body: append([]byte(nil), body...)}
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&doc.Version, &doc.UpdatedAt)
	if err != nil {
		// RETURNING без строк: условие версии не выполнено
		if errors.Is(err, sql.ErrNoRows) {
			return nil, documents.ErrVersionConflict
		}
		return nil, fmt.Errorf("%w: Write - execute: %v", ErrExecQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, "SELECT pg_notify($1, $2)", notifyChannel, key); err != nil {
		// Документ уже записан, подписчики обновятся при следующем чтении
		s.logger.Warn("postgres.Store: notify for key=%s failed: %v", key, err)
	}

	return doc, nil
}

// Delete удаляет документ
func (s *Store) Delete(ctx context.Context, key string, expectedVersion int64) error {
	del := psqlbuilder.Delete(tableDocuments).Where(squirrel.Eq{"key": key})
	if expectedVersion != documents.AnyVersion {
		del = del.Where(squirrel.Eq{"version": expectedVersion})
	}
	query, args, err := del.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected > 0 {
		return nil
	}

	// Различаем "нет документа" и "версия не совпала"
	if _, err := s.Read(ctx, key); err != nil {
		return err
	}
	return documents.ErrVersionConflict
}

// Subscribe слушает канал document_changes и перечитывает документ при совпадении ключа
func (s *Store) Subscribe(ctx context.Context, key string) (<-chan documents.Document, error) {
	listener := pq.NewListener(s.dsn, time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			s.logger.Warn("postgres.Store: listener event=%d: %v", ev, err)
		}
	})
	if err := listener.Listen(notifyChannel); err != nil {
		_ = listener.Close()
		return nil, fmt.Errorf("%w: listen %s: %v", documents.ErrSubscribe, notifyChannel, err)
	}

	out := make(chan documents.Document, 1)
	go func() {
		defer close(out)
		defer listener.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case n := <-listener.Notify:
				// nil приходит после переподключения, часть уведомлений могла потеряться
				if n != nil && n.Extra != key {
					continue
				}
				doc, err := s.Read(ctx, key)
				if err != nil {
					if !errors.Is(err, documents.ErrNotFound) && ctx.Err() == nil {
						s.logger.Warn("postgres.Store: reload key=%s after notify failed: %v", key, err)
					}
					continue
				}
				select {
				case out <- *doc:
				case <-ctx.Done():
					return
				}
			case <-time.After(90 * time.Second):
				go func() { _ = listener.Ping() }()
			}
		}
	}()

	return out, nil
}

func buildSelectQuery(key string) (string, []interface{}, error) {
	return psqlbuilder.Select("body", "version", "updated_at").
		From(tableDocuments).
		Where(squirrel.Eq{"key": key}).
		ToSql()
}

// buildWriteQuery строит запрос записи в зависимости от ожидаемой версии:
// AnyVersion - upsert, 0 - вставка только нового документа, >0 - условный update.
func buildWriteQuery(key string, body []byte, expectedVersion int64) (string, []interface{}, error) {
	switch {
	case expectedVersion == documents.AnyVersion:
		return psqlbuilder.Insert(tableDocuments).
			Columns("key", "body", "version", "updated_at").
			Values(key, string(body), 1, squirrel.Expr("now()")).
			Suffix("ON CONFLICT (key) DO UPDATE SET body = EXCLUDED.body, " +
				"version = documents.version + 1, updated_at = now() RETURNING version, updated_at").
			ToSql()

	case expectedVersion == 0:
		return psqlbuilder.Insert(tableDocuments).
			Columns("key", "body", "version", "updated_at").
			Values(key, string(body), 1, squirrel.Expr("now()")).
			Suffix("ON CONFLICT (key) DO NOTHING RETURNING version, updated_at").
			ToSql()

	case expectedVersion > 0:
		return psqlbuilder.Update(tableDocuments).
			Set("body", string(body)).
			Set("version", squirrel.Expr("version + 1")).
			Set("updated_at", squirrel.Expr("now()")).
			Where(squirrel.Eq{"key": key, "version": expectedVersion}).
			Suffix("RETURNING version, updated_at").
			ToSql()

	default:
		return "", nil, fmt.Errorf("invalid expected version %d", expectedVersion)
	}
}
