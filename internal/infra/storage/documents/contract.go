package documents

import (
	"context"
	"time"
)

// AnyVersion отключает проверку версии при записи и удалении
const AnyVersion int64 = -1

// Document сохраненный JSON документ целиком
// Version монотонно растет при каждой записи, 0 означает "документа нет"
type Document struct {
	Key       string
	Body      []byte
	Version   int64
	UpdatedAt time.Time
}

// Store хранилище документов: чтение, запись с compare-and-swap, удаление, подписка
type Store interface {
	// Read возвращает ErrNotFound, если документа нет
	Read(ctx context.Context, key string) (*Document, error)

	// Write записывает документ целиком.
	// expectedVersion: AnyVersion - без проверки, 0 - документ не должен существовать,
	// >0 - текущая версия должна совпадать. Иначе ErrVersionConflict.
	Write(ctx context.Context, key string, body []byte, expectedVersion int64) (*Document, error)

	// Delete удаляет документ. ErrNotFound, если его нет; ErrVersionConflict при несовпадении версии.
	Delete(ctx context.Context, key string, expectedVersion int64) error

	// Subscribe присылает документ после каждой записи ключа (в том числе из других процессов).
	// Канал закрывается при отмене ctx.
	Subscribe(ctx context.Context, key string) (<-chan Document, error)
}

// MetricsCollector интерфейс сборщика метрик операций
type MetricsCollector interface {
	ObserveStoreOp(operation string, elapsed time.Duration, err error)
}
